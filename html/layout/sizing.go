package layout

import (
	"sort"

	"github.com/benoitkugler/gridlayout/utils"
)

// Track sizing algorithm, run for each axis.
// See https://www.w3.org/TR/css-grid-1/#algo-track-sizing

// SizingItem is a placed item, as seen by the track sizing algorithm of
// one axis.
type SizingItem struct {
	Span Span
	// Contribution returns the size of the item margin box in the sized
	// axis, for a MinContent or MaxContent constraint.
	Contribution func(kind ConstraintKind) Fl

	cache  [2]Fl
	cached [2]bool
}

// contribution calls Contribution at most once per kind.
func (it *SizingItem) contribution(kind ConstraintKind) Fl {
	index := 0
	if kind == MinContent {
		index = 1
	}
	if !it.cached[index] {
		it.cache[index] = it.Contribution(kind)
		it.cached[index] = true
	}
	return it.cache[index]
}

type trackSizer struct {
	tracks    []GridTrack
	items     []SizingItem
	gap       Fl
	available Constraint
}

// SizeTracks runs the track sizing algorithm on tracks, storing the used
// size of each track in its BaseSize.
//
// available is the content-box size of the container in the axis: a
// DefiniteSpace for a definite axis, or a MinContent or MaxContent
// constraint when the axis is sized by its content.
// The items must not span collapsed tracks.
func SizeTracks(tracks []GridTrack, items []SizingItem, gap Fl, available Constraint) {
	s := trackSizer{tracks: tracks, items: items, gap: gap, available: available}
	s.initializeTracks()
	s.resolveIntrinsicSizes()
	switch available.Kind {
	case DefiniteSpace:
		s.maximizeTracks()
		s.expandFlexibleTracks()
	case MaxContent:
		// the free space is infinite: tracks reach their growth limits
		for i := range s.tracks {
			if !s.tracks[i].IsFlexible() {
				s.tracks[i].BaseSize = s.tracks[i].GrowthLimit
			}
		}
		s.expandFlexibleTracksIndefinite()
	case MinContent:
		// the free space is zero: nothing to maximize nor to expand
	}
}

// 1. Initialize each track's base size and growth limit.
func (s *trackSizer) initializeTracks() {
	for i := range s.tracks {
		t := &s.tracks[i]
		t.PlannedIncrease = 0
		t.growable = false
		if t.min.kind == sizingFixed {
			t.BaseSize = t.min.value
		} else {
			t.BaseSize = 0
		}
		if t.max.kind == sizingFixed {
			t.GrowthLimit = utils.MaxF(t.max.value, t.BaseSize)
		} else {
			t.GrowthLimit = utils.Inf
		}
	}
}

func (s *trackSizer) crossesFlex(span Span) bool {
	for i := span.Start; i < span.End; i++ {
		if s.tracks[i].IsFlexible() {
			return true
		}
	}
	return false
}

// 2. Resolve intrinsic track sizes.
func (s *trackSizer) resolveIntrinsicSizes() {
	var (
		flexItems []*SizingItem
		bySpan    = map[int][]*SizingItem{}
		spans     []int
	)
	for i := range s.items {
		it := &s.items[i]
		switch n := it.Span.Len(); {
		case s.crossesFlex(it.Span):
			flexItems = append(flexItems, it)
		case n == 1:
			s.sizeSingleSpanItem(it)
		default:
			if _, has := bySpan[n]; !has {
				spans = append(spans, n)
			}
			bySpan[n] = append(bySpan[n], it)
		}
	}
	s.clampGrowthLimits()

	// 2.3 Increase sizes to accommodate items spanning content-sized tracks.
	sort.Ints(spans)
	for _, n := range spans {
		items := bySpan[n]
		// 2.3.1 For intrinsic minimums.
		s.distributeExtraSpace(items, false, func(t *GridTrack) bool { return t.min.isIntrinsic() }, MinContent)
		// 2.3.2 For content-based minimums.
		s.distributeExtraSpace(items, false, func(t *GridTrack) bool {
			return t.min.kind == sizingMinContent || t.min.kind == sizingMaxContent
		}, MinContent)
		// 2.3.3 For max-content minimums.
		s.distributeExtraSpace(items, false, func(t *GridTrack) bool {
			return t.min.kind == sizingMaxContent || (t.min.kind == sizingAuto && s.available.Kind == MaxContent)
		}, MaxContent)
		// 2.3.4 Increase growth limits below base sizes.
		s.clampGrowthLimits()
		// 2.3.5 For intrinsic maximums.
		s.distributeExtraSpace(items, true, func(t *GridTrack) bool { return t.max.isIntrinsic() }, MinContent)
		// 2.3.6 For max-content maximums.
		s.distributeExtraSpace(items, true, func(t *GridTrack) bool {
			return t.max.kind == sizingMaxContent || t.max.kind == sizingAuto || t.max.kind == sizingFitContent
		}, MaxContent)
		for i := range s.tracks {
			s.tracks[i].growable = false
		}
	}

	// 2.4 Increase sizes to accommodate items spanning flexible tracks.
	s.distributeToFlexibleTracks(flexItems)

	// 2.5 Fix infinite growth limits.
	for i := range s.tracks {
		t := &s.tracks[i]
		if utils.IsInf(t.GrowthLimit) {
			t.GrowthLimit = t.BaseSize
		}
	}
	s.clampGrowthLimits()
}

// 2.2 Size tracks to fit non-spanning items.
func (s *trackSizer) sizeSingleSpanItem(it *SizingItem) {
	t := &s.tracks[it.Span.Start]
	switch t.min.kind {
	case sizingMinContent, sizingAuto:
		t.BaseSize = utils.MaxF(t.BaseSize, it.contribution(MinContent))
	case sizingMaxContent:
		t.BaseSize = utils.MaxF(t.BaseSize, it.contribution(MaxContent))
	}

	var limit Fl
	switch t.max.kind {
	case sizingMinContent:
		limit = it.contribution(MinContent)
	case sizingMaxContent, sizingAuto:
		limit = it.contribution(MaxContent)
	case sizingFitContent:
		limit = utils.MinF(it.contribution(MaxContent), utils.MaxF(t.max.value, it.contribution(MinContent)))
	default:
		return
	}
	if utils.IsInf(t.GrowthLimit) {
		t.GrowthLimit = limit
	} else {
		t.GrowthLimit = utils.MaxF(t.GrowthLimit, limit)
	}
}

// clampGrowthLimits raises the finite growth limits below their base size.
func (s *trackSizer) clampGrowthLimits() {
	for i := range s.tracks {
		t := &s.tracks[i]
		if t.GrowthLimit < t.BaseSize {
			t.GrowthLimit = t.BaseSize
		}
	}
}

// affectedSize returns the size updated by a distribution.
func affectedSize(t *GridTrack, toGrowthLimits bool) Fl {
	if toGrowthLimits && !utils.IsInf(t.GrowthLimit) {
		return t.GrowthLimit
	}
	return t.BaseSize
}

// distributionLimit returns the size a track may reach before
// receiving space beyond limits.
func distributionLimit(t *GridTrack, toGrowthLimits bool) Fl {
	if !toGrowthLimits {
		if t.max.kind == sizingFitContent {
			return utils.MinF(t.GrowthLimit, utils.MaxF(t.max.value, t.BaseSize))
		}
		return t.GrowthLimit
	}
	if t.max.kind == sizingFitContent {
		return utils.MaxF(t.max.value, t.BaseSize)
	}
	if t.growable || utils.IsInf(t.GrowthLimit) {
		return utils.Inf
	}
	return t.GrowthLimit
}

// distributeExtraSpace increases the base sizes (or the growth limits) of
// the tracks selected by isAffected, so that the spanned tracks fit the
// contribution of the given kind of each item.
// The space required by each item is shared equally between its affected
// tracks, which are frozen when they reach their limit. The loop is bounded
// by the number of spanned tracks.
func (s *trackSizer) distributeExtraSpace(items []*SizingItem, toGrowthLimits bool, isAffected func(*GridTrack) bool, kind ConstraintKind) {
	// 1. Maintain separately for each affected track a planned increase.
	for i := range s.tracks {
		s.tracks[i].PlannedIncrease = 0
	}
	involved := make([]bool, len(s.tracks))

	for _, it := range items {
		var affected []int
		space := it.contribution(kind) - spanGaps(s.tracks, it.Span.Start, it.Span.End, s.gap)
		for i := it.Span.Start; i < it.Span.End; i++ {
			t := &s.tracks[i]
			space -= affectedSize(t, toGrowthLimits)
			if isAffected(t) {
				affected = append(affected, i)
			}
		}
		if len(affected) == 0 {
			continue
		}
		for _, i := range affected {
			involved[i] = true
		}
		if space <= 0 {
			continue
		}

		// 2. Distribute space up to limits.
		var increases map[int]Fl
		increases, space, _ = shareUpToLimits(affected, space, func(i int) Fl {
			t := &s.tracks[i]
			return distributionLimit(t, toGrowthLimits) - affectedSize(t, toGrowthLimits)
		})

		// 3. Distribute space beyond limits.
		if space > 0 {
			beyond := affected
			if !toGrowthLimits {
				beyond = nil
				for _, i := range affected {
					if mk := s.tracks[i].max.kind; mk == sizingMaxContent || mk == sizingAuto {
						beyond = append(beyond, i)
					}
				}
				if len(beyond) == 0 {
					beyond = affected
				}
			}
			share := space / Fl(len(beyond))
			for _, i := range beyond {
				increases[i] += share
			}
		}

		// 4. Keep the largest increase over the items.
		for i, inc := range increases {
			t := &s.tracks[i]
			t.PlannedIncrease = utils.MaxF(t.PlannedIncrease, inc)
		}
	}

	// 5. Update the tracks' affected sizes.
	for i := range s.tracks {
		t := &s.tracks[i]
		if !involved[i] {
			continue
		}
		if !toGrowthLimits {
			t.BaseSize += t.PlannedIncrease
		} else if utils.IsInf(t.GrowthLimit) {
			t.GrowthLimit = t.BaseSize + t.PlannedIncrease
			t.growable = true
		} else {
			t.GrowthLimit += t.PlannedIncrease
		}
		t.PlannedIncrease = 0
	}
}

// shareUpToLimits shares space equally between the affected tracks,
// freezing the tracks whose room is smaller than their share. It returns
// the increase of each track, the space left and the number of passes,
// which is at most len(affected).
func shareUpToLimits(affected []int, space Fl, room func(i int) Fl) (increases map[int]Fl, left Fl, passes int) {
	increases = make(map[int]Fl, len(affected))
	frozen := make(map[int]bool, len(affected))
	for range affected {
		var unfrozen []int
		for _, i := range affected {
			if !frozen[i] {
				unfrozen = append(unfrozen, i)
			}
		}
		if len(unfrozen) == 0 || space <= 0 {
			break
		}
		passes++
		share := space / Fl(len(unfrozen))
		anyFrozen := false
		for _, i := range unfrozen {
			r := room(i) - increases[i]
			if r <= share {
				r = utils.ClampPositive(r)
				increases[i] += r
				space -= r
				frozen[i] = true
				anyFrozen = true
			}
		}
		if !anyFrozen {
			for _, i := range unfrozen {
				increases[i] += share
			}
			space = 0
		}
	}
	return increases, space, passes
}

// distributeToFlexibleTracks increases the base sizes of the flexible
// tracks with an intrinsic minimum, to fit the minimum contributions of the
// items crossing them. Space is shared proportionally to the flex factors,
// or equally when they sum to zero.
func (s *trackSizer) distributeToFlexibleTracks(items []*SizingItem) {
	for i := range s.tracks {
		s.tracks[i].PlannedIncrease = 0
	}
	for _, it := range items {
		var (
			affected  []int
			factorSum Fl
		)
		space := it.contribution(MinContent) - spanGaps(s.tracks, it.Span.Start, it.Span.End, s.gap)
		for i := it.Span.Start; i < it.Span.End; i++ {
			t := &s.tracks[i]
			space -= t.BaseSize
			if t.IsFlexible() && t.min.isIntrinsic() {
				affected = append(affected, i)
				factorSum += t.flexFactor()
			}
		}
		if space <= 0 || len(affected) == 0 {
			continue
		}
		for _, i := range affected {
			t := &s.tracks[i]
			var inc Fl
			if factorSum > 0 {
				inc = space * t.flexFactor() / factorSum
			} else {
				inc = space / Fl(len(affected))
			}
			t.PlannedIncrease = utils.MaxF(t.PlannedIncrease, inc)
		}
	}
	for i := range s.tracks {
		t := &s.tracks[i]
		t.BaseSize += t.PlannedIncrease
		t.PlannedIncrease = 0
	}
}

// freeSpace returns the space left in the axis by the base sizes and gaps.
func (s *trackSizer) freeSpace() Fl {
	used := totalGaps(s.tracks, s.gap)
	for i := range s.tracks {
		used += s.tracks[i].BaseSize
	}
	return s.available.Size - used
}

// 3. Maximize tracks: the free space is distributed to the non flexible
// tracks, proportionally to the room below their growth limit.
func (s *trackSizer) maximizeTracks() {
	free := s.freeSpace()
	if free <= 0 {
		return
	}
	var totalRoom Fl
	for i := range s.tracks {
		t := &s.tracks[i]
		if !t.IsFlexible() {
			totalRoom += t.GrowthLimit - t.BaseSize
		}
	}
	if totalRoom <= 0 {
		return
	}
	ratio := utils.MinF(1, free/totalRoom)
	for i := range s.tracks {
		t := &s.tracks[i]
		if t.IsFlexible() {
			continue
		}
		if ratio == 1 {
			t.BaseSize = t.GrowthLimit
		} else {
			t.BaseSize += (t.GrowthLimit - t.BaseSize) * ratio
		}
	}
}

// 4. Expand flexible tracks, in a definite axis.
func (s *trackSizer) expandFlexibleTracks() {
	var flexible []int
	leftover := s.available.Size - totalGaps(s.tracks, s.gap)
	for i := range s.tracks {
		if s.tracks[i].IsFlexible() {
			flexible = append(flexible, i)
		} else {
			leftover -= s.tracks[i].BaseSize
		}
	}
	if len(flexible) == 0 || leftover <= 0 {
		// flexible tracks keep their floor
		return
	}

	frSize, _ := findFrSize(s.tracks, flexible, leftover)
	for _, i := range flexible {
		t := &s.tracks[i]
		t.BaseSize = utils.MaxF(t.BaseSize, frSize*t.flexFactor())
	}
}

// findFrSize returns the size of 1fr filling leftover with the flexible
// tracks given by index, and the number of passes run. Tracks whose base
// size is larger than their share are treated as inflexible, and the
// hypothetical fr size is recomputed; there are at most len(flexible)+1
// passes.
func findFrSize(tracks []GridTrack, flexible []int, leftover Fl) (frSize Fl, passes int) {
	inflexible := make(map[int]bool, len(flexible))
	for n := len(flexible) + 1; n > 0; n-- {
		passes++
		space, factorSum := leftover, Fl(0)
		for _, i := range flexible {
			if inflexible[i] {
				space -= tracks[i].BaseSize
			} else {
				factorSum += tracks[i].flexFactor()
			}
		}
		if factorSum <= 0 {
			// only 0fr tracks remain: they keep their base size
			return 0, passes
		}
		frSize = utils.ClampPositive(space) / factorSum
		stable := true
		for _, i := range flexible {
			if !inflexible[i] && frSize*tracks[i].flexFactor() < tracks[i].BaseSize {
				inflexible[i] = true
				stable = false
			}
		}
		if stable {
			break
		}
	}
	return frSize, passes
}

// 4. Expand flexible tracks, in an axis sized under a max-content
// constraint: the fr size is the largest one required by the tracks base
// sizes and by the max-content contributions of the items crossing them.
func (s *trackSizer) expandFlexibleTracksIndefinite() {
	var flexible []int
	for i := range s.tracks {
		if s.tracks[i].IsFlexible() {
			flexible = append(flexible, i)
		}
	}
	if len(flexible) == 0 {
		return
	}

	var frSize Fl
	for _, i := range flexible {
		t := &s.tracks[i]
		if f := t.flexFactor(); f > 1 {
			frSize = utils.MaxF(frSize, t.BaseSize/f)
		} else {
			frSize = utils.MaxF(frSize, t.BaseSize)
		}
	}
	for i := range s.items {
		it := &s.items[i]
		if !s.crossesFlex(it.Span) {
			continue
		}
		space := it.contribution(MaxContent) - spanGaps(s.tracks, it.Span.Start, it.Span.End, s.gap)
		var spanned []int
		for j := it.Span.Start; j < it.Span.End; j++ {
			if s.tracks[j].IsFlexible() {
				spanned = append(spanned, j)
			} else {
				space -= s.tracks[j].BaseSize
			}
		}
		itemFrSize, _ := findFrSize(s.tracks, spanned, space)
		frSize = utils.MaxF(frSize, itemFrSize)
	}

	for _, i := range flexible {
		t := &s.tracks[i]
		t.BaseSize = utils.MaxF(t.BaseSize, frSize*t.flexFactor())
	}
}

// trackSizes returns the used size of each track.
func trackSizes(tracks []GridTrack) []Fl {
	out := make([]Fl, len(tracks))
	for i := range tracks {
		out[i] = tracks[i].BaseSize
	}
	return out
}
