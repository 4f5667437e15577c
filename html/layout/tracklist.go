package layout

import (
	"math"

	"github.com/benoitkugler/gridlayout/logger"
)

// maxRepetitions bounds automatic repetitions of very small tracks.
const maxRepetitions = 10000

// ResolveTrackList expands list into the explicit tracks of axis, for a
// container of the given size in this axis.
//
// Integer repetitions are expanded, the number of automatic repetitions is
// computed from size (or from itemCount when size is indefinite) and
// percentages are resolved (they behave as auto in an indefinite axis).
// Malformed sizing functions degrade to auto.
//
// Tracks of an auto-fit repetition are not collapsed here, since placement
// uses their numbering; see collapseAutoFit.
func ResolveTrackList(list TrackList, axis Axis, size AxisSize, gap Length, itemCount int) []GridTrack {
	gapValue := resolveGap(gap, size)

	type entry struct {
		size    TrackSize
		autoFit bool
	}
	var (
		before, after []TrackSize
		autoRepeat    *Repeat
	)
	add := func(ts TrackSize) {
		if autoRepeat == nil {
			before = append(before, ts)
		} else {
			after = append(after, ts)
		}
	}
	for _, item := range list {
		switch item := item.(type) {
		case Repeat:
			if len(item.Tracks) == 0 {
				logger.WarningLogger.Warnf("empty track list in %s, ignored", item)
				continue
			}
			count := item.Count
			switch {
			case item.Kind != RepeatCount && autoRepeat == nil:
				r := item
				autoRepeat = &r
				continue
			case item.Kind != RepeatCount:
				logger.WarningLogger.Warnf("only one automatic repetition is allowed, %s repeated once", item)
				count = 1
			case count < 1:
				logger.WarningLogger.Warnf("invalid repetition count in %s, repeated once", item)
				count = 1
			}
			for c := 0; c < count; c++ {
				for _, ts := range item.Tracks {
					add(ts)
				}
			}
		case TrackSize:
			add(item)
		default:
			logger.WarningLogger.Warnf("invalid track list entry %v, using auto", item)
			add(Auto{})
		}
	}

	var entries []entry
	for _, ts := range before {
		entries = append(entries, entry{size: ts})
	}
	if autoRepeat != nil {
		outside := append(append([]TrackSize(nil), before...), after...)
		n := autoRepeatCount(*autoRepeat, outside, size, gapValue, itemCount)
		for c := 0; c < n; c++ {
			for _, ts := range autoRepeat.Tracks {
				entries = append(entries, entry{size: ts, autoFit: autoRepeat.Kind == AutoFit})
			}
		}
	}
	for _, ts := range after {
		entries = append(entries, entry{size: ts})
	}

	tracks := make([]GridTrack, len(entries))
	for i, e := range entries {
		ts := e.size
		if !isValidTrackSize(ts) {
			logger.WarningLogger.Warnf("invalid track sizing function %s, using auto", trackString(ts))
			ts = Auto{}
		}
		tracks[i] = newGridTrack(axis, resolveTrackPercentages(ts, size), false)
		tracks[i].autoFit = e.autoFit
	}
	return tracks
}

// resolveTrackPercentages replaces percentages by fixed lengths if size is
// definite, by auto otherwise.
func resolveTrackPercentages(ts TrackSize, size AxisSize) TrackSize {
	switch ts := ts.(type) {
	case Percentage:
		if v, ok := Percent(ts.Percent).Resolve(size); ok {
			return Fixed{Px(v)}
		}
		return Auto{}
	case Fixed:
		if v, ok := ts.Length.Resolve(size); ok {
			return Fixed{Px(v)}
		}
		return Auto{}
	case MinMax:
		return MinMax{Min: resolveTrackPercentages(ts.Min, size), Max: resolveTrackPercentages(ts.Max, size)}
	case FitContent:
		if v, ok := ts.Limit.Resolve(size); ok {
			return FitContent{Px(v)}
		}
		return ts
	}
	return ts
}

// definiteTrackSize returns the size used to count automatic repetitions:
// a fixed size, or the fixed lower (then upper) bound of minmax().
func definiteTrackSize(ts TrackSize, size AxisSize) (Fl, bool) {
	switch ts := ts.(type) {
	case Fixed:
		return ts.Length.Resolve(size)
	case Percentage:
		return Percent(ts.Percent).Resolve(size)
	case MinMax:
		switch ts.Min.(type) {
		case Fixed, Percentage:
			return definiteTrackSize(ts.Min, size)
		}
		switch ts.Max.(type) {
		case Fixed, Percentage:
			return definiteTrackSize(ts.Max, size)
		}
	}
	return 0, false
}

// autoRepeatCount returns the number of repetitions of r: in a definite
// axis, the largest count fitting in the axis with the tracks outside of
// the repetition and the gaps; in an indefinite axis, enough repetitions for
// itemCount items. The count is at least 1.
func autoRepeatCount(r Repeat, outside []TrackSize, size AxisSize, gap Fl, itemCount int) int {
	k := len(r.Tracks)
	if !size.Definite {
		n := int(math.Ceil(float64(itemCount) / float64(k)))
		if n < 1 {
			n = 1
		}
		if n > maxRepetitions {
			n = maxRepetitions
		}
		return n
	}

	var repeatSum Fl
	for _, ts := range r.Tracks {
		v, ok := definiteTrackSize(ts, size)
		if !ok {
			return 1
		}
		repeatSum += v
	}
	var outsideSum Fl
	for _, ts := range outside {
		if v, ok := definiteTrackSize(ts, size); ok {
			outsideSum += v
		}
	}
	// n*repeatSum + outsideSum + (n*k + len(outside) - 1)*gap <= size
	per := repeatSum + Fl(k)*gap
	if per <= 0 {
		return 1
	}
	free := size.Size - outsideSum - Fl(len(outside))*gap + gap
	n := int(math.Floor(free/per + 1e-9))
	if n < 1 {
		n = 1
	}
	if n > maxRepetitions {
		n = maxRepetitions
	}
	return n
}

// implicitTrackSizes returns the sizing functions of count implicit tracks,
// cycling through autoTracks; backward is used for the tracks created
// before the explicit grid, the closest one first.
func implicitTrackSizes(autoTracks []TrackSize, count int, backward bool) []TrackSize {
	out := make([]TrackSize, count)
	if len(autoTracks) == 0 {
		for i := range out {
			out[i] = Auto{}
		}
		return out
	}
	L := len(autoTracks)
	for i := range out {
		if backward {
			out[i] = autoTracks[L-1-i%L]
		} else {
			out[i] = autoTracks[i%L]
		}
	}
	return out
}

// collapseAutoFit collapses the tracks of an auto-fit repetition with no
// item, given for each track whether an item occupies it.
func collapseAutoFit(tracks []GridTrack, occupied []bool) {
	for i := range tracks {
		if tracks[i].autoFit && !occupied[i] {
			tracks[i].Collapsed = true
			tracks[i].min = sizingFn{sizingFixed, 0}
			tracks[i].max = sizingFn{sizingFixed, 0}
		}
	}
}
