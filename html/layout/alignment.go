package layout

import (
	"github.com/benoitkugler/gridlayout/utils"
)

// ContentAlignment is the value of justify-content and align-content,
// distributing the free space of a definite axis between the tracks.
type ContentAlignment uint8

const (
	ContentStart ContentAlignment = iota // default
	ContentEnd
	ContentCenter
	ContentSpaceBetween
	ContentSpaceAround
	ContentSpaceEvenly
	ContentStretch // grows the auto tracks
)

var contentAlignmentNames = [...]string{
	ContentStart:        "start",
	ContentEnd:          "end",
	ContentCenter:       "center",
	ContentSpaceBetween: "space-between",
	ContentSpaceAround:  "space-around",
	ContentSpaceEvenly:  "space-evenly",
	ContentStretch:      "stretch",
}

func (c ContentAlignment) String() string {
	if int(c) < len(contentAlignmentNames) {
		return contentAlignmentNames[c]
	}
	return "start"
}

// ItemAlignment is the value of justify-items/align-items,
// and of justify-self/align-self.
type ItemAlignment uint8

const (
	ItemAuto   ItemAlignment = iota // only for *-self: use the container *-items value
	ItemNormal                      // stretch, or start for items with a preferred size
	ItemStart
	ItemEnd
	ItemCenter
	ItemStretch
	ItemBaseline
	ItemLastBaseline
)

var itemAlignmentNames = [...]string{
	ItemAuto:         "auto",
	ItemNormal:       "normal",
	ItemStart:        "start",
	ItemEnd:          "end",
	ItemCenter:       "center",
	ItemStretch:      "stretch",
	ItemBaseline:     "baseline",
	ItemLastBaseline: "last baseline",
}

func (a ItemAlignment) String() string {
	if int(a) < len(itemAlignmentNames) {
		return itemAlignmentNames[a]
	}
	return "normal"
}

// resolveItemAlignment returns the used alignment of an item: self wins
// over the container value, and normal is resolved according to
// hasPreferredSize.
func resolveItemAlignment(self, items ItemAlignment, hasPreferredSize bool) ItemAlignment {
	align := self
	if align == ItemAuto {
		align = items
	}
	if align == ItemNormal || align == ItemAuto {
		if hasPreferredSize {
			return ItemStart
		}
		return ItemStretch
	}
	if align == ItemStretch && hasPreferredSize {
		return ItemStart
	}
	return align
}

// stretchAutoTracks grows the tracks with an auto maximum by an equal
// share of the free space of a definite axis.
func stretchAutoTracks(tracks []GridTrack, gap Fl, size AxisSize, align ContentAlignment) {
	if align != ContentStretch || !size.Definite {
		return
	}
	free := size.Size - totalGaps(tracks, gap)
	var auto []int
	for i := range tracks {
		free -= tracks[i].BaseSize
		if !tracks[i].Collapsed && tracks[i].max.kind == sizingAuto {
			auto = append(auto, i)
		}
	}
	if free <= 0 || len(auto) == 0 {
		return
	}
	share := free / Fl(len(auto))
	for _, i := range auto {
		tracks[i].BaseSize += share
	}
}

// distributeContent returns the offset of each track in the content box,
// applying the content alignment of the free space, and the end of the
// last track.
func distributeContent(tracks []GridTrack, gap Fl, size AxisSize, align ContentAlignment) (offsets []Fl, end Fl) {
	sizes := trackSizes(tracks)
	collapsed := make([]bool, len(tracks))
	for i := range tracks {
		collapsed[i] = tracks[i].Collapsed
	}
	var start, between Fl
	_, extent := accumulateOffsets(sizes, collapsed, gap, 0, 0)
	if free := size.Size - extent; size.Definite && free > 0 {
		start, between = contentDistribution(align, free, visibleTracks(tracks))
	}
	offsets, extent = accumulateOffsets(sizes, collapsed, gap, start, between)
	return offsets, start + extent
}

// contentDistribution returns the space before the first track and the
// space added between tracks, for a positive free space and n visible tracks.
func contentDistribution(align ContentAlignment, free Fl, n int) (start, between Fl) {
	if n == 0 {
		return 0, 0
	}
	switch align {
	case ContentEnd:
		return free, 0
	case ContentCenter:
		return free / 2, 0
	case ContentSpaceBetween:
		if n <= 1 {
			return 0, 0
		}
		return 0, free / Fl(n-1)
	case ContentSpaceAround:
		between = free / Fl(n)
		return between / 2, between
	case ContentSpaceEvenly:
		between = free / Fl(n+1)
		return between, between
	default: // start, and stretch which already grew the tracks
		return 0, 0
	}
}

// Margin is the margin of an item in one axis.
type Margin struct {
	Start, End Fl
}

// alignInArea returns the offset and size of the content of an item in
// its grid area [areaStart, areaStart+areaSize), given its own size.
// Baseline values must be handled by the caller, and fall back to start.
func alignInArea(align ItemAlignment, areaStart, areaSize Fl, margin Margin, size Fl) (offset, used Fl) {
	available := utils.ClampPositive(areaSize - margin.Start - margin.End)
	switch align {
	case ItemStretch:
		return areaStart + margin.Start, available
	case ItemEnd:
		return areaStart + areaSize - margin.End - size, size
	case ItemCenter:
		return areaStart + margin.Start + (available-size)/2, size
	default:
		return areaStart + margin.Start, size
	}
}

// baselineItem is an item taking part in baseline alignment in a row.
type baselineItem struct {
	item int // index in the item list
	row  int // single spanned row
	last bool
	// distances from the top margin edge to the baseline, and from the
	// baseline to the bottom margin edge
	ascent, descent Fl
}

type baselineGroup struct {
	row  int
	last bool
}

// sharedBaseline is the common ascent and descent of a baseline group.
type sharedBaseline struct {
	ascent, descent Fl
}

// shimBaselines computes the shared baseline of each group of items, and
// grows the rows shorter than the shared ascent plus descent.
func shimBaselines(rows []GridTrack, items []baselineItem) map[baselineGroup]sharedBaseline {
	groups := map[baselineGroup]sharedBaseline{}
	for _, it := range items {
		key := baselineGroup{it.row, it.last}
		g := groups[key]
		g.ascent = utils.MaxF(g.ascent, it.ascent)
		g.descent = utils.MaxF(g.descent, it.descent)
		groups[key] = g
	}
	for key, g := range groups {
		if t := &rows[key.row]; t.BaseSize < g.ascent+g.descent {
			t.BaseSize = g.ascent + g.descent
		}
	}
	return groups
}

// baselineOffset returns the position of the top margin edge of a
// baseline-aligned item: first baseline groups are aligned at the start
// of the row, last baseline groups at its end.
func baselineOffset(it baselineItem, shared sharedBaseline, rowStart, rowSize Fl) Fl {
	if it.last {
		return rowStart + rowSize - shared.descent - it.ascent
	}
	return rowStart + shared.ascent - it.ascent
}
