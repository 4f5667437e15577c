package layout

import (
	"github.com/benoitkugler/gridlayout/logger"
)

// Line is the placement of an item in one axis, as given by the
// grid-row/column-start/end properties. Start and End are 1-based grid lines,
// negative values count from the end of the explicit grid, and 0 means auto.
// Span is used when one of the lines is auto (span 1 if 0).
type Line struct {
	Start, End int
	Span       int
}

// IsAuto returns true if the item has no definite position in the axis.
func (l Line) IsAuto() bool { return l.Start == 0 && l.End == 0 }

// AutoFlow is the grid-auto-flow property.
type AutoFlow struct {
	Column bool // fill columns instead of rows
	Dense  bool
}

// Span is a resolved range of tracks [Start, End), 0-based in the implicit grid.
type Span struct {
	Start, End int
}

// Len returns the number of spanned tracks.
func (s Span) Len() int { return s.End - s.Start }

// span returns the resolved span of l, clamped to 1.
func (l Line) span() int {
	if l.Span < 1 {
		return 1
	}
	return l.Span
}

// lineCoordinate converts a 1-based (or negative) line to a 0-based line
// of the explicit grid, which has explicitCount tracks.
func lineCoordinate(line, explicitCount int) int {
	if line > 0 {
		return line - 1
	}
	return explicitCount + 1 + line
}

// definiteSpan returns the span of l if one of its lines is definite.
// Coordinates are 0-based lines of the explicit grid, and may be negative.
func (l Line) definiteSpan(explicitCount int) (Span, bool) {
	switch {
	case l.Start != 0 && l.End != 0:
		start, end := lineCoordinate(l.Start, explicitCount), lineCoordinate(l.End, explicitCount)
		if end < start {
			start, end = end, start
		} else if end == start {
			end = start + 1
		}
		return Span{start, end}, true
	case l.Start != 0:
		start := lineCoordinate(l.Start, explicitCount)
		return Span{start, start + l.span()}, true
	case l.End != 0:
		end := lineCoordinate(l.End, explicitCount)
		return Span{end - l.span(), end}, true
	default:
		return Span{}, false
	}
}

// Placement is the output of the placement algorithm.
type Placement struct {
	// Areas are the grid areas of the items, in the coordinates of the
	// implicit grid (0 is the first implicit track).
	Areas [][2]Span
	// ImplicitStart is the number of implicit tracks before the explicit grid.
	ImplicitStart [2]int
	// TrackCount is the total number of tracks of the implicit grid.
	TrackCount [2]int
}

type cell [2]int // X, Y

type occupancy map[cell]bool

func (o occupancy) isFree(area [2]Span) bool {
	for x := area[X].Start; x < area[X].End; x++ {
		for y := area[Y].Start; y < area[Y].End; y++ {
			if o[cell{x, y}] {
				return false
			}
		}
	}
	return true
}

func (o occupancy) occupy(area [2]Span) {
	for x := area[X].Start; x < area[X].End; x++ {
		for y := area[Y].Start; y < area[Y].End; y++ {
			o[cell{x, y}] = true
		}
	}
}

// PlaceItems runs the grid item placement algorithm: definite placements
// are resolved, then the remaining items are placed by the auto-placement
// sweep, in document order. explicitCount is the number of explicit tracks
// per axis.
func PlaceItems(lines [][2]Line, explicitCount [2]int, flow AutoFlow) Placement {
	// the major axis is the one in which the cursor advances line by line
	major, minor := Y, X
	if flow.Column {
		major, minor = X, Y
	}

	areas := make([][2]Span, len(lines))
	placed := make([]bool, len(lines))
	grid := occupancy{}

	// 1. Position anything that's not auto-positioned.
	for i, l := range lines {
		sx, okX := l[X].definiteSpan(explicitCount[X])
		sy, okY := l[Y].definiteSpan(explicitCount[Y])
		if okX && okY {
			areas[i] = [2]Span{sx, sy}
			placed[i] = true
			grid.occupy(areas[i])
		}
	}

	// minor extent of the implicit grid, used by the sweep
	minorStart, minorEnd := 0, explicitCount[minor]
	maxAutoMinorSpan := 1
	for _, l := range lines {
		if s, ok := l[minor].definiteSpan(explicitCount[minor]); ok {
			minorStart = min(minorStart, s.Start)
			minorEnd = max(minorEnd, s.End)
		} else {
			maxAutoMinorSpan = max(maxAutoMinorSpan, l[minor].span())
		}
	}
	minorEnd = max(minorEnd, minorStart+maxAutoMinorSpan)

	// 2. Process the items locked to a given major line.
	lockedCursor := map[int]int{} // major start line -> next minor position
	for i, l := range lines {
		if placed[i] {
			continue
		}
		majorSpan, ok := l[major].definiteSpan(explicitCount[major])
		if !ok {
			continue
		}
		span := l[minor].span()
		start := minorStart
		if !flow.Dense {
			if c, has := lockedCursor[majorSpan.Start]; has {
				start = c
			}
		}
		var area [2]Span
		area[major] = majorSpan
		for m := start; ; m++ {
			area[minor] = Span{m, m + span}
			if grid.isFree(area) {
				break
			}
		}
		minorEnd = max(minorEnd, area[minor].End)
		lockedCursor[majorSpan.Start] = area[minor].End
		areas[i], placed[i] = area, true
		grid.occupy(area)
	}

	// 3. Position the remaining grid items.
	majorStart := 0
	for i := range lines {
		if placed[i] {
			majorStart = min(majorStart, areas[i][major].Start)
		}
	}
	cursorMajor, cursorMinor := majorStart, minorStart
	for i, l := range lines {
		if placed[i] {
			continue
		}
		majorSpanLen := l[major].span()
		var area [2]Span
		if minorSpan, ok := l[minor].definiteSpan(explicitCount[minor]); ok {
			// definite minor position, auto major position
			if flow.Dense {
				cursorMajor = majorStart
			} else if minorSpan.Start < cursorMinor {
				cursorMajor++
			}
			cursorMinor = minorSpan.Start
			area[minor] = minorSpan
			for m := cursorMajor; ; m++ {
				area[major] = Span{m, m + majorSpanLen}
				if grid.isFree(area) {
					break
				}
			}
			cursorMajor = area[major].Start
		} else {
			// auto position in both axes
			span := l[minor].span()
			if span > minorEnd-minorStart {
				// cannot happen: minorEnd accounts for the largest span
				logger.WarningLogger.Warnf("item span %d larger than the grid", span)
				minorEnd = minorStart + span
			}
			if flow.Dense {
				cursorMajor, cursorMinor = majorStart, minorStart
			}
			for {
				found := false
				for m := cursorMinor; m+span <= minorEnd; m++ {
					area[minor] = Span{m, m + span}
					area[major] = Span{cursorMajor, cursorMajor + majorSpanLen}
					if grid.isFree(area) {
						found = true
						break
					}
				}
				if found {
					break
				}
				cursorMajor++
				cursorMinor = minorStart
			}
			cursorMinor = area[minor].End
		}
		areas[i], placed[i] = area, true
		grid.occupy(area)
	}

	// shift to the coordinates of the implicit grid
	var out Placement
	for _, axis := range [2]Axis{X, Y} {
		lo, hi := 0, explicitCount[axis]
		for _, area := range areas {
			lo = min(lo, area[axis].Start)
			hi = max(hi, area[axis].End)
		}
		out.ImplicitStart[axis] = -lo
		out.TrackCount[axis] = hi - lo
	}
	for i := range areas {
		for _, axis := range [2]Axis{X, Y} {
			areas[i][axis].Start += out.ImplicitStart[axis]
			areas[i][axis].End += out.ImplicitStart[axis]
		}
	}
	out.Areas = areas
	return out
}
