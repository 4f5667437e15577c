package layout

// Layout for grid containers.
// See https://www.w3.org/TR/css-grid-1/#layout-algorithm

// Item is a grid item.
type Item struct {
	Column, Row Line
	// Content is the intrinsic-size provider of the item. A nil Content
	// is an empty item.
	Content IntrinsicSizer
	// Size is the optional preferred width and height of the item.
	// Percentages are resolved against the grid area.
	Size    [2]*Length
	Margins [2]Margin

	JustifySelf, AlignSelf ItemAlignment
}

func (it *Item) line(axis Axis) Line {
	if axis == X {
		return it.Column
	}
	return it.Row
}

// Container is a grid container, with its content-box size.
type Container struct {
	Columns, Rows TrackList
	// AutoColumns and AutoRows size the implicit tracks, and are
	// cycled. Empty lists mean auto.
	AutoColumns, AutoRows []TrackSize
	ColumnGap, RowGap     Length
	Flow                  AutoFlow

	Width, Height AxisSize

	JustifyContent, AlignContent ContentAlignment
	JustifyItems, AlignItems     ItemAlignment

	Items []Item
}

func (c *Container) template(axis Axis) TrackList {
	if axis == X {
		return c.Columns
	}
	return c.Rows
}

func (c *Container) autoTracks(axis Axis) []TrackSize {
	if axis == X {
		return c.AutoColumns
	}
	return c.AutoRows
}

func (c *Container) gap(axis Axis) Length {
	if axis == X {
		return c.ColumnGap
	}
	return c.RowGap
}

func (c *Container) size(axis Axis) AxisSize {
	if axis == X {
		return c.Width
	}
	return c.Height
}

func (c *Container) contentAlignment(axis Axis) ContentAlignment {
	if axis == X {
		return c.JustifyContent
	}
	return c.AlignContent
}

func (c *Container) itemAlignment(it *Item, axis Axis) ItemAlignment {
	if axis == X {
		return resolveItemAlignment(it.JustifySelf, c.JustifyItems, it.Size[X] != nil)
	}
	return resolveItemAlignment(it.AlignSelf, c.AlignItems, it.Size[Y] != nil)
}

// Rect is a rectangle relative to the content box of the container.
type Rect struct {
	X, Y, Width, Height Fl
}

// TrackGeometry is the used position of a row or column.
type TrackGeometry struct {
	Offset, Size Fl
	Collapsed    bool
}

// ItemGeometry is the used position of an item.
type ItemGeometry struct {
	// Rect is the content box of the item, excluding its margins.
	Rect        Rect
	Column, Row Span // grid area, in the implicit grid
}

// Geometry is the result of a layout pass.
type Geometry struct {
	Columns, Rows []TrackGeometry
	Items         []ItemGeometry
	// ImplicitStart is the number of implicit tracks before the
	// explicit grid, for columns and rows.
	ImplicitStart [2]int
	// ContentSize is the extent of the tracks, from the content box
	// start to the end of the last track.
	ContentSize [2]Fl
	// Size is the used content-box size of the container: the definite
	// size, or the content size for an indefinite axis.
	Size [2]Fl
}

// Layout runs the layout pass on c. Indefinite axes are sized to their
// max-content size.
func (c *Container) Layout() Geometry {
	var available [2]Constraint
	for _, axis := range [2]Axis{X, Y} {
		if s := c.size(axis); s.Definite {
			available[axis] = DefiniteConstraint(s.Size)
		} else {
			available[axis] = maxContentConstraint
		}
	}
	g := newGrid(c, available)
	g.sizeColumns()
	g.sizeRows()
	return g.geometry()
}

// Measure implements IntrinsicSizer, so that a grid may be nested in a
// grid item. A definite axis measures its size; otherwise the tracks are
// sized under the given constraint, and the result is the tracks extent.
func (c *Container) Measure(q Query) Fl {
	if s := c.size(q.Axis); s.Definite {
		return s.Size
	}
	switch q.Constraint.Kind {
	case MinContent, MaxContent:
		return c.measure(q.Axis, q.Constraint, q.Cross)
	default:
		minContent := c.measure(q.Axis, minContentConstraint, q.Cross)
		maxContent := c.measure(q.Axis, maxContentConstraint, q.Cross)
		return fitContent(minContent, maxContent, q.Constraint.Size)
	}
}

func (c *Container) measure(axis Axis, constraint, cross Constraint) Fl {
	var available [2]Constraint
	available[axis] = constraint
	other := axis.other()
	if s := c.size(other); s.Definite {
		available[other] = DefiniteConstraint(s.Size)
	} else {
		available[other] = cross
	}
	g := newGrid(c, available)
	g.sizeColumns()
	if axis == Y {
		g.sizeRows()
	}
	return g.extent(axis)
}

// grid is the state of one layout or measure pass.
type grid struct {
	c         *Container
	available [2]Constraint
	size      [2]AxisSize
	gaps      [2]Fl

	tracks        [2][]GridTrack
	implicitStart [2]int
	areas         [][2]Span

	offsets [2][]Fl
	ends    [2]Fl
	rects   []Rect
}

func axisSizeOf(c Constraint) AxisSize {
	if c.Kind == DefiniteSpace {
		return Definite(c.Size)
	}
	return Indefinite
}

// newGrid resolves the track lists, places the items and builds the
// implicit grid.
func newGrid(c *Container, available [2]Constraint) *grid {
	g := &grid{c: c, available: available}

	var (
		explicit      [2][]GridTrack
		explicitCount [2]int
	)
	for _, axis := range [2]Axis{X, Y} {
		g.size[axis] = axisSizeOf(available[axis])
		g.gaps[axis] = resolveGap(c.gap(axis), g.size[axis])
		explicit[axis] = ResolveTrackList(c.template(axis), axis, g.size[axis], c.gap(axis), len(c.Items))
		explicitCount[axis] = len(explicit[axis])
	}

	lines := make([][2]Line, len(c.Items))
	for i := range c.Items {
		lines[i] = [2]Line{c.Items[i].Column, c.Items[i].Row}
	}
	placement := PlaceItems(lines, explicitCount, c.Flow)
	g.areas = placement.Areas
	g.implicitStart = placement.ImplicitStart

	for _, axis := range [2]Axis{X, Y} {
		before := placement.ImplicitStart[axis]
		after := placement.TrackCount[axis] - before - explicitCount[axis]
		tracks := make([]GridTrack, 0, placement.TrackCount[axis])
		sizes := implicitTrackSizes(c.autoTracks(axis), before, true)
		for i := before - 1; i >= 0; i-- {
			tracks = append(tracks, g.implicitTrack(axis, sizes[i]))
		}
		tracks = append(tracks, explicit[axis]...)
		for _, ts := range implicitTrackSizes(c.autoTracks(axis), after, false) {
			tracks = append(tracks, g.implicitTrack(axis, ts))
		}

		occupied := make([]bool, len(tracks))
		for _, area := range g.areas {
			for i := area[axis].Start; i < area[axis].End; i++ {
				occupied[i] = true
			}
		}
		collapseAutoFit(tracks, occupied)
		for i := range tracks {
			tracks[i].Index = i
		}
		g.tracks[axis] = tracks
	}
	return g
}

func (g *grid) implicitTrack(axis Axis, ts TrackSize) GridTrack {
	if !isValidTrackSize(ts) {
		ts = Auto{}
	}
	return newGridTrack(axis, resolveTrackPercentages(ts, g.size[axis]), true)
}

// contribution returns the margin box size of it in axis.
// Percentages of the preferred size are not resolved during intrinsic
// sizing: only the fixed part of the size contributes.
func (it *Item) contribution(axis Axis, kind ConstraintKind, cross Constraint) Fl {
	m := it.Margins[axis]
	margins := m.Start + m.End
	if l := it.Size[axis]; l != nil {
		return l.ResolveOrFixed(Indefinite) + margins
	}
	if it.Content == nil {
		return margins
	}
	return it.Content.Measure(Query{Axis: axis, Constraint: Constraint{Kind: kind}, Cross: cross}) + margins
}

// areaSize returns the size of the grid area of item i in axis, once the
// tracks of the axis are sized.
func (g *grid) areaSize(axis Axis, i int) Fl {
	span := g.areas[i][axis]
	size := spanGaps(g.tracks[axis], span.Start, span.End, g.gaps[axis])
	for j := span.Start; j < span.End; j++ {
		size += g.tracks[axis][j].BaseSize
	}
	return size
}

func (g *grid) sizeAxis(axis Axis, cross func(i int) Constraint) {
	items := make([]SizingItem, len(g.c.Items))
	for i := range g.c.Items {
		it, crossConstraint := &g.c.Items[i], cross(i)
		items[i] = SizingItem{
			Span: g.areas[i][axis],
			Contribution: func(kind ConstraintKind) Fl {
				return it.contribution(axis, kind, crossConstraint)
			},
		}
	}
	SizeTracks(g.tracks[axis], items, g.gaps[axis], g.available[axis])
	stretchAutoTracks(g.tracks[axis], g.gaps[axis], g.size[axis], g.c.contentAlignment(axis))
}

// extent returns the space taken by the tracks and gaps of axis.
func (g *grid) extent(axis Axis) Fl {
	sizes := trackSizes(g.tracks[axis])
	collapsed := make([]bool, len(sizes))
	for i := range g.tracks[axis] {
		collapsed[i] = g.tracks[axis][i].Collapsed
	}
	_, extent := accumulateOffsets(sizes, collapsed, g.gaps[axis], 0, 0)
	return extent
}

// sizeColumns sizes the columns and positions the items horizontally.
func (g *grid) sizeColumns() {
	// rows are not sized yet: items see an unconstrained height
	g.sizeAxis(X, func(int) Constraint { return maxContentConstraint })
	g.offsets[X], g.ends[X] = distributeContent(g.tracks[X], g.gaps[X], g.size[X], g.c.JustifyContent)

	g.rects = make([]Rect, len(g.c.Items))
	for i := range g.c.Items {
		it := &g.c.Items[i]
		area := g.areas[i][X]
		areaStart, areaSize := g.offsets[X][area.Start], g.areaSize(X, i)
		align := g.c.itemAlignment(it, X)
		if align == ItemBaseline || align == ItemLastBaseline {
			// items have no vertical baseline in the inline axis
			align = ItemStart
		}
		margin := it.Margins[X]
		available := areaSize - margin.Start - margin.End
		var width Fl
		if l := it.Size[X]; l != nil {
			width, _ = l.Resolve(Definite(areaSize))
		} else if align != ItemStretch && it.Content != nil {
			width = it.Content.Measure(Query{Axis: X, Constraint: DefiniteConstraint(available), Cross: maxContentConstraint})
		}
		g.rects[i].X, g.rects[i].Width = alignInArea(align, areaStart, areaSize, margin, width)
	}
}

// contentHeight returns the height of the content of it at the given width.
func contentHeight(it *Item, width Fl) Fl {
	if it.Content == nil {
		return 0
	}
	return it.Content.Measure(Query{Axis: Y, Constraint: maxContentConstraint, Cross: DefiniteConstraint(width)})
}

// sizeRows sizes the rows, using the item widths, and positions the items
// vertically. It must be called after sizeColumns.
func (g *grid) sizeRows() {
	g.sizeAxis(Y, func(i int) Constraint { return DefiniteConstraint(g.rects[i].Width) })

	// baseline alignment of the items spanning one row
	var baselines []baselineItem
	heights := make([]Fl, len(g.c.Items))
	for i := range g.c.Items {
		it := &g.c.Items[i]
		align := g.c.itemAlignment(it, Y)
		if l := it.Size[Y]; l != nil {
			heights[i] = l.ResolveOrFixed(Indefinite)
		} else if align != ItemStretch {
			heights[i] = contentHeight(it, g.rects[i].Width)
		}
		if (align != ItemBaseline && align != ItemLastBaseline) || g.areas[i][Y].Len() != 1 {
			continue
		}
		margin := it.Margins[Y]
		baseline := margin.Start + heights[i] // synthesized from the bottom edge
		if b, ok := it.Content.(Baseliner); ok && it.Size[Y] == nil {
			first, last := b.Baselines(Query{Axis: Y, Constraint: maxContentConstraint, Cross: DefiniteConstraint(g.rects[i].Width)})
			if align == ItemLastBaseline {
				baseline = margin.Start + last
			} else {
				baseline = margin.Start + first
			}
		}
		marginBox := margin.Start + heights[i] + margin.End
		baselines = append(baselines, baselineItem{
			item:    i,
			row:     g.areas[i][Y].Start,
			last:    align == ItemLastBaseline,
			ascent:  baseline,
			descent: marginBox - baseline,
		})
	}
	shared := shimBaselines(g.tracks[Y], baselines)

	g.offsets[Y], g.ends[Y] = distributeContent(g.tracks[Y], g.gaps[Y], g.size[Y], g.c.AlignContent)

	isBaseline := make(map[int]baselineItem, len(baselines))
	for _, b := range baselines {
		isBaseline[b.item] = b
	}
	for i := range g.c.Items {
		it := &g.c.Items[i]
		area := g.areas[i][Y]
		areaStart, areaSize := g.offsets[Y][area.Start], g.areaSize(Y, i)
		if l := it.Size[Y]; l != nil && l.HasPercentage() {
			heights[i], _ = l.Resolve(Definite(areaSize))
		}
		if b, ok := isBaseline[i]; ok {
			s := shared[baselineGroup{b.row, b.last}]
			g.rects[i].Y = baselineOffset(b, s, areaStart, areaSize) + it.Margins[Y].Start
			g.rects[i].Height = heights[i]
			continue
		}
		align := g.c.itemAlignment(it, Y)
		if align == ItemBaseline || align == ItemLastBaseline {
			align = ItemStart
		}
		g.rects[i].Y, g.rects[i].Height = alignInArea(align, areaStart, areaSize, it.Margins[Y], heights[i])
	}
}

func (g *grid) geometry() Geometry {
	var out Geometry
	out.ImplicitStart = g.implicitStart
	for _, axis := range [2]Axis{X, Y} {
		tracks := make([]TrackGeometry, len(g.tracks[axis]))
		for i, t := range g.tracks[axis] {
			tracks[i] = TrackGeometry{Offset: g.offsets[axis][i], Size: t.BaseSize, Collapsed: t.Collapsed}
		}
		if axis == X {
			out.Columns = tracks
		} else {
			out.Rows = tracks
		}
		out.ContentSize[axis] = g.ends[axis]
		if g.size[axis].Definite {
			out.Size[axis] = g.size[axis].Size
		} else {
			out.Size[axis] = g.ends[axis]
		}
	}
	out.Items = make([]ItemGeometry, len(g.c.Items))
	for i := range g.c.Items {
		out.Items[i] = ItemGeometry{Rect: g.rects[i], Column: g.areas[i][X], Row: g.areas[i][Y]}
	}
	return out
}
