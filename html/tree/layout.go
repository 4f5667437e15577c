package tree

import (
	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/text"
)

// Box is the position of a laid out element. X and Y are relative to the
// content box of the parent box, or to the viewport for the top level
// boxes.
type Box struct {
	Name   string `json:"name" yaml:"name"`
	X      Fl     `json:"x" yaml:"x"`
	Y      Fl     `json:"y" yaml:"y"`
	Width  Fl     `json:"width" yaml:"width"`
	Height Fl     `json:"height" yaml:"height"`

	// Column and Row are the lines bounding the grid area of an item,
	// numbered from the first line of the explicit grid.
	Column *[2]int `json:"column,omitempty" yaml:"column,omitempty,flow"`
	Row    *[2]int `json:"row,omitempty" yaml:"row,omitempty,flow"`

	// Grid is set for grid containers.
	Grid *GridBox `json:"grid,omitempty" yaml:"grid,omitempty"`
	// Children are the grid containers nested in the non-grid content
	// of the box.
	Children []Box `json:"children,omitempty" yaml:"children,omitempty"`
}

// Track is the used position of a column or a row.
type Track struct {
	Offset    Fl   `json:"offset" yaml:"offset"`
	Size      Fl   `json:"size" yaml:"size"`
	Collapsed bool `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

// GridBox is the layout of a grid container.
type GridBox struct {
	Columns []Track `json:"columns" yaml:"columns"`
	Rows    []Track `json:"rows" yaml:"rows"`
	Items   []Box   `json:"items" yaml:"items"`
}

// Viewport is the area in which a document is laid out.
type Viewport struct {
	Width Fl
	// Height is used to resolve percentage heights; 0 means indefinite.
	Height Fl
}

// Measurement is the intrinsic size of a grid container.
type Measurement struct {
	Name       string `json:"name" yaml:"name"`
	MinContent Fl     `json:"min_content" yaml:"min_content"`
	MaxContent Fl     `json:"max_content" yaml:"max_content"`
	// Height is the height of the grid at its max-content width.
	Height Fl `json:"height" yaml:"height"`
}

// root returns the layout content of the document, a flow holding the
// root element. It is built once, so that successive layouts of the
// grids only run when needed.
func (d *Document) root(metrics text.Metrics) *flow {
	if d.content == nil || d.metrics != metrics {
		b := builder{metrics: metrics}
		d.content = &flow{children: []flowChild{b.flowChild(d.Root)}}
		d.metrics = metrics
	}
	return d.content
}

// Layout lays out the document in the viewport, and returns the top
// level grid containers.
func (d *Document) Layout(viewport Viewport, metrics text.Metrics) []Box {
	logger.ProgressLogger.Debugf("layout of %s in %gx%g", d.Name, viewport.Width, viewport.Height)
	height := layout.Indefinite
	if viewport.Height > 0 {
		height = layout.Definite(viewport.Height)
	}
	return layoutFlow(d.root(metrics), viewport.Width, height)
}

// Measure returns the intrinsic sizes of the top level grid containers.
func (d *Document) Measure(metrics text.Metrics) []Measurement {
	var out []Measurement
	for _, g := range topLevelGrids(d.root(metrics)) {
		q := layout.Query{Axis: layout.X, Cross: layout.Constraint{Kind: layout.MaxContent}}
		q.Constraint.Kind = layout.MinContent
		minContent := g.Measure(q)
		q.Constraint.Kind = layout.MaxContent
		maxContent := g.Measure(q)
		height := g.Measure(layout.Query{
			Axis:       layout.Y,
			Constraint: layout.Constraint{Kind: layout.MaxContent},
			Cross:      layout.DefiniteConstraint(maxContent),
		})
		out = append(out, Measurement{Name: g.Element.Name(), MinContent: minContent, MaxContent: maxContent, Height: height})
	}
	return out
}

func topLevelGrids(content layout.IntrinsicSizer) []*Grid {
	switch content := content.(type) {
	case *Grid:
		return []*Grid{content}
	case *flow:
		var out []*Grid
		for _, child := range content.children {
			out = append(out, topLevelGrids(child.content)...)
		}
		return out
	}
	return nil
}

// layoutContent lays out the grids found in content, with the given
// content-box size.
func layoutContent(content layout.IntrinsicSizer, width, height Fl) []Box {
	switch content := content.(type) {
	case *Grid:
		return []Box{content.box(width, height)}
	case *flow:
		return layoutFlow(content, width, layout.Definite(height))
	}
	return nil
}

func layoutFlow(f *flow, width Fl, height layout.AxisSize) []Box {
	placed, _ := f.place(width, height)
	var out []Box
	for i, child := range f.children {
		p := placed[i]
		for _, box := range layoutContent(child.content, p.width, p.height) {
			box.X += p.x
			box.Y += p.y
			out = append(out, box)
		}
	}
	return out
}

// explicitLines converts a span of the implicit grid to line numbers.
func explicitLines(span layout.Span, implicitStart int) *[2]int {
	return &[2]int{span.Start - implicitStart + 1, span.End - implicitStart + 1}
}

func tracks(geometry []layout.TrackGeometry) []Track {
	out := make([]Track, len(geometry))
	for i, t := range geometry {
		out[i] = Track{Offset: t.Offset, Size: t.Size, Collapsed: t.Collapsed}
	}
	return out
}

// box lays out g and its nested grids.
func (g *Grid) box(width, height Fl) Box {
	geometry := g.Layout(layout.Definite(width), layout.Definite(height))
	out := Box{
		Name:  g.Element.Name(),
		Width: width, Height: height,
		Grid: &GridBox{
			Columns: tracks(geometry.Columns),
			Rows:    tracks(geometry.Rows),
		},
	}
	for i, it := range geometry.Items {
		rect := it.Rect
		item := Box{
			Name: g.Sources[i].Name(),
			X:    rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height,
			Column: explicitLines(it.Column, geometry.ImplicitStart[layout.X]),
			Row:    explicitLines(it.Row, geometry.ImplicitStart[layout.Y]),
		}
		switch content := g.Container.Items[i].Content.(type) {
		case *Grid:
			item.Grid = content.box(rect.Width, rect.Height).Grid
		default:
			item.Children = layoutContent(content, rect.Width, rect.Height)
		}
		out.Grid.Items = append(out.Grid.Items, item)
	}
	return out
}
