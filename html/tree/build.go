package tree

import (
	"github.com/benoitkugler/gridlayout/css/validation"
	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/text"
	"github.com/benoitkugler/gridlayout/utils"
)

type Fl = utils.Fl

// Grid is a grid container built from an element.
// It implements [layout.IntrinsicSizer], so that grids may be nested.
type Grid struct {
	*layout.Container
	Element *Element
	// Sources holds the element of each item of the container.
	Sources []*Element

	invalidator *layout.ResizeInvalidator
}

// Layout lays out g with the given content-box size. Successive calls
// with the same size reuse the previous geometry.
func (g *Grid) Layout(width, height layout.AxisSize) layout.Geometry {
	if g.invalidator == nil {
		g.invalidator = layout.NewResizeInvalidator(*g.Container)
	}
	g.invalidator.SetSize(width, height)
	geometry, _ := g.invalidator.Flush()
	return geometry
}

// Passes returns the number of layout passes run on g.
func (g *Grid) Passes() int {
	if g.invalidator == nil {
		return 0
	}
	return g.invalidator.Passes()
}

// fixedBox is the content of elements with known intrinsic sizes.
type fixedBox Intrinsic

func (f fixedBox) Measure(q layout.Query) Fl {
	if q.Axis == layout.Y {
		return f.Height
	}
	return layout.ApplyConstraint(q.Constraint, f.MinWidth, f.MaxWidth)
}

func (f fixedBox) Baselines(q layout.Query) (first, last Fl) {
	if f.Baseline == 0 {
		return f.Height, f.Height
	}
	return f.Baseline, f.Baseline
}

// flow stacks block-level children vertically. There are no floats nor
// inline formatting contexts: inline elements are laid out as blocks,
// and margins don't collapse.
type flow struct {
	children []flowChild
}

type flowChild struct {
	content layout.IntrinsicSizer
	size    [2]*layout.Length
	margins [4]Fl // top, right, bottom, left
	shrink  bool  // inline-level boxes use a fit-content width
}

// placedChild is the content box of a child, relative to the
// content box of the flow.
type placedChild struct {
	x, y, width, height Fl
}

// intrinsicWidth returns the margin box width of c.
func (c flowChild) intrinsicWidth(kind layout.ConstraintKind) Fl {
	margins := c.margins[1] + c.margins[3]
	if l := c.size[layout.X]; l != nil {
		// percentages are cyclic here: only the fixed part contributes
		return l.ResolveOrFixed(layout.Indefinite) + margins
	}
	return c.content.Measure(layout.Query{
		Axis:       layout.X,
		Constraint: layout.Constraint{Kind: kind},
		Cross:      layout.Constraint{Kind: layout.MaxContent},
	}) + margins
}

func (f *flow) Measure(q layout.Query) Fl {
	if q.Axis == layout.X {
		var minContent, maxContent Fl
		for _, c := range f.children {
			minContent = utils.MaxF(minContent, c.intrinsicWidth(layout.MinContent))
			maxContent = utils.MaxF(maxContent, c.intrinsicWidth(layout.MaxContent))
		}
		return layout.ApplyConstraint(q.Constraint, minContent, maxContent)
	}
	width := q.Cross.Size
	if q.Cross.Kind != layout.DefiniteSpace {
		width = f.Measure(layout.Query{Axis: layout.X, Constraint: q.Cross})
	}
	_, height := f.place(width, layout.Indefinite)
	return height
}

// place positions the children in a content box of the given width.
// height is used to resolve percentage heights.
func (f *flow) place(width Fl, height layout.AxisSize) ([]placedChild, Fl) {
	out := make([]placedChild, len(f.children))
	var y Fl
	for i, c := range f.children {
		available := utils.ClampPositive(width - c.margins[1] - c.margins[3])
		w := available
		if l := c.size[layout.X]; l != nil {
			w, _ = l.Resolve(layout.Definite(width))
		} else if c.shrink {
			w = c.content.Measure(layout.Query{
				Axis:       layout.X,
				Constraint: layout.DefiniteConstraint(available),
				Cross:      layout.Constraint{Kind: layout.MaxContent},
			})
		}

		y += c.margins[0]
		var h Fl
		resolved := false
		if l := c.size[layout.Y]; l != nil {
			h, resolved = l.Resolve(height)
		}
		if !resolved {
			h = c.content.Measure(layout.Query{
				Axis:       layout.Y,
				Constraint: layout.Constraint{Kind: layout.MaxContent},
				Cross:      layout.DefiniteConstraint(w),
			})
		}
		out[i] = placedChild{x: c.margins[3], y: y, width: w, height: h}
		y += h + c.margins[2]
	}
	return out, y
}

// builder converts elements to layout contents.
type builder struct {
	metrics text.Metrics
}

func (b builder) content(e *Element) layout.IntrinsicSizer {
	switch {
	case e.Intrinsic != nil:
		return fixedBox(*e.Intrinsic)
	case e.IsText():
		return text.NewBox(e.Text, e.Style.TextStyle(b.metrics))
	case e.Style.Display.IsGrid():
		return b.grid(e)
	default:
		return b.flow(e)
	}
}

func (b builder) grid(e *Element) *Grid {
	st := e.Style
	out := &Grid{Element: e, Container: &layout.Container{
		Columns:        st.Columns,
		Rows:           st.Rows,
		AutoColumns:    st.AutoColumns,
		AutoRows:       st.AutoRows,
		ColumnGap:      st.ColumnGap,
		RowGap:         st.RowGap,
		Flow:           st.Flow,
		JustifyContent: st.JustifyContent,
		AlignContent:   st.AlignContent,
		JustifyItems:   st.JustifyItems,
		AlignItems:     st.AlignItems,
	}}
	for _, child := range e.Children {
		// each child element, and each text run, is a grid item
		if child.isCollapsible() {
			continue
		}
		out.Container.Items = append(out.Container.Items, b.item(child))
		out.Sources = append(out.Sources, child)
	}
	return out
}

func (b builder) item(e *Element) layout.Item {
	st := e.Style
	return layout.Item{
		Column:  st.Column(),
		Row:     st.Row(),
		Content: b.content(e),
		Size:    [2]*layout.Length{st.Width, st.Height},
		Margins: [2]layout.Margin{
			{Start: st.Margins[3], End: st.Margins[1]},
			{Start: st.Margins[0], End: st.Margins[2]},
		},
		JustifySelf: st.JustifySelf,
		AlignSelf:   st.AlignSelf,
	}
}

func (b builder) flowChild(e *Element) flowChild {
	return flowChild{
		content: b.content(e),
		size:    [2]*layout.Length{e.Style.Width, e.Style.Height},
		margins: e.Style.Margins,
		shrink:  e.Style.Display == validation.DisplayInlineGrid,
	}
}

func (b builder) flow(e *Element) *flow {
	out := &flow{}
	for _, child := range e.Children {
		if child.isCollapsible() {
			continue
		}
		out.children = append(out.children, b.flowChild(child))
	}
	return out
}
