// Package validation turns CSS declarations into the typed values
// consumed by the grid layout.
//
// Only the properties relevant for grid layout are supported:
// display, the grid-* properties, gaps, box alignment, width, height,
// margins, font-size, line-height and white-space. Other properties are ignored,
// and invalid declarations are dropped with a warning.
package validation

import (
	"strings"

	pa "github.com/benoitkugler/gridlayout/css/parser"
	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/text"
	"github.com/benoitkugler/gridlayout/utils"
)

type (
	Token = pa.Token
	Fl    = utils.Fl
)

// Display is the value of the display property, restricted to what
// matters for grid layout.
type Display uint8

const (
	DisplayBlock Display = iota // any other value
	DisplayGrid
	DisplayInlineGrid
	DisplayNone
)

// IsGrid returns true for grid containers.
func (d Display) IsGrid() bool { return d == DisplayGrid || d == DisplayInlineGrid }

// Style is the computed style of an element.
type Style struct {
	Display Display

	// grid container properties
	Columns, Rows                layout.TrackList
	AutoColumns, AutoRows        []layout.TrackSize
	ColumnGap, RowGap            layout.Length
	Flow                         layout.AutoFlow
	JustifyContent, AlignContent layout.ContentAlignment
	JustifyItems, AlignItems     layout.ItemAlignment

	// grid item properties
	ColumnStart, ColumnEnd GridLine
	RowStart, RowEnd       GridLine
	JustifySelf, AlignSelf layout.ItemAlignment
	// Width and Height are nil for auto.
	Width, Height *layout.Length
	// Margins are top, right, bottom, left, in pixels.
	// auto margins are used as 0.
	Margins [4]Fl

	// inherited properties
	FontSize, LineHeight Fl
	lineHeightFactor     Fl // for line-height: <number>, or normal
	WhiteSpace           text.Whitespace
}

// InitialStyle returns the style of an element without declarations
// nor parent.
func InitialStyle() Style {
	return Style{
		FontSize:         RootFontSize,
		LineHeight:       NormalLineHeight * RootFontSize,
		lineHeightFactor: NormalLineHeight,
		JustifyItems:     layout.ItemNormal,
		AlignItems:       layout.ItemNormal,
	}
}

// inherit returns the initial style of a child of s.
func (s Style) inherit() Style {
	out := InitialStyle()
	out.FontSize = s.FontSize
	out.LineHeight = s.LineHeight
	out.lineHeightFactor = s.lineHeightFactor
	out.WhiteSpace = s.WhiteSpace
	return out
}

// Column returns the placement of the item in the column axis.
func (s Style) Column() layout.Line { return placement(s.ColumnStart, s.ColumnEnd) }

// Row returns the placement of the item in the row axis.
func (s Style) Row() layout.Line { return placement(s.RowStart, s.RowEnd) }

// If `token` is [pa.Ident], return its lower name.
// Otherwise return empty string.
func getKeyword(token Token) string {
	if ident, ok := token.(pa.Ident); ok {
		return utils.AsciiLower(ident.Value)
	}
	return ""
}

// setter validates tokens and applies them to the style.
// tokens are free of top-level whitespace and not empty.
type setter func(s *Style, tokens []Token) bool

var properties = map[string]setter{
	"display":               setDisplay,
	"grid-template-columns": func(s *Style, tokens []Token) (ok bool) { s.Columns, ok = gridTemplate(tokens, s.FontSize); return },
	"grid-template-rows":    func(s *Style, tokens []Token) (ok bool) { s.Rows, ok = gridTemplate(tokens, s.FontSize); return },
	"grid-auto-columns":     func(s *Style, tokens []Token) (ok bool) { s.AutoColumns, ok = gridAuto(tokens, s.FontSize); return },
	"grid-auto-rows":        func(s *Style, tokens []Token) (ok bool) { s.AutoRows, ok = gridAuto(tokens, s.FontSize); return },
	"grid-auto-flow":        func(s *Style, tokens []Token) (ok bool) { s.Flow, ok = gridAutoFlow(tokens); return },
	"column-gap":            func(s *Style, tokens []Token) (ok bool) { s.ColumnGap, ok = gap(tokens, s.FontSize); return },
	"row-gap":               func(s *Style, tokens []Token) (ok bool) { s.RowGap, ok = gap(tokens, s.FontSize); return },
	"gap":                   setGap,
	"grid-column-start":     func(s *Style, tokens []Token) (ok bool) { s.ColumnStart, ok = gridLine(tokens); return },
	"grid-column-end":       func(s *Style, tokens []Token) (ok bool) { s.ColumnEnd, ok = gridLine(tokens); return },
	"grid-row-start":        func(s *Style, tokens []Token) (ok bool) { s.RowStart, ok = gridLine(tokens); return },
	"grid-row-end":          func(s *Style, tokens []Token) (ok bool) { s.RowEnd, ok = gridLine(tokens); return },
	"grid-column": func(s *Style, tokens []Token) (ok bool) {
		s.ColumnStart, s.ColumnEnd, ok = gridLineShorthand(tokens)
		return
	},
	"grid-row": func(s *Style, tokens []Token) (ok bool) {
		s.RowStart, s.RowEnd, ok = gridLineShorthand(tokens)
		return
	},
	"grid-area": setGridArea,
	"justify-content": func(s *Style, tokens []Token) (ok bool) {
		s.JustifyContent, ok = contentAlignment(tokens, true)
		return
	},
	"align-content": func(s *Style, tokens []Token) (ok bool) {
		s.AlignContent, ok = contentAlignment(tokens, false)
		return
	},
	"justify-items": func(s *Style, tokens []Token) (ok bool) {
		s.JustifyItems, ok = itemAlignment(tokens, false, true)
		return
	},
	"align-items": func(s *Style, tokens []Token) (ok bool) {
		s.AlignItems, ok = itemAlignment(tokens, false, false)
		return
	},
	"justify-self": func(s *Style, tokens []Token) (ok bool) {
		s.JustifySelf, ok = itemAlignment(tokens, true, true)
		return
	},
	"align-self": func(s *Style, tokens []Token) (ok bool) {
		s.AlignSelf, ok = itemAlignment(tokens, true, false)
		return
	},
	"width":         func(s *Style, tokens []Token) (ok bool) { s.Width, ok = widthHeight(tokens, s.FontSize); return },
	"height":        func(s *Style, tokens []Token) (ok bool) { s.Height, ok = widthHeight(tokens, s.FontSize); return },
	"margin":        setMargins,
	"margin-top":    marginSide(0),
	"margin-right":  marginSide(1),
	"margin-bottom": marginSide(2),
	"margin-left":   marginSide(3),
	"line-height": func(s *Style, tokens []Token) (ok bool) {
		s.LineHeight, s.lineHeightFactor, ok = lineHeight(tokens, s.FontSize)
		return
	},
	"white-space": func(s *Style, tokens []Token) (ok bool) {
		if len(tokens) != 1 {
			return false
		}
		s.WhiteSpace, ok = text.NewWhiteSpace(getKeyword(tokens[0]))
		return
	},
}

// legacy names of the gap properties
var aliases = map[string]string{
	"grid-column-gap": "column-gap",
	"grid-row-gap":    "row-gap",
	"grid-gap":        "gap",
}

func setDisplay(s *Style, tokens []Token) bool {
	var keywords []string
	for _, token := range tokens {
		kw := getKeyword(token)
		if kw == "" {
			return false
		}
		keywords = append(keywords, kw)
	}
	switch strings.Join(keywords, " ") {
	case "grid", "block grid", "grid block":
		s.Display = DisplayGrid
	case "inline-grid", "inline grid", "grid inline":
		s.Display = DisplayInlineGrid
	case "none":
		s.Display = DisplayNone
	default:
		s.Display = DisplayBlock
	}
	return true
}

// “gap“ shorthand: row-gap, then column-gap.
func setGap(s *Style, tokens []Token) bool {
	if len(tokens) > 2 {
		return false
	}
	row, ok := gap(tokens[:1], s.FontSize)
	if !ok {
		return false
	}
	column := row
	if len(tokens) == 2 {
		if column, ok = gap(tokens[1:], s.FontSize); !ok {
			return false
		}
	}
	s.RowGap, s.ColumnGap = row, column
	return true
}

func setGridArea(s *Style, tokens []Token) bool {
	lines, ok := gridArea(tokens)
	if ok {
		s.RowStart, s.ColumnStart, s.RowEnd, s.ColumnEnd = lines[0], lines[1], lines[2], lines[3]
	}
	return ok
}

// Validation for the “width“ and “height“ properties.
func widthHeight(tokens []Token, fontSize Fl) (*layout.Length, bool) {
	if len(tokens) != 1 {
		return nil, false
	}
	if getKeyword(tokens[0]) == "auto" {
		return nil, true
	}
	l, ok := getLength(tokens[0], fontSize, false, true)
	if !ok {
		return nil, false
	}
	return &l, true
}

// margin returns a margin value; percentages are not supported.
func margin(token Token, fontSize Fl) (Fl, bool) {
	if getKeyword(token) == "auto" {
		return 0, true
	}
	l, ok := getLength(token, fontSize, true, false)
	return l.Px, ok
}

func marginSide(side int) setter {
	return func(s *Style, tokens []Token) bool {
		if len(tokens) != 1 {
			return false
		}
		v, ok := margin(tokens[0], s.FontSize)
		if ok {
			s.Margins[side] = v
		}
		return ok
	}
}

// “margin“ shorthand, with one to four values.
func setMargins(s *Style, tokens []Token) bool {
	if len(tokens) > 4 {
		return false
	}
	var values []Fl
	for _, token := range tokens {
		v, ok := margin(token, s.FontSize)
		if !ok {
			return false
		}
		values = append(values, v)
	}
	switch len(values) {
	case 1:
		values = append(values, values[0], values[0], values[0])
	case 2:
		values = append(values, values[0], values[1])
	case 3:
		values = append(values, values[1])
	}
	copy(s.Margins[:], values)
	return true
}

// ParseStyleAttribute computes the style of an element from its
// “style“ attribute, inheriting from parent.
func ParseStyleAttribute(style string, parent Style) Style {
	return ComputeStyle(pa.ParseDeclarations(style), parent)
}

// ComputeStyle computes the style of an element from its declarations,
// inheriting from parent. Invalid declarations are ignored, with a warning;
// later declarations override earlier ones, and !important declarations
// override the others.
func ComputeStyle(declarations []pa.Compound, parent Style) Style {
	var normal, important []pa.Declaration
	for _, compound := range declarations {
		switch compound := compound.(type) {
		case pa.ParseError:
			logger.WarningLogger.Warnf("invalid declaration at %s: %s", compound.Pos(), compound.Message)
		case pa.Declaration:
			if compound.Important {
				important = append(important, compound)
			} else {
				normal = append(normal, compound)
			}
		}
	}
	sorted := append(normal, important...)

	out := parent.inherit()
	// lengths in em depend on the font size: compute it first
	for _, decl := range sorted {
		if utils.AsciiLower(decl.Name) != "font-size" {
			continue
		}
		if fs, ok := fontSize(pa.RemoveWhitespace(decl.Value), parent.FontSize); ok {
			out.FontSize = fs
		} else {
			ignored(decl, "invalid value")
		}
	}
	if out.lineHeightFactor != 0 {
		out.LineHeight = out.lineHeightFactor * out.FontSize
	}

	for _, decl := range sorted {
		name := utils.AsciiLower(decl.Name)
		if name == "font-size" {
			continue
		}
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		set, ok := properties[name]
		if !ok {
			logger.ProgressLogger.Debugf("unsupported property %s ignored", decl.Name)
			continue
		}
		tokens := pa.RemoveWhitespace(decl.Value)
		if len(tokens) == 0 {
			ignored(decl, "no value")
			continue
		}
		// apply on a copy, so that an invalid value leaves the style untouched
		tmp := out
		if !set(&tmp, tokens) {
			ignored(decl, "invalid value")
			continue
		}
		out = tmp
	}
	return out
}

func ignored(decl pa.Declaration, reason string) {
	logger.WarningLogger.Warnf("ignored `%s: %s`, %s", decl.Name, strings.TrimSpace(decl.Source), reason)
}

// TextStyle returns the properties used to measure the text of the element.
func (s Style) TextStyle(metrics text.Metrics) text.Style {
	return text.Style{FontSize: s.FontSize, LineHeight: s.LineHeight, WhiteSpace: s.WhiteSpace, Metrics: metrics}
}
