package validation

import (
	pa "github.com/benoitkugler/gridlayout/css/parser"
	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/utils"
)

// RootFontSize is the initial font size, also used to resolve rem units.
const RootFontSize Fl = 16

// NormalLineHeight is the ratio between line-height: normal and the font size.
const NormalLineHeight Fl = 1.2

// pixels per unit, for absolute units
var lengthUnits = map[string]Fl{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

// font relative units, as a ratio of the font size.
// ex and ch use the metrics of the monospace text measurer.
var fontUnits = map[string]Fl{
	"em": 1,
	"ex": 0.5,
	"ch": 0.5,
}

// Value in pixels of font-size for <absolute-size> keywords: 16px for
// medium, and scaling factors given in CSS3 for others.
var fontSizeKeywords = map[string]Fl{
	"xx-small": RootFontSize * 3 / 5,
	"x-small":  RootFontSize * 3 / 4,
	"small":    RootFontSize * 8 / 9,
	"medium":   RootFontSize,
	"large":    RootFontSize * 6 / 5,
	"x-large":  RootFontSize * 3 / 2,
	"xx-large": RootFontSize * 2,
}

// increasing order of fontSizeKeywords
var keywordsValues = [...]Fl{
	RootFontSize * 3 / 5, RootFontSize * 3 / 4, RootFontSize * 8 / 9, RootFontSize,
	RootFontSize * 6 / 5, RootFontSize * 3 / 2, RootFontSize * 2,
}

// toPixels converts a dimension to pixels. Font relative units
// use fontSize.
func toPixels(value Fl, unit string, fontSize Fl) (Fl, bool) {
	unit = utils.AsciiLower(unit)
	if unit == "rem" {
		return value * RootFontSize, true
	}
	if f, ok := lengthUnits[unit]; ok {
		return value * f, true
	}
	if f, ok := fontUnits[unit]; ok {
		return value * f * fontSize, true
	}
	return 0, false
}

// getLength returns the length of token, which may be a calc() expression.
// negative allows negative values, percentage allows percentages.
func getLength(token Token, fontSize Fl, negative, percentage bool) (layout.Length, bool) {
	switch token := token.(type) {
	case pa.Percentage:
		if percentage && (negative || token.Value >= 0) {
			return layout.Percent(token.Value), true
		}
	case pa.Dimension:
		v, ok := toPixels(token.Value, token.Unit, fontSize)
		if ok && (negative || v >= 0) {
			return layout.Px(v), true
		}
	case pa.Number:
		if token.Value == 0 {
			return layout.Length{}, true
		}
	case pa.FunctionBlock:
		// negative calc() results are clamped when resolved
		l, ok := parseCalc(token, fontSize)
		if ok && (percentage || !l.HasPercentage()) {
			return l, true
		}
	}
	return layout.Length{}, false
}

// parseCalc parses calc() expressions made of sums and differences of
// lengths and percentages, possibly multiplied or divided by numbers.
func parseCalc(fn pa.FunctionBlock, fontSize Fl) (layout.Length, bool) {
	if utils.AsciiLower(fn.Name) != "calc" {
		return layout.Length{}, false
	}
	return parseSum(pa.RemoveWhitespace(fn.Arguments), fontSize)
}

func parseSum(tokens []Token, fontSize Fl) (layout.Length, bool) {
	var (
		out   layout.Length
		sign  Fl = 1
		start int
	)
	for i := 0; i <= len(tokens); i++ {
		if i < len(tokens) && !pa.IsLiteral(tokens[i], "+") && !pa.IsLiteral(tokens[i], "-") {
			continue
		}
		term, ok := parseProduct(tokens[start:i], fontSize)
		if !ok {
			return layout.Length{}, false
		}
		out.Px += sign * term.Px
		out.Percent += sign * term.Percent
		if i < len(tokens) && pa.IsLiteral(tokens[i], "-") {
			sign = -1
		} else {
			sign = 1
		}
		start = i + 1
	}
	return out, true
}

// parseProduct parses a length, multiplied or divided by numbers.
func parseProduct(tokens []Token, fontSize Fl) (layout.Length, bool) {
	var (
		value     layout.Length
		hasLength bool
		factor    Fl = 1
	)
	for i := 0; i < len(tokens); i++ {
		divide := false
		if i != 0 { // an operator is expected
			switch {
			case pa.IsLiteral(tokens[i], "*"):
			case pa.IsLiteral(tokens[i], "/"):
				divide = true
			default:
				return layout.Length{}, false
			}
			i++
			if i == len(tokens) {
				return layout.Length{}, false
			}
		}
		if nb, ok := tokens[i].(pa.Number); ok {
			if !divide {
				factor *= nb.Value
			} else if nb.Value != 0 {
				factor /= nb.Value
			} else {
				return layout.Length{}, false
			}
			continue
		}
		if hasLength || divide {
			return layout.Length{}, false
		}
		var ok bool
		value, ok = calcValue(tokens[i], fontSize)
		if !ok {
			return layout.Length{}, false
		}
		hasLength = true
	}
	if !hasLength {
		return layout.Length{}, false
	}
	return layout.Length{Px: value.Px * factor, Percent: value.Percent * factor}, true
}

func calcValue(token Token, fontSize Fl) (layout.Length, bool) {
	switch token := token.(type) {
	case pa.Percentage:
		return layout.Percent(token.Value), true
	case pa.Dimension:
		v, ok := toPixels(token.Value, token.Unit, fontSize)
		return layout.Px(v), ok
	case pa.ParenthesesBlock:
		return parseSum(pa.RemoveWhitespace(token.Arguments), fontSize)
	case pa.FunctionBlock:
		return parseCalc(token, fontSize)
	}
	return layout.Length{}, false
}

// fontSize computes the font-size property, relative to the font size
// of the parent.
func fontSize(tokens []Token, parent Fl) (Fl, bool) {
	if len(tokens) != 1 {
		return 0, false
	}
	keyword := getKeyword(tokens[0])
	if fs, ok := fontSizeKeywords[keyword]; ok {
		return fs, true
	}
	switch keyword {
	case "larger":
		for _, v := range keywordsValues {
			if v > parent {
				return v, true
			}
		}
		return parent * 1.2, true
	case "smaller":
		for i := len(keywordsValues) - 1; i >= 0; i-- {
			if keywordsValues[i] < parent {
				return keywordsValues[i], true
			}
		}
		return parent * 0.8, true
	}
	l, ok := getLength(tokens[0], parent, false, true)
	if !ok {
		return 0, false
	}
	return utils.ClampPositive(l.Px + l.Percent*parent/100), true
}

// lineHeight returns the used line height, and the factor to apply to the
// font size of the children, which is 0 when the line height is inherited as is.
func lineHeight(tokens []Token, fontSize Fl) (height, factor Fl, ok bool) {
	if len(tokens) != 1 {
		return 0, 0, false
	}
	if getKeyword(tokens[0]) == "normal" {
		return NormalLineHeight * fontSize, NormalLineHeight, true
	}
	if nb, isNumber := tokens[0].(pa.Number); isNumber && nb.Value >= 0 {
		return nb.Value * fontSize, nb.Value, true
	}
	l, ok := getLength(tokens[0], fontSize, false, true)
	if !ok {
		return 0, 0, false
	}
	return utils.ClampPositive(l.Px + l.Percent*fontSize/100), 0, true
}
