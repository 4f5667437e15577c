package text

import "github.com/benoitkugler/gridlayout/utils"

type Fl = utils.Fl

// Whitespace is the value of the white-space property.
type Whitespace uint8

const (
	WNormal Whitespace = iota
	WNowrap
	WPre
	WPreWrap
	WPreLine
	WBreakSpaces
)

// NewWhiteSpace returns the white-space value of a CSS keyword,
// and false if the keyword is not supported.
func NewWhiteSpace(keyword string) (Whitespace, bool) {
	switch keyword {
	case "normal":
		return WNormal, true
	case "nowrap":
		return WNowrap, true
	case "pre":
		return WPre, true
	case "pre-wrap":
		return WPreWrap, true
	case "pre-line":
		return WPreLine, true
	case "break-spaces":
		return WBreakSpaces, true
	default:
		return WNormal, false
	}
}

func (ws Whitespace) String() string {
	switch ws {
	case WNowrap:
		return "nowrap"
	case WPre:
		return "pre"
	case WPreWrap:
		return "pre-wrap"
	case WPreLine:
		return "pre-line"
	case WBreakSpaces:
		return "break-spaces"
	default:
		return "normal"
	}
}

// textWrap returns true if the "white-space" property allows wrapping
func (ws Whitespace) textWrap() bool {
	return ws == WNormal || ws == WPreWrap || ws == WPreLine || ws == WBreakSpaces
}

func (ws Whitespace) spaceCollapse() bool {
	return ws == WNormal || ws == WNowrap || ws == WPreLine
}

// preserveNewlines returns true if segment breaks are forced line breaks.
func (ws Whitespace) preserveNewlines() bool {
	return ws != WNormal && ws != WNowrap
}

// Metrics are the metrics of the monospace font used to measure text,
// as ratios of the font size.
type Metrics struct {
	Advance Fl // width of a narrow character; wide characters take 1em
	Ascent  Fl
	Descent Fl
}

// DefaultMetrics approximates a usual monospace font.
var DefaultMetrics = Metrics{Advance: 0.5, Ascent: 0.8, Descent: 0.2}

// Style exposes the properties required to measure text.
type Style struct {
	FontSize   Fl
	LineHeight Fl
	WhiteSpace Whitespace
	Metrics    Metrics
}
