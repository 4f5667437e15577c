// Package text measures text runs with monospace metrics, and breaks
// them into lines.
package text

import (
	"strings"
	"unicode"

	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/utils"
	"golang.org/x/text/width"
)

// tabs are expanded to this number of spaces when preserved
const tabSize = 8

// used to compare line widths
const epsilon = 1e-6

// segment is an unbreakable part of a line: a word followed by spaces,
// which hang at the end of a line.
type segment struct {
	width  Fl // without the trailing spaces
	spaces Fl
}

// Box is a run of text, measured with the monospace metrics of its style.
// It implements [layout.IntrinsicSizer] and [layout.Baseliner].
type Box struct {
	Text  string
	Style Style

	paragraphs [][]segment // separated by forced line breaks
	empty      bool
	minContent Fl
	maxContent Fl
}

var (
	_ layout.IntrinsicSizer = (*Box)(nil)
	_ layout.Baseliner      = (*Box)(nil)
)

// NewBox splits text into breakable segments, according to
// the white-space property of style.
func NewBox(text string, style Style) *Box {
	b := &Box{Text: text, Style: style}
	ws := style.WhiteSpace

	var paragraphs []string
	if ws.preserveNewlines() {
		paragraphs = strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	} else {
		paragraphs = []string{text}
	}
	for _, para := range paragraphs {
		b.paragraphs = append(b.paragraphs, b.segments(para))
	}
	// collapsible white space alone does not create a line
	b.empty = len(b.paragraphs) == 1 && len(b.paragraphs[0]) == 0

	for _, para := range b.paragraphs {
		for _, seg := range para {
			b.minContent = utils.MaxF(b.minContent, seg.width)
		}
	}
	_, b.maxContent = b.breakLines(utils.Inf)
	if !ws.textWrap() {
		b.minContent = b.maxContent
	}
	return b
}

// runeWidth returns the advance of r, in em.
func (m Metrics) runeWidth(r rune) Fl {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	if isWide(r) {
		return 1
	}
	return m.Advance
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' }

// segments splits one paragraph (without forced line break).
func (b *Box) segments(para string) []segment {
	var (
		style    = b.Style
		ws       = style.WhiteSpace
		collapse = ws.spaceCollapse()
		em       = style.FontSize
		space    = style.Metrics.Advance * em
		out      []segment
		current  segment
		inWord   bool // current has a word
		inSpaces bool // current has trailing spaces
		wide     bool // current is an ideograph
	)
	flush := func() {
		if inWord || inSpaces || current.width != 0 {
			out = append(out, current)
		}
		current, inWord, inSpaces, wide = segment{}, false, false, false
	}
	for _, r := range para {
		if isSpace(r) {
			if collapse {
				if inWord && !inSpaces {
					current.spaces = space
					inSpaces = true
				}
				// leading and repeated spaces are removed
				continue
			}
			w := space
			if r == '\t' {
				w = tabSize * space
			}
			switch {
			case ws == WBreakSpaces:
				// spaces are visible, with a break opportunity after each one
				current.width += current.spaces + w
				current.spaces = 0
				inWord = true
				flush()
			case !inWord:
				// leading spaces are visible
				current.width += w
			default:
				current.spaces += w
				inSpaces = true
			}
			continue
		}

		w := style.Metrics.runeWidth(r) * em
		if inSpaces || wide {
			flush()
		}
		if isWide(r) {
			// a break opportunity exists around ideographs
			flush()
			current.width, inWord, wide = w, true, true
			continue
		}
		current.width += w
		inWord = true
	}
	flush()

	if !ws.textWrap() && len(out) > 1 {
		// the paragraph can't be broken
		merged := out[0]
		for _, seg := range out[1:] {
			merged.width += merged.spaces + seg.width
			merged.spaces = seg.spaces
		}
		out = []segment{merged}
	}
	return out
}

// breakLines greedily breaks the text into lines of at most maxWidth,
// except for segments wider than maxWidth. It returns the number of lines
// and the width of the widest one.
func (b *Box) breakLines(maxWidth Fl) (lines int, widest Fl) {
	if b.empty {
		return 0, 0
	}
	for _, para := range b.paragraphs {
		var (
			lineWidth, pending Fl
			started            bool
		)
		lines++
		for _, seg := range para {
			if started && lineWidth+pending+seg.width > maxWidth+epsilon {
				widest = utils.MaxF(widest, lineWidth)
				lines++
				lineWidth, pending = seg.width, seg.spaces
				continue
			}
			lineWidth += pending + seg.width
			pending = seg.spaces
			started = true
		}
		widest = utils.MaxF(widest, lineWidth)
	}
	return lines, widest
}

// MinContent returns the width of the widest unbreakable segment.
func (b *Box) MinContent() Fl { return b.minContent }

// MaxContent returns the width of the text without soft wrap.
func (b *Box) MaxContent() Fl { return b.maxContent }

// availableWidth returns the width used to break lines.
func (b *Box) availableWidth(c layout.Constraint) Fl {
	switch c.Kind {
	case layout.MinContent:
		return b.minContent
	case layout.DefiniteSpace:
		return c.Size
	default:
		return b.maxContent
	}
}

// Lines returns the number of lines for the given available width.
func (b *Box) Lines(c layout.Constraint) int {
	n, _ := b.breakLines(b.availableWidth(c))
	return n
}

// Measure implements [layout.IntrinsicSizer]. The height only depends on
// the available width, given by q.Cross.
func (b *Box) Measure(q layout.Query) Fl {
	if q.Axis == layout.X {
		return layout.ApplyConstraint(q.Constraint, b.minContent, b.maxContent)
	}
	return Fl(b.Lines(q.Cross)) * b.Style.LineHeight
}

// Baselines implements [layout.Baseliner]: the baselines of the first
// and last lines are placed using the half-leading model.
func (b *Box) Baselines(q layout.Query) (first, last Fl) {
	if q.Axis != layout.Y {
		return 0, 0
	}
	n := b.Lines(q.Cross)
	if n == 0 {
		return 0, 0
	}
	st := b.Style
	halfLeading := (st.LineHeight - (st.Metrics.Ascent+st.Metrics.Descent)*st.FontSize) / 2
	first = halfLeading + st.Metrics.Ascent*st.FontSize
	last = first + Fl(n-1)*st.LineHeight
	return first, last
}
