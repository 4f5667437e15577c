package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/text"
	tu "github.com/benoitkugler/gridlayout/utils/testutils"
)

func parse(css string) Style { return ParseStyleAttribute(css, InitialStyle()) }

func assertInvalid(t *testing.T, css string) {
	t.Helper()
	logs := tu.CaptureLogs()
	s := parse(css)
	tu.AssertEqual(t, s, InitialStyle())
	l := logs.Logs()
	if len(l) != 1 || !strings.HasSuffix(l[0], "invalid value") {
		t.Fatalf("%s: expected an invalid value warning, got %v", css, l)
	}
}

func lengthPtr(l layout.Length) *layout.Length { return &l }

func TestGridTemplateColumnsRows(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css   string
		value layout.TrackList
	}{
		{"none", nil},
		{"[outer-edge] 20px [main-start] 1fr [center] 1fr max-content [main-end]", layout.TrackList{
			layout.Fixed{Length: layout.Px(20)}, layout.Flex{Factor: 1}, layout.Flex{Factor: 1}, layout.MaxContentTrack{},
		}},
		{"repeat(auto-fill, minmax(25ch, 1fr))", layout.TrackList{
			layout.Repeat{Kind: layout.AutoFill, Tracks: []layout.TrackSize{
				layout.MinMax{Min: layout.Fixed{Length: layout.Px(200)}, Max: layout.Flex{Factor: 1}},
			}},
		}},
		{"[a] auto [b] minmax(min-content, 1fr) [b c d] repeat(2, [e] 40px) repeat(5, auto)", layout.TrackList{
			layout.Auto{},
			layout.MinMax{Min: layout.MinContentTrack{}, Max: layout.Flex{Factor: 1}},
			layout.Repeat{Count: 2, Tracks: []layout.TrackSize{layout.Fixed{Length: layout.Px(40)}}},
			layout.Repeat{Count: 5, Tracks: []layout.TrackSize{layout.Auto{}}},
		}},
		{"10% calc(50% + 1em) fit-content(1in)", layout.TrackList{
			layout.Percentage{Percent: 10},
			layout.Fixed{Length: layout.Length{Px: 16, Percent: 50}},
			layout.FitContent{Limit: layout.Px(96)},
		}},
		{"repeat(auto-fit, 100px 10%) 50px", layout.TrackList{
			layout.Repeat{Kind: layout.AutoFit, Tracks: []layout.TrackSize{
				layout.Fixed{Length: layout.Px(100)}, layout.Percentage{Percent: 10},
			}},
			layout.Fixed{Length: layout.Px(50)},
		}},
	} {
		tu.AssertEqual(t, parse("grid-template-columns: "+test.css).Columns, test.value)
		tu.AssertEqual(t, parse("grid-template-rows: "+test.css).Rows, test.value)
	}

	for _, css := range [...]string{
		"coucou",
		"fit-content(18%) repeat(auto-fill, 15em)",
		"[coucou] [wow]",
		"repeat(auto-fill, 10px) repeat(auto-fit, 10px)",
		"repeat(auto-fill, 1fr)",
		"repeat(0, 10px)",
		"repeat(2)",
		"-1fr",
		"minmax(1fr, 10px)",
	} {
		assertInvalid(t, "grid-template-columns: "+css)
		assertInvalid(t, "grid-template-rows: "+css)
	}
}

func TestRepeatCountIsBounded(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)
	s := parse("grid-template-columns: repeat(100000, 1px)")
	tu.AssertEqual(t, s.Columns[0].(layout.Repeat).Count, maxRepeatCount)
}

func TestSubgrid(t *testing.T) {
	logs := tu.CaptureLogs()
	s := parse("grid-template-columns: 10px; grid-template-columns: subgrid [a]")
	tu.AssertEqual(t, s.Columns, layout.TrackList(nil))
	logs.CheckEqual([]string{"subgrid is not supported, using none"}, t)
}

func TestGridAutoColumnsRows(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css   string
		value []layout.TrackSize
	}{
		{"40px", []layout.TrackSize{layout.Fixed{Length: layout.Px(40)}}},
		{"2fr", []layout.TrackSize{layout.Flex{Factor: 2}}},
		{"18%", []layout.TrackSize{layout.Percentage{Percent: 18}}},
		{"auto", []layout.TrackSize{layout.Auto{}}},
		{"fit-content(20%)", []layout.TrackSize{layout.FitContent{Limit: layout.Percent(20)}}},
		{"minmax(20px, 25px)", []layout.TrackSize{layout.MinMax{Min: layout.Fixed{Length: layout.Px(20)}, Max: layout.Fixed{Length: layout.Px(25)}}}},
		{"min-content max-content", []layout.TrackSize{layout.MinContentTrack{}, layout.MaxContentTrack{}}},
	} {
		tu.AssertEqual(t, parse("grid-auto-columns: "+test.css).AutoColumns, test.value)
		tu.AssertEqual(t, parse("grid-auto-rows: "+test.css).AutoRows, test.value)
	}

	for _, css := range [...]string{
		"40",
		"coucou",
		"fit-content",
		"fit-content(min-content)",
		"minmax(40px)",
		"minmax(2fr, 1fr)",
		"1fr 1fr coucou",
		"fit-content()",
		"fit-content(2%, 18%)",
	} {
		assertInvalid(t, "grid-auto-columns: "+css)
		assertInvalid(t, "grid-auto-rows: "+css)
	}
}

func TestGridAutoFlow(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css   string
		value layout.AutoFlow
	}{
		{"row", layout.AutoFlow{}},
		{"column", layout.AutoFlow{Column: true}},
		{"row dense", layout.AutoFlow{Dense: true}},
		{"column dense", layout.AutoFlow{Column: true, Dense: true}},
		{"dense row", layout.AutoFlow{Dense: true}},
		{"dense column", layout.AutoFlow{Column: true, Dense: true}},
		{"dense", layout.AutoFlow{Dense: true}},
	} {
		tu.AssertEqual(t, parse("grid-auto-flow: "+test.css).Flow, test.value)
	}

	for _, css := range [...]string{
		"row row",
		"dense dense",
		"coucou",
		"row column",
		"column coucou",
		"row column dense",
	} {
		assertInvalid(t, "grid-auto-flow: "+css)
	}
}

func TestGridLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css   string
		value GridLine
	}{
		{"auto", GridLine{}},
		{"4", GridLine{Line: 4}},
		{"-2", GridLine{Line: -2}},
		{"span 3", GridLine{Span: 3}},
		{"3 span", GridLine{Span: 3}},
	} {
		for _, prop := range [...]string{"grid-row-start", "grid-row-end", "grid-column-start", "grid-column-end"} {
			s := parse(fmt.Sprintf("%s: %s", prop, test.css))
			got := map[string]GridLine{
				"grid-row-start":    s.RowStart,
				"grid-row-end":      s.RowEnd,
				"grid-column-start": s.ColumnStart,
				"grid-column-end":   s.ColumnEnd,
			}[prop]
			tu.AssertEqual(t, got, test.value)
		}
	}

	for _, css := range [...]string{
		"span",
		"0",
		"1.1",
		"span 0",
		"span -1",
		"span 2.1",
		"span auto",
		"auto auto",
		"-4 cOL span",
		"span 1.1 col",
		"a b",
	} {
		assertInvalid(t, "grid-row-start: "+css)
		assertInvalid(t, "grid-column-end: "+css)
	}
}

func TestNamedGridLines(t *testing.T) {
	logs := tu.CaptureLogs()
	s := parse("grid-row-start: C; grid-column-start: span c 4; grid-column-end: col -4")
	tu.AssertEqual(t, s.RowStart, GridLine{})
	tu.AssertEqual(t, s.ColumnStart, GridLine{Span: 1})
	tu.AssertEqual(t, s.ColumnEnd, GridLine{})
	logs.CheckEqual([]string{
		"named grid line c is not supported, using auto",
		"named grid line c is not supported, using span 1",
		"named grid line col is not supported, using auto",
	}, t)
}

func TestGridLineShorthands(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css         string
		column, row layout.Line
	}{
		{"grid-column: 2 / 4", layout.Line{Start: 2, End: 4}, layout.Line{}},
		{"grid-row: span 2", layout.Line{}, layout.Line{Span: 2}},
		{"grid-column: span 2 / 5", layout.Line{End: 5, Span: 2}, layout.Line{}},
		{"grid-column: 3 / span 2", layout.Line{Start: 3, Span: 2}, layout.Line{}},
		{"grid-column: span 2 / span 3", layout.Line{Span: 2}, layout.Line{}},
		{"grid-area: 1 / 2 / span 2 / -1", layout.Line{Start: 2, End: -1}, layout.Line{Start: 1, Span: 2}},
		{"grid-area: 3", layout.Line{}, layout.Line{Start: 3}},
		{"grid-column-start: 2; grid-column-end: 1", layout.Line{Start: 2, End: 1}, layout.Line{}},
	} {
		s := parse(test.css)
		tu.AssertEqual(t, s.Column(), test.column)
		tu.AssertEqual(t, s.Row(), test.row)
	}

	assertInvalid(t, "grid-column: 1 / 2 / 3")
	assertInvalid(t, "grid-area: 1 / 2 / 3 / 4 / 5")
	assertInvalid(t, "grid-row: 1 / span")
}

func TestAlignment(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css string
		exp layout.ContentAlignment
	}{
		{"justify-content: space-evenly", layout.ContentSpaceEvenly},
		{"justify-content: safe center", layout.ContentCenter},
		{"justify-content: right", layout.ContentEnd},
		{"justify-content: normal", layout.ContentStart},
		{"justify-content: stretch", layout.ContentStretch},
		{"align-content: first baseline", layout.ContentStart},
		{"align-content: flex-end", layout.ContentEnd},
		{"align-content: space-between", layout.ContentSpaceBetween},
		{"align-content: space-around", layout.ContentSpaceAround},
	} {
		s := parse(test.css)
		tu.AssertEqual(t, s.JustifyContent|s.AlignContent, test.exp)
	}

	for _, test := range []struct {
		css string
		get func(Style) layout.ItemAlignment
		exp layout.ItemAlignment
	}{
		{"justify-items: legacy left", func(s Style) layout.ItemAlignment { return s.JustifyItems }, layout.ItemNormal},
		{"justify-items: self-end", func(s Style) layout.ItemAlignment { return s.JustifyItems }, layout.ItemEnd},
		{"align-items: last baseline", func(s Style) layout.ItemAlignment { return s.AlignItems }, layout.ItemLastBaseline},
		{"align-items: baseline", func(s Style) layout.ItemAlignment { return s.AlignItems }, layout.ItemBaseline},
		{"align-items: stretch", func(s Style) layout.ItemAlignment { return s.AlignItems }, layout.ItemStretch},
		{"justify-self: auto", func(s Style) layout.ItemAlignment { return s.JustifySelf }, layout.ItemAuto},
		{"justify-self: left", func(s Style) layout.ItemAlignment { return s.JustifySelf }, layout.ItemStart},
		{"align-self: unsafe center", func(s Style) layout.ItemAlignment { return s.AlignSelf }, layout.ItemCenter},
	} {
		tu.AssertEqual(t, test.get(parse(test.css)), test.exp)
	}

	for _, css := range [...]string{
		"align-content: left",
		"justify-content: safe stretch",
		"align-items: auto",
		"align-self: right",
		"justify-self: legacy",
		"align-items: baseline center",
		"justify-items: legacy stretch",
	} {
		assertInvalid(t, css)
	}
}

func TestLengths(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css string
		exp *layout.Length
	}{
		{"width: 10px", lengthPtr(layout.Px(10))},
		{"width: 1in", lengthPtr(layout.Px(96))},
		{"width: 6pc", lengthPtr(layout.Px(96))},
		{"width: 2rem", lengthPtr(layout.Px(32))},
		{"width: 0", lengthPtr(layout.Length{})},
		{"width: 50%", lengthPtr(layout.Percent(50))},
		{"width: 2em; font-size: 20px", lengthPtr(layout.Px(40))},
		{"width: calc(100% - 2 * 10px)", lengthPtr(layout.Length{Px: -20, Percent: 100})},
		{"width: calc(10px / 2 + 1rem)", lengthPtr(layout.Px(21))},
		{"width: calc((10px + 10%) * 2)", lengthPtr(layout.Length{Px: 20, Percent: 20})},
		{"width: 10px; width: auto", nil},
		{"width: 10px !important; width: 20px", lengthPtr(layout.Px(10))},
	} {
		tu.AssertEqual(t, parse(test.css).Width, test.exp)
	}
	tu.AssertEqual(t, parse("height: 3EM").Height, lengthPtr(layout.Px(48)))

	for _, css := range [...]string{
		"width: -5px",
		"width: 1fr",
		"width: 10",
		"width: calc(1px +)",
		"width: calc(1px 2px)",
		"width: calc(1px / 0)",
		"width: calc(2 * 3)",
		"height: 10px 20px",
	} {
		assertInvalid(t, css)
	}
}

func TestGaps(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	s := parse("gap: 10px 5%")
	tu.AssertEqual(t, s.RowGap, layout.Px(10))
	tu.AssertEqual(t, s.ColumnGap, layout.Percent(5))

	s = parse("grid-gap: 1em; column-gap: normal")
	tu.AssertEqual(t, s.RowGap, layout.Px(16))
	tu.AssertEqual(t, s.ColumnGap, layout.Length{})

	s = parse("grid-row-gap: 2px; grid-column-gap: 3px")
	tu.AssertEqual(t, [2]layout.Length{s.RowGap, s.ColumnGap}, [2]layout.Length{layout.Px(2), layout.Px(3)})

	assertInvalid(t, "row-gap: -1px")
	assertInvalid(t, "gap: 1px 2px 3px")
}

func TestMargins(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css string
		exp [4]Fl
	}{
		{"margin: 1px", [4]Fl{1, 1, 1, 1}},
		{"margin: 1px 2px", [4]Fl{1, 2, 1, 2}},
		{"margin: 1px 2px 3px", [4]Fl{1, 2, 3, 2}},
		{"margin: 1px 2px 3px 4px", [4]Fl{1, 2, 3, 4}},
		{"margin: auto -4px", [4]Fl{0, -4, 0, -4}},
		{"margin: 1px; margin-left: 1em", [4]Fl{1, 1, 1, 16}},
	} {
		tu.AssertEqual(t, parse(test.css).Margins, test.exp)
	}

	assertInvalid(t, "margin-left: 10%")
	assertInvalid(t, "margin: 1px 2px 3px 4px 5px")
}

func TestDisplay(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tu.AssertEqual(t, parse("display: grid").Display, DisplayGrid)
	tu.AssertEqual(t, parse("display: inline-grid").Display, DisplayInlineGrid)
	tu.AssertEqual(t, parse("display: inline grid").Display.IsGrid(), true)
	tu.AssertEqual(t, parse("display: flex").Display, DisplayBlock)
	tu.AssertEqual(t, parse("display: none").Display, DisplayNone)
	assertInvalid(t, "display: 12px")
}

func TestFontSize(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		parentCss, childCss   string
		parentSize, childSize Fl
	}{
		{parentCss: "10px", parentSize: 10, childCss: "10px", childSize: 10},
		{parentCss: "x-small", parentSize: 12, childCss: "xx-large", childSize: 32},
		{parentCss: "x-large", parentSize: 24, childCss: "2em", childSize: 48},
		{parentCss: "1em", parentSize: 16, childCss: "1em", childSize: 16},
		{parentCss: "1em", parentSize: 16, childCss: "larger", childSize: 6. / 5 * 16},
		{parentCss: "x-large", parentSize: 24, childCss: "larger", childSize: 32},
		{parentCss: "xx-large", parentSize: 32, childCss: "larger", childSize: 1.2 * 32},
		{parentCss: "1px", parentSize: 1, childCss: "larger", childSize: 3. / 5 * 16},
		{parentCss: "100px", parentSize: 100, childCss: "larger", childSize: 120},
		{parentCss: "1em", parentSize: 16, childCss: "smaller", childSize: 8. / 9 * 16},
		{parentCss: "x-large", parentSize: 24, childCss: "smaller", childSize: 6. / 5 * 16},
		{parentCss: "1px", parentSize: 1, childCss: "smaller", childSize: 0.8},
		{parentCss: "20px", parentSize: 20, childCss: "50%", childSize: 10},
	} {
		parent := parse("font-size: " + test.parentCss)
		tu.AssertNear(t, parent.FontSize, test.parentSize)
		child := ParseStyleAttribute("font-size: "+test.childCss, parent)
		tu.AssertNear(t, child.FontSize, test.childSize)
	}
}

func TestLineHeight(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tu.AssertNear(t, InitialStyle().LineHeight, 19.2)

	// numbers and normal are inherited as factors
	parent := parse("line-height: 2")
	tu.AssertNear(t, parent.LineHeight, 32)
	child := ParseStyleAttribute("font-size: 10px", parent)
	tu.AssertNear(t, child.LineHeight, 20)
	child = ParseStyleAttribute("font-size: 20px", InitialStyle())
	tu.AssertNear(t, child.LineHeight, 24)

	// lengths are inherited as is
	parent = parse("line-height: 20px")
	child = ParseStyleAttribute("font-size: 40px", parent)
	tu.AssertNear(t, child.LineHeight, 20)

	tu.AssertNear(t, parse("font-size: 10px; line-height: 150%").LineHeight, 15)
	assertInvalid(t, "line-height: -2")
}

func TestNonInheritedProperties(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)
	parent := parse("display: grid; grid-template-columns: 1fr; width: 10px; font-size: 20px")
	child := ParseStyleAttribute("", parent)
	tu.AssertEqual(t, child.Display, DisplayBlock)
	tu.AssertEqual(t, child.Columns, layout.TrackList(nil))
	tu.AssertEqual(t, child.Width, (*layout.Length)(nil))
	tu.AssertEqual(t, child.FontSize, Fl(20))
}

func TestInvalidDeclarations(t *testing.T) {
	logs := tu.CaptureLogs()
	s := parse("width: -5px; color red; foo: bar; height: ; @media print {}")
	tu.AssertEqual(t, s, InitialStyle())
	logs.CheckEqual([]string{
		"invalid declaration at 1:20: Expected ':' after declaration name, got ident.",
		"invalid declaration at 1:45: Unsupported at-rule @media in a declaration list.",
		"ignored `width: -5px`, invalid value",
		"ignored `height: `, no value",
	}, t)
}

func TestWhiteSpace(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	parent := parse("white-space: pre-wrap")
	tu.AssertEqual(t, parent.WhiteSpace, text.WPreWrap)
	child := ParseStyleAttribute("font-size: 10px", parent)
	tu.AssertEqual(t, child.TextStyle(text.DefaultMetrics), text.Style{
		FontSize: 10, LineHeight: 12, WhiteSpace: text.WPreWrap, Metrics: text.DefaultMetrics,
	})

	assertInvalid(t, "white-space: wrap")
	assertInvalid(t, "white-space: pre pre")
}
