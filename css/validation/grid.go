package validation

import (
	pa "github.com/benoitkugler/gridlayout/css/parser"
	"github.com/benoitkugler/gridlayout/html/layout"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/utils"
)

// Parse “inflexible-breadth“.
func parseInflexibleBreadth(token Token, fontSize Fl) (layout.TrackSize, bool) {
	switch getKeyword(token) {
	case "auto":
		return layout.Auto{}, true
	case "min-content":
		return layout.MinContentTrack{}, true
	case "max-content":
		return layout.MaxContentTrack{}, true
	case "":
		if l, ok := getLength(token, fontSize, false, true); ok {
			return lengthTrack(l), true
		}
	}
	return nil, false
}

// lengthTrack uses Percentage for plain percentages, so that they
// behave as auto in an indefinite axis.
func lengthTrack(l layout.Length) layout.TrackSize {
	if l.Px == 0 && l.Percent != 0 {
		return layout.Percentage{Percent: l.Percent}
	}
	return layout.Fixed{Length: l}
}

// Parse “track-breadth“.
func parseTrackBreadth(token Token, fontSize Fl) (layout.TrackSize, bool) {
	if dim, ok := token.(pa.Dimension); ok && utils.AsciiLower(dim.Unit) == "fr" {
		if dim.Value >= 0 {
			return layout.Flex{Factor: dim.Value}, true
		}
		return nil, false
	}
	return parseInflexibleBreadth(token, fontSize)
}

// Parse “track-size“.
func parseTrackSize(token Token, fontSize Fl) (layout.TrackSize, bool) {
	if breadth, ok := parseTrackBreadth(token, fontSize); ok {
		return breadth, true
	}
	name, args := pa.ParseFunction(token)
	switch name {
	case "minmax":
		if len(args) == 2 {
			min, okMin := parseInflexibleBreadth(args[0], fontSize)
			max, okMax := parseTrackBreadth(args[1], fontSize)
			if okMin && okMax {
				return layout.MinMax{Min: min, Max: max}, true
			}
		}
	case "fit-content":
		if len(args) == 1 {
			if l, ok := getLength(args[0], fontSize, false, true); ok {
				return layout.FitContent{Limit: l}, true
			}
		}
	}
	return nil, false
}

func isFixedBreadth(ts layout.TrackSize) bool {
	switch ts.(type) {
	case layout.Fixed, layout.Percentage:
		return true
	}
	return false
}

// isFixedSize returns true for “fixed-size“ values, the only ones allowed
// together with an automatic repetition.
func isFixedSize(ts layout.TrackSize) bool {
	if mm, ok := ts.(layout.MinMax); ok {
		return isFixedBreadth(mm.Min) || isFixedBreadth(mm.Max)
	}
	return isFixedBreadth(ts)
}

// isLineNames returns true for a “line-names“ block, like [a b].
func isLineNames(token Token) bool {
	block, ok := token.(pa.SquareBracketsBlock)
	if !ok {
		return false
	}
	for _, name := range pa.RemoveWhitespace(block.Arguments) {
		if _, ok := name.(pa.Ident); !ok {
			return false
		}
	}
	return true
}

// “grid-auto-columns“ and “grid-auto-rows“ properties validation.
func gridAuto(tokens []Token, fontSize Fl) ([]layout.TrackSize, bool) {
	var out []layout.TrackSize
	for _, token := range tokens {
		ts, ok := parseTrackSize(token, fontSize)
		if !ok {
			return nil, false
		}
		out = append(out, ts)
	}
	return out, len(out) != 0
}

// “grid-auto-flow“ property validation.
func gridAutoFlow(tokens []Token) (layout.AutoFlow, bool) {
	switch len(tokens) {
	case 1:
		switch getKeyword(tokens[0]) {
		case "row":
			return layout.AutoFlow{}, true
		case "column":
			return layout.AutoFlow{Column: true}, true
		case "dense":
			return layout.AutoFlow{Dense: true}, true
		}
	case 2:
		keywords := [2]string{getKeyword(tokens[0]), getKeyword(tokens[1])}
		switch keywords {
		case [2]string{"dense", "row"}, [2]string{"row", "dense"}:
			return layout.AutoFlow{Dense: true}, true
		case [2]string{"dense", "column"}, [2]string{"column", "dense"}:
			return layout.AutoFlow{Column: true, Dense: true}, true
		}
	}
	return layout.AutoFlow{}, false
}

// maxRepeatCount bounds repeat(<integer>, …), as browsers do.
const maxRepeatCount = 10000

func parseRepeat(args []Token, fontSize Fl) (out layout.Repeat, _ bool) {
	if nb, ok := args[0].(pa.Number); ok && nb.IsInt() && nb.Value >= 1 {
		out.Kind, out.Count = layout.RepeatCount, utils.MinInt(nb.Int(), maxRepeatCount)
	} else {
		switch getKeyword(args[0]) {
		case "auto-fill":
			out.Kind = layout.AutoFill
		case "auto-fit":
			out.Kind = layout.AutoFit
		default:
			return out, false
		}
	}

	lastIsLineName := false
	for _, arg := range args[1:] {
		if isLineNames(arg) {
			if lastIsLineName {
				return out, false
			}
			lastIsLineName = true
			continue
		}
		lastIsLineName = false
		ts, ok := parseTrackSize(arg, fontSize)
		if !ok {
			return out, false
		}
		out.Tracks = append(out.Tracks, ts)
	}
	return out, len(out.Tracks) != 0
}

// “grid-template-columns“ and “grid-template-rows“ validation.
// Line names are accepted and dropped.
func gridTemplate(tokens []Token, fontSize Fl) (layout.TrackList, bool) {
	if len(tokens) == 1 && getKeyword(tokens[0]) == "none" {
		return nil, true
	}
	if len(tokens) != 0 && getKeyword(tokens[0]) == "subgrid" {
		logger.WarningLogger.Warn("subgrid is not supported, using none")
		return nil, true
	}

	var (
		out                layout.TrackList
		includesAutoRepeat bool
		includesTrack      bool // a track which is not a fixed size
		lastIsLineName     bool
	)
	for _, token := range tokens {
		if isLineNames(token) {
			if lastIsLineName {
				return nil, false
			}
			lastIsLineName = true
			continue
		}
		lastIsLineName = false

		if ts, ok := parseTrackSize(token, fontSize); ok {
			includesTrack = includesTrack || !isFixedSize(ts)
			out = append(out, ts)
			continue
		}

		name, args := pa.ParseFunction(token)
		if name != "repeat" || len(args) < 2 {
			return nil, false
		}
		repeat, ok := parseRepeat(args, fontSize)
		if !ok {
			return nil, false
		}
		if repeat.Kind != layout.RepeatCount {
			if includesAutoRepeat {
				return nil, false
			}
			includesAutoRepeat = true
			for _, ts := range repeat.Tracks {
				if !isFixedSize(ts) {
					return nil, false
				}
			}
		} else {
			for _, ts := range repeat.Tracks {
				includesTrack = includesTrack || !isFixedSize(ts)
			}
		}
		out = append(out, repeat)
	}
	if includesAutoRepeat && includesTrack {
		return nil, false
	}
	return out, len(out) != 0
}

// GridLine is a grid-row-start, grid-row-end, grid-column-start or
// grid-column-end value. The zero value is auto.
type GridLine struct {
	Line int // 1-based, negative from the end, 0 for auto
	Span int // > 0 for “span <integer>“
}

// “grid-row-start“ (and similar) validation. Named lines are not
// supported: they are replaced by auto (or span 1), with a warning.
func gridLine(tokens []Token) (GridLine, bool) {
	if len(tokens) == 1 {
		token := tokens[0]
		if keyword := getKeyword(token); keyword != "" {
			switch keyword {
			case "auto":
				return GridLine{}, true
			case "span":
				return GridLine{}, false
			}
			logger.WarningLogger.Warnf("named grid line %s is not supported, using auto", keyword)
			return GridLine{}, true
		} else if number, ok := token.(pa.Number); ok && number.IsInt() && number.Value != 0 {
			return GridLine{Line: number.Int()}, true
		}
		return GridLine{}, false
	}

	var (
		number int
		ident  string
		span   bool
	)
	for _, token := range tokens {
		if keyword := getKeyword(token); keyword != "" {
			if keyword == "auto" {
				return GridLine{}, false
			}
			if keyword == "span" {
				if !span {
					span = true
					continue
				}
			} else if ident == "" {
				ident = keyword
				continue
			}
		} else if nb, ok := token.(pa.Number); ok && nb.IsInt() && nb.Value != 0 {
			if number == 0 {
				number = nb.Int()
				continue
			}
		}
		return GridLine{}, false
	}
	if span && number < 0 {
		return GridLine{}, false
	}
	if !span && number == 0 {
		return GridLine{}, false
	}
	if ident != "" {
		if span {
			logger.WarningLogger.Warnf("named grid line %s is not supported, using span 1", ident)
			return GridLine{Span: 1}, true
		}
		logger.WarningLogger.Warnf("named grid line %s is not supported, using auto", ident)
		return GridLine{}, true
	}
	if span {
		return GridLine{Span: number}, true
	}
	return GridLine{Line: number}, true
}

// splitOnSlash splits tokens on top-level '/' delimiters.
func splitOnSlash(tokens []Token) [][]Token {
	var (
		parts   [][]Token
		current []Token
	)
	for _, token := range tokens {
		if pa.IsLiteral(token, "/") {
			parts = append(parts, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	return append(parts, current)
}

// “grid-row“ and “grid-column“ shorthands, with an optional end after a '/'.
func gridLineShorthand(tokens []Token) (start, end GridLine, ok bool) {
	parts := splitOnSlash(tokens)
	if len(parts) > 2 {
		return start, end, false
	}
	if start, ok = gridLine(parts[0]); !ok {
		return start, end, false
	}
	if len(parts) == 2 {
		if end, ok = gridLine(parts[1]); !ok {
			return start, end, false
		}
	}
	return start, end, true
}

// “grid-area“ shorthand: row-start / column-start / row-end / column-end.
func gridArea(tokens []Token) (lines [4]GridLine, ok bool) {
	parts := splitOnSlash(tokens)
	if len(parts) > 4 {
		return lines, false
	}
	for i, part := range parts {
		if lines[i], ok = gridLine(part); !ok {
			return lines, false
		}
	}
	return lines, true
}

// placement combines the start and end lines into a layout.Line.
func placement(start, end GridLine) layout.Line {
	switch {
	case start.Span != 0 && end.Span != 0: // the end span is dropped
		return layout.Line{Span: start.Span}
	case start.Span != 0:
		return layout.Line{End: end.Line, Span: start.Span}
	case end.Span != 0:
		return layout.Line{Start: start.Line, Span: end.Span}
	default:
		return layout.Line{Start: start.Line, End: end.Line}
	}
}

// “column-gap“, “row-gap“ validation.
func gap(tokens []Token, fontSize Fl) (layout.Length, bool) {
	if len(tokens) != 1 {
		return layout.Length{}, false
	}
	if getKeyword(tokens[0]) == "normal" {
		return layout.Length{}, true
	}
	return getLength(tokens[0], fontSize, false, true)
}

// “justify-content“ and “align-content“ validation.
// normal behaves as start; baseline values fall back to start.
func contentAlignment(tokens []Token, allowLeftRight bool) (layout.ContentAlignment, bool) {
	keyword := ""
	switch len(tokens) {
	case 1:
		keyword = getKeyword(tokens[0])
		switch keyword {
		case "normal", "baseline":
			return layout.ContentStart, true
		case "space-between":
			return layout.ContentSpaceBetween, true
		case "space-around":
			return layout.ContentSpaceAround, true
		case "space-evenly":
			return layout.ContentSpaceEvenly, true
		case "stretch":
			return layout.ContentStretch, true
		}
	case 2:
		kw1, kw2 := getKeyword(tokens[0]), getKeyword(tokens[1])
		switch {
		case kw1 == "safe" || kw1 == "unsafe":
			keyword = kw2
		case kw2 == "baseline" && (kw1 == "first" || kw1 == "last"),
			kw1 == "baseline" && (kw2 == "first" || kw2 == "last"):
			return layout.ContentStart, true
		}
	}
	switch keyword {
	case "start", "flex-start":
		return layout.ContentStart, true
	case "end", "flex-end":
		return layout.ContentEnd, true
	case "center":
		return layout.ContentCenter, true
	case "left":
		return layout.ContentStart, allowLeftRight
	case "right":
		return layout.ContentEnd, allowLeftRight
	}
	return 0, false
}

// “justify-items“, “align-items“, “justify-self“ and “align-self“ validation.
// isSelf allows auto, and justify allows left, right and legacy.
func itemAlignment(tokens []Token, isSelf, justify bool) (layout.ItemAlignment, bool) {
	keyword := ""
	switch len(tokens) {
	case 1:
		keyword = getKeyword(tokens[0])
		switch keyword {
		case "auto":
			return layout.ItemAuto, isSelf
		case "normal":
			return layout.ItemNormal, true
		case "stretch":
			return layout.ItemStretch, true
		case "baseline":
			return layout.ItemBaseline, true
		case "legacy":
			return layout.ItemNormal, justify && !isSelf
		}
	case 2:
		kw1, kw2 := getKeyword(tokens[0]), getKeyword(tokens[1])
		switch {
		case kw1 == "safe" || kw1 == "unsafe":
			keyword = kw2
		case kw1 == "baseline" || kw2 == "baseline":
			switch kw1 + kw2 {
			case "firstbaseline", "baselinefirst":
				return layout.ItemBaseline, true
			case "lastbaseline", "baselinelast":
				return layout.ItemLastBaseline, true
			}
			return 0, false
		case justify && !isSelf && (kw1 == "legacy" || kw2 == "legacy"):
			switch kw1 + kw2 {
			case "legacyleft", "leftlegacy", "legacyright", "rightlegacy", "legacycenter", "centerlegacy":
				return layout.ItemNormal, true
			}
			return 0, false
		}
	}
	switch keyword {
	case "start", "self-start", "flex-start":
		return layout.ItemStart, true
	case "end", "self-end", "flex-end":
		return layout.ItemEnd, true
	case "center":
		return layout.ItemCenter, true
	case "left":
		return layout.ItemStart, justify
	case "right":
		return layout.ItemEnd, justify
	}
	return 0, false
}
