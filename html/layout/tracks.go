package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/gridlayout/utils"
)

type Fl = utils.Fl

// Axis selects the columns (X, inline axis) or the rows (Y, block axis).
type Axis uint8

const (
	X Axis = iota // columns
	Y             // rows
)

func (a Axis) other() Axis { return 1 - a }

func (a Axis) String() string {
	if a == X {
		return "columns"
	}
	return "rows"
}

// AxisSize is the content-box size of a container in one axis.
// An indefinite axis is sized by its content.
type AxisSize struct {
	Size     Fl
	Definite bool
}

// Definite returns a definite axis size.
func Definite(size Fl) AxisSize { return AxisSize{Size: size, Definite: true} }

// Indefinite is the size of an axis determined by content.
var Indefinite = AxisSize{}

// Length is a fixed length, a percentage, or the sum of both, as
// produced by calc().
type Length struct {
	Px      Fl
	Percent Fl // in [0, 100] for plain percentages
}

// Px returns a fixed length.
func Px(v Fl) Length { return Length{Px: v} }

// Percent returns a percentage length.
func Percent(p Fl) Length { return Length{Percent: p} }

// HasPercentage returns true if l depends on its reference length.
func (l Length) HasPercentage() bool { return l.Percent != 0 }

// Resolve returns the used value of l, clamped to 0.
// ok is false when l has a percentage part and base is indefinite.
func (l Length) Resolve(base AxisSize) (v Fl, ok bool) {
	if l.HasPercentage() {
		if !base.Definite {
			return 0, false
		}
		return utils.ClampPositive(l.Px + l.Percent*base.Size/100), true
	}
	return utils.ClampPositive(l.Px), true
}

// ResolveOrFixed is like Resolve, but returns the fixed part of l
// when its percentage can't be resolved.
func (l Length) ResolveOrFixed(base AxisSize) Fl {
	if v, ok := l.Resolve(base); ok {
		return v
	}
	return utils.ClampPositive(l.Px)
}

func (l Length) String() string {
	switch {
	case l.Percent == 0:
		return formatFl(l.Px) + "px"
	case l.Px == 0:
		return formatFl(l.Percent) + "%"
	default:
		return fmt.Sprintf("calc(%s%% + %spx)", formatFl(l.Percent), formatFl(l.Px))
	}
}

func formatFl(v Fl) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// TrackSize is a track sizing function. The concrete types are
// Fixed, Percentage, Flex, Auto, MinContentTrack, MaxContentTrack, MinMax and FitContent.
type TrackSize interface {
	TrackListItem
	isTrackSize()
	String() string
}

// TrackListItem is either a TrackSize or a Repeat.
type TrackListItem interface {
	isTrackListItem()
}

type (
	// Fixed is a length, possibly a calc() with a percentage part.
	Fixed struct{ Length Length }
	// Percentage of the container content box.
	Percentage struct{ Percent Fl }
	// Flex is a fraction of the leftover space (fr unit).
	Flex struct{ Factor Fl }
	// Auto sizes the track between its items' min- and max-content contributions.
	Auto struct{}
	// MinContentTrack and MaxContentTrack are the min-content and
	// max-content keywords.
	MinContentTrack struct{}
	MaxContentTrack struct{}
	// MinMax is the minmax(Min, Max) function.
	MinMax struct{ Min, Max TrackSize }
	// FitContent is the fit-content(Limit) function, that is
	// minmax(min-content, min(Limit, max-content)).
	FitContent struct{ Limit Length }
)

func (Fixed) isTrackSize()           {}
func (Percentage) isTrackSize()      {}
func (Flex) isTrackSize()            {}
func (Auto) isTrackSize()            {}
func (MinContentTrack) isTrackSize() {}
func (MaxContentTrack) isTrackSize() {}
func (MinMax) isTrackSize()          {}
func (FitContent) isTrackSize()      {}

func (Fixed) isTrackListItem()           {}
func (Percentage) isTrackListItem()      {}
func (Flex) isTrackListItem()            {}
func (Auto) isTrackListItem()            {}
func (MinContentTrack) isTrackListItem() {}
func (MaxContentTrack) isTrackListItem() {}
func (MinMax) isTrackListItem()          {}
func (FitContent) isTrackListItem()      {}
func (Repeat) isTrackListItem()          {}

func (t Fixed) String() string         { return t.Length.String() }
func (t Percentage) String() string    { return formatFl(t.Percent) + "%" }
func (t Flex) String() string          { return formatFl(t.Factor) + "fr" }
func (Auto) String() string            { return "auto" }
func (MinContentTrack) String() string { return "min-content" }
func (MaxContentTrack) String() string { return "max-content" }
func (t FitContent) String() string    { return "fit-content(" + t.Limit.String() + ")" }

func (t MinMax) String() string {
	return "minmax(" + trackString(t.Min) + ", " + trackString(t.Max) + ")"
}

func trackString(t TrackSize) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// RepeatKind distinguishes repeat(<integer>, …) from the automatic repetitions.
type RepeatKind uint8

const (
	RepeatCount RepeatKind = iota
	AutoFill
	AutoFit
)

// Repeat is the repeat() notation.
type Repeat struct {
	Kind   RepeatKind
	Count  int // only used for RepeatCount
	Tracks []TrackSize
}

func (r Repeat) String() string {
	var count string
	switch r.Kind {
	case AutoFill:
		count = "auto-fill"
	case AutoFit:
		count = "auto-fit"
	default:
		count = strconv.Itoa(r.Count)
	}
	parts := make([]string, len(r.Tracks))
	for i, t := range r.Tracks {
		parts[i] = trackString(t)
	}
	return fmt.Sprintf("repeat(%s, %s)", count, strings.Join(parts, " "))
}

// TrackList is the value of grid-template-columns or grid-template-rows.
type TrackList []TrackListItem

func (tl TrackList) String() string {
	if len(tl) == 0 {
		return "none"
	}
	parts := make([]string, len(tl))
	for i, item := range tl {
		switch item := item.(type) {
		case TrackSize:
			parts[i] = item.String()
		case Repeat:
			parts[i] = item.String()
		default:
			parts[i] = "auto"
		}
	}
	return strings.Join(parts, " ")
}

// sizingKind is the kind of a compiled min or max track sizing function.
type sizingKind uint8

const (
	sizingAuto sizingKind = iota
	sizingFixed
	sizingMinContent
	sizingMaxContent
	sizingFlex       // only as maximum
	sizingFitContent // only as maximum
)

type sizingFn struct {
	kind  sizingKind
	value Fl // px for fixed and fit-content, factor for flex
}

func (f sizingFn) isIntrinsic() bool {
	return f.kind == sizingAuto || f.kind == sizingMinContent || f.kind == sizingMaxContent || f.kind == sizingFitContent
}

// GridTrack is a row or a column, with the state of the track sizing algorithm.
type GridTrack struct {
	Axis  Axis
	Index int // 0 for the first track of the implicit grid
	// Size is the sizing function, with percentages resolved
	// into fixed lengths (or Auto for an indefinite axis).
	Size TrackSize

	BaseSize        Fl
	GrowthLimit     Fl // may be utils.Inf
	PlannedIncrease Fl

	Implicit  bool
	Collapsed bool // empty track of an auto-fit repetition

	min, max sizingFn
	autoFit  bool
	growable bool // growth limit changed from infinite by the current span group
}

// IsFlexible returns true for tracks with a flexible maximum sizing function.
func (t *GridTrack) IsFlexible() bool { return t.max.kind == sizingFlex }

func (t *GridTrack) flexFactor() Fl {
	if t.max.kind == sizingFlex {
		return t.max.value
	}
	return 0
}

func newGridTrack(axis Axis, size TrackSize, implicit bool) GridTrack {
	t := GridTrack{Axis: axis, Size: size, Implicit: implicit}
	t.min, t.max = compileTrackSize(size)
	return t
}

// compileTrackSize splits a sizing function into its min and max functions.
// Unresolved percentages count as 0; invalid combinations degrade to auto.
func compileTrackSize(size TrackSize) (min, max sizingFn) {
	switch size := size.(type) {
	case Fixed:
		// an unresolved percentage part counts as 0, pending re-resolution
		v, _ := size.Length.Resolve(Indefinite)
		return sizingFn{sizingFixed, v}, sizingFn{sizingFixed, v}
	case Percentage:
		return sizingFn{sizingFixed, 0}, sizingFn{sizingFixed, 0}
	case Flex:
		if size.Factor < 0 {
			return sizingFn{}, sizingFn{}
		}
		return sizingFn{}, sizingFn{sizingFlex, size.Factor}
	case MinContentTrack:
		return sizingFn{kind: sizingMinContent}, sizingFn{kind: sizingMinContent}
	case MaxContentTrack:
		return sizingFn{kind: sizingMaxContent}, sizingFn{kind: sizingMaxContent}
	case FitContent:
		v, ok := size.Limit.Resolve(Indefinite)
		if !ok {
			return sizingFn{kind: sizingMinContent}, sizingFn{kind: sizingMaxContent}
		}
		return sizingFn{kind: sizingMinContent}, sizingFn{sizingFitContent, v}
	case MinMax:
		min = compileBound(size.Min, false)
		max = compileBound(size.Max, true)
		if min.kind == sizingFixed && max.kind == sizingFixed && min.value > max.value {
			max = min
		}
		return min, max
	default: // Auto and nil
		return sizingFn{}, sizingFn{}
	}
}

func compileBound(bound TrackSize, isMax bool) sizingFn {
	switch bound := bound.(type) {
	case Fixed:
		if v, ok := bound.Length.Resolve(Indefinite); ok {
			return sizingFn{sizingFixed, v}
		}
	case Flex:
		if isMax && bound.Factor >= 0 {
			return sizingFn{sizingFlex, bound.Factor}
		}
	case MinContentTrack:
		return sizingFn{kind: sizingMinContent}
	case MaxContentTrack:
		return sizingFn{kind: sizingMaxContent}
	}
	return sizingFn{}
}

// isValidTrackSize reports the sizing functions degraded by compileTrackSize.
func isValidTrackSize(size TrackSize) bool {
	switch size := size.(type) {
	case nil:
		return false
	case Flex:
		return size.Factor >= 0
	case MinMax:
		return isValidBound(size.Min, false) && isValidBound(size.Max, true)
	}
	return true
}

func isValidBound(bound TrackSize, isMax bool) bool {
	switch bound := bound.(type) {
	case Fixed, Percentage, Auto, MinContentTrack, MaxContentTrack:
		return true
	case Flex:
		return isMax && bound.Factor >= 0
	}
	return false
}
