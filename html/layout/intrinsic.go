package layout

import "github.com/benoitkugler/gridlayout/utils"

// ConstraintKind is the kind of available space given to a measured item.
type ConstraintKind uint8

const (
	// MaxContent is an unconstrained available space.
	MaxContent ConstraintKind = iota
	// MinContent is a zero available space.
	MinContent
	// DefiniteSpace is a known available length.
	DefiniteSpace
)

// Constraint is the available space in one axis.
type Constraint struct {
	Kind ConstraintKind
	Size Fl // only for DefiniteSpace
}

var (
	maxContentConstraint = Constraint{Kind: MaxContent}
	minContentConstraint = Constraint{Kind: MinContent}
)

// DefiniteConstraint returns the constraint of an available length.
func DefiniteConstraint(size Fl) Constraint {
	return Constraint{Kind: DefiniteSpace, Size: utils.ClampPositive(size)}
}

// Query asks an item for its size in Axis, given the available space in
// Axis and in the other axis.
type Query struct {
	Axis       Axis
	Constraint Constraint // in Axis
	Cross      Constraint // in the other axis, MaxContent when unknown
}

// IntrinsicSizer is the intrinsic-size provider of a grid item.
// It is implemented by text and widget measurement, and by *Container
// for nested grids.
//
// For a DefiniteSpace constraint, the returned size is expected to be the
// fit-content size min(max(min-content, available), max-content).
type IntrinsicSizer interface {
	Measure(q Query) Fl
}

// Baseliner is optionally implemented by intrinsic-size providers
// exposing text baselines. For q.Axis == Y, first and last are the distances
// from the top edge of the content box to the first and last line box baselines,
// when the item has the size returned by Measure(q).
type Baseliner interface {
	Baselines(q Query) (first, last Fl)
}

// fitContent clamps available between the min- and max-content sizes.
func fitContent(minContent, maxContent, available Fl) Fl {
	return utils.MaxF(minContent, utils.MinF(available, maxContent))
}

// ApplyConstraint selects, among the min- and max-content sizes of an item,
// the answer to a query with constraint c.
// It is a helper for IntrinsicSizer implementations.
func ApplyConstraint(c Constraint, minContent, maxContent Fl) Fl {
	switch c.Kind {
	case MinContent:
		return minContent
	case DefiniteSpace:
		return fitContent(minContent, maxContent, c.Size)
	default:
		return maxContent
	}
}
