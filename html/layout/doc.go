// Package layout implements the CSS grid layout algorithm: it resolves
// the track lists, places the items, sizes the tracks and aligns the
// tracks and the items.
//
// The content of the items is opaque: it is only queried through the
// IntrinsicSizer interface, so that the package does not depend on any
// box tree nor text shaper.
//
// Layout never fails: invalid inputs degrade to valid ones, and the
// degradation is reported on logger.WarningLogger.
//
// See https://www.w3.org/TR/css-grid-1/#layout-algorithm
package layout
