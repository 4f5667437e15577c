package layout

import (
	"reflect"
	"slices"
	"strings"

	"github.com/benoitkugler/gridlayout/logger"
)

// DirtyReason records why a grid needs a new layout pass.
type DirtyReason uint8

const (
	DirtySize         DirtyReason = 1 << iota // the content-box size changed
	DirtyDefiniteness                         // an axis became definite or indefinite
	DirtyTracks                               // the track lists changed
	DirtyItems                                // the item set changed
	DirtyContent                              // an item content or a style value changed
)

func (d DirtyReason) String() string {
	var parts []string
	for _, r := range [...]struct {
		flag DirtyReason
		name string
	}{
		{DirtySize, "size"},
		{DirtyDefiniteness, "definiteness"},
		{DirtyTracks, "tracks"},
		{DirtyItems, "items"},
		{DirtyContent, "content"},
	} {
		if d&r.flag != 0 {
			parts = append(parts, r.name)
		}
	}
	if len(parts) == 0 {
		return "clean"
	}
	return strings.Join(parts, "|")
}

// ResizeInvalidator keeps the geometry of a grid container up to date.
// Mutations only record why the grid is dirty; the geometry is
// recomputed at most once per Flush, which the host calls once per frame.
//
// Since a layout pass resolves the track lists again, a change of
// definiteness (for instance a percentage track in an axis that becomes
// definite) is handled by the same recomputation.
type ResizeInvalidator struct {
	container Container
	geometry  Geometry
	dirty     DirtyReason
	passes    int
}

// NewResizeInvalidator returns an invalidator for a copy of c, which
// needs an initial layout.
func NewResizeInvalidator(c Container) *ResizeInvalidator {
	c.Columns, c.Rows = slices.Clone(c.Columns), slices.Clone(c.Rows)
	c.Items = slices.Clone(c.Items)
	return &ResizeInvalidator{container: c, dirty: DirtySize | DirtyTracks | DirtyItems}
}

// SetSize updates the content-box size of the container.
func (r *ResizeInvalidator) SetSize(width, height AxisSize) {
	c := &r.container
	if width.Definite != c.Width.Definite || height.Definite != c.Height.Definite {
		r.dirty |= DirtyDefiniteness
	}
	if width != c.Width || height != c.Height {
		r.dirty |= DirtySize
	}
	c.Width, c.Height = width, height
}

// SetTracks updates the explicit track lists.
func (r *ResizeInvalidator) SetTracks(columns, rows TrackList) {
	c := &r.container
	if !reflect.DeepEqual(columns, c.Columns) || !reflect.DeepEqual(rows, c.Rows) {
		r.dirty |= DirtyTracks
	}
	c.Columns, c.Rows = slices.Clone(columns), slices.Clone(rows)
}

// SetItems replaces the item set. Implicit tracks created for removed
// items only disappear on the next Flush.
// The slice is copied, so that the caller may edit it in place and set it
// again; changes behind the item contents or sizes still require Invalidate.
func (r *ResizeInvalidator) SetItems(items []Item) {
	if !reflect.DeepEqual(items, r.container.Items) {
		r.dirty |= DirtyItems
	}
	r.container.Items = slices.Clone(items)
}

// Invalidate marks the grid dirty after a change not visible to the
// invalidator, like a modified item content.
func (r *ResizeInvalidator) Invalidate() { r.dirty |= DirtyContent }

// Dirty returns the pending reasons for a new layout pass.
func (r *ResizeInvalidator) Dirty() DirtyReason { return r.dirty }

// Flush runs a layout pass if the grid is dirty, and returns the current
// geometry, with true if it has been recomputed.
func (r *ResizeInvalidator) Flush() (Geometry, bool) {
	if r.dirty == 0 {
		return r.geometry, false
	}
	logger.ProgressLogger.Debugf("grid layout pass %d (%s)", r.passes+1, r.dirty)
	r.geometry = r.container.Layout()
	r.dirty = 0
	r.passes++
	return r.geometry, true
}

// Geometry returns the geometry computed by the last Flush.
func (r *ResizeInvalidator) Geometry() Geometry { return r.geometry }

// Passes returns the number of layout passes run so far.
func (r *ResizeInvalidator) Passes() int { return r.passes }
