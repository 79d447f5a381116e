package scene

import "github.com/go-tide/tide/pkg/rendering"

// HitTestable is implemented by components that occupy space and can be hit
// by pointer queries.
type HitTestable interface {
	// Contains returns true if the point lies within the component.
	Contains(point rendering.Offset) bool
}

// HitTestResult collects hit test entries in front-to-back order: the first
// entry is the topmost component under the query point.
type HitTestResult struct {
	Entries []Component
}

// Add appends a component to the result.
func (r *HitTestResult) Add(c Component) {
	r.Entries = append(r.Entries, c)
}

// IsEmpty returns true if nothing was hit.
func (r *HitTestResult) IsEmpty() bool {
	return len(r.Entries) == 0
}

// Top returns the topmost hit component, or nil.
func (r *HitTestResult) Top() Component {
	if len(r.Entries) == 0 {
		return nil
	}
	return r.Entries[0]
}
