package view

import "viewkit/pkg/geom"

// Frame carries the geometry every node has: the size it settled on during
// measurement, the rectangle its parent assigned, and its invalidation
// tracker. Concrete nodes embed it.
type Frame struct {
	measured geom.Size
	bounds   geom.Rect
	laidOut  bool
	tracker  Tracker
}

// MeasuredSize returns the size stored by the last measurement.
func (f *Frame) MeasuredSize() geom.Size {
	return f.measured
}

// SetMeasuredSize stores the measurement result. Negative axes become 0.
func (f *Frame) SetMeasuredSize(s geom.Size) {
	f.measured = s.Clamp()
}

// Bounds returns the rectangle assigned by the parent.
func (f *Frame) Bounds() geom.Rect {
	return f.bounds
}

// Width and Height are the extent of the assigned bounds.
func (f *Frame) Width() int  { return f.bounds.Width() }
func (f *Frame) Height() int { return f.bounds.Height() }

// LaidOut reports whether bounds were assigned at least once.
func (f *Frame) LaidOut() bool {
	return f.laidOut
}

// Tracker returns the node's invalidation state.
func (f *Frame) Tracker() *Tracker {
	return &f.tracker
}

// SetBounds stores r and reports whether the size differs from the previous
// assignment. A size change marks geometry stale; a move alone does not,
// since nodes paint in local coordinates.
func (f *Frame) SetBounds(r geom.Rect) bool {
	changed := !f.laidOut || r.Size() != f.bounds.Size()
	f.bounds = r
	f.laidOut = true
	if changed {
		f.tracker.stale = true
	}
	return changed
}

// AssignBounds is the default layout entry point for leaves without
// internal placement.
func (f *Frame) AssignBounds(r geom.Rect) {
	f.SetBounds(r)
}
