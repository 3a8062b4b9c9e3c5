// Package view defines the measure/layout/draw contract shared by every node
// in a tree, the drawing surface nodes paint into, and the per-node
// invalidation state the host runtime polls between frames.
//
// A frame runs in three passes. Measure flows constraints down and desired
// sizes up. AssignBounds flows rectangles down; a node never assigns its own
// rectangle. Draw flows down and paints only what the preceding layout pass
// computed.
package view

import (
	"errors"

	"viewkit/pkg/geom"
)

var (
	// ErrCapacityExceeded is returned when an insertion would exceed a
	// container's child limit. The container is left unchanged.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration is returned for configuration a node cannot
	// honor, such as a grid with fewer than one column.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Measurable can be asked for its desired size under a pair of constraints
// and afterward reports the size it settled on.
type Measurable interface {
	Measure(width, height geom.Constraint) geom.Size
	MeasuredSize() geom.Size
}

// Layoutable additionally accepts a final rectangle in its parent's
// coordinate space.
type Layoutable interface {
	Measurable
	AssignBounds(r geom.Rect)
	Bounds() geom.Rect
}

// Drawable paints itself in local coordinates, (0,0) being the top-left
// corner of its bounds.
type Drawable interface {
	Draw(s Surface)
}

// Node is a full participant in a tree.
type Node interface {
	Layoutable
	Drawable
	Tracker() *Tracker
}

// Content is a visual element with an intrinsic size, such as a decoded
// image. A missing axis reports 0.
type Content interface {
	IntrinsicSize() geom.Size
	Draw(s Surface, dst geom.Rect)
}

// IntrinsicSize returns c's intrinsic size, or the zero size for nil content.
func IntrinsicSize(c Content) geom.Size {
	if c == nil {
		return geom.Size{}
	}
	return c.IntrinsicSize().Clamp()
}

// DrawChild draws n translated to the origin of its bounds.
func DrawChild(s Surface, n Node) {
	b := n.Bounds()
	s.Save()
	s.Translate(b.Left, b.Top)
	n.Draw(s)
	s.Restore()
}
