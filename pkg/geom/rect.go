package geom

import (
	"fmt"
	"image"
)

// Size is a resolved width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// Clamp returns the size with negative axes replaced by 0.
func (s Size) Clamp() Size {
	return Size{Width: nonNegative(s.Width), Height: nonNegative(s.Height)}
}

// Empty reports whether either axis is zero.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is an integer coordinate.
type Point struct {
	X int
	Y int
}

// Rect is an edge-described rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectAt builds a rect from an origin and a size.
func RectAt(x, y int, s Size) Rect {
	return Rect{Left: x, Top: y, Right: x + s.Width, Bottom: y + s.Height}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns the rect's extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Offset returns the rect translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Local returns the same extent anchored at (0, 0).
func (r Rect) Local() Rect {
	return RectAt(0, 0, r.Size())
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
