// Package widget implements the concrete nodes: an aspect-preserving image,
// a two-element composite with a text run, and a fixed-capacity square grid.
package widget

import (
	"math"

	"viewkit/pkg/geom"
	"viewkit/pkg/view"
)

// AspectImage sizes itself to match the aspect ratio of its content.
type AspectImage struct {
	view.Frame
	content view.Content
}

var _ view.Node = (*AspectImage)(nil)

// NewAspectImage returns a node showing c, which may be nil.
func NewAspectImage(c view.Content) *AspectImage {
	return &AspectImage{content: c}
}

// Content returns the current content.
func (a *AspectImage) Content() view.Content {
	return a.content
}

// SetContent replaces the content and invalidates.
func (a *AspectImage) SetContent(c view.Content) {
	a.content = c
	a.Tracker().Invalidate()
}

// Aspect returns intrinsic width over intrinsic height, or 1 when either
// axis is missing.
func (a *AspectImage) Aspect() float64 {
	s := view.IntrinsicSize(a.content)
	if s.Width == 0 || s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// Measure resolves the width from the content's intrinsic width, derives
// the height from the aspect ratio, and shrinks both when the height bound
// is exceeded.
func (a *AspectImage) Measure(wc, hc geom.Constraint) geom.Size {
	aspect := a.Aspect()
	width := wc.Resolve(view.IntrinsicSize(a.content).Width)
	height := int(math.Round(float64(width) / aspect))

	if limit, ok := hc.Limit(); ok && height > limit {
		height = limit
		width = int(math.Round(float64(height) * aspect))
	}
	if limit, ok := wc.Limit(); ok && width > limit {
		width = limit
	}

	size := geom.Size{Width: width, Height: height}
	a.SetMeasuredSize(size)
	return a.MeasuredSize()
}

// Draw paints the content over the whole bounds.
func (a *AspectImage) Draw(s view.Surface) {
	if !a.LaidOut() {
		return
	}
	a.Tracker().MarkClean()
	if a.content == nil {
		return
	}
	a.content.Draw(s, a.Bounds().Local())
}
