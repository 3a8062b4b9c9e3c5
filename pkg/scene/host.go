package scene

import (
	"go.uber.org/zap"

	"viewkit/pkg/geom"
	"viewkit/pkg/observability"
	"viewkit/pkg/view"
)

// Host drives frames for a root node. It receives redraw requests from the
// tree and runs measure, layout and draw in that order for each frame.
type Host struct {
	root   view.Node
	logger *zap.Logger

	pending  bool
	requests int
	frames   int
	size     geom.Size
}

var _ view.Invalidator = (*Host)(nil)

// NewHost attaches a host to root. A nil logger discards output.
func NewHost(root view.Node, logger *zap.Logger) *Host {
	h := &Host{root: root, logger: observability.OrNop(logger), pending: true}
	root.Tracker().SetHost(h)
	return h
}

// RequestRedraw records that the tree changed since the last frame.
func (h *Host) RequestRedraw() {
	h.pending = true
	h.requests++
}

// NeedsFrame reports whether a redraw was requested or the window size
// differs from the last frame.
func (h *Host) NeedsFrame(width, height int) bool {
	return h.pending || h.root.Tracker().Stale() || h.size != (geom.Size{Width: width, Height: height})
}

// Requests returns the number of redraw requests received.
func (h *Host) Requests() int { return h.requests }

// Frames returns the number of frames drawn.
func (h *Host) Frames() int { return h.frames }

// Layout measures the root with AtMost constraints of the window size and
// assigns it a rectangle at the origin.
func (h *Host) Layout(width, height int) geom.Rect {
	wc, hc := geom.AtMost(width), geom.AtMost(height)
	size := h.root.Measure(wc, hc)
	bounds := geom.RectAt(0, 0, size)
	h.root.AssignBounds(bounds)
	h.size = geom.Size{Width: width, Height: height}

	h.logger.Debug("layout",
		zap.Stringer("width", wc),
		zap.Stringer("height", hc),
		zap.Stringer("bounds", bounds))
	return bounds
}

// Frame runs a full measure, layout and draw pass into s.
func (h *Host) Frame(s view.Surface, width, height int) geom.Rect {
	bounds := h.Layout(width, height)
	view.DrawChild(s, h.root)

	h.pending = false
	h.frames++
	h.logger.Debug("frame drawn", zap.Int("frame", h.frames))
	return bounds
}
