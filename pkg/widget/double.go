package widget

import (
	"viewkit/pkg/geom"
	"viewkit/pkg/text"
	"viewkit/pkg/view"
)

// Default presentation factors for DoubleImage. Each element contributes
// DefaultScale of its intrinsic size to the desired size, and the right
// element is offset from the left one by DefaultOverlap of the left
// element's intrinsic size, so the two overlap.
const (
	DefaultScale   = 0.67
	DefaultOverlap = 0.33
)

// DoubleConfig configures a DoubleImage. Zero Scale or Overlap select the
// defaults; a nil Measurer selects text.Default.
type DoubleConfig struct {
	Left      view.Content
	Right     view.Content
	Text      string
	TextStyle text.Style
	Spacing   int
	Scale     float64
	Overlap   float64
	Measurer  text.Measurer
}

// Placement is the computed position of each part, in local coordinates.
// Absent parts have zero rects.
type Placement struct {
	Left  geom.Rect
	Right geom.Rect
	Text  geom.Rect
}

// DoubleImage draws two overlapping images followed by a single line of
// text, centered as one block inside its bounds.
type DoubleImage struct {
	view.Frame

	left     view.Content
	right    view.Content
	text     string
	style    text.Style
	spacing  int
	scale    float64
	overlap  float64
	measurer text.Measurer

	line      text.Line
	placement Placement
}

var _ view.Node = (*DoubleImage)(nil)

// NewDoubleImage builds a node from cfg.
func NewDoubleImage(cfg DoubleConfig) *DoubleImage {
	d := &DoubleImage{
		left:     cfg.Left,
		right:    cfg.Right,
		text:     cfg.Text,
		style:    cfg.TextStyle,
		spacing:  max(cfg.Spacing, 0),
		scale:    cfg.Scale,
		overlap:  cfg.Overlap,
		measurer: cfg.Measurer,
	}
	if d.scale <= 0 {
		d.scale = DefaultScale
	}
	if d.overlap <= 0 {
		d.overlap = DefaultOverlap
	}
	if d.measurer == nil {
		d.measurer = text.Default
	}
	d.layoutText()
	return d
}

func (d *DoubleImage) SetLeft(c view.Content) {
	d.left = c
	d.Tracker().Invalidate()
}

func (d *DoubleImage) SetRight(c view.Content) {
	d.right = c
	d.Tracker().Invalidate()
}

// SetText replaces the text run. Setting the current text is a no-op.
func (d *DoubleImage) SetText(s string) {
	if s == d.text {
		return
	}
	d.text = s
	d.layoutText()
	d.Tracker().Invalidate()
}

func (d *DoubleImage) SetTextStyle(st text.Style) {
	d.style = st
	d.layoutText()
	d.Tracker().Invalidate()
}

// SetSpacing sets the gap between the right element and the text.
// Negative values clamp to 0.
func (d *DoubleImage) SetSpacing(px int) {
	d.spacing = max(px, 0)
	d.Tracker().Invalidate()
}

// SetFactors changes the scale and overlap factors. Values <= 0 select
// DefaultScale and DefaultOverlap.
func (d *DoubleImage) SetFactors(scale, overlap float64) {
	if scale <= 0 {
		scale = DefaultScale
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	d.scale, d.overlap = scale, overlap
	d.Tracker().Invalidate()
}

// Factors returns the scale and overlap factors in effect.
func (d *DoubleImage) Factors() (scale, overlap float64) {
	return d.scale, d.overlap
}

func (d *DoubleImage) Text() string          { return d.text }
func (d *DoubleImage) Spacing() int          { return d.spacing }
func (d *DoubleImage) TextLine() text.Line   { return d.line }
func (d *DoubleImage) Left() view.Content    { return d.left }
func (d *DoubleImage) Right() view.Content   { return d.right }
func (d *DoubleImage) TextStyle() text.Style { return d.style }

func (d *DoubleImage) layoutText() {
	d.line = text.LayoutLine(d.measurer, d.text, d.style)
}

// DesiredSize is the unconstrained size of the content block.
func (d *DoubleImage) DesiredSize() geom.Size {
	l := view.IntrinsicSize(d.left)
	r := view.IntrinsicSize(d.right)
	return geom.Size{
		Width:  d.scaled(l.Width) + d.scaled(r.Width) + d.spacing + d.line.Width,
		Height: d.scaled(l.Height) + d.scaled(r.Height),
	}
}

func (d *DoubleImage) scaled(px int) int {
	return int(float64(px) * d.scale)
}

func (d *DoubleImage) Measure(wc, hc geom.Constraint) geom.Size {
	desired := d.DesiredSize()
	d.SetMeasuredSize(geom.Size{
		Width:  wc.Resolve(desired.Width),
		Height: hc.Resolve(desired.Height),
	})
	return d.MeasuredSize()
}

// AssignBounds stores r and recomputes placement if the size changed or
// content changed since the last computation.
func (d *DoubleImage) AssignBounds(r geom.Rect) {
	d.SetBounds(r)
	if d.Tracker().Stale() {
		d.updateContentBounds()
	}
}

// Placement returns the part positions computed from the current bounds.
func (d *DoubleImage) Placement() Placement {
	return d.placement
}

func (d *DoubleImage) updateContentBounds() {
	desired := d.DesiredSize()
	left := (d.Width() - desired.Width) / 2
	top := (d.Height() - desired.Height) / 2

	var p Placement
	if d.left != nil {
		ls := view.IntrinsicSize(d.left)
		p.Left = geom.RectAt(left, top, ls)

		left += int(float64(ls.Width) * d.overlap)
		top += int(float64(ls.Height) * d.overlap)
	}
	if d.right != nil {
		p.Right = geom.RectAt(left, top, view.IntrinsicSize(d.right))
		left = p.Right.Right + d.spacing
	}
	if !d.line.Empty() {
		top = (d.Height() - d.line.Height) / 2
		p.Text = geom.RectAt(left, top, geom.Size{Width: d.line.Width, Height: d.line.Height})
	}

	d.placement = p
	d.Tracker().MarkClean()
}

// Draw paints the left element, the text, then the right element, which
// lands on top of both.
func (d *DoubleImage) Draw(s view.Surface) {
	if !d.LaidOut() {
		return
	}
	if d.Tracker().Stale() {
		d.updateContentBounds()
	}

	if d.left != nil {
		d.left.Draw(s, d.placement.Left)
	}
	if !d.line.Empty() {
		s.DrawText(d.line, d.placement.Text.Origin())
	}
	if d.right != nil {
		d.right.Draw(s, d.placement.Right)
	}
}
