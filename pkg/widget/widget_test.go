package widget

import (
	"image/color"

	"viewkit/pkg/geom"
	"viewkit/pkg/text"
	"viewkit/pkg/view"
)

// block is content that paints a solid rectangle.
type block struct {
	size  geom.Size
	color color.NRGBA
}

func (b block) IntrinsicSize() geom.Size { return b.size }

func (b block) Draw(s view.Surface, dst geom.Rect) {
	s.FillRect(dst, b.color)
}

func sized(w, h int) block {
	return block{size: geom.Size{Width: w, Height: h}, color: color.NRGBA{A: 0xff}}
}

// leaf records the constraints it was measured with.
type leaf struct {
	view.Frame
	wc, hc geom.Constraint
	draws  int
}

func (p *leaf) Measure(wc, hc geom.Constraint) geom.Size {
	p.wc, p.hc = wc, hc
	p.SetMeasuredSize(geom.Size{Width: wc.Resolve(0), Height: hc.Resolve(0)})
	return p.MeasuredSize()
}

func (p *leaf) Draw(s view.Surface) {
	p.draws++
	s.FillRect(p.Bounds().Local(), color.NRGBA{A: 0xff})
}

type fixedMeasurer struct {
	advance, line float64
}

func (m fixedMeasurer) Measure(s string, _ text.Style) (float64, float64) {
	return float64(len(s)) * m.advance, m.line
}

type redrawCounter struct {
	requests int
}

func (r *redrawCounter) RequestRedraw() { r.requests++ }
