package render

import (
	"image"
	"image/color"

	"viewkit/pkg/geom"
	"viewkit/pkg/text"
	"viewkit/pkg/view"
)

// OpKind identifies a recorded draw operation.
type OpKind string

const (
	OpImage OpKind = "image"
	OpFill  OpKind = "fill"
	OpLine  OpKind = "line"
	OpText  OpKind = "text"
)

// Op is one recorded draw call with coordinates resolved against the
// translation in effect when it was issued.
type Op struct {
	Kind  OpKind
	Rect  geom.Rect   // image destination, fill area, or text box
	From  geom.Point  // line start
	To    geom.Point  // line end
	Text  string      // text run
	Color color.NRGBA // fill, stroke or text color
	Width float64     // stroke width
	Image image.Image // drawn image
}

// Recorder is a Surface that stores operations instead of painting them.
type Recorder struct {
	Ops []Op

	offset geom.Point
	stack  []geom.Point
}

var _ view.Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset drops recorded operations and translation state.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.offset = geom.Point{}
	r.stack = r.stack[:0]
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.offset)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.offset = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(dx, dy int) {
	r.offset.X += dx
	r.offset.Y += dy
}

func (r *Recorder) DrawImage(img image.Image, dst geom.Rect) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Rect: dst.Offset(r.offset.X, r.offset.Y), Image: img})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect.Offset(r.offset.X, r.offset.Y), Color: c})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int, stroke view.Stroke) {
	r.Ops = append(r.Ops, Op{
		Kind:  OpLine,
		From:  geom.Point{X: x0 + r.offset.X, Y: y0 + r.offset.Y},
		To:    geom.Point{X: x1 + r.offset.X, Y: y1 + r.offset.Y},
		Color: stroke.Color,
		Width: stroke.Width,
	})
}

func (r *Recorder) DrawText(line text.Line, origin geom.Point) {
	box := geom.RectAt(origin.X+r.offset.X, origin.Y+r.offset.Y, geom.Size{Width: line.Width, Height: line.Height})
	r.Ops = append(r.Ops, Op{Kind: OpText, Rect: box, Text: line.Text, Color: line.Style.Color})
}

// Kinds returns the kind of every recorded operation, in order.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Filter returns the recorded operations of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}
