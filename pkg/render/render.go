// Package render provides Surface implementations: a raster canvas backed
// by gg and a recorder that captures draw operations for inspection.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"viewkit/pkg/geom"
	"viewkit/pkg/text"
	"viewkit/pkg/view"
)

// Canvas rasterizes draw operations into an RGBA image.
type Canvas struct {
	context *gg.Context
	faces   *text.Faces
}

var _ view.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas with its own backing image.
func NewCanvas(width, height int, faces *text.Faces) *Canvas {
	return &Canvas{context: gg.NewContext(width, height), faces: orDefault(faces)}
}

// NewCanvasForImage draws directly into target.
func NewCanvasForImage(target *image.RGBA, faces *text.Faces) *Canvas {
	return &Canvas{context: gg.NewContextForRGBA(target), faces: orDefault(faces)}
}

func orDefault(faces *text.Faces) *text.Faces {
	if faces == nil {
		return text.Default
	}
	return faces
}

// Clear fills the whole canvas with c.
func (r *Canvas) Clear(c color.Color) {
	r.context.SetColor(c)
	r.context.Clear()
}

func (r *Canvas) Save()    { r.context.Push() }
func (r *Canvas) Restore() { r.context.Pop() }

func (r *Canvas) Translate(dx, dy int) {
	r.context.Translate(float64(dx), float64(dy))
}

// DrawImage scales img so it exactly covers dst.
func (r *Canvas) DrawImage(img image.Image, dst geom.Rect) {
	if img == nil || dst.Width() <= 0 || dst.Height() <= 0 {
		return
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	r.context.Push()
	r.context.Translate(float64(dst.Left), float64(dst.Top))
	r.context.Scale(
		float64(dst.Width())/float64(bounds.Dx()),
		float64(dst.Height())/float64(bounds.Dy()),
	)
	r.context.DrawImage(img, -bounds.Min.X, -bounds.Min.Y)
	r.context.Pop()
}

func (r *Canvas) FillRect(rect geom.Rect, c color.NRGBA) {
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return
	}
	r.context.SetColor(c)
	r.context.DrawRectangle(float64(rect.Left), float64(rect.Top), float64(rect.Width()), float64(rect.Height()))
	r.context.Fill()
}

// DrawLine strokes a segment. Zero-width strokes paint one-pixel hairlines.
func (r *Canvas) DrawLine(x0, y0, x1, y1 int, stroke view.Stroke) {
	width := stroke.Width
	if width <= 0 {
		width = 1
	}
	r.context.SetColor(stroke.Color)
	r.context.SetLineWidth(width)
	r.context.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
	r.context.Stroke()
}

// DrawText paints line with its top-left corner at origin. Lines whose face
// cannot be loaded are skipped.
func (r *Canvas) DrawText(line text.Line, origin geom.Point) {
	if line.Empty() {
		return
	}
	face, err := r.faces.Face(line.Style)
	if err != nil {
		return
	}
	r.context.SetFontFace(face)
	r.context.SetColor(line.Style.Color)

	// gg positions text by baseline.
	ascent := float64(face.Metrics().Ascent) / 64
	r.context.DrawString(line.Text, float64(origin.X), float64(origin.Y)+ascent)
}

// Image returns the backing image.
func (r *Canvas) Image() image.Image {
	return r.context.Image()
}

func (r *Canvas) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the canvas as PNG to w.
func (r *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.context.Image())
}
