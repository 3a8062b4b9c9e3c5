package view

import (
	"image"
	"image/color"

	"viewkit/pkg/geom"
	"viewkit/pkg/text"
)

// Stroke describes how lines are painted. A zero width paints a hairline.
type Stroke struct {
	Width float64
	Color color.NRGBA
}

// Surface is the drawing capability nodes render into. Coordinates are
// relative to the current translation.
type Surface interface {
	// Save pushes the current translation; Restore pops it.
	Save()
	Restore()
	Translate(dx, dy int)

	// DrawImage scales img to fill dst.
	DrawImage(img image.Image, dst geom.Rect)
	FillRect(r geom.Rect, c color.NRGBA)
	DrawLine(x0, y0, x1, y1 int, stroke Stroke)
	// DrawText paints a laid-out line whose top-left corner is origin.
	DrawText(line text.Line, origin geom.Point)
}
