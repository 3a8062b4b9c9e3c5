package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewkit/pkg/geom"
	"viewkit/pkg/render"
	"viewkit/pkg/text"
)

func newTestDouble() *DoubleImage {
	return NewDoubleImage(DoubleConfig{
		Left:     sized(100, 100),
		Right:    sized(100, 100),
		Text:     "abcd",
		Spacing:  10,
		Measurer: fixedMeasurer{advance: 5, line: 12},
	})
}

func TestDoubleImage_EmptyMeasuresZeroAndDrawsNothing(t *testing.T) {
	d := NewDoubleImage(DoubleConfig{})
	assert.Equal(t, geom.Size{}, d.Measure(geom.Unbounded(), geom.Unbounded()))
	assert.Equal(t, geom.Size{}, d.Measure(geom.AtMost(500), geom.AtMost(500)))

	d.AssignBounds(geom.Rect{})
	rec := render.NewRecorder()
	d.Draw(rec)
	assert.Empty(t, rec.Ops)
}

func TestDoubleImage_DesiredSize(t *testing.T) {
	d := newTestDouble()
	// 67 + 67 + 10 + 20 wide, 67 + 67 high.
	assert.Equal(t, geom.Size{Width: 164, Height: 134}, d.DesiredSize())
	assert.Equal(t, geom.Size{Width: 164, Height: 134}, d.Measure(geom.Unbounded(), geom.Unbounded()))
	assert.Equal(t, geom.Size{Width: 100, Height: 134}, d.Measure(geom.AtMost(100), geom.AtMost(400)))
	assert.Equal(t, geom.Size{Width: 50, Height: 60}, d.Measure(geom.Exactly(50), geom.Exactly(60)))
}

func TestDoubleImage_ScaleAndOverlapDefaults(t *testing.T) {
	d := NewDoubleImage(DoubleConfig{Left: sized(100, 100), Scale: -1, Overlap: 0})
	assert.Equal(t, geom.Size{Width: 67, Height: 67}, d.DesiredSize())

	d = NewDoubleImage(DoubleConfig{Left: sized(100, 100), Right: sized(100, 100), Scale: 1, Overlap: 0.5})
	assert.Equal(t, geom.Size{Width: 200, Height: 200}, d.DesiredSize())
	d.AssignBounds(geom.Rect{Right: 200, Bottom: 200})
	assert.Equal(t, geom.Rect{Left: 50, Top: 50, Right: 150, Bottom: 150}, d.Placement().Right)
}

func TestDoubleImage_Placement(t *testing.T) {
	d := newTestDouble()
	d.Measure(geom.Exactly(200), geom.Exactly(200))
	d.AssignBounds(geom.Rect{Right: 200, Bottom: 200})

	want := Placement{
		Left:  geom.Rect{Left: 18, Top: 33, Right: 118, Bottom: 133},
		Right: geom.Rect{Left: 51, Top: 66, Right: 151, Bottom: 166},
		Text:  geom.Rect{Left: 161, Top: 94, Right: 181, Bottom: 106},
	}
	if diff := cmp.Diff(want, d.Placement()); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestDoubleImage_DrawOrder(t *testing.T) {
	d := newTestDouble()
	d.AssignBounds(geom.Rect{Right: 200, Bottom: 200})

	rec := render.NewRecorder()
	d.Draw(rec)
	assert.Equal(t, []render.OpKind{render.OpFill, render.OpText, render.OpFill}, rec.Kinds())
	assert.Equal(t, d.Placement().Left, rec.Ops[0].Rect)
	assert.Equal(t, "abcd", rec.Ops[1].Text)
	assert.Equal(t, d.Placement().Right, rec.Ops[2].Rect)
}

func TestDoubleImage_RepeatedBoundsAreIdempotent(t *testing.T) {
	d := newTestDouble()
	r := geom.Rect{Left: 5, Top: 5, Right: 245, Bottom: 205}

	d.AssignBounds(r)
	first := d.Placement()
	d.AssignBounds(r)
	assert.Equal(t, first, d.Placement())

	d.Tracker().Invalidate()
	d.AssignBounds(r)
	assert.Equal(t, first, d.Placement())
}

func TestDoubleImage_DrawUsesLatestBounds(t *testing.T) {
	d := newTestDouble()
	d.AssignBounds(geom.Rect{Right: 200, Bottom: 200})
	d.AssignBounds(geom.Rect{Right: 300, Bottom: 300})

	rec := render.NewRecorder()
	d.Draw(rec)
	require.Len(t, rec.Ops, 3)
	// (300-164)/2, (300-134)/2
	assert.Equal(t, geom.Rect{Left: 68, Top: 83, Right: 168, Bottom: 183}, rec.Ops[0].Rect)
}

func TestDoubleImage_DrawRecomputesAfterMutation(t *testing.T) {
	d := newTestDouble()
	d.AssignBounds(geom.Rect{Right: 200, Bottom: 200})
	before := d.Placement()

	d.SetSpacing(30)
	assert.True(t, d.Tracker().Stale())

	rec := render.NewRecorder()
	d.Draw(rec)
	assert.False(t, d.Tracker().Stale())
	assert.NotEqual(t, before, d.Placement())
	// the block is 20px wider, so it shifts left by 10
	assert.Equal(t, before.Left.Left-10, d.Placement().Left.Left)
	assert.Equal(t, d.Placement().Right.Right+30, d.Placement().Text.Left)
	assert.Equal(t, d.Placement().Text, rec.Ops[1].Rect)
}

func TestDoubleImage_Mutators(t *testing.T) {
	host := &redrawCounter{}
	d := newTestDouble()
	d.Tracker().SetHost(host)

	d.SetText("abcd")
	assert.Equal(t, 0, host.requests, "setting the same text is a no-op")

	d.SetText("abcdefgh")
	assert.Equal(t, 1, host.requests)
	assert.Equal(t, 40, d.TextLine().Width)

	d.SetText("")
	assert.True(t, d.TextLine().Empty())

	d.SetSpacing(-4)
	assert.Equal(t, 0, d.Spacing())

	d.SetLeft(nil)
	d.SetRight(sized(10, 20))
	assert.Nil(t, d.Left())
	assert.Equal(t, geom.Size{Width: 6, Height: 13}, d.DesiredSize())

	d.SetTextStyle(text.Style{Size: 20})
	assert.Equal(t, 20.0, d.TextStyle().Size)
	assert.Equal(t, 6, host.requests)
}

func TestDoubleImage_TextOnly(t *testing.T) {
	d := NewDoubleImage(DoubleConfig{Text: "hi", Measurer: fixedMeasurer{advance: 10, line: 16}})
	assert.Equal(t, geom.Size{Width: 20, Height: 0}, d.DesiredSize())

	d.AssignBounds(geom.Rect{Right: 40, Bottom: 40})
	assert.Equal(t, geom.Rect{Left: 10, Top: 12, Right: 30, Bottom: 28}, d.Placement().Text)

	rec := render.NewRecorder()
	d.Draw(rec)
	assert.Equal(t, []render.OpKind{render.OpText}, rec.Kinds())
}
