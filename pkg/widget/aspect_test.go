package widget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewkit/pkg/geom"
	"viewkit/pkg/render"
)

func TestAspectImage_ExactWidthDerivesHeight(t *testing.T) {
	a := NewAspectImage(sized(200, 100))
	got := a.Measure(geom.Exactly(100), geom.Unbounded())
	assert.Equal(t, geom.Size{Width: 100, Height: 50}, got)
	assert.Equal(t, got, a.MeasuredSize())

	a = NewAspectImage(sized(300, 200))
	assert.Equal(t, geom.Size{Width: 90, Height: 60}, a.Measure(geom.Exactly(90), geom.Unbounded()))
}

func TestAspectImage_UnboundedUsesIntrinsicSize(t *testing.T) {
	a := NewAspectImage(sized(64, 48))
	assert.Equal(t, geom.Size{Width: 64, Height: 48}, a.Measure(geom.Unbounded(), geom.Unbounded()))
}

func TestAspectImage_AtMostWidthShrinks(t *testing.T) {
	a := NewAspectImage(sized(200, 100))
	assert.Equal(t, geom.Size{Width: 50, Height: 25}, a.Measure(geom.AtMost(50), geom.Unbounded()))
	assert.Equal(t, geom.Size{Width: 200, Height: 100}, a.Measure(geom.AtMost(500), geom.Unbounded()))
}

func TestAspectImage_HeightClampPreservesRatio(t *testing.T) {
	cases := []struct {
		name   string
		iw, ih int
		wc, hc geom.Constraint
	}{
		{"tall exact width", 100, 200, geom.Exactly(100), geom.AtMost(50)},
		{"odd ratio", 333, 77, geom.Exactly(300), geom.AtMost(41)},
		{"exact height", 90, 160, geom.Unbounded(), geom.Exactly(100)},
		{"both at most", 1920, 1080, geom.AtMost(800), geom.AtMost(200)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAspectImage(sized(tc.iw, tc.ih))
			got := a.Measure(tc.wc, tc.hc)

			limit, _ := tc.hc.Limit()
			assert.LessOrEqual(t, got.Height, limit)
			if wl, ok := tc.wc.Limit(); ok {
				assert.LessOrEqual(t, got.Width, wl)
			}
			want := float64(got.Height) * float64(tc.iw) / float64(tc.ih)
			assert.LessOrEqual(t, math.Abs(float64(got.Width)-want), 1.0,
				"width %d strays from ratio for height %d", got.Width, got.Height)
		})
	}
}

func TestAspectImage_DegenerateContent(t *testing.T) {
	a := NewAspectImage(nil)
	assert.Equal(t, 1.0, a.Aspect())
	assert.Equal(t, geom.Size{}, a.Measure(geom.Unbounded(), geom.Unbounded()))
	assert.Equal(t, geom.Size{Width: 40, Height: 40}, a.Measure(geom.Exactly(40), geom.Unbounded()))

	a = NewAspectImage(sized(50, 0))
	assert.Equal(t, 1.0, a.Aspect())
	assert.Equal(t, geom.Size{Width: 50, Height: 50}, a.Measure(geom.Unbounded(), geom.Unbounded()))
}

func TestAspectImage_DrawFillsLocalBounds(t *testing.T) {
	a := NewAspectImage(sized(200, 100))
	rec := render.NewRecorder()

	a.Draw(rec)
	assert.Empty(t, rec.Ops, "nothing is drawn before bounds are assigned")

	size := a.Measure(geom.Exactly(100), geom.Unbounded())
	a.AssignBounds(geom.RectAt(10, 20, size))
	a.Draw(rec)

	require.Len(t, rec.Ops, 1)
	assert.Equal(t, render.OpFill, rec.Ops[0].Kind)
	assert.Equal(t, geom.Rect{Right: 100, Bottom: 50}, rec.Ops[0].Rect)
	assert.False(t, a.Tracker().Stale())
}

func TestAspectImage_SetContentInvalidates(t *testing.T) {
	host := &redrawCounter{}
	a := NewAspectImage(sized(10, 10))
	a.Tracker().SetHost(host)
	a.AssignBounds(geom.Rect{Right: 10, Bottom: 10})
	a.Draw(render.NewRecorder())
	require.False(t, a.Tracker().Stale())

	a.SetContent(sized(20, 10))
	assert.True(t, a.Tracker().Stale())
	assert.Equal(t, 1, host.requests)
	assert.Equal(t, 2.0, a.Aspect())
}
