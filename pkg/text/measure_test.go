package text

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedMeasurer struct {
	advance, line float64
}

func (m fixedMeasurer) Measure(s string, st Style) (float64, float64) {
	return float64(len(s)) * m.advance, m.line
}

func TestLayoutLine_RoundsUp(t *testing.T) {
	l := LayoutLine(fixedMeasurer{advance: 6.25, line: 14.2}, "abc", Style{Size: 12})
	assert.Equal(t, 19, l.Width) // 18.75
	assert.Equal(t, 15, l.Height)
	assert.Equal(t, "abc", l.Text)
	assert.False(t, l.Empty())
}

func TestLayoutLine_EmptyString(t *testing.T) {
	l := LayoutLine(fixedMeasurer{advance: 7, line: 13}, "", Style{Size: 12})
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Width)
	assert.Equal(t, 0, l.Height)
}

func TestFaces_BundledFace(t *testing.T) {
	faces := NewFaces()
	st := Style{Size: 16}

	face, err := faces.Face(st)
	require.NoError(t, err)
	again, err := faces.Face(st)
	require.NoError(t, err)
	assert.Same(t, face, again, "faces should be cached per size")

	w, h := faces.Measure("Hello", st)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)

	wider, _ := faces.Measure("Hello, world", st)
	assert.Greater(t, wider, w)
}

func TestFaces_ZeroSizeMeasuresNothing(t *testing.T) {
	w, h := NewFaces().Measure("Hello", Style{Size: 0})
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestFaces_MissingFontFallsBackToEstimate(t *testing.T) {
	faces := NewFaces()
	st := Style{Size: 10, FontPath: "/nonexistent/font.ttf"}

	_, err := faces.Face(st)
	require.Error(t, err)

	w, h := faces.Measure("abcd", st)
	ew, eh := Estimate("abcd", 10)
	assert.Equal(t, ew, w)
	assert.Equal(t, eh, h)
}

func TestEstimate_WideRunes(t *testing.T) {
	narrow, _ := Estimate("ab", 10)
	wide, _ := Estimate("日本", 10)
	assert.True(t, math.Abs(narrow-12) < 1e-9)
	assert.True(t, math.Abs(wide-24) < 1e-9)
}
