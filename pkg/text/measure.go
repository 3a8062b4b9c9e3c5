package text

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Style configures how a run of text is measured and painted.
type Style struct {
	Size     float64     // Font size in pixels
	Color    color.NRGBA // Paint color
	FontPath string      // TTF file; empty selects the bundled Go Regular face
}

// Measurer reports the unwrapped advance width and line height of a string.
type Measurer interface {
	Measure(s string, st Style) (width, height float64)
}

type faceKey struct {
	path string
	size float64
}

// Faces loads and caches font faces per (font file, size).
type Faces struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

// NewFaces returns an empty face cache.
func NewFaces() *Faces {
	return &Faces{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Default is the process-wide face cache used when a node is not given one.
var Default = NewFaces()

// Face returns the face for the style's font file and size.
func (f *Faces) Face(st Style) (font.Face, error) {
	if st.Size <= 0 {
		return nil, fmt.Errorf("text size %v: must be positive", st.Size)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{path: st.FontPath, size: st.Size}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}

	ttf, err := f.loadFont(st.FontPath)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: st.Size, Hinting: font.HintingFull})
	f.faces[key] = face
	return face, nil
}

// loadFont parses a TTF file; callers hold f.mu.
func (f *Faces) loadFont(path string) (*truetype.Font, error) {
	if ttf, ok := f.fonts[path]; ok {
		return ttf, nil
	}

	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		data = b
	}

	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", path, err)
	}
	f.fonts[path] = ttf
	return ttf, nil
}

// Measure measures s with the style's face. If the face cannot be loaded the
// result is a rough estimate rather than an error.
func (f *Faces) Measure(s string, st Style) (width, height float64) {
	if s == "" || st.Size <= 0 {
		return 0, 0
	}
	face, err := f.Face(st)
	if err != nil {
		return Estimate(s, st.Size)
	}
	advance := font.MeasureString(face, s)
	return float64(advance) / 64, float64(face.Metrics().Height) / 64
}

// Estimate approximates a string's extent from its terminal cell width,
// so wide runes count double.
func Estimate(s string, size float64) (width, height float64) {
	if size <= 0 {
		return 0, 0
	}
	return float64(runewidth.StringWidth(s)) * size * 0.6, size * 1.2
}

// Line is a single line of text laid out without wrapping.
type Line struct {
	Text   string
	Style  Style
	Width  int // Minimum width that renders Text without wrapping
	Height int // Line height
}

// LayoutLine lays out s as one line. An empty string yields the zero Line.
func LayoutLine(m Measurer, s string, st Style) Line {
	if s == "" {
		return Line{}
	}
	w, h := m.Measure(s, st)
	return Line{
		Text:   s,
		Style:  st,
		Width:  int(math.Ceil(w)),
		Height: int(math.Ceil(h)),
	}
}

// Empty reports whether the line has nothing to draw.
func (l Line) Empty() bool {
	return l.Text == ""
}
