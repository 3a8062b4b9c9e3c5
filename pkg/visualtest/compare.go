package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255

	// Diff marks mismatched pixels in red over a grayscale copy of the
	// actual image. Only set when CompareOptions.Diff is true.
	Diff *image.RGBA
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing one-pixel shifts in antialiased edges.
	FuzzyRadius int

	// MaxDifferentPercent passes a comparison whose share of differing
	// pixels is at most this percentage.
	MaxDifferentPercent float64

	// Diff requests a diff image in the result.
	Diff bool
}

// DefaultOptions returns the options used for frame comparisons: small
// channel tolerance, exact positions.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare compares two images pixel by pixel. Images with different bounds
// never match.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			result.MaxDifference = max(result.MaxDifference, diff)

			ok := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && nearMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !ok {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if ok {
					result.Diff.Set(x, y, color.Gray{Y: a[0]})
				} else {
					result.Diff.Set(x, y, color.RGBA{R: 255, A: 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// CompareFiles decodes two PNG files and compares them. When diffPath is
// non-empty and the images differ, the diff image is written there.
func CompareFiles(actualPath, expectedPath, diffPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := readPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("actual image: %w", err)
	}
	expected, err := readPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("expected image: %w", err)
	}

	opts.Diff = opts.Diff || diffPath != ""
	result, err := Compare(actual, expected, opts)
	if err != nil {
		return result, err
	}
	if diffPath != "" && !result.Match {
		if err := writePNG(result.Diff, diffPath); err != nil {
			return result, fmt.Errorf("failed to save diff image: %w", err)
		}
	}
	return result, nil
}

// nearMatch reports whether any expected pixel within radius of (x, y)
// matches the actual pixel a.
func nearMatch(a [4]uint8, expected image.Image, x, y, radius, tolerance int) bool {
	r := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).Intersect(expected.Bounds())
	for ny := r.Min.Y; ny < r.Max.Y; ny++ {
		for nx := r.Min.X; nx < r.Max.X; nx++ {
			if channelDiff(a, rgba8(expected.At(nx, ny))) <= tolerance {
				return true
			}
		}
	}
	return false
}

func rgba8(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func channelDiff(a, b [4]uint8) int {
	d := 0
	for i := range a {
		d = max(d, absInt(int(a[i])-int(b[i])))
	}
	return d
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func writePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
