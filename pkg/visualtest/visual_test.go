package visualtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"viewkit/pkg/scene"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func saveTestImage(t *testing.T, img image.Image, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func TestCompare_Identical(t *testing.T) {
	img := solid(10, 10, color.RGBA{255, 0, 0, 255})
	result, err := Compare(img, solid(10, 10, color.RGBA{255, 0, 0, 255}), DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match || result.DifferentPixels != 0 {
		t.Errorf("expected a match, got %+v", result)
	}
}

func TestCompareFiles_DifferentWritesDiff(t *testing.T) {
	tmpDir := t.TempDir()
	path1 := filepath.Join(tmpDir, "red.png")
	path2 := filepath.Join(tmpDir, "blue.png")
	diffPath := filepath.Join(tmpDir, "diff.png")
	saveTestImage(t, solid(10, 10, color.RGBA{255, 0, 0, 255}), path1)
	saveTestImage(t, solid(10, 10, color.RGBA{0, 0, 255, 255}), path2)

	result, err := CompareFiles(path1, path2, diffPath, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to differ")
	}
	if result.DifferentPixels != 100 {
		t.Errorf("expected 100 different pixels, got %d", result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("expected max difference 255, got %d", result.MaxDifference)
	}
	if _, err := os.Stat(diffPath); err != nil {
		t.Errorf("diff image not written: %v", err)
	}
}

func TestCompare_Tolerance(t *testing.T) {
	a := solid(4, 4, color.RGBA{100, 100, 100, 255})
	b := solid(4, 4, color.RGBA{103, 100, 100, 255})

	opts := DefaultOptions()
	if result, _ := Compare(a, b, opts); result.Match {
		t.Errorf("difference of 3 should exceed tolerance 2")
	}
	opts.Tolerance = 3
	if result, _ := Compare(a, b, opts); !result.Match {
		t.Errorf("difference of 3 should pass tolerance 3")
	}
}

func TestCompare_FuzzyRadiusAndPercent(t *testing.T) {
	a := solid(10, 10, color.Black)
	b := solid(10, 10, color.Black)
	a.Set(4, 4, color.White)
	b.Set(5, 4, color.White)

	opts := DefaultOptions()
	if result, _ := Compare(a, b, opts); result.Match {
		t.Fatalf("shifted pixel should not match exactly")
	}

	opts.FuzzyRadius = 1
	if result, _ := Compare(a, b, opts); !result.Match {
		t.Errorf("one-pixel shift should match with radius 1, got %+v", result)
	}

	opts = DefaultOptions()
	opts.MaxDifferentPercent = 2
	if result, _ := Compare(a, b, opts); !result.Match {
		t.Errorf("2 of 100 pixels should pass a 2%% budget, got %+v", result)
	}
}

func TestCompare_DimensionMismatch(t *testing.T) {
	result, err := Compare(solid(10, 10, color.Black), solid(20, 10, color.Black), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for different dimensions")
	}
	if result.Match {
		t.Error("different dimensions should not match")
	}
}

const gridScene = `
[root]
type = "grid"
attrs = { numColumns = 3, separatorWidth = 2, separatorColor = "white" }

[[root.children]]
type = "aspect"
attrs = { src = "color:#FF0000FF@10x10" }

[[root.children]]
type = "aspect"
attrs = { src = "color:#FF00FF00@10x10" }

[[root.children]]
type = "aspect"
attrs = { src = "color:#FFFF0000@10x10" }

[[root.children]]
type = "aspect"
attrs = { src = "color:#FF0000FF@10x10" }

[[root.children]]
type = "aspect"
attrs = { src = "color:#FFFFFF00@10x10" }
`

func renderGrid(t *testing.T) *image.RGBA {
	t.Helper()
	f, err := scene.Parse([]byte(gridScene))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	s, err := scene.NewBuilder(t.TempDir()).Build(f)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	return RenderScene(s, 300, 300, color.Black)
}

func TestRenderScene_GridPixels(t *testing.T) {
	img := renderGrid(t)

	samples := []struct {
		x, y int
		want color.RGBA
	}{
		{50, 50, color.RGBA{0, 0, 255, 255}},     // child 0
		{150, 50, color.RGBA{0, 255, 0, 255}},    // child 1
		{250, 50, color.RGBA{255, 0, 0, 255}},    // child 2
		{150, 150, color.RGBA{255, 255, 0, 255}}, // child 4
		{150, 250, color.RGBA{0, 0, 0, 255}},     // empty cell
		{100, 50, color.RGBA{255, 255, 255, 255}},
		{50, 200, color.RGBA{255, 255, 255, 255}},
	}
	for _, p := range samples {
		if got := img.RGBAAt(p.x, p.y); got != p.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", p.x, p.y, got, p.want)
		}
	}
}

func TestRenderScene_Deterministic(t *testing.T) {
	result, err := Compare(renderGrid(t), renderGrid(t), CompareOptions{})
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("two renders of one scene differ in %d pixels", result.DifferentPixels)
	}
}

func TestRenderSceneToFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "grid.toml")
	if err := os.WriteFile(scenePath, []byte(gridScene), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "grid.png")
	if err := RenderSceneToFile(scenePath, out, 300, 300, color.Black); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	ref := filepath.Join(dir, "ref.png")
	saveTestImage(t, renderGrid(t), ref)
	result, err := CompareFiles(out, ref, "", DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("file render differs from in-memory render in %d pixels", result.DifferentPixels)
	}
}
