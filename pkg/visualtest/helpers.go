// Package visualtest renders scenes to images and compares them, for
// regression tests and the reference images kept next to example scenes.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"viewkit/pkg/render"
	"viewkit/pkg/scene"
)

// RenderScene draws one frame of s into a width×height image over bg.
func RenderScene(s *scene.Scene, width, height int, bg color.Color) *image.RGBA {
	canvas := render.NewCanvas(width, height, nil)
	canvas.Clear(bg)
	scene.NewHost(s.Root, nil).Frame(canvas, width, height)
	return canvas.Image().(*image.RGBA)
}

// RenderSceneFile loads the scene file at scenePath and renders one frame.
func RenderSceneFile(scenePath string, width, height int, bg color.Color, opts ...scene.Option) (*image.RGBA, error) {
	s, err := scene.Load(scenePath, opts...)
	if err != nil {
		return nil, err
	}
	return RenderScene(s, width, height, bg), nil
}

// RenderSceneToFile renders the scene at scenePath to a PNG at outputPath.
func RenderSceneToFile(scenePath, outputPath string, width, height int, bg color.Color) error {
	img, err := RenderSceneFile(scenePath, width, height, bg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writePNG(img, outputPath)
}

// UpdateReferenceImage regenerates a reference image. Use it only after an
// intentional rendering change.
func UpdateReferenceImage(scenePath, referencePath string, width, height int, bg color.Color) error {
	return RenderSceneToFile(scenePath, referencePath, width, height, bg)
}
