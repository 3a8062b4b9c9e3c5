// Package images turns image sources into view.Content: decoded raster
// images and solid swatches, resolved from string handles.
package images

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"viewkit/pkg/attr"
	"viewkit/pkg/geom"
	"viewkit/pkg/view"
)

// Image is raster content whose intrinsic size is the image's pixel size.
type Image struct {
	img image.Image
}

// NewImage wraps img.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

func (c *Image) IntrinsicSize() geom.Size {
	if c == nil || c.img == nil {
		return geom.Size{}
	}
	b := c.img.Bounds()
	return geom.Size{Width: b.Dx(), Height: b.Dy()}
}

func (c *Image) Draw(s view.Surface, dst geom.Rect) {
	if c == nil || c.img == nil {
		return
	}
	s.DrawImage(c.img, dst)
}

// Source returns the wrapped image.
func (c *Image) Source() image.Image {
	return c.img
}

// Swatch is a solid color with a declared intrinsic size.
type Swatch struct {
	Color color.NRGBA
	Size  geom.Size
}

func (c Swatch) IntrinsicSize() geom.Size { return c.Size.Clamp() }

func (c Swatch) Draw(s view.Surface, dst geom.Rect) {
	s.FillRect(dst, c.Color)
}

// Resolver maps handles to content. Handles are file paths (relative paths
// resolve against BaseDir), data: URIs, or swatches written
// "color:<color>@<W>x<H>".
type Resolver struct {
	BaseDir string
	Cache   *ImageCache
}

// NewResolver returns a resolver rooted at baseDir with its own cache.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir, Cache: NewImageCache()}
}

// Resolve returns the content named by handle. An empty handle yields nil
// content, which nodes treat as absent.
func (r *Resolver) Resolve(handle string) (view.Content, error) {
	handle = strings.TrimSpace(handle)
	switch {
	case handle == "":
		return nil, nil
	case strings.HasPrefix(handle, "color:"):
		sw, err := ParseSwatch(handle)
		if err != nil {
			return nil, err
		}
		return sw, nil
	}

	source := handle
	if !IsDataURI(handle) && !filepath.IsAbs(handle) && r.BaseDir != "" {
		source = filepath.Join(r.BaseDir, handle)
	}

	cache := r.Cache
	if cache == nil {
		cache = globalCache
	}
	img, err := cache.Load(source)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", handle, err)
	}
	return NewImage(img), nil
}

// ParseSwatch parses "color:<color>@<W>x<H>".
func ParseSwatch(handle string) (Swatch, error) {
	spec, ok := strings.CutPrefix(handle, "color:")
	if !ok {
		return Swatch{}, fmt.Errorf("swatch %q: missing color: prefix", handle)
	}
	col, dims, ok := strings.Cut(spec, "@")
	if !ok {
		return Swatch{}, fmt.Errorf("swatch %q: missing @WxH", handle)
	}
	c, err := attr.ParseColor(col)
	if err != nil {
		return Swatch{}, fmt.Errorf("swatch %q: %w", handle, err)
	}
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return Swatch{}, fmt.Errorf("swatch %q: size must be WxH", handle)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Swatch{}, fmt.Errorf("swatch %q: width: %w", handle, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Swatch{}, fmt.Errorf("swatch %q: height: %w", handle, err)
	}
	if w < 0 || h < 0 {
		return Swatch{}, fmt.Errorf("swatch %q: negative size", handle)
	}
	return Swatch{Color: c, Size: geom.Size{Width: w, Height: h}}, nil
}
