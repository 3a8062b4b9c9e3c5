package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"
	"sync"
)

// ImageCache caches decoded images by source.
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{cache: make(map[string]image.Image)}
}

// Global image cache
var globalCache = NewImageCache()

// LoadImage loads an image from a file path or data URI through the global
// cache.
func LoadImage(source string) (image.Image, error) {
	return globalCache.Load(source)
}

// Load returns the cached image for source, decoding it on first use.
func (c *ImageCache) Load(source string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.cache[source]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	var (
		img image.Image
		err error
	)
	if IsDataURI(source) {
		img, err = LoadImageFromDataURI(source)
	} else {
		img, err = loadImageFile(source)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[source] = img
	c.mu.Unlock()

	return img, nil
}

func loadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// IsDataURI reports whether source is a data: URI.
func IsDataURI(source string) bool {
	return strings.HasPrefix(source, "data:")
}

// LoadImageFromDataURI decodes an image embedded in a data: URI. Both
// base64 and percent-encoded payloads are accepted.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		data = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
