// Package attr reads node configuration from a flat key-value attribute
// source, such as a table in a scene file or an object passed from a script.
package attr

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"viewkit/pkg/view"
)

// Recognized attribute keys.
const (
	SeparatorWidth = "separatorWidth"
	SeparatorColor = "separatorColor"
	NumColumns     = "numColumns"
	DrawableLeft   = "drawableLeft"
	DrawableRight  = "drawableRight"
	Src            = "src"
	Spacing        = "spacing"
	Text           = "text"
	TextColor      = "textColor"
	TextSize       = "textSize"
	FontPath       = "fontPath"
	Scale          = "scale"
	Overlap        = "overlap"
)

// Bag is a flat attribute set. Values are strings, integers, floats or
// booleans as produced by TOML or JavaScript decoders.
type Bag map[string]any

// Has reports whether key is present.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// String returns the value of key rendered as a string, or def.
func (b Bag) String(key, def string) string {
	v, ok := b[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns key as an integer, or def when absent.
func (b Bag) Int(key string, def int) (int, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, invalid(key, v, err)
	}
	return n, nil
}

// Dimension returns key as a non-negative pixel size. Strings may carry a
// "px" suffix.
func (b Bag) Dimension(key string, def int) (int, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSuffix(strings.TrimSpace(s), "px")
	}
	n, err := toInt(v)
	if err != nil {
		return 0, invalid(key, b[key], err)
	}
	if n < 0 {
		return 0, invalid(key, b[key], fmt.Errorf("negative dimension"))
	}
	return n, nil
}

// Float returns key as a float, or def when absent.
func (b Bag) Float(key string, def float64) (float64, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, invalid(key, v, err)
		}
		return f, nil
	}
	return 0, invalid(key, v, fmt.Errorf("unsupported type %T", v))
}

// Color returns key as a color, or def when absent.
func (b Bag) Color(key string, def color.NRGBA) (color.NRGBA, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	var (
		c   color.NRGBA
		err error
	)
	switch x := v.(type) {
	case string:
		c, err = ParseColor(x)
	default:
		var n int
		n, err = toInt(v)
		if err == nil {
			c = ARGB(uint32(n))
		}
	}
	if err != nil {
		return def, invalid(key, v, err)
	}
	return c, nil
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case uint32:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not an integer", x)
		}
		return int(x), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

func invalid(key string, v any, err error) error {
	return fmt.Errorf("%w: attribute %s=%v: %v", view.ErrInvalidConfiguration, key, v, err)
}
