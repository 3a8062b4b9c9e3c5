package attr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = color.NRGBA{A: 0xff}
	Transparent = color.NRGBA{}
)

var namedColors = map[string]color.NRGBA{
	"white":       White,
	"black":       Black,
	"transparent": Transparent,
	"red":         {R: 0xff, A: 0xff},
	"green":       {G: 0xff, A: 0xff},
	"blue":        {B: 0xff, A: 0xff},
	"gray":        {R: 0x88, G: 0x88, B: 0x88, A: 0xff},
}

// ARGB unpacks a 0xAARRGGBB value.
func ARGB(v uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// ParseColor accepts #RRGGBB, #AARRGGBB, 0xAARRGGBB and a few names.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"):
		hex = s[2:]
	default:
		return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return ARGB(0xff000000 | uint32(v)), nil
	case 8:
		return ARGB(uint32(v)), nil
	}
	return color.NRGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
}
