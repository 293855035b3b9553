package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

const maxByte = 255.0

// Color is a packed 0xAARRGGBB value, the layout resource files use.
type Color uint32

// RGBAF splits c into straight-alpha components in [0, 1].
func (c Color) RGBAF() (r, g, b, a float64) {
	a = float64(c.Alpha8()) / maxByte
	r = float64(c>>16&0xFF) / maxByte
	g = float64(c>>8&0xFF) / maxByte
	b = float64(c&0xFF) / maxByte
	return r, g, b, a
}

// Alpha8 returns the alpha channel, the top byte of the ARGB value.
func (c Color) Alpha8() uint8 {
	return uint8(c >> 24)
}

// IsOpaque reports whether the alpha channel is 0xFF.
func (c Color) IsOpaque() bool {
	return c.Alpha8() == 0xFF
}

// WithAlpha8 keeps the RGB channels of c and replaces its alpha.
func (c Color) WithAlpha8(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseColor parses #RGB, #ARGB, #RRGGBB and #AARRGGBB notations.
// Forms without an alpha component are opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		return 0, fmt.Errorf("color %q: missing '#'", s)
	}
	hex = hex[1:]
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return 0, fmt.Errorf("color %q: unsupported length %d", s, len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return Color(v), nil
}

// Named colors used as defaults and in tests.
const (
	ColorTransparent Color = 0
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)
