package shadow

import (
	"math"

	"github.com/go-drift/elevation/pkg/graphics"
)

// Multiplier scales the raw shadow size to account for the downward offset
// of the content.
const Multiplier = 1.5

// Default shadow tints.
const (
	DefaultStartColor = graphics.Color(0x37000000)
	DefaultEndColor   = graphics.Color(0x03000000)
)

// Metrics holds the device dependent constants of the shadow.
type Metrics struct {
	// InsetShadow is extra shadow in pixels that avoids gaps between the
	// content and its shadow. Natively this is one density-independent pixel.
	InsetShadow int
	StartColor  graphics.Color
	EndColor    graphics.Color
}

// DefaultMetrics returns metrics for a density of 1.
func DefaultMetrics() Metrics {
	return MetricsForDensity(1)
}

// MetricsForDensity returns metrics with a 1dp inset at the given density.
func MetricsForDensity(density float64) Metrics {
	if density <= 0 {
		density = 1
	}
	return Metrics{
		InsetShadow: int(density),
		StartColor:  DefaultStartColor,
		EndColor:    DefaultEndColor,
	}
}

// ToEven rounds v to the nearest integer and drops it to the even integer
// below when odd. Odd widths leave 1px seams after anti-aliasing.
func ToEven(v float64) float64 {
	i := int(v + .5)
	if i%2 == 1 {
		i--
	}
	return float64(i)
}

// ShadowSizeFor returns the multiplied shadow size for a raw (even) size:
// raw*1.5 + inset + 0.5, truncated.
func ShadowSizeFor(raw float64, insetShadow int) float64 {
	return float64(int(raw*Multiplier + float64(insetShadow) + .5))
}

// VerticalOffset returns the space the shadow bleeds below the content:
// ceil(raw*1.5). A quarter of it is reserved above the content.
func VerticalOffset(raw float64) int {
	return int(math.Ceil(raw * Multiplier))
}
