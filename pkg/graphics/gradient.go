package graphics

import "fmt"

// Shading selects how a Gradient maps positions to stops.
type Shading int

const (
	// ShadingLinear interpolates along the From-To axis.
	ShadingLinear Shading = iota + 1
	// ShadingRadial interpolates outward from From up to Radius.
	ShadingRadial
)

func (s Shading) String() string {
	switch s {
	case ShadingLinear:
		return "linear"
	case ShadingRadial:
		return "radial"
	default:
		return fmt.Sprintf("Shading(%d)", int(s))
	}
}

// TileMode controls sampling outside the [0, 1] range.
type TileMode int

const (
	// TileClamp extends the end colors.
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
)

// ColorStop is a color at a position in [0, 1].
type ColorStop struct {
	Pos   float64
	Color Color
}

// Gradient is a color ramp in local canvas coordinates.
type Gradient struct {
	Shading Shading
	Tile    TileMode
	// From is the start of a linear axis or the center of a radial one.
	From Offset
	// To is the end of a linear axis.
	To Offset
	// Radius is the extent of a radial gradient.
	Radius float64
	Stops  []ColorStop
}

// Linear returns a clamped gradient along from-to.
func Linear(from, to Offset, stops ...ColorStop) *Gradient {
	return &Gradient{Shading: ShadingLinear, From: from, To: to, Stops: stops}
}

// Radial returns a clamped gradient around center.
func Radial(center Offset, radius float64, stops ...ColorStop) *Gradient {
	return &Gradient{Shading: ShadingRadial, From: center, Radius: radius, Stops: stops}
}

// Usable reports whether g can be sampled: at least two in-range stops and,
// for radial shading, a positive radius. A nil gradient is not usable.
func (g *Gradient) Usable() bool {
	if g == nil || len(g.Stops) < 2 {
		return false
	}
	for _, s := range g.Stops {
		if s.Pos < 0 || s.Pos > 1 {
			return false
		}
	}
	switch g.Shading {
	case ShadingLinear:
		return g.From != g.To
	case ShadingRadial:
		return g.Radius > 0
	}
	return false
}
