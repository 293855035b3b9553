package graphics

// Paint is a fill description. Shapes are always filled; the shadow never
// strokes.
type Paint struct {
	Color Color
	// Gradient replaces Color when it is usable.
	Gradient *Gradient
	// Alpha in [0, 1] scales Color or every gradient stop.
	Alpha float64
	// AntiAlias is a hint; backends may always anti-alias.
	AntiAlias bool
}

// DefaultPaint returns an opaque black anti-aliased fill.
func DefaultPaint() Paint {
	return Paint{Color: ColorBlack, Alpha: 1, AntiAlias: true}
}

// SetAlpha8 sets Alpha from a 0-255 value.
func (p *Paint) SetAlpha8(a uint8) {
	p.Alpha = float64(a) / maxByte
}

// Alpha8 returns Alpha as a rounded 0-255 value, clamped.
func (p Paint) Alpha8() uint8 {
	switch a := p.Alpha; {
	case !(a > 0):
		return 0
	case a >= 1:
		return 0xFF
	default:
		return uint8(a*maxByte + .5)
	}
}
