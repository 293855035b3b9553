// Package shadow procedurally draws a soft drop shadow around a rounded
// rectangle, emulating native elevation rendering.
//
// The shadow is assembled from a single corner piece (an annular quarter
// filled with a radial gradient) stamped at the four corners with rotations,
// plus edge bands filled with a linear gradient.
package shadow

import "github.com/go-drift/elevation/pkg/graphics"

// Geometry is the derived drawing state for one corner radius and shadow size.
type Geometry struct {
	CornerRadius float64
	ShadowSize   float64

	// CornerPath is the top-left corner piece centered on the origin:
	// the band between the corner arc and the arc outset by ShadowSize.
	CornerPath *graphics.Path

	// CornerGradient fades radially from the inner arc to the outer arc.
	CornerGradient *graphics.Gradient

	// EdgeGradient fades upward along the y axis. It spans twice the shadow
	// size so the bottom edge, which is shifted down by the content offset,
	// can reuse it.
	EdgeGradient *graphics.Gradient
}

// Builder computes corner and edge geometry. It keeps the last path so
// rebuilds reuse its storage.
type Builder struct {
	// Start is the tint at the shape edge.
	Start graphics.Color
	// End is the tint at the outer edge of the shadow.
	End graphics.Color

	path *graphics.Path
}

// NewBuilder returns a builder with the given start and end tints.
func NewBuilder(start, end graphics.Color) *Builder {
	return &Builder{Start: start, End: end}
}

// Build computes the geometry for cornerRadius and shadowSize. It reports
// false when shadowSize is not positive, in which case nothing should be drawn.
func (b *Builder) Build(cornerRadius, shadowSize float64) (Geometry, bool) {
	if shadowSize <= 0 {
		return Geometry{}, false
	}
	if cornerRadius < 0 {
		cornerRadius = 0
	}

	inner := graphics.Rect{Left: -cornerRadius, Top: -cornerRadius, Right: cornerRadius, Bottom: cornerRadius}
	outer := inner.Outset(shadowSize, shadowSize)

	if b.path == nil {
		b.path = graphics.NewPath(graphics.FillRuleEvenOdd)
	} else {
		b.path.Reset()
		b.path.FillRule = graphics.FillRuleEvenOdd
	}
	p := b.path
	p.MoveTo(-cornerRadius, 0)
	p.RLineTo(-shadowSize, 0)
	p.ArcTo(outer, 180, 90, false)
	p.ArcTo(inner, 270, -90, false)
	p.Close()

	outerRadius := cornerRadius + shadowSize
	ramp := func(mid float64) []graphics.ColorStop {
		return []graphics.ColorStop{
			{Pos: 0, Color: b.Start},
			{Pos: mid, Color: b.Start},
			{Pos: 1, Color: b.End},
		}
	}

	return Geometry{
		CornerRadius:   cornerRadius,
		ShadowSize:     shadowSize,
		CornerPath:     p,
		CornerGradient: graphics.Radial(graphics.Offset{}, outerRadius, ramp(cornerRadius/outerRadius)...),
		EdgeGradient: graphics.Linear(
			graphics.Offset{X: 0, Y: -cornerRadius + shadowSize},
			graphics.Offset{X: 0, Y: -cornerRadius - shadowSize},
			ramp(0.5)...,
		),
	}, true
}
