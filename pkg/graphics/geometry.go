package graphics

import "math"

// Offset is a point or vector in pixels.
type Offset struct {
	X, Y float64
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH returns the rect at (left, top) with the given size.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }
func (r Rect) Size() Size      { return Size{Width: r.Width(), Height: r.Height()} }

// Center returns the midpoint of r.
func (r Rect) Center() Offset {
	return Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsEmpty reports whether r encloses no area. Inverted rects are empty.
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left && r.Bottom > r.Top)
}

// Outset moves every edge outward, dx horizontally and dy vertically.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Deflate moves every edge inward by the matching inset.
func (r Rect) Deflate(in Insets) Rect {
	return Rect{Left: r.Left + in.Left, Top: r.Top + in.Top, Right: r.Right - in.Right, Bottom: r.Bottom - in.Bottom}
}

// ApproxEqual compares edges with a 1e-4 tolerance.
func (r Rect) ApproxEqual(o Rect) bool {
	return floatEqual(r.Left, o.Left) && floatEqual(r.Top, o.Top) &&
		floatEqual(r.Right, o.Right) && floatEqual(r.Bottom, o.Bottom)
}

// Insets are per-edge distances, used for padding and layer insets.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// UniformInsets returns v on every edge.
func UniformInsets(v float64) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Add sums two insets edge by edge.
func (in Insets) Add(o Insets) Insets {
	return Insets{Left: in.Left + o.Left, Top: in.Top + o.Top, Right: in.Right + o.Right, Bottom: in.Bottom + o.Bottom}
}

func (in Insets) IsZero() bool { return in == Insets{} }

// RRect is a rect with the same radius at every corner.
type RRect struct {
	Rect   Rect
	Radius float64
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-4
}
