package graphics

import (
	"fmt"
	"iter"
	"math"
)

// Verb is a path segment kind.
type Verb uint8

const (
	VerbMove  Verb = iota // 1 point
	VerbLine              // 1 point
	VerbCubic             // 2 control points, then the end point
	VerbClose             // no points
)

var verbPoints = [...]int{VerbMove: 1, VerbLine: 1, VerbCubic: 3, VerbClose: 0}

func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "move"
	case VerbLine:
		return "line"
	case VerbCubic:
		return "cubic"
	case VerbClose:
		return "close"
	}
	return fmt.Sprintf("Verb(%d)", uint8(v))
}

// FillRule decides which regions of a path are inside.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times, so an
	// inner contour cuts a hole.
	FillRuleEvenOdd
)

func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Path is a sequence of contours made of lines and cubics. Verbs and Points
// are parallel: each verb consumes its fixed number of points in order.
// Arcs are converted to cubics as they are added.
type Path struct {
	Verbs    []Verb
	Points   []Offset
	FillRule FillRule

	start Offset
	open  bool
}

// NewPath returns an empty path filled with rule.
func NewPath(rule FillRule) *Path {
	return &Path{FillRule: rule}
}

// Segments yields each verb with its points.
func (p *Path) Segments() iter.Seq2[Verb, []Offset] {
	return func(yield func(Verb, []Offset) bool) {
		i := 0
		for _, v := range p.Verbs {
			n := verbPoints[v]
			if !yield(v, p.Points[i:i+n]) {
				return
			}
			i += n
		}
	}
}

// Last returns the current point, the origin for an empty path.
func (p *Path) Last() Offset {
	if len(p.Verbs) > 0 && p.Verbs[len(p.Verbs)-1] == VerbClose {
		return p.start
	}
	if len(p.Points) == 0 {
		return Offset{}
	}
	return p.Points[len(p.Points)-1]
}

func (p *Path) add(v Verb, pts ...Offset) {
	p.Verbs = append(p.Verbs, v)
	p.Points = append(p.Points, pts...)
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.start = Offset{X: x, Y: y}
	p.open = true
	p.add(VerbMove, p.start)
}

// ensureContour starts a contour at the current point when there is none,
// such as right after Close.
func (p *Path) ensureContour() {
	if !p.open {
		last := p.Last()
		p.MoveTo(last.X, last.Y)
	}
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.ensureContour()
	p.add(VerbLine, Offset{X: x, Y: y})
}

// RLineTo adds a line by (dx, dy) from the current point.
func (p *Path) RLineTo(dx, dy float64) {
	last := p.Last()
	p.LineTo(last.X+dx, last.Y+dy)
}

// CubicTo adds a cubic Bézier ending at (x3, y3).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.ensureContour()
	p.add(VerbCubic, Offset{X: x1, Y: y1}, Offset{X: x2, Y: y2}, Offset{X: x3, Y: y3})
}

// ArcTo adds the part of the ellipse inscribed in oval that starts at
// startDeg and sweeps sweepDeg. Degrees run clockwise from +x since y grows
// downward. The arc is joined to the current point with a line unless it
// starts a new contour, either because the path is empty or forceMoveTo is
// set. Each quarter turn or part of one becomes one cubic.
func (p *Path) ArcTo(oval Rect, startDeg, sweepDeg float64, forceMoveTo bool) {
	c := oval.Center()
	rx, ry := oval.Width()/2, oval.Height()/2
	at := func(a float64) Offset {
		return Offset{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}

	from := startDeg * math.Pi / 180
	sweep := sweepDeg * math.Pi / 180
	first := at(from)
	switch last := p.Last(); {
	case forceMoveTo || len(p.Verbs) == 0:
		p.MoveTo(first.X, first.Y)
	case !floatEqual(last.X, first.X) || !floatEqual(last.Y, first.Y):
		p.LineTo(first.X, first.Y)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	// tangent length of a cubic approximating a circular arc of angle step
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		a0 := from + float64(i)*step
		a1 := a0 + step
		s, e := at(a0), at(a1)
		p.CubicTo(
			s.X-k*rx*math.Sin(a0), s.Y+k*ry*math.Cos(a0),
			e.X+k*rx*math.Sin(a1), e.Y-k*ry*math.Cos(a1),
			e.X, e.Y,
		)
	}
}

// Close ends the current contour with a line back to its start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.add(VerbClose)
	p.open = false
}

// IsClosed reports whether the path ends with Close.
func (p *Path) IsClosed() bool {
	return len(p.Verbs) > 0 && p.Verbs[len(p.Verbs)-1] == VerbClose
}

func (p *Path) IsEmpty() bool { return len(p.Verbs) == 0 }

// Reset empties the path. The fill rule is kept.
func (p *Path) Reset() {
	p.Verbs = p.Verbs[:0]
	p.Points = p.Points[:0]
	p.start = Offset{}
	p.open = false
}

// Bounds returns the box around every point, control points included. For
// axis-aligned quarter arcs that is the exact curve bounds.
func (p *Path) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	b := Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	for _, pt := range p.Points {
		b.Left = math.Min(b.Left, pt.X)
		b.Top = math.Min(b.Top, pt.Y)
		b.Right = math.Max(b.Right, pt.X)
		b.Bottom = math.Max(b.Bottom, pt.Y)
	}
	return b
}
