// Package raster implements graphics.Canvas on top of the gogpu/gg software
// rasterizer so shadows and backgrounds can be rendered to images.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/go-drift/elevation/pkg/graphics"
)

// Canvas renders drawing commands into an in-memory image.
type Canvas struct {
	dc        *gg.Context
	size      graphics.Size
	saveCount int
	err       error
}

var _ graphics.Canvas = (*Canvas)(nil)

// New creates a transparent canvas of the given pixel size.
func New(width, height int) *Canvas {
	return &Canvas{
		dc:        gg.NewContext(width, height),
		size:      graphics.Size{Width: float64(width), Height: float64(height)},
		saveCount: 1,
	}
}

// Save pushes the current transform.
func (c *Canvas) Save() int {
	c.dc.Push()
	n := c.saveCount
	c.saveCount++
	return n
}

// Restore pops the most recent transform. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if c.saveCount <= 1 {
		return
	}
	c.dc.Pop()
	c.saveCount--
}

// RestoreToCount pops saved states until the save count equals count.
func (c *Canvas) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for c.saveCount > count {
		c.Restore()
	}
}

// Translate moves the origin by the given offset.
func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

// Rotate rotates the coordinate system by radians.
func (c *Canvas) Rotate(radians float64) {
	c.dc.Rotate(radians)
}

// DrawRect fills a rectangle.
func (c *Canvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	if rect.IsEmpty() {
		return
	}
	c.dc.ClearPath()
	c.dc.MoveTo(rect.Left, rect.Top)
	c.dc.LineTo(rect.Right, rect.Top)
	c.dc.LineTo(rect.Right, rect.Bottom)
	c.dc.LineTo(rect.Left, rect.Bottom)
	c.dc.ClosePath()
	c.fill(graphics.FillRuleNonZero, paint)
}

// DrawRRect fills a rounded rectangle.
func (c *Canvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	r := rrect.Radius
	rect := rrect.Rect
	if r <= 0 {
		c.DrawRect(rect, paint)
		return
	}
	r = math.Min(r, math.Min(rect.Width(), rect.Height())/2)
	path := graphics.NewPath(graphics.FillRuleNonZero)
	d := 2 * r
	path.ArcTo(graphics.RectFromLTWH(rect.Left, rect.Top, d, d), 180, 90, false)
	path.ArcTo(graphics.RectFromLTWH(rect.Right-d, rect.Top, d, d), 270, 90, false)
	path.ArcTo(graphics.RectFromLTWH(rect.Right-d, rect.Bottom-d, d, d), 0, 90, false)
	path.ArcTo(graphics.RectFromLTWH(rect.Left, rect.Bottom-d, d, d), 90, 90, false)
	path.Close()
	c.DrawPath(path, paint)
}

// DrawPath fills a path honoring its fill rule.
func (c *Canvas) DrawPath(path *graphics.Path, paint graphics.Paint) {
	if path == nil || path.IsEmpty() {
		return
	}
	c.dc.ClearPath()
	for verb, pts := range path.Segments() {
		switch verb {
		case graphics.VerbMove:
			c.dc.MoveTo(pts[0].X, pts[0].Y)
		case graphics.VerbLine:
			c.dc.LineTo(pts[0].X, pts[0].Y)
		case graphics.VerbCubic:
			c.dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case graphics.VerbClose:
			c.dc.ClosePath()
		}
	}
	c.fill(path.FillRule, paint)
}

// Size returns the size of the canvas in pixels.
func (c *Canvas) Size() graphics.Size {
	return c.size
}

// Err returns the first rasterization error, if any.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// AlphaAt returns the alpha channel of the pixel at (x, y).
func (c *Canvas) AlphaAt(x, y int) uint8 {
	return color.NRGBAModel.Convert(c.dc.Image().At(x, y)).(color.NRGBA).A
}

// EncodePNG writes the rendered image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the rasterizer state.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

func (c *Canvas) fill(rule graphics.FillRule, paint graphics.Paint) {
	if rule == graphics.FillRuleEvenOdd {
		c.dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		c.dc.SetFillRule(gg.FillRuleNonZero)
	}
	c.dc.SetFillBrush(c.brush(paint))
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = err
	}
}

// brush converts a paint into a gg brush. gg samples brushes in device
// space, so gradient geometry is mapped through the current transform here.
func (c *Canvas) brush(paint graphics.Paint) gg.Brush {
	alpha := paint.Alpha
	if !(alpha >= 0 && alpha <= 1) {
		alpha = 1
	}
	g := paint.Gradient
	if !g.Usable() {
		return gg.Solid(toRGBA(paint.Color, alpha))
	}
	extend := extendMode(g.Tile)
	x0, y0 := c.dc.TransformPoint(g.From.X, g.From.Y)
	if g.Shading == graphics.ShadingLinear {
		x1, y1 := c.dc.TransformPoint(g.To.X, g.To.Y)
		lg := gg.NewLinearGradientBrush(x0, y0, x1, y1).SetExtend(extend)
		for _, s := range g.Stops {
			lg.AddColorStop(s.Pos, toRGBA(s.Color, alpha))
		}
		return lg
	}
	rg := gg.NewRadialGradientBrush(x0, y0, 0, g.Radius).SetExtend(extend)
	for _, s := range g.Stops {
		rg.AddColorStop(s.Pos, toRGBA(s.Color, alpha))
	}
	return rg
}

func extendMode(t graphics.TileMode) gg.ExtendMode {
	switch t {
	case graphics.TileRepeat:
		return gg.ExtendRepeat
	case graphics.TileMirror:
		return gg.ExtendReflect
	default:
		return gg.ExtendPad
	}
}

func toRGBA(col graphics.Color, alpha float64) gg.RGBA {
	r, g, b, a := col.RGBAF()
	return gg.RGBA2(r, g, b, a*alpha)
}
