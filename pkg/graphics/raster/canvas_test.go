package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/go-drift/elevation/pkg/graphics"
)

func TestDrawRectFillsPixels(t *testing.T) {
	c := New(20, 20)
	defer c.Close()

	paint := graphics.DefaultPaint()
	paint.Color = graphics.ColorRed
	c.DrawRect(graphics.RectFromLTWH(5, 5, 10, 10), paint)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	if a := c.AlphaAt(10, 10); a != 0xFF {
		t.Errorf("inside alpha = %d, want 255", a)
	}
	if a := c.AlphaAt(1, 1); a != 0 {
		t.Errorf("outside alpha = %d, want 0", a)
	}
}

func TestPaintAlphaApplies(t *testing.T) {
	c := New(10, 10)
	defer c.Close()

	paint := graphics.DefaultPaint()
	paint.SetAlpha8(128)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), paint)
	a := c.AlphaAt(5, 5)
	if a < 120 || a > 136 {
		t.Errorf("alpha = %d, want ~128", a)
	}
}

func TestEvenOddLeavesHole(t *testing.T) {
	c := New(30, 30)
	defer c.Close()

	p := graphics.NewPath(graphics.FillRuleEvenOdd)
	outer := []graphics.Offset{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 0, Y: 30}}
	inner := []graphics.Offset{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}}
	for _, ring := range [][]graphics.Offset{outer, inner} {
		p.MoveTo(ring[0].X, ring[0].Y)
		for _, pt := range ring[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.Close()
	}
	c.DrawPath(p, graphics.DefaultPaint())

	if a := c.AlphaAt(15, 15); a != 0 {
		t.Errorf("hole alpha = %d, want 0", a)
	}
	if a := c.AlphaAt(5, 5); a == 0 {
		t.Error("ring should be filled")
	}
}

func TestSaveRestoreTransform(t *testing.T) {
	c := New(20, 20)
	defer c.Close()

	n := c.Save()
	c.Translate(10, 10)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), graphics.DefaultPaint())
	c.RestoreToCount(n)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), graphics.DefaultPaint())

	if a := c.AlphaAt(12, 12); a == 0 {
		t.Error("translated rect missing")
	}
	if a := c.AlphaAt(2, 2); a == 0 {
		t.Error("rect after restore should be at the origin")
	}
	if a := c.AlphaAt(8, 2); a != 0 {
		t.Errorf("unexpected paint at (8,2): %d", a)
	}
}

func TestEncodePNGAndScale(t *testing.T) {
	c := New(8, 4)
	defer c.Close()
	c.DrawRect(graphics.RectFromLTWH(0, 0, 8, 4), graphics.DefaultPaint())

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	scaled := Scale(img, 2)
	if b := scaled.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("scaled size = %v, want 16x8", b)
	}
	same := Scale(img, 1)
	if b := same.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("unscaled size = %v, want 8x4", b)
	}
}
