package shadow

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/elevation/pkg/canvastest"
	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/graphics/raster"
)

func newSurface(t *testing.T, radius, size float64) *Surface {
	t.Helper()
	s, err := NewSurface(radius, size)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

func TestSurfaceQuantizesSize(t *testing.T) {
	s := newSurface(t, 4.4, 7)
	raw, maxRaw, multiplied := s.ShadowSize()
	if raw != 6 || maxRaw != 6 {
		t.Errorf("raw sizes = %v/%v, want 6/6", raw, maxRaw)
	}
	if multiplied != 10 {
		t.Errorf("multiplied size = %v, want 10", multiplied)
	}
	if s.CornerRadius() != 4 {
		t.Errorf("corner radius = %v, want 4", s.CornerRadius())
	}
}

func TestSurfaceRejectsNegative(t *testing.T) {
	if _, err := NewSurface(4, -1); !errors.IsKind(err, errors.KindInvalidArgument) {
		t.Errorf("NewSurface(-1) err = %v, want invalid argument", err)
	}
	s := newSurface(t, 4, 8)
	if err := s.SetShadowSize(2, -4); !errors.IsKind(err, errors.KindInvalidArgument) {
		t.Errorf("SetShadowSize max=-4 err = %v, want invalid argument", err)
	}
}

func TestSurfaceClampsToMax(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := NewSurface(4, 4, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetShadowSize(12, 8); err != nil {
		t.Fatal(err)
	}
	if err := s.SetShadowSize(20, 10); err != nil {
		t.Fatal(err)
	}
	raw, maxRaw, _ := s.ShadowSize()
	if raw != 10 || maxRaw != 10 {
		t.Errorf("sizes = %v/%v, want 10/10", raw, maxRaw)
	}
	if !s.Clipped() {
		t.Error("Clipped() should be true")
	}
	if n := logs.FilterMessage("Shadow size is clipped to its maximum").Len(); n != 1 {
		t.Errorf("clip warning logged %d times, want 1", n)
	}
}

func TestSurfaceIdempotentSize(t *testing.T) {
	s := newSurface(t, 4, 8)
	s.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	s.Draw(canvastest.New(100, 100))
	if s.Dirty() {
		t.Fatal("surface should be clean after Draw")
	}

	if err := s.SetShadowSize(8, 8); err != nil {
		t.Fatal(err)
	}
	// 8.4 quantizes to 8 as well
	if err := s.SetShadowSize(8.4, 8); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("repeating the same size should not invalidate geometry")
	}
	s.Draw(canvastest.New(100, 100))
	if s.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, want 1", s.Rebuilds())
	}

	s.SetInsets(2, 2, 2, 2)
	s.Draw(canvastest.New(100, 100))
	if s.Rebuilds() != 2 {
		t.Errorf("rebuilds after SetInsets = %d, want 2", s.Rebuilds())
	}
}

func TestSurfaceDrawOps(t *testing.T) {
	s := newSurface(t, 4, 8)
	s.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	c := canvastest.New(100, 100)
	s.Draw(c)

	if got := c.Count("drawPath"); got != 4 {
		t.Errorf("drawPath count = %d, want 4", got)
	}
	if got := c.Count("drawRect"); got != 4 {
		t.Errorf("drawRect count = %d, want 4", got)
	}
	if got := c.Count("save"); got != 4 {
		t.Errorf("save count = %d, want 4", got)
	}
	if c.SaveCount() != 1 {
		t.Errorf("save stack not balanced, count = %d", c.SaveCount())
	}

	ops := c.Ops()
	if first := ops[0]; first.Op != "translate" || first.Params["dy"] != 4.0 {
		t.Errorf("first op = %v, want translate dy=4", first)
	}
	if last := ops[len(ops)-1]; last.Op != "translate" || last.Params["dy"] != -4.0 {
		t.Errorf("last op = %v, want translate dy=-4", last)
	}

	// view bounds (8,12)-(92,88), corner inset 4+1+4
	wantOrigins := []struct{ dx, dy float64 }{{17, 21}, {17, 79}, {83, 79}, {83, 21}}
	translates := c.Filter("translate")[1:5]
	for i, w := range wantOrigins {
		got := translates[i]
		if got.Params["dx"] != w.dx || got.Params["dy"] != w.dy {
			t.Errorf("corner %d origin = %v, want (%v,%v)", i, got, w.dx, w.dy)
		}
	}

	wantDegrees := []float64{270, 180, 90}
	for i, r := range c.Filter("rotate") {
		if r.Params["degrees"] != wantDegrees[i] {
			t.Errorf("rotation %d = %v, want %v", i, r.Params["degrees"], wantDegrees[i])
		}
	}

	rects := c.Filter("drawRect")
	top := rects[0].Params["rect"].(map[string]any)
	if top["right"] != 66.0 || top["top"] != -17.0 || top["bottom"] != -4.0 {
		t.Errorf("top band = %v", top)
	}
	bottom := rects[2].Params["rect"].(map[string]any)
	if bottom["bottom"] != 9.0 {
		t.Errorf("bottom band should extend under the content, got %v", bottom)
	}
}

func TestSurfaceSkipsEmptyBands(t *testing.T) {
	s := newSurface(t, 4, 8)
	// narrower than 2 * (view inset + corner inset)
	s.SetBounds(graphics.RectFromLTWH(0, 0, 30, 100))
	c := canvastest.New(30, 100)
	s.Draw(c)
	if got := c.Count("drawPath"); got != 4 {
		t.Errorf("drawPath count = %d, want 4", got)
	}
	if got := c.Count("drawRect"); got != 2 {
		t.Errorf("drawRect count = %d, want only the 2 vertical bands", got)
	}
}

func TestSurfaceZeroSizeDrawsNothing(t *testing.T) {
	s, err := NewSurface(4, 0, WithMetrics(Metrics{InsetShadow: 0}))
	if err != nil {
		t.Fatal(err)
	}
	s.SetBounds(graphics.RectFromLTWH(0, 0, 50, 50))
	c := canvastest.New(50, 50)
	s.Draw(c)
	if len(c.Ops()) != 0 {
		t.Errorf("expected no ops, got %v", c.Names())
	}
}

func TestSurfaceAlpha(t *testing.T) {
	s := newSurface(t, 4, 8)
	s.SetAlpha(128)
	if s.Alpha() != 128 {
		t.Errorf("Alpha() = %d, want 128", s.Alpha())
	}
	s.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	c := canvastest.New(100, 100)
	s.Draw(c)
	for _, op := range c.Filter("drawPath") {
		if op.Params["alpha"] != 0.5 {
			t.Errorf("path alpha = %v, want 0.5", op.Params["alpha"])
		}
	}
}

func TestSurfaceMinSize(t *testing.T) {
	s := newSurface(t, 4, 8)
	if got := s.MinHeight(); got != 48 {
		t.Errorf("MinHeight = %v, want 48", got)
	}
	if got := s.MinWidth(); got != 36 {
		t.Errorf("MinWidth = %v, want 36", got)
	}
}

func TestSurfaceRaster(t *testing.T) {
	s := newSurface(t, 4, 8)
	s.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))

	c := raster.New(100, 100)
	defer c.Close()
	s.Draw(c)
	if err := c.Err(); err != nil {
		t.Fatalf("raster error: %v", err)
	}

	if a := c.AlphaAt(50, 50); a != 0 {
		t.Errorf("center alpha = %d, want 0", a)
	}
	if a := c.AlphaAt(50, 95); a == 0 {
		t.Error("expected shadow below the content")
	}
	if below, above := c.AlphaAt(50, 95), c.AlphaAt(50, 10); below <= above {
		t.Errorf("bottom shadow (%d) should be denser than top (%d)", below, above)
	}
}

func TestSurfaceReplaysRecording(t *testing.T) {
	s := newSurface(t, 4, 8)
	s.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))

	first := canvastest.New(100, 100)
	s.Draw(first)
	second := canvastest.New(100, 100)
	s.Draw(second)
	if first.Count("drawPath") != second.Count("drawPath") || len(first.Ops()) != len(second.Ops()) {
		t.Errorf("replay drew %d ops, first draw %d", len(second.Ops()), len(first.Ops()))
	}

	s.SetAlpha(64)
	c := canvastest.New(100, 100)
	s.Draw(c)
	if s.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, alpha changes should only re-record", s.Rebuilds())
	}
	if got := c.Filter("drawRect")[0].Params["alpha"]; got != 0.25 {
		t.Errorf("edge alpha after SetAlpha = %v, want 0.25", got)
	}
}
