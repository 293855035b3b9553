package shadow

import (
	"math"

	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
)

// Surface draws a rounded-rectangle shadow inside its bounds. It is a
// drawable: the owner sets bounds and calls Draw once per paint pass.
//
// Geometry is rebuilt lazily on the first Draw after any change to the
// bounds, insets or shadow size. The drawing itself is recorded once and
// replayed until the geometry or the alpha changes.
type Surface struct {
	metrics Metrics
	builder *Builder
	log     *zap.Logger

	cornerRadius float64

	// sizes as requested, quantized to even integers
	rawShadowSize    float64
	rawMaxShadowSize float64
	// multiplied size used for the geometry
	shadowSize float64

	bounds     graphics.Rect
	insets     graphics.Insets
	viewBounds graphics.Rect

	geometry    Geometry
	hasGeometry bool
	cornerPaint graphics.Paint
	edgePaint   graphics.Paint
	picture     *graphics.DisplayList

	dirty      bool
	clipWarned bool
	rebuilds   int
}

// Option configures a Surface.
type Option func(*Surface)

// WithMetrics overrides the default 1px inset and tints.
func WithMetrics(m Metrics) Option {
	return func(s *Surface) {
		s.metrics = m
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSurface creates a shadow for a shape with the given corner radius and
// elevation. The radius is rounded to whole pixels.
func NewSurface(cornerRadius, shadowSize float64, opts ...Option) (*Surface, error) {
	s := &Surface{
		metrics: DefaultMetrics(),
		log:     zap.NewNop(),
		dirty:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.builder = NewBuilder(s.metrics.StartColor, s.metrics.EndColor)
	s.cornerRadius = float64(int(math.Max(cornerRadius, 0) + .5))

	s.cornerPaint = graphics.DefaultPaint()
	s.edgePaint = graphics.DefaultPaint()
	s.edgePaint.AntiAlias = false

	// force the first SetShadowSize to apply even for a zero size
	s.rawShadowSize, s.rawMaxShadowSize = -1, -1
	if err := s.SetShadowSize(shadowSize, shadowSize); err != nil {
		return nil, err
	}
	return s, nil
}

// SetShadowSize sets the requested shadow size and its maximum. Both are
// quantized to even integers; a size above the maximum is clamped to it and
// logged once. Repeating the current values is a no-op.
func (s *Surface) SetShadowSize(shadowSize, maxShadowSize float64) error {
	if shadowSize < 0 || math.IsNaN(shadowSize) {
		return errors.Newf("shadow.SetShadowSize", errors.KindInvalidArgument,
			"invalid shadow size %v, must be >= 0", shadowSize)
	}
	if maxShadowSize < 0 || math.IsNaN(maxShadowSize) {
		return errors.Newf("shadow.SetShadowSize", errors.KindInvalidArgument,
			"invalid max shadow size %v, must be >= 0", maxShadowSize)
	}

	maxShadowSize = ToEven(maxShadowSize)
	shadowSize = ToEven(shadowSize)
	if shadowSize > maxShadowSize {
		shadowSize = maxShadowSize
		if !s.clipWarned {
			s.clipWarned = true
			s.log.Warn("Shadow size is clipped to its maximum",
				zap.Float64("max", maxShadowSize))
		}
	}

	if s.rawShadowSize == shadowSize && s.rawMaxShadowSize == maxShadowSize {
		return nil
	}
	s.rawShadowSize = shadowSize
	s.rawMaxShadowSize = maxShadowSize
	s.shadowSize = ShadowSizeFor(shadowSize, s.metrics.InsetShadow)
	s.dirty = true
	return nil
}

// SetInsets shrinks the area the shadow is drawn around.
func (s *Surface) SetInsets(left, top, right, bottom float64) {
	s.insets = graphics.Insets{Left: left, Top: top, Right: right, Bottom: bottom}
	s.dirty = true
}

// SetAlpha sets the opacity (0-255) applied to both shadow tints.
func (s *Surface) SetAlpha(a uint8) {
	if a == s.Alpha() {
		return
	}
	s.cornerPaint.SetAlpha8(a)
	s.edgePaint.SetAlpha8(a)
	s.picture = nil
}

// Alpha returns the opacity applied to the shadow tints.
func (s *Surface) Alpha() uint8 {
	return s.edgePaint.Alpha8()
}

// SetBounds sets the area the shadow is laid out in.
func (s *Surface) SetBounds(r graphics.Rect) {
	if r == s.bounds {
		return
	}
	s.bounds = r
	s.dirty = true
}

// Bounds returns the area the shadow is laid out in.
func (s *Surface) Bounds() graphics.Rect {
	return s.bounds
}

// ShadowSize returns the quantized raw size, its maximum, and the
// multiplied size used by the geometry.
func (s *Surface) ShadowSize() (raw, maxRaw, multiplied float64) {
	return s.rawShadowSize, s.rawMaxShadowSize, s.shadowSize
}

// CornerRadius returns the rounded corner radius.
func (s *Surface) CornerRadius() float64 {
	return s.cornerRadius
}

// Dirty reports whether the next Draw rebuilds the geometry.
func (s *Surface) Dirty() bool {
	return s.dirty
}

// Clipped reports whether a requested size was ever clamped to the maximum.
func (s *Surface) Clipped() bool {
	return s.clipWarned
}

// Rebuilds returns how many times the geometry has been built.
func (s *Surface) Rebuilds() int {
	return s.rebuilds
}

// MinHeight returns the smallest height that holds the content and the full
// shadow bleed.
func (s *Surface) MinHeight() float64 {
	inset := float64(s.metrics.InsetShadow)
	content := 2 * math.Max(s.rawMaxShadowSize,
		s.cornerRadius+inset+s.rawMaxShadowSize*Multiplier/2)
	return content + (s.rawMaxShadowSize*Multiplier+inset)*2
}

// MinWidth returns the smallest width that holds the content and the full
// shadow bleed.
func (s *Surface) MinWidth() float64 {
	inset := float64(s.metrics.InsetShadow)
	content := 2 * math.Max(s.rawMaxShadowSize,
		s.cornerRadius+inset+s.rawMaxShadowSize/2)
	return content + (s.rawMaxShadowSize+inset)*2
}

// Draw renders the shadow. The shadow is shifted down by half the raw size
// so it sits under the equally offset content.
func (s *Surface) Draw(c graphics.Canvas) {
	if s.dirty {
		s.rebuild()
	}
	if !s.hasGeometry {
		return
	}
	if s.picture == nil {
		s.record()
	}
	s.picture.Paint(c)
}

func (s *Surface) record() {
	var rec graphics.PictureRecorder
	c := rec.BeginRecording(s.bounds.Size())
	c.Translate(0, s.rawShadowSize/2)
	s.drawShadow(c)
	c.Translate(0, -s.rawShadowSize/2)
	s.picture = rec.EndRecording()
}

func (s *Surface) rebuild() {
	b := s.bounds.Deflate(s.insets)
	vertical := s.rawMaxShadowSize * Multiplier
	s.viewBounds = graphics.Rect{
		Left:   b.Left + s.rawMaxShadowSize,
		Top:    b.Top + vertical,
		Right:  b.Right - s.rawMaxShadowSize,
		Bottom: b.Bottom - vertical,
	}

	s.geometry, s.hasGeometry = s.builder.Build(s.cornerRadius, s.shadowSize)
	if s.hasGeometry {
		s.cornerPaint.Gradient = s.geometry.CornerGradient
		s.edgePaint.Gradient = s.geometry.EdgeGradient
	}
	s.picture = nil
	s.dirty = false
	s.rebuilds++
	s.log.Debug("Rebuilt shadow geometry",
		zap.Float64("radius", s.cornerRadius),
		zap.Float64("size", s.shadowSize),
		zap.Int("rebuilds", s.rebuilds))
}

// drawShadow stamps the corner piece at the four corners, rotating it a
// quarter turn each time, and fills the edge bands between them.
func (s *Surface) drawShadow(c graphics.Canvas) {
	r := s.cornerRadius
	edgeTop := -r - s.shadowSize
	inset := r + float64(s.metrics.InsetShadow) + s.rawShadowSize/2

	vb := s.viewBounds
	horizontal := vb.Width() - 2*inset
	vertical := vb.Height() - 2*inset
	path := s.geometry.CornerPath

	corners := []struct {
		x, y    float64
		degrees float64
		span    float64
		bottom  float64
	}{
		{vb.Left + inset, vb.Top + inset, 0, horizontal, -r},
		{vb.Left + inset, vb.Bottom - inset, 270, vertical, -r},
		{vb.Right - inset, vb.Bottom - inset, 180, horizontal, -r + s.shadowSize},
		{vb.Right - inset, vb.Top + inset, 90, vertical, -r},
	}
	for _, k := range corners {
		saved := c.Save()
		c.Translate(k.x, k.y)
		if k.degrees != 0 {
			c.Rotate(k.degrees * math.Pi / 180)
		}
		c.DrawPath(path, s.cornerPaint)
		if k.span > 0 {
			c.DrawRect(graphics.Rect{Left: 0, Top: edgeTop, Right: k.span, Bottom: k.bottom}, s.edgePaint)
		}
		c.RestoreToCount(saved)
	}
}
