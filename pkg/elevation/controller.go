package elevation

import (
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/drawable"
	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resolve"
	"github.com/go-drift/elevation/pkg/resource"
	"github.com/go-drift/elevation/pkg/shadow"
)

// Controller emulates elevation for one view. Every background or elevation
// change re-probes the background: an opaque fill makes the view Capable,
// anything else Incapable.
//
// While Capable the background is drawn as a composite: the shadow fills
// the view bounds and the content is inset above it by the vertical shadow
// bleed, which is also added to the view padding.
type Controller struct {
	opts     Options
	log      *zap.Logger
	resolver *resolve.Resolver
	builder  *drawable.Builder

	state      State
	elevation  float64
	background background
	drawState  resource.State
	bounds     graphics.Rect

	content  drawable.Drawable
	shadow   drawable.Drawable
	surfaces []*shadow.Surface
	result   resolve.Result

	// vertical bleed of the shadow below the content
	vOffset int
}

var _ Elevator = (*Controller)(nil)

// NewController returns an emulating controller with no background. It
// starts Incapable.
func NewController(opts Options) (*Controller, error) {
	if err := validateElevation(opts.Elevation); err != nil {
		return nil, err
	}
	opts.normalize()

	ropts := []resolve.Option{resolve.WithLogger(opts.Logger)}
	if opts.MaxDepth > 0 {
		ropts = append(ropts, resolve.WithMaxDepth(opts.MaxDepth))
	}
	return &Controller{
		opts:      opts,
		log:       opts.Logger,
		resolver:  resolve.New(opts.Loader, ropts...),
		builder:   drawable.NewBuilder(opts.Loader, opts.Logger, drawable.WithMaxDepth(opts.MaxDepth)),
		state:     StateIncapable,
		elevation: opts.Elevation,
	}, nil
}

// SetElevation sets the requested height and probes the background again.
func (c *Controller) SetElevation(e float64) error {
	if err := validateElevation(e); err != nil {
		return err
	}
	if e == c.elevation {
		return nil
	}
	c.elevation = e
	c.probe()
	return nil
}

func (c *Controller) Elevation() float64 { return c.elevation }

// SetBackgroundResource assigns a background by resource id.
func (c *Controller) SetBackgroundResource(id resource.ID) {
	c.background = background{kind: backgroundResource, id: id}
	c.content = c.buildContent(id)
	c.probe()
}

// SetBackgroundColor assigns a flat color background. Flat colors are
// probed directly from their alpha channel.
func (c *Controller) SetBackgroundColor(col graphics.Color) {
	c.background = background{kind: backgroundColor, color: col}
	c.content = drawable.NewColor(col, c.opts.CornerRadius)
	c.probe()
}

func (c *Controller) buildContent(id resource.ID) drawable.Drawable {
	if cl, ok := c.opts.Loader.(resource.ColorLoader); ok {
		if col, ok := cl.LoadColor(id); ok {
			return drawable.NewColor(col, c.opts.CornerRadius)
		}
	}
	d, err := c.builder.BuildID(id)
	if err != nil {
		c.log.Debug("Unable to build background", zap.Error(err))
		if e, ok := err.(*errors.Error); ok {
			errors.Report(e)
		}
		return nil
	}
	if list, ok := d.(*drawable.StateList); ok {
		list.SetState(c.drawState)
	}
	return d
}

func (c *Controller) probe() {
	if c.background.kind == backgroundNone {
		return
	}
	c.setState(StateProbing)

	switch c.background.kind {
	case backgroundColor:
		col := c.background.color
		c.result = resolve.Result{Resolved: true, Color: col}
	case backgroundResource:
		c.result = c.resolver.ResolveID(c.background.id, resolve.QueryOpacityGate)
	}

	c.shadow, c.surfaces, c.vOffset = nil, nil, 0
	if !c.result.Opaque() {
		c.setState(StateIncapable)
		c.layout()
		return
	}
	if err := c.buildShadow(); err != nil {
		c.log.Warn("Unable to build shadow", zap.Error(err))
		c.shadow, c.surfaces = nil, nil
		c.setState(StateIncapable)
		c.layout()
		return
	}
	c.vOffset = shadow.VerticalOffset(shadow.ToEven(c.elevation))
	c.setState(StateCapable)
	c.layout()
}

// buildShadow creates one surface for the background, or one per entry
// when the background is a state selector.
func (c *Controller) buildShadow() error {
	if len(c.result.States) == 0 {
		s, err := c.newSurface(c.result)
		if err != nil {
			return err
		}
		c.shadow = s
		return nil
	}

	list := drawable.NewStateList()
	for _, sr := range c.result.States {
		if !sr.Result.Resolved {
			// keeps later entries from matching this state
			c.log.Debug("State has no fill, no shadow", zap.Stringer("states", sr.States))
			list.Add(sr.States, &drawable.Empty{})
			continue
		}
		s, err := c.newSurface(sr.Result)
		if err != nil {
			return err
		}
		list.Add(sr.States, s)
	}
	list.SetState(c.drawState)
	c.shadow = list
	return nil
}

func (c *Controller) newSurface(res resolve.Result) (*shadow.Surface, error) {
	s, err := shadow.NewSurface(c.opts.CornerRadius, c.elevation,
		shadow.WithMetrics(c.opts.Metrics),
		shadow.WithLogger(c.log))
	if err != nil {
		return nil, err
	}
	s.SetAlpha(res.Alpha())
	in := res.Insets
	if !in.IsZero() {
		s.SetInsets(in.Left, in.Top, in.Right, in.Bottom)
	}
	c.surfaces = append(c.surfaces, s)
	return s, nil
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("Elevation state changed",
		zap.Stringer("from", c.state),
		zap.Stringer("to", s),
		zap.Float64("elevation", c.elevation))
	c.state = s
}

// contentInsets returns where the content sits inside the view bounds.
func (c *Controller) contentInsets() graphics.Insets {
	if c.state != StateCapable {
		return graphics.Insets{}
	}
	return graphics.Insets{Top: float64(c.vOffset / 4), Bottom: float64(c.vOffset)}
}

func (c *Controller) layout() {
	if c.shadow != nil {
		c.shadow.SetBounds(c.bounds)
	}
	if c.content != nil {
		c.content.SetBounds(c.bounds.Deflate(c.contentInsets()))
	}
}

// SetDrawableState switches state list shadows and backgrounds.
func (c *Controller) SetDrawableState(s resource.State) bool {
	c.drawState = s
	changed := false
	if list, ok := c.shadow.(*drawable.StateList); ok {
		changed = list.SetState(s) || changed
	}
	if list, ok := c.content.(*drawable.StateList); ok {
		changed = list.SetState(s) || changed
	}
	return changed
}

// OnSizeChanged lays the shadow and content out for the new view size.
func (c *Controller) OnSizeChanged(width, height float64) {
	c.bounds = graphics.RectFromLTWH(0, 0, width, height)
	c.layout()
}

// Draw paints the shadow beneath the content.
func (c *Controller) Draw(canvas graphics.Canvas) {
	if c.state == StateCapable && c.shadow != nil {
		c.shadow.Draw(canvas)
	}
	if c.content != nil {
		c.content.Draw(canvas)
	}
}

// Padding returns the view padding plus the space reserved for the shadow.
func (c *Controller) Padding() graphics.Insets {
	return c.opts.Padding.Add(c.contentInsets())
}

// MinSize returns the largest minimum size of the live shadow surfaces.
func (c *Controller) MinSize() graphics.Size {
	var sz graphics.Size
	if c.state != StateCapable {
		return sz
	}
	for _, s := range c.surfaces {
		sz.Width = max(sz.Width, s.MinWidth())
		sz.Height = max(sz.Height, s.MinHeight())
	}
	return sz
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Background() drawable.Drawable { return c.content }

// Shadow returns the shadow drawable, nil unless Capable.
func (c *Controller) Shadow() drawable.Drawable { return c.shadow }

// Surfaces returns the live shadow surfaces.
func (c *Controller) Surfaces() []*shadow.Surface { return c.surfaces }
