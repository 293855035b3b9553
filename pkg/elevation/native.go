package elevation

import (
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/drawable"
	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resource"
)

// native leaves shadows to the host and only paints the background.
type native struct {
	opts      Options
	builder   *drawable.Builder
	elevation float64
	content   drawable.Drawable
	bounds    graphics.Rect
}

func newNative(opts Options) *native {
	opts.normalize()
	return &native{
		opts:      opts,
		builder:   drawable.NewBuilder(opts.Loader, opts.Logger, drawable.WithMaxDepth(opts.MaxDepth)),
		elevation: opts.Elevation,
	}
}

func (n *native) SetElevation(e float64) error {
	if err := validateElevation(e); err != nil {
		return err
	}
	n.elevation = e
	return nil
}

func (n *native) Elevation() float64 { return n.elevation }

func (n *native) SetBackgroundResource(id resource.ID) {
	d, err := n.builder.BuildID(id)
	if err != nil {
		n.opts.Logger.Debug("Unable to build background", zap.Error(err))
		if e, ok := err.(*errors.Error); ok {
			errors.Report(e)
		}
	}
	n.setContent(d)
}

func (n *native) SetBackgroundColor(c graphics.Color) {
	n.setContent(drawable.NewColor(c, n.opts.CornerRadius))
}

func (n *native) setContent(d drawable.Drawable) {
	n.content = d
	if d != nil {
		d.SetBounds(n.bounds)
	}
}

func (n *native) SetDrawableState(s resource.State) bool {
	if list, ok := n.content.(*drawable.StateList); ok {
		return list.SetState(s)
	}
	return false
}

func (n *native) OnSizeChanged(width, height float64) {
	n.bounds = graphics.RectFromLTWH(0, 0, width, height)
	if n.content != nil {
		n.content.SetBounds(n.bounds)
	}
}

func (n *native) Draw(c graphics.Canvas) {
	if n.content != nil {
		n.content.Draw(c)
	}
}

func (n *native) Padding() graphics.Insets { return n.opts.Padding }

func (n *native) MinSize() graphics.Size { return graphics.Size{} }

func (n *native) State() State { return StateNoElevationSupport }

func (n *native) Background() drawable.Drawable { return n.content }
