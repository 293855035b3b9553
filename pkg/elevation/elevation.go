// Package elevation gives views a drop shadow that follows their background.
//
// An Elevator is chosen once per view by New. Hosts that render elevation
// natively get a pass-through implementation; everywhere else a Controller
// probes the background, and draws an emulated shadow beneath it when the
// background is a fully opaque fill.
package elevation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/drawable"
	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resource"
	"github.com/go-drift/elevation/pkg/shadow"
)

// State is the shadow capability of a view.
type State int

const (
	// StateNoElevationSupport means the host draws elevation itself.
	StateNoElevationSupport State = iota
	// StateProbing means a background is being examined.
	StateProbing
	// StateCapable means the background is opaque and a shadow is drawn.
	StateCapable
	// StateIncapable means no shadow is drawn and padding is left alone.
	StateIncapable
)

func (s State) String() string {
	switch s {
	case StateNoElevationSupport:
		return "no_elevation_support"
	case StateProbing:
		return "probing"
	case StateCapable:
		return "capable"
	case StateIncapable:
		return "incapable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Elevator is the per-view elevation hook set.
type Elevator interface {
	// SetElevation sets the requested height. Negative values are rejected.
	SetElevation(elevation float64) error
	// Elevation returns the requested height.
	Elevation() float64

	// SetBackgroundResource assigns a background by resource id.
	SetBackgroundResource(id resource.ID)
	// SetBackgroundColor assigns a flat color background.
	SetBackgroundColor(c graphics.Color)

	// SetDrawableState updates the view state used by state list
	// backgrounds and reports whether anything visible changed.
	SetDrawableState(s resource.State) bool

	// OnSizeChanged lays the background out for a new view size.
	OnSizeChanged(width, height float64)
	// Draw paints the shadow, if any, followed by the background.
	Draw(c graphics.Canvas)

	// Padding returns the view padding including space reserved for the
	// shadow.
	Padding() graphics.Insets
	// MinSize returns the smallest size that holds the shadow.
	MinSize() graphics.Size
	// State returns the current capability.
	State() State
	// Background returns the background drawable without the shadow.
	Background() drawable.Drawable
}

// Options configures an Elevator.
type Options struct {
	// NativeElevation selects the pass-through implementation.
	NativeElevation bool

	// Loader resolves background resources. Required for
	// SetBackgroundResource.
	Loader resource.Loader

	// CornerRadius is the radius of the view's rounded corners.
	CornerRadius float64
	// Elevation is the initial requested height.
	Elevation float64
	// Padding is the view's own padding before any shadow space.
	Padding graphics.Insets

	// Metrics overrides the shadow inset and tints. The zero value means
	// shadow.DefaultMetrics.
	Metrics shadow.Metrics
	// MaxDepth bounds resource tree nesting. Zero means the resolver default.
	MaxDepth int

	Logger *zap.Logger
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == (shadow.Metrics{}) {
		o.Metrics = shadow.DefaultMetrics()
	}
	if o.Loader == nil {
		o.Loader = resource.NewTable(o.Logger)
	}
}

// New returns the Elevator for opts: the native pass-through when the host
// renders elevation itself, an emulating Controller otherwise.
func New(opts Options) (Elevator, error) {
	if err := validateElevation(opts.Elevation); err != nil {
		return nil, err
	}
	if opts.NativeElevation {
		return newNative(opts), nil
	}
	return NewController(opts)
}

func validateElevation(e float64) error {
	if e < 0 || math.IsNaN(e) || math.IsInf(e, 0) {
		return errors.Newf("elevation.SetElevation", errors.KindInvalidArgument,
			"invalid elevation %v, must be >= 0", e)
	}
	return nil
}

// backgroundKind records how the background was last assigned, so it can be
// probed again when the elevation changes.
type backgroundKind int

const (
	backgroundNone backgroundKind = iota
	backgroundColor
	backgroundResource
)

type background struct {
	kind  backgroundKind
	color graphics.Color
	id    resource.ID
}
