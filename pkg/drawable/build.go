package drawable

import (
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resolve"
	"github.com/go-drift/elevation/pkg/resource"
)

// Builder turns resource trees into drawables.
type Builder struct {
	loader   resource.Loader
	resolver *resolve.Resolver
	maxDepth int
	log      *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDepth bounds resource tree nesting, as resolve.WithMaxDepth does.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// NewBuilder returns a builder that loads references through loader.
func NewBuilder(loader resource.Loader, log *zap.Logger, opts ...Option) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		loader:   loader,
		maxDepth: resolve.DefaultMaxDepth,
		log:      log,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.resolver = resolve.New(loader, resolve.WithLogger(log), resolve.WithMaxDepth(b.maxDepth))
	return b
}

// FromNode builds the drawable for a tree with a fresh Builder.
func FromNode(n resource.Node, loader resource.Loader, log *zap.Logger) (Drawable, error) {
	return NewBuilder(loader, log).Build(n)
}

// Build returns the drawable for n. Children that cannot be built are left
// out and reported; only an unusable root is an error.
func (b *Builder) Build(n resource.Node) (Drawable, error) {
	return b.node(n, 0)
}

// BuildID loads id and builds it. Color resources become flat colors.
func (b *Builder) BuildID(id resource.ID) (Drawable, error) {
	return b.ref(resource.RefID(id), 0)
}

func (b *Builder) node(n resource.Node, depth int) (Drawable, error) {
	if depth > b.maxDepth {
		return nil, errors.Newf("drawable.Build", errors.KindNotFound,
			"resource tree deeper than %d levels", b.maxDepth)
	}

	switch n := n.(type) {
	case resource.Solid, resource.Color, resource.Shape:
		res := b.resolver.Resolve(n, resolve.QueryAlpha)
		radius := 0.0
		if s, ok := n.(resource.Shape); ok {
			radius = s.CornerRadius()
		}
		fill := graphics.ColorTransparent
		if res.Resolved {
			fill = res.Color
		}
		return NewColor(fill, radius), nil

	case resource.LayerList:
		return b.layers(n.Items, false, depth)

	case resource.Ripple:
		return b.layers(n.Items, true, depth)

	case resource.Inset:
		child, err := b.ref(n.Child, depth)
		if err != nil {
			return nil, err
		}
		return NewLayers(Layer{Drawable: child, Insets: n.Insets}), nil

	case resource.StateSelector:
		list := NewStateList()
		for _, e := range n.Entries {
			child, err := b.ref(e.Ref, depth)
			if err != nil {
				b.skip(err)
				continue
			}
			list.Add(e.States, child)
		}
		return list, nil

	case nil:
		return nil, errors.Newf("drawable.Build", errors.KindMalformed, "missing node")

	default:
		return nil, errors.Newf("drawable.Build", errors.KindUnsupported, "unsupported node <%s>", n.Tag())
	}
}

func (b *Builder) layers(items []resource.LayerItem, skipMasks bool, depth int) (Drawable, error) {
	out := NewLayers()
	for _, item := range items {
		if skipMasks && item.IsMask {
			continue
		}
		child, err := b.ref(item.Ref, depth)
		if err != nil {
			b.skip(err)
			continue
		}
		out.Add(child, item.Insets)
	}
	return out, nil
}

func (b *Builder) ref(ref resource.Ref, depth int) (Drawable, error) {
	switch {
	case ref.Inline != nil:
		return b.node(ref.Inline, depth+1)
	case ref.ID != resource.NoID:
		if cl, ok := b.loader.(resource.ColorLoader); ok {
			if c, ok := cl.LoadColor(ref.ID); ok {
				return NewColor(c, 0), nil
			}
		}
		n, err := b.loader.LoadNode(ref.ID)
		if err != nil {
			return nil, err
		}
		return b.node(n, depth+1)
	default:
		return nil, errors.Newf("drawable.Build", errors.KindMalformed, "item has no drawable")
	}
}

func (b *Builder) skip(err error) {
	b.log.Debug("Skipping layer", zap.Error(err))
	if e, ok := err.(*errors.Error); ok {
		errors.Report(e)
	}
}
