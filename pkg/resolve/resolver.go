// Package resolve walks drawable resource trees to find the fill color that
// determines a shadow's tint and whether the background is opaque.
//
// Resolution is best effort. A branch that cannot be resolved contributes
// nothing: the error is reported through errors.Report and the walk moves on
// to the next candidate. An unresolved result reads as alpha 0, not opaque.
package resolve

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resource"
)

// DefaultMaxDepth bounds how deeply nested a resource tree may be, counting
// both inline children and id references.
const DefaultMaxDepth = 32

// Query selects what a resolution is for.
type Query int

const (
	// QueryName asks only for the top-level element name.
	QueryName Query = iota
	// QueryAlpha asks for the alpha of the effective fill color.
	QueryAlpha
	// QueryOpacityGate asks whether the effective fill is fully opaque.
	QueryOpacityGate
)

func (q Query) String() string {
	switch q {
	case QueryName:
		return "name"
	case QueryAlpha:
		return "alpha"
	case QueryOpacityGate:
		return "opacity"
	default:
		return fmt.Sprintf("Query(%d)", int(q))
	}
}

// Result is the outcome of a resolution.
type Result struct {
	// Name is the element name of the root node.
	Name string
	// Resolved reports whether a fill color was found.
	Resolved bool
	// Color is the effective fill color when Resolved.
	Color graphics.Color
	// Insets is the sum of the Inset nodes crossed on the way to the color.
	Insets graphics.Insets
	// States holds one result per entry of the state selector nearest the
	// root on the resolved path, in declaration order.
	States []StateResult
}

// Alpha returns the fill alpha, or 0 when nothing resolved.
func (r Result) Alpha() uint8 {
	if !r.Resolved {
		return 0
	}
	return r.Color.Alpha8()
}

// Opaque reports whether the fill resolved to a fully opaque color.
func (r Result) Opaque() bool {
	return r.Resolved && r.Color.IsOpaque()
}

// StateResult is the resolution of one state selector entry.
type StateResult struct {
	States resource.StateSet
	Result Result
}

// Resolver resolves resource trees against a loader.
type Resolver struct {
	loader   resource.Loader
	colors   resource.ColorLoader
	maxDepth int
	log      *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for tracing the walk.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New returns a resolver that loads referenced resources through loader.
func New(loader resource.Loader, opts ...Option) *Resolver {
	r := &Resolver{
		loader:   loader,
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop(),
	}
	r.colors, _ = loader.(resource.ColorLoader)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve answers q for the tree rooted at root.
func (r *Resolver) Resolve(root resource.Node, q Query) Result {
	if root == nil {
		return Result{}
	}
	res := Result{Name: root.Tag()}
	if q == QueryName {
		return res
	}

	b, ok := r.walk(root, 0)
	if ok {
		res.Resolved = true
		res.Color = b.color
		res.Insets = b.insets
	}
	res.States = b.states
	r.log.Debug("Resolved background",
		zap.String("root", res.Name),
		zap.Stringer("query", q),
		zap.Bool("resolved", res.Resolved),
		zap.Stringer("color", res.Color))
	return res
}

// ResolveID loads id and answers q for it. A plain color resource resolves
// directly to itself with an empty name.
func (r *Resolver) ResolveID(id resource.ID, q Query) Result {
	if c, ok := r.loadColor(id); ok {
		if q == QueryName {
			return Result{}
		}
		return Result{Resolved: true, Color: c}
	}
	n, err := r.loader.LoadNode(id)
	if err != nil {
		r.report(err)
		return Result{}
	}
	return r.Resolve(n, q)
}

// Name returns the element name of the resource id, or "" when it is not a
// drawable tree.
func (r *Resolver) Name(id resource.ID) string {
	return r.ResolveID(id, QueryName).Name
}

// Alpha returns the fill alpha of root, 0 when unresolved.
func (r *Resolver) Alpha(root resource.Node) uint8 {
	return r.Resolve(root, QueryAlpha).Alpha()
}

// OpacityGate reports whether root resolves to a fully opaque fill.
func (r *Resolver) OpacityGate(root resource.Node) bool {
	return r.Resolve(root, QueryOpacityGate).Opaque()
}

// branch is the partial result of walking one subtree.
type branch struct {
	color  graphics.Color
	insets graphics.Insets
	states []StateResult
}

func (r *Resolver) walk(n resource.Node, depth int) (branch, bool) {
	if depth > r.maxDepth {
		r.report(errors.Newf("resolve.walk", errors.KindNotFound,
			"resource tree deeper than %d levels", r.maxDepth))
		return branch{}, false
	}

	switch n := n.(type) {
	case resource.Solid:
		c, ok := r.solid(n)
		return branch{color: c}, ok

	case resource.Color:
		c, ok := r.solid(n.Fill)
		return branch{color: c}, ok

	case resource.Shape:
		sol, ok := n.Solid()
		if !ok {
			r.report(errors.Newf("resolve.walk", errors.KindMalformed, "shape has no solid fill"))
			return branch{}, false
		}
		c, ok := r.solid(sol)
		return branch{color: c}, ok

	case resource.LayerList:
		return r.firstItem(n.Items, false, depth)

	case resource.Ripple:
		return r.firstItem(n.Items, true, depth)

	case resource.LayerItem:
		return r.follow(n.Ref, depth)

	case resource.Inset:
		b, ok := r.follow(n.Child, depth)
		if ok {
			b.insets = b.insets.Add(n.Insets)
		}
		// per-state results sit inside the inset too
		for i := range b.states {
			if b.states[i].Result.Resolved {
				b.states[i].Result.Insets = b.states[i].Result.Insets.Add(n.Insets)
			}
		}
		return b, ok

	case resource.StateSelector:
		return r.selector(n, depth)

	case nil:
		r.report(errors.Newf("resolve.walk", errors.KindMalformed, "missing node"))
		return branch{}, false

	default:
		r.report(errors.Newf("resolve.walk", errors.KindUnsupported, "unsupported node <%s>", n.Tag()))
		return branch{}, false
	}
}

// firstItem resolves the first item that yields a color. Ripple masks are
// skipped wherever they appear.
func (r *Resolver) firstItem(items []resource.LayerItem, skipMasks bool, depth int) (branch, bool) {
	for i, item := range items {
		if skipMasks && item.IsMask {
			continue
		}
		if b, ok := r.follow(item.Ref, depth); ok {
			r.log.Debug("Layer resolved", zap.Int("index", i))
			return b, true
		}
	}
	return branch{}, false
}

// selector resolves every entry independently. The selector as a whole
// resolves to its first resolvable entry.
func (r *Resolver) selector(sel resource.StateSelector, depth int) (branch, bool) {
	var (
		first    branch
		resolved bool
		states   = make([]StateResult, 0, len(sel.Entries))
	)
	for _, e := range sel.Entries {
		b, ok := r.follow(e.Ref, depth)
		sr := StateResult{States: e.States}
		if ok {
			sr.Result = Result{Resolved: true, Color: b.color, Insets: b.insets}
			if !resolved {
				first, resolved = b, true
			}
		}
		states = append(states, sr)
	}
	first.states = states
	return first, resolved
}

func (r *Resolver) follow(ref resource.Ref, depth int) (branch, bool) {
	switch {
	case ref.Inline != nil:
		return r.walk(ref.Inline, depth+1)
	case ref.ID != resource.NoID:
		if c, ok := r.loadColor(ref.ID); ok {
			return branch{color: c}, true
		}
		n, err := r.loader.LoadNode(ref.ID)
		if err != nil {
			r.report(err)
			return branch{}, false
		}
		return r.walk(n, depth+1)
	default:
		r.report(errors.Newf("resolve.follow", errors.KindMalformed, "item has no drawable"))
		return branch{}, false
	}
}

func (r *Resolver) solid(s resource.Solid) (graphics.Color, bool) {
	switch {
	case s.ThemeAttr != "":
		c, ok := r.loader.ResolveColorAttribute(s.ThemeAttr)
		if !ok {
			r.report(&errors.Error{
				Op:       "resolve.solid",
				Kind:     errors.KindNotFound,
				Resource: "?attr/" + s.ThemeAttr,
				Err:      stderrors.New("theme attribute is not set"),
			})
		}
		return c, ok
	case s.ColorRef != resource.NoID:
		c, ok := r.loadColor(s.ColorRef)
		if !ok {
			r.report(errors.Newf("resolve.solid", errors.KindNotFound, "no color resource %d", s.ColorRef))
		}
		return c, ok
	default:
		return s.Color, true
	}
}

func (r *Resolver) loadColor(id resource.ID) (graphics.Color, bool) {
	if r.colors == nil || id == resource.NoID {
		return 0, false
	}
	return r.colors.LoadColor(id)
}

func (r *Resolver) report(err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		e = errors.New("resolve", errors.KindUnknown, err)
	}
	r.log.Debug("Branch contributes nothing", zap.Error(err))
	errors.Report(e)
}
