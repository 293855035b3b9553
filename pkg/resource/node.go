// Package resource models declarative drawable resources as a tree of nodes
// and provides a table that loads them by numeric id.
//
// Nodes are plain values produced by Decode or built directly in code. They
// describe what a background is made of; they do not draw anything.
package resource

import (
	"github.com/go-drift/elevation/pkg/graphics"
)

// ID identifies a resource in a Table. The zero value means "no resource".
type ID int32

// NoID is the absent resource id.
const NoID ID = 0

// Node is one element of a drawable resource tree.
type Node interface {
	// Tag returns the element name the node was declared with,
	// e.g. "shape" or "layer-list".
	Tag() string
}

// Ref points at a drawable either by resource id or inline.
// Inline takes precedence when both are set.
type Ref struct {
	ID     ID
	Inline Node
}

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool {
	return r.ID == NoID && r.Inline == nil
}

// RefID returns a reference to a resource id.
func RefID(id ID) Ref {
	return Ref{ID: id}
}

// RefNode returns an inline reference.
func RefNode(n Node) Ref {
	return Ref{Inline: n}
}

// Solid is a fill color. The color is given literally, by reference to a
// color resource, or by theme attribute; the first non-empty of ThemeAttr
// and ColorRef wins over Color.
type Solid struct {
	Color     graphics.Color
	ColorRef  ID
	ThemeAttr string
}

func (Solid) Tag() string { return "solid" }

// Color is a drawable that is nothing but a fill, declared with <color>.
type Color struct {
	Fill Solid
}

func (Color) Tag() string { return "color" }

// Corners declares the corner radius of a shape.
type Corners struct {
	Radius float64
}

func (Corners) Tag() string { return "corners" }

// Inert is a shape primitive that carries no fill color, such as a stroke,
// gradient or size declaration.
type Inert struct {
	Name string
}

func (n Inert) Tag() string { return n.Name }

// Shape is a shape drawable. Only its Solid and Corners children matter for
// shadows; the rest are kept for completeness.
type Shape struct {
	Children []Node
}

func (Shape) Tag() string { return "shape" }

// Solid returns the first Solid child.
func (s Shape) Solid() (Solid, bool) {
	for _, c := range s.Children {
		if sol, ok := c.(Solid); ok {
			return sol, true
		}
	}
	return Solid{}, false
}

// CornerRadius returns the radius of the first Corners child, or 0.
func (s Shape) CornerRadius() float64 {
	for _, c := range s.Children {
		if cr, ok := c.(Corners); ok {
			return cr.Radius
		}
	}
	return 0
}

// LayerItem is one layer of a LayerList or Ripple.
type LayerItem struct {
	ID     ID
	Ref    Ref
	IsMask bool
	// Insets offsets the layer inside its container.
	Insets graphics.Insets
}

func (LayerItem) Tag() string { return "item" }

// LayerList stacks drawables. Items are listed bottom first.
type LayerList struct {
	Items []LayerItem
}

func (LayerList) Tag() string { return "layer-list" }

// Ripple is a touch-feedback drawable. Items flagged IsMask only bound the
// ripple and are never painted.
type Ripple struct {
	Color graphics.Color
	Items []LayerItem
}

func (Ripple) Tag() string { return "ripple" }

// Inset draws its child inset by fixed distances.
type Inset struct {
	Insets graphics.Insets
	Child  Ref
}

func (Inset) Tag() string { return "inset" }

// StateEntry is one alternative of a StateSelector.
type StateEntry struct {
	States StateSet
	Ref    Ref
}

// StateSelector picks a drawable by the host's current state.
type StateSelector struct {
	Entries []StateEntry
}

func (StateSelector) Tag() string { return "selector" }
