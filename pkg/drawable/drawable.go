// Package drawable provides the paintable building blocks of a view
// background: flat colors, stacked layers and state lists.
package drawable

import (
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resource"
)

// Drawable paints itself inside bounds set by its owner.
type Drawable interface {
	SetBounds(r graphics.Rect)
	Bounds() graphics.Rect
	Draw(c graphics.Canvas)
}

// Color fills its bounds with a color, rounding the corners by Radius.
type Color struct {
	Fill   graphics.Color
	Radius float64

	bounds graphics.Rect
}

// NewColor returns a color drawable.
func NewColor(fill graphics.Color, radius float64) *Color {
	return &Color{Fill: fill, Radius: radius}
}

func (d *Color) SetBounds(r graphics.Rect) { d.bounds = r }

func (d *Color) Bounds() graphics.Rect { return d.bounds }

func (d *Color) Draw(c graphics.Canvas) {
	if d.Fill.Alpha8() == 0 || d.bounds.IsEmpty() {
		return
	}
	paint := graphics.DefaultPaint()
	paint.Color = d.Fill
	if d.Radius > 0 {
		c.DrawRRect(graphics.RRect{Rect: d.bounds, Radius: d.Radius}, paint)
		return
	}
	c.DrawRect(d.bounds, paint)
}

// Empty draws nothing. A state list uses it to claim a state without
// showing anything.
type Empty struct {
	bounds graphics.Rect
}

func (d *Empty) SetBounds(r graphics.Rect) { d.bounds = r }

func (d *Empty) Bounds() graphics.Rect { return d.bounds }

func (*Empty) Draw(graphics.Canvas) {}

// Layer is a drawable placed inside its container with insets.
type Layer struct {
	Drawable Drawable
	Insets   graphics.Insets
}

// Layers draws its children bottom first, each inside the container bounds
// deflated by the layer's insets.
type Layers struct {
	layers []Layer
	bounds graphics.Rect
}

// NewLayers returns a layer stack.
func NewLayers(layers ...Layer) *Layers {
	return &Layers{layers: layers}
}

// Add appends a layer on top.
func (d *Layers) Add(child Drawable, insets graphics.Insets) {
	d.layers = append(d.layers, Layer{Drawable: child, Insets: insets})
	child.SetBounds(d.bounds.Deflate(insets))
}

// SetInsets replaces the insets of layer i.
func (d *Layers) SetInsets(i int, insets graphics.Insets) {
	d.layers[i].Insets = insets
	d.layers[i].Drawable.SetBounds(d.bounds.Deflate(insets))
}

// Len returns the number of layers.
func (d *Layers) Len() int { return len(d.layers) }

// Layer returns layer i.
func (d *Layers) Layer(i int) Layer { return d.layers[i] }

func (d *Layers) SetBounds(r graphics.Rect) {
	d.bounds = r
	for _, l := range d.layers {
		l.Drawable.SetBounds(r.Deflate(l.Insets))
	}
}

func (d *Layers) Bounds() graphics.Rect { return d.bounds }

func (d *Layers) Draw(c graphics.Canvas) {
	for _, l := range d.layers {
		l.Drawable.Draw(c)
	}
}

// StateEntry pairs a state condition with the drawable shown under it.
type StateEntry struct {
	States   resource.StateSet
	Drawable Drawable
}

// StateList shows the first entry whose condition matches the current
// state, or nothing when none does.
type StateList struct {
	entries []StateEntry
	state   resource.State
	current int
	bounds  graphics.Rect
}

// NewStateList returns an empty state list in the zero state.
func NewStateList() *StateList {
	return &StateList{current: -1}
}

// Add appends an entry. Entries are matched in the order they are added.
func (d *StateList) Add(states resource.StateSet, child Drawable) {
	d.entries = append(d.entries, StateEntry{States: states, Drawable: child})
	child.SetBounds(d.bounds)
	d.current = d.match(d.state)
}

// SetState updates the current state and reports whether the visible entry
// changed.
func (d *StateList) SetState(s resource.State) bool {
	d.state = s
	next := d.match(s)
	changed := next != d.current
	d.current = next
	return changed
}

// State returns the current state.
func (d *StateList) State() resource.State { return d.state }

// Current returns the visible drawable, or nil.
func (d *StateList) Current() Drawable {
	if d.current < 0 {
		return nil
	}
	return d.entries[d.current].Drawable
}

// Lookup returns the drawable added for exactly the given condition.
func (d *StateList) Lookup(states resource.StateSet) (Drawable, bool) {
	for _, e := range d.entries {
		if e.States == states {
			return e.Drawable, true
		}
	}
	return nil, false
}

// Entries returns the entries in match order.
func (d *StateList) Entries() []StateEntry { return d.entries }

func (d *StateList) match(s resource.State) int {
	for i, e := range d.entries {
		if e.States.Matches(s) {
			return i
		}
	}
	return -1
}

func (d *StateList) SetBounds(r graphics.Rect) {
	d.bounds = r
	for _, e := range d.entries {
		e.Drawable.SetBounds(r)
	}
}

func (d *StateList) Bounds() graphics.Rect { return d.bounds }

func (d *StateList) Draw(c graphics.Canvas) {
	if cur := d.Current(); cur != nil {
		cur.Draw(c)
	}
}
