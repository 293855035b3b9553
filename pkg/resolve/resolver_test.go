package resolve

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resource"
)

// captureErrors installs a handler that collects reported errors for the
// duration of the test.
func captureErrors(t *testing.T) *[]*errors.Error {
	t.Helper()
	var got []*errors.Error
	old := errors.SetHandler(errors.HandlerFunc(func(err *errors.Error) { got = append(got, err) }))
	t.Cleanup(func() { errors.SetHandler(old) })
	return &got
}

func solidShape(c graphics.Color) resource.Shape {
	return resource.Shape{Children: []resource.Node{
		resource.Corners{Radius: 4},
		resource.Solid{Color: c},
	}}
}

func newResolver(t *testing.T, table *resource.Table, opts ...Option) *Resolver {
	t.Helper()
	return New(table, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func TestShapeAlphaMatchesColor(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	root := resource.Shape{Children: []resource.Node{resource.Solid{Color: 0x80336699}}}
	if got := r.Alpha(root); got != 128 {
		t.Errorf("Alpha = %d, want 128", got)
	}
}

func TestShapeFirstSolidWins(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	root := resource.Shape{Children: []resource.Node{
		resource.Inert{Name: "stroke"},
		resource.Solid{Color: 0x40000000},
		resource.Solid{Color: 0xFF000000},
	}}
	if got := r.Alpha(root); got != 0x40 {
		t.Errorf("Alpha = %#x, want 0x40", got)
	}
}

func TestLayerListFirstResolvableWins(t *testing.T) {
	table := resource.NewTable(nil)
	errs := captureErrors(t)
	r := newResolver(t, table)

	root := resource.LayerList{Items: []resource.LayerItem{
		{Ref: resource.RefID(table.ID("drawable/missing"))},
		{Ref: resource.RefNode(solidShape(graphics.ColorRed.WithAlpha8(128)))},
		{Ref: resource.RefNode(solidShape(graphics.ColorBlue))},
	}}
	res := r.Resolve(root, QueryAlpha)
	if res.Alpha() != 128 {
		t.Errorf("Alpha = %d, want 128", res.Alpha())
	}
	if res.Name != "layer-list" {
		t.Errorf("Name = %q", res.Name)
	}
	if len(*errs) != 1 || (*errs)[0].Kind != errors.KindNotFound {
		t.Errorf("reported %v, want one not-found", *errs)
	}
}

func TestRippleSkipsMask(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	root := resource.Ripple{Items: []resource.LayerItem{
		{IsMask: true, Ref: resource.RefNode(solidShape(graphics.ColorWhite))},
		{Ref: resource.RefNode(solidShape(graphics.ColorGreen.WithAlpha8(64)))},
	}}
	if r.OpacityGate(root) {
		t.Error("OpacityGate = true, want false")
	}
	if got := r.Alpha(root); got != 64 {
		t.Errorf("Alpha = %d, want 64", got)
	}

	maskOnly := resource.Ripple{Items: []resource.LayerItem{
		{IsMask: true, Ref: resource.RefNode(solidShape(graphics.ColorWhite))},
	}}
	if res := r.Resolve(maskOnly, QueryAlpha); res.Resolved {
		t.Errorf("mask-only ripple resolved to %v", res.Color)
	}
}

func TestInsetIsTransparent(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	root := resource.Inset{
		Insets: graphics.UniformInsets(2),
		Child: resource.RefNode(resource.Inset{
			Insets: graphics.Insets{Bottom: 3},
			Child:  resource.RefNode(solidShape(graphics.ColorBlack)),
		}),
	}
	res := r.Resolve(root, QueryOpacityGate)
	if !res.Opaque() {
		t.Fatal("inset of opaque shape should be opaque")
	}
	want := graphics.Insets{Left: 2, Top: 2, Right: 2, Bottom: 5}
	if res.Insets != want {
		t.Errorf("Insets = %+v, want %+v", res.Insets, want)
	}
}

func TestReferencesThroughTable(t *testing.T) {
	table := resource.NewTable(nil)
	table.AddColor("color/brand", 0xFF6200EE)
	table.SetThemeColor("colorSurface", 0xCCFFFFFF)
	card := table.AddNode("drawable/card", resource.Shape{Children: []resource.Node{
		resource.Solid{ColorRef: table.ID("color/brand")},
	}})
	surface := table.AddNode("drawable/surface", resource.Shape{Children: []resource.Node{
		resource.Solid{ThemeAttr: "colorSurface"},
	}})
	r := newResolver(t, table)

	if !r.ResolveID(card, QueryOpacityGate).Opaque() {
		t.Error("card should be opaque")
	}
	if got := r.ResolveID(surface, QueryAlpha).Alpha(); got != 0xCC {
		t.Errorf("surface alpha = %#x, want 0xcc", got)
	}
	if got := r.Name(card); got != "shape" {
		t.Errorf("Name(card) = %q", got)
	}
	if got := r.Name(table.ID("color/brand")); got != "" {
		t.Errorf("Name(color) = %q, want empty", got)
	}

	// a layer can point straight at a color
	layers := resource.LayerList{Items: []resource.LayerItem{{Ref: resource.RefID(table.ID("color/brand"))}}}
	if !r.OpacityGate(layers) {
		t.Error("color layer should be opaque")
	}
}

func TestMissingThemeAttribute(t *testing.T) {
	errs := captureErrors(t)
	r := newResolver(t, resource.NewTable(nil))
	root := resource.Shape{Children: []resource.Node{resource.Solid{ThemeAttr: "colorMissing"}}}
	res := r.Resolve(root, QueryAlpha)
	if res.Resolved || res.Alpha() != 0 {
		t.Errorf("result = %+v, want unresolved", res)
	}
	if len(*errs) != 1 || (*errs)[0].Resource != "?attr/colorMissing" {
		t.Errorf("reported %v", *errs)
	}
}

func TestUnsupportedAndMalformed(t *testing.T) {
	errs := captureErrors(t)
	r := newResolver(t, resource.NewTable(nil))

	tests := []struct {
		name string
		root resource.Node
		kind errors.ErrorKind
	}{
		{"bare corners", resource.Corners{Radius: 2}, errors.KindUnsupported},
		{"shape without solid", resource.Shape{Children: []resource.Node{resource.Inert{Name: "stroke"}}}, errors.KindMalformed},
		{"empty item", resource.LayerList{Items: []resource.LayerItem{{}}}, errors.KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*errs = nil
			if r.OpacityGate(tt.root) {
				t.Error("should not be opaque")
			}
			if len(*errs) == 0 || (*errs)[0].Kind != tt.kind {
				t.Errorf("reported %v, want kind %v", *errs, tt.kind)
			}
		})
	}
}

func TestDepthCeiling(t *testing.T) {
	table := resource.NewTable(nil)
	self := table.ID("drawable/loop")
	table.AddNode("drawable/loop", resource.Inset{Child: resource.RefID(self)})
	errs := captureErrors(t)

	r := newResolver(t, table, WithMaxDepth(5))
	res := r.ResolveID(self, QueryAlpha)
	if res.Resolved {
		t.Error("cyclic resource should not resolve")
	}
	if len(*errs) != 1 || (*errs)[0].Kind != errors.KindNotFound {
		t.Errorf("reported %v, want one not-found", *errs)
	}

	var deep resource.Node = solidShape(graphics.ColorBlack)
	for range DefaultMaxDepth {
		deep = resource.Inset{Child: resource.RefNode(deep)}
	}
	if !newResolver(t, table).OpacityGate(deep) {
		t.Error("tree at the ceiling should resolve")
	}
}

func TestSelectorPerStateResults(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	pressed := resource.StateSet{On: resource.StatePressed}
	disabled := resource.StateSet{Off: resource.StateEnabled}
	root := resource.StateSelector{Entries: []resource.StateEntry{
		{States: pressed, Ref: resource.RefNode(solidShape(0xC8000000))},
		{States: disabled, Ref: resource.Ref{}},
		{Ref: resource.RefNode(solidShape(graphics.ColorWhite))},
	}}

	res := r.Resolve(root, QueryOpacityGate)
	if res.Opaque() {
		t.Error("first entry (alpha 200) decides the selector")
	}
	if res.Name != "selector" {
		t.Errorf("Name = %q", res.Name)
	}
	if len(res.States) != 3 {
		t.Fatalf("got %d state results, want 3", len(res.States))
	}
	want := []struct {
		set      resource.StateSet
		resolved bool
		alpha    uint8
	}{
		{pressed, true, 200},
		{disabled, false, 0},
		{resource.StateSet{}, true, 255},
	}
	for i, w := range want {
		got := res.States[i]
		if got.States != w.set || got.Result.Resolved != w.resolved || got.Result.Alpha() != w.alpha {
			t.Errorf("state %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestInsetAroundSelectorInsetsEveryState(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	pressed := resource.StateSet{On: resource.StatePressed}
	root := resource.Inset{
		Insets: graphics.UniformInsets(10),
		Child: resource.RefNode(resource.Inset{
			Insets: graphics.Insets{Top: 2},
			Child: resource.RefNode(resource.StateSelector{Entries: []resource.StateEntry{
				{States: pressed, Ref: resource.RefNode(resource.Shape{Children: []resource.Node{resource.Inert{Name: "stroke"}}})},
				{Ref: resource.RefNode(solidShape(graphics.ColorWhite))},
			}}),
		}),
	}

	res := r.Resolve(root, QueryOpacityGate)
	want := graphics.Insets{Left: 10, Top: 12, Right: 10, Bottom: 10}
	if res.Insets != want {
		t.Errorf("result insets = %+v, want %+v", res.Insets, want)
	}
	if len(res.States) != 2 {
		t.Fatalf("got %d state results, want 2", len(res.States))
	}
	if got := res.States[1].Result.Insets; got != want {
		t.Errorf("default state insets = %+v, want %+v", got, want)
	}
	if got := res.States[0].Result; got.Resolved || !got.Insets.IsZero() {
		t.Errorf("unresolved state = %+v, want no contribution", got)
	}
}

func TestColorRootKeepsItsName(t *testing.T) {
	table := resource.NewTable(nil)
	id := table.AddNode("drawable/scrim", resource.Color{Fill: resource.Solid{Color: 0x99000000}})
	r := newResolver(t, table)

	if got := r.Name(id); got != "color" {
		t.Errorf("Name = %q, want color", got)
	}
	if res := r.ResolveID(id, QueryAlpha); !res.Resolved || res.Alpha() != 0x99 {
		t.Errorf("alpha result = %+v, want 0x99", res)
	}
}

func TestQueryName(t *testing.T) {
	r := newResolver(t, resource.NewTable(nil))
	res := r.Resolve(resource.Ripple{}, QueryName)
	if res.Name != "ripple" || res.Resolved {
		t.Errorf("result = %+v", res)
	}
	if res := r.Resolve(nil, QueryAlpha); res.Resolved || res.Name != "" {
		t.Errorf("nil root = %+v", res)
	}
}
