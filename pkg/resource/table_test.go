package resource

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTableIDsAreStable(t *testing.T) {
	table := NewTable(nil)
	a := table.ID("@drawable/card")
	b := table.ID("drawable/card")
	if a != b {
		t.Errorf("ids differ: %d vs %d", a, b)
	}
	if a == NoID {
		t.Error("assigned id must not be NoID")
	}
	if got := table.Name(a); got != "drawable/card" {
		t.Errorf("Name = %q", got)
	}
	if _, ok := table.Lookup("drawable/other"); ok {
		t.Error("Lookup should not assign ids")
	}
}

func TestTableLoadNode(t *testing.T) {
	table := NewTable(nil)
	id := table.AddNode("drawable/bg", Shape{Children: []Node{Solid{Color: graphics.ColorRed}}})

	n, err := table.LoadNode(id)
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag() != "shape" {
		t.Errorf("tag = %q", n.Tag())
	}

	colorID := table.AddColor("color/primary", graphics.ColorBlue)
	if _, err := table.LoadNode(colorID); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("color as drawable err = %v, want not found", err)
	}
	if c, ok := table.LoadColor(colorID); !ok || c != graphics.ColorBlue {
		t.Errorf("LoadColor = %v, %v", c, ok)
	}
	if _, err := table.LoadNode(ID(999)); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("unknown id err = %v, want not found", err)
	}
}

func TestTablePlatformColors(t *testing.T) {
	table := NewTable(nil)
	id, ok := table.Lookup("@android:color/transparent")
	if !ok {
		t.Fatal("transparent not registered")
	}
	if c, _ := table.LoadColor(id); c != graphics.ColorTransparent {
		t.Errorf("transparent = %v", c)
	}
}

func TestTableThemeAttributes(t *testing.T) {
	table := NewTable(nil)
	table.SetThemeColor("?attr/colorSurface", 0xFF121212)
	if c, ok := table.ResolveColorAttribute("colorSurface"); !ok || c != 0xFF121212 {
		t.Errorf("ResolveColorAttribute = %v, %v", c, ok)
	}
	if _, ok := table.ResolveColorAttribute("colorMissing"); ok {
		t.Error("missing attribute should be absent")
	}
}

func TestTableLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "values", "colors.yaml"), `
colors:
  primary: "#FF6200EE"
  broken: "nope"
theme:
  colorSurface: "#FFFFFFFF"
`)
	writeFile(t, filepath.Join(dir, "drawable", "card.xml"), `<shape xmlns:android="http://schemas.android.com/apk/res/android">
	<solid android:color="@color/primary"/>
</shape>`)
	writeFile(t, filepath.Join(dir, "drawable", "icon.xml"), `<vector xmlns:android="http://schemas.android.com/apk/res/android"/>`)
	writeFile(t, filepath.Join(dir, "drawable", "notes.txt"), `ignored`)

	table := NewTable(zaptest.NewLogger(t))
	err := table.LoadDir(dir)

	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors (%v), want 2", len(errs), err)
	}
	if !errors.IsKind(errs[0], errors.KindMalformed) {
		t.Errorf("first error = %v, want malformed color", errs[0])
	}
	if !errors.IsKind(errs[1], errors.KindUnsupported) {
		t.Errorf("second error = %v, want unsupported drawable", errs[1])
	}

	card, ok := table.Lookup("drawable/card")
	if !ok {
		t.Fatal("card not loaded")
	}
	n, err := table.LoadNode(card)
	if err != nil {
		t.Fatal(err)
	}
	sol, _ := n.(Shape).Solid()
	if c, ok := table.LoadColor(sol.ColorRef); !ok || c != 0xFF6200EE {
		t.Errorf("card color = %v, %v", c, ok)
	}

	icon, ok := table.Lookup("drawable/icon")
	if !ok {
		t.Fatal("icon id should still be assigned")
	}
	if _, err := table.LoadNode(icon); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("unsupported root err = %v, want not found", err)
	}

	if _, ok := table.ResolveColorAttribute("colorSurface"); !ok {
		t.Error("theme color not loaded")
	}
}

func TestTableLoadDirEmpty(t *testing.T) {
	if err := NewTable(nil).LoadDir(t.TempDir()); err != nil {
		t.Errorf("empty dir err = %v", err)
	}
}

func TestStateSetMatches(t *testing.T) {
	tests := []struct {
		set     StateSet
		current State
		want    bool
	}{
		{StateSet{}, 0, true},
		{StateSet{}, StatePressed, true},
		{StateSet{On: StatePressed}, StatePressed | StateEnabled, true},
		{StateSet{On: StatePressed}, StateEnabled, false},
		{StateSet{Off: StateEnabled}, StateEnabled, false},
		{StateSet{On: StateChecked, Off: StateEnabled}, StateChecked, true},
	}
	for _, tt := range tests {
		if got := tt.set.Matches(tt.current); got != tt.want {
			t.Errorf("%v.Matches(%b) = %v, want %v", tt.set, tt.current, got, tt.want)
		}
	}
	if s := (StateSet{On: StatePressed, Off: StateEnabled}).String(); s != "pressed,!enabled" {
		t.Errorf("String() = %q", s)
	}
}
