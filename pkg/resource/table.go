package resource

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
)

// Loader resolves resource ids and theme attributes for the resolver.
// Implementations must be safe for repeated synchronous reads.
type Loader interface {
	// LoadNode returns the drawable tree for id. A missing id, or an id
	// naming something that is not a drawable tree, yields a KindNotFound
	// error.
	LoadNode(id ID) (Node, error)

	// ResolveColorAttribute returns the color a theme attribute points at.
	ResolveColorAttribute(attr string) (graphics.Color, bool)
}

// ColorLoader is implemented by loaders that also hold plain color
// resources, which are leaves rather than drawable trees.
type ColorLoader interface {
	LoadColor(id ID) (graphics.Color, bool)
}

// Table is an in-memory resource table. Names look like "drawable/card" or
// "color/primary"; ids are assigned on first use and stay stable.
type Table struct {
	// Density converts dp dimensions to pixels when decoding.
	Density float64

	mu     sync.RWMutex
	ids    map[string]ID
	names  []string
	nodes  map[ID]Node
	colors map[ID]graphics.Color
	theme  map[string]graphics.Color
	log    *zap.Logger
}

var _ interface {
	Loader
	ColorLoader
} = (*Table)(nil)

// NewTable returns an empty table with the platform colors registered.
func NewTable(log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Table{
		Density: 1,
		ids:     make(map[string]ID),
		nodes:   make(map[ID]Node),
		colors:  make(map[ID]graphics.Color),
		theme:   make(map[string]graphics.Color),
		log:     log,
	}
	t.AddColor("android:color/transparent", graphics.ColorTransparent)
	t.AddColor("android:color/black", graphics.ColorBlack)
	t.AddColor("android:color/white", graphics.ColorWhite)
	return t
}

// ID returns the id for name, assigning a new one if needed.
func (t *Table) ID(name string) ID {
	name = normalizeName(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idLocked(name)
}

func (t *Table) idLocked(name string) ID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	t.names = append(t.names, name)
	id := ID(len(t.names))
	t.ids[name] = id
	return id
}

// Lookup returns the id of an already known name.
func (t *Table) Lookup(name string) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[normalizeName(name)]
	return id, ok
}

// Name returns the name an id was assigned for, or "" if unknown.
func (t *Table) Name(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id <= 0 || int(id) > len(t.names) {
		return ""
	}
	return t.names[id-1]
}

// Names returns every known name in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := append([]string(nil), t.names...)
	sort.Strings(out)
	return out
}

// AddNode registers a drawable tree under name and returns its id.
func (t *Table) AddNode(name string, n Node) ID {
	name = normalizeName(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idLocked(name)
	t.nodes[id] = n
	return id
}

// AddColor registers a color resource under name and returns its id.
func (t *Table) AddColor(name string, c graphics.Color) ID {
	name = normalizeName(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idLocked(name)
	t.colors[id] = c
	return id
}

// SetThemeColor binds a theme attribute such as "colorPrimary" to a color.
func (t *Table) SetThemeColor(attr string, c graphics.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.theme[normalizeAttr(attr)] = c
}

// LoadNode implements Loader.
func (t *Table) LoadNode(id ID) (Node, error) {
	t.mu.RLock()
	n, ok := t.nodes[id]
	t.mu.RUnlock()
	if !ok {
		return nil, &errors.Error{
			Op:       "resource.LoadNode",
			Kind:     errors.KindNotFound,
			Resource: t.describe(id),
			Err:      stderrors.New("no drawable tree for resource"),
		}
	}
	return n, nil
}

// LoadColor implements ColorLoader.
func (t *Table) LoadColor(id ID) (graphics.Color, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.colors[id]
	return c, ok
}

// ResolveColorAttribute implements Loader.
func (t *Table) ResolveColorAttribute(attr string) (graphics.Color, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.theme[normalizeAttr(attr)]
	return c, ok
}

func (t *Table) describe(id ID) string {
	if name := t.Name(id); name != "" {
		return name
	}
	return fmt.Sprintf("0x%08x", int32(id))
}

// AddXML decodes a drawable document and registers it under name.
// A document whose root is not a drawable is not registered.
func (t *Table) AddXML(name string, r io.Reader) (ID, error) {
	n, err := Decode(r, t, t.log.With(zap.String("resource", normalizeName(name))))
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Resource == "" {
			e.Resource = normalizeName(name)
		}
		return t.ID(name), err
	}
	return t.AddNode(name, n), nil
}

// valuesFile is the layout of values/colors.yaml.
type valuesFile struct {
	Colors map[string]string `yaml:"colors"`
	Theme  map[string]string `yaml:"theme"`
}

// LoadDir loads a resource directory: values/colors.yaml, if present, and
// every drawable/*.xml file. Files that fail to decode are skipped and their
// errors are returned together once everything else is loaded.
func (t *Table) LoadDir(dir string) error {
	var err error
	if er := t.loadValues(filepath.Join(dir, "values", "colors.yaml")); er != nil {
		err = multierr.Append(err, er)
	}

	files, er := filepath.Glob(filepath.Join(dir, "drawable", "*.xml"))
	if er != nil {
		return multierr.Append(err, fmt.Errorf("unable to list drawables: %w", er))
	}
	sort.Strings(files)
	for _, file := range files {
		name := "drawable/" + strings.TrimSuffix(filepath.Base(file), ".xml")
		if er := t.loadFile(name, file); er != nil {
			err = multierr.Append(err, er)
		}
	}

	t.log.Debug("Loaded resource directory",
		zap.String("dir", dir),
		zap.Int("drawables", len(files)),
		zap.Int("errors", len(multierr.Errors(err))))
	return err
}

func (t *Table) loadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &errors.Error{Op: "resource.LoadDir", Kind: errors.KindNotFound, Resource: name, Err: err}
	}
	defer f.Close()

	if _, err := t.AddXML(name, f); err != nil {
		return err
	}
	return nil
}

func (t *Table) loadValues(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("unable to read %s: %w", path, err)
	}

	var vf valuesFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return &errors.Error{Op: "resource.LoadDir", Kind: errors.KindMalformed, Resource: path, Err: err}
	}

	for name, v := range vf.Colors {
		c, er := graphics.ParseColor(v)
		if er != nil {
			err = multierr.Append(err, &errors.Error{Op: "resource.LoadDir", Kind: errors.KindMalformed, Resource: "color/" + name, Err: er})
			continue
		}
		t.AddColor("color/"+name, c)
	}
	for attr, v := range vf.Theme {
		c, er := graphics.ParseColor(v)
		if er != nil {
			err = multierr.Append(err, &errors.Error{Op: "resource.LoadDir", Kind: errors.KindMalformed, Resource: "attr/" + attr, Err: er})
			continue
		}
		t.SetThemeColor(attr, c)
	}
	return err
}

// normalizeName strips the reference prefix: "@drawable/card" and
// "drawable/card" name the same resource.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@+")
	return strings.TrimPrefix(name, "@")
}

// normalizeAttr reduces "?attr/colorPrimary", "?colorPrimary" and
// "attr/colorPrimary" to "colorPrimary".
func normalizeAttr(attr string) string {
	attr = strings.TrimSpace(attr)
	attr = strings.TrimPrefix(attr, "?")
	attr = strings.TrimPrefix(attr, "android:")
	return strings.TrimPrefix(attr, "attr/")
}
