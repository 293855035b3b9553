package resource

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/go-drift/elevation/pkg/errors"
	"github.com/go-drift/elevation/pkg/graphics"
)

// maskID is the platform id that marks a ripple mask layer.
const maskID = "android:id/mask"

// Decode reads a drawable XML document into a node tree. Resource
// references are resolved to ids through t, which need not contain the
// referenced resources yet.
func Decode(r io.Reader, t *Table, log *zap.Logger) (Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{Permissive: true}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.New("resource.Decode", errors.KindMalformed, fmt.Errorf("unable to read drawable XML: %w", err))
	}
	return DecodeDocument(doc, t, log)
}

// DecodeDocument walks an already parsed document.
func DecodeDocument(doc *etree.Document, t *Table, log *zap.Logger) (Node, error) {
	if doc == nil {
		return nil, errors.Newf("resource.Decode", errors.KindMalformed, "nil document")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.Newf("resource.Decode", errors.KindMalformed, "document has no root element")
	}
	return DecodeElement(root, t, log)
}

// DecodeElement decodes a single drawable element and its children.
// An element that is not a drawable yields a KindUnsupported error.
func DecodeElement(el *etree.Element, t *Table, log *zap.Logger) (Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &decoder{t: t, log: log}
	return d.drawable(el)
}

type decoder struct {
	t   *Table
	log *zap.Logger
}

func (d *decoder) drawable(el *etree.Element) (Node, error) {
	switch el.Tag {
	case "shape":
		return d.shape(el), nil
	case "layer-list":
		return LayerList{Items: d.items(el, false)}, nil
	case "ripple":
		rp := Ripple{Items: d.items(el, true)}
		if v := attrValue(el, "color"); v != "" {
			if s, err := d.solid(v); err == nil && s.ColorRef == NoID && s.ThemeAttr == "" {
				rp.Color = s.Color
			}
		}
		return rp, nil
	case "inset":
		return d.inset(el)
	case "selector":
		return d.selector(el), nil
	case "color":
		s, err := d.solid(attrValue(el, "color"))
		if err != nil {
			return nil, err
		}
		return Color{Fill: s}, nil
	default:
		return nil, errors.Newf("resource.Decode", errors.KindUnsupported, "unsupported drawable element <%s>", el.Tag)
	}
}

func (d *decoder) shape(el *etree.Element) Shape {
	var s Shape
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "solid":
			sol, err := d.solid(attrValue(child, "color"))
			if err != nil {
				d.log.Warn("Bad solid color in shape, ignoring", zap.Error(err))
				continue
			}
			s.Children = append(s.Children, sol)
		case "corners":
			s.Children = append(s.Children, Corners{Radius: d.dimension(attrValue(child, "radius"))})
		case "stroke", "gradient", "padding", "size":
			s.Children = append(s.Children, Inert{Name: child.Tag})
		default:
			d.log.Warn("Unexpected tag in shape, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}
	return s
}

func (d *decoder) items(el *etree.Element, ripple bool) []LayerItem {
	var items []LayerItem
	for _, child := range el.ChildElements() {
		if child.Tag != "item" {
			d.log.Warn("Unexpected tag in layers, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
			continue
		}
		item := LayerItem{
			Ref: d.ref(child),
			Insets: graphics.Insets{
				Left:   d.dimension(attrValue(child, "left")),
				Top:    d.dimension(attrValue(child, "top")),
				Right:  d.dimension(attrValue(child, "right")),
				Bottom: d.dimension(attrValue(child, "bottom")),
			},
		}
		if id := attrValue(child, "id"); id != "" {
			if ripple && normalizeName(id) == maskID {
				item.IsMask = true
			}
			item.ID = d.t.ID(id)
		}
		if item.Ref.IsZero() {
			d.log.Warn("Layer item has no drawable", zap.String("parent", el.Tag))
		}
		items = append(items, item)
	}
	return items
}

func (d *decoder) inset(el *etree.Element) (Node, error) {
	child := d.ref(el)
	if child.IsZero() {
		return nil, errors.Newf("resource.Decode", errors.KindMalformed,
			"<inset> requires a 'drawable' attribute or child element")
	}
	all := d.dimension(attrValue(el, "inset"))
	edge := func(key string) float64 {
		if v := attrValue(el, key); v != "" {
			return d.dimension(v)
		}
		return all
	}
	return Inset{
		Insets: graphics.Insets{
			Left:   edge("insetLeft"),
			Top:    edge("insetTop"),
			Right:  edge("insetRight"),
			Bottom: edge("insetBottom"),
		},
		Child: child,
	}, nil
}

func (d *decoder) selector(el *etree.Element) StateSelector {
	var sel StateSelector
	for _, child := range el.ChildElements() {
		if child.Tag != "item" {
			d.log.Warn("Unexpected tag in selector, ignoring", zap.String("tag", child.Tag))
			continue
		}
		entry := StateEntry{Ref: d.ref(child)}
		for _, attr := range child.Attr {
			name, ok := strings.CutPrefix(attr.Key, "state_")
			if !ok {
				continue
			}
			st, known := StateByName(name)
			if !known {
				d.log.Debug("Unknown selector state, ignoring", zap.String("state", attr.Key))
				continue
			}
			if on, _ := strconv.ParseBool(attr.Value); on {
				entry.States.On |= st
			} else {
				entry.States.Off |= st
			}
		}
		sel.Entries = append(sel.Entries, entry)
	}
	return sel
}

// ref reads the drawable of an item or inset: the android:drawable
// attribute if present, otherwise the first child element.
func (d *decoder) ref(el *etree.Element) Ref {
	if v := attrValue(el, "drawable"); v != "" {
		return RefID(d.t.ID(v))
	}
	for _, child := range el.ChildElements() {
		n, err := d.drawable(child)
		if err != nil {
			d.log.Warn("Unable to decode inline drawable", zap.String("tag", child.Tag), zap.Error(err))
			return Ref{}
		}
		return RefNode(n)
	}
	return Ref{}
}

func (d *decoder) solid(v string) (Solid, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return Solid{}, errors.Newf("resource.Decode", errors.KindMalformed, "missing color")
	case strings.HasPrefix(v, "?"):
		return Solid{ThemeAttr: normalizeAttr(v)}, nil
	case strings.HasPrefix(v, "@"):
		return Solid{ColorRef: d.t.ID(v)}, nil
	}
	c, err := graphics.ParseColor(v)
	if err != nil {
		return Solid{}, errors.New("resource.Decode", errors.KindMalformed, err)
	}
	return Solid{Color: c}, nil
}

// dimension parses "4dp", "4dip", "4px", "4sp" or a bare number into pixels.
// Malformed values decode as 0.
func (d *decoder) dimension(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	scale := 1.0
	for _, unit := range []string{"dip", "dp", "sp"} {
		if s, ok := strings.CutSuffix(v, unit); ok {
			v, scale = s, d.t.Density
			break
		}
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		d.log.Debug("Bad dimension, using 0", zap.String("value", v), zap.Error(err))
		return 0
	}
	return f * scale
}

// attrValue returns an attribute in the android namespace, falling back to
// the unprefixed key.
func attrValue(el *etree.Element, key string) string {
	for _, attr := range el.Attr {
		if attr.Key == key && (attr.Space == "android" || strings.HasSuffix(attr.NamespaceURI(), "/android")) {
			return attr.Value
		}
	}
	return el.SelectAttrValue(key, "")
}
