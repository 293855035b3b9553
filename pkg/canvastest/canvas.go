// Package canvastest provides a graphics.Canvas that records every call as a
// comparable DisplayOp, for asserting what a drawable drew.
package canvastest

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-drift/elevation/pkg/graphics"
)

// DisplayOp is a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// String renders the op with its params in key order.
func (o DisplayOp) String() string {
	if len(o.Params) == 0 {
		return o.Op
	}
	parts := make([]string, 0, len(o.Params))
	for _, k := range sortedKeys(o.Params) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, o.Params[k]))
	}
	return o.Op + "(" + strings.Join(parts, " ") + ")"
}

// Canvas implements graphics.Canvas and records ops as DisplayOp. It also
// tracks the save stack so tests can assert it is balanced.
type Canvas struct {
	ops       []DisplayOp
	size      graphics.Size
	saveCount int
	maxDepth  int
}

// New returns a recording canvas of the given size.
func New(width, height float64) *Canvas {
	return &Canvas{size: graphics.Size{Width: width, Height: height}, saveCount: 1}
}

func (c *Canvas) Save() int {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
	n := c.saveCount
	c.saveCount++
	if c.saveCount-1 > c.maxDepth {
		c.maxDepth = c.saveCount - 1
	}
	return n
}

func (c *Canvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
	if c.saveCount > 1 {
		c.saveCount--
	}
}

func (c *Canvas) RestoreToCount(count int) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "restoreToCount",
		Params: sortedMap("count", count),
	})
	if count < 1 {
		count = 1
	}
	if count < c.saveCount {
		c.saveCount = count
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *Canvas) Rotate(radians float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "rotate",
		Params: sortedMap("degrees", round2(radians*180/math.Pi)),
	})
}

func (c *Canvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	params := serializePaint(paint)
	params["rect"] = serializeRect(rect)
	c.ops = append(c.ops, DisplayOp{Op: "drawRect", Params: params})
}

func (c *Canvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	params := serializePaint(paint)
	params["rect"] = serializeRect(rrect.Rect)
	params["radius"] = round2(rrect.Radius)
	c.ops = append(c.ops, DisplayOp{Op: "drawRRect", Params: params})
}

func (c *Canvas) DrawPath(path *graphics.Path, paint graphics.Paint) {
	params := serializePaint(paint)
	if path != nil {
		params["bounds"] = serializeRect(path.Bounds())
		params["fillRule"] = path.FillRule.String()
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawPath", Params: params})
}

func (c *Canvas) Size() graphics.Size {
	return c.size
}

// Ops returns the recorded operations.
func (c *Canvas) Ops() []DisplayOp {
	return c.ops
}

// Names returns the op names in recording order.
func (c *Canvas) Names() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

// Count returns how many ops with the given name were recorded.
func (c *Canvas) Count(op string) int {
	n := 0
	for _, o := range c.ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the ops with the given name.
func (c *Canvas) Filter(op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range c.ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// SaveCount returns the current depth of the save stack, starting at 1.
func (c *Canvas) SaveCount() int {
	return c.saveCount
}

// MaxDepth returns the deepest save level reached.
func (c *Canvas) MaxDepth() int {
	return c.maxDepth
}

// Reset drops all recorded ops.
func (c *Canvas) Reset() {
	c.ops = c.ops[:0]
	c.saveCount = 1
	c.maxDepth = 0
}

func serializePaint(p graphics.Paint) map[string]any {
	m := sortedMap(
		"color", serializeColor(p.Color),
		"alpha", round2(p.Alpha),
	)
	if p.Gradient != nil {
		m["gradient"] = p.Gradient.Shading.String()
	}
	return m
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
