// Package graphics defines the drawing primitives shared by the shadow
// engine and its backends.
package graphics

// Canvas is the paint surface shadows and backgrounds draw on. Only
// transforms and filled shapes are needed; there is no clipping.
type Canvas interface {
	// Save pushes the transform and returns the depth before the push, for
	// use with RestoreToCount.
	Save() int
	Restore()
	// RestoreToCount pops until the depth equals count.
	RestoreToCount(count int)

	Translate(dx, dy float64)
	Rotate(radians float64)

	DrawRect(rect Rect, paint Paint)
	DrawRRect(rrect RRect, paint Paint)
	// DrawPath fills path with its own fill rule.
	DrawPath(path *Path, paint Paint)

	// Size is the surface size in pixels.
	Size() Size
}
