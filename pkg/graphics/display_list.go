package graphics

import "slices"

// DisplayList is an immutable recording of canvas calls that can be
// replayed onto any Canvas.
type DisplayList struct {
	ops  []func(Canvas)
	size Size
}

// Paint replays the recorded calls onto canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op(canvas)
	}
}

// Size returns the size passed to BeginRecording.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded calls.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records canvas calls into a DisplayList.
type PictureRecorder struct {
	ops       []func(Canvas)
	recording bool
	size      Size
}

// BeginRecording starts a new recording and returns the canvas to draw on.
// Unbalanced restores on that canvas are dropped, so the recording always
// replays with a balanced save stack.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, saveCount: 1}
}

// EndRecording finishes the recording. Without a BeginRecording it returns
// an empty list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	return &DisplayList{
		ops:  slices.Clone(r.ops),
		size: r.size,
	}
}

func (r *PictureRecorder) record(op func(Canvas)) {
	if r.recording {
		r.ops = append(r.ops, op)
	}
}

type recordingCanvas struct {
	recorder  *PictureRecorder
	saveCount int
}

func (c *recordingCanvas) Save() int {
	c.recorder.record(func(dst Canvas) { dst.Save() })
	c.saveCount++
	return c.saveCount - 1
}

func (c *recordingCanvas) Restore() {
	if c.saveCount <= 1 {
		return
	}
	c.saveCount--
	c.recorder.record(func(dst Canvas) { dst.Restore() })
}

// RestoreToCount is recorded as plain restores. Counts returned by the
// replay target may differ from the recorded ones.
func (c *recordingCanvas) RestoreToCount(count int) {
	for c.saveCount > max(count, 1) {
		c.Restore()
	}
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.record(func(dst Canvas) { dst.Translate(dx, dy) })
}

func (c *recordingCanvas) Rotate(radians float64) {
	c.recorder.record(func(dst Canvas) { dst.Rotate(radians) })
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.record(func(dst Canvas) { dst.DrawRect(rect, paint) })
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.recorder.record(func(dst Canvas) { dst.DrawRRect(rrect, paint) })
}

// DrawPath keeps a reference to path. Callers must not modify it while the
// recording is in use.
func (c *recordingCanvas) DrawPath(path *Path, paint Paint) {
	c.recorder.record(func(dst Canvas) { dst.DrawPath(path, paint) })
}

func (c *recordingCanvas) Size() Size {
	return c.recorder.size
}
