package rendering

import "image"

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) SaveLayerAlpha(bounds Rect, alpha float64) {
	c.recorder.append(opSaveLayerAlpha{bounds: bounds, alpha: alpha})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	c.recorder.append(opScale{sx: sx, sy: sy})
}

func (c *recordingCanvas) Rotate(radians float64) {
	c.recorder.append(opRotate{radians: radians})
}

func (c *recordingCanvas) ClipRect(rect Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.append(opDrawRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.recorder.append(opDrawRRect{rrect: rrect, paint: paint})
}

func (c *recordingCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	c.recorder.append(opDrawCircle{center: center, radius: radius, paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end Offset, paint Paint) {
	c.recorder.append(opDrawLine{start: start, end: end, paint: paint})
}

func (c *recordingCanvas) DrawImage(img image.Image, position Offset) {
	c.recorder.append(opDrawImage{img: img, position: position})
}

type opSave struct{}

func (opSave) execute(canvas Canvas) { canvas.Save() }

type opSaveLayerAlpha struct {
	bounds Rect
	alpha  float64
}

func (o opSaveLayerAlpha) execute(canvas Canvas) { canvas.SaveLayerAlpha(o.bounds, o.alpha) }

type opRestore struct{}

func (opRestore) execute(canvas Canvas) { canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (o opTranslate) execute(canvas Canvas) { canvas.Translate(o.dx, o.dy) }

type opScale struct {
	sx, sy float64
}

func (o opScale) execute(canvas Canvas) { canvas.Scale(o.sx, o.sy) }

type opRotate struct {
	radians float64
}

func (o opRotate) execute(canvas Canvas) { canvas.Rotate(o.radians) }

type opClipRect struct {
	rect Rect
}

func (o opClipRect) execute(canvas Canvas) { canvas.ClipRect(o.rect) }

type opClear struct {
	color Color
}

func (o opClear) execute(canvas Canvas) { canvas.Clear(o.color) }

type opDrawRect struct {
	rect  Rect
	paint Paint
}

func (o opDrawRect) execute(canvas Canvas) { canvas.DrawRect(o.rect, o.paint) }

type opDrawRRect struct {
	rrect RRect
	paint Paint
}

func (o opDrawRRect) execute(canvas Canvas) { canvas.DrawRRect(o.rrect, o.paint) }

type opDrawCircle struct {
	center Offset
	radius float64
	paint  Paint
}

func (o opDrawCircle) execute(canvas Canvas) { canvas.DrawCircle(o.center, o.radius, o.paint) }

type opDrawLine struct {
	start, end Offset
	paint      Paint
}

func (o opDrawLine) execute(canvas Canvas) { canvas.DrawLine(o.start, o.end, o.paint) }

type opDrawImage struct {
	img      image.Image
	position Offset
}

func (o opDrawImage) execute(canvas Canvas) { canvas.DrawImage(o.img, o.position) }
