package testing

import (
	"fmt"
	"image"

	"github.com/go-tide/tide/pkg/rendering"
)

// RecordingCanvas implements rendering.Canvas and records a readable trace
// of every call, letting tests assert on draw order and wrapping structure.
type RecordingCanvas struct {
	Ops []string
}

// Reset clears the recorded operations.
func (c *RecordingCanvas) Reset() {
	c.Ops = c.Ops[:0]
}

func (c *RecordingCanvas) record(format string, args ...any) {
	c.Ops = append(c.Ops, fmt.Sprintf(format, args...))
}

func (c *RecordingCanvas) Save() {
	c.record("save")
}

func (c *RecordingCanvas) SaveLayerAlpha(bounds rendering.Rect, alpha float64) {
	c.record("saveLayerAlpha(%.2f)", alpha)
}

func (c *RecordingCanvas) Restore() {
	c.record("restore")
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.record("translate(%g,%g)", dx, dy)
}

func (c *RecordingCanvas) Scale(sx, sy float64) {
	c.record("scale(%g,%g)", sx, sy)
}

func (c *RecordingCanvas) Rotate(radians float64) {
	c.record("rotate(%g)", radians)
}

func (c *RecordingCanvas) ClipRect(rect rendering.Rect) {
	c.record("clipRect(%g,%g,%g,%g)", rect.Left, rect.Top, rect.Right, rect.Bottom)
}

func (c *RecordingCanvas) Clear(color rendering.Color) {
	c.record("clear(#%08X)", uint32(color))
}

func (c *RecordingCanvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	c.record("drawRect(%g,%g,%g,%g)", rect.Left, rect.Top, rect.Right, rect.Bottom)
}

func (c *RecordingCanvas) DrawRRect(rrect rendering.RRect, paint rendering.Paint) {
	r := rrect.Rect
	c.record("drawRRect(%g,%g,%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

func (c *RecordingCanvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	c.record("drawCircle(%g,%g,r=%g)", center.X, center.Y, radius)
}

func (c *RecordingCanvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	c.record("drawLine(%g,%g->%g,%g)", start.X, start.Y, end.X, end.Y)
}

func (c *RecordingCanvas) DrawImage(img image.Image, position rendering.Offset) {
	c.record("drawImage(%g,%g)", position.X, position.Y)
}
