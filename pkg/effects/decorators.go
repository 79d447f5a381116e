package effects

import (
	"github.com/go-tide/tide/pkg/rendering"
)

// Opacity composites the inner content with a uniform alpha.
type Opacity struct {
	// Alpha is the opacity from 0.0 (invisible) to 1.0 (opaque).
	Alpha float64

	// Bounds limits the composited layer. A zero rect composites the
	// inner content without explicit bounds.
	Bounds rendering.Rect
}

// Apply draws the inner content into an alpha-composited layer.
func (o Opacity) Apply(canvas rendering.Canvas, draw func(rendering.Canvas)) {
	canvas.SaveLayerAlpha(o.Bounds, o.Alpha)
	draw(canvas)
	canvas.Restore()
}

// Transform2D applies translate/rotate/scale around an anchor point.
type Transform2D struct {
	Translation rendering.Offset
	Rotation    float64 // radians
	ScaleX      float64 // 0 is treated as 1
	ScaleY      float64 // 0 is treated as 1
	Anchor      rendering.Offset
}

// Apply draws the inner content under the configured transform.
func (t Transform2D) Apply(canvas rendering.Canvas, draw func(rendering.Canvas)) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	canvas.Save()
	canvas.Translate(t.Translation.X+t.Anchor.X, t.Translation.Y+t.Anchor.Y)
	if t.Rotation != 0 {
		canvas.Rotate(t.Rotation)
	}
	if sx != 1 || sy != 1 {
		canvas.Scale(sx, sy)
	}
	canvas.Translate(-t.Anchor.X, -t.Anchor.Y)
	draw(canvas)
	canvas.Restore()
}

// Clip restricts the inner content to a rectangle.
type Clip struct {
	Rect rendering.Rect
}

// Apply draws the inner content clipped to the rect.
func (c Clip) Apply(canvas rendering.Canvas, draw func(rendering.Canvas)) {
	canvas.Save()
	canvas.ClipRect(c.Rect)
	draw(canvas)
	canvas.Restore()
}
