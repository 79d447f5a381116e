// Package sprites provides stock drawable components: solid shapes and
// image sprites. They are the usual building blocks for page content.
package sprites

import (
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
)

// RectShape is a filled or stroked rectangle.
type RectShape struct {
	scene.ComponentBase

	Rect  rendering.Rect
	Paint rendering.Paint
}

// NewRectShape creates a rectangle component.
func NewRectShape(rect rendering.Rect, paint rendering.Paint) *RectShape {
	s := &RectShape{Rect: rect, Paint: paint}
	scene.Bind(s)
	return s
}

// Render draws the rectangle.
func (s *RectShape) Render(canvas rendering.Canvas) {
	canvas.DrawRect(s.Rect, s.Paint)
}

// Contains reports whether the point lies inside the rectangle.
func (s *RectShape) Contains(point rendering.Offset) bool {
	return s.Rect.Contains(point)
}

// CircleShape is a filled or stroked circle.
type CircleShape struct {
	scene.ComponentBase

	Center rendering.Offset
	Radius float64
	Paint  rendering.Paint
}

// NewCircleShape creates a circle component.
func NewCircleShape(center rendering.Offset, radius float64, paint rendering.Paint) *CircleShape {
	s := &CircleShape{Center: center, Radius: radius, Paint: paint}
	scene.Bind(s)
	return s
}

// Render draws the circle.
func (s *CircleShape) Render(canvas rendering.Canvas) {
	canvas.DrawCircle(s.Center, s.Radius, s.Paint)
}

// Contains reports whether the point lies inside the circle.
func (s *CircleShape) Contains(point rendering.Offset) bool {
	return s.Center.Distance(point) <= s.Radius
}
