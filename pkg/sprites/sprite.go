package sprites

import (
	"image"
	"io"

	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
	"github.com/go-tide/tide/pkg/svg"
)

// Sprite draws a static image at a position.
type Sprite struct {
	scene.ComponentBase

	Image    image.Image
	Position rendering.Offset
}

// NewSprite creates a sprite from an image.
func NewSprite(img image.Image, position rendering.Offset) *Sprite {
	s := &Sprite{Image: img, Position: position}
	scene.Bind(s)
	return s
}

// NewSpriteFromSVG rasterizes an SVG document and wraps it in a sprite.
func NewSpriteFromSVG(r io.Reader, width, height int, position rendering.Offset) (*Sprite, error) {
	img, err := svg.Rasterize(r, width, height)
	if err != nil {
		return nil, err
	}
	return NewSprite(img, position), nil
}

// Render draws the sprite image.
func (s *Sprite) Render(canvas rendering.Canvas) {
	if s.Image == nil {
		return
	}
	canvas.DrawImage(s.Image, s.Position)
}

// Contains reports whether the point lies within the sprite's bounds.
func (s *Sprite) Contains(point rendering.Offset) bool {
	if s.Image == nil {
		return false
	}
	bounds := s.Image.Bounds()
	rect := rendering.RectFromLTWH(
		s.Position.X, s.Position.Y,
		float64(bounds.Dx()), float64(bounds.Dy()),
	)
	return rect.Contains(point)
}
