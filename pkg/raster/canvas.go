// Package raster renders display lists into RGBA images in software.
//
// The canvas supports the shape and transform subset of [rendering.Canvas]
// needed for headless output and snapshot tests. Two approximations apply:
// SaveLayerAlpha modulates per-draw alpha rather than compositing a real
// layer, and curved shapes are sampled into polygons before filling.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"

	"github.com/go-tide/tide/pkg/rendering"
)

// circleSegments is the polygon resolution used for circles and corner arcs.
const circleSegments = 64

// Rasterize replays a display list into a new RGBA image at the given scale.
func Rasterize(list *rendering.DisplayList, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	size := list.Size()
	width := int(math.Ceil(size.Width * scale))
	height := int(math.Ceil(size.Height * scale))
	canvas := NewCanvas(width, height)
	canvas.Scale(scale, scale)
	list.Paint(canvas)
	return canvas.Image()
}

type state struct {
	ctm   matrix
	clip  image.Rectangle
	alpha float64
}

// Canvas is a software implementation of rendering.Canvas.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
	stack  []state
}

// NewCanvas creates a canvas backed by a transparent RGBA image.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Canvas{
		img:    img,
		width:  width,
		height: height,
		stack: []state{{
			ctm:   identity(),
			clip:  img.Bounds(),
			alpha: 1,
		}},
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) top() *state {
	return &c.stack[len(c.stack)-1]
}

// Save pushes the current transform, clip and alpha state.
func (c *Canvas) Save() {
	c.stack = append(c.stack, *c.top())
}

// SaveLayerAlpha pushes state with the layer opacity folded into per-draw
// alpha modulation. Bounds are honored as a clip when non-empty.
func (c *Canvas) SaveLayerAlpha(bounds rendering.Rect, alpha float64) {
	c.Save()
	top := c.top()
	top.alpha *= math.Max(0, math.Min(1, alpha))
	if !bounds.IsEmpty() {
		c.ClipRect(bounds)
	}
}

// Restore pops the most recent state. Restoring past the base state is a
// no-op.
func (c *Canvas) Restore() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// Translate moves the origin.
func (c *Canvas) Translate(dx, dy float64) {
	top := c.top()
	top.ctm = top.ctm.concat(translation(dx, dy))
}

// Scale scales the coordinate system.
func (c *Canvas) Scale(sx, sy float64) {
	top := c.top()
	top.ctm = top.ctm.concat(scaling(sx, sy))
}

// Rotate rotates the coordinate system by radians.
func (c *Canvas) Rotate(radians float64) {
	top := c.top()
	top.ctm = top.ctm.concat(rotation(radians))
}

// ClipRect intersects the clip with the device-space bounding box of rect.
func (c *Canvas) ClipRect(rect rendering.Rect) {
	top := c.top()
	corners := rectCorners(rect)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range corners {
		p := top.ctm.apply(corner)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	device := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	top.clip = top.clip.Intersect(device)
}

// Clear fills the current clip region with the given color.
func (c *Canvas) Clear(col rendering.Color) {
	clip := c.top().clip
	if clip.Empty() {
		return
	}
	draw.Draw(c.img, clip, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// DrawRect fills or strokes a rectangle.
func (c *Canvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	corners := rectCorners(rect)
	switch paint.Style {
	case rendering.PaintStyleStroke:
		c.strokePolygon(corners, true, paint)
	default:
		c.fillPolygon(corners, paint.Color)
	}
}

// DrawRRect fills or strokes a rounded rectangle, sampling the corner arcs.
func (c *Canvas) DrawRRect(rrect rendering.RRect, paint rendering.Paint) {
	points := rrectOutline(rrect)
	switch paint.Style {
	case rendering.PaintStyleStroke:
		c.strokePolygon(points, true, paint)
	default:
		c.fillPolygon(points, paint.Color)
	}
}

// DrawCircle fills or strokes a circle sampled as a polygon.
func (c *Canvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	if radius <= 0 {
		return
	}
	points := make([]rendering.Offset, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		sin, cos := math.Sincos(angle)
		points = append(points, rendering.Offset{
			X: center.X + radius*cos,
			Y: center.Y + radius*sin,
		})
	}
	switch paint.Style {
	case rendering.PaintStyleStroke:
		c.strokePolygon(points, true, paint)
	default:
		c.fillPolygon(points, paint.Color)
	}
}

// DrawLine strokes a line segment.
func (c *Canvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	c.strokeSegment(start, end, paint)
}

// DrawImage composites an image under the current transform using bilinear
// sampling. Layer alpha is not applied to images.
func (c *Canvas) DrawImage(img image.Image, position rendering.Offset) {
	if img == nil {
		return
	}
	top := c.top()
	m := top.ctm.concat(translation(position.X, position.Y))
	aff := f64.Aff3{m.a, m.c, m.tx, m.b, m.d, m.ty}
	xdraw.ApproxBiLinear.Transform(c.img, aff, img, img.Bounds(), xdraw.Over, nil)
}

// fillPolygon fills a closed polygon given in local coordinates.
func (c *Canvas) fillPolygon(points []rendering.Offset, col rendering.Color) {
	top := c.top()
	if top.clip.Empty() || len(points) < 3 {
		return
	}

	scanner := rasterx.NewScannerGV(c.width, c.height, c.img, top.clip)
	filler := rasterx.NewFiller(c.width, c.height, scanner)
	filler.SetColor(c.modulated(col))

	filler.Start(toFixed(top.ctm.apply(points[0])))
	for _, p := range points[1:] {
		filler.Line(toFixed(top.ctm.apply(p)))
	}
	filler.Stop(true)
	filler.Draw()
}

// strokePolygon strokes the edges of a polygon as filled quads.
func (c *Canvas) strokePolygon(points []rendering.Offset, closed bool, paint rendering.Paint) {
	n := len(points)
	if n < 2 {
		return
	}
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		c.strokeSegment(points[i], points[(i+1)%n], paint)
	}
}

// strokeSegment fills a quad spanning the segment with the paint's stroke
// width (minimum one pixel).
func (c *Canvas) strokeSegment(start, end rendering.Offset, paint rendering.Paint) {
	width := paint.StrokeWidth
	if width < 1 {
		width = 1
	}
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular half-width offset.
	px := -dy / length * width / 2
	py := dx / length * width / 2

	quad := []rendering.Offset{
		{X: start.X + px, Y: start.Y + py},
		{X: end.X + px, Y: end.Y + py},
		{X: end.X - px, Y: end.Y - py},
		{X: start.X - px, Y: start.Y - py},
	}
	c.fillPolygon(quad, paint.Color)
}

// modulated applies the layer alpha to a color.
func (c *Canvas) modulated(col rendering.Color) color.Color {
	nrgba := col.NRGBA()
	alpha := c.top().alpha
	if alpha < 1 {
		nrgba.A = uint8(float64(nrgba.A) * alpha)
	}
	return nrgba
}

func toFixed(p rendering.Offset) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

func rectCorners(rect rendering.Rect) []rendering.Offset {
	return []rendering.Offset{
		{X: rect.Left, Y: rect.Top},
		{X: rect.Right, Y: rect.Top},
		{X: rect.Right, Y: rect.Bottom},
		{X: rect.Left, Y: rect.Bottom},
	}
}

// rrectOutline samples a rounded rectangle into a polygon outline.
func rrectOutline(rrect rendering.RRect) []rendering.Offset {
	rect := rrect.Rect
	const perCorner = circleSegments / 4

	corner := func(cx, cy float64, radius rendering.Radius, startAngle float64) []rendering.Offset {
		if radius.X <= 0 || radius.Y <= 0 {
			return []rendering.Offset{{X: cx, Y: cy}}
		}
		pts := make([]rendering.Offset, 0, perCorner+1)
		for i := 0; i <= perCorner; i++ {
			angle := startAngle + (math.Pi/2)*float64(i)/perCorner
			pts = append(pts, rendering.Offset{
				X: cx + radius.X*math.Cos(angle),
				Y: cy + radius.Y*math.Sin(angle),
			})
		}
		return pts
	}

	var points []rendering.Offset
	// Arc centers, clockwise from top-left.
	points = append(points, corner(rect.Left+rrect.TopLeft.X, rect.Top+rrect.TopLeft.Y, rrect.TopLeft, math.Pi)...)
	points = append(points, corner(rect.Right-rrect.TopRight.X, rect.Top+rrect.TopRight.Y, rrect.TopRight, 1.5*math.Pi)...)
	points = append(points, corner(rect.Right-rrect.BottomRight.X, rect.Bottom-rrect.BottomRight.Y, rrect.BottomRight, 0)...)
	points = append(points, corner(rect.Left+rrect.BottomLeft.X, rect.Bottom-rrect.BottomLeft.Y, rrect.BottomLeft, 0.5*math.Pi)...)
	return points
}
