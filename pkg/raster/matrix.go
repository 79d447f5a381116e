package raster

import (
	"math"

	"github.com/go-tide/tide/pkg/rendering"
)

// matrix is a 2D affine transform:
//
//	| a c tx |
//	| b d ty |
type matrix struct {
	a, b, c, d, tx, ty float64
}

func identity() matrix {
	return matrix{a: 1, d: 1}
}

// concat returns the transform that applies other first, then m.
func (m matrix) concat(other matrix) matrix {
	return matrix{
		a:  m.a*other.a + m.c*other.b,
		b:  m.b*other.a + m.d*other.b,
		c:  m.a*other.c + m.c*other.d,
		d:  m.b*other.c + m.d*other.d,
		tx: m.a*other.tx + m.c*other.ty + m.tx,
		ty: m.b*other.tx + m.d*other.ty + m.ty,
	}
}

func translation(dx, dy float64) matrix {
	return matrix{a: 1, d: 1, tx: dx, ty: dy}
}

func scaling(sx, sy float64) matrix {
	return matrix{a: sx, d: sy}
}

func rotation(radians float64) matrix {
	sin, cos := math.Sincos(radians)
	return matrix{a: cos, b: sin, c: -sin, d: cos}
}

func (m matrix) apply(p rendering.Offset) rendering.Offset {
	return rendering.Offset{
		X: m.a*p.X + m.c*p.Y + m.tx,
		Y: m.b*p.X + m.d*p.Y + m.ty,
	}
}
