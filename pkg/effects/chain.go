// Package effects provides render-time decorators that wrap a subtree's
// visual output.
//
// A [Decorator] transforms how an inner draw callback paints onto a canvas,
// typically by adjusting the transform or compositing state around it. A
// [Chain] holds an ordered sequence of decorators where the most recently
// added decorator is outermost: it wraps all earlier ones and sees the fully
// composited inner result.
package effects

import (
	"github.com/go-tide/tide/pkg/rendering"
)

// Decorator wraps the rendering of an inner draw callback.
//
// Apply must invoke draw exactly once, passing the canvas the inner content
// should paint onto, and must leave the canvas state balanced (every Save
// matched by a Restore).
type Decorator interface {
	Apply(canvas rendering.Canvas, draw func(rendering.Canvas))
}

// Chain is an ordered sequence of decorators. The zero value is an empty
// chain, ready to use.
type Chain struct {
	decorators []Decorator
}

// Add appends a decorator to the chain. The new decorator becomes the
// outermost wrapper.
func (c *Chain) Add(d Decorator) {
	c.decorators = append(c.decorators, d)
}

// RemoveLast removes the most recently added decorator. Removing from an
// empty chain is a no-op.
func (c *Chain) RemoveLast() {
	if len(c.decorators) == 0 {
		return
	}
	c.decorators = c.decorators[:len(c.decorators)-1]
}

// Len returns the number of decorators in the chain.
func (c *Chain) Len() int {
	return len(c.decorators)
}

// Apply renders draw through the chain, outermost-last: the decorator added
// most recently executes around all the others. An empty chain invokes draw
// directly.
func (c *Chain) Apply(canvas rendering.Canvas, draw func(rendering.Canvas)) {
	c.applyFrom(len(c.decorators)-1, canvas, draw)
}

func (c *Chain) applyFrom(index int, canvas rendering.Canvas, draw func(rendering.Canvas)) {
	if index < 0 {
		draw(canvas)
		return
	}
	c.decorators[index].Apply(canvas, func(inner rendering.Canvas) {
		c.applyFrom(index-1, inner, draw)
	})
}
