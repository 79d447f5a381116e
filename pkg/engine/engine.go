// Package engine drives the Tide scene tree: it ticks updates, records
// frames into display lists, and answers hit-test queries.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
)

// Config configures an Engine.
type Config struct {
	// Size is the logical frame size recorded into display lists.
	Size rendering.Size

	// OnFrame receives each display list produced by Run. Optional; Frame
	// can also be called directly.
	OnFrame func(frame *rendering.DisplayList)
}

// Engine owns the root component and the per-tick traversals.
type Engine struct {
	cfg      Config
	root     scene.Component
	recorder rendering.PictureRecorder

	frames        atomic.Uint64
	lastFrameTime atomic.Duration
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// SetRoot installs the root component. The root is bound so its traversal
// overrides dispatch correctly.
func (e *Engine) SetRoot(root scene.Component) {
	scene.Bind(root)
	e.root = root
}

// Root returns the current root component, or nil.
func (e *Engine) Root() scene.Component {
	return e.root
}

// Tick advances the tree by dt. Panics from component updates are recovered
// and reported, keeping one broken component from killing the loop.
func (e *Engine) Tick(dt time.Duration) {
	if e.root == nil {
		return
	}
	defer e.recoverPanic("engine.Engine.Tick")
	e.root.UpdateTree(dt)
}

// Frame records the tree into a display list.
func (e *Engine) Frame() *rendering.DisplayList {
	start := time.Now()
	canvas := e.recorder.BeginRecording(e.cfg.Size)
	if e.root != nil {
		func() {
			defer e.recoverPanic("engine.Engine.Frame")
			e.root.RenderTree(canvas)
		}()
	}
	frame := e.recorder.EndRecording()

	e.frames.Inc()
	e.lastFrameTime.Store(time.Since(start))
	return frame
}

// HitTest returns the components under the given point, topmost first.
func (e *Engine) HitTest(point rendering.Offset) *scene.HitTestResult {
	result := &scene.HitTestResult{}
	if e.root != nil {
		e.root.ComponentsAt(point, result)
	}
	return result
}

// Stats is a snapshot of engine counters.
type Stats struct {
	// Frames is the total number of frames produced.
	Frames uint64

	// LastFrameDuration is how long the most recent Frame call took.
	LastFrameDuration time.Duration
}

// Stats returns current engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:            e.frames.Load(),
		LastFrameDuration: e.lastFrameTime.Load(),
	}
}

// Run drives the tick/frame loop at the given rate until ctx is canceled.
func (e *Engine) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		return errors.Configf("engine.Engine.Run", "fps must be positive, got %d", fps)
	}

	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.Tick(now.Sub(last))
			last = now
			frame := e.Frame()
			if e.cfg.OnFrame != nil {
				e.cfg.OnFrame(frame)
			}
		}
	}
}

// recoverPanic reports recovered panics from component code. Configuration
// and protocol errors are programmer errors and are re-raised so they fail
// loudly instead of being logged away.
func (e *Engine) recoverPanic(op string) {
	v := recover()
	if v == nil {
		return
	}
	if te, ok := v.(*errors.TideError); ok &&
		(te.Kind == errors.KindConfig || te.Kind == errors.KindProtocol) {
		panic(te)
	}
	errors.Report(errors.New(op, errors.KindPanic, fmt.Errorf("recovered: %v", v)))
}
