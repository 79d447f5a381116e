package engine

import (
	"context"
	"testing"
	"time"

	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
)

// counter is a square that counts its update ticks.
type counter struct {
	scene.ComponentBase
	rect    rendering.Rect
	updates int
	panicV  any
}

func newCounter(rect rendering.Rect) *counter {
	c := &counter{rect: rect}
	scene.Bind(c)
	return c
}

func (c *counter) Update(dt time.Duration) {
	if c.panicV != nil {
		panic(c.panicV)
	}
	c.updates++
}

func (c *counter) Render(canvas rendering.Canvas) {
	canvas.DrawRect(c.rect, rendering.FillPaint(rendering.ColorBlue))
}

func (c *counter) Contains(point rendering.Offset) bool {
	return c.rect.Contains(point)
}

func TestEngine_TickUpdatesTree(t *testing.T) {
	eng := New(Config{Size: rendering.Size{Width: 100, Height: 100}})
	root := scene.NewGroup()
	eng.SetRoot(root)
	c := newCounter(rendering.RectFromLTWH(0, 0, 10, 10))
	root.Add(c)

	eng.Tick(16 * time.Millisecond)
	eng.Tick(16 * time.Millisecond)

	if c.updates != 2 {
		t.Fatalf("expected 2 updates, got %d", c.updates)
	}
}

func TestEngine_TickWithoutRootIsNoOp(t *testing.T) {
	eng := New(Config{})
	eng.Tick(16 * time.Millisecond)
	if eng.Root() != nil {
		t.Fatal("engine should start with no root")
	}
}

func TestEngine_FrameRecordsDisplayList(t *testing.T) {
	size := rendering.Size{Width: 100, Height: 100}
	eng := New(Config{Size: size})
	root := scene.NewGroup()
	eng.SetRoot(root)
	root.Add(newCounter(rendering.RectFromLTWH(0, 0, 10, 10)))
	root.Add(newCounter(rendering.RectFromLTWH(20, 20, 10, 10)))

	frame := eng.Frame()
	if frame.Len() != 2 {
		t.Fatalf("expected 2 draw ops, got %d", frame.Len())
	}
	if frame.Size() != size {
		t.Fatalf("expected frame size %v, got %v", size, frame.Size())
	}

	eng.Frame()
	stats := eng.Stats()
	if stats.Frames != 2 {
		t.Fatalf("expected 2 frames produced, got %d", stats.Frames)
	}
}

func TestEngine_HitTestTopmostFirst(t *testing.T) {
	eng := New(Config{Size: rendering.Size{Width: 100, Height: 100}})
	root := scene.NewGroup()
	eng.SetRoot(root)
	under := newCounter(rendering.RectFromLTWH(0, 0, 50, 50))
	over := newCounter(rendering.RectFromLTWH(0, 0, 50, 50))
	root.Add(under)
	root.Add(over)

	result := eng.HitTest(rendering.Offset{X: 10, Y: 10})
	if result.Top() != scene.Component(over) {
		t.Fatal("the last-added component should be the top hit")
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(result.Entries))
	}

	miss := eng.HitTest(rendering.Offset{X: 90, Y: 90})
	if !miss.IsEmpty() {
		t.Fatalf("expected no hits, got %d", len(miss.Entries))
	}
}

// captureHandler records reported errors.
type captureHandler struct {
	reported []*errors.TideError
}

func (h *captureHandler) HandleError(err *errors.TideError) {
	h.reported = append(h.reported, err)
}

func TestEngine_TickRecoversRuntimePanics(t *testing.T) {
	capture := &captureHandler{}
	previous := errors.SetHandler(capture)
	defer errors.SetHandler(previous)

	eng := New(Config{})
	root := scene.NewGroup()
	eng.SetRoot(root)
	broken := newCounter(rendering.Rect{})
	broken.panicV = "index out of range"
	root.Add(broken)

	eng.Tick(16 * time.Millisecond)

	if len(capture.reported) != 1 {
		t.Fatalf("expected one reported error, got %d", len(capture.reported))
	}
	if capture.reported[0].Kind != errors.KindPanic {
		t.Fatalf("expected a panic report, got %v", capture.reported[0].Kind)
	}
}

func TestEngine_TickReRaisesProtocolErrors(t *testing.T) {
	eng := New(Config{})
	root := scene.NewGroup()
	eng.SetRoot(root)
	broken := newCounter(rendering.Rect{})
	broken.panicV = errors.Protocolf("test", "lifecycle misuse")
	root.Add(broken)

	defer func() {
		v := recover()
		te, ok := v.(*errors.TideError)
		if !ok || te.Kind != errors.KindProtocol {
			t.Fatalf("protocol errors must escape the tick loop, got %v", v)
		}
	}()
	eng.Tick(16 * time.Millisecond)
}

func TestEngine_RunRejectsNonPositiveFPS(t *testing.T) {
	eng := New(Config{})
	err := eng.Run(context.Background(), 0)
	te, ok := err.(*errors.TideError)
	if !ok || te.Kind != errors.KindConfig {
		t.Fatalf("expected a configuration error, got %v", err)
	}
}

func TestEngine_RunProducesFramesUntilCanceled(t *testing.T) {
	frames := 0
	eng := New(Config{
		Size:    rendering.Size{Width: 10, Height: 10},
		OnFrame: func(frame *rendering.DisplayList) { frames++ },
	})
	root := scene.NewGroup()
	eng.SetRoot(root)
	root.Add(newCounter(rendering.RectFromLTWH(0, 0, 5, 5)))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := eng.Run(ctx, 100)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if frames == 0 {
		t.Fatal("expected at least one frame before cancellation")
	}
}
