package effects

import (
	"testing"

	"github.com/go-tide/tide/pkg/rendering"
	ttesting "github.com/go-tide/tide/pkg/testing"
)

func assertOps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("op %d: expected %q, got %q (full trace %v)", i, want[i], got[i], got)
		}
	}
}

func TestChain_EmptyInvokesDrawDirectly(t *testing.T) {
	var chain Chain
	canvas := &ttesting.RecordingCanvas{}

	calls := 0
	chain.Apply(canvas, func(inner rendering.Canvas) {
		calls++
		if inner != rendering.Canvas(canvas) {
			t.Fatal("empty chain should pass the canvas through unchanged")
		}
	})
	if calls != 1 {
		t.Fatalf("draw should run exactly once, ran %d times", calls)
	}
	if len(canvas.Ops) != 0 {
		t.Fatalf("empty chain should emit nothing, got %v", canvas.Ops)
	}
}

func TestChain_LastAddedIsOutermost(t *testing.T) {
	var chain Chain
	chain.Add(Clip{Rect: rendering.RectFromLTWH(0, 0, 10, 10)})
	chain.Add(Opacity{Alpha: 0.5})

	canvas := &ttesting.RecordingCanvas{}
	chain.Apply(canvas, func(inner rendering.Canvas) {
		inner.DrawRect(rendering.RectFromLTWH(1, 1, 2, 2), rendering.FillPaint(rendering.ColorRed))
	})

	assertOps(t, canvas.Ops, []string{
		"saveLayerAlpha(0.50)",
		"save",
		"clipRect(0,0,10,10)",
		"drawRect(1,1,3,3)",
		"restore",
		"restore",
	})
}

func TestChain_RemoveLast(t *testing.T) {
	var chain Chain
	chain.Add(Clip{Rect: rendering.RectFromLTWH(0, 0, 10, 10)})
	chain.Add(Opacity{Alpha: 0.5})
	if chain.Len() != 2 {
		t.Fatalf("expected 2 decorators, got %d", chain.Len())
	}

	chain.RemoveLast()
	if chain.Len() != 1 {
		t.Fatalf("expected 1 decorator, got %d", chain.Len())
	}

	canvas := &ttesting.RecordingCanvas{}
	chain.Apply(canvas, func(inner rendering.Canvas) {})
	assertOps(t, canvas.Ops, []string{"save", "clipRect(0,0,10,10)", "restore"})

	chain.RemoveLast()
	chain.RemoveLast()
	if chain.Len() != 0 {
		t.Fatalf("expected empty chain, got %d", chain.Len())
	}
}

func TestTransform2D_AnchoredRotation(t *testing.T) {
	tr := Transform2D{
		Rotation: 1.5,
		Anchor:   rendering.Offset{X: 10, Y: 20},
	}

	canvas := &ttesting.RecordingCanvas{}
	tr.Apply(canvas, func(inner rendering.Canvas) {
		inner.DrawCircle(rendering.Offset{}, 5, rendering.FillPaint(rendering.ColorWhite))
	})

	assertOps(t, canvas.Ops, []string{
		"save",
		"translate(10,20)",
		"rotate(1.5)",
		"translate(-10,-20)",
		"drawCircle(0,0,r=5)",
		"restore",
	})
}

func TestTransform2D_ZeroScaleMeansIdentity(t *testing.T) {
	tr := Transform2D{
		Translation: rendering.Offset{X: 5, Y: 5},
		Anchor:      rendering.Offset{X: 1, Y: 1},
	}

	canvas := &ttesting.RecordingCanvas{}
	tr.Apply(canvas, func(inner rendering.Canvas) {})

	// No scale or rotate ops for the zero value.
	assertOps(t, canvas.Ops, []string{
		"save",
		"translate(6,6)",
		"translate(-1,-1)",
		"restore",
	})
}
