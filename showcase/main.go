// Command showcase renders a small navigation demo headlessly and writes
// the resulting frame to showcase.png.
package main

import (
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	"github.com/go-tide/tide/pkg/effects"
	"github.com/go-tide/tide/pkg/engine"
	"github.com/go-tide/tide/pkg/navigation"
	"github.com/go-tide/tide/pkg/raster"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
	"github.com/go-tide/tide/pkg/sprites"
)

const (
	frameWidth  = 320.0
	frameHeight = 240.0
)

// spinner is a circle that orbits the frame center while updates flow.
type spinner struct {
	scene.ComponentBase
	angle float64
}

func newSpinner() *spinner {
	s := &spinner{}
	scene.Bind(s)
	return s
}

func (s *spinner) Update(dt time.Duration) {
	s.angle += dt.Seconds() * math.Pi
}

func (s *spinner) Render(canvas rendering.Canvas) {
	center := rendering.Offset{
		X: frameWidth/2 + 60*math.Cos(s.angle),
		Y: frameHeight/2 + 60*math.Sin(s.angle),
	}
	canvas.DrawCircle(center, 12, rendering.FillPaint(rendering.ColorGreen))
}

func buildGame() scene.Component {
	page := scene.NewGroup()
	page.Add(sprites.NewRectShape(
		rendering.RectFromLTWH(0, 0, frameWidth, frameHeight),
		rendering.FillPaint(rendering.RGB(20, 24, 48)),
	))
	page.Add(newSpinner())
	return page
}

func buildPauseOverlay() scene.Component {
	page := scene.NewGroup()
	page.Add(sprites.NewRectShape(
		rendering.RectFromLTWH(60, 70, 200, 100),
		rendering.FillPaint(rendering.ColorBlack.WithAlpha(0xB0)),
	))
	page.Add(sprites.NewCircleShape(
		rendering.Offset{X: frameWidth / 2, Y: frameHeight / 2}, 24,
		rendering.FillPaint(rendering.ColorWhite),
	))
	return page
}

func main() {
	game := navigation.NewPageRoute(navigation.RouteConfig{
		Builder:       buildGame,
		MaintainState: true,
	})
	pause := navigation.NewPageRoute(navigation.RouteConfig{
		Builder:     buildPauseOverlay,
		Transparent: true,
		OnPush:      func(previous navigation.Route) { game.StopTime() },
		OnPop:       func(next navigation.Route) { game.ResumeTime() },
	})

	router := navigation.NewRouter(navigation.RouterConfig{
		Routes: map[string]navigation.Route{
			"game":  game,
			"pause": pause,
		},
		InitialRoute: "game",
	})

	eng := engine.New(engine.Config{
		Size: rendering.Size{Width: frameWidth, Height: frameHeight},
	})
	root := scene.NewGroup()
	eng.SetRoot(root)
	root.Add(router)

	// Let the game run, then pause it under a dimmed overlay.
	for i := 0; i < 30; i++ {
		eng.Tick(16 * time.Millisecond)
	}
	router.Push("pause")
	pause.AddRenderEffect(effects.Opacity{Alpha: 0.9})

	// Updates are frozen while paused; these ticks change nothing.
	for i := 0; i < 30; i++ {
		eng.Tick(16 * time.Millisecond)
	}

	frame := eng.Frame()
	img := raster.Rasterize(frame, 1)

	out, err := os.Create("showcase.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote showcase.png (%d ops, %d frames)\n", frame.Len(), eng.Stats().Frames)
}
