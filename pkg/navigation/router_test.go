package navigation

import (
	"testing"
	"time"

	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
	ttesting "github.com/go-tide/tide/pkg/testing"
)

func pageRoute(log *ttesting.EventLog, name string, cfg RouteConfig) *PageRoute {
	if cfg.Builder == nil {
		cfg.Builder = func() scene.Component { return newTestPage(name, log) }
	}
	return NewPageRoute(cfg)
}

func newTestRouter(log *ttesting.EventLog, names ...string) (*Router, map[string]*PageRoute) {
	routes := make(map[string]Route, len(names))
	pages := make(map[string]*PageRoute, len(names))
	for _, name := range names {
		route := pageRoute(log, name, RouteConfig{})
		routes[name] = route
		pages[name] = route
	}
	r := NewRouter(RouterConfig{Routes: routes, InitialRoute: names[0]})
	return r, pages
}

func TestRouter_InitialRoutePushedOnMount(t *testing.T) {
	log := &ttesting.EventLog{}
	router, routes := newTestRouter(log, "home", "settings")

	if router.CurrentRoute() != nil {
		t.Fatal("nothing should be pushed before the router mounts")
	}

	root := scene.NewGroup()
	root.Add(router)

	if router.CurrentRoute() != routes["home"] {
		t.Fatal("initial route should be pushed when the router mounts")
	}
	if router.StackSize() != 1 {
		t.Fatalf("expected stack size 1, got %d", router.StackSize())
	}
	if !router.HasChild(routes["home"]) {
		t.Fatal("pushed route should be attached to the router")
	}
}

func TestRouter_MissingInitialRouteIsConfigError(t *testing.T) {
	log := &ttesting.EventLog{}
	expectPanicKind(t, errors.KindConfig, func() {
		NewRouter(RouterConfig{
			Routes:       map[string]Route{"home": pageRoute(log, "home", RouteConfig{})},
			InitialRoute: "nope",
		})
	})
}

func TestRouter_PushAndPop(t *testing.T) {
	log := &ttesting.EventLog{}
	router, routes := newTestRouter(log, "home", "settings")
	scene.NewGroup().Add(router)

	router.Push("settings")
	if router.CurrentRoute() != routes["settings"] {
		t.Fatal("push should put the named route on top")
	}
	if router.PreviousRoute() != routes["home"] {
		t.Fatal("previous route should be the one below the top")
	}
	if !router.CanPop() {
		t.Fatal("a two-deep stack should be poppable")
	}

	router.Pop()
	if router.CurrentRoute() != routes["home"] {
		t.Fatal("pop should reveal the route below")
	}
	if router.HasChild(routes["settings"]) {
		t.Fatal("popped route should be detached from the router")
	}
	if router.CanPop() {
		t.Fatal("the last route must not be poppable")
	}
}

func TestRouter_PushUnknownRouteIsConfigError(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home")
	scene.NewGroup().Add(router)
	expectPanicKind(t, errors.KindConfig, func() {
		router.Push("nope")
	})
}

func TestRouter_PushTopRouteIsNoOp(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home", "settings")
	scene.NewGroup().Add(router)

	router.Push("settings")
	router.Push("settings")
	if router.StackSize() != 2 {
		t.Fatalf("re-pushing the top route should change nothing, got stack size %d", router.StackSize())
	}
}

func TestRouter_PushBuriedRouteIsProtocolError(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home", "settings")
	scene.NewGroup().Add(router)

	router.Push("settings")
	expectPanicKind(t, errors.KindProtocol, func() {
		router.Push("home")
	})
}

func TestRouter_PopLastRouteIsProtocolError(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home")
	scene.NewGroup().Add(router)
	expectPanicKind(t, errors.KindProtocol, func() {
		router.Pop()
	})
}

func TestRouter_RegisterDuplicateIsConfigError(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home")
	expectPanicKind(t, errors.KindConfig, func() {
		router.Register("home", pageRoute(log, "home", RouteConfig{}))
	})
}

func TestRouter_PushRouteRegistersAndPushes(t *testing.T) {
	log := &ttesting.EventLog{}
	router, _ := newTestRouter(log, "home")
	scene.NewGroup().Add(router)

	dialog := pageRoute(log, "dialog", RouteConfig{Transparent: true})
	router.PushRoute("dialog", dialog)

	if router.CurrentRoute() != dialog {
		t.Fatal("pushed route should be on top")
	}
	if dialog.Name() != "dialog" {
		t.Fatalf("route should be named on registration, got %q", dialog.Name())
	}
}

func TestRouter_RenderedFlags(t *testing.T) {
	log := &ttesting.EventLog{}
	base := pageRoute(log, "base", RouteConfig{})
	dialog := pageRoute(log, "dialog", RouteConfig{Transparent: true})
	opaque := pageRoute(log, "opaque", RouteConfig{})
	router := NewRouter(RouterConfig{
		Routes: map[string]Route{
			"base":   base,
			"dialog": dialog,
			"opaque": opaque,
		},
		InitialRoute: "base",
	})
	scene.NewGroup().Add(router)

	if !base.Rendered() {
		t.Fatal("lone route should render")
	}

	// A transparent route keeps the one below visible.
	router.Push("dialog")
	if !base.Rendered() || !dialog.Rendered() {
		t.Fatal("both routes should render under a transparent top")
	}

	// An opaque route hides everything below it, transparent or not.
	router.Push("opaque")
	if !opaque.Rendered() {
		t.Fatal("top route should always render")
	}
	if dialog.Rendered() || base.Rendered() {
		t.Fatal("routes below an opaque route should not render")
	}

	router.Pop()
	if !base.Rendered() || !dialog.Rendered() {
		t.Fatal("visibility should be restored when the opaque route pops")
	}

	router.Pop()
	if !base.Rendered() {
		t.Fatal("base should render after all overlays pop")
	}
}

func TestRouter_PopUntilNamed(t *testing.T) {
	log := &ttesting.EventLog{}
	router, routes := newTestRouter(log, "home", "a", "b", "c")
	scene.NewGroup().Add(router)

	router.Push("a")
	router.Push("b")
	router.Push("c")

	router.PopUntilNamed("a")
	if router.CurrentRoute() != routes["a"] {
		t.Fatalf("expected route a on top, got %v", router.CurrentRoute().Name())
	}
	if router.StackSize() != 2 {
		t.Fatalf("expected stack size 2, got %d", router.StackSize())
	}

	// Popping to the current top is a no-op.
	router.PopUntilNamed("a")
	if router.StackSize() != 2 {
		t.Fatalf("expected stack size 2, got %d", router.StackSize())
	}
}

// recordingObserver logs navigation events for assertions.
type recordingObserver struct {
	log *ttesting.EventLog
}

func (o *recordingObserver) DidPush(route, previous Route) {
	name := "<nil>"
	if previous != nil {
		name = previous.Name()
	}
	o.log.Append("push " + route.Name() + " over " + name)
}

func (o *recordingObserver) DidPop(route, next Route) {
	o.log.Append("pop " + route.Name() + " to " + next.Name())
}

func TestRouter_ObserversSeeNavigationEvents(t *testing.T) {
	log := &ttesting.EventLog{}
	events := &ttesting.EventLog{}
	router := NewRouter(RouterConfig{
		Routes: map[string]Route{
			"home":     pageRoute(log, "home", RouteConfig{}),
			"settings": pageRoute(log, "settings", RouteConfig{}),
		},
		InitialRoute: "home",
		Observers:    []Observer{&recordingObserver{log: events}},
	})
	scene.NewGroup().Add(router)

	router.Push("settings")
	router.Pop()

	want := []string{
		"push home over <nil>",
		"push settings over home",
		"pop settings to home",
	}
	got := events.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestRouter_PauseOverlayScenario drives the canonical use case: a game
// route that keeps its state, covered by a transparent pause overlay that
// freezes the game's clock through the push and pop hooks.
func TestRouter_PauseOverlayScenario(t *testing.T) {
	log := &ttesting.EventLog{}
	game := NewPageRoute(RouteConfig{
		Builder:       func() scene.Component { return newTestPage("game", log) },
		MaintainState: true,
	})
	pause := NewPageRoute(RouteConfig{
		Builder:     func() scene.Component { return newTestPage("pause", log) },
		Transparent: true,
		OnPush:      func(previous Route) { game.StopTime() },
		OnPop:       func(next Route) { game.ResumeTime() },
	})
	router := NewRouter(RouterConfig{
		Routes:       map[string]Route{"game": game, "pause": pause},
		InitialRoute: "game",
	})
	root := scene.NewGroup()
	root.Add(router)

	gamePage := game.Page().(*testPage)
	root.UpdateTree(16 * time.Millisecond)
	if gamePage.updates != 1 {
		t.Fatalf("expected the game to tick, got %d updates", gamePage.updates)
	}

	router.Push("pause")
	if !game.Rendered() {
		t.Fatal("game should stay visible under the transparent overlay")
	}
	root.UpdateTree(16 * time.Millisecond)
	if gamePage.updates != 1 {
		t.Fatalf("paused game should not tick, got %d updates", gamePage.updates)
	}
	pausePage := router.CurrentRoute().(*PageRoute).Page().(*testPage)
	if pausePage.updates != 1 {
		t.Fatalf("overlay should tick while shown, got %d updates", pausePage.updates)
	}

	// The paused game still renders underneath the overlay.
	canvas := &ttesting.RecordingCanvas{}
	root.RenderTree(canvas)
	if len(canvas.Ops) == 0 {
		t.Fatal("paused game should still draw")
	}

	router.Pop()
	if game.Page() != scene.Component(gamePage) {
		t.Fatal("game page should survive the overlay")
	}
	root.UpdateTree(16 * time.Millisecond)
	if gamePage.updates != 2 {
		t.Fatalf("resumed game should tick again, got %d updates", gamePage.updates)
	}
}

func TestRouter_HitTestSkipsHiddenRoutes(t *testing.T) {
	log := &ttesting.EventLog{}
	router, routes := newTestRouter(log, "home", "cover")
	scene.NewGroup().Add(router)

	router.Push("cover")

	result := &scene.HitTestResult{}
	router.ComponentsAt(rendering.Offset{X: 1, Y: 1}, result)

	coverPage := routes["cover"].Page()
	homePage := routes["home"].Page()
	for _, hit := range result.Entries {
		if hit == homePage {
			t.Fatal("hidden route's page must not receive hits")
		}
	}
	found := false
	for _, hit := range result.Entries {
		if hit == coverPage {
			found = true
		}
	}
	if !found {
		t.Fatal("top route's page should receive hits")
	}
}
