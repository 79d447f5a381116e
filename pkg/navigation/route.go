// Package navigation provides stack-based navigation for the Tide scene
// tree.
//
// A [Route] owns a lazily built page subtree and is managed by a [Router],
// which maintains the navigation stack and drives the push/pop lifecycle:
//
//	router := navigation.NewRouter(navigation.RouterConfig{
//	    Routes: map[string]navigation.Route{
//	        "home":  navigation.NewPageRoute(navigation.RouteConfig{Builder: buildHome}),
//	        "pause": navigation.NewPageRoute(navigation.RouteConfig{
//	            Builder:     buildPauseMenu,
//	            Transparent: true,
//	        }),
//	    },
//	    InitialRoute: "home",
//	})
//
//	router.Push("pause")
//	router.Pop()
//
// A route's page is built on first push and survives pops when MaintainState
// is set. Routes that supply a LoadingBuilder show a placeholder subtree
// while the real page finishes loading. Routes that are covered by an opaque
// route above them stop rendering and hit-testing entirely; the router
// computes that visibility from each route's Transparent flag.
package navigation

import (
	"sync"
	"time"

	"github.com/go-tide/tide/pkg/effects"
	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/rendering"
	"github.com/go-tide/tide/pkg/scene"
)

// Route is a stack-managed unit owning one page subtree.
//
// The Name, SetRendered, DidPush and DidPop methods form the contract with
// the [Router]; application code normally only constructs routes and reads
// their state.
type Route interface {
	scene.Component

	// Name returns the name assigned by the router, or "" before the route
	// is first registered.
	Name() string

	// Transparent reports whether routes below this one on the stack must
	// keep rendering. Read by the router, never by the route itself.
	Transparent() bool

	// MaintainState reports whether the page survives a pop.
	MaintainState() bool

	// Rendered reports whether this route renders and hit-tests its subtree.
	Rendered() bool

	// SetRendered is called by the router when the route's visibility on
	// the stack changes.
	SetRendered(rendered bool)

	// DidPush is called by the router when the route becomes part of the
	// active stack. previous is the route that was on top before, or nil.
	DidPush(previous Route)

	// DidPop is called by the router when the route is removed from the top
	// of the stack. next is the route being revealed and must not be nil.
	DidPop(next Route)

	assignName(name string)
}

// RouteConfig configures a [PageRoute].
type RouteConfig struct {
	// Builder constructs the page subtree. Required: constructing a route
	// with no Builder panics with a configuration error.
	Builder func() scene.Component

	// LoadingBuilder, if set, constructs a placeholder subtree shown while
	// the page finishes loading after a push.
	LoadingBuilder func() scene.Component

	// Transparent marks routes below this one as still visible. Dialogs and
	// pause overlays set this.
	Transparent bool

	// MaintainState keeps the built page across pops, preserving its
	// identity for later pushes.
	MaintainState bool

	// OnPush is invoked after a push has initiated page attachment.
	// previous is the route that was on top before, or nil.
	OnPush func(previous Route)

	// OnPop is invoked when the route is popped, before the page is
	// detached. next is the route being revealed.
	OnPop func(next Route)
}

// PageRoute is the standard Route implementation.
//
// The page is built at most once per route lifetime unless MaintainState is
// false and a pop occurred, in which case the next push rebuilds it. With a
// LoadingBuilder configured, a push attaches the placeholder synchronously
// and runs the page attachment asynchronously; see [PageRoute.DidPush].
type PageRoute struct {
	scene.ComponentBase

	cfg RouteConfig

	mu          sync.Mutex
	name        string
	nameSet     bool
	hidden      bool
	active      bool
	generation  uint64
	page        scene.Component
	loadingPage scene.Component
	effects     effects.Chain
	ready       chan struct{}
}

// NewPageRoute constructs a PageRoute. Panics with a configuration error if
// cfg.Builder is nil.
func NewPageRoute(cfg RouteConfig) *PageRoute {
	if cfg.Builder == nil {
		panic(errors.Configf("navigation.NewPageRoute", "RouteConfig.Builder is required"))
	}
	r := &PageRoute{cfg: cfg}
	scene.Bind(r)
	return r
}

// Name returns the router-assigned name, or "" before registration.
func (r *PageRoute) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

// assignName records the router-assigned name. The name is assigned exactly
// once; reassigning to a different value is a protocol violation.
func (r *PageRoute) assignName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameSet {
		if r.name != name {
			panic(errors.Protocolf("navigation.PageRoute.assignName",
				"route already named %q, cannot rename to %q", r.name, name))
		}
		return
	}
	r.name = name
	r.nameSet = true
}

// Transparent reports whether routes below stay visible.
func (r *PageRoute) Transparent() bool {
	return r.cfg.Transparent
}

// MaintainState reports whether the page survives a pop.
func (r *PageRoute) MaintainState() bool {
	return r.cfg.MaintainState
}

// Rendered reports whether this route renders and hit-tests its subtree.
// Defaults to true.
func (r *PageRoute) Rendered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.hidden
}

// SetRendered sets the visibility flag. Only the router writes this.
func (r *PageRoute) SetRendered(rendered bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = !rendered
}

// Page returns the current page subtree, or nil if it has not been built
// or was dropped by a pop.
func (r *PageRoute) Page() scene.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// PageReady returns a channel that closes once the most recent push has
// finished attaching the page (including the loading sequence, if any).
// Before the first push the returned channel is already closed. If the
// route is popped while a loading sequence is in flight, the channel closes
// when the sequence is abandoned.
func (r *PageRoute) PageReady() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return r.ready
}

// DidPush is called by the router when this route becomes part of the
// active stack.
//
// The page is built on first push and reused afterwards. With no
// LoadingBuilder the page attaches synchronously. With a LoadingBuilder the
// placeholder attaches synchronously, then a goroutine waits for the
// placeholder to load, attaches the page, waits for the page to load, and
// detaches the placeholder. The placeholder is fully initialized before
// the page starts attaching, and the page is fully initialized before the
// placeholder disappears. Both may be attached simultaneously for a moment;
// there is never a moment with neither.
//
// OnPush fires after attachment has been initiated, not after the loading
// sequence completes. Pushing an already-active route is a protocol
// violation and panics.
func (r *PageRoute) DidPush(previous Route) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		panic(errors.Protocolf("navigation.PageRoute.DidPush",
			"route %q pushed twice without an intervening pop", r.name))
	}
	r.active = true
	r.generation++
	gen := r.generation
	needsBuild := r.page == nil
	r.mu.Unlock()

	if needsBuild {
		page := r.buildPage()
		r.mu.Lock()
		r.page = page
		r.mu.Unlock()
	}

	r.mu.Lock()
	page := r.page
	ready := make(chan struct{})
	r.ready = ready
	r.mu.Unlock()

	if r.cfg.LoadingBuilder != nil {
		r.beginLoadingSequence(page, gen, ready)
	} else {
		// A maintained page is still attached from the previous push.
		if !r.HasChild(page) {
			r.Add(page)
		}
		close(ready)
	}

	if r.cfg.OnPush != nil {
		r.cfg.OnPush(previous)
	}
}

// DidPop is called by the router when this route leaves the top of the
// stack. The OnPop hook fires first; then, unless MaintainState is set, the
// page is detached and dropped so the next push rebuilds it. An in-flight
// loading sequence is abandoned and its placeholder detached.
//
// Popping a route that is not active is a protocol violation and panics.
func (r *PageRoute) DidPop(next Route) {
	if next == nil {
		panic(errors.Protocolf("navigation.PageRoute.DidPop", "next route must not be nil"))
	}

	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		panic(errors.Protocolf("navigation.PageRoute.DidPop",
			"route %q popped without being pushed", r.name))
	}
	r.active = false
	r.generation++
	r.mu.Unlock()

	if r.cfg.OnPop != nil {
		r.cfg.OnPop(next)
	}

	r.mu.Lock()
	loading := r.loadingPage
	r.loadingPage = nil
	var page scene.Component
	if !r.cfg.MaintainState {
		page = r.page
		r.page = nil
	}
	r.mu.Unlock()

	if loading != nil {
		r.Remove(loading)
	}
	if page != nil {
		r.Remove(page)
	}
}

// buildPage invokes the configured Builder. A zero-value PageRoute literal
// reaches this without the constructor check, so the configuration error is
// raised here as well.
func (r *PageRoute) buildPage() scene.Component {
	if r.cfg.Builder == nil {
		panic(errors.Configf("navigation.PageRoute.buildPage",
			"route %q has no page builder", r.Name()))
	}
	page := r.cfg.Builder()
	if page == nil {
		panic(errors.Configf("navigation.PageRoute.buildPage",
			"builder for route %q returned nil", r.Name()))
	}
	return page
}

// beginLoadingSequence attaches the placeholder synchronously, then hands
// the rest of the sequence to a goroutine. Each step re-checks the push
// generation under the route lock, so a pop that lands mid-sequence
// abandons the remaining steps instead of mutating a popped route.
func (r *PageRoute) beginLoadingSequence(page scene.Component, gen uint64, ready chan struct{}) {
	r.mu.Lock()
	if r.loadingPage == nil {
		r.loadingPage = r.cfg.LoadingBuilder()
	}
	loading := r.loadingPage
	r.mu.Unlock()

	r.Add(loading)

	go func() {
		<-loading.Loaded()
		if !r.attachIfCurrent(gen, page) {
			r.abandonLoading(loading, ready)
			return
		}
		<-page.Loaded()
		if !r.detachIfCurrent(gen, loading) {
			r.abandonLoading(loading, ready)
			return
		}
		close(ready)
	}()
}

// attachIfCurrent attaches c if the push that started the sequence is still
// the latest lifecycle event. The check and the attach happen under the
// route lock so a concurrent pop cannot interleave between them.
func (r *PageRoute) attachIfCurrent(gen uint64, c scene.Component) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return false
	}
	if !r.ComponentBase.HasChild(c) {
		r.ComponentBase.Add(c)
	}
	return true
}

// detachIfCurrent removes the placeholder and clears it if the sequence is
// still current.
func (r *PageRoute) detachIfCurrent(gen uint64, loading scene.Component) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return false
	}
	r.ComponentBase.Remove(loading)
	if r.loadingPage == loading {
		r.loadingPage = nil
	}
	return true
}

// abandonLoading cleans up after a sequence interrupted by a pop. DidPop
// already detached the placeholder and bumped the generation; this only
// releases waiters on the ready channel.
func (r *PageRoute) abandonLoading(loading scene.Component, ready chan struct{}) {
	r.Remove(loading)
	close(ready)
}

// UpdateTree propagates update ticks to the page subtree. A time scale of
// zero makes this a complete no-op: no descendant receives a tick. The
// Rendered flag has no effect on updates.
func (r *PageRoute) UpdateTree(dt time.Duration) {
	if r.TimeScale() == 0 {
		return
	}
	r.ComponentBase.UpdateTree(dt)
}

// RenderTree renders the page subtree through the render-effect chain, with
// the most recently added effect outermost. A route that is not rendered
// draws nothing and does not walk its descendants.
func (r *PageRoute) RenderTree(canvas rendering.Canvas) {
	if !r.Rendered() {
		return
	}
	r.mu.Lock()
	chain := r.effects
	r.mu.Unlock()
	chain.Apply(canvas, func(inner rendering.Canvas) {
		r.ComponentBase.RenderTree(inner)
	})
}

// ComponentsAt answers hit-test queries. A route that is not rendered is
// untouchable: the query returns without descending into children.
func (r *PageRoute) ComponentsAt(point rendering.Offset, result *scene.HitTestResult) {
	if !r.Rendered() {
		return
	}
	r.ComponentBase.ComponentsAt(point, result)
}

// StopTime pauses update propagation to the page subtree.
func (r *PageRoute) StopTime() {
	r.SetTimeScale(0)
}

// ResumeTime restores normal-speed update propagation.
func (r *PageRoute) ResumeTime() {
	r.SetTimeScale(1)
}

// AddRenderEffect appends a decorator to the render-effect chain. The new
// effect wraps all previously added ones.
func (r *PageRoute) AddRenderEffect(d effects.Decorator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects.Add(d)
}

// RemoveRenderEffect removes the most recently added render effect.
// Removing from an empty chain is a no-op.
func (r *PageRoute) RemoveRenderEffect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects.RemoveLast()
}
