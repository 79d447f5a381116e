package navigation

import (
	"sync"

	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/scene"
)

// Observer receives navigation events from a Router.
type Observer interface {
	// DidPush is called after route was pushed. previous may be nil.
	DidPush(route, previous Route)

	// DidPop is called after route was popped. next is the revealed route.
	DidPop(route, next Route)
}

// RouterConfig configures a [Router].
type RouterConfig struct {
	// Routes is the named route table. Names are assigned to the routes on
	// construction and are permanent.
	Routes map[string]Route

	// InitialRoute, if set, is pushed when the router mounts into a scene
	// tree. It must exist in Routes.
	InitialRoute string

	// Observers receive navigation events.
	Observers []Observer
}

// Router maintains the navigation stack.
//
// The router owns the stack ordering and each route's visibility: after
// every push or pop it recomputes which routes must render, walking down
// from the top while the route above is transparent. Routes are attached as
// children of the router, so the router's own traversal reaches them each
// tick.
type Router struct {
	scene.ComponentBase

	mu        sync.Mutex
	routes    map[string]Route
	stack     []Route
	initial   string
	observers []Observer
}

// NewRouter constructs a Router. Panics with a configuration error if
// InitialRoute names a route missing from the table.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.InitialRoute != "" {
		if _, ok := cfg.Routes[cfg.InitialRoute]; !ok {
			panic(errors.Configf("navigation.NewRouter",
				"initial route %q is not in the route table", cfg.InitialRoute))
		}
	}
	r := &Router{
		routes:    make(map[string]Route, len(cfg.Routes)),
		initial:   cfg.InitialRoute,
		observers: cfg.Observers,
	}
	scene.Bind(r)
	for name, route := range cfg.Routes {
		route.assignName(name)
		r.routes[name] = route
	}
	return r
}

// OnMount pushes the initial route when the router joins a scene tree.
func (r *Router) OnMount() {
	if r.initial == "" {
		return
	}
	r.mu.Lock()
	empty := len(r.stack) == 0
	r.mu.Unlock()
	if empty {
		r.Push(r.initial)
	}
}

// Register adds a named route to the table. Registering a name that is
// already taken is a configuration error.
func (r *Router) Register(name string, route Route) {
	r.mu.Lock()
	if _, ok := r.routes[name]; ok {
		r.mu.Unlock()
		panic(errors.Configf("navigation.Router.Register", "route %q already registered", name))
	}
	r.routes[name] = route
	r.mu.Unlock()
	route.assignName(name)
}

// Push makes the named route the active top of the stack.
//
// Pushing the route that is already on top is a no-op. Pushing a route that
// sits lower in the stack is a protocol violation: a route cannot be on the
// stack twice.
func (r *Router) Push(name string) {
	r.mu.Lock()
	route, ok := r.routes[name]
	if !ok {
		r.mu.Unlock()
		panic(errors.Configf("navigation.Router.Push", "unknown route %q", name))
	}

	var previous Route
	if len(r.stack) > 0 {
		previous = r.stack[len(r.stack)-1]
		if previous == route {
			r.mu.Unlock()
			return
		}
	}
	for _, stacked := range r.stack {
		if stacked == route {
			r.mu.Unlock()
			panic(errors.Protocolf("navigation.Router.Push",
				"route %q is already on the stack", name))
		}
	}
	r.stack = append(r.stack, route)
	r.mu.Unlock()

	r.Add(route)
	route.DidPush(previous)
	r.updateRenderedFlags()

	for _, o := range r.observers {
		o.DidPush(route, previous)
	}
}

// PushRoute registers an anonymous route under name and pushes it.
func (r *Router) PushRoute(name string, route Route) {
	r.Register(name, route)
	r.Push(name)
}

// Pop removes the top route from the stack and reveals the one below.
// Popping with one or zero routes on the stack is a protocol violation.
func (r *Router) Pop() {
	r.mu.Lock()
	if len(r.stack) <= 1 {
		r.mu.Unlock()
		panic(errors.Protocolf("navigation.Router.Pop",
			"cannot pop: %d route(s) on the stack", len(r.stack)))
	}
	popped := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	next := r.stack[len(r.stack)-1]
	r.mu.Unlock()

	popped.DidPop(next)
	r.Remove(popped)
	r.updateRenderedFlags()

	for _, o := range r.observers {
		o.DidPop(popped, next)
	}
}

// PopUntilNamed pops routes until the named route is on top. Panics with a
// protocol error if the route is not on the stack.
func (r *Router) PopUntilNamed(name string) {
	for {
		r.mu.Lock()
		if len(r.stack) == 0 {
			r.mu.Unlock()
			panic(errors.Protocolf("navigation.Router.PopUntilNamed",
				"route %q is not on the stack", name))
		}
		top := r.stack[len(r.stack)-1]
		r.mu.Unlock()
		if top.Name() == name {
			return
		}
		r.Pop()
	}
}

// CanPop reports whether a route can be popped without underflowing the
// stack.
func (r *Router) CanPop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack) > 1
}

// CurrentRoute returns the active top of the stack, or nil.
func (r *Router) CurrentRoute() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// PreviousRoute returns the route directly below the top, or nil.
func (r *Router) PreviousRoute() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) < 2 {
		return nil
	}
	return r.stack[len(r.stack)-2]
}

// StackSize returns the number of routes on the stack.
func (r *Router) StackSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// updateRenderedFlags recomputes visibility for the whole stack: the top
// route renders; a covered route keeps rendering only while every route
// above it is transparent.
func (r *Router) updateRenderedFlags() {
	r.mu.Lock()
	stack := make([]Route, len(r.stack))
	copy(stack, r.stack)
	r.mu.Unlock()

	visible := true
	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].SetRendered(visible)
		visible = visible && stack[i].Transparent()
	}
}
