// Package scene provides the retained component tree that Tide renders and
// updates every tick.
//
// A [Component] owns an ordered list of children. The engine drives the tree
// through three traversals: UpdateTree advances simulation time, RenderTree
// emits drawing commands, and ComponentsAt answers spatial queries. Concrete
// components embed [ComponentBase] and override the behavior they need:
//
//	type Spinner struct {
//	    scene.ComponentBase
//	    angle float64
//	}
//
//	func (s *Spinner) Update(dt time.Duration) {
//	    s.angle += dt.Seconds() * math.Pi
//	}
//
// Components that perform slow initialization implement [Loader]; their
// OnLoad runs on its own goroutine when the component is attached, and the
// component's Loaded channel closes when it returns. Attach and detach are
// immediate and safe to call from a loading goroutine.
package scene

import (
	"sync"
	"time"

	"github.com/go-tide/tide/pkg/errors"
	"github.com/go-tide/tide/pkg/rendering"
)

// Component is a node in the scene tree.
type Component interface {
	// Update advances this component's own state by dt.
	Update(dt time.Duration)

	// Render draws this component's own content.
	Render(canvas rendering.Canvas)

	// UpdateTree updates this component and its descendants. The elapsed
	// time is scaled by the node's time scale before propagation.
	UpdateTree(dt time.Duration)

	// RenderTree renders this component and its descendants.
	RenderTree(canvas rendering.Canvas)

	// ComponentsAt collects the components under the given point in
	// front-to-back order.
	ComponentsAt(point rendering.Offset, result *HitTestResult)

	// Loaded returns a channel that closes once the component has finished
	// initializing after being attached to a parent.
	Loaded() <-chan struct{}

	// Parent returns the component this one is attached to, or nil.
	Parent() Component

	// Children returns a snapshot of the attached children.
	Children() []Component

	// Add attaches a child to this component.
	Add(child Component)

	// Remove detaches a child from this component.
	Remove(child Component)

	base() *ComponentBase
}

// Loader is implemented by components whose initialization may be slow.
// OnLoad runs on a separate goroutine when the component is first attached;
// the component's Loaded channel closes when OnLoad returns. A non-nil error
// is reported through the errors package handler.
type Loader interface {
	OnLoad() error
}

// Mounter is implemented by components that want a synchronous callback
// when they are attached to a parent.
type Mounter interface {
	OnMount()
}

// Remover is implemented by components that want a synchronous callback
// when they are detached from their parent.
type Remover interface {
	OnRemove()
}

// Bind registers c as its own dispatch receiver so that ComponentBase
// traversals reach the outermost type's overrides.
//
// Constructors of concrete component types call Bind themselves, and Add
// binds children automatically. A wrapper type that embeds another component
// and overrides traversal methods must call Bind with the outer value before
// the component enters a tree.
func Bind(c Component) {
	c.base().bind(c)
}

// ComponentBase is the default Component implementation, meant to be
// embedded in concrete component types. The zero value is usable.
type ComponentBase struct {
	mu       sync.Mutex
	self     Component
	parent   Component
	children []Component

	// timeScale multiplies dt before it propagates to this subtree.
	// Stored alongside a set flag so the zero value means 1.
	timeScale    float64
	timeScaleSet bool

	loadOnce sync.Once
	loadedMu sync.Mutex
	loadedCh chan struct{}
}

func (b *ComponentBase) base() *ComponentBase { return b }

func (b *ComponentBase) bind(self Component) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.self = self
}

// receiver returns the bound outer component, or nil if unbound.
func (b *ComponentBase) receiver() Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.self
}

// Update is a no-op by default.
func (b *ComponentBase) Update(dt time.Duration) {}

// Render is a no-op by default.
func (b *ComponentBase) Render(canvas rendering.Canvas) {}

// UpdateTree updates this component and then its children, scaling dt by
// the node's time scale first.
func (b *ComponentBase) UpdateTree(dt time.Duration) {
	scaled := b.scaleDt(dt)
	if self := b.receiver(); self != nil {
		self.Update(scaled)
	}
	for _, child := range b.Children() {
		child.UpdateTree(scaled)
	}
}

// RenderTree renders this component and then its children, so children
// paint on top of their parent.
func (b *ComponentBase) RenderTree(canvas rendering.Canvas) {
	if self := b.receiver(); self != nil {
		self.Render(canvas)
	}
	for _, child := range b.Children() {
		child.RenderTree(canvas)
	}
}

// ComponentsAt queries children front-to-back (reverse paint order), then
// this component itself if it implements HitTestable and contains the point.
func (b *ComponentBase) ComponentsAt(point rendering.Offset, result *HitTestResult) {
	children := b.Children()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].ComponentsAt(point, result)
	}
	if self := b.receiver(); self != nil {
		if ht, ok := self.(HitTestable); ok && ht.Contains(point) {
			result.Add(self)
		}
	}
}

// Parent returns the component this one is attached to, or nil.
func (b *ComponentBase) Parent() Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parent
}

// Children returns a snapshot of the attached children.
func (b *ComponentBase) Children() []Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Component, len(b.children))
	copy(out, b.children)
	return out
}

// HasChild reports whether child is currently attached to this component.
func (b *ComponentBase) HasChild(child Component) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.children {
		if c == child {
			return true
		}
	}
	return false
}

// Add attaches a child to this component. The child's OnMount hook fires
// synchronously; its loading (if any) starts immediately afterwards.
func (b *ComponentBase) Add(child Component) {
	parent := b.receiver()
	cb := child.base()

	cb.mu.Lock()
	if cb.self == nil {
		cb.self = child
	}
	cb.parent = parent
	self := cb.self
	cb.mu.Unlock()

	b.mu.Lock()
	b.children = append(b.children, child)
	b.mu.Unlock()

	if m, ok := self.(Mounter); ok {
		m.OnMount()
	}
	cb.startLoad(self)
}

// Remove detaches a child from this component. The child's OnRemove hook
// fires synchronously. Removing a component that is not attached is a no-op.
func (b *ComponentBase) Remove(child Component) {
	b.mu.Lock()
	found := false
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			found = true
			break
		}
	}
	b.mu.Unlock()
	if !found {
		return
	}

	cb := child.base()
	cb.mu.Lock()
	cb.parent = nil
	self := cb.self
	cb.mu.Unlock()

	if r, ok := self.(Remover); ok {
		r.OnRemove()
	}
}

// RemoveFromParent detaches this component from its parent, if attached.
func (b *ComponentBase) RemoveFromParent() {
	parent := b.Parent()
	if parent == nil {
		return
	}
	self := b.receiver()
	if self == nil {
		return
	}
	parent.Remove(self)
}

// Loaded returns a channel that closes once the component finishes loading.
// For components without a Loader implementation the channel closes at
// attach time.
func (b *ComponentBase) Loaded() <-chan struct{} {
	return b.loaded()
}

func (b *ComponentBase) loaded() chan struct{} {
	b.loadedMu.Lock()
	defer b.loadedMu.Unlock()
	if b.loadedCh == nil {
		b.loadedCh = make(chan struct{})
	}
	return b.loadedCh
}

// startLoad runs the component's OnLoad at most once, on its own goroutine,
// and closes the loaded channel when it completes.
func (b *ComponentBase) startLoad(self Component) {
	b.loadOnce.Do(func() {
		ch := b.loaded()
		loader, ok := self.(Loader)
		if !ok {
			close(ch)
			return
		}
		go func() {
			if err := loader.OnLoad(); err != nil {
				errors.Report(errors.New("scene.Component.OnLoad", errors.KindLoad, err))
			}
			close(ch)
		}()
	})
}

// SetTimeScale sets the multiplier applied to dt before it propagates to
// this subtree. Zero pauses descendants entirely; one is normal speed.
// Negative values are a configuration error.
func (b *ComponentBase) SetTimeScale(scale float64) {
	if scale < 0 {
		panic(errors.Configf("scene.ComponentBase.SetTimeScale",
			"time scale must be non-negative, got %v", scale))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeScale = scale
	b.timeScaleSet = true
}

// TimeScale returns the current time scale. Defaults to 1.
func (b *ComponentBase) TimeScale() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.timeScaleSet {
		return 1
	}
	return b.timeScale
}

func (b *ComponentBase) scaleDt(dt time.Duration) time.Duration {
	scale := b.TimeScale()
	if scale == 1 {
		return dt
	}
	return time.Duration(float64(dt) * scale)
}

// Group is a plain container component with no behavior of its own.
type Group struct {
	ComponentBase
}

// NewGroup creates an empty container component.
func NewGroup() *Group {
	g := &Group{}
	Bind(g)
	return g
}
