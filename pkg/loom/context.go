package loom

import (
	"sync"

	"github.com/google/uuid"
	"github.com/loomdev/loom/pkg/dom"
	"github.com/loomdev/loom/pkg/emitter"
)

// Lifecycle phases. Phase numbers beyond AfterRender exist for deeper
// generator resumption; they carry no hooks of their own.
const (
	BeforeFirstRender = 0
	AfterUnmount      = 1
	AfterUpdate       = 2
	AfterRender       = 3
)

// RenderEvent is the emitter event a component can publish to request a
// fresh render pass (the designed path for asynchronous data).
const RenderEvent = "render"

// Continuation resumes a suspended lifecycle step with an input value,
// returning the next intermediate result and whether the step sequence
// is complete.
type Continuation func(input any) (any, bool)

type hook struct {
	phase int
	cont  Continuation
}

// Context is the mutable per-mount-point record: identity key, user
// state, emitter, the ordered editor list established at first render,
// and the lifecycle hooks registered by the unwinder.
type Context struct {
	ID      string
	Key     any
	State   any
	Emitter *emitter.Emitter

	editors []Editor
	hooks   []hook
	root    *dom.Node
	values  []any // last applied interpolation values

	// invalidate is the stored after-unmount handler, if the component
	// registered one.
	invalidate CleanupFunc
}

func newContext(key, state any) *Context {
	return &Context{
		ID:      uuid.NewString(),
		Key:     key,
		State:   state,
		Emitter: emitter.New(),
	}
}

// Emit publishes an event on this mount's emitter.
func (c *Context) Emit(event string, detail any) {
	c.Emitter.Emit(event, detail)
}

// Root returns the live node this context currently renders into.
func (c *Context) Root() *dom.Node { return c.root }

// Editors returns the number of registered editors. The list length and
// per-entry slot indices are fixed once established at first render.
func (c *Context) Editors() int { return len(c.editors) }

func (c *Context) addEditor(e Editor) {
	c.editors = append(c.editors, e)
}

// Update establishes this context as the active lifecycle scope and
// invokes every registered editor with values, in discovery order.
// Reentrant-safe: a child context updating itself mid-pass nests on the
// scope stack and is restored on exit, including exceptional exit.
func (c *Context) Update(values []any) {
	pushScope(c)
	defer popScope()
	c.values = values
	for _, e := range c.editors {
		e.Apply(values)
		recordEditorApply()
	}
}

// firePhase runs every hook registered for phase, consuming it. The
// continuation's result is resolved at the following phase number; if it
// settles on a Partial, the context's editors are refreshed with that
// Partial's values.
func (c *Context) firePhase(phase int) {
	if len(c.hooks) == 0 {
		return
	}
	var kept, due []hook
	for _, h := range c.hooks {
		if h.phase == phase {
			due = append(due, h)
		} else {
			kept = append(kept, h)
		}
	}
	if len(due) == 0 {
		return
	}
	c.hooks = kept
	pushScope(c)
	defer popScope()
	for _, h := range due {
		out, done := h.cont(nil)
		var cont Continuation
		if !done {
			cont = h.cont
		}
		res := resolve(out, phase+1, c, Component{}, cont)
		if p, ok := res.(*Partial); ok && phase != AfterUnmount {
			c.Update(p.Values())
		}
	}
}

// rewind drops hooks left pending by a previous unwind. Every path that
// re-runs a component against an existing context calls this first, so
// the fresh pass registers a single lifecycle chain instead of stacking
// duplicates of the old one.
func (c *Context) rewind() {
	c.hooks = nil
}

// release tears down a context whose content is being discarded: fires
// the after-unmount phase, runs the stored unmount handler, and drops
// the emitter subscriptions.
func (c *Context) release(args []any) {
	c.firePhase(AfterUnmount)
	if c.invalidate != nil {
		c.invalidate(args...)
		c.invalidate = nil
	}
	c.Emitter.Close()
}

// Active-scope stack. The unwinder and Update push/pop around every
// entry so nested synchronous updates restore the outer scope even on
// panic.
var (
	scopeMu sync.Mutex
	scopes  []*Context
)

func pushScope(c *Context) {
	scopeMu.Lock()
	scopes = append(scopes, c)
	scopeMu.Unlock()
}

func popScope() {
	scopeMu.Lock()
	if len(scopes) > 0 {
		scopes = scopes[:len(scopes)-1]
	}
	scopeMu.Unlock()
}

func currentScope() *Context {
	scopeMu.Lock()
	defer scopeMu.Unlock()
	if len(scopes) == 0 {
		return nil
	}
	return scopes[len(scopes)-1]
}

// Use invokes fn with the active context's state and emit function.
// Only valid while a component is being unwound or updated; calling it
// outside an active scope is a caller contract violation and is a no-op.
func Use(fn func(state any, emit EmitFunc)) {
	c := currentScope()
	if c == nil || fn == nil {
		return
	}
	fn(c.State, c.Emit)
}

// Mount-point association table: live node identity -> Context. Entries
// are only ever looked up and removed point-wise.
var (
	contextMu sync.Mutex
	contexts  = make(map[*dom.Node]*Context)
)

// ContextOf returns the context associated with a live node, if any.
func ContextOf(n *dom.Node) *Context {
	contextMu.Lock()
	defer contextMu.Unlock()
	return contexts[n]
}

func associate(n *dom.Node, c *Context) {
	if n == nil || c == nil {
		return
	}
	contextMu.Lock()
	contexts[n] = c
	contextMu.Unlock()
}

func dissociate(n *dom.Node) {
	if n == nil {
		return
	}
	contextMu.Lock()
	delete(contexts, n)
	contextMu.Unlock()
}

// releaseNode tears down the context bound to n (if any), clears the
// subtree's event listeners, and detaches the node.
func releaseNode(n *dom.Node) {
	if n == nil {
		return
	}
	if c := ContextOf(n); c != nil {
		dissociate(n)
		c.release(nil)
	}
	dom.ClearListeners(n)
	n.Detach()
}
