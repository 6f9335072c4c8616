// Package loom is the rendering core: literal templates compiled into
// placeholder-annotated trees, a reconciler that stamps and reuses live
// dom nodes, per-mount contexts with positional editors, and the
// component lifecycle unwinder.
package loom

import (
	"reflect"

	"github.com/loomdev/loom/pkg/dom"
)

// Partial is an immutable description of desired content: literal text
// fragments plus the interpolation results that fill the gaps between
// them. It is not live until mounted.
type Partial struct {
	fragments []string
	values    []any
	key       any
	markup    bool
	tpl       *dom.Node // lazily compiled, cached by fragment identity
}

// HTML builds a Partial from a fragment sequence and the interpolation
// values aligned to the gaps between fragments. The fragments slice is
// the template's identity: pass the same slice for the same call site to
// hit the compile cache.
func HTML(fragments []string, values ...any) *Partial {
	return &Partial{fragments: fragments, values: values}
}

// SVG is HTML for namespaced (vector-graphics) subtrees. The flag only
// affects compilation, never reconciliation.
func SVG(fragments []string, values ...any) *Partial {
	return &Partial{fragments: fragments, values: values, markup: true}
}

// Key returns the identity used to decide whether a mounted instance can
// be reused in place. Defaults to the identity of the fragment sequence.
func (p *Partial) Key() any {
	if p.key != nil {
		return p.key
	}
	return fragmentsID(p.fragments)
}

// WithKey returns a copy of the Partial carrying an explicit key, for
// list items whose identity outlives their template.
func (p *Partial) WithKey(key any) *Partial {
	c := *p
	c.key = key
	return &c
}

// Values returns the interpolation results in slot order.
func (p *Partial) Values() []any { return p.values }

// IsMarkup reports whether the Partial compiles in namespaced mode.
func (p *Partial) IsMarkup() bool { return p.markup }

// Template returns the canonical placeholder-annotated tree for this
// fragment sequence, compiling (and caching) on first use.
func (p *Partial) Template() *dom.Node {
	if p.tpl == nil {
		p.tpl = Compile(p.fragments, p.markup)
	}
	return p.tpl
}

// fragmentsID is the identity of a fragment sequence: the pointer to the
// slice's backing array. Structurally identical but distinct sequences
// get distinct identities, matching the identity-not-contents contract.
func fragmentsID(fragments []string) uintptr {
	if len(fragments) == 0 {
		return 0
	}
	return reflect.ValueOf(fragments).Pointer()
}

// EmitFunc publishes an event on the owning mount's emitter.
type EmitFunc func(event string, detail any)

// ComponentFunc is a user component body. It receives the mount's user
// state and emit function, and returns renderable content: a Partial,
// another Component, a lifecycle hook function, a step Generator, or a
// plain value.
type ComponentFunc func(state any, emit EmitFunc) any

// CleanupFunc is the after-unmount handler shape: it receives the
// component's captured arguments.
type CleanupFunc func(args ...any) any

// Component pairs a user function with captured call arguments and a
// key. Re-invoking With produces a new Component value sharing the same
// key, so "re-render with new args" is "mount a new Component at the
// same location".
type Component struct {
	fn   ComponentFunc
	args []any
	key  any
}

// NewComponent wraps fn and its captured arguments. The default key is
// the function's own identity.
func NewComponent(fn ComponentFunc, args ...any) Component {
	return Component{fn: fn, args: args}
}

// WithKey returns a copy carrying an explicit key.
func (c Component) WithKey(key any) Component {
	c.key = key
	return c
}

// With returns a new Component with fresh arguments and the same key.
func (c Component) With(args ...any) Component {
	c.args = args
	return c
}

// Key returns the component's identity: the explicit key if set, else
// the identity of the wrapped function.
func (c Component) Key() any {
	if c.key != nil {
		return c.key
	}
	if c.fn == nil {
		return nil
	}
	return reflect.ValueOf(c.fn).Pointer()
}

// Args returns the captured call arguments.
func (c Component) Args() []any { return c.args }

// contentKey returns the reuse key for mountable content.
func contentKey(content any) any {
	switch v := content.(type) {
	case *Partial:
		return v.Key()
	case Component:
		return v.Key()
	default:
		return nil
	}
}
