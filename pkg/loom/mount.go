package loom

import (
	"time"

	"github.com/loomdev/loom/pkg/dom"
)

// Mount renders content into target. When target already carries a
// context whose key matches the content's key, that context is reused
// and only the interpolation values are pushed through its editors;
// otherwise the previous context (if any) is torn down and a first
// render replaces or adopts target's subtree. Every call is one fully
// synchronous reconciliation pass.
func Mount(content any, target *dom.Node, state ...any) *dom.Node {
	start := time.Now()
	defer func() { observeMount(time.Since(start)) }()

	key := contentKey(content)
	if ctx := ContextOf(target); ctx != nil && key != nil && ctx.Key == key {
		ctx.rewind()
		if partial, _ := resolveEntry(content, ctx); partial != nil {
			ctx.Update(partial.Values())
		}
		ctx.firePhase(AfterUpdate)
		return ctx.root
	}
	return firstMount(content, target, key, optState(state))
}

func firstMount(content any, target *dom.Node, key any, state any) *dom.Node {
	if prev := ContextOf(target); prev != nil {
		dissociate(target)
		prev.release(nil)
	}

	ctx := newContext(key, state)
	partial, settled := resolveEntry(content, ctx)

	var root *dom.Node
	if partial != nil {
		root = render(partial.Template(), ctx, target.FirstChild())
	} else if text, ok := coerceText(settled); ok {
		root = dom.NewText(text)
	}
	if root == nil {
		// Nothing renderable: the location simply empties.
		clearTarget(target, nil)
		return nil
	}

	if root.IsFragment() {
		clearTarget(target, nil)
		ctx.root = target
		target.Append(root.Children()...)
	} else {
		clearTarget(target, root)
		ctx.root = root
		if root.Parent() != target {
			target.Append(root)
		}
	}
	associate(target, ctx)

	if comp, ok := content.(Component); ok {
		wireRerender(ctx, comp)
	}
	if partial != nil {
		ctx.Update(partial.Values())
	}
	ctx.firePhase(AfterRender)
	return ctx.root
}

// clearTarget releases every child of target except keep.
func clearTarget(target *dom.Node, keep *dom.Node) {
	for _, c := range target.Children() {
		if c != keep {
			releaseNode(c)
		}
	}
}

// wireRerender subscribes the context's emitter to RenderEvent so a
// component can request a fresh pass imperatively (the designed path
// for asynchronous data: render a placeholder now, emit later).
func wireRerender(ctx *Context, comp Component) {
	ctx.Emitter.On(RenderEvent, func(any) {
		ctx.rewind()
		if p, ok := Unwrap(comp, ctx).(*Partial); ok {
			ctx.Update(p.Values())
			ctx.firePhase(AfterUpdate)
		}
	})
}

// Render always performs a first render into a freshly created subtree,
// with no reuse, and returns the new root.
func (p *Partial) Render(state ...any) *dom.Node {
	start := time.Now()
	defer func() { observeMount(time.Since(start)) }()

	ctx := newContext(p.Key(), optState(state))
	root := render(p.Template(), ctx, nil)
	ctx.root = root
	associate(root, ctx)
	ctx.Update(p.values)
	ctx.firePhase(AfterRender)
	return root
}

// Render unwinds the component into a fresh context and renders the
// resulting content into a new subtree.
func (c Component) Render(state ...any) *dom.Node {
	start := time.Now()
	defer func() { observeMount(time.Since(start)) }()

	ctx := newContext(c.Key(), optState(state))
	partial, settled := resolveEntry(c, ctx)
	if partial == nil {
		if text, ok := coerceText(settled); ok {
			return dom.NewText(text)
		}
		return nil
	}
	root := render(partial.Template(), ctx, nil)
	ctx.root = root
	associate(root, ctx)
	wireRerender(ctx, c)
	ctx.Update(partial.Values())
	ctx.firePhase(AfterRender)
	return root
}

// Unmount tears down whatever is mounted at target, firing the
// after-unmount phase and clearing the subtree.
func Unmount(target *dom.Node) {
	if ctx := ContextOf(target); ctx != nil {
		dissociate(target)
		ctx.release(nil)
	}
	clearTarget(target, nil)
}

func optState(state []any) any {
	if len(state) > 0 {
		return state[0]
	}
	return nil
}
