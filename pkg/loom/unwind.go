package loom

import (
	"reflect"

	"github.com/loomdev/loom/internal/diag"
)

// Generator is the resumable multi-step lifecycle protocol: an explicit
// state machine driven step-by-step by the unwinder within the same
// call stack, never by an external scheduler. Next receives the resolved
// value of the previous step and returns the next intermediate result;
// done signals completion, making that result the final one.
type Generator interface {
	Next(input any) (value any, done bool)
}

// Steps builds a Generator from a fixed sequence of step functions. All
// but the last are suspension points; the last step's return value is
// the generator's final result.
func Steps(steps ...func(input any) any) Generator {
	return &stepGenerator{steps: steps}
}

type stepGenerator struct {
	steps []func(input any) any
	pos   int
}

func (g *stepGenerator) Next(input any) (any, bool) {
	if g.pos >= len(g.steps) {
		return nil, true
	}
	fn := g.steps[g.pos]
	g.pos++
	return fn(input), g.pos >= len(g.steps)
}

// Awaitable marks a value that settles asynchronously. The unwinder has
// no model for suspending reconciliation mid-pass, so resolving to a
// pending Awaitable is a reported misuse.
type Awaitable interface {
	Pending() bool
}

// Unwrap resolves a component's output into final renderable content,
// registering continuations on ctx for later lifecycle phases. The
// context is pushed onto the active scope for the duration, including
// failure exits, so nested Use calls resolve to it.
func Unwrap(c Component, ctx *Context) any {
	if c.fn == nil {
		return nil
	}
	pushScope(ctx)
	defer popScope()
	return resolve(c.fn(ctx.State, ctx.Emit), BeforeFirstRender, ctx, c, nil)
}

// resolve repeatedly unwinds an intermediate result. cont, when non-nil,
// is the suspended continuation awaiting the value currently being
// resolved; phase advances by one for every resumption depth.
func resolve(v any, phase int, ctx *Context, comp Component, cont Continuation) any {
	for {
		switch val := v.(type) {
		case nil:
			if cont != nil {
				v, cont, phase = feed(cont, nil, phase)
				continue
			}
			return nil

		case *Partial:
			if cont != nil {
				ctx.hooks = append(ctx.hooks, hook{phase: phase, cont: cont})
			}
			return val

		case Component:
			if cont != nil {
				ctx.hooks = append(ctx.hooks, hook{phase: phase, cont: cont})
			}
			return Unwrap(val, ctx)

		case Generator:
			out, done := val.Next(nil)
			var inner Continuation
			if !done {
				inner = val.Next
			}
			if cont == nil {
				phase++
				cont = inner
			} else if inner != nil {
				// A generator yielded by a suspended generator does
				// not consume a phase of its own; its resumptions run
				// ahead of the outer continuation.
				cont = chain(inner, cont)
			}
			v = out

		case CleanupFunc:
			v = runCleanup(val, phase, ctx, comp)

		case func(args ...any) any:
			v = runCleanup(CleanupFunc(val), phase, ctx, comp)

		case func() any:
			v = runCleanup(func(...any) any { return val() }, phase, ctx, comp)

		default:
			if pendingAsync(v) {
				diag.Report(diag.AsyncComponent, "")
				return nil
			}
			if out, ok := callNullary(v); ok {
				v = out
				continue
			}
			if cont != nil {
				v, cont, phase = feed(cont, v, phase)
				continue
			}
			return v
		}
	}
}

// chain composes a nested generator's continuation with the suspended
// one that yielded it: resumptions drive the inner chain to completion
// first, then its final result feeds the outer continuation.
func chain(inner, outer Continuation) Continuation {
	innerDone := false
	return func(input any) (any, bool) {
		if !innerDone {
			out, done := inner(input)
			if !done {
				return out, false
			}
			innerDone = true
			input = out
		}
		return outer(input)
	}
}

// feed pushes a resolved value back into a suspended continuation.
func feed(cont Continuation, input any, phase int) (any, Continuation, int) {
	out, done := cont(input)
	if done {
		cont = nil
	}
	return out, cont, phase + 1
}

// runCleanup handles a plain function in the unwind chain. Under the
// after-unmount phase it is the unmount handler: stored as the
// context's render-invalidation hook and invoked with the component's
// captured arguments. Under any other phase it is called bare.
func runCleanup(fn CleanupFunc, phase int, ctx *Context, comp Component) any {
	if phase == AfterUnmount {
		ctx.invalidate = fn
		return fn(comp.args...)
	}
	return fn()
}

// callNullary invokes a plain zero-argument function of any concrete
// return type, so component bodies may return typed thunks without
// matching the canonical shapes exactly.
func callNullary(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.Type().NumIn() != 0 || rv.Type().NumOut() == 0 {
		return nil, false
	}
	return rv.Call(nil)[0].Interface(), true
}

// pendingAsync detects values the protocol cannot resolve synchronously:
// channels, and Awaitables that report themselves unsettled.
func pendingAsync(v any) bool {
	if a, ok := v.(Awaitable); ok {
		return a.Pending()
	}
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Chan
}
