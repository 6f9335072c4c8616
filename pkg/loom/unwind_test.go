package loom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/loomdev/loom/internal/diag"
	"github.com/loomdev/loom/pkg/dom"
)

var msgTpl = []string{"<p>", "</p>"}

func TestComponentRendersPartial(t *testing.T) {
	container := dom.NewElement("div")
	comp := NewComponent(func(state any, emit EmitFunc) any {
		return HTML(msgTpl, "from component")
	})

	Mount(comp, container)
	if got := container.TextContent(); got != "from component" {
		t.Errorf("TextContent() = %q, want from component", got)
	}
}

func TestComponentReceivesState(t *testing.T) {
	container := dom.NewElement("div")
	comp := NewComponent(func(state any, emit EmitFunc) any {
		return HTML(msgTpl, state)
	})

	Mount(comp, container, "injected")
	if got := container.TextContent(); got != "injected" {
		t.Errorf("TextContent() = %q, want injected", got)
	}
}

func TestNestedComponent(t *testing.T) {
	container := dom.NewElement("div")
	inner := NewComponent(func(any, EmitFunc) any {
		return HTML(msgTpl, "deep")
	})
	outer := NewComponent(func(any, EmitFunc) any {
		return inner
	})

	Mount(outer, container)
	if got := container.TextContent(); got != "deep" {
		t.Errorf("TextContent() = %q, want deep", got)
	}
}

func TestComponentPlainValue(t *testing.T) {
	container := dom.NewElement("div")
	comp := NewComponent(func(any, EmitFunc) any { return 42 })

	Mount(comp, container)
	if got := container.TextContent(); got != "42" {
		t.Errorf("TextContent() = %q, want 42", got)
	}
}

func TestComponentNullaryThunk(t *testing.T) {
	container := dom.NewElement("div")
	comp := NewComponent(func(any, EmitFunc) any {
		return func() string { return "thunk" }
	})

	Mount(comp, container)
	if got := container.TextContent(); got != "thunk" {
		t.Errorf("TextContent() = %q, want thunk", got)
	}
}

func TestStepsCleanupOnUnmount(t *testing.T) {
	container := dom.NewElement("div")
	cleanups := 0
	comp := NewComponent(func(any, EmitFunc) any {
		return Steps(
			func(any) any { return HTML(msgTpl, "live") },
			func(any) any { cleanups++; return nil },
		)
	})

	Mount(comp, container)
	if got := container.TextContent(); got != "live" {
		t.Fatalf("TextContent() = %q, want live", got)
	}
	if cleanups != 0 {
		t.Fatalf("cleanup ran before unmount")
	}

	Unmount(container)
	if cleanups != 1 {
		t.Errorf("cleanups = %d after Unmount, want 1", cleanups)
	}
}

func TestStepsRunRemainingAtUnmount(t *testing.T) {
	container := dom.NewElement("div")
	var order []int
	comp := NewComponent(func(any, EmitFunc) any {
		return Steps(
			func(any) any { return HTML(msgTpl, "x") },
			func(any) any { order = append(order, 1); return nil },
			func(any) any { order = append(order, 2); return nil },
		)
	})

	Mount(comp, container)
	Unmount(container)

	if diff := cmp.Diff([]int{1, 2}, order); diff != "" {
		t.Errorf("teardown order mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedStepsTeardownOrder(t *testing.T) {
	container := dom.NewElement("div")
	var order []string
	comp := NewComponent(func(any, EmitFunc) any {
		return Steps(
			func(any) any {
				return Steps(
					func(any) any { return HTML(msgTpl, "nested") },
					func(any) any { order = append(order, "inner"); return nil },
				)
			},
			func(any) any { order = append(order, "outer"); return nil },
		)
	})

	Mount(comp, container)
	if got := container.TextContent(); got != "nested" {
		t.Fatalf("TextContent() = %q, want nested", got)
	}
	if len(order) != 0 {
		t.Fatalf("teardown steps ran at mount: %v", order)
	}

	Unmount(container)
	if diff := cmp.Diff([]string{"inner", "outer"}, order); diff != "" {
		t.Errorf("teardown order mismatch (-want +got):\n%s", diff)
	}
}

func TestRemountRunsCleanupOnce(t *testing.T) {
	container := dom.NewElement("div")
	cleanups := 0
	fn := func(any, EmitFunc) any {
		return Steps(
			func(any) any { return HTML(msgTpl, "live") },
			func(any) any { cleanups++; return nil },
		)
	}

	Mount(NewComponent(fn), container)
	Mount(NewComponent(fn), container)
	Mount(NewComponent(fn), container)
	ContextOf(container).Emit(RenderEvent, nil)
	if cleanups != 0 {
		t.Fatalf("cleanup ran before unmount")
	}

	Unmount(container)
	if cleanups != 1 {
		t.Errorf("cleanups = %d after Unmount, want 1", cleanups)
	}
}

func TestBareThunkAsUnmountHandler(t *testing.T) {
	container := dom.NewElement("div")
	calls := 0
	comp := NewComponent(func(any, EmitFunc) any {
		return Steps(func(any) any {
			return func() any {
				calls++
				return HTML(msgTpl, "held")
			}
		})
	})

	Mount(comp, container)
	if got := container.TextContent(); got != "held" {
		t.Fatalf("TextContent() = %q, want held", got)
	}
	if calls != 1 {
		t.Fatalf("calls = %d after mount, want 1", calls)
	}

	Unmount(container)
	if calls != 2 {
		t.Errorf("calls = %d after Unmount, want 2 (handler re-invoked)", calls)
	}
}

func TestUnmountHandlerReceivesArgs(t *testing.T) {
	container := dom.NewElement("div")
	calls := 0
	var first []any
	handler := CleanupFunc(func(args ...any) any {
		calls++
		if calls == 1 {
			first = args
		}
		return HTML(msgTpl, "held")
	})
	comp := NewComponent(func(any, EmitFunc) any {
		return Steps(func(any) any { return handler })
	}, "session", 7)

	Mount(comp, container)
	if got := container.TextContent(); got != "held" {
		t.Fatalf("TextContent() = %q, want held", got)
	}
	if calls != 1 {
		t.Fatalf("calls = %d after mount, want 1", calls)
	}
	if diff := cmp.Diff([]any{"session", 7}, first); diff != "" {
		t.Errorf("captured args mismatch (-want +got):\n%s", diff)
	}

	Unmount(container)
	if calls != 2 {
		t.Errorf("calls = %d after Unmount, want 2 (handler re-invoked)", calls)
	}
}

func TestAsyncComponentDiagnostic(t *testing.T) {
	var got []diag.Diagnostic
	restore := diag.Capture(func(d diag.Diagnostic) { got = append(got, d) })
	defer restore()

	container := dom.NewElement("div")
	comp := NewComponent(func(any, EmitFunc) any {
		return make(chan int)
	})

	if root := Mount(comp, container); root != nil {
		t.Errorf("Mount root = %v for async component, want nil", root)
	}
	if len(got) != 1 || got[0].Code != diag.AsyncComponent {
		t.Errorf("diagnostics = %v, want one %s", got, diag.AsyncComponent)
	}
}

type await struct{ pending bool }

func (a await) Pending() bool { return a.pending }

func TestPendingAwaitableDiagnostic(t *testing.T) {
	var got []diag.Diagnostic
	restore := diag.Capture(func(d diag.Diagnostic) { got = append(got, d) })
	defer restore()

	container := dom.NewElement("div")
	Mount(NewComponent(func(any, EmitFunc) any { return await{pending: true} }), container)
	if len(got) != 1 || got[0].Code != diag.AsyncComponent {
		t.Fatalf("diagnostics = %v, want one %s", got, diag.AsyncComponent)
	}

	// A settled awaitable is not a misuse.
	got = nil
	Mount(NewComponent(func(any, EmitFunc) any { return await{pending: false} }), dom.NewElement("div"))
	if len(got) != 0 {
		t.Errorf("settled awaitable reported: %v", got)
	}
}

func TestRenderEventRerenders(t *testing.T) {
	container := dom.NewElement("div")
	message := "before"
	comp := NewComponent(func(any, EmitFunc) any {
		return HTML(msgTpl, message)
	})

	Mount(comp, container)
	p := container.FirstChild()

	message = "after"
	ContextOf(container).Emit(RenderEvent, nil)

	if got := container.TextContent(); got != "after" {
		t.Errorf("TextContent() = %q after render event, want after", got)
	}
	if container.FirstChild() != p {
		t.Errorf("render event rebuilt the subtree instead of updating it")
	}
}

func TestComponentRemountUpdatesInPlace(t *testing.T) {
	container := dom.NewElement("div")
	current := "one"
	fn := func(any, EmitFunc) any { return HTML(msgTpl, current) }

	Mount(NewComponent(fn), container)
	p := container.FirstChild()

	current = "two"
	Mount(NewComponent(fn), container)

	if container.FirstChild() != p {
		t.Errorf("remounting the same component rebuilt the subtree")
	}
	if got := container.TextContent(); got != "two" {
		t.Errorf("TextContent() = %q, want two", got)
	}
}

func TestComponentKeyOverride(t *testing.T) {
	container := dom.NewElement("div")
	fn := func(any, EmitFunc) any { return HTML(msgTpl, "x") }

	Mount(NewComponent(fn).WithKey("a"), container)
	ctx := ContextOf(container)
	Mount(NewComponent(fn).WithKey("b"), container)

	if ContextOf(container) == ctx {
		t.Errorf("context survived a key change")
	}
}

func TestUseInsideComponent(t *testing.T) {
	container := dom.NewElement("div")
	var seen any
	comp := NewComponent(func(state any, emit EmitFunc) any {
		Use(func(s any, e EmitFunc) { seen = s })
		return HTML(msgTpl, "x")
	})

	Mount(comp, container, "scoped")
	if seen != "scoped" {
		t.Errorf("Use saw state %v, want scoped", seen)
	}
}

func TestUseOutsideScopeIsNoop(t *testing.T) {
	called := false
	Use(func(any, EmitFunc) { called = true })
	if called {
		t.Errorf("Use invoked its callback outside an active scope")
	}
}

func TestComponentRender(t *testing.T) {
	comp := NewComponent(func(any, EmitFunc) any {
		return HTML(msgTpl, "standalone")
	})
	root := comp.Render()
	if root == nil || root.TextContent() != "standalone" {
		t.Errorf("Render() = %v, want <p>standalone</p>", root)
	}
}

func TestComponentArgsAccessors(t *testing.T) {
	comp := NewComponent(func(any, EmitFunc) any { return nil }, 1, 2)
	if diff := cmp.Diff([]any{1, 2}, comp.Args()); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	next := comp.With(3)
	if diff := cmp.Diff([]any{3}, next.Args()); diff != "" {
		t.Errorf("With args mismatch (-want +got):\n%s", diff)
	}
	if next.Key() != comp.Key() {
		t.Errorf("With changed the key")
	}
}
