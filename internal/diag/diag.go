// Package diag is the assertion-style channel for misuse diagnostics.
// Reports are non-fatal: the renderer keeps going with best-effort
// behavior, and the diagnostic is logged (and handed to a capture hook
// in tests). Hard failures from user code are never routed here; they
// propagate to the Mount/Render caller unmodified.
package diag

import (
	"fmt"
	"log/slog"
	"sync"
)

// Category classifies where in the pipeline the misuse happened.
type Category string

const (
	CategoryCompile   Category = "compile"
	CategoryRender    Category = "render"
	CategoryLifecycle Category = "lifecycle"
)

// Diagnostic is one reported misuse.
type Diagnostic struct {
	Code     string
	Category Category
	Message  string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return d.Message
}

type template struct {
	Category Category
	Message  string
}

// Known diagnostic codes.
const (
	DuplicateKey      = "L001"
	NamespaceMismatch = "L002"
	AsyncComponent    = "L003"
)

var registry = map[string]template{
	DuplicateKey: {
		Category: CategoryRender,
		Message:  "duplicate key among keyed list siblings; second occurrence treated as unkeyed",
	},
	NamespaceMismatch: {
		Category: CategoryCompile,
		Message:  "markup-mode template contains a namespaced subtree of the other mode",
	},
	AsyncComponent: {
		Category: CategoryLifecycle,
		Message:  "component resolved to a pending asynchronous result; render a placeholder and request a new pass instead",
	},
}

var (
	mu      sync.Mutex
	logger  = slog.Default()
	capture func(Diagnostic)
)

// SetLogger replaces the logger used for reports.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l != nil {
		logger = l
	}
}

// Capture installs fn as an observer for reports and returns a restore
// function. Intended for tests asserting on the diagnostics channel.
func Capture(fn func(Diagnostic)) (restore func()) {
	mu.Lock()
	prev := capture
	capture = fn
	mu.Unlock()
	return func() {
		mu.Lock()
		capture = prev
		mu.Unlock()
	}
}

// Report emits the registered diagnostic for code, with optional detail
// appended. Unknown codes still produce a report.
func Report(code string, detail string, args ...any) {
	tpl, ok := registry[code]
	if !ok {
		tpl = template{Category: CategoryRender, Message: "unknown diagnostic"}
	}
	d := Diagnostic{Code: code, Category: tpl.Category, Message: tpl.Message}
	if detail != "" {
		d.Message = d.Message + ": " + fmt.Sprintf(detail, args...)
	}
	mu.Lock()
	l := logger
	cap := capture
	mu.Unlock()
	l.Warn("loom misuse", "code", d.Code, "category", string(d.Category), "message", d.Message)
	if cap != nil {
		cap(d)
	}
}
