// Package loomtest provides test helpers for mounting templates and
// inspecting the resulting live tree.
package loomtest

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/loomdev/loom/pkg/dom"
	"github.com/loomdev/loom/pkg/loom"
)

// Harness owns a detached container node to mount content into.
type Harness struct {
	t         *testing.T
	Container *dom.Node
}

// New creates a harness with a fresh container element.
//
// Example:
//
//	h := loomtest.New(t)
//	h.Mount(loom.HTML(tpl, "hello"))
//	if got := h.Text(); got != "hello" {
//	    t.Errorf("Text() = %q, want hello", got)
//	}
func New(t *testing.T) *Harness {
	t.Helper()
	container := dom.NewElement("div")
	container.SetAttr("data-harness", uuid.NewString()[:8])
	return &Harness{t: t, Container: container}
}

// Mount mounts content into the harness container and returns the root.
func (h *Harness) Mount(content any, state ...any) *dom.Node {
	h.t.Helper()
	return loom.Mount(content, h.Container, state...)
}

// Unmount tears down the container's mount.
func (h *Harness) Unmount() {
	h.t.Helper()
	loom.Unmount(h.Container)
}

// Text returns the container's visible text content.
func (h *Harness) Text() string {
	return h.Container.TextContent()
}

// HTML returns the container's serialized inner markup.
func (h *Harness) HTML() string {
	var b strings.Builder
	for _, c := range h.Container.Children() {
		b.WriteString(c.OuterHTML())
	}
	return b.String()
}

// Find returns the first node in the container's subtree carrying the
// given id attribute, failing the test when absent.
func (h *Harness) Find(id string) *dom.Node {
	h.t.Helper()
	if n := findByID(h.Container, id); n != nil {
		return n
	}
	h.t.Fatalf("Find(%q): no node with that id", id)
	return nil
}

// Query returns the first element with the given tag, or nil.
func (h *Harness) Query(tag string) *dom.Node {
	return findByTag(h.Container, tag)
}

func findByID(n *dom.Node, id string) *dom.Node {
	if v, ok := n.Attr("id"); ok && v == id {
		return n
	}
	for _, c := range n.Children() {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findByTag(n *dom.Node, tag string) *dom.Node {
	if n.Kind == dom.KindElement && n.Tag == tag {
		return n
	}
	for _, c := range n.Children() {
		if found := findByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}
