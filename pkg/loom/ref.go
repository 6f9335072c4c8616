package loom

import (
	"sync"

	"github.com/loomdev/loom/pkg/dom"
)

// Ref is an external reference handle: its current value is the live
// node most recently bound to it through the reserved "ref" attribute.
// The handle does not own the node; bindings live in a non-owning side
// table keyed by handle identity.
type Ref struct{ _ byte }

var (
	refMu sync.Mutex
	refs  = make(map[*Ref]*dom.Node)
)

// NewRef creates an unbound reference handle.
func NewRef() *Ref {
	return &Ref{}
}

// Node returns the live node currently bound to the handle, or nil.
func (r *Ref) Node() *dom.Node {
	refMu.Lock()
	defer refMu.Unlock()
	return refs[r]
}

func (r *Ref) bind(n *dom.Node) {
	refMu.Lock()
	refs[r] = n
	refMu.Unlock()
}

// Release drops the handle's binding.
func (r *Ref) Release() {
	refMu.Lock()
	delete(refs, r)
	refMu.Unlock()
}
