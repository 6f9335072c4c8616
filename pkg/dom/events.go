package dom

import "sync"

// Per-node event adapter: at most one live handler per event type per
// node. Handlers live in a non-owning side table keyed by node identity
// so template trees stay clonable and nodes stay plain data. Entries are
// only ever looked up or removed point-wise, never iterated.

// Handler is an event callback; detail carries the dispatch payload.
type Handler func(detail any)

type listenerSet struct {
	handlers map[string]Handler
}

var (
	listenerMu sync.Mutex
	listeners  = make(map[*Node]*listenerSet)
)

// SetListener registers h as the single handler for event on n,
// replacing any previous handler for that event type. A nil handler
// unregisters.
func SetListener(n *Node, event string, h Handler) {
	if n == nil || event == "" {
		return
	}
	listenerMu.Lock()
	defer listenerMu.Unlock()
	if h == nil {
		if set, ok := listeners[n]; ok {
			delete(set.handlers, event)
			if len(set.handlers) == 0 {
				delete(listeners, n)
			}
		}
		return
	}
	set, ok := listeners[n]
	if !ok {
		set = &listenerSet{handlers: make(map[string]Handler)}
		listeners[n] = set
	}
	set.handlers[event] = h
}

// RemoveListener unregisters the handler for event on n.
func RemoveListener(n *Node, event string) {
	SetListener(n, event, nil)
}

// Listener returns the handler currently registered for event on n.
func Listener(n *Node, event string) Handler {
	listenerMu.Lock()
	defer listenerMu.Unlock()
	if set, ok := listeners[n]; ok {
		return set.handlers[event]
	}
	return nil
}

// Dispatch invokes the handler registered for event on n, if any, and
// reports whether a handler ran.
func Dispatch(n *Node, event string, detail any) bool {
	h := Listener(n, event)
	if h == nil {
		return false
	}
	h(detail)
	return true
}

// ClearListeners drops every handler for n and, recursively, for its
// subtree. Called when live nodes are discarded.
func ClearListeners(n *Node) {
	if n == nil {
		return
	}
	listenerMu.Lock()
	delete(listeners, n)
	listenerMu.Unlock()
	for _, c := range n.children {
		ClearListeners(c)
	}
}
