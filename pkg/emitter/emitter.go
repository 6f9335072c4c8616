// Package emitter provides a small publish/subscribe event bus. Every
// mount point owns one instance, used for imperative re-render requests
// and arbitrary user-defined signals.
package emitter

import "sync"

// Handler receives the payload passed to Emit.
type Handler func(detail any)

type subscription struct {
	id      int
	handler Handler
	once    bool
}

// Emitter is a per-mount event bus. Safe for concurrent use, though the
// rendering core itself is single-threaded.
type Emitter struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
}

// New creates an empty Emitter.
func New() *Emitter {
	return &Emitter{subs: make(map[string][]subscription)}
}

// On subscribes h to event and returns a function that removes exactly
// this subscription.
func (e *Emitter) On(event string, h Handler) (off func()) {
	return e.subscribe(event, h, false)
}

// Once subscribes h to event for a single delivery.
func (e *Emitter) Once(event string, h Handler) (off func()) {
	return e.subscribe(event, h, true)
}

func (e *Emitter) subscribe(event string, h Handler, once bool) func() {
	if h == nil {
		return func() {}
	}
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs[event] = append(e.subs[event], subscription{id: id, handler: h, once: once})
	e.mu.Unlock()
	return func() { e.remove(event, id) }
}

func (e *Emitter) remove(event string, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	subs := e.subs[event]
	for i, s := range subs {
		if s.id == id {
			e.subs[event] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Off removes every subscription for event.
func (e *Emitter) Off(event string) {
	e.mu.Lock()
	delete(e.subs, event)
	e.mu.Unlock()
}

// Emit delivers detail to every subscriber of event, in subscription
// order. Once-subscriptions are removed before their handler runs, so a
// handler emitting the same event again cannot re-trigger itself.
func (e *Emitter) Emit(event string, detail any) {
	e.mu.Lock()
	subs := e.subs[event]
	fire := make([]Handler, 0, len(subs))
	kept := subs[:0]
	for _, s := range subs {
		fire = append(fire, s.handler)
		if !s.once {
			kept = append(kept, s)
		}
	}
	e.subs[event] = kept
	e.mu.Unlock()
	for _, h := range fire {
		h(detail)
	}
}

// Close drops all subscriptions.
func (e *Emitter) Close() {
	e.mu.Lock()
	e.subs = make(map[string][]subscription)
	e.mu.Unlock()
}
