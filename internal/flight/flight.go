// Package flight collapses concurrent identical requests into a single
// underlying call. Callers that arrive while a call for the same key is in
// flight wait for and share its result instead of issuing their own.
package flight

import "sync"

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Group deduplicates function calls by key. The zero value is ready to use.
type Group[V any] struct {
	mu    sync.Mutex
	calls map[string]*call[V]
}

// Do invokes fn exactly once per key among concurrent callers. Every caller
// sharing the key receives the same value or the same error. The key is
// released before the result is delivered, so a later call — even one issued
// immediately after a failure — starts a fresh invocation rather than
// replaying a stale outcome.
//
// The producer runs in the goroutine of the first caller. Joiners block
// until it completes; a joiner abandoning its own request does not cancel
// the producer.
func (g *Group[V]) Do(key string, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[V])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err
	}
	c := &call[V]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err
}

// Len returns the number of keys with a call currently in flight.
// Diagnostic only.
func (g *Group[V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
