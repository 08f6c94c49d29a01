package tree

import (
	"slices"
	"sync"
)

// Emitter fans a no-payload change notification out to any number of
// listeners. Listeners run on the goroutine that calls Fire, outside the
// emitter's lock, so a listener may subscribe or unsubscribe.
type Emitter struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func()
}

// Subscription detaches a listener when closed.
type Subscription struct {
	once   sync.Once
	remove func()
}

// Close removes the listener. Further calls do nothing.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.remove)
}

// On registers fn and returns the handle that removes it.
func (e *Emitter) On(fn func()) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[int]func())
	}
	id := e.next
	e.next++
	e.listeners[id] = fn

	return &Subscription{remove: func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}}
}

// Fire calls every registered listener in registration order.
func (e *Emitter) Fire() {
	e.mu.Lock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	slices.Sort(ids)

	for _, id := range ids {
		e.mu.Lock()
		fn, ok := e.listeners[id]
		e.mu.Unlock()
		if ok {
			fn()
		}
	}
}
