package events

import "sync"

// Signal is a typed observer list. Subscribers are invoked in registration
// order on every Emit. All methods are safe for concurrent use.
type Signal[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id   int
	fn   func(T)
	once bool
}

// NewSignal creates an empty signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Subscribe registers fn to be called on every Emit.
// The returned function removes the subscription; calling it more than once is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) (off func()) {
	return s.add(fn, false)
}

// Once registers fn to be called on the next Emit only.
func (s *Signal[T]) Once(fn func(T)) (off func()) {
	return s.add(fn, true)
}

func (s *Signal[T]) add(fn func(T), once bool) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn, once: once})

	return func() { s.remove(id) }
}

func (s *Signal[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every current subscriber with v. One-shot subscribers are
// removed before their callback runs, so an Emit from inside a callback
// cannot trigger them twice. Callbacks run outside the signal's lock.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.subs))
	kept := s.subs[:0]
	for _, sub := range s.subs {
		fns = append(fns, sub.fn)
		if !sub.once {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of active subscriptions.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
