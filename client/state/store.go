package state

import "sync"

// Store owns one collection's state. All reads and writes go through it, so
// controllers never mutate state concurrently and subscribers observe every
// committed transition. There is one store per collection, scoped to the
// application session.
type Store[S any] struct {
	mu    sync.RWMutex
	state S
	subs  []func(S)
}

// NewStore creates a store with the given initial state.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// Get returns the current state snapshot.
func (st *Store[S]) Get() S {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Update applies a transition atomically and notifies subscribers with the
// new state. The transition runs under the store lock and must not block.
func (st *Store[S]) Update(fn func(S) S) S {
	st.mu.Lock()
	st.state = fn(st.state)
	next := st.state
	subs := st.subs
	st.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return next
}

// TryUpdate applies a transition only if the guard accepts the current state.
// It returns the (possibly unchanged) state and whether the transition ran.
// This is the compare-and-set used for single-flight load suppression.
func (st *Store[S]) TryUpdate(guard func(S) bool, fn func(S) S) (S, bool) {
	st.mu.Lock()
	if !guard(st.state) {
		cur := st.state
		st.mu.Unlock()
		return cur, false
	}
	st.state = fn(st.state)
	next := st.state
	subs := st.subs
	st.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return next, true
}

// Subscribe registers a callback invoked after every committed transition.
// Subscribers are the UI re-render hook; callbacks run on the updating
// goroutine and must be fast.
func (st *Store[S]) Subscribe(fn func(S)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}
