// Package state holds the client-side collection state for the storefront's
// cart and wishlist, and the pure transition functions that mutate it. All
// transitions are value-in value-out with no I/O; the sync controllers own
// when they run.
package state

// Status describes where a collection is in its load lifecycle. It replaces
// the per-provider in-flight boolean with a tag the transitions themselves
// maintain, so the single-flight invariant lives next to the data it guards.
type Status string

const (
	// StatusIdle means the collection has never been loaded this session.
	StatusIdle Status = "idle"
	// StatusLoading means a sync operation is in flight.
	StatusLoading Status = "loading"
	// StatusReady means the collection reflects the last server response.
	StatusReady Status = "ready"
	// StatusError means the last operation failed; Items keep their
	// last-known-good value.
	StatusError Status = "error"
)

// Collection is the shared state shape for cart and wishlist: the entries in
// server order, the load status, and the last failure description.
type Collection[T any] struct {
	Items  []T
	Status Status
	Error  string
}

// WithLoading marks a sync operation in flight. Items and Error are untouched.
func (c Collection[T]) WithLoading() Collection[T] {
	c.Status = StatusLoading
	return c
}

// WithError records a failure. Items keep their last-known-good value.
func (c Collection[T]) WithError(msg string) Collection[T] {
	c.Status = StatusError
	c.Error = msg
	return c
}

// Reconciled replaces the entries wholesale with the server's response,
// clears any previous error, and marks the collection ready. This is the only
// transition the controllers treat as authoritative.
func (c Collection[T]) Reconciled(items []T) Collection[T] {
	if items == nil {
		items = []T{}
	}
	c.Items = items
	c.Status = StatusReady
	c.Error = ""
	return c
}

// Cleared resets the collection to its initial empty state.
func (c Collection[T]) Cleared() Collection[T] {
	return Collection[T]{Items: []T{}, Status: StatusIdle}
}

// Len returns the number of entries.
func (c Collection[T]) Len() int {
	return len(c.Items)
}
