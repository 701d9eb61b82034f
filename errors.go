package wsdeque

import "errors"

var (
	// ErrFull is returned by Push and reports that the deque is at capacity.
	// The rejected item stays with the caller.
	ErrFull = errors.New("wsdeque: deque is full")

	// ErrEmpty is returned by StealAndPop when there is nothing to steal.
	ErrEmpty = errors.New("wsdeque: nothing to steal")

	// ErrBusy is returned by StealAndPop while the worker is draining or
	// another steal holds the front of the deque. Callers retry later.
	ErrBusy = errors.New("wsdeque: front of deque is busy")
)
