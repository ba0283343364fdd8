package pool

import (
	"errors"
	"fmt"
)

// ErrIllegalArgument is returned when a configuration value is invalid: a nil
// allocator or scheduler, a non-positive size or target size, or a
// non-positive TTL.
var ErrIllegalArgument = errors.New("pool: illegal argument")

// ErrIllegalState is returned when an operation is attempted on a pool in the
// wrong lifecycle state, such as a double release. An enqueue onto a
// scheduler with a zero reference count panics with it.
var ErrIllegalState = errors.New("pool: illegal state")

// ErrPoolClosed is returned by Claim once the pool has started shutting down.
var ErrPoolClosed = errors.New("pool: closed")

// AllocationFailure wraps an error returned by the user-supplied Allocator.
// It surfaces to whichever caller's Claim popped the poisoned slot; the slot
// is then re-queued for another allocation attempt.
type AllocationFailure struct {
	Err error
}

func (e *AllocationFailure) Error() string {
	return fmt.Sprintf("pool: allocation failed: %v", e.Err)
}

func (e *AllocationFailure) Unwrap() error {
	return e.Err
}
