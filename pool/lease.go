package pool

import "sync/atomic"

// Lease is the handle a caller gets back from Pool.Claim: the claimed user
// object plus the slot reference needed to release it. Spec.md §4.6 is
// explicit that release uses "the slot reference [the caller] was handed" —
// this is that reference, generalized into a first-class type instead of an
// implicit out-of-band mapping from object identity back to its slot.
type Lease[T any] struct {
	pool     *Pool[T]
	slot     *slot[T]
	released atomic.Bool
}

// Value returns the claimed user object.
func (l *Lease[T]) Value() T {
	return l.slot.obj
}

// Release returns the slot to the live queue for reuse. Double-release is a
// programmer error and fails with ErrIllegalState.
func (l *Lease[T]) Release() error {
	return l.pool.release(l, false)
}

// Invalidate returns the slot for reallocation instead of reuse, e.g.
// because the caller detected the object is broken in a way Expiration
// cannot see. Double-release is a programmer error and fails with
// ErrIllegalState.
func (l *Lease[T]) Invalidate() error {
	return l.pool.release(l, true)
}
