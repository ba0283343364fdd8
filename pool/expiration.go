package pool

import "time"

// SlotInfo is the read-only view of a slot exposed to Expiration
// implementations. It is a pure snapshot: AgeMillis, ClaimCount and Poolable
// must not be used to mutate pool state.
type SlotInfo[T any] interface {
	AgeMillis() int64
	ClaimCount() uint64
	Poolable() T
}

// Expiration decides whether a slot's current user object should be
// discarded and reallocated. Implementations must be pure, side-effect-free
// functions of the given SlotInfo.
type Expiration[T any] interface {
	HasExpired(info SlotInfo[T]) bool
}

// ExpirationFunc adapts a plain function to the Expiration interface.
type ExpirationFunc[T any] func(info SlotInfo[T]) bool

func (f ExpirationFunc[T]) HasExpired(info SlotInfo[T]) bool { return f(info) }

// TimeExpiration is the built-in Expiration: a slot is expired once its age
// strictly exceeds ttl. An age exactly equal to ttl is NOT expired
// (spec.md §3, testable property 4).
type TimeExpiration[T any] struct {
	ttl time.Duration
}

// NewTimeExpiration builds a TimeExpiration with the given TTL. ttl must be
// at least one nanosecond... in practice, at least one unit of whatever
// resolution the caller cares about; this mirrors the original's
// "TTL must be ≥1 unit" rule by rejecting ttl <= 0.
func NewTimeExpiration[T any](ttl time.Duration) (*TimeExpiration[T], error) {
	if ttl <= 0 {
		return nil, ErrIllegalArgument
	}
	return &TimeExpiration[T]{ttl: ttl}, nil
}

func (e *TimeExpiration[T]) HasExpired(info SlotInfo[T]) bool {
	return info.AgeMillis() > e.ttl.Milliseconds()
}
