package test

import (
	"sync/atomic"

	"github.com/cvest/stormpot-go/pool"
)

// widget is the user object these tests pool. A fresh *widget comes back
// zeroed; the counter on countingAllocator lets tests assert exactly how
// many were ever created.
type widget struct {
	id int
}

// countingAllocator hands out sequentially numbered widgets and counts
// every Allocate/Deallocate call, independent of the pool's own bookkeeping,
// so tests can cross-check allocCount and tombstone counts against a
// second, independent witness.
type countingAllocator struct {
	allocated   atomic.Int64
	deallocated atomic.Int64
	nextID      atomic.Int64
}

func (a *countingAllocator) Allocate(_ pool.SlotInfo[*widget]) (*widget, error) {
	a.allocated.Add(1)
	return &widget{id: int(a.nextID.Add(1))}, nil
}

func (a *countingAllocator) Deallocate(*widget) {
	a.deallocated.Add(1)
}

// failEveryOddAllocator fails on the 1st, 3rd, 5th... call to Allocate and
// succeeds on every even-numbered call, per spec scenario S5.
type failEveryOddAllocator struct {
	calls atomic.Int64
}

func (a *failEveryOddAllocator) Allocate(_ pool.SlotInfo[*widget]) (*widget, error) {
	n := a.calls.Add(1)
	if n%2 == 1 {
		return nil, errAllocatorFailed
	}
	return &widget{id: int(n)}, nil
}

func (a *failEveryOddAllocator) Deallocate(*widget) {}

var errAllocatorFailed = &allocatorFailedError{}

type allocatorFailedError struct{}

func (*allocatorFailedError) Error() string { return "allocator: induced failure" }

// neverExpire is an Expiration that never considers a slot expired, the
// idiomatic stand-in for spec scenario S1's "ttl=∞".
func neverExpire() pool.Expiration[*widget] {
	return pool.ExpirationFunc[*widget](func(pool.SlotInfo[*widget]) bool { return false })
}

// countingExpiration is the Go port of CountingExpiration.java: an
// Expiration that counts its calls and returns pre-programmed replies. The
// original indexes replies with max(count, len(replies)-1), which pins the
// index to the last reply forever instead of clamping only once count runs
// past the end — spec.md §9 flags this as a bug and calls for min instead,
// applied here.
type countingExpiration struct {
	replies []bool
	count   atomic.Int64
}

func newCountingExpiration(replies ...bool) *countingExpiration {
	return &countingExpiration{replies: replies}
}

func (c *countingExpiration) HasExpired(pool.SlotInfo[*widget]) bool {
	n := c.count.Add(1) - 1
	idx := n
	if idx > int64(len(c.replies)-1) {
		idx = int64(len(c.replies) - 1)
	}
	return c.replies[idx]
}

func (c *countingExpiration) Count() int64 { return c.count.Load() }
