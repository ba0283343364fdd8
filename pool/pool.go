package pool

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Pool is a generic object pool: a bounded set of expensive, reusable
// objects of type T, claimed and released under bounded concurrency, with
// allocation, re-validation and deallocation run off the claim path by a
// background scheduler. Grounded on spec.md §3-4 and the teacher's
// Pool[T] (pool/structs.go), generalized from a ring-buffer-backed cache
// to the slot/live-queue/dead-queue machinery this spec calls for.
type Pool[T any] struct {
	allocator  Allocator[T]
	expiration Expiration[T]
	scheduler  *Scheduler
	clock      *monotonicClock

	verbose bool
	logger  func(format string, args ...any)

	targetSize     atomic.Int64
	liveCount      atomic.Int64
	allocCount     atomic.Int64
	totalSlots     atomic.Int64
	tombstoneCount atomic.Int64
	shuttingDown   atomic.Bool

	live *liveQueue[T]
	dead deadQueue[T]

	completion   *Completion
	shutdownOnce sync.Once
}

// NewPool builds a Pool from cfg, creates cfg.GetSize() slots in the DEAD
// state, and submits the initial allocation run to cfg's Scheduler, which
// brings them to LIVE for the first time on its shared worker pool.
func NewPool[T any](cfg *Config[T]) (*Pool[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool[T]{
		allocator:  cfg.allocator,
		expiration: cfg.expiration,
		scheduler:  cfg.scheduler,
		verbose:    cfg.verbose,
		logger:     cfg.logf,
		live:       newLiveQueue[T](cfg.size * 2),
		completion: newCompletion(),
	}
	p.targetSize.Store(int64(cfg.size))
	p.scheduler.incrementReferences()
	p.clock = p.scheduler.clock

	for i := 0; i < cfg.size; i++ {
		p.dead.push(p.makeSlot())
	}

	p.wakeAllocator()

	return p, nil
}

// makeSlot creates a new slot and records it against totalSlots, so that
// shutdown completion can wait for every slot ever created to reach
// TOMBSTONE rather than racing liveCount's real-time view (see
// checkShutdownComplete).
func (p *Pool[T]) makeSlot() *slot[T] {
	p.totalSlots.Add(1)
	return newSlot(p)
}

func (p *Pool[T]) logf(format string, args ...any) {
	if !p.verbose {
		return
	}
	if p.logger != nil {
		p.logger(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Claim pops a slot from the live queue, skipping over slots made surplus
// by a shrink, expired slots (re-queued for reallocation), and poisoned
// slots (surfaced as AllocationFailure), until it finds one to hand the
// caller or the timeout elapses. Spec.md §4.6.
func (p *Pool[T]) Claim(timeout Timeout) (*Lease[T], error) {
	if p.shuttingDown.Load() {
		return nil, ErrPoolClosed
	}

	deadline := time.Now().Add(timeout.Duration())
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		s := p.live.claim(NewTimeout(remaining))
		if s == nil {
			return nil, nil
		}

		if p.liveCount.Load() > p.targetSize.Load() {
			p.retireSurplus(s)
			continue
		}

		if s.allocErr != nil {
			err := s.allocErr
			s.allocErr = nil
			if !s.transition(slotLive, slotDead) {
				s.state.Store(uint32(slotDead))
			}
			p.dead.push(s)
			p.wakeAllocator()
			return nil, &AllocationFailure{Err: err}
		}

		now := p.clock.nowMillis()
		if p.expiration.HasExpired(slotInfo[T]{s: s, now: now}) {
			p.expire(s)
			continue
		}

		if !s.transition(slotLive, slotClaimed) {
			// Lost a race with a concurrent shrink/expire path on this
			// slot; retry rather than hand out a half-transitioned slot.
			continue
		}
		s.claimCount++
		return &Lease[T]{pool: p, slot: s}, nil
	}
}

// retireSurplus permanently discards a LIVE slot that appeared after
// SetTargetSize shrank the pool, per spec.md §4.6's "shrinking marks
// surplus LIVE slots DEAD lazily as they appear in LiveQueue". Unlike
// expire, a surplus slot must never be reallocated — bouncing it through
// the dead queue would hand it straight back to the allocator worker,
// which has no way to tell "surplus" apart from "just expired" and would
// undo the shrink. So the deallocation happens synchronously, on the
// claiming goroutine, and the slot goes straight to TOMBSTONE.
func (p *Pool[T]) retireSurplus(s *slot[T]) {
	if !s.transition(slotLive, slotDead) {
		return
	}
	p.liveCount.Add(-1)
	if s.hasObj {
		p.allocator.Deallocate(s.obj)
		s.hasObj = false
		var zero T
		s.obj = zero
	}
	s.state.Store(uint32(slotTombstone))
	p.tombstoneCount.Add(1)
	p.checkShutdownComplete()
}

func (p *Pool[T]) expire(s *slot[T]) {
	if s.transition(slotLive, slotDead) {
		p.liveCount.Add(-1)
	}
	p.dead.push(s)
	p.wakeAllocator()
}

// release is invoked by Lease.Release/Invalidate. invalidate forces the
// slot to the DEAD path regardless of expiration.
func (p *Pool[T]) release(l *Lease[T], invalidate bool) error {
	if !l.released.CompareAndSwap(false, true) {
		return ErrIllegalState
	}
	s := l.slot

	if invalidate || p.shuttingDown.Load() {
		if s.transition(slotClaimed, slotDead) {
			p.liveCount.Add(-1)
		}
		p.dead.push(s)
		p.wakeAllocator()
		return nil
	}

	if !s.transition(slotClaimed, slotLive) {
		return ErrIllegalState
	}
	p.live.push(s)
	return nil
}

// Shutdown sets the one-way shuttingDown flag, drains every slot currently
// sitting unclaimed in the live queue to the dead queue for deallocation,
// and returns a Completion that becomes ready once every slot this pool has
// created has reached TOMBSTONE (see checkShutdownComplete).
// Already-claimed slots are routed to deallocation as their callers release
// or invalidate them, per spec.md §4.6 and §5's "shutdown happens-before
// the deallocation of any slot that was LIVE or CLAIMED at the moment
// shuttingDown became observable".
func (p *Pool[T]) Shutdown() *Completion {
	if !p.shuttingDown.CompareAndSwap(false, true) {
		return p.completion
	}

	p.scheduler.submit(p.drainLiveOnShutdown)

	return p.completion
}

// checkShutdownComplete fires once every slot this pool has ever created
// has reached TOMBSTONE. It deliberately does not key off liveCount:
// liveCount drops to 0 as soon as the last live/claimed slot is handed to
// the dead queue, which can race ahead of the worker actually calling
// Deallocate on it — and spec property 3 requires Deallocate to have run
// exactly once per live object before Await can observe completion.
func (p *Pool[T]) checkShutdownComplete() {
	if p.shuttingDown.Load() && p.tombstoneCount.Load() >= p.totalSlots.Load() {
		p.stopOnce()
	}
}

// stopOnce runs exactly once per pool, once every slot it ever created has
// reached TOMBSTONE. Unlike a dedicated per-pool worker, there is no local
// goroutine to join here: the last drainDead/drainLiveOnShutdown task to run
// observed the final tombstone and is the one calling this, so releasing
// the scheduler reference and signalling completion is all that is left.
func (p *Pool[T]) stopOnce() {
	p.shutdownOnce.Do(func() {
		p.scheduler.decrementReferences()
		p.completion.signalDone()
	})
}

// SetTargetSize adjusts the pool's target capacity. Growing schedules new
// allocations; shrinking marks surplus slots DEAD lazily as described in
// Claim.
func (p *Pool[T]) SetTargetSize(n int) error {
	if n < 1 {
		return ErrIllegalArgument
	}
	old := p.targetSize.Swap(int64(n))
	if int64(n) > old {
		for i := int64(0); i < int64(n)-old; i++ {
			p.dead.push(p.makeSlot())
		}
		p.wakeAllocator()
	}
	return nil
}

// TargetSize returns the pool's current configured capacity.
func (p *Pool[T]) TargetSize() int {
	return int(p.targetSize.Load())
}

// LiveCount returns the number of slots currently LIVE or CLAIMED.
func (p *Pool[T]) LiveCount() int {
	return int(p.liveCount.Load())
}

// AllocCount returns the total number of allocation attempts (successful or
// not) this pool has ever made.
func (p *Pool[T]) AllocCount() int {
	return int(p.allocCount.Load())
}
