package pool

// drainDead is the allocator worker's unit of work: it drains the dead
// queue, invokes the user allocator, and publishes freshly (re)allocated
// slots to the live queue — or, during shutdown, deallocates and
// tombstones them. Grounded on spec.md §4.2's DEAD transitions and the
// "Allocator worker(s)" row of the component table in spec.md §2.
//
// It runs as an immediateTask dispatched by the shared Scheduler's
// controller (see wakeAllocator), not on a goroutine owned by this pool —
// the same worker pool drains every pool bound to the scheduler, matching
// BackgroundScheduler.java's one-controller-per-scheduler design instead of
// one allocator goroutine per pool.
func (p *Pool[T]) drainDead() {
	for {
		slots := p.dead.popAll()
		if len(slots) == 0 {
			return
		}
		for _, s := range slots {
			p.processDeadSlot(s)
		}
	}
}

func (p *Pool[T]) processDeadSlot(s *slot[T]) {
	if p.shuttingDown.Load() {
		p.tombstone(s)
		return
	}

	// A slot arriving here because it expired or was invalidated still
	// carries its previous object; discard it before allocating a
	// replacement. A slot arriving here for the first time, or after a
	// prior allocation failure, has none.
	if s.hasObj {
		p.allocator.Deallocate(s.obj)
		s.hasObj = false
		var zero T
		s.obj = zero
	}

	now := p.clock.nowMillis()
	p.allocCount.Add(1)
	obj, err := p.allocator.Allocate(slotInfo[T]{s: s, now: now})
	if err != nil {
		s.allocErr = err
		if !s.transition(slotDead, slotLive) {
			s.state.Store(uint32(slotLive))
		}
		p.live.push(s)
		p.logf("[POOL] allocation failed: %v", err)
		return
	}

	s.obj = obj
	s.hasObj = true
	s.createdAtMillis = now
	s.claimCount = 0
	s.allocErr = nil
	if !s.transition(slotDead, slotLive) {
		s.state.Store(uint32(slotLive))
	}
	p.liveCount.Add(1)
	p.live.push(s)
}

// tombstone deallocates s's current object, if any, and marks it terminal.
// Called only while shutting down and s is exclusively owned (popped off the
// dead queue), so plain field access is safe. liveCount was already
// decremented upstream, at the LIVE/CLAIMED->DEAD transition that routed s
// here (Pool.expire/release/Shutdown) — this only records the terminal
// TOMBSTONE transition against tombstoneCount.
func (p *Pool[T]) tombstone(s *slot[T]) {
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

// wakeAllocator schedules a drainDead run on the shared scheduler's worker
// pool. Submitting unconditionally (rather than gating on "is the dead
// queue non-empty") costs at most one cheap no-op popAll when two pushers
// race, and keeps the dispatch path lock-free.
func (p *Pool[T]) wakeAllocator() {
	p.scheduler.submit(p.drainDead)
}

// drainLiveOnShutdown moves every slot still sitting unclaimed in the live
// queue to the dead queue for deallocation, then wakes the allocator to
// tombstone them. Already-claimed slots are routed to the dead queue as
// their callers release or invalidate them (see Pool.release); this only
// catches the slots nobody was holding at the moment Shutdown was called.
// Dispatched through the scheduler like drainDead, rather than as an ad hoc
// goroutine per Shutdown call, for the same reason: one shared worker pool
// across every pool bound to the scheduler, not one goroutine per shutdown.
func (p *Pool[T]) drainLiveOnShutdown() {
	for {
		s := p.live.claim(NewTimeout(0))
		if s == nil {
			break
		}
		if s.transition(slotLive, slotDead) {
			p.liveCount.Add(-1)
		}
		p.dead.push(s)
	}
	p.wakeAllocator()
	p.checkShutdownComplete()
}
