package pool

import (
	"runtime"
	"sync"
	"time"
)

// Scheduler is a process-wide (or caller-scoped) background task runner
// shared across Pool instances, amortising a single clock keeper and a
// single controller goroutine over however many pools are bound to it.
// Grounded directly on BackgroundScheduler.java.
type Scheduler struct {
	factory    ThreadFactory
	maxThreads int
	clock      *monotonicClock

	stack taskStack

	mu         sync.Mutex
	refCount   int
	ctrl       *controller
	clockOwned bool
}

// NewScheduler builds a Scheduler with the given ThreadFactory and max
// background thread count. factory must be non-nil and maxThreads must be
// at least 1, matching BackgroundScheduler's constructor validation.
func NewScheduler(factory ThreadFactory, maxThreads int) (*Scheduler, error) {
	if factory == nil {
		return nil, ErrIllegalArgument
	}
	if maxThreads < 1 {
		return nil, ErrIllegalArgument
	}
	s := &Scheduler{
		factory:    factory,
		maxThreads: maxThreads,
		clock:      newMonotonicClock(),
	}
	s.stack.head.Store(&taskNode{t: &foregroundTask{bootstrap: s.startController}})
	return s, nil
}

var (
	defaultSchedulerMu   sync.Mutex
	defaultSchedulerInst *Scheduler
)

// DefaultScheduler returns the process-wide default Scheduler, lazily
// constructing it on first access.
func DefaultScheduler() *Scheduler {
	defaultSchedulerMu.Lock()
	defer defaultSchedulerMu.Unlock()
	if defaultSchedulerInst == nil {
		s, err := NewScheduler(defaultThreadFactory{}, defaultMaxThreads())
		if err != nil {
			panic(err)
		}
		defaultSchedulerInst = s
	}
	return defaultSchedulerInst
}

// SetDefaultScheduler replaces the process-wide default Scheduler used by
// new Config objects. Existing pools bound to the previous instance are
// unaffected. scheduler must be non-nil.
func SetDefaultScheduler(scheduler *Scheduler) {
	if scheduler == nil {
		panic("pool: default Scheduler cannot be set to nil")
	}
	defaultSchedulerMu.Lock()
	defer defaultSchedulerMu.Unlock()
	defaultSchedulerInst = scheduler
}

// incrementReferences marks one more pool as depending on this scheduler,
// starting the clock keeper on the first reference.
func (s *Scheduler) incrementReferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refCount == 0 {
		s.clock.start()
		s.clockOwned = true
	}
	s.refCount++
}

// decrementReferences removes one reference, stopping the controller and
// clock keeper once the last pool releases it.
func (s *Scheduler) decrementReferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refCount--
	if s.refCount < 0 {
		panic("pool: negative scheduler reference count")
	}
	if s.refCount == 0 {
		if s.ctrl != nil {
			close(s.ctrl.stop)
			<-s.ctrl.done
			s.ctrl = nil
		}
		if s.clockOwned {
			s.clock.stop()
			s.clockOwned = false
		}
	}
}

func (s *Scheduler) startController() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		return
	}
	c := newController(&s.stack, s.clock, s.maxThreads, s.factory, s.startController)
	s.ctrl = c
	s.factory.NewGoroutine("pool-controller", c.run)
}

func (s *Scheduler) enqueue(t task) {
	s.mu.Lock()
	started := s.refCount > 0
	s.mu.Unlock()
	if !started {
		panic(ErrIllegalState)
	}
	prev := s.stack.push(t)
	if prev != nil && prev.isForegroundWork() {
		prev.execute()
	} else {
		s.mu.Lock()
		c := s.ctrl
		s.mu.Unlock()
		if c != nil {
			c.notifyPush()
		}
	}
}

// submit runs work once, as soon as the controller's worker pool can get to
// it.
func (s *Scheduler) submit(work func()) {
	s.enqueue(&immediateTask{work: work})
}

// scheduleWithFixedDelay runs work repeatedly, waiting delay between the
// end of one run's dispatch and the next's, as measured against the
// scheduler's clock.
func (s *Scheduler) scheduleWithFixedDelay(work func(), delay time.Duration) *scheduledTask {
	t := &scheduledTask{
		work:            work,
		delayNanos:      int64(delay),
		nextFireAtNanos: s.clock.nowNanos() + int64(delay),
	}
	s.enqueue(t)
	return t
}

func defaultMaxThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
