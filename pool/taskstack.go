package pool

import "sync/atomic"

// task is an item on a taskStack. It is grounded directly on
// BackgroundScheduler.java's Task hierarchy: an intrusive singly-linked list
// node with an execute method and a flag marking the "foreground work"
// bootstrap sentinel.
type task interface {
	// execute runs the task. For scheduled tasks the controller recomputes
	// the next fire time and reinserts rather than calling execute directly
	// from the stack walk; see controller.go.
	execute()
	// isForegroundWork reports whether this task must be run inline by
	// whoever pops it as the previous head of the stack, rather than being
	// queued for the controller. Only the bootstrap sentinel answers true.
	isForegroundWork() bool
}

// taskNode wraps a task with the intrusive link used by taskStack.
type taskNode struct {
	t    task
	next *taskNode
}

// taskStack is a Treiber-style lock-free LIFO: a single atomic head pointer,
// each node linking to the previous head. Push installs the new head with a
// Load+CompareAndSwap loop and hands back the previous head, which gives the
// "getAndSet" result the design note in spec.md §9 relies on. The
// controller's stack-take step (takeAll) is a CAS loop as well.
//
// This same structure backs both the shared scheduler's TaskStack and each
// Pool's DeadQueue (specialised to slot nodes via deadQueue, below).
type taskStack struct {
	head atomic.Pointer[taskNode]
}

// push installs t as the new head and returns the task that was head before
// this push. If that previous task isForegroundWork(), the caller must
// execute it inline — this is the bootstrap path for a cold scheduler whose
// controller goroutine has not started yet, or has retired and must be
// restarted.
func (s *taskStack) push(t task) task {
	n := &taskNode{t: t}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			if old == nil {
				return nil
			}
			return old.t
		}
	}
}

// takeAll atomically swaps the whole stack out for a fresh sentinel task and
// returns the list of tasks that had accumulated, most-recently-pushed
// first. The sentinel becomes the new head, so the next pusher finds it as
// the previous head: a foregroundTask sentinel makes that pusher bootstrap
// the controller inline, a runningPlaceholder does not.
func (s *taskStack) takeAll(sentinel task) []task {
	n := &taskNode{t: sentinel}
	var old *taskNode
	for {
		old = s.head.Load()
		if s.head.CompareAndSwap(old, n) {
			break
		}
	}
	var out []task
	for cur := old; cur != nil; cur = cur.next {
		out = append(out, cur.t)
	}
	return out
}

// foregroundTask is the StartController bootstrap sentinel: when a pusher
// finds this as the previous head, there is no controller running yet (or
// it just retired), so the pusher itself must run bootstrap inline.
type foregroundTask struct {
	bootstrap func()
}

func (f *foregroundTask) execute()          { f.bootstrap() }
func (f *foregroundTask) isForegroundWork() bool { return true }

// runningPlaceholder is installed as the task-stack head by the controller
// itself, on every stack-take, for as long as the controller's main loop is
// alive. Unlike foregroundTask, a pusher that evicts a runningPlaceholder
// just leaves it queued for the controller's next take — the controller is
// already running, so no inline bootstrap is needed. This avoids the
// redundant-bootstrap hazard that a perpetually-reinstalled foreground
// sentinel would create under racing pushes.
type runningPlaceholder struct{}

func (*runningPlaceholder) execute()          {}
func (*runningPlaceholder) isForegroundWork() bool { return false }

// immediateTask runs work on a worker goroutine, capped at maxThreads.
type immediateTask struct {
	work func()
}

func (t *immediateTask) execute()          { t.work() }
func (t *immediateTask) isForegroundWork() bool { return false }

// scheduledTask recurs with a fixed delay, as tracked by the controller's
// time-ordered heap.
type scheduledTask struct {
	work           func()
	delayNanos     int64
	nextFireAtNanos int64
	dead           atomic.Bool
}

func (t *scheduledTask) execute() {
	if !t.dead.Load() {
		t.work()
	}
}
func (t *scheduledTask) isForegroundWork() bool { return false }

// cancel marks this scheduled task dead; the controller skips dead
// scheduled tasks on dispatch instead of removing them from the heap
// out-of-band.
func (t *scheduledTask) cancel() {
	t.dead.Store(true)
}

// deadQueue is the DeadQueue from spec.md §4.4: a taskStack specialised to
// slots awaiting (re)allocation or deallocation, rather than generic tasks.
type deadQueue[T any] struct {
	head atomic.Pointer[slot[T]]
}

func (q *deadQueue[T]) push(s *slot[T]) {
	for {
		old := q.head.Load()
		s.next = old
		if q.head.CompareAndSwap(old, s) {
			return
		}
	}
}

// popAll atomically drains the whole stack, returning the slots in
// most-recently-pushed-first order.
func (q *deadQueue[T]) popAll() []*slot[T] {
	for {
		old := q.head.Load()
		if old == nil {
			return nil
		}
		if q.head.CompareAndSwap(old, nil) {
			var out []*slot[T]
			for cur := old; cur != nil; {
				next := cur.next
				cur.next = nil
				out = append(out, cur)
				cur = next
			}
			return out
		}
	}
}
