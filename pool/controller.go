package pool

import (
	"container/heap"
	"time"
)

// schedHeap is a time-ordered min-heap of scheduled tasks, keyed by
// nextFireAtNanos, used by the controller to know when to wake next.
type schedHeap []*scheduledTask

func (h schedHeap) Len() int            { return len(h) }
func (h schedHeap) Less(i, j int) bool  { return h[i].nextFireAtNanos < h[j].nextFireAtNanos }
func (h schedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *schedHeap) Push(x any)         { *h = append(*h, x.(*scheduledTask)) }
func (h *schedHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// controller is the single background goroutine that owns the shared task
// stack: it takes pending tasks, dispatches immediate work to the worker
// pool, maintains the scheduled-job heap, and parks between deadlines. This
// is the ProcessController of spec.md §4.5, grounded on
// BackgroundScheduler.java's processController field and startControlThread
// method.
type controller struct {
	stack   *taskStack
	clock   *monotonicClock
	workers *workerPool
	heap    schedHeap

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	bootstrap func()
}

func newController(stack *taskStack, clock *monotonicClock, maxThreads int, factory ThreadFactory, bootstrap func()) *controller {
	return &controller{
		stack:     stack,
		clock:     clock,
		workers:   newWorkerPool(maxThreads, factory),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		bootstrap: bootstrap,
	}
}

// notifyPush is called by a pusher right after installing a new head, to
// wake the controller's park if it is currently idle.
func (c *controller) notifyPush() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *controller) run() {
	defer close(c.done)
	for {
		c.drainOnce()

		select {
		case <-c.stop:
			c.shutdown()
			return
		default:
		}

		wait := c.nextDeadlineWait()
		select {
		case <-c.stop:
			c.shutdown()
			return
		case <-c.wake:
		case <-time.After(wait):
		}
	}
}

// drainOnce performs steps 1-3 of spec.md §4.5: take the stack, partition
// into immediate/scheduled work, then dispatch anything in the heap whose
// deadline has passed.
func (c *controller) drainOnce() {
	taken := c.stack.takeAll(&runningPlaceholder{})
	for _, t := range taken {
		switch tt := t.(type) {
		case *scheduledTask:
			heap.Push(&c.heap, tt)
		case *runningPlaceholder, *foregroundTask:
			// list terminator; nothing to do
		default:
			c.workers.dispatch(t.execute)
		}
	}

	now := c.clock.nowNanos()
	for c.heap.Len() > 0 && c.heap[0].nextFireAtNanos <= now {
		job := heap.Pop(&c.heap).(*scheduledTask)
		if !job.dead.Load() {
			c.workers.dispatch(job.execute)
		}
		job.nextFireAtNanos = now + job.delayNanos
		if !job.dead.Load() {
			heap.Push(&c.heap, job)
		}
	}
}

func (c *controller) nextDeadlineWait() time.Duration {
	if c.heap.Len() == 0 {
		return time.Hour
	}
	delta := c.heap[0].nextFireAtNanos - c.clock.nowNanos()
	if delta <= 0 {
		return time.Millisecond
	}
	return time.Duration(delta)
}

// shutdown drains whatever remains on the stack, executing immediate jobs
// inline and cancelling scheduled ones, then reinstalls the foreground
// bootstrap sentinel so a future push restarts the controller.
func (c *controller) shutdown() {
	taken := c.stack.takeAll(&foregroundTask{bootstrap: c.bootstrap})
	for _, t := range taken {
		switch tt := t.(type) {
		case *scheduledTask:
			tt.cancel()
		case *runningPlaceholder, *foregroundTask:
		default:
			t.execute()
		}
	}
}
