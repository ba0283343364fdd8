package pool

import (
	"sync"
	"time"
)

// Completion is the handle returned by Pool.Shutdown. Await blocks until
// every slot has reached slotTombstone, or the given Timeout elapses.
type Completion struct {
	mu   sync.Mutex
	cond *sync.Cond
	done bool
}

func newCompletion() *Completion {
	c := &Completion{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *Completion) signalDone() {
	c.mu.Lock()
	c.done = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Await blocks up to timeout for shutdown to complete, returning true once
// it has and false if the timeout elapses first.
func (c *Completion) Await(timeout Timeout) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return true
	}
	if timeout.Duration() <= 0 {
		return false
	}

	timedOut := false
	timer := time.AfterFunc(timeout.Duration(), func() {
		c.mu.Lock()
		timedOut = true
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()

	for !c.done && !timedOut {
		c.cond.Wait()
	}
	return c.done
}
