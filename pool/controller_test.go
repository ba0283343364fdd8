package pool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchedulerSubmitRunsOnControllerWorkerPool covers spec.md §4.5: a
// submitted job reaches the controller's worker pool and runs, bootstrapping
// the controller goroutine on the scheduler's first ever reference rather
// than requiring a separate StartController call.
func TestSchedulerSubmitRunsOnControllerWorkerPool(t *testing.T) {
	s, err := NewScheduler(defaultThreadFactory{}, 2)
	require.NoError(t, err)
	s.incrementReferences()
	defer s.decrementReferences()

	var ran atomic.Bool
	done := make(chan struct{})
	s.submit(func() {
		ran.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submitted job never ran")
	}
	assert.True(t, ran.Load())
}

// TestSchedulerSubmitFansOutAcrossWorkers covers the maxThreads cap: with
// two slow jobs and a two-worker scheduler, both jobs should be in flight
// concurrently rather than serialized.
func TestSchedulerSubmitFansOutAcrossWorkers(t *testing.T) {
	s, err := NewScheduler(defaultThreadFactory{}, 2)
	require.NoError(t, err)
	s.incrementReferences()
	defer s.decrementReferences()

	var inFlight atomic.Int32
	var maxSeen atomic.Int32
	release := make(chan struct{})
	var finished atomic.Int32

	for i := 0; i < 2; i++ {
		s.submit(func() {
			n := inFlight.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			<-release
			inFlight.Add(-1)
			finished.Add(1)
		})
	}

	require.Eventually(t, func() bool { return inFlight.Load() == 2 }, time.Second, time.Millisecond)
	close(release)
	require.Eventually(t, func() bool { return finished.Load() == 2 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 2, maxSeen.Load())
}

// TestSchedulerScheduleWithFixedDelayRecurs covers the scheduled-task heap
// path through controller.drainOnce/nextDeadlineWait: a fixed-delay job
// fires more than once without being resubmitted by the caller.
func TestSchedulerScheduleWithFixedDelayRecurs(t *testing.T) {
	s, err := NewScheduler(defaultThreadFactory{}, 1)
	require.NoError(t, err)
	s.incrementReferences()
	defer s.decrementReferences()

	var count atomic.Int32
	task := s.scheduleWithFixedDelay(func() { count.Add(1) }, time.Millisecond)
	defer task.cancel()

	require.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, time.Millisecond)
}

// TestSchedulerDecrementReferencesStopsController covers
// BackgroundScheduler.decrementReferences/deinitialise: once the last
// reference drops, the controller goroutine exits and a later
// incrementReferences must bootstrap a fresh one via the foreground
// sentinel rather than reuse a dead one.
func TestSchedulerDecrementReferencesStopsController(t *testing.T) {
	s, err := NewScheduler(defaultThreadFactory{}, 1)
	require.NoError(t, err)

	s.incrementReferences()
	var first atomic.Bool
	done1 := make(chan struct{})
	s.submit(func() { first.Store(true); close(done1) })
	<-done1
	s.decrementReferences()

	s.incrementReferences()
	defer s.decrementReferences()
	var second atomic.Bool
	done2 := make(chan struct{})
	s.submit(func() { second.Store(true); close(done2) })

	select {
	case <-done2:
	case <-time.After(time.Second):
		t.Fatal("job submitted after scheduler restart never ran")
	}
	assert.True(t, second.Load())
}
