package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTask struct {
	ran bool
	fg  bool
}

func (t *recordingTask) execute()          { t.ran = true }
func (t *recordingTask) isForegroundWork() bool { return t.fg }

func TestTaskStackPushReturnsPreviousHead(t *testing.T) {
	var s taskStack

	prev := s.push(&recordingTask{})
	assert.Nil(t, prev)

	first := &recordingTask{}
	s.push(first)
	second := &recordingTask{}
	prev = s.push(second)
	require.NotNil(t, prev)
	assert.Same(t, first, prev)
}

func TestTaskStackPushSurfacesForegroundWork(t *testing.T) {
	var s taskStack

	bootstrap := &recordingTask{fg: true}
	s.push(bootstrap)

	prev := s.push(&recordingTask{})
	require.NotNil(t, prev)
	assert.True(t, prev.isForegroundWork())
	assert.Same(t, bootstrap, prev)
}

func TestTaskStackTakeAllDrainsMostRecentFirst(t *testing.T) {
	var s taskStack

	a := &recordingTask{}
	b := &recordingTask{}
	c := &recordingTask{}
	s.push(a)
	s.push(b)
	s.push(c)

	sentinel := &runningPlaceholder{}
	tasks := s.takeAll(sentinel)

	require.Len(t, tasks, 3)
	assert.Same(t, task(c), tasks[0])
	assert.Same(t, task(b), tasks[1])
	assert.Same(t, task(a), tasks[2])

	// The stack now contains only the sentinel.
	prev := s.push(&recordingTask{})
	assert.Same(t, task(sentinel), prev)
}

func TestTaskStackTakeAllOnEmptyStackReturnsNil(t *testing.T) {
	var s taskStack
	tasks := s.takeAll(&runningPlaceholder{})
	assert.Nil(t, tasks)
}

func TestDeadQueuePushAndPopAllMostRecentFirst(t *testing.T) {
	var q deadQueue[int]
	a := newSlot[int](nil)
	b := newSlot[int](nil)
	q.push(a)
	q.push(b)

	slots := q.popAll()
	require.Len(t, slots, 2)
	assert.Same(t, b, slots[0])
	assert.Same(t, a, slots[1])
	assert.Nil(t, q.popAll())
}
