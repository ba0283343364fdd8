package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicClockAdvancesAfterStart(t *testing.T) {
	c := newMonotonicClock()
	before := c.nowNanos()

	c.start()
	defer c.stop()

	require.Eventually(t, func() bool {
		return c.nowNanos() > before
	}, time.Second, time.Millisecond)
}

func TestMonotonicClockStartIsIdempotent(t *testing.T) {
	c := newMonotonicClock()
	c.start()
	c.start()
	defer c.stop()
	assert.True(t, c.started.Load())
}

func TestMonotonicClockRestartsAfterStop(t *testing.T) {
	c := newMonotonicClock()
	c.start()
	c.stop()
	assert.False(t, c.started.Load())

	before := c.nowNanos()
	c.start()
	defer c.stop()

	require.Eventually(t, func() bool {
		return c.nowNanos() > before
	}, time.Second, time.Millisecond)
}

func TestPreciseNowNanosIsMonotonicNondecreasing(t *testing.T) {
	a := preciseNowNanos()
	time.Sleep(time.Millisecond)
	b := preciseNowNanos()
	assert.Greater(t, b, a)
}
