package test

import (
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShutdownDrainsAllSlots covers spec scenario S4 and testable property
// 3: once the pool's slots have all been allocated, shutting down without
// claiming anything must deallocate every one of them before Await reports
// completion.
func TestShutdownDrainsAllSlots(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(3).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return alloc.allocated.Load() == 3
	}, time.Second, time.Millisecond)

	done := p.Shutdown()
	assert.True(t, done.Await(pool.NewTimeout(time.Second)))
	assert.EqualValues(t, 3, alloc.deallocated.Load())
}

// TestShutdownDrainsClaimedSlotsOnRelease covers the "already-claimed slots
// are routed to deallocation as their callers release them" half of the
// shutdown contract.
func TestShutdownDrainsClaimedSlotsOnRelease(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(1).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)

	lease, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)

	done := p.Shutdown()
	assert.False(t, done.Await(pool.NewTimeout(20 * time.Millisecond)))

	require.NoError(t, lease.Release())
	assert.True(t, done.Await(pool.NewTimeout(time.Second)))
	assert.EqualValues(t, 1, alloc.deallocated.Load())
}

// TestShutdownIsIdempotent asserts that calling Shutdown twice returns the
// same Completion rather than starting a second drain.
func TestShutdownIsIdempotent(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(1).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)

	c1 := p.Shutdown()
	c2 := p.Shutdown()
	assert.Same(t, c1, c2)
	assert.True(t, c1.Await(pool.NewTimeout(time.Second)))
}
