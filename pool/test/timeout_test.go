package test

import (
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClaimTimesOut covers spec scenario S3 and testable property 5: a
// second claimer against an exhausted pool must not come back before its
// requested timeout has elapsed, within the clock's coarse precision.
func TestClaimTimesOut(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(1).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	held, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, held)
	defer held.Release()

	start := time.Now()
	lease, err := p.Claim(pool.NewTimeout(50 * time.Millisecond))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Nil(t, lease)
	// Claim's deadline runs on time.Now and a timer, not the 10ms clock
	// keeper; the 5ms margin only absorbs timer and scheduling jitter.
	assert.GreaterOrEqual(t, elapsed, 45*time.Millisecond)
}

// TestClaimAfterShutdownFails covers the PoolClosed error kind.
func TestClaimAfterShutdownFails(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(1).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)

	done := p.Shutdown()
	require.True(t, done.Await(pool.NewTimeout(time.Second)))

	lease, err := p.Claim(pool.NewTimeout(time.Second))
	assert.Nil(t, lease)
	assert.ErrorIs(t, err, pool.ErrPoolClosed)
}
