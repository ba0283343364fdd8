package test

import (
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicClaimRelease covers spec scenario S1: size=1, ttl=infinite. Two
// sequential claim/release cycles must return the same underlying object,
// and only one allocation should ever have happened.
func TestBasicClaimRelease(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).
		SetSize(1).
		SetExpiration(neverExpire()).
		Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	lease1, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, lease1)
	first := lease1.Value()
	require.NoError(t, lease1.Release())

	lease2, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, lease2)
	assert.Same(t, first, lease2.Value())
	require.NoError(t, lease2.Release())

	assert.EqualValues(t, 1, alloc.allocated.Load())
	assert.Equal(t, 1, p.AllocCount())
}

// TestDoubleReleaseFails exercises the IllegalState branch of release: a
// Lease may only be released or invalidated once.
func TestDoubleReleaseFails(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(1).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	lease, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NoError(t, lease.Release())
	assert.ErrorIs(t, lease.Release(), pool.ErrIllegalState)
}
