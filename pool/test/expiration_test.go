package test

import (
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpirationTriggersReallocation covers spec scenario S2: size=1,
// ttl=2ms. Claiming again after the slot has aged past its TTL must hand
// back a freshly allocated object, not the one released earlier.
func TestExpirationTriggersReallocation(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).
		SetSize(1).
		SetTTL(2 * time.Millisecond).
		Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	lease1, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	first := lease1.Value()
	require.NoError(t, lease1.Release())

	time.Sleep(5 * time.Millisecond)

	lease2, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, lease2)
	assert.NotSame(t, first, lease2.Value())
	require.NoError(t, lease2.Release())

	assert.EqualValues(t, 2, alloc.allocated.Load())
	assert.Equal(t, 2, p.AllocCount())
}

// TestTimeExpirationBoundary covers testable property 4: age exactly equal
// to the TTL is not expired, but age one millisecond past it is.
func TestTimeExpirationBoundary(t *testing.T) {
	exp, err := pool.NewTimeExpiration[*widget](10 * time.Millisecond)
	require.NoError(t, err)

	assert.False(t, exp.HasExpired(fakeSlotInfo{ageMillis: 10}))
	assert.False(t, exp.HasExpired(fakeSlotInfo{ageMillis: 0}))
	assert.True(t, exp.HasExpired(fakeSlotInfo{ageMillis: 11}))
}

// TestTimeExpirationRejectsNonPositiveTTL covers testable property 8's TTL
// clause.
func TestTimeExpirationRejectsNonPositiveTTL(t *testing.T) {
	_, err := pool.NewTimeExpiration[*widget](0)
	assert.ErrorIs(t, err, pool.ErrIllegalArgument)

	_, err = pool.NewTimeExpiration[*widget](-time.Millisecond)
	assert.ErrorIs(t, err, pool.ErrIllegalArgument)
}

// TestCountingExpirationClampsToLastReplyOnlyPastTheEnd exercises the
// min-clamp fix described in countingExpiration's doc comment: each reply
// fires for exactly the call it was programmed for, and only calls beyond
// the end of the slice repeat the last one, rather than every call before
// the end being pinned to it.
func TestCountingExpirationClampsToLastReplyOnlyPastTheEnd(t *testing.T) {
	exp := newCountingExpiration(false, false, true)

	assert.False(t, exp.HasExpired(fakeSlotInfo{}))
	assert.False(t, exp.HasExpired(fakeSlotInfo{}))
	assert.True(t, exp.HasExpired(fakeSlotInfo{}))
	assert.True(t, exp.HasExpired(fakeSlotInfo{}))
	assert.EqualValues(t, 4, exp.Count())
}

// TestCountingExpirationDrivesPoolReallocation wires countingExpiration
// into a real pool, covering the same "claim past expiry reallocates"
// behavior as TestExpirationTriggersReallocation but driven by a
// programmed expiration schedule instead of elapsed wall-clock time: the
// first check passes, the second expires the object, and every check after
// that (including the one on the reallocated object) passes again.
func TestCountingExpirationDrivesPoolReallocation(t *testing.T) {
	alloc := &countingAllocator{}
	exp := newCountingExpiration(false, true, false)
	cfg, err := pool.NewConfigBuilder[*widget](alloc).
		SetSize(1).
		SetExpiration(exp).
		Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	lease1, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	first := lease1.Value()
	require.NoError(t, lease1.Release())

	lease2, err := p.Claim(pool.NewTimeout(time.Second))
	require.NoError(t, err)
	require.NotNil(t, lease2)
	assert.NotSame(t, first, lease2.Value())
	require.NoError(t, lease2.Release())
}

type fakeSlotInfo struct {
	ageMillis   int64
	claimCount  uint64
}

func (f fakeSlotInfo) AgeMillis() int64   { return f.ageMillis }
func (f fakeSlotInfo) ClaimCount() uint64 { return f.claimCount }
func (f fakeSlotInfo) Poolable() *widget  { return nil }
