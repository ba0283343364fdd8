package test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cvest/stormpot-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAtMostOneClaim covers testable property 1: with far more concurrent
// claimers than slots, no two goroutines ever observe the same underlying
// object at once.
func TestAtMostOneClaim(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(4).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	var inUse sync.Map // *widget -> struct{}
	var violations atomic.Int64

	var wg sync.WaitGroup
	workers := 50
	iterations := 200
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lease, err := p.Claim(pool.NewTimeout(time.Second))
				if err != nil || lease == nil {
					continue
				}
				obj := lease.Value()
				if _, already := inUse.LoadOrStore(obj, struct{}{}); already {
					violations.Add(1)
				}
				time.Sleep(time.Microsecond)
				inUse.Delete(obj)
				_ = lease.Release()
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, violations.Load())
}

// TestNoLostSlot covers testable property 2: while the pool is never
// shrunk or shut down, allocCount minus liveCount equals the number of
// TOMBSTONEd slots, which in a no-failure run is always zero.
func TestNoLostSlot(t *testing.T) {
	alloc := &countingAllocator{}
	cfg, err := pool.NewConfigBuilder[*widget](alloc).
		SetSize(8).
		SetExpiration(neverExpire()).
		Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lease, err := p.Claim(pool.NewTimeout(time.Second))
				if err != nil || lease == nil {
					continue
				}
				_ = lease.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, p.AllocCount(), p.LiveCount())
}

// TestProgressUnderContention covers testable property 7: with N concurrent
// claimers and targetSize = K, the pool must serve at least K claims per
// round without deadlocking.
func TestProgressUnderContention(t *testing.T) {
	alloc := &countingAllocator{}
	k := 5
	cfg, err := pool.NewConfigBuilder[*widget](alloc).SetSize(k).Build()
	require.NoError(t, err)

	p, err := pool.NewPool(cfg)
	require.NoError(t, err)
	defer p.Shutdown()

	var served atomic.Int64
	var wg sync.WaitGroup
	n := 20
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease, err := p.Claim(pool.NewTimeout(time.Second))
			if err == nil && lease != nil {
				served.Add(1)
				time.Sleep(5 * time.Millisecond)
				_ = lease.Release()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deadlock: goroutines did not finish claiming within the deadline")
	}

	assert.GreaterOrEqual(t, served.Load(), int64(k))
}
