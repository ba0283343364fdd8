package pool

import (
	"runtime/debug"
	"sync"
	"testing"
	"time"
)

type benchObject struct {
	buf [64]byte
}

type benchAllocator struct{}

func (benchAllocator) Allocate(SlotInfo[*benchObject]) (*benchObject, error) {
	return &benchObject{}, nil
}

func (benchAllocator) Deallocate(*benchObject) {}

func setupBenchPool(b *testing.B, size int) *Pool[*benchObject] {
	cfg, err := NewConfigBuilder[*benchObject](benchAllocator{}).
		SetSize(size).
		SetExpiration(ExpirationFunc[*benchObject](func(SlotInfo[*benchObject]) bool { return false })).
		Build()
	if err != nil {
		b.Fatalf("failed to build config: %v", err)
	}
	p, err := NewPool(cfg)
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	b.Cleanup(func() {
		p.Shutdown().Await(NewTimeout(time.Second))
	})
	return p
}

// Benchmark_ClaimRelease measures steady-state claim/release throughput
// under contention, with a 64-slot pool so that claimers rarely block on
// each other as long as GOMAXPROCS is at most 64.
func Benchmark_ClaimRelease(b *testing.B) {
	debug.SetGCPercent(-1)
	b.ReportAllocs()

	p := setupBenchPool(b, 64)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			lease, err := p.Claim(NewTimeout(time.Second))
			if err != nil || lease == nil {
				b.Fatal("failed to claim from pool")
			}
			_ = lease.Release()
		}
	})
}

// Benchmark_SyncPoolBaseline runs the same workload against sync.Pool, as a
// reference point for how much overhead the claim/release machinery and its
// background allocator add over Go's allocate-on-miss pool.
func Benchmark_SyncPoolBaseline(b *testing.B) {
	debug.SetGCPercent(-1)
	b.ReportAllocs()

	sp := sync.Pool{New: func() any { return &benchObject{} }}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			obj := sp.Get()
			sp.Put(obj)
		}
	})
}
