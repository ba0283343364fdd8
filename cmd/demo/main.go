// Command demo runs a sustained claim/release workload against a Pool, with
// pprof wired up for profiling the background scheduler under load.
package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/cvest/stormpot-go/pool"
)

type connection struct {
	Name string
	Age  int
}

type connectionAllocator struct{}

func (connectionAllocator) Allocate(pool.SlotInfo[*connection]) (*connection, error) {
	return &connection{}, nil
}

func (connectionAllocator) Deallocate(*connection) {}

func main() {
	enableProfiling()

	debug.SetGCPercent(-1)

	fmt.Println("[PPROF] Ready to profile at http://localhost:6060/debug/pprof/")
	time.Sleep(5 * time.Second)

	runWorkload()

	fmt.Println("[DONE] Workload finished")
	time.Sleep(30 * time.Second)
}

func enableProfiling() {
	runtime.SetMutexProfileFraction(1)
	runtime.SetBlockProfileRate(1)

	go func() {
		log.Println("[PPROF] Server running on :6060")
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
}

func runWorkload() {
	cfg, err := pool.NewConfigBuilder[*connection](connectionAllocator{}).
		SetSize(128).
		SetTTL(10 * time.Minute).
		Build()
	if err != nil {
		log.Fatalf("failed to build pool config: %v", err)
	}

	p, err := pool.NewPool(cfg)
	if err != nil {
		log.Fatalf("failed to create pool: %v", err)
	}
	defer func() {
		p.Shutdown().Await(pool.NewTimeout(10 * time.Second))
	}()

	numWorkers := 5
	objectsPerWorker := 10000
	delayBetweenTasks := 100 * time.Millisecond

	log.Println("[WORKLOAD] Starting")

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < objectsPerWorker; j++ {
				lease, err := p.Claim(pool.NewTimeout(time.Second))
				if err != nil {
					log.Printf("[WORKLOAD %d] claim failed: %v", id, err)
					continue
				}
				if lease == nil {
					continue
				}
				conn := lease.Value()
				conn.Name = "user1"
				conn.Age = 120
				time.Sleep(50 * time.Millisecond)
				if err := lease.Release(); err != nil {
					log.Printf("[WORKLOAD %d] release failed: %v", id, err)
				}
				time.Sleep(delayBetweenTasks)
			}
		}(i)
	}
	wg.Wait()
	log.Println("[WORKLOAD] All done")
}
