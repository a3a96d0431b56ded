package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mason/internal/adapters/pool"
)

func TestPool_RunsEveryTask(t *testing.T) {
	p := pool.New(4)

	var count atomic.Int64
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		p.Spawn(func() {
			defer wg.Done()
			count.Add(1)
		})
	}
	wg.Wait()
	p.Shutdown()

	assert.Equal(t, int64(100), count.Load())
}

func TestPool_BoundedConcurrency(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		const workers = 3
		p := pool.New(workers)

		var active, peak atomic.Int64
		release := make(chan struct{})
		var wg sync.WaitGroup

		for range 10 {
			wg.Add(1)
			go p.Spawn(func() {
				defer wg.Done()
				cur := active.Add(1)
				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}
				<-release
				active.Add(-1)
			})
		}

		// Let the workers pick up as much as they can, then release.
		synctest.Wait()
		close(release)
		wg.Wait()
		p.Shutdown()

		assert.LessOrEqual(t, peak.Load(), int64(workers))
	})
}

func TestPool_ShutdownDrainsBacklog(t *testing.T) {
	p := pool.New(1)

	var count atomic.Int64
	for range 10 {
		p.Spawn(func() { count.Add(1) })
	}
	p.Shutdown()

	assert.Equal(t, int64(10), count.Load())
}

func TestPool_ShutdownIdempotent(t *testing.T) {
	p := pool.New(2)
	p.Shutdown()
	p.Shutdown()
}
