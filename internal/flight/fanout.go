package flight

import (
	"context"
	"sync"
	"time"
)

const (
	fanoutWorkers = 5
	calendarBatch = 5
	calendarPause = 200 * time.Millisecond
)

// runAll executes task(i) for i in [0,n) on a bounded worker pool and waits
// for every task to settle. Tasks report outcomes through their own slots,
// one task failing never disturbs its siblings.
func runAll(ctx context.Context, n, workers int, task func(ctx context.Context, i int)) {
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			task(ctx, idx)
		}(i)
	}

	wg.Wait()
}

// runBatched is runAll with pacing: tasks run in groups of batchSize with a
// pause between groups. The upstream sandbox throttles aggressively, trading
// latency for fewer rate-limit rejections.
func runBatched(ctx context.Context, n, batchSize int, pause time.Duration, task func(ctx context.Context, i int)) {
	if batchSize < 1 {
		batchSize = 1
	}

	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				task(ctx, idx)
			}(i)
		}
		wg.Wait()

		if end < n && pause > 0 {
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return
			}
		}
	}
}
