package ilqsolver

import "sync"

// parallelFor executes fn(start, end) over disjoint chunks of [0, n)
// concurrently, as spec §5 permits for the per-timestep linearize/
// quadraticize loop (each chunk reads immutable inputs and writes to
// disjoint slots). Grounded on the teacher's internal/dynamo/parallel.go
// ParallelFor (fixed worker count, chunked ranges, WaitGroup barrier).
func parallelFor(n, minChunk, numWorkers int, fn func(start, end int)) {
	if numWorkers <= 0 {
		numWorkers = 4
	}
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			wg.Done()
			continue
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
