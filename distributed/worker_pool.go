package distributed

import (
	"fmt"
	"runtime"
	"sync"
)

// workerPool runs an operation over a slice of inputs with bounded
// parallelism, preserving input order in the results — the same
// job-channel-plus-waitgroup shape as janus-datalog's WorkerPool, kept
// generic over interface{} for the same reason: it's reused for Map,
// Filter, and UDF evaluation alike.
type workerPool struct {
	workerCount int
}

func newWorkerPool(workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &workerPool{workerCount: workerCount}
}

func (p *workerPool) run(inputs []interface{}, op func(interface{}) (interface{}, error)) ([]interface{}, error) {
	if len(inputs) == 0 {
		return []interface{}{}, nil
	}

	results := make([]interface{}, len(inputs))
	errs := make([]error, len(inputs))
	jobs := make(chan int, len(inputs))

	var wg sync.WaitGroup
	workers := p.workerCount
	if workers > len(inputs) {
		workers = len(inputs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := op(inputs[idx])
				results[idx] = result
				errs[idx] = err
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("parallel execution failed at index %d: %w", i, err)
		}
	}
	return results, nil
}
