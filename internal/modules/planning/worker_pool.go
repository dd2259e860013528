package planning

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel plan
// evaluation.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool. Non-positive sizes default to the
// number of CPUs.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// PlanResult is the outcome of evaluating one plan.
type PlanResult struct {
	Utility float64
	Err     error
}

// jobItem represents a single evaluation job
type jobItem struct {
	plan  Plan
	index int
}

// resultItem represents the result of an evaluation job
type resultItem struct {
	result PlanResult
	index  int
}

// EvaluateBatch evaluates the plans in parallel and returns results in
// input order, so the caller's canonical-order reduction is unaffected by
// scheduling. Each evaluation must be independent; the evaluator is
// called concurrently.
func (wp *WorkerPool) EvaluateBatch(plans []Plan, evaluate func(Plan) (float64, error)) []PlanResult {
	numPlans := len(plans)
	if numPlans == 0 {
		return []PlanResult{}
	}

	jobs := make(chan jobItem, numPlans)
	results := make(chan resultItem, numPlans)

	numActualWorkers := wp.numWorkers
	if numPlans < numActualWorkers {
		numActualWorkers = numPlans
	}

	var wg sync.WaitGroup
	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				utility, err := evaluate(job.plan)
				results <- resultItem{
					index:  job.index,
					result: PlanResult{Utility: utility, Err: err},
				}
			}
		}()
	}

	for idx, plan := range plans {
		jobs <- jobItem{index: idx, plan: plan}
	}
	close(jobs)

	wg.Wait()
	close(results)

	resultSlice := make([]PlanResult, numPlans)
	for r := range results {
		resultSlice[r.index] = r.result
	}
	return resultSlice
}
