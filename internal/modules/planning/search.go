package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ftzlab/ftzsim/internal/modules/accounting"
	"github.com/ftzlab/ftzsim/internal/modules/reports"
	"github.com/ftzlab/ftzsim/internal/modules/rules"
)

// MaxDecisions bounds the decision-vector length. Exhaustive enumeration
// is the point of the design; beyond this the 2^n space stops being
// tractable.
const MaxDecisions = 20

// evalBatchSize is how many plans go through the pool between progress
// reports and cancellation checks.
const evalBatchSize = 1024

// ProgressFunc receives evaluation progress during a search run.
type ProgressFunc func(current, total int, message string)

// Stats describes the utility distribution across all evaluated plans.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Result is the outcome of one exhaustive search run.
type Result struct {
	RunID       string            `json:"run_id"`
	BestPlan    []int             `json:"best_plan"`
	BestUtility float64           `json:"best_utility"`
	Evaluated   int               `json:"evaluated"`
	Stats       Stats             `json:"stats"`
	Summaries   []reports.Summary `json:"summaries"`
	ElapsedMS   int64             `json:"elapsed_ms"`
}

// Search enumerates every plan of a scenario and returns the one with
// the highest combined after-tax profit. Evaluations fan out across a
// worker pool; the reduction runs in canonical enumeration order so the
// first-seen plan wins exact ties regardless of scheduling.
type Search struct {
	pool *WorkerPool
	log  zerolog.Logger
}

// NewSearch creates a search service with the given pool size.
func NewSearch(workers int, log zerolog.Logger) *Search {
	return &Search{
		pool: NewWorkerPool(workers),
		log:  log.With().Str("component", "plan_search").Logger(),
	}
}

// Run evaluates all 2^n plans of the scenario in ascending binary order.
// Every evaluation gets a fresh agent pair; a data error in any single
// evaluation fails the whole run. The progress callback is optional.
func (s *Search) Run(ctx context.Context, sc *Scenario, progress ProgressFunc) (*Result, error) {
	start := time.Now()

	if err := sc.prepare(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	n := len(sc.Actions)
	if n > MaxDecisions {
		return nil, fmt.Errorf("%d decisions exceed the exhaustive-search limit of %d", n, MaxDecisions)
	}
	total := 1 << n

	resolver := accounting.NewResolver(sc.prices, sc.Templates, rules.DefaultEngine(), s.log)
	executor := NewExecutor(resolver)
	evaluate := func(plan Plan) (float64, error) {
		return s.evaluate(sc, executor, plan)
	}

	runID := uuid.NewString()
	s.log.Info().
		Str("run_id", runID).
		Int("decisions", n).
		Int("plans", total).
		Msg("Starting plan search")

	utilities := make([]float64, 0, total)
	var bestPlan Plan
	bestUtility := 0.0
	seen := false

	for batchStart := 0; batchStart < total; batchStart += evalBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batchEnd := batchStart + evalBatchSize
		if batchEnd > total {
			batchEnd = total
		}
		plans := make([]Plan, 0, batchEnd-batchStart)
		for i := batchStart; i < batchEnd; i++ {
			plans = append(plans, planFromIndex(uint64(i), n))
		}

		for offset, r := range s.pool.EvaluateBatch(plans, evaluate) {
			if r.Err != nil {
				return nil, fmt.Errorf("plan %s: %w", plans[offset], r.Err)
			}
			utilities = append(utilities, r.Utility)
			if !seen || r.Utility > bestUtility {
				seen = true
				bestUtility = r.Utility
				bestPlan = plans[offset]
			}
		}

		if progress != nil {
			progress(len(utilities), total, fmt.Sprintf("Evaluated %d of %d plans", len(utilities), total))
		}
	}

	summaries, err := s.bestSummaries(sc, executor, bestPlan)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		BestPlan:    bestPlan.Flags(),
		BestUtility: bestUtility,
		Evaluated:   len(utilities),
		Stats:       utilityStats(utilities),
		Summaries:   summaries,
		ElapsedMS:   time.Since(start).Milliseconds(),
	}

	s.log.Info().
		Str("run_id", runID).
		Str("best_plan", bestPlan.String()).
		Float64("best_utility", bestUtility).
		Int64("elapsed_ms", result.ElapsedMS).
		Msg("Plan search complete")

	return result, nil
}

// evaluate runs one plan against a fresh agent pair and reduces it to
// the combined after-tax profit.
func (s *Search) evaluate(sc *Scenario, executor *Executor, plan Plan) (float64, error) {
	byName, err := sc.newAgents()
	if err != nil {
		return 0, err
	}
	if err := executor.Run(plan, sc, byName); err != nil {
		return 0, err
	}

	var utility float64
	for _, spec := range sc.Agents {
		utility += reports.Summarize(byName[spec.Name], spec.TaxRate).NetProfit
	}
	return utility, nil
}

// bestSummaries replays the winning plan once more to produce the
// per-agent financial statements for the result payload.
func (s *Search) bestSummaries(sc *Scenario, executor *Executor, plan Plan) ([]reports.Summary, error) {
	byName, err := sc.newAgents()
	if err != nil {
		return nil, err
	}
	if err := executor.Run(plan, sc, byName); err != nil {
		return nil, err
	}

	summaries := make([]reports.Summary, 0, len(sc.Agents))
	for _, spec := range sc.Agents {
		summaries = append(summaries, reports.Summarize(byName[spec.Name], spec.TaxRate))
	}
	return summaries, nil
}

func utilityStats(utilities []float64) Stats {
	if len(utilities) == 0 {
		return Stats{}
	}
	st := Stats{
		Mean: stat.Mean(utilities, nil),
		Min:  floats.Min(utilities),
		Max:  floats.Max(utilities),
	}
	if len(utilities) > 1 {
		st.StdDev = stat.StdDev(utilities, nil)
	}
	return st
}
