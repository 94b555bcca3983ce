package planner

import (
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// SolveResult is the raw output of a single solve attempt, before
// extraction into a PlannerResult.
type SolveResult struct {
	Solution  mip.Solution
	Status    Status
	SolveTime time.Duration
}

// Solve configures the solver (time limit) and invokes it. Warm-start
// bias, if a cache is supplied, is installed beforehand — mirroring the
// original's solver.parameters.max_time_in_seconds /
// log_search_progress=False configuration and its AddHint loop over
// feasible_worker_jobs / feasible_stock_jobs, adapted to this binding's
// actual surface (see applyWarmStartBias).
//
// The HiGHS binding used here does not expose a parallel-worker count
// the way CP-SAT's num_search_workers does; Config.NumSearchWorkers is
// kept for parity with the external interface and documented knobs, but
// is not passed to the solver call.
func Solve(built *BuiltModel, pre *Preprocessed, cfg Config, cache *WarmStartCache) (SolveResult, error) {
	if cache != nil {
		applyWarmStartBias(built, pre, cache)
	}

	solver, err := mip.NewSolver(mip.Highs, built.Model)
	if err != nil {
		return SolveResult{}, err
	}

	start := time.Now()
	solution, err := solver.Solve(mip.SolveOptions{
		Duration: time.Duration(cfg.MaxTimeSeconds * float64(time.Second)),
	})
	elapsed := time.Since(start)
	if err != nil {
		return SolveResult{}, err
	}

	return SolveResult{
		Solution:  solution,
		Status:    classifyStatus(solution),
		SolveTime: elapsed,
	}, nil
}

// classifyStatus maps the solver's solution state onto the status
// vocabulary named in the external interface. A solution that is
// neither optimal nor sub-optimal (feasible) but still reports values is
// treated as UNKNOWN (timed out without a usable incumbent); otherwise
// it is INFEASIBLE.
func classifyStatus(solution mip.Solution) Status {
	if solution.IsOptimal() {
		return StatusOptimal
	}
	if solution.IsSubOptimal() {
		return StatusFeasible
	}
	if solution.HasValues() {
		return StatusUnknown
	}
	return StatusInfeasible
}

// warmStartBiasWeight is the per-pair objective nudge applyWarmStartBias
// uses to favor reusing the previous solve's assignment. It is chosen to
// be far smaller than any real objective increment: CoverageWeight and
// the discretized distance costs built in model.go are both integers, so
// the smallest possible difference between two distinct real objective
// values is 1. Summed across every variable in a pair, the bias can
// therefore never change which solution is optimal — it only breaks
// ties between otherwise-equally-good solutions.
const warmStartBiasWeight = 1e-6

// applyWarmStartBias nudges the objective toward the warm-start cache's
// last known solution.
//
// mip.Model exposes no MIP-start/hint primitive — only the same
// Objective/NewTerm/NewConstraint building blocks used everywhere else in
// model.go. So instead of a dedicated warm-start call, a variable that
// matched the cache's previous assignment has its objective coefficient
// shaded down by warmStartBiasWeight, which costs the solver nothing in
// solution quality but biases branch-and-bound toward reusing the
// incumbent it already explored last time. Stock quantities are scaled
// by their own upper bound so a single variable's total contribution is
// bounded the same way a worker assignment's is.
func applyWarmStartBias(built *BuiltModel, pre *Preprocessed, cache *WarmStartCache) {
	for _, pair := range built.WorkerJobTerms {
		workerID := pre.Input.Workers[pair.WorkerIdx].ID
		jobID := pre.Input.Jobs[pair.JobIdx].ID
		if cache.Get(warmStartKey{kind: "worker", entityID: workerID, jobID: jobID}) <= 0 {
			continue
		}
		built.Model.Objective().NewTerm(-warmStartBiasWeight, built.X.Get(pair))
	}
	for _, pair := range built.StockJobTerms {
		stockID := pre.Input.Stocks[pair.StockIdx].ID
		jobID := pre.Input.Jobs[pair.JobIdx].ID
		if cache.Get(warmStartKey{kind: "stock", entityID: stockID, jobID: jobID}) <= 0 {
			continue
		}
		if pair.MaxQty <= 0 {
			continue
		}
		built.Model.Objective().NewTerm(-warmStartBiasWeight/float64(pair.MaxQty), built.Q.Get(pair))
	}
}
