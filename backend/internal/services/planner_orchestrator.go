package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/pageza/fieldplan/backend/internal/planner"
	"github.com/pageza/fieldplan/backend/internal/repository"
)

// PlannerOrchestrator drives a single tenant's solve end to end: load the
// snapshot, preprocess, build the model, solve, extract, persist, and warm
// the hint cache for the next run.
type PlannerOrchestrator struct {
	repo   repository.PlannerRepository
	cache  *planner.WarmStartCache
	cfg    planner.Config
	logger *log.Logger
	debug  bool
}

// NewPlannerOrchestrator creates a new orchestrator instance.
func NewPlannerOrchestrator(repo repository.PlannerRepository, cache *planner.WarmStartCache, cfg planner.Config, logger *log.Logger, debug bool) *PlannerOrchestrator {
	return &PlannerOrchestrator{
		repo:   repo,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
		debug:  debug,
	}
}

func (o *PlannerOrchestrator) logStep(step string, args ...interface{}) {
	if !o.debug {
		return
	}
	o.logger.Printf("planner step=%s %v", step, args)
}

// ComputePlan runs a synchronous end-to-end solve for one tenant and
// writes the resulting assignments back to the database.
func (o *PlannerOrchestrator) ComputePlan(ctx context.Context, tenantID uuid.UUID) (planner.PlannerResult, error) {
	o.logStep("load_snapshot", "tenant_id", tenantID)
	snapshot, err := o.repo.LoadSnapshot(ctx, tenantID)
	if err != nil {
		return planner.PlannerResult{}, fmt.Errorf("failed to load planner snapshot: %w", err)
	}

	input := planner.PlannerInput{
		Branches: snapshot.Branches,
		Workers:  snapshot.Workers,
		Stocks:   snapshot.Stocks,
		Jobs:     snapshot.Jobs,
	}

	if len(input.Jobs) == 0 {
		o.logStep("no_jobs")
		return planner.PlannerResult{Jobs: map[uuid.UUID]planner.JobResult{}, Status: planner.StatusNoJobs}, nil
	}

	o.logStep("preprocess", "branches", len(input.Branches), "workers", len(input.Workers), "stocks", len(input.Stocks), "jobs", len(input.Jobs))
	pre := planner.Preprocess(input, o.cfg)

	o.logStep("build_model", "feasible_worker_jobs", len(pre.FeasibleWorkerJobs), "relevant_stock_jobs", len(pre.RelevantStockJobs))
	built := planner.BuildModel(pre, o.cfg)

	o.logStep("solve", "max_time_seconds", o.cfg.MaxTimeSeconds)
	solveResult, err := planner.Solve(built, pre, o.cfg, o.cache)
	if err != nil {
		return planner.PlannerResult{}, fmt.Errorf("failed to solve plan: %w", err)
	}

	o.logStep("extract", "status", solveResult.Status, "solve_time", solveResult.SolveTime)
	result, cacheUpdate := planner.ExtractSolution(built, pre, solveResult)

	if cacheUpdate != nil && o.cache != nil {
		o.cache.Replace(cacheUpdate)
	}

	workerAssignments, stockAssignments := planner.FormatForDatabase(result)

	jobIDs := make([]uuid.UUID, len(input.Jobs))
	for i, job := range input.Jobs {
		jobIDs[i] = job.ID
	}

	o.logStep("save_assignments", "workers", len(workerAssignments), "stocks", len(stockAssignments))
	if err := o.repo.SaveAssignments(ctx, tenantID, jobIDs, workerAssignments, stockAssignments); err != nil {
		return planner.PlannerResult{}, fmt.Errorf("failed to save assignments: %w", err)
	}

	return result, nil
}

// RunAsync fires ComputePlan in a background goroutine, detached from the
// caller's context, and immediately reports that the run has started. Solve
// failures are logged rather than surfaced to the caller, since no
// synchronous channel remains open to receive them.
func (o *PlannerOrchestrator) RunAsync(tenantID uuid.UUID) map[string]interface{} {
	go func() {
		ctx := context.Background()
		if _, err := o.ComputePlan(ctx, tenantID); err != nil {
			o.logger.Printf("async plan run failed: tenant_id=%s error=%v", tenantID, err)
		}
	}()

	return map[string]interface{}{
		"status":    "STARTED",
		"tenant_id": tenantID,
	}
}
