package planner

import (
	"github.com/google/uuid"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

// Status is the outcome of a solve attempt.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusUnknown    Status = "UNKNOWN"
	StatusNoJobs     Status = "NO_JOBS"
)

// PlannerInput is the closed-world snapshot handed to compute_plan: all
// cross-references are resolved within the snapshot; dangling
// references are silently dropped, excluding the referring entity from
// the solve.
type PlannerInput struct {
	Branches []domain.Branch
	Workers  []domain.Worker
	Stocks   []domain.Stock
	Jobs     []domain.Job
}

// StockAssignmentResult is a single stock commitment within a job's
// result entry.
type StockAssignmentResult struct {
	StockID  uuid.UUID
	Quantity int
}

// JobResult holds the workers and stock commitments assigned to one job.
type JobResult struct {
	Workers []uuid.UUID
	Stocks  []StockAssignmentResult
}

// PlannerResult is the assignment produced by a solve: a mapping from
// job id to its JobResult, plus the solver's status and wall time.
type PlannerResult struct {
	Jobs      map[uuid.UUID]JobResult
	Status    Status
	SolveTime float64 // seconds
}
