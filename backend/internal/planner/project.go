package planner

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

// FormatForDatabase converts a PlannerResult into the two flat record
// lists the orchestrator bulk-inserts into worker__job and job__stock.
// Job ids are iterated in sorted order so repeated calls over the same
// result produce byte-identical record ordering, which keeps bulk-insert
// batches (and therefore tests asserting on them) deterministic.
func FormatForDatabase(result PlannerResult) ([]domain.WorkerAssignment, []domain.StockAssignment) {
	jobIDs := make([]uuid.UUID, 0, len(result.Jobs))
	for id := range result.Jobs {
		jobIDs = append(jobIDs, id)
	}
	sort.Slice(jobIDs, func(i, j int) bool { return jobIDs[i].String() < jobIDs[j].String() })

	var workerAssignments []domain.WorkerAssignment
	var stockAssignments []domain.StockAssignment

	for _, jobID := range jobIDs {
		jobResult := result.Jobs[jobID]

		for _, workerID := range jobResult.Workers {
			workerAssignments = append(workerAssignments, domain.WorkerAssignment{
				WorkerID: workerID,
				JobID:    jobID,
			})
		}

		for _, sa := range jobResult.Stocks {
			stockAssignments = append(stockAssignments, domain.StockAssignment{
				JobID:            jobID,
				StockID:          sa.StockID,
				AssignedQuantity: sa.Quantity,
			})
		}
	}

	return workerAssignments, stockAssignments
}
