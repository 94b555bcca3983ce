package planner

import (
	"github.com/google/uuid"
)

// ExtractSolution reads variable values from a completed solve into a
// PlannerResult, along with the records that should replace the
// warm-start cache.
//
// On OPTIMAL/FEASIBLE: for each job, workers whose x[w,j]=1 are
// collected in snapshot iteration order, and stocks with q[s,j]>0 are
// collected as {stock_id, quantity}; the cache-update map is rebuilt
// from only the non-zero entries.
//
// On INFEASIBLE/UNKNOWN: every job gets an empty result and the
// cache-update map is nil, leaving any existing warm-start cache
// untouched (it is a performance aid only, not correctness-bearing).
func ExtractSolution(built *BuiltModel, pre *Preprocessed, result SolveResult) (PlannerResult, map[warmStartKey]int) {
	jobs := pre.Input.Jobs
	out := PlannerResult{
		Jobs:      make(map[uuid.UUID]JobResult, len(jobs)),
		Status:    result.Status,
		SolveTime: result.SolveTime.Seconds(),
	}

	if result.Status != StatusOptimal && result.Status != StatusFeasible {
		for _, job := range jobs {
			out.Jobs[job.ID] = JobResult{}
		}
		return out, nil
	}

	perJobWorkers := make(map[uuid.UUID][]uuid.UUID, len(jobs))
	perJobStocks := make(map[uuid.UUID][]StockAssignmentResult, len(jobs))
	cacheUpdate := make(map[warmStartKey]int)

	for _, pair := range built.WorkerJobTerms {
		if result.Solution.Value(built.X.Get(pair)) < 0.5 {
			continue
		}
		workerID := pre.Input.Workers[pair.WorkerIdx].ID
		jobID := pre.Input.Jobs[pair.JobIdx].ID
		perJobWorkers[jobID] = append(perJobWorkers[jobID], workerID)
		cacheUpdate[warmStartKey{kind: "worker", entityID: workerID, jobID: jobID}] = 1
	}

	for _, pair := range built.StockJobTerms {
		qty := int(result.Solution.Value(built.Q.Get(pair)) + 0.5)
		if qty <= 0 {
			continue
		}
		stockID := pre.Input.Stocks[pair.StockIdx].ID
		jobID := pre.Input.Jobs[pair.JobIdx].ID
		perJobStocks[jobID] = append(perJobStocks[jobID], StockAssignmentResult{StockID: stockID, Quantity: qty})
		cacheUpdate[warmStartKey{kind: "stock", entityID: stockID, jobID: jobID}] = qty
	}

	for _, job := range jobs {
		out.Jobs[job.ID] = JobResult{
			Workers: perJobWorkers[job.ID],
			Stocks:  perJobStocks[job.ID],
		}
	}

	return out, cacheUpdate
}
