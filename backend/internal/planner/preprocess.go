package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

// WorkerJobPair identifies a feasible (worker index, job index) pair by
// position in the snapshot's Workers/Jobs slices.
type WorkerJobPair struct {
	WorkerIdx int
	JobIdx    int
}

// StockJobPair identifies a relevant (stock index, job index) pair, with
// the per-pair variable upper bound already resolved.
type StockJobPair struct {
	StockIdx int
	JobIdx   int
	MaxQty   int
}

// Preprocessed holds the lookup tables and feasible-pair sets built by
// Preprocess, all indexed by position in the snapshot's slices so that
// downstream code accesses entities by dense integer index rather than
// by string id.
type Preprocessed struct {
	Input PlannerInput

	// WorkerRoles[w] is the set of role names worker w carries.
	WorkerRoles []map[string]struct{}
	// WorkerResolvable[w] is false when the worker's branch could not be
	// resolved; such workers are excluded from every feasible pair.
	WorkerResolvable []bool

	// StockResolvable[s] is false when the stock's branch could not be
	// resolved.
	StockResolvable []bool

	// WJDist[w][j] and SJDist[s][j] are precomputed haversine distances,
	// valid only where the corresponding entity resolved.
	WJDist [][]float64
	SJDist [][]float64

	// FeasibleWorkerJobs is F_WJ: worker-job pairs within the
	// reachability radius that also fit the shift budget.
	FeasibleWorkerJobs []WorkerJobPair
	// RelevantStockJobs is F_SJ: stock-job pairs where the job needs the
	// stock's item and the stock has a positive quantity.
	RelevantStockJobs []StockJobPair
}

// Config bundles the solver-facing tunables that the pre-processor and
// model builder both need.
type Config struct {
	ReachabilityRadiusKm float64
	AvgSpeedKmh          float64
	ShiftBudget          time.Duration
	CoverageWeight       int
	CostBucketKm         int
	MaxTimeSeconds       float64
	// NumSearchWorkers is accepted for parity with the external interface
	// but is not forwarded to Solve: the HiGHS binding this package uses
	// has no parallel-worker-count option the way CP-SAT's
	// num_search_workers does.
	NumSearchWorkers int
}

// DefaultConfig returns the configuration defaults named in the external
// interface: 200km reachability, 50km/h average speed, a 10h shift
// budget, coverage weight 10000, a 10km cost bucket, a 5s solver budget
// and 4 parallel search workers.
func DefaultConfig() Config {
	return Config{
		ReachabilityRadiusKm: 200.0,
		AvgSpeedKmh:          50.0,
		ShiftBudget:          10 * time.Hour,
		CoverageWeight:       10000,
		CostBucketKm:         10,
		MaxTimeSeconds:       5.0,
		NumSearchWorkers:     4,
	}
}

// Preprocess builds the lookup tables and feasible-pair sets from a
// PlannerInput snapshot, per the pre-processor's responsibilities.
// Workers and stocks whose branch does not resolve in the snapshot are
// excluded from every feasible pair, but are not removed from the
// slices themselves — extraction still iterates the original index
// space.
func Preprocess(input PlannerInput, cfg Config) *Preprocessed {
	branchByID := make(map[uuid.UUID]domain.Branch, len(input.Branches))
	for _, b := range input.Branches {
		branchByID[b.ID] = b
	}

	p := &Preprocessed{
		Input:            input,
		WorkerRoles:      make([]map[string]struct{}, len(input.Workers)),
		WorkerResolvable: make([]bool, len(input.Workers)),
		StockResolvable:  make([]bool, len(input.Stocks)),
		WJDist:           make([][]float64, len(input.Workers)),
		SJDist:           make([][]float64, len(input.Stocks)),
	}

	workerBranch := make([]domain.Branch, len(input.Workers))
	for w, worker := range input.Workers {
		roles := make(map[string]struct{}, len(worker.RoleNames))
		for _, r := range worker.RoleNames {
			roles[r] = struct{}{}
		}
		p.WorkerRoles[w] = roles

		branch, ok := branchByID[worker.BranchID]
		p.WorkerResolvable[w] = ok
		if !ok {
			continue
		}
		workerBranch[w] = branch

		p.WJDist[w] = make([]float64, len(input.Jobs))
		for j, job := range input.Jobs {
			p.WJDist[w][j] = HaversineDistance(branch.Latitude, branch.Longitude, job.Latitude, job.Longitude)
		}
	}

	stockBranch := make([]domain.Branch, len(input.Stocks))
	for s, stock := range input.Stocks {
		branch, ok := branchByID[stock.BranchID]
		p.StockResolvable[s] = ok
		if !ok {
			continue
		}
		stockBranch[s] = branch

		p.SJDist[s] = make([]float64, len(input.Jobs))
		for j, job := range input.Jobs {
			p.SJDist[s][j] = HaversineDistance(branch.Latitude, branch.Longitude, job.Latitude, job.Longitude)
		}
	}

	for w := range input.Workers {
		if !p.WorkerResolvable[w] {
			continue
		}
		branch := workerBranch[w]
		for j, job := range input.Jobs {
			dist := p.WJDist[w][j]
			if dist > cfg.ReachabilityRadiusKm {
				continue
			}
			if !FitsInShiftBudget(branch.Latitude, branch.Longitude, job.Latitude, job.Longitude, job.Start, job.End, cfg.AvgSpeedKmh, cfg.ShiftBudget) {
				continue
			}
			p.FeasibleWorkerJobs = append(p.FeasibleWorkerJobs, WorkerJobPair{WorkerIdx: w, JobIdx: j})
		}
	}

	for s, stock := range input.Stocks {
		if !p.StockResolvable[s] {
			continue
		}
		if stock.Quantity <= 0 {
			continue
		}
		for j, job := range input.Jobs {
			need := job.RequiredItems[stock.ItemID]
			if need <= 0 {
				continue
			}
			maxQty := stock.Quantity
			if need < maxQty {
				maxQty = need
			}
			p.RelevantStockJobs = append(p.RelevantStockJobs, StockJobPair{StockIdx: s, JobIdx: j, MaxQty: maxQty})
		}
	}

	return p
}
