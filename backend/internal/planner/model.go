package planner

import (
	"sort"

	"github.com/google/uuid"
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// BuiltModel wraps the MIP model and the decision-variable maps needed
// to read back a solution, keyed over feasible pairs only (per the
// design note on variable creation).
type BuiltModel struct {
	Model mip.Model

	X   model.MultiMap[mip.Bool, WorkerJobPair] // x[w,j]
	Q   model.MultiMap[mip.Int, StockJobPair]   // q[s,j]
	Sat []mip.Bool                              // sat[j], indexed by job position

	WorkerJobTerms []WorkerJobPair // iteration order used for hinting/extraction
	StockJobTerms  []StockJobPair
}

// BuildModel declares the decision variables and constraints described
// in the model builder: no-overlap per worker, stock capacity as hard
// constraints; role and item coverage as constraints gated on the
// per-job "satisfied" indicator; and the lexicographic coverage-then-
// distance objective.
//
// The CP-SAT original expresses role/item coverage as indicator
// constraints ("enforced only if sat[j]"). This binding has no
// indicator-constraint primitive, so each is linearized as
// `sum(eligible assignments) - requiredCount * sat[j] >= 0`: when
// sat[j] = 0 the constraint is the trivial `sum >= 0`; when sat[j] = 1
// it reduces exactly to the original `sum >= requiredCount`. No big-M
// slack term is needed because requiredCount is a compile-time-known
// constant, not a decision variable.
func BuildModel(pre *Preprocessed, cfg Config) *BuiltModel {
	m := mip.NewModel()
	m.Objective().SetMinimize()

	x := model.NewMultiMap(
		func(...WorkerJobPair) mip.Bool { return m.NewBool() },
		pre.FeasibleWorkerJobs,
	)

	q := model.NewMultiMap(
		func(pairs ...StockJobPair) mip.Int {
			return m.NewInt(0, int64(pairs[0].MaxQty))
		},
		pre.RelevantStockJobs,
	)

	jobs := pre.Input.Jobs
	sat := make([]mip.Bool, len(jobs))
	for j := range jobs {
		sat[j] = m.NewBool()
	}

	// Feasible worker-job pairs per job, and per worker, for fast lookup
	// when building per-job/per-worker constraints.
	wjByJob := make(map[int][]WorkerJobPair)
	wjByWorker := make(map[int][]WorkerJobPair)
	for _, pair := range pre.FeasibleWorkerJobs {
		wjByJob[pair.JobIdx] = append(wjByJob[pair.JobIdx], pair)
		wjByWorker[pair.WorkerIdx] = append(wjByWorker[pair.WorkerIdx], pair)
	}

	sjByJob := make(map[int][]StockJobPair)
	sjByStock := make(map[int][]StockJobPair)
	for _, pair := range pre.RelevantStockJobs {
		sjByJob[pair.JobIdx] = append(sjByJob[pair.JobIdx], pair)
		sjByStock[pair.StockIdx] = append(sjByStock[pair.StockIdx], pair)
	}

	// No temporal overlap per worker: for every worker and every
	// unordered pair of distinct, time-overlapping jobs it could be
	// assigned to, at most one of the two assignments may be active.
	// Iterated by worker index (not map range) so constraint creation
	// order is fixed for a given input, keeping the solve deterministic.
	for w := range pre.Input.Workers {
		pairs := wjByWorker[w]
		for i := 0; i < len(pairs); i++ {
			for k := i + 1; k < len(pairs); k++ {
				j1, j2 := pairs[i].JobIdx, pairs[k].JobIdx
				job1, job2 := jobs[j1], jobs[j2]
				if !TimeIntervalsOverlap(job1.Start, job1.End, job2.Start, job2.End) {
					continue
				}
				c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				c.NewTerm(1.0, x.Get(pairs[i]))
				c.NewTerm(1.0, x.Get(pairs[k]))
			}
		}
	}

	// Stock capacity: total assigned quantity never exceeds what's held.
	for s, stock := range pre.Input.Stocks {
		pairs := sjByStock[s]
		if len(pairs) == 0 {
			continue
		}
		c := m.NewConstraint(mip.LessThanOrEqual, float64(stock.Quantity))
		for _, pair := range pairs {
			c.NewTerm(1.0, q.Get(pair))
		}
	}

	// Role and item coverage, gated on sat[j]. Required roles/items are
	// sorted by key before constraint creation so model construction
	// order — and therefore the solver's tie-breaking — only depends on
	// the input data, not on Go's randomized map iteration.
	for j, job := range jobs {
		for _, roleName := range sortedStringKeys(job.RequiredRoles) {
			required := job.RequiredRoles[roleName]
			var eligible []WorkerJobPair
			for _, pair := range wjByJob[j] {
				if _, ok := pre.WorkerRoles[pair.WorkerIdx][roleName]; ok {
					eligible = append(eligible, pair)
				}
			}
			if len(eligible) == 0 {
				forceUnsatisfied(m, sat[j])
				continue
			}
			c := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
			for _, pair := range eligible {
				c.NewTerm(1.0, x.Get(pair))
			}
			c.NewTerm(-float64(required), sat[j])
		}

		for _, itemID := range sortedUUIDKeys(job.RequiredItems) {
			required := job.RequiredItems[itemID]
			var eligible []StockJobPair
			for _, pair := range sjByJob[j] {
				if pre.Input.Stocks[pair.StockIdx].ItemID == itemID {
					eligible = append(eligible, pair)
				}
			}
			if len(eligible) == 0 {
				forceUnsatisfied(m, sat[j])
				continue
			}
			c := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
			for _, pair := range eligible {
				c.NewTerm(1.0, q.Get(pair))
			}
			c.NewTerm(-float64(required), sat[j])
		}
	}

	// Objective: dominant coverage term, then discretized distance cost.
	for j := range jobs {
		m.Objective().NewTerm(-float64(cfg.CoverageWeight), sat[j])
	}
	for _, pair := range pre.RelevantStockJobs {
		cost := int(pre.SJDist[pair.StockIdx][pair.JobIdx]) / cfg.CostBucketKm
		if cost > 0 {
			m.Objective().NewTerm(float64(cost), q.Get(pair))
		}
	}
	for _, pair := range pre.FeasibleWorkerJobs {
		cost := int(pre.WJDist[pair.WorkerIdx][pair.JobIdx]) / cfg.CostBucketKm
		if cost > 0 {
			m.Objective().NewTerm(float64(cost), x.Get(pair))
		}
	}

	return &BuiltModel{
		Model:          m,
		X:              x,
		Q:              q,
		Sat:            sat,
		WorkerJobTerms: pre.FeasibleWorkerJobs,
		StockJobTerms:  pre.RelevantStockJobs,
	}
}

// forceUnsatisfied pins sat[j] to 0 when no eligible worker or stock
// exists to cover one of the job's requirements.
func forceUnsatisfied(m mip.Model, satJ mip.Bool) {
	c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	c.NewTerm(1.0, satJ)
}

func sortedStringKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedUUIDKeys(m map[uuid.UUID]int) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
