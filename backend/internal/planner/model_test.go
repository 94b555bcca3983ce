package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

func TestBuildModelVariableCountsMatchFeasiblePairs(t *testing.T) {
	branch := domain.Branch{ID: uuid.New(), Latitude: 52.52, Longitude: 13.40}
	item := uuid.New()
	worker := domain.Worker{ID: uuid.New(), BranchID: branch.ID, RoleNames: []string{"elec"}}
	stock := domain.Stock{ID: uuid.New(), BranchID: branch.ID, ItemID: item, Quantity: 10}
	job := domain.Job{
		ID:            uuid.New(),
		Latitude:      52.51,
		Longitude:     13.39,
		Start:         time.Now(),
		End:           time.Now().Add(3 * time.Hour),
		RequiredRoles: map[string]int{"elec": 1},
		RequiredItems: map[uuid.UUID]int{item: 5},
	}

	input := PlannerInput{
		Branches: []domain.Branch{branch},
		Workers:  []domain.Worker{worker},
		Stocks:   []domain.Stock{stock},
		Jobs:     []domain.Job{job},
	}

	cfg := DefaultConfig()
	pre := Preprocess(input, cfg)
	built := BuildModel(pre, cfg)

	require.Len(t, built.Sat, 1)
	assert.Len(t, built.WorkerJobTerms, len(pre.FeasibleWorkerJobs))
	assert.Len(t, built.StockJobTerms, len(pre.RelevantStockJobs))
	assert.NotNil(t, built.Model)
}

func TestBuildModelHandlesUncoverableJob(t *testing.T) {
	branch := domain.Branch{ID: uuid.New(), Latitude: 52.52, Longitude: 13.40}
	job := domain.Job{
		ID:            uuid.New(),
		Latitude:      52.52,
		Longitude:     13.40,
		Start:         time.Now(),
		End:           time.Now().Add(time.Hour),
		RequiredRoles: map[string]int{"elec": 1},
	}

	input := PlannerInput{
		Branches: []domain.Branch{branch},
		Jobs:     []domain.Job{job},
	}

	cfg := DefaultConfig()
	pre := Preprocess(input, cfg)

	// No panics building a model for a job nobody can cover; sat[j] is
	// forced to 0 via a standalone constraint rather than left free.
	built := BuildModel(pre, cfg)
	assert.Len(t, built.Sat, 1)
}
