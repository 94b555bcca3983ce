package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

func TestApplyWarmStartBiasWithSeededCache(t *testing.T) {
	branch := domain.Branch{ID: uuid.New(), Latitude: 52.52, Longitude: 13.40}
	worker := domain.Worker{ID: uuid.New(), BranchID: branch.ID, RoleNames: []string{"elec"}}
	job := domain.Job{
		ID:            uuid.New(),
		Latitude:      52.51,
		Longitude:     13.39,
		Start:         time.Now(),
		End:           time.Now().Add(2 * time.Hour),
		RequiredRoles: map[string]int{"elec": 1},
	}

	input := PlannerInput{Branches: []domain.Branch{branch}, Workers: []domain.Worker{worker}, Jobs: []domain.Job{job}}
	cfg := DefaultConfig()
	cfg.MaxTimeSeconds = 0.1

	pre := Preprocess(input, cfg)
	built := BuildModel(pre, cfg)

	cache := NewWarmStartCache(100, nil)
	// Seeding the cache before a solve should not panic, and Get should
	// return the seeded value for the lone feasible pair.
	key := warmStartKey{kind: "worker", entityID: worker.ID, jobID: job.ID}
	cache.Replace(map[warmStartKey]int{key: 1})
	assert.Equal(t, 1, cache.Get(key))

	applyWarmStartBias(built, pre, cache)
}
