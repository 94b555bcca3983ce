package planner

import (
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

// largeFleetFixture generates a synthetic branch/worker/stock/job snapshot
// sized for the warm-start scenario named in the testable-properties
// section: a 30-job/20-worker/30-stock input, large enough that solve
// time is worth comparing across a warm and cold cache.
//
// Names come from go-faker, mirroring the teacher's TestFixtures helper
// in tests/testutils/fixtures.go; coordinates and quantities are derived
// from faker.RandomInt rather than faker's Address generator, since the
// teacher's own use of the latter does not type-check against its
// current domain models and is not worth reproducing here.
func largeFleetFixture() PlannerInput {
	const (
		branchCount = 4
		workerCount = 20
		stockCount  = 30
		jobCount    = 30
	)

	baseLat, baseLon := 52.52, 13.40

	branches := make([]domain.Branch, branchCount)
	for i := range branches {
		branches[i] = domain.Branch{
			ID:        uuid.New(),
			Name:      faker.Word(),
			Latitude:  baseLat + float64(faker.RandomInt(-50, 50))/100.0,
			Longitude: baseLon + float64(faker.RandomInt(-50, 50))/100.0,
		}
	}

	roleNames := []string{"elec", "plumb", "hvac"}
	items := make([]uuid.UUID, 5)
	for i := range items {
		items[i] = uuid.New()
	}

	workers := make([]domain.Worker, workerCount)
	for i := range workers {
		branch := branches[i%branchCount]
		workers[i] = domain.Worker{
			ID:        uuid.New(),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			BranchID:  branch.ID,
			RoleNames: []string{roleNames[i%len(roleNames)]},
		}
	}

	stocks := make([]domain.Stock, stockCount)
	for i := range stocks {
		branch := branches[i%branchCount]
		stocks[i] = domain.Stock{
			ID:       uuid.New(),
			BranchID: branch.ID,
			ItemID:   items[i%len(items)],
			Quantity: faker.RandomInt(5, 50),
		}
	}

	now := time.Now()
	jobs := make([]domain.Job, jobCount)
	for i := range jobs {
		branch := branches[i%branchCount]
		start := now.Add(time.Duration(faker.RandomInt(1, 48)) * time.Hour)
		jobs[i] = domain.Job{
			ID:            uuid.New(),
			Name:          faker.Sentence(),
			Latitude:      branch.Latitude + float64(faker.RandomInt(-10, 10))/100.0,
			Longitude:     branch.Longitude + float64(faker.RandomInt(-10, 10))/100.0,
			Start:         start,
			End:           start.Add(time.Duration(faker.RandomInt(1, 4)) * time.Hour),
			RequiredRoles: map[string]int{roleNames[i%len(roleNames)]: 1},
			RequiredItems: map[uuid.UUID]int{items[i%len(items)]: faker.RandomInt(1, 5)},
		}
	}

	return PlannerInput{Branches: branches, Workers: workers, Stocks: stocks, Jobs: jobs}
}
