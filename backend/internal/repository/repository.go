package repository

import (
	"github.com/pageza/fieldplan/backend/pkg/database"
)

// Repositories holds all repository interfaces the planner depends on.
type Repositories struct {
	Planner PlannerRepository
}

// NewRepositories wires the planner repository against a live connection.
func NewRepositories(conn *database.Connection) *Repositories {
	return &Repositories{
		Planner: NewPlannerRepository(conn.DB),
	}
}
