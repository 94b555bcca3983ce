package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents a tenant in the multi-tenant system. Kept minimal:
// every planner entity is tenant-scoped, but tenant CRUD lives outside
// this repository's scope.
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Branch is a geo-located depot: home base for workers and storage point
// for stock. Immutable within a solve.
type Branch struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Address   *string   `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Role is a named worker qualification.
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Item is a consumable/resource a job may require.
type Item struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	BranchID    *uuid.UUID `json:"branch_id" db:"branch_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Worker is identified by ID, owns a home branch, and carries a set of
// role qualifications resolved via worker__role.
type Worker struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     *string   `json:"phone" db:"phone"`
	BranchID  uuid.UUID `json:"branch_id" db:"branch_id"`
	// RoleNames carries the worker's roles by name rather than role id:
	// matching crosses the persistence boundary by role name, so
	// renaming a role silently breaks assignment continuity.
	RoleNames []string  `json:"role_names" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Stock is a (branch, item, quantity) triple.
type Stock struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	BranchID  uuid.UUID `json:"branch_id" db:"branch_id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Job is a work order at a point location over a half-open time interval
// [Start, End), with role and item requirements.
//
// RequiredRoles maps role name -> required worker count. The count is
// carried as the row multiplicity of job__role in persistence (multiple
// rows for the same job/role pair mean "need N workers of this role");
// RequiredRoles is the resolved in-memory form of that convention.
//
// RequiredItems maps item id -> required quantity, resolved from the
// quantified job__item link.
type Job struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	TenantID      uuid.UUID         `json:"tenant_id" db:"tenant_id"`
	Name          string            `json:"name" db:"name"`
	Description   *string           `json:"description" db:"description"`
	Latitude      float64           `json:"latitude" db:"latitude"`
	Longitude     float64           `json:"longitude" db:"longitude"`
	Address       *string           `json:"address" db:"address"`
	Start         time.Time         `json:"start_datetime" db:"start_datetime"`
	End           time.Time         `json:"end_datetime" db:"end_datetime"`
	RequiredRoles map[string]int    `json:"required_roles" db:"-"`
	RequiredItems map[uuid.UUID]int `json:"required_items" db:"-"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// WorkerAssignment is a resolved worker->job assignment, as written to
// the worker__job association table.
type WorkerAssignment struct {
	WorkerID uuid.UUID `json:"worker_id" db:"worker_id"`
	JobID    uuid.UUID `json:"job_id" db:"job_id"`
}

// StockAssignment is a resolved stock->job commitment, as written to the
// job__stock association table.
type StockAssignment struct {
	JobID            uuid.UUID `json:"job_id" db:"job_id"`
	StockID          uuid.UUID `json:"stock_id" db:"stock_id"`
	AssignedQuantity int       `json:"assigned_quantity" db:"assigned_quantity"`
}
