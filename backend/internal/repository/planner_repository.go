package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

// PlannerRepository loads the planner's input snapshot and writes back the
// assignments a solve produces.
type PlannerRepository interface {
	LoadSnapshot(ctx context.Context, tenantID uuid.UUID) (*PlannerSnapshot, error)
	SaveAssignments(ctx context.Context, tenantID uuid.UUID, jobIDs []uuid.UUID, workers []domain.WorkerAssignment, stocks []domain.StockAssignment) error
}

// PlannerSnapshot is the full set of entities a solve operates over.
type PlannerSnapshot struct {
	Branches []domain.Branch
	Workers  []domain.Worker
	Stocks   []domain.Stock
	Jobs     []domain.Job
}

type plannerRepository struct {
	db *sql.DB
}

// NewPlannerRepository creates a new planner repository instance.
func NewPlannerRepository(db *sql.DB) PlannerRepository {
	return &plannerRepository{db: db}
}

// LoadSnapshot reads every branch, worker (with resolved role names), stock
// row, and job (with resolved required roles and items) for a tenant.
func (r *plannerRepository) LoadSnapshot(ctx context.Context, tenantID uuid.UUID) (*PlannerSnapshot, error) {
	branches, err := r.loadBranches(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	workers, err := r.loadWorkers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stocks, err := r.loadStocks(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	jobs, err := r.loadJobs(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &PlannerSnapshot{
		Branches: branches,
		Workers:  workers,
		Stocks:   stocks,
		Jobs:     jobs,
	}, nil
}

func (r *plannerRepository) loadBranches(ctx context.Context, tenantID uuid.UUID) ([]domain.Branch, error) {
	query := `
		SELECT id, tenant_id, name, latitude, longitude, address, created_at, updated_at
		FROM branch
		WHERE tenant_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Name, &b.Latitude, &b.Longitude, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branches: %w", err)
	}

	return branches, nil
}

func (r *plannerRepository) loadWorkers(ctx context.Context, tenantID uuid.UUID) ([]domain.Worker, error) {
	query := `
		SELECT id, tenant_id, first_name, last_name, phone, branch_id, created_at, updated_at
		FROM worker
		WHERE tenant_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}
	defer rows.Close()

	workers := make([]domain.Worker, 0)
	for rows.Next() {
		var w domain.Worker
		if err := rows.Scan(&w.ID, &w.TenantID, &w.FirstName, &w.LastName, &w.Phone, &w.BranchID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	roleQuery := `
		SELECT wr.worker_id, r.name
		FROM worker__role wr
		JOIN role r ON r.id = wr.role_id
		JOIN worker w ON w.id = wr.worker_id
		WHERE w.tenant_id = $1`

	roleRows, err := r.db.QueryContext(ctx, roleQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load worker roles: %w", err)
	}
	defer roleRows.Close()

	rolesByWorker := make(map[uuid.UUID][]string)
	for roleRows.Next() {
		var workerID uuid.UUID
		var roleName string
		if err := roleRows.Scan(&workerID, &roleName); err != nil {
			return nil, fmt.Errorf("failed to scan worker role: %w", err)
		}
		rolesByWorker[workerID] = append(rolesByWorker[workerID], roleName)
	}
	if err := roleRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating worker roles: %w", err)
	}

	for i := range workers {
		workers[i].RoleNames = rolesByWorker[workers[i].ID]
	}

	return workers, nil
}

func (r *plannerRepository) loadStocks(ctx context.Context, tenantID uuid.UUID) ([]domain.Stock, error) {
	query := `
		SELECT id, tenant_id, branch_id, item_id, quantity, created_at, updated_at
		FROM stock
		WHERE tenant_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	defer rows.Close()

	stocks := make([]domain.Stock, 0)
	for rows.Next() {
		var s domain.Stock
		if err := rows.Scan(&s.ID, &s.TenantID, &s.BranchID, &s.ItemID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock: %w", err)
	}

	return stocks, nil
}

func (r *plannerRepository) loadJobs(ctx context.Context, tenantID uuid.UUID) ([]domain.Job, error) {
	query := `
		SELECT id, tenant_id, name, description, latitude, longitude, address,
			start_datetime, end_datetime, created_at, updated_at
		FROM job
		WHERE tenant_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.TenantID, &j.Name, &j.Description, &j.Latitude, &j.Longitude, &j.Address,
			&j.Start, &j.End, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	// job__role carries one row per required worker of a role: a job
	// needing 3 electricians has 3 (job_id, role_id) rows for that role.
	roleQuery := `
		SELECT jr.job_id, r.name, COUNT(*)
		FROM job__role jr
		JOIN role r ON r.id = jr.role_id
		JOIN job j ON j.id = jr.job_id
		WHERE j.tenant_id = $1
		GROUP BY jr.job_id, r.name`

	roleRows, err := r.db.QueryContext(ctx, roleQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job roles: %w", err)
	}
	defer roleRows.Close()

	requiredRolesByJob := make(map[uuid.UUID]map[string]int)
	for roleRows.Next() {
		var jobID uuid.UUID
		var roleName string
		var count int
		if err := roleRows.Scan(&jobID, &roleName, &count); err != nil {
			return nil, fmt.Errorf("failed to scan job role: %w", err)
		}
		if requiredRolesByJob[jobID] == nil {
			requiredRolesByJob[jobID] = make(map[string]int)
		}
		requiredRolesByJob[jobID][roleName] = count
	}
	if err := roleRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job roles: %w", err)
	}

	itemQuery := `
		SELECT ji.job_id, ji.item_id, ji.quantity
		FROM job__item ji
		JOIN job j ON j.id = ji.job_id
		WHERE j.tenant_id = $1`

	itemRows, err := r.db.QueryContext(ctx, itemQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job items: %w", err)
	}
	defer itemRows.Close()

	requiredItemsByJob := make(map[uuid.UUID]map[uuid.UUID]int)
	for itemRows.Next() {
		var jobID, itemID uuid.UUID
		var quantity int
		if err := itemRows.Scan(&jobID, &itemID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan job item: %w", err)
		}
		if requiredItemsByJob[jobID] == nil {
			requiredItemsByJob[jobID] = make(map[uuid.UUID]int)
		}
		requiredItemsByJob[jobID][itemID] = quantity
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job items: %w", err)
	}

	for i := range jobs {
		jobs[i].RequiredRoles = requiredRolesByJob[jobs[i].ID]
		jobs[i].RequiredItems = requiredItemsByJob[jobs[i].ID]
	}

	return jobs, nil
}

// SaveAssignments replaces, within a single transaction, every worker__job
// and job__stock row for the given jobs with the freshly solved assignments.
// Jobs not present in jobIDs are left untouched. Bulk inserts use pq.CopyIn
// so a large solve doesn't round-trip once per row.
func (r *plannerRepository) SaveAssignments(ctx context.Context, tenantID uuid.UUID, jobIDs []uuid.UUID, workers []domain.WorkerAssignment, stocks []domain.StockAssignment) error {
	if len(jobIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin assignment transaction: %w", err)
	}
	defer tx.Rollback()

	jobIDArray := make([]uuid.UUID, len(jobIDs))
	copy(jobIDArray, jobIDs)

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM worker__job WHERE job_id = ANY($1) AND job_id IN (SELECT id FROM job WHERE tenant_id = $2)`,
		pq.Array(jobIDArray), tenantID); err != nil {
		return fmt.Errorf("failed to clear existing worker assignments: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM job__stock WHERE job_id = ANY($1) AND job_id IN (SELECT id FROM job WHERE tenant_id = $2)`,
		pq.Array(jobIDArray), tenantID); err != nil {
		return fmt.Errorf("failed to clear existing stock assignments: %w", err)
	}

	if len(workers) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("worker__job", "worker_id", "job_id"))
		if err != nil {
			return fmt.Errorf("failed to prepare worker assignment copy: %w", err)
		}
		for _, wa := range workers {
			if _, err := stmt.ExecContext(ctx, wa.WorkerID, wa.JobID); err != nil {
				return fmt.Errorf("failed to stage worker assignment: %w", err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to flush worker assignments: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("failed to close worker assignment copy: %w", err)
		}
	}

	if len(stocks) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("job__stock", "job_id", "stock_id", "assigned_quantity"))
		if err != nil {
			return fmt.Errorf("failed to prepare stock assignment copy: %w", err)
		}
		for _, sa := range stocks {
			if _, err := stmt.ExecContext(ctx, sa.JobID, sa.StockID, sa.AssignedQuantity); err != nil {
				return fmt.Errorf("failed to stage stock assignment: %w", err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to flush stock assignments: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("failed to close stock assignment copy: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment transaction: %w", err)
	}

	return nil
}
