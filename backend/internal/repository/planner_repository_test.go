package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fieldplan/backend/internal/domain"
	"github.com/pageza/fieldplan/backend/internal/repository"
)

func TestPlannerRepository_LoadSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPlannerRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	branchID := uuid.New()
	workerID := uuid.New()
	stockID := uuid.New()
	itemID := uuid.New()
	jobID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM branch").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "name", "latitude", "longitude", "address", "created_at", "updated_at",
		}).AddRow(branchID, tenantID, "Depot A", 52.52, 13.40, nil, now, now))

	mock.ExpectQuery("SELECT (.+) FROM worker").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "first_name", "last_name", "phone", "branch_id", "created_at", "updated_at",
		}).AddRow(workerID, tenantID, "Ada", "Lovelace", nil, branchID, now, now))

	mock.ExpectQuery("SELECT (.+) FROM worker__role").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"worker_id", "name"}).
			AddRow(workerID, "electrician"))

	mock.ExpectQuery("SELECT (.+) FROM stock").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "branch_id", "item_id", "quantity", "created_at", "updated_at",
		}).AddRow(stockID, tenantID, branchID, itemID, 12, now, now))

	mock.ExpectQuery("SELECT (.+) FROM job\\b").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "name", "description", "latitude", "longitude", "address",
			"start_datetime", "end_datetime", "created_at", "updated_at",
		}).AddRow(jobID, tenantID, "Rewire Unit 4", nil, 52.51, 13.39, nil,
			now, now.Add(2*time.Hour), now, now))

	mock.ExpectQuery("SELECT (.+) FROM job__role").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "name", "count"}).
			AddRow(jobID, "electrician", 2))

	mock.ExpectQuery("SELECT (.+) FROM job__item").
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "item_id", "quantity"}).
			AddRow(jobID, itemID, 3))

	snapshot, err := repo.LoadSnapshot(ctx, tenantID)
	require.NoError(t, err)

	require.Len(t, snapshot.Branches, 1)
	assert.Equal(t, branchID, snapshot.Branches[0].ID)

	require.Len(t, snapshot.Workers, 1)
	assert.Equal(t, []string{"electrician"}, snapshot.Workers[0].RoleNames)

	require.Len(t, snapshot.Stocks, 1)
	assert.Equal(t, 12, snapshot.Stocks[0].Quantity)

	require.Len(t, snapshot.Jobs, 1)
	assert.Equal(t, 2, snapshot.Jobs[0].RequiredRoles["electrician"])
	assert.Equal(t, 3, snapshot.Jobs[0].RequiredItems[itemID])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlannerRepository_SaveAssignmentsNoOpOnEmptyJobList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPlannerRepository(db)

	err = repo.SaveAssignments(context.Background(), uuid.New(), nil, nil, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlannerRepository_SaveAssignmentsClearsAndRewritesWithinTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPlannerRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	jobID := uuid.New()
	workerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM worker__job").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM job__stock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("COPY \"worker__job\"")
	mock.ExpectExec("COPY \"worker__job\"").
		WithArgs(workerID, jobID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("COPY \"worker__job\"").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = repo.SaveAssignments(ctx, tenantID, []uuid.UUID{jobID},
		[]domain.WorkerAssignment{{WorkerID: workerID, JobID: jobID}}, nil)
	require.NoError(t, err)
}
