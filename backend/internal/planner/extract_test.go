package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fieldplan/backend/internal/domain"
)

func TestExtractSolutionInfeasibleYieldsEmptyAssignmentsAndNilCacheUpdate(t *testing.T) {
	job := domain.Job{ID: uuid.New()}
	pre := &Preprocessed{Input: PlannerInput{Jobs: []domain.Job{job}}}

	result := SolveResult{Status: StatusInfeasible, SolveTime: 2 * time.Second}
	out, cacheUpdate := ExtractSolution(&BuiltModel{}, pre, result)

	require.Contains(t, out.Jobs, job.ID)
	assert.Equal(t, StatusInfeasible, out.Status)
	assert.Equal(t, 2.0, out.SolveTime)
	assert.Equal(t, JobResult{}, out.Jobs[job.ID])
	assert.Nil(t, cacheUpdate)
}

func TestExtractSolutionUnknownAlsoLeavesCacheUntouched(t *testing.T) {
	job := domain.Job{ID: uuid.New()}
	pre := &Preprocessed{Input: PlannerInput{Jobs: []domain.Job{job}}}

	result := SolveResult{Status: StatusUnknown}
	_, cacheUpdate := ExtractSolution(&BuiltModel{}, pre, result)

	assert.Nil(t, cacheUpdate)
}
