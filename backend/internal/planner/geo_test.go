package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceZero(t *testing.T) {
	d := HaversineDistance(52.52, 13.40, 52.52, 13.40)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestHaversineDistanceKnownPair(t *testing.T) {
	// 0.05 degrees of latitude due south within Berlin, roughly 5.6km apart.
	d := HaversineDistance(52.52, 13.40, 52.47, 13.40)
	assert.Greater(t, d, 4.0)
	assert.Less(t, d, 10.0)
}

func TestEstimateTravelTime(t *testing.T) {
	d := EstimateTravelTime(100, 50)
	assert.Equal(t, 2*time.Hour, d)
}

func TestTimeIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		s1, e1   time.Time
		s2, e2   time.Time
		expected bool
	}{
		{
			"overlapping",
			base, base.Add(2 * time.Hour),
			base.Add(time.Hour), base.Add(3 * time.Hour),
			true,
		},
		{
			"adjacent-no-overlap",
			base, base.Add(time.Hour),
			base.Add(time.Hour), base.Add(2 * time.Hour),
			false,
		},
		{
			"disjoint",
			base, base.Add(time.Hour),
			base.Add(3 * time.Hour), base.Add(4 * time.Hour),
			false,
		},
		{
			"zero-length-never-overlaps",
			base, base,
			base, base.Add(time.Hour),
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TimeIntervalsOverlap(tc.s1, tc.e1, tc.s2, tc.e2))
		})
	}
}

func TestFitsInShiftBudgetDefault(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	// ~14km apart, well within the 10h budget together with a 3h job.
	ok := FitsInShiftBudget(52.52, 13.40, 52.40, 13.40, start, end, 50.0, 10*time.Hour)
	assert.True(t, ok)
}

func TestFitsInShiftBudgetRejectsLongRoundTrip(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(9 * time.Hour)

	// Long job plus travel should exceed a 10h budget.
	ok := FitsInShiftBudget(52.52, 13.40, 50.00, 10.00, start, end, 50.0, 10*time.Hour)
	assert.False(t, ok)
}

func TestCanReachBeforeStart(t *testing.T) {
	jobStart := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	currentTime := jobStart.Add(-2 * time.Hour)

	ok := CanReachBeforeStart(52.52, 13.40, 52.52, 13.40, jobStart, currentTime, 50.0)
	assert.True(t, ok)

	notOk := CanReachBeforeStart(52.52, 13.40, 10.0, 10.0, jobStart, currentTime, 50.0)
	assert.False(t, notOk)
}
