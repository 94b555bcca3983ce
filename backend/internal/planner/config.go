package planner

import (
	"time"

	pkgconfig "github.com/pageza/fieldplan/backend/internal/config"
)

// ConfigFromAppConfig maps the application-wide Config's PLANNER_* knobs
// onto the planner's own Config type.
func ConfigFromAppConfig(c *pkgconfig.Config) Config {
	return Config{
		ReachabilityRadiusKm: c.PlannerReachabilityRadiusKm,
		AvgSpeedKmh:          c.PlannerAvgSpeedKmh,
		ShiftBudget:          time.Duration(c.PlannerShiftBudgetHours * float64(time.Hour)),
		CoverageWeight:       c.PlannerCoverageWeight,
		CostBucketKm:         c.PlannerCostBucketKm,
		MaxTimeSeconds:       c.PlannerMaxTimeSeconds,
		NumSearchWorkers:     c.PlannerNumSearchWorkers,
	}
}
