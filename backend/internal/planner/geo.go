// Package planner implements the field-service workforce and inventory
// assignment solver: pre-processing, MIP model construction, solving,
// solution extraction, and database projection.
package planner

import (
	"math"
	"time"
)

// earthRadiusKm is the Earth radius used by HaversineDistance, matching
// the reference implementation's constant.
const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two
// (lat, lon) points in degrees, in kilometers. Inputs outside the
// normal lat/lon ranges are accepted without clamping.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateTravelTime converts a distance into a travel duration at the
// given average speed.
func EstimateTravelTime(distanceKm, avgSpeedKmh float64) time.Duration {
	hours := distanceKm / avgSpeedKmh
	return time.Duration(hours * float64(time.Hour))
}

// CalculateTravelTime is EstimateTravelTime composed with
// HaversineDistance, for the common case of two coordinate pairs.
func CalculateTravelTime(lat1, lon1, lat2, lon2, avgSpeedKmh float64) time.Duration {
	return EstimateTravelTime(HaversineDistance(lat1, lon1, lat2, lon2), avgSpeedKmh)
}

// TimeIntervalsOverlap reports whether half-open intervals [start1,end1)
// and [start2,end2) overlap. Two zero-length intervals never overlap each
// other.
func TimeIntervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// CanReachBeforeStart reports whether a worker starting travel at
// currentTime from (workerLat, workerLon) can arrive at (jobLat, jobLon)
// no later than jobStart. This is kept as a public utility mirroring the
// original source's can_worker_reach_job helper; it is not wired into
// any model constraint — the assignment problem only needs the overlap
// and shift-fit checks below.
func CanReachBeforeStart(workerLat, workerLon, jobLat, jobLon float64, jobStart, currentTime time.Time, avgSpeedKmh float64) bool {
	travelTime := CalculateTravelTime(workerLat, workerLon, jobLat, jobLon, avgSpeedKmh)
	arrival := currentTime.Add(travelTime)
	return !arrival.After(jobStart)
}

// FitsInShiftBudget reports whether a round trip from (branchLat,
// branchLon) to a job occupying [jobStart, jobEnd) fits within
// shiftBudget, assuming equal travel time in each direction. The default
// budget is 10 hours — intentionally relaxed from the nominal 8-hour
// shift to absorb long jobs; this is the observed, adopted behavior, not
// a bug to fix.
func FitsInShiftBudget(branchLat, branchLon, jobLat, jobLon float64, jobStart, jobEnd time.Time, avgSpeedKmh float64, shiftBudget time.Duration) bool {
	travelToJob := CalculateTravelTime(branchLat, branchLon, jobLat, jobLon, avgSpeedKmh)
	travelBack := travelToJob
	jobDuration := jobEnd.Sub(jobStart)
	total := travelToJob + jobDuration + travelBack
	return total <= shiftBudget
}
