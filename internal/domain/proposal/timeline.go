package proposal

import "math"

// hoursPerWeek is the assumed working week used for timeline estimates.
const hoursPerWeek = 40

// EstimateTimeline converts a feature breakdown into an elapsed-week estimate
// for one seniority tier. All task hours count, required or optional. The
// total is scaled by the tier multiplier, divided into 40-hour weeks, and
// rounded up to a whole week. Deterministic: 100h at Mid -> ceil(120/40) = 3.
func EstimateTimeline(features []Feature, seniority Seniority) int {
	var totalHours float64
	for _, f := range features {
		totalHours += f.TotalHours()
	}
	return EstimateTimelineHours(totalHours, seniority)
}

// EstimateTimelineHours is the hours-based form of EstimateTimeline for
// callers that have already summed a breakdown.
func EstimateTimelineHours(totalHours float64, seniority Seniority) int {
	weeks := totalHours * seniority.Multiplier() / hoursPerWeek
	return int(math.Ceil(weeks))
}
