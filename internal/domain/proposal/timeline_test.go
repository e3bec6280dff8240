package proposal_test

import (
	"testing"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

func featuresWithHours(hours ...float64) []proposal.Feature {
	f := proposal.Feature{Name: "feature", Required: true}
	for _, h := range hours {
		f.Tasks = append(f.Tasks, proposal.Task{Name: "task", EstimatedHours: h, Required: h > 10})
	}
	return []proposal.Feature{f}
}

func TestEstimateTimeline_MidTier(t *testing.T) {
	// 100 total hours at Mid -> ceil(120/40) = 3 weeks
	got := proposal.EstimateTimeline(featuresWithHours(60, 40), proposal.SeniorityMid)
	if got != 3 {
		t.Errorf("expected 3 weeks, got %d", got)
	}
}

func TestEstimateTimelineHours_MatchesFeatureForm(t *testing.T) {
	features := featuresWithHours(60, 40)

	for _, tier := range []proposal.Seniority{proposal.SeniorityEntry, proposal.SeniorityJunior, proposal.SeniorityMid, proposal.SenioritySenior} {
		fromFeatures := proposal.EstimateTimeline(features, tier)
		fromHours := proposal.EstimateTimelineHours(100, tier)
		if fromFeatures != fromHours {
			t.Errorf("%s: features form = %d, hours form = %d", tier, fromFeatures, fromHours)
		}
	}

	if got := proposal.EstimateTimelineHours(0, proposal.SeniorityMid); got != 0 {
		t.Errorf("expected 0 weeks for 0 hours, got %d", got)
	}
}

func TestEstimateTimeline_SeniorityMonotonic(t *testing.T) {
	features := featuresWithHours(120, 80) // 200 total hours

	junior := proposal.EstimateTimeline(features, proposal.SeniorityJunior)
	mid := proposal.EstimateTimeline(features, proposal.SeniorityMid)
	senior := proposal.EstimateTimeline(features, proposal.SenioritySenior)

	if junior != 8 {
		t.Errorf("junior: expected 8 weeks, got %d", junior)
	}
	if mid != 6 {
		t.Errorf("mid: expected 6 weeks, got %d", mid)
	}
	if senior != 5 {
		t.Errorf("senior: expected 5 weeks, got %d", senior)
	}
	if junior < mid || mid < senior {
		t.Errorf("estimate must be non-increasing with seniority: junior=%d mid=%d senior=%d", junior, mid, senior)
	}
}

func TestEstimateTimeline_EntryMatchesJunior(t *testing.T) {
	features := featuresWithHours(100)
	if e, j := proposal.EstimateTimeline(features, proposal.SeniorityEntry), proposal.EstimateTimeline(features, proposal.SeniorityJunior); e != j {
		t.Errorf("entry tier should match junior multiplier: entry=%d junior=%d", e, j)
	}
}

func TestEstimateTimeline_UnknownTierUsesBase(t *testing.T) {
	features := featuresWithHours(80)
	got := proposal.EstimateTimeline(features, proposal.Seniority("principal"))
	if got != 2 {
		t.Errorf("unknown tier should use base multiplier: expected 2, got %d", got)
	}
}

func TestEstimateTimeline_CountsOptionalTasks(t *testing.T) {
	features := []proposal.Feature{{
		Name: "f",
		Tasks: []proposal.Task{
			{Name: "required", EstimatedHours: 30, Required: true},
			{Name: "optional", EstimatedHours: 30, Required: false},
		},
	}}
	got := proposal.EstimateTimeline(features, proposal.SenioritySenior)
	if got != 2 {
		t.Errorf("optional tasks must count: expected 2 weeks, got %d", got)
	}
}

func TestEstimateTimeline_Empty(t *testing.T) {
	if got := proposal.EstimateTimeline(nil, proposal.SeniorityMid); got != 0 {
		t.Errorf("expected 0 weeks for empty breakdown, got %d", got)
	}
}
