package proposal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Warning codes. Warnings are advisory: they are recorded for the caller,
// never raised as errors, and never block or alter a result.
const (
	WarnCurrency    = "currency"
	WarnCardinality = "cardinality"
	WarnShape       = "shape"
	WarnTeamSize    = "team_size"
)

// Warning records one advisory validation finding.
type Warning struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Field, w.Message)
}

// Warnings is the collector returned alongside results so callers and tests
// can assert on advisory findings directly.
type Warnings []Warning

// Add appends a warning.
func (ws *Warnings) Add(code, field, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all warnings from other.
func (ws *Warnings) Merge(other Warnings) {
	*ws = append(*ws, other...)
}

// HasCode reports whether any warning carries the given code.
func (ws Warnings) HasCode(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// currencyPattern matches a currency symbol followed by a digit, or a symbol
// trailing a number ("10$"). Bare symbols inside ranges like "$10,000 -
// $15,000" match; durations like "150-200h" or "2-3 months" do not.
var currencyPattern = regexp.MustCompile(`[$€£¥₹]\s*\d|\d\s*[$€£¥₹]`)

// ContainsCurrency reports whether text carries a monetary value.
func ContainsCurrency(text string) bool {
	return currencyPattern.MatchString(text)
}

// scanCurrency flags monetary values in one user-facing text field.
func scanCurrency(ws *Warnings, field, text string) {
	if ContainsCurrency(text) {
		ws.Add(WarnCurrency, field, "contains a monetary value; all quantities must be hours, weeks, or headcounts")
	}
}

// checkCount flags a count that differs from the exact expectation.
func checkCount(ws *Warnings, field string, got, want int) {
	if got != want {
		ws.Add(WarnCardinality, field, "expected exactly %d, got %d", want, got)
	}
}

// checkRange flags a count outside [min, max]. A zero count on an optional
// list is the caller's concern; this helper always flags.
func checkRange(ws *Warnings, field string, got, min, max int) {
	if got < min || got > max {
		ws.Add(WarnCardinality, field, "expected %d-%d, got %d", min, max, got)
	}
}

// ValidateBreakdown runs the advisory per-item shape check over a breakdown.
// Items that fail are flagged and passed through unchanged, preserving the
// model's intent over strict conformance.
func ValidateBreakdown(features []Feature) Warnings {
	var ws Warnings
	for i, f := range features {
		field := fmt.Sprintf("features[%d]", i)
		if f.Name == "" {
			ws.Add(WarnShape, field, "feature has no name")
		}
		if f.Description == "" {
			ws.Add(WarnShape, field, "feature %q has no description", f.Name)
		}
		for j, t := range f.Tasks {
			tf := fmt.Sprintf("%s.tasks[%d]", field, j)
			if t.Name == "" {
				ws.Add(WarnShape, tf, "task has no name")
			}
			if t.EstimatedHours <= 0 {
				ws.Add(WarnShape, tf, "task %q has non-positive estimated hours (%v)", t.Name, t.EstimatedHours)
			}
		}
	}
	return ws
}

// Validate runs the full advisory pass over a generated proposal: cardinality
// rules for every section and a currency scan over user-facing text.
// teamSize, when positive, is the normalizer's headcount and is treated as
// ground truth for the team-size highlight.
func Validate(p *StructuredProposal, teamSize int) Warnings {
	var ws Warnings

	checkCount(&ws, "summaryBadges", len(p.SummaryBadges), 3)
	for i, b := range p.SummaryBadges {
		scanCurrency(&ws, fmt.Sprintf("summaryBadges[%d].text", i), b.Text)
	}

	ws.Merge(validateExecutiveSummary(&p.ExecutiveSummary))
	ws.Merge(validateRequirementsAnalysis(&p.RequirementsAnalysis))
	ws.Merge(validateFeatureBreakdown(&p.FeatureBreakdown))
	ws.Merge(validateProjectTimeline(&p.ProjectTimeline))
	scanCurrency(&ws, "teamAndResources.content", p.TeamAndResources.Content)

	if teamSize > 0 {
		validateTeamSizeHighlight(&ws, p, teamSize)
	}
	return ws
}

func validateExecutiveSummary(s *ExecutiveSummary) Warnings {
	var ws Warnings
	scanCurrency(&ws, "executiveSummary.summaryText", s.SummaryText)
	checkCount(&ws, "executiveSummary.highlights", len(s.Highlights), 3)
	for i, h := range s.Highlights {
		scanCurrency(&ws, fmt.Sprintf("executiveSummary.highlights[%d].value", i), h.Value)
	}
	checkRange(&ws, "executiveSummary.projectGoals", len(s.ProjectGoals), 2, 5)
	return ws
}

func validateRequirementsAnalysis(s *RequirementsAnalysis) Warnings {
	var ws Warnings
	scanCurrency(&ws, "requirementsAnalysis.projectRequirementsOverview", s.Overview)
	checkRange(&ws, "requirementsAnalysis.functionalRequirements", len(s.FunctionalRequirements), 3, 7)
	checkRange(&ws, "requirementsAnalysis.nonFunctionalRequirements", len(s.NonFunctionalRequirements), 3, 7)
	return ws
}

func validateFeatureBreakdown(s *FeatureBreakdown) Warnings {
	var ws Warnings
	checkRange(&ws, "featureBreakdown.features", len(s.Features), 2, 4)
	for i, f := range s.Features {
		field := fmt.Sprintf("featureBreakdown.features[%d]", i)
		scanCurrency(&ws, field+".description", f.Description)
		scanCurrency(&ws, field+".totalHours", f.TotalHours)
		if len(f.Tags) > 0 {
			checkRange(&ws, field+".tags", len(f.Tags), 1, 2)
		}
		if len(f.FunctionalFeatures) > 0 {
			checkRange(&ws, field+".functionalFeatures", len(f.FunctionalFeatures), 2, 5)
		}
		if len(f.NonFunctionalRequirements) > 0 {
			checkRange(&ws, field+".nonFunctionalRequirements", len(f.NonFunctionalRequirements), 1, 4)
		}
		if len(f.ResourceAllocation) > 0 {
			checkRange(&ws, field+".resourceAllocation", len(f.ResourceAllocation), 1, 3)
			for j, ra := range f.ResourceAllocation {
				scanCurrency(&ws, fmt.Sprintf("%s.resourceAllocation[%d].hours", field, j), ra.Hours)
			}
		}
	}
	return ws
}

func validateProjectTimeline(s *ProjectTimeline) Warnings {
	var ws Warnings
	checkRange(&ws, "projectTimeline.phases", len(s.Phases), 3, 5)
	for i, ph := range s.Phases {
		field := fmt.Sprintf("projectTimeline.phases[%d]", i)
		scanCurrency(&ws, field+".description", ph.Description)
		checkRange(&ws, field+".keyDeliverables", len(ph.KeyDeliverables), 2, 5)
	}
	return ws
}

// ValidateSection runs the advisory pass for a single section given its
// canonical serialized content. Used after section edits.
func ValidateSection(key SectionKey, content string) Warnings {
	var ws Warnings
	v, err := decodeSection(key, []byte(content))
	if err != nil {
		// The editor raises parse failures as errors before this pass runs;
		// here an undecodable value only means nothing to validate.
		return ws
	}
	switch s := v.(type) {
	case ExecutiveSummary:
		ws.Merge(validateExecutiveSummary(&s))
	case RequirementsAnalysis:
		ws.Merge(validateRequirementsAnalysis(&s))
	case FeatureBreakdown:
		ws.Merge(validateFeatureBreakdown(&s))
	case ProjectTimeline:
		ws.Merge(validateProjectTimeline(&s))
	case TeamAndResources:
		scanCurrency(&ws, "teamAndResources.content", s.Content)
	}
	return ws
}

// validateTeamSizeHighlight compares the "Team Size" highlight against the
// normalizer's headcount. A mismatch is a warning, never a rejection.
func validateTeamSizeHighlight(ws *Warnings, p *StructuredProposal, teamSize int) {
	for i, h := range p.ExecutiveSummary.Highlights {
		if !strings.EqualFold(strings.TrimSpace(h.Label), "team size") {
			continue
		}
		n, ok := leadingInt(h.Value)
		if !ok {
			ws.Add(WarnTeamSize, fmt.Sprintf("executiveSummary.highlights[%d].value", i),
				"team size highlight %q is not numeric", h.Value)
			return
		}
		if n != teamSize {
			ws.Add(WarnTeamSize, fmt.Sprintf("executiveSummary.highlights[%d].value", i),
				"team size highlight says %d, team composition has %d members", n, teamSize)
		}
		return
	}
	ws.Add(WarnTeamSize, "executiveSummary.highlights", "no Team Size highlight found")
}

// leadingInt parses the integer prefix of a value like "2 members".
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
