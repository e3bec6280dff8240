package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// ProposalService generates the full structured proposal in one model
// invocation. The model is the sole source of content: validation after
// generation is advisory only.
type ProposalService struct {
	provider ai.Provider
	audit    domain.AuditLogger
	logger   *slog.Logger
}

func NewProposalService(provider ai.Provider, audit domain.AuditLogger, logger *slog.Logger) *ProposalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProposalService{provider: provider, audit: audit, logger: logger}
}

// GenerateOptions grounds the prompt with precomputed artifacts.
type GenerateOptions struct {
	Breakdown     []proposal.Feature
	TimelineWeeks int
}

const proposalSystemPrompt = "You are an expert business proposal writer. You produce comprehensive, " +
	"persuasive proposals as a single JSON document matching the requested structure exactly. " +
	"You respond ONLY with JSON."

const proposalSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["proposalTitle", "clientName", "projectType", "summaryBadges",
    "executiveSummary", "requirementsAnalysis", "featureBreakdown",
    "projectTimeline", "teamAndResources"],
  "properties": {
    "proposalTitle": { "type": "string" },
    "clientName": { "type": "string" },
    "projectType": { "type": "string" },
    "summaryBadges": { "type": "array" },
    "executiveSummary": { "type": "object" },
    "requirementsAnalysis": { "type": "object" },
    "featureBreakdown": { "type": "object" },
    "projectTimeline": { "type": "object" },
    "teamAndResources": { "type": "object" }
  }
}`

var proposalSchemaLoader = gojsonschema.NewStringLoader(proposalSchemaJSON)

// GenerateProposal produces the entire document in one shot. The returned
// warnings record cardinality and content-policy mismatches; the only fatal
// path is the model returning nothing usable, which raises a GenerationError.
func (s *ProposalService) GenerateProposal(ctx context.Context, request *proposal.ProjectRequest, opts GenerateOptions) (*proposal.StructuredProposal, proposal.Warnings, error) {
	team := proposal.NormalizeTeam(request.Team)
	prompt := buildProposalPrompt(request, team, opts)

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      proposalSystemPrompt,
		Temperature: 0.4,
		MaxTokens:   4000,
		Format:      "json",
	})
	if err != nil {
		return nil, nil, &proposal.GenerationError{Reason: "model invocation failed", Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, nil, &proposal.GenerationError{Reason: "model returned no content"}
	}

	s.logUsage("proposal.generate", resp)

	cleanJSON := extractJSONPayload(resp.Text)
	if cleanJSON == "" {
		return nil, nil, &proposal.GenerationError{Reason: "model returned no JSON payload"}
	}

	documentLoader := gojsonschema.NewStringLoader(cleanJSON)
	if result, err := gojsonschema.Validate(proposalSchemaLoader, documentLoader); err == nil && !result.Valid() {
		for _, desc := range result.Errors() {
			s.logger.Debug("proposal schema issue", "issue", desc.String())
		}
	}

	var doc proposal.StructuredProposal
	if err := json.Unmarshal([]byte(cleanJSON), &doc); err != nil {
		return nil, nil, &proposal.GenerationError{
			Reason: fmt.Sprintf("model output is not a proposal document (starts with: %q)", proposal.Snippet(cleanJSON)),
			Err:    err,
		}
	}

	warnings := proposal.Validate(&doc, team.Count)
	for _, w := range warnings {
		s.logger.Warn("proposal validation", "code", w.Code, "field", w.Field, "message", w.Message)
	}
	return &doc, warnings, nil
}

// buildProposalPrompt enumerates, for every field, its exact expected
// cardinality and the content policy.
func buildProposalPrompt(request *proposal.ProjectRequest, team proposal.TeamComposition, opts GenerateOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a comprehensive business proposal as a single JSON document.\n\n")
	fmt.Fprintf(&b, "Client Company Name: %s\n", request.ClientName)
	fmt.Fprintf(&b, "Project Name: %s\n", request.ProjectName)
	fmt.Fprintf(&b, "Basic Requirements: %s\n", request.Requirements)
	if team.Count > 0 {
		fmt.Fprintf(&b, "Team Composition (%d members): %s\n", team.Count, team.Canonical)
	}
	if len(opts.Breakdown) > 0 {
		b.WriteString("\nPrecomputed feature breakdown (ground your featureBreakdown section in this):\n")
		for _, f := range opts.Breakdown {
			fmt.Fprintf(&b, "- %s (%s): %.0f hours total\n", f.Name, f.Description, f.TotalHours())
		}
	}
	if opts.TimelineWeeks > 0 {
		fmt.Fprintf(&b, "\nEstimated elapsed time: %d weeks. Base all timeline figures on this estimate.\n", opts.TimelineWeeks)
	}

	b.WriteString(`
CONTENT POLICY: Do NOT include any price, cost, budget, or monetary value
anywhere in the output. All quantities are hours, weeks, or headcounts.

Output a single JSON object with this exact structure:

1. "proposalTitle": "` + request.ProjectName + ` - Comprehensive Proposal".
2. "clientName": "` + request.ClientName + `".
3. "projectType": infer from the requirements (e.g. "Web Application", "Mobile App Development").
4. "summaryBadges": exactly 3 badges, each {"icon", "text"}:
   - estimated timeline (icon "Clock", e.g. "2-3 months")
   - team members (icon "Users2", e.g. "2 team members")
   - estimated total effort (icon "Timer", e.g. "150-200h")
5. "executiveSummary":
   - "summaryText": concise overview, 50-100 words.
   - "highlights": exactly 3 items {"label", "value", "colorName"}:
     {"label": "Timeline", ..., "colorName": "green"},
     {"label": "Total Hours", ..., "colorName": "purple"},
     {"label": "Team Size", "value": "` + fmt.Sprintf("%d members", team.Count) + `", "colorName": "orange"}.
   - "projectGoals": 2 to 5 goals, each {"id" (e.g. "goal-1"), "title", "description"}.
6. "requirementsAnalysis":
   - "projectRequirementsOverview": 1-2 paragraphs.
   - "functionalRequirements": 3 to 7 items.
   - "nonFunctionalRequirements": 3 to 7 items.
7. "featureBreakdown":
   - "title": "Detailed Feature Breakdown"
   - "subtitle": "Complete analysis of all features with time estimates."
   - "features": 2 to 4 items, each {"id" (e.g. "feat-auth"), "title", "description",
     "totalHours" (e.g. "72 hours"), optional "tags" (1-2 of {"text", "colorScheme"}),
     optional "functionalFeatures" (2-5 strings), optional "nonFunctionalRequirements"
     (1-4 strings), optional "resourceAllocation" (1-3 of {"role", "hours"})}.
8. "projectTimeline":
   - "title": "Project Timeline & Phases"
   - "phases": 3 to 5 items, each {"id" (e.g. "phase-1"), "title", "description",
     "duration" (e.g. "2-3 weeks"), optional "percentageOfProject" (e.g. "15% of project"),
     "keyDeliverables" (2-5 strings)}.
9. "teamAndResources": {"content": 2-3 paragraphs describing the proposed team}.
`)

	return b.String()
}

func (s *ProposalService) logUsage(action string, resp *ai.CompletionResponse) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(action, "ai", map[string]interface{}{
		"model":         resp.Model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}); err != nil {
		s.logger.Warn("failed to write audit log", "error", err)
	}
}
