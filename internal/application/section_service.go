package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// ProposalContext grounds a section edit in the surrounding document.
type ProposalContext struct {
	Title       string
	ClientName  string
	ProjectType string
}

// SectionEditRequest asks for one section to be regenerated from a free-text
// instruction. Transient: exists only for the duration of one edit call.
type SectionEditRequest struct {
	Key            proposal.SectionKey
	CurrentContent string
	Instruction    string
	Context        ProposalContext
}

// SectionService regenerates one section of an existing proposal while the
// rest of the document stays untouched. There is no retry loop inside the
// editor: retry is the caller's responsibility.
type SectionService struct {
	provider ai.Provider
	audit    domain.AuditLogger
	logger   *slog.Logger
}

func NewSectionService(provider ai.Provider, audit domain.AuditLogger, logger *slog.Logger) *SectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SectionService{provider: provider, audit: audit, logger: logger}
}

// sectionShapeHints restate the exact expected shape for each section key so
// the model keeps the structure intact while editing content.
var sectionShapeHints = map[proposal.SectionKey]string{
	proposal.SectionExecutiveSummary: `{"summaryText": string, "highlights": exactly 3 of {"label", "value", "colorName"}, "projectGoals": 2-5 of {"id", "title", "description"}}`,
	proposal.SectionRequirementsAnalysis: `{"projectRequirementsOverview": string, "functionalRequirements": 3-7 strings, "nonFunctionalRequirements": 3-7 strings}`,
	proposal.SectionFeatureBreakdown: `{"title": string, "subtitle": string, "features": 2-4 of {"id", "title", "description", "totalHours", optional "tags", "functionalFeatures", "nonFunctionalRequirements", "resourceAllocation"}}`,
	proposal.SectionProjectTimeline: `{"title": string, "phases": 3-5 of {"id", "title", "description", "duration", optional "percentageOfProject", "keyDeliverables": 2-5 strings}}`,
	proposal.SectionTeamAndResources: `{"content": string with 2-3 paragraphs}`,
}

const sectionSystemPrompt = "You are an AI assistant editing one section of a business proposal. " +
	"You output ONLY the new section content as JSON, with no explanations or conversational text."

// EditSection invokes the model for a replacement of one section, recovers
// the output (fence stripping, whitespace trim), parses it against the
// section's shape, and re-serializes it canonically. Failures are typed and
// never fall back silently to the unedited content.
func (s *SectionService) EditSection(ctx context.Context, req SectionEditRequest) (string, proposal.Warnings, error) {
	if !req.Key.IsValid() {
		return "", nil, proposal.ErrUnknownSection
	}

	fsm, err := newEditStateMachine()
	if err != nil {
		return "", nil, err
	}

	prompt := buildSectionPrompt(req)
	fsm.To(editEventRequest)

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      sectionSystemPrompt,
		Temperature: 0.3,
		MaxTokens:   2000,
		Format:      "json",
	})
	if err != nil {
		fsm.To(editEventFail)
		return "", nil, fmt.Errorf("section edit invocation failed: %w", err)
	}

	s.logUsage("section.edit", req.Key, resp)

	raw := ""
	if resp != nil {
		raw = resp.Text
	}
	clean := stripFences(raw)
	if clean == "" {
		fsm.To(editEventEmpty)
		return "", nil, &proposal.EmptyContentError{Section: req.Key}
	}
	fsm.To(editEventReceive)

	canonical, err := proposal.CanonicalizeSection(req.Key, clean)
	if err != nil {
		fsm.To(editEventParseFail)
		return "", nil, err
	}
	fsm.To(editEventParseOK)

	warnings := proposal.ValidateSection(req.Key, canonical)
	for _, w := range warnings {
		s.logger.Warn("section validation", "section", string(req.Key), "code", w.Code, "field", w.Field, "message", w.Message)
	}

	fsm.To(editEventFinish)
	if state := fsm.Current(); state != editStateDone {
		// The machine encodes the protocol; ending anywhere else is a bug.
		return "", nil, fmt.Errorf("section edit ended in unexpected state %q", state)
	}
	return canonical, warnings, nil
}

func buildSectionPrompt(req SectionEditRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are editing the %q section of a business proposal.\n\n", string(req.Key))
	fmt.Fprintf(&b, "Proposal Context:\n- Title: %s\n- Client: %s\n- Project Type: %s\n\n",
		req.Context.Title, req.Context.ClientName, req.Context.ProjectType)
	fmt.Fprintf(&b, "Current content of the section:\n```\n%s\n```\n\n", req.CurrentContent)
	fmt.Fprintf(&b, "The user wants to make the following changes:\n%q\n\n", req.Instruction)
	fmt.Fprintf(&b, "Output ONLY the new content for the %q section as a JSON value with this exact shape:\n%s\n\n",
		string(req.Key), sectionShapeHints[req.Key])
	b.WriteString("CONTENT POLICY: no price, cost, budget, or monetary value anywhere; " +
		"all quantities are hours, weeks, or headcounts.\n")
	b.WriteString("Preserve the overall structure; change only what the instruction asks for.\n")

	return b.String()
}

func (s *SectionService) logUsage(action string, key proposal.SectionKey, resp *ai.CompletionResponse) {
	if s.audit == nil || resp == nil {
		return
	}
	if err := s.audit.Log(action, "ai", map[string]interface{}{
		"section":       string(key),
		"model":         resp.Model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}); err != nil {
		s.logger.Warn("failed to write audit log", "error", err)
	}
}
