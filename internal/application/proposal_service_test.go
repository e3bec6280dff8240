package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/proposer/internal/application"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

const proposalJSON = `{
  "proposalTitle": "Taskly - Comprehensive Proposal",
  "clientName": "Acme Corp",
  "projectType": "Web Application",
  "summaryBadges": [
    {"icon": "Clock", "text": "2-3 months"},
    {"icon": "Users2", "text": "2 team members"},
    {"icon": "Timer", "text": "150-200h"}
  ],
  "executiveSummary": {
    "summaryText": "A task management web app for Acme Corp with login and a dashboard.",
    "highlights": [
      {"label": "Timeline", "value": "2-3 months", "colorName": "green"},
      {"label": "Total Hours", "value": "150-200h", "colorName": "purple"},
      {"label": "Team Size", "value": "2 members", "colorName": "orange"}
    ],
    "projectGoals": [
      {"id": "goal-1", "title": "Ship MVP", "description": "Deliver core flows."},
      {"id": "goal-2", "title": "Secure access", "description": "Role-based login."}
    ]
  },
  "requirementsAnalysis": {
    "projectRequirementsOverview": "The client needs a task management app with authentication.",
    "functionalRequirements": ["Login", "Dashboard", "Task CRUD"],
    "nonFunctionalRequirements": ["Responsive UI", "Secure sessions", "Fast page loads"]
  },
  "featureBreakdown": {
    "title": "Detailed Feature Breakdown",
    "subtitle": "Complete analysis of all features with time estimates.",
    "features": [
      {"id": "feat-auth", "title": "Authentication", "description": "Login and sessions", "totalHours": "72 hours"},
      {"id": "feat-dash", "title": "Dashboard", "description": "Task overview", "totalHours": "60 hours"}
    ]
  },
  "projectTimeline": {
    "title": "Project Timeline & Phases",
    "phases": [
      {"id": "phase-1", "title": "Discovery", "description": "Requirements analysis", "duration": "1-2 weeks", "keyDeliverables": ["Spec", "Backlog"]},
      {"id": "phase-2", "title": "Build", "description": "Implementation", "duration": "4-6 weeks", "keyDeliverables": ["MVP", "Tests"]},
      {"id": "phase-3", "title": "Launch", "description": "Release", "duration": "1 week", "keyDeliverables": ["Deployment", "Docs"]}
    ]
  },
  "teamAndResources": {"content": "A Mid Frontend Developer and a Senior Backend Developer."}
}`

func testRequest() *proposal.ProjectRequest {
	return &proposal.ProjectRequest{
		ClientName:   "Acme Corp",
		ProjectName:  "Taskly",
		Requirements: "Build a task management web app with login and a dashboard",
		Team: []proposal.TeamMember{
			proposal.NewTeamMember(proposal.RoleFrontendDeveloper, proposal.SeniorityMid),
			proposal.NewTeamMember(proposal.RoleBackendDeveloper, proposal.SenioritySenior),
		},
	}
}

func TestGenerateProposal_Success(t *testing.T) {
	stub := &StubProvider{Text: proposalJSON}
	svc := application.NewProposalService(stub, nil, nil)

	doc, warnings, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if doc.ProposalTitle != "Taskly - Comprehensive Proposal" {
		t.Errorf("unexpected title: %q", doc.ProposalTitle)
	}
	if len(warnings) != 0 {
		t.Errorf("conforming document with matching team size must not warn, got: %v", warnings)
	}

	// The prompt embeds the normalized team and the content policy.
	if !strings.Contains(stub.LastRequest.Prompt, "Mid Frontend Developer, Senior Backend Developer") {
		t.Error("prompt should embed the canonical team composition")
	}
	if !strings.Contains(stub.LastRequest.Prompt, "monetary value") {
		t.Error("prompt should state the content policy")
	}
}

func TestGenerateProposal_TeamSizeMismatchIsAdvisory(t *testing.T) {
	mismatched := strings.Replace(proposalJSON, `"value": "2 members"`, `"value": "4 members"`, 1)
	svc := application.NewProposalService(&StubProvider{Text: mismatched}, nil, nil)

	doc, warnings, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if err != nil {
		t.Fatalf("mismatch must not be fatal: %v", err)
	}
	if !warnings.HasCode(proposal.WarnTeamSize) {
		t.Errorf("expected team size warning, got: %v", warnings)
	}
	if doc.ExecutiveSummary.Highlights[2].Value != "4 members" {
		t.Error("document must be returned untouched")
	}
}

func TestGenerateProposal_ModelFailure(t *testing.T) {
	svc := application.NewProposalService(&StubProvider{Fail: true}, nil, nil)
	_, _, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if !errors.Is(err, proposal.ErrGenerationFailed) {
		t.Errorf("expected GenerationError, got: %v", err)
	}
}

func TestGenerateProposal_EmptyOutput(t *testing.T) {
	svc := application.NewProposalService(&StubProvider{Text: "   \n"}, nil, nil)
	_, _, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if !errors.Is(err, proposal.ErrGenerationFailed) {
		t.Errorf("expected GenerationError for empty output, got: %v", err)
	}
}

func TestGenerateProposal_UnparseableOutput(t *testing.T) {
	svc := application.NewProposalService(&StubProvider{Text: "Sorry, I cannot help with that."}, nil, nil)
	_, _, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if !errors.Is(err, proposal.ErrGenerationFailed) {
		t.Errorf("expected GenerationError for unparseable output, got: %v", err)
	}
}

func TestGenerateProposal_BreakdownGrounding(t *testing.T) {
	stub := &StubProvider{Text: proposalJSON}
	svc := application.NewProposalService(stub, nil, nil)

	breakdown := []proposal.Feature{{
		Name:        "Authentication",
		Description: "Login and sessions",
		Required:    true,
		Tasks:       []proposal.Task{{Name: "Login form", EstimatedHours: 40, Required: true}},
	}}
	_, _, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{
		Breakdown:     breakdown,
		TimelineWeeks: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.LastRequest.Prompt, "Authentication") {
		t.Error("prompt should embed the precomputed breakdown")
	}
	if !strings.Contains(stub.LastRequest.Prompt, "3 weeks") {
		t.Error("prompt should embed the timeline estimate")
	}
}

func TestGenerateProposal_CurrencyFlagged(t *testing.T) {
	withBudget := strings.Replace(proposalJSON, `{"icon": "Timer", "text": "150-200h"}`,
		`{"icon": "DollarSign", "text": "$10,000 - $15,000"}`, 1)
	svc := application.NewProposalService(&StubProvider{Text: withBudget}, nil, nil)

	doc, warnings, err := svc.GenerateProposal(context.Background(), testRequest(), application.GenerateOptions{})
	if err != nil {
		t.Fatalf("currency violation must not be fatal: %v", err)
	}
	if !warnings.HasCode(proposal.WarnCurrency) {
		t.Errorf("expected currency warning, got: %v", warnings)
	}
	// Flag for the caller to notice, never silently rewrite.
	if doc.SummaryBadges[2].Text != "$10,000 - $15,000" {
		t.Error("violating content must not be stripped")
	}
}
