package ai

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/proposer/internal/domain/ai"
)

// MockProvider returns deterministic, shape-correct documents without
// touching the network. Used by tests and for offline demo runs.
type MockProvider struct {
	Model string
}

func (p *MockProvider) ID() string {
	return "mock:" + p.Model
}

func (p *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := p.respond(req)
	return &ai.CompletionResponse{
		Text:  text,
		Model: "mock-" + p.Model,
		Usage: ai.TokenUsage{
			InputTokens:  len(req.Prompt) / 4,
			OutputTokens: len(text) / 4,
		},
	}, nil
}

// respond routes on the system prompt so each pipeline stage gets a
// fixture matching the structure it asked for.
func (p *MockProvider) respond(req ai.CompletionRequest) string {
	switch {
	case strings.Contains(req.System, "proposal writer"):
		return mockProposalJSON
	case strings.Contains(req.System, "editing one section"):
		return mockSectionJSON
	case strings.Contains(req.Prompt, "industries"):
		return `["Software", "Professional Services"]`
	case strings.Contains(req.System, "features"):
		return mockBreakdownJSON
	case req.Format == "json" || strings.Contains(req.Prompt, "JSON") || strings.Contains(req.System, "JSON"):
		return mockBreakdownJSON
	default:
		return "Mock response for: " + req.Prompt
	}
}

const mockBreakdownJSON = `[
  {
    "name": "User Authentication",
    "description": "Account registration, login and session handling.",
    "tasks": [
      {"name": "Sign-up flow", "description": "Registration form with validation", "estimatedHours": 16, "isRequired": true},
      {"name": "Login and sessions", "description": "Credential checks and session tokens", "estimatedHours": 20, "isRequired": true},
      {"name": "Password reset", "description": "Email-based reset flow", "estimatedHours": 12, "isRequired": false}
    ]
  },
  {
    "name": "Dashboard",
    "description": "Overview screen with key project data.",
    "tasks": [
      {"name": "Layout and navigation", "description": "Responsive shell", "estimatedHours": 24, "isRequired": true},
      {"name": "Data widgets", "description": "Summary cards and lists", "estimatedHours": 28, "isRequired": true}
    ]
  }
]`

const mockSectionJSON = `{"content": "The project will be delivered by a focused team combining frontend and backend expertise, with clear ownership of each feature area and weekly progress reviews."}`

const mockProposalJSON = `{
  "proposalTitle": "Project Proposal",
  "clientName": "Demo Client",
  "projectType": "Web Application",
  "summaryBadges": [
    {"icon": "Clock", "text": "2-3 months"},
    {"icon": "Users2", "text": "2 team members"},
    {"icon": "Timer", "text": "100 hours"}
  ],
  "executiveSummary": {
    "summaryText": "A modern web application delivering the client's core workflows with a secure, maintainable foundation.",
    "highlights": [
      {"label": "Timeline", "value": "2-3 months", "colorName": "green"},
      {"label": "Total Hours", "value": "100 hours", "colorName": "purple"},
      {"label": "Team Size", "value": "2 members", "colorName": "orange"}
    ],
    "projectGoals": [
      {"id": "goal-1", "title": "Deliver the MVP", "description": "Ship the core user flows end to end."},
      {"id": "goal-2", "title": "Establish a solid foundation", "description": "Clean architecture ready for iteration."}
    ]
  },
  "requirementsAnalysis": {
    "projectRequirementsOverview": "The client needs a web application covering authentication and a data dashboard.",
    "functionalRequirements": ["User authentication", "Dashboard overview", "Data management"],
    "nonFunctionalRequirements": ["Responsive design", "Secure session handling", "Fast page loads"]
  },
  "featureBreakdown": {
    "title": "Detailed Feature Breakdown",
    "subtitle": "Complete analysis of all features with time estimates.",
    "features": [
      {"id": "feat-auth", "title": "User Authentication", "description": "Registration, login and sessions", "totalHours": "48 hours"},
      {"id": "feat-dash", "title": "Dashboard", "description": "Overview screen with key data", "totalHours": "52 hours"}
    ]
  },
  "projectTimeline": {
    "title": "Project Timeline & Phases",
    "phases": [
      {"id": "phase-1", "title": "Discovery", "description": "Requirements analysis and planning", "duration": "1-2 weeks", "keyDeliverables": ["Technical specification", "Project backlog"]},
      {"id": "phase-2", "title": "Implementation", "description": "Feature development and testing", "duration": "4-6 weeks", "keyDeliverables": ["Working MVP", "Test suite"]},
      {"id": "phase-3", "title": "Launch", "description": "Deployment and handover", "duration": "1 week", "keyDeliverables": ["Production deployment", "Documentation"]}
    ]
  },
  "teamAndResources": {"content": "The team pairs a frontend developer with a backend developer, covering the full stack for the planned scope."}
}`
