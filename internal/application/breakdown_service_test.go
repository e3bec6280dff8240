package application_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/proposer/internal/application"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// nilProvider completes without error but yields no response, the shape a
// provider reports when the model answered with a null payload.
type nilProvider struct{}

func (nilProvider) ID() string { return "nil:test" }

func (nilProvider) Complete(context.Context, ai.CompletionRequest) (*ai.CompletionResponse, error) {
	return nil, nil
}

const breakdownJSON = `[
  {
    "name": "Authentication",
    "description": "Login and session management",
    "isRequired": true,
    "tasks": [
      {"name": "Login form", "description": "UI + validation", "estimatedHours": 16, "isRequired": true},
      {"name": "Session handling", "description": "tokens", "estimatedHours": 24, "isRequired": true}
    ]
  },
  {
    "name": "Dashboard",
    "description": "Task overview",
    "isRequired": false,
    "tasks": [
      {"name": "Layout", "description": "grid", "estimatedHours": 20, "isRequired": false}
    ]
  }
]`

func TestGenerateBreakdown_Success(t *testing.T) {
	svc := application.NewBreakdownService(&StubProvider{Text: breakdownJSON}, nil, nil)
	features, warnings := svc.GenerateBreakdown(context.Background(), "Build a task app with login and dashboard")

	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(features))
	}
	if features[0].Name != "Authentication" || len(features[0].Tasks) != 2 {
		t.Errorf("unexpected first feature: %+v", features[0])
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for valid breakdown, got: %v", warnings)
	}
}

func TestGenerateBreakdown_FencedOutput(t *testing.T) {
	svc := application.NewBreakdownService(&StubProvider{Text: "```json\n" + breakdownJSON + "\n```"}, nil, nil)
	features, _ := svc.GenerateBreakdown(context.Background(), "requirements")
	if len(features) != 2 {
		t.Errorf("fenced output must parse: got %d features", len(features))
	}
}

func TestGenerateBreakdown_WrappedOutput(t *testing.T) {
	svc := application.NewBreakdownService(&StubProvider{Text: `{"features": ` + breakdownJSON + `}`}, nil, nil)
	features, _ := svc.GenerateBreakdown(context.Background(), "requirements")
	if len(features) != 2 {
		t.Errorf("wrapper key fallback must work: got %d features", len(features))
	}
}

func TestGenerateBreakdown_ModelFailureDegradesToEmpty(t *testing.T) {
	svc := application.NewBreakdownService(&StubProvider{Fail: true}, nil, nil)
	features, warnings := svc.GenerateBreakdown(context.Background(), "requirements")
	if features == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(features) != 0 {
		t.Errorf("expected empty breakdown on model failure, got %d features", len(features))
	}
	if len(warnings) != 0 {
		t.Errorf("failure path returns no warnings, got: %v", warnings)
	}
}

func TestGenerateBreakdown_NilResponseDegradesToEmpty(t *testing.T) {
	svc := application.NewBreakdownService(nilProvider{}, nil, nil)
	features, warnings := svc.GenerateBreakdown(context.Background(), "requirements")
	if features == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(features) != 0 {
		t.Errorf("expected empty breakdown for a nil response, got %d features", len(features))
	}
	if len(warnings) != 0 {
		t.Errorf("nil response path returns no warnings, got: %v", warnings)
	}
}

func TestGenerateBreakdown_GarbageDegradesToEmpty(t *testing.T) {
	svc := application.NewBreakdownService(&StubProvider{Text: "I could not produce a breakdown, sorry."}, nil, nil)
	features, _ := svc.GenerateBreakdown(context.Background(), "requirements")
	if len(features) != 0 {
		t.Errorf("expected empty breakdown for unusable output, got %d features", len(features))
	}
}

func TestGenerateBreakdown_InvalidItemPassedThrough(t *testing.T) {
	text := `[
	  {"name": "Auth", "description": "login", "isRequired": true, "tasks": [
	    {"name": "Zero task", "description": "bad", "estimatedHours": 0, "isRequired": true}
	  ]},
	  {"name": "", "description": "nameless", "tasks": []}
	]`
	svc := application.NewBreakdownService(&StubProvider{Text: text}, nil, nil)
	features, warnings := svc.GenerateBreakdown(context.Background(), "requirements")

	if len(features) != 2 {
		t.Fatalf("invalid items must be passed through unchanged, got %d features", len(features))
	}
	if !warnings.HasCode(proposal.WarnShape) {
		t.Errorf("expected shape warnings for invalid items, got: %v", warnings)
	}
	if features[0].Tasks[0].EstimatedHours != 0 {
		t.Error("invalid task must not be replaced or coerced")
	}
}

func TestGenerateBreakdown_RecordsUsage(t *testing.T) {
	repo := &MemRepo{}
	audit := application.NewAuditService(repo)
	svc := application.NewBreakdownService(&StubProvider{Text: breakdownJSON}, audit, nil)
	svc.GenerateBreakdown(context.Background(), "requirements")

	if len(repo.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(repo.Events))
	}
	if repo.Events[0].Action != "breakdown.generate" || repo.Events[0].Actor != "ai" {
		t.Errorf("unexpected audit event: %+v", repo.Events[0])
	}
}
