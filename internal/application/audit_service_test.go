package application_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/proposer/internal/application"
)

func TestAuditService_HashChain(t *testing.T) {
	repo := &MemRepo{}
	audit := application.NewAuditService(repo)

	if err := audit.Log("proposal.generate", "ai", map[string]interface{}{"model": "stub"}); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if err := audit.Log("section.edit", "ai", map[string]interface{}{"section": "teamAndResources"}); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	events, _ := audit.GetTimeline()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].PrevHash != events[0].Hash {
		t.Error("events must be hash-chained")
	}

	violations, err := audit.VerifyIntegrity()
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("expected clean chain, got: %v", violations)
	}
}

func TestAuditService_DetectsTampering(t *testing.T) {
	repo := &MemRepo{}
	audit := application.NewAuditService(repo)
	_ = audit.Log("proposal.generate", "ai", nil)
	_ = audit.Log("section.edit", "ai", nil)

	repo.Events[0].Action = "tampered"

	violations, _ := audit.VerifyIntegrity()
	if len(violations) == 0 {
		t.Error("expected integrity violations after tampering")
	}
}

func TestIndustryService_Parse(t *testing.T) {
	svc := application.NewIndustryService(&StubProvider{Text: `["Software", "Logistics"]`}, nil, nil)
	industries, err := svc.SuggestIndustries(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("expected success: %v", err)
	}
	if len(industries) != 2 || industries[0] != "Software" {
		t.Errorf("unexpected industries: %v", industries)
	}
}

func TestIndustryService_WrappedParse(t *testing.T) {
	svc := application.NewIndustryService(&StubProvider{Text: `{"industries": ["Retail"]}`}, nil, nil)
	industries, err := svc.SuggestIndustries(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("expected success: %v", err)
	}
	if len(industries) != 1 || industries[0] != "Retail" {
		t.Errorf("unexpected industries: %v", industries)
	}
}

func TestIndustryService_Failure(t *testing.T) {
	svc := application.NewIndustryService(&StubProvider{Fail: true}, nil, nil)
	if _, err := svc.SuggestIndustries(context.Background(), "Acme Corp"); err == nil {
		t.Error("expected error on provider failure")
	}
}
