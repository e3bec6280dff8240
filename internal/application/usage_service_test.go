package application_test

import (
	"testing"

	"github.com/felixgeelhaar/proposer/internal/application"
)

func TestUsageService_RecordCall(t *testing.T) {
	repo := &MemRepo{}
	svc := application.NewUsageService(repo)

	if err := svc.RecordCall("mock:test"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := svc.RecordCall("mock:test"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := svc.RecordCall("ollama:llama3"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalCalls != 3 {
		t.Errorf("expected 3 calls, got %d", stats.TotalCalls)
	}
	if stats.ProviderStats["mock:test"] != 2 {
		t.Errorf("expected 2 mock calls, got %d", stats.ProviderStats["mock:test"])
	}
	if stats.LastCallAt.IsZero() {
		t.Error("expected LastCallAt to be set")
	}
}
