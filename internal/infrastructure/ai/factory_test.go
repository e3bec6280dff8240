package ai_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
	infraAI "github.com/felixgeelhaar/proposer/internal/infrastructure/ai"
)

func TestNewProvider_Defaults(t *testing.T) {
	p, err := infraAI.NewProvider("", "")
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	if p.ID() != "ollama:llama3" {
		t.Errorf("expected ollama:llama3, got %s", p.ID())
	}
}

func TestNewProvider_Unsupported(t *testing.T) {
	if _, err := infraAI.NewProvider("carrier-pigeon", ""); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestGetDefaultProvider_EnvOverride(t *testing.T) {
	t.Setenv("PROPOSER_AI_PROVIDER", "mock")
	t.Setenv("PROPOSER_AI_MODEL", "env-model")

	p, err := infraAI.GetDefaultProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("GetDefaultProvider error: %v", err)
	}
	if p.ID() != "mock:env-model" {
		t.Errorf("expected ID mock:env-model (from env), got %s", p.ID())
	}
}

func TestMockProvider_ID(t *testing.T) {
	p, _ := infraAI.NewProvider("mock", "test")
	if p.ID() != "mock:test" {
		t.Errorf("expected mock:test, got %s", p.ID())
	}
}

func TestMockProvider_Complete(t *testing.T) {
	p, _ := infraAI.NewProvider("mock", "test")
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hello world to you"})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Text == "" {
		t.Error("expected non-empty response")
	}
	if resp.Usage.InputTokens == 0 || resp.Usage.OutputTokens == 0 {
		t.Error("expected non-zero token usage")
	}
}

func TestMockProvider_BreakdownShape(t *testing.T) {
	p, _ := infraAI.NewProvider("mock", "test")
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt: "Break the requirements into features.",
		System: "You are an expert technical lead. You return a JSON array of features.",
	})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	var features []proposal.Feature
	if err := json.Unmarshal([]byte(resp.Text), &features); err != nil {
		t.Fatalf("mock breakdown must parse as features: %v", err)
	}
	if len(features) == 0 || len(features[0].Tasks) == 0 {
		t.Error("mock breakdown must carry features with tasks")
	}
}

func TestMockProvider_ProposalShape(t *testing.T) {
	p, _ := infraAI.NewProvider("mock", "test")
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt: "Write the proposal.",
		System: "You are an expert business proposal writer.",
	})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	var doc proposal.StructuredProposal
	if err := json.Unmarshal([]byte(resp.Text), &doc); err != nil {
		t.Fatalf("mock proposal must parse: %v", err)
	}
	if len(doc.SummaryBadges) != 3 {
		t.Errorf("mock proposal should carry 3 badges, got %d", len(doc.SummaryBadges))
	}
	if strings.TrimSpace(doc.TeamAndResources.Content) == "" {
		t.Error("mock proposal must fill team and resources")
	}
}

func TestMockProvider_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, _ := infraAI.NewProvider("mock", "test")
	if _, err := p.Complete(ctx, ai.CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
