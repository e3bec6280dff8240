package wiring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainai "github.com/felixgeelhaar/proposer/internal/domain/ai"
	infraai "github.com/felixgeelhaar/proposer/internal/infrastructure/ai"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/config"
)

func TestBuildAppServices_Defaults(t *testing.T) {
	tempDir := t.TempDir()

	services, err := BuildAppServices(tempDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if services.Proposal == nil || services.Breakdown == nil || services.Section == nil {
		t.Fatal("expected all services wired")
	}
	if services.Provider.ID() != "ollama:llama3" {
		t.Errorf("expected default provider ollama:llama3, got %s", services.Provider.ID())
	}
}

func TestBuildAppServices_FromConfig(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".proposer"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := config.SaveAIConfig(tempDir, &config.AIConfig{Provider: "mock", Model: "wired"}); err != nil {
		t.Fatal(err)
	}

	services, err := BuildAppServices(tempDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if services.Provider.ID() != "mock:wired" {
		t.Errorf("expected mock:wired, got %s", services.Provider.ID())
	}
}

func TestBuildAppServicesWithProvider_FallbackOnResolverError(t *testing.T) {
	tempDir := t.TempDir()

	resolver := func(string) (domainai.Provider, error) {
		return nil, errors.New("broken config")
	}

	services, err := BuildAppServicesWithProvider(tempDir, resolver)
	if err == nil {
		t.Error("expected a fallback warning error")
	}
	if services == nil {
		t.Fatal("expected services despite resolver error")
	}
	if services.Provider.ID() != "ollama:llama3" {
		t.Errorf("expected fallback provider, got %s", services.Provider.ID())
	}
}

func TestLoadAIProvider_ResilienceSettings(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".proposer"), 0700); err != nil {
		t.Fatal(err)
	}
	cfg := &config.AIConfig{Provider: "mock", Model: "m", MaxRetries: 4, RetryDelayMs: 50, TimeoutSec: 10}
	if err := config.SaveAIConfig(tempDir, cfg); err != nil {
		t.Fatal(err)
	}

	provider, err := LoadAIProvider(tempDir)
	if err != nil {
		t.Fatalf("load provider: %v", err)
	}
	if _, ok := provider.(*infraai.ResilientProvider); !ok {
		t.Errorf("expected resilient wrapper, got %T", provider)
	}
	if provider.ID() != "mock:m" {
		t.Errorf("expected mock:m, got %s", provider.ID())
	}
}
