package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAIConfigMissing(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".proposer"), 0700); err != nil {
		t.Fatalf("mkdir .proposer: %v", err)
	}

	cfg, err := LoadAIConfig(tempDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config for missing file")
	}
}

func TestSaveAndLoadAIConfig(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".proposer"), 0700); err != nil {
		t.Fatalf("mkdir .proposer: %v", err)
	}

	input := &AIConfig{Provider: "mock", Model: "test-model", MaxRetries: 5, RetryDelayMs: 250, TimeoutSec: 60}
	if err := SaveAIConfig(tempDir, input); err != nil {
		t.Fatalf("save config: %v", err)
	}

	cfg, err := LoadAIConfig(tempDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Provider != input.Provider || cfg.Model != input.Model {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.MaxRetries != 5 || cfg.RetryDelayMs != 250 || cfg.TimeoutSec != 60 {
		t.Fatalf("resilience settings should survive the round trip: %+v", cfg)
	}
}

func TestLoadAIConfigInvalid(t *testing.T) {
	tempDir := t.TempDir()
	cfgDir := filepath.Join(tempDir, ".proposer")
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		t.Fatalf("mkdir .proposer: %v", err)
	}

	badPath := filepath.Join(cfgDir, "ai.yaml")
	if err := os.WriteFile(badPath, []byte("::bad"), 0600); err != nil {
		t.Fatalf("write bad config: %v", err)
	}

	_, err := LoadAIConfig(tempDir)
	if err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}

func TestSaveAIConfigNil(t *testing.T) {
	if err := SaveAIConfig(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
