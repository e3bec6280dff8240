package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/felixgeelhaar/proposer/internal/infrastructure/config"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return buf.String()
}

func runCmd(t *testing.T, args ...string) error {
	t.Helper()

	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

// setupWorkspace initializes a proposer workspace in a fresh temp dir with
// the mock AI provider configured, and chdirs into it for the test duration.
func setupWorkspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	if err := runCmd(t, "init", "test-project"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := config.SaveAIConfig(dir, &config.AIConfig{Provider: "mock", Model: "test"}); err != nil {
		t.Fatalf("save AI config: %v", err)
	}
	return dir
}
