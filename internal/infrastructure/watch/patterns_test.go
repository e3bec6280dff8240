package watch_test

import (
	"testing"

	"github.com/felixgeelhaar/proposer/internal/infrastructure/watch"
)

func TestPatternFilter_IncludeOnly(t *testing.T) {
	f := watch.NewPatternFilter([]string{"*.yaml", "*.json"}, nil)

	tests := []struct {
		path  string
		match bool
	}{
		{".proposer/request.yaml", true},
		{"proposal.json", true},
		{"main.go", false},
		{"src/app.js", false},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}
}

func TestPatternFilter_ExcludeOnly(t *testing.T) {
	f := watch.NewPatternFilter(nil, []string{"*.jsonl", "*.log"})

	tests := []struct {
		path  string
		match bool
	}{
		{".proposer/proposal.json", true},
		{"events.jsonl", false},
		{"debug.log", false},
		{"request.yaml", true},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}
}

func TestPatternFilter_IncludeAndExclude(t *testing.T) {
	f := watch.NewPatternFilter([]string{"*.json"}, []string{"usage.json"})

	tests := []struct {
		path  string
		match bool
	}{
		{"proposal.json", true},
		{"usage.json", false},
		{"request.yaml", false},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}
}

func TestPatternFilter_NoPatterns(t *testing.T) {
	f := watch.NewPatternFilter(nil, nil)

	if !f.Matches("anything.txt") {
		t.Error("empty filter should match everything")
	}
}
