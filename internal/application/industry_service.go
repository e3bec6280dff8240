package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
)

// IndustryService suggests industries for a client company name.
type IndustryService struct {
	provider ai.Provider
	audit    domain.AuditLogger
	logger   *slog.Logger
}

func NewIndustryService(provider ai.Provider, audit domain.AuditLogger, logger *slog.Logger) *IndustryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndustryService{provider: provider, audit: audit, logger: logger}
}

// SuggestIndustries asks the model for likely industries given a company
// name. Returns the parsed list or an error when nothing usable came back.
func (s *IndustryService) SuggestIndustries(ctx context.Context, companyName string) ([]string, error) {
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      fmt.Sprintf("Suggest industries for the company named %q. Return a JSON array of strings.", companyName),
		System:      "You classify companies into industries. You respond ONLY with a JSON array of industry names.",
		Temperature: 0.2,
		MaxTokens:   300,
		Format:      "json",
	})
	if err != nil {
		return nil, fmt.Errorf("industry suggestion failed: %w", err)
	}

	if s.audit != nil {
		_ = s.audit.Log("industry.suggest", "ai", map[string]interface{}{
			"model":         resp.Model,
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
		})
	}

	cleanJSON := extractJSONPayload(resp.Text)
	var industries []string
	if err := json.Unmarshal([]byte(cleanJSON), &industries); err == nil && len(industries) > 0 {
		return industries, nil
	}

	// Some models wrap the list in an object.
	var wrapped struct {
		Industries []string `json:"industries"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &wrapped); err == nil && len(wrapped.Industries) > 0 {
		return wrapped.Industries, nil
	}

	return nil, fmt.Errorf("no industries in model response")
}
