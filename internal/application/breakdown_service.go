package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// BreakdownService turns a requirements description into a feature/task
// breakdown via one model call. Breakdown generation degrades gracefully:
// the proposal generator can proceed without it.
type BreakdownService struct {
	provider ai.Provider
	audit    domain.AuditLogger
	logger   *slog.Logger
}

const featureSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "tasks"],
    "properties": {
      "name": { "type": "string" },
      "description": { "type": "string" },
      "isRequired": { "type": "boolean" },
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["name", "estimatedHours"],
          "properties": {
            "name": { "type": "string" },
            "description": { "type": "string" },
            "estimatedHours": { "type": "number", "exclusiveMinimum": 0 },
            "isRequired": { "type": "boolean" }
          }
        }
      }
    }
  }
}`

var featureSchemaLoader = gojsonschema.NewStringLoader(featureSchemaJSON)

func NewBreakdownService(provider ai.Provider, audit domain.AuditLogger, logger *slog.Logger) *BreakdownService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakdownService{provider: provider, audit: audit, logger: logger}
}

const breakdownSystemPrompt = "You are an expert technical lead. You return a JSON array of features, " +
	"each with a list of atomic engineering tasks and realistic hour estimates. You respond ONLY with JSON."

// GenerateBreakdown invokes the model once and structurally validates the
// result. Failure policy is per-item and non-fatal: a feature or task that
// fails validation is flagged and passed through unchanged. If the model call
// itself fails or yields nothing parseable, an empty list is returned instead
// of an error.
func (s *BreakdownService) GenerateBreakdown(ctx context.Context, requirements string) ([]proposal.Feature, proposal.Warnings) {
	prompt := `Task: Break the following project requirements into features and atomic engineering tasks.

RULES:
1. Return ONLY a JSON array of features.
2. Every task needs a positive "estimatedHours" number.
3. Mark must-have features and tasks with "isRequired": true.

Format:
[
  {
    "name": "Feature name",
    "description": "What the feature does",
    "isRequired": true,
    "tasks": [
      {"name": "Task name", "description": "...", "estimatedHours": 8, "isRequired": true}
    ]
  }
]

Requirements:
` + requirements

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      breakdownSystemPrompt,
		Temperature: 0.2,
		MaxTokens:   2000,
		Format:      "json",
	})
	if err != nil {
		s.logger.Warn("breakdown generation failed, continuing without breakdown", "error", err)
		return []proposal.Feature{}, nil
	}
	if resp == nil {
		s.logger.Warn("breakdown generation returned no response, continuing without breakdown")
		return []proposal.Feature{}, nil
	}

	s.logUsage("breakdown.generate", resp)

	features := s.parseFeatures(resp.Text)
	if features == nil {
		s.logger.Warn("breakdown response had no parseable features", "snippet", proposal.Snippet(resp.Text))
		return []proposal.Feature{}, nil
	}

	warnings := proposal.ValidateBreakdown(features)
	for _, w := range warnings {
		s.logger.Warn("breakdown item failed validation, passing through", "field", w.Field, "message", w.Message)
	}
	return features, warnings
}

// parseFeatures recovers a feature list from raw model text. Returns nil when
// nothing usable was found.
func (s *BreakdownService) parseFeatures(text string) []proposal.Feature {
	cleanJSON := extractJSONPayload(text)
	if cleanJSON == "" {
		return nil
	}

	// Advisory schema check; fallback parsing below handles many
	// non-conforming responses.
	documentLoader := gojsonschema.NewStringLoader(cleanJSON)
	if result, err := gojsonschema.Validate(featureSchemaLoader, documentLoader); err != nil {
		s.logger.Debug("breakdown schema validation errored", "error", err)
	} else if !result.Valid() {
		for _, desc := range result.Errors() {
			s.logger.Debug("breakdown schema issue", "issue", desc.String())
		}
	}

	var features []proposal.Feature
	if err := json.Unmarshal([]byte(cleanJSON), &features); err == nil && len(features) > 0 {
		return features
	}

	// Try common wrapper keys (features, data).
	var generic map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleanJSON), &generic); err == nil {
		for _, key := range []string{"features", "feature", "data"} {
			if sub, ok := generic[key]; ok {
				var subFeatures []proposal.Feature
				if err := json.Unmarshal(sub, &subFeatures); err == nil && len(subFeatures) > 0 {
					return subFeatures
				}
			}
		}
		// Try single object.
		var single proposal.Feature
		if err := json.Unmarshal([]byte(cleanJSON), &single); err == nil && single.Name != "" {
			return []proposal.Feature{single}
		}
	}
	return nil
}

func (s *BreakdownService) logUsage(action string, resp *ai.CompletionResponse) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(action, "ai", map[string]interface{}{
		"model":         resp.Model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}); err != nil {
		s.logger.Warn("failed to write audit log", "error", err)
	}
}
