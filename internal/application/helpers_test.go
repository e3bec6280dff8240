package application_test

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/ai"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

type StubProvider struct {
	Fail bool
	Text string
	// LastRequest captures the most recent completion request for prompt
	// assertions.
	LastRequest ai.CompletionRequest
}

func (s *StubProvider) ID() string { return "stub:test" }

func (s *StubProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	s.LastRequest = req
	if s.Fail {
		return nil, errors.New("model unavailable")
	}
	return &ai.CompletionResponse{
		Text:  s.Text,
		Model: "stub-model",
		Usage: ai.TokenUsage{InputTokens: 10, OutputTokens: 5},
	}, nil
}

// MemRepo is an in-memory WorkspaceRepository for service tests.
type MemRepo struct {
	Request   *proposal.ProjectRequest
	Proposal  *proposal.StructuredProposal
	Breakdown []proposal.Feature
	Events    []domain.Event
	Usage     *domain.UsageStats
}

func (r *MemRepo) Initialize() error     { return nil }
func (r *MemRepo) IsInitialized() bool   { return true }
func (r *MemRepo) SaveRequest(req *proposal.ProjectRequest) error { r.Request = req; return nil }
func (r *MemRepo) LoadRequest() (*proposal.ProjectRequest, error) { return r.Request, nil }
func (r *MemRepo) SaveProposal(p *proposal.StructuredProposal) error {
	r.Proposal = p
	return nil
}
func (r *MemRepo) LoadProposal() (*proposal.StructuredProposal, error) { return r.Proposal, nil }
func (r *MemRepo) SaveBreakdown(features []proposal.Feature) error {
	r.Breakdown = features
	return nil
}
func (r *MemRepo) LoadBreakdown() ([]proposal.Feature, error) { return r.Breakdown, nil }
func (r *MemRepo) RecordEvent(event domain.Event) error {
	r.Events = append(r.Events, event)
	return nil
}
func (r *MemRepo) LoadEvents() ([]domain.Event, error) { return r.Events, nil }
func (r *MemRepo) UpdateUsage(stats domain.UsageStats) error {
	r.Usage = &stats
	return nil
}
func (r *MemRepo) LoadUsage() (*domain.UsageStats, error) { return r.Usage, nil }
