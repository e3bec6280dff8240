package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// UsageService tracks aggregate AI call counts per provider, separate from
// the audit trail.
type UsageService struct {
	repo domain.WorkspaceRepository
}

func NewUsageService(repo domain.WorkspaceRepository) *UsageService {
	return &UsageService{repo: repo}
}

func (s *UsageService) RecordCall(providerID string) error {
	stats, err := s.repo.LoadUsage()
	if err != nil {
		return fmt.Errorf("failed to load usage stats: %w", err)
	}
	if stats == nil {
		stats = &domain.UsageStats{}
	}
	if stats.ProviderStats == nil {
		stats.ProviderStats = make(map[string]int)
	}

	stats.TotalCalls++
	stats.LastCallAt = time.Now()
	stats.ProviderStats[providerID]++

	return s.repo.UpdateUsage(*stats)
}

func (s *UsageService) Stats() (*domain.UsageStats, error) {
	return s.repo.LoadUsage()
}
