package domain

import (
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// WorkspaceRepository handles the persistence of proposer artifacts in the
// .proposer/ directory. Storage is a collaborator of the generation core,
// not part of its contracts.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveRequest(req *proposal.ProjectRequest) error
	LoadRequest() (*proposal.ProjectRequest, error)
	SaveProposal(p *proposal.StructuredProposal) error
	LoadProposal() (*proposal.StructuredProposal, error)
	SaveBreakdown(features []proposal.Feature) error
	LoadBreakdown() ([]proposal.Feature, error)
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
	UpdateUsage(stats UsageStats) error
	LoadUsage() (*UsageStats, error)
}
