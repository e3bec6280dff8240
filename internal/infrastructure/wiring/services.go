package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/proposer/internal/application"
	domainai "github.com/felixgeelhaar/proposer/internal/domain/ai"
	infraai "github.com/felixgeelhaar/proposer/internal/infrastructure/ai"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	Breakdown *application.BreakdownService
	Proposal  *application.ProposalService
	Section   *application.SectionService
	Industry  *application.IndustryService
	Audit     *application.AuditService
	Usage     *application.UsageService
	Provider  domainai.Provider
	Notify    *EventNotifier
}

// BuildAppServices constructs the workbench of services and AI provider wiring for a repo root.
func BuildAppServices(root string) (*AppServices, error) {
	return BuildAppServicesWithProvider(root, LoadAIProvider)
}

// BuildAppServicesWithProvider allows callers to supply a custom AI provider resolver.
func BuildAppServicesWithProvider(root string, resolver func(string) (domainai.Provider, error)) (*AppServices, error) {
	workspace := NewWorkspace(root)
	provider, err := resolver(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("AI provider config fallback: %w", err)
		fallback, fallbackErr := infraai.GetDefaultProvider("ollama", "llama3")
		if fallbackErr != nil {
			return nil, fmt.Errorf("fallback AI provider failed: %w", fallbackErr)
		}
		provider = infraai.NewResilientProvider(fallback)
	}

	logger := slog.Default()

	notify, notifyErr := LoadEventNotifier(root)
	if notifyErr != nil {
		// Broken notify config must not block local work.
		logger.Warn("notification targets disabled", "error", notifyErr)
		notify = nil
	}

	services := &AppServices{
		Workspace: workspace,
		Breakdown: application.NewBreakdownService(provider, workspace.Audit, logger),
		Proposal:  application.NewProposalService(provider, workspace.Audit, logger),
		Section:   application.NewSectionService(provider, workspace.Audit, logger),
		Industry:  application.NewIndustryService(provider, workspace.Audit, logger),
		Audit:     workspace.Audit,
		Usage:     workspace.Usage,
		Provider:  provider,
		Notify:    notify,
	}

	return services, loadErr
}
