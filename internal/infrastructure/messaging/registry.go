package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// Registry creates messaging adapters from configuration and fans events
// out to them.
type Registry struct {
	adapters []MessageAdapter
	configs  []AdapterConfig
}

// NewRegistry creates adapters for every enabled config entry.
func NewRegistry(configs []AdapterConfig) (*Registry, error) {
	var adapters []MessageAdapter
	var kept []AdapterConfig
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}

		adapter, err := createAdapter(cfg)
		if err != nil {
			return nil, fmt.Errorf("create adapter %q: %w", cfg.Name, err)
		}
		adapters = append(adapters, adapter)
		kept = append(kept, cfg)
	}

	return &Registry{adapters: adapters, configs: kept}, nil
}

// Adapters returns all active adapters.
func (r *Registry) Adapters() []MessageAdapter {
	return r.adapters
}

// Dispatch sends the event to every adapter subscribed to its action.
// Individual failures are collected so one broken target does not block
// the others.
func (r *Registry) Dispatch(ctx context.Context, event domain.Event) error {
	var errs []error
	for i, adapter := range r.adapters {
		if !r.configs[i].wantsAction(event.Action) {
			continue
		}
		if err := adapter.Send(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", adapter.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func createAdapter(cfg AdapterConfig) (MessageAdapter, error) {
	switch cfg.Type {
	case "webhook":
		return NewWebhookAdapter(cfg), nil
	case "slack":
		return NewSlackAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown adapter type: %s", cfg.Type)
	}
}
