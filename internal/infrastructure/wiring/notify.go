package wiring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/config"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/messaging"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/storage"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/webhook"
)

// EventNotifier fans workspace events out to the configured webhook and
// messaging targets. With no targets configured every Emit is a no-op.
type EventNotifier struct {
	webhooks *webhook.Notifier
	registry *messaging.Registry
}

// LoadEventNotifier builds a notifier from .proposer/notify.yaml.
func LoadEventNotifier(root string) (*EventNotifier, error) {
	cfg, err := config.LoadNotifyConfig(root)
	if err != nil {
		return nil, fmt.Errorf("load notify config: %w", err)
	}

	var endpoints []webhook.Endpoint
	var adapterConfigs []messaging.AdapterConfig
	if cfg != nil {
		for _, w := range cfg.Webhooks {
			endpoints = append(endpoints, webhook.Endpoint{
				Name:          w.Name,
				URL:           w.URL,
				Secret:        w.Secret,
				Enabled:       w.Enabled,
				ActionFilters: w.Actions,
				MaxRetries:    w.MaxRetries,
				RetryDelay:    time.Duration(w.RetryDelayMs) * time.Millisecond,
			})
		}
		adapterConfigs = cfg.Adapters
	}

	registry, err := messaging.NewRegistry(adapterConfigs)
	if err != nil {
		return nil, fmt.Errorf("build messaging registry: %w", err)
	}

	var deadLetter *webhook.DeadLetterStore
	if dlPath, err := storage.NewFilesystemRepository(root).ResolvePath(storage.DeadLetterFile); err == nil {
		deadLetter = webhook.NewDeadLetterStore(dlPath)
	}

	return &EventNotifier{
		webhooks: webhook.NewNotifier(endpoints, deadLetter),
		registry: registry,
	}, nil
}

// Emit builds an event and delivers it to all configured targets. Delivery
// failures are returned but callers are expected to treat them as advisory.
func (n *EventNotifier) Emit(ctx context.Context, action, actor string, metadata map[string]interface{}) error {
	if n == nil {
		return nil
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
	}

	n.webhooks.Notify(ctx, event)
	return n.registry.Dispatch(ctx, event)
}
