// Package messaging sends human-readable workspace notifications to chat
// and generic HTTP targets. It complements the webhook package, which
// delivers signed machine-to-machine payloads.
package messaging

import (
	"context"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// MessageAdapter delivers a workspace event to one external target.
type MessageAdapter interface {
	Name() string
	Type() string
	Send(ctx context.Context, event domain.Event) error
}

// AdapterConfig describes one configured messaging target.
type AdapterConfig struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"` // "slack" or "webhook"
	URL           string   `yaml:"url"`
	Enabled       bool     `yaml:"enabled"`
	ActionFilters []string `yaml:"actions,omitempty"`
}

// wantsAction reports whether the adapter config subscribes to the action.
func (c AdapterConfig) wantsAction(action string) bool {
	if len(c.ActionFilters) == 0 {
		return true
	}
	for _, f := range c.ActionFilters {
		if f == action {
			return true
		}
	}
	return false
}
