package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/proposer/internal/infrastructure/messaging"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/storage"
)

const notifyConfigFile = "notify.yaml"

// WebhookEndpointConfig describes one signed webhook target.
type WebhookEndpointConfig struct {
	Name         string   `yaml:"name"`
	URL          string   `yaml:"url"`
	Secret       string   `yaml:"secret,omitempty"`
	Enabled      bool     `yaml:"enabled"`
	Actions      []string `yaml:"actions,omitempty"`
	MaxRetries   int      `yaml:"max_retries,omitempty"`
	RetryDelayMs int      `yaml:"retry_delay_ms,omitempty"`
}

// NotifyConfig lists the outgoing notification targets for a workspace.
type NotifyConfig struct {
	Webhooks []WebhookEndpointConfig   `yaml:"webhooks,omitempty"`
	Adapters []messaging.AdapterConfig `yaml:"adapters,omitempty"`
}

func LoadNotifyConfig(root string) (*NotifyConfig, error) {
	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(notifyConfigFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read notify config: %w", err)
	}

	var cfg NotifyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notify config: %w", err)
	}

	return &cfg, nil
}

func SaveNotifyConfig(root string, cfg *NotifyConfig) error {
	if cfg == nil {
		return fmt.Errorf("notify config is nil")
	}

	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(notifyConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal notify config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
