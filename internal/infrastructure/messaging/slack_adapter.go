package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// SlackAdapter sends events to a Slack incoming webhook URL.
type SlackAdapter struct {
	config AdapterConfig
	client *http.Client
}

// NewSlackAdapter creates a Slack adapter from config.
func NewSlackAdapter(config AdapterConfig) *SlackAdapter {
	return &SlackAdapter{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *SlackAdapter) Name() string { return a.config.Name }
func (a *SlackAdapter) Type() string { return "slack" }

func (a *SlackAdapter) Send(ctx context.Context, event domain.Event) error {
	text := formatSlackMessage(event)

	payload := map[string]interface{}{
		"text": text,
		"blocks": []map[string]interface{}{
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send slack message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}
	return nil
}

// formatSlackMessage renders an event as a short mrkdwn line.
func formatSlackMessage(event domain.Event) string {
	switch event.Action {
	case "proposal.generate":
		return fmt.Sprintf(":page_facing_up: Proposal generated by %s", event.Actor)
	case "section.edit":
		section := "a section"
		if s, ok := event.Metadata["section"].(string); ok && s != "" {
			section = s
		}
		return fmt.Sprintf(":pencil2: Proposal section *%s* edited by %s", section, event.Actor)
	case "breakdown.generate":
		return fmt.Sprintf(":hammer_and_wrench: Feature breakdown generated by %s", event.Actor)
	case "request.set":
		return fmt.Sprintf(":inbox_tray: Project request updated by %s", event.Actor)
	default:
		return fmt.Sprintf(":bell: %s by %s", event.Action, event.Actor)
	}
}
