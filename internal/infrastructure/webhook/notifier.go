// Package webhook delivers signed outgoing notifications for workspace events.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// Endpoint is a configured webhook target. ActionFilters limits delivery to
// the listed audit actions; an empty list receives everything.
type Endpoint struct {
	Name          string
	URL           string
	Secret        string
	Enabled       bool
	ActionFilters []string
	MaxRetries    int
	RetryDelay    time.Duration
}

// Notifier sends workspace events to configured webhook endpoints.
type Notifier struct {
	endpoints  []Endpoint
	client     *http.Client
	deadLetter *DeadLetterStore
}

// NewNotifier creates a notifier with the given endpoints and dead letter store.
func NewNotifier(endpoints []Endpoint, deadLetter *DeadLetterStore) *Notifier {
	return &Notifier{
		endpoints: endpoints,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		deadLetter: deadLetter,
	}
}

// Payload is the JSON body sent to webhook endpoints.
type Payload struct {
	Action    string       `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
	Event     domain.Event `json:"event"`
}

// Notify delivers an event to all matching endpoints. Delivery is synchronous:
// the CLI process exits right after a command, so fire-and-forget goroutines
// would be killed mid-flight. Failed deliveries land in the dead letter store.
func (n *Notifier) Notify(ctx context.Context, event domain.Event) {
	payload := Payload{
		Action:    event.Action,
		Timestamp: event.Timestamp,
		Event:     event,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	for _, ep := range n.endpoints {
		if !ep.Enabled {
			continue
		}
		if !matchesFilter(ep, event.Action) {
			continue
		}
		n.deliver(ctx, ep, event.Action, body)
	}
}

func matchesFilter(ep Endpoint, action string) bool {
	if len(ep.ActionFilters) == 0 {
		return true
	}
	for _, f := range ep.ActionFilters {
		if f == action {
			return true
		}
	}
	return false
}

func (n *Notifier) deliver(ctx context.Context, ep Endpoint, action string, body []byte) {
	maxRetries := ep.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := ep.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := n.send(ctx, ep, body); err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(retryDelay * time.Duration(attempt)) // linear backoff
			}
			continue
		}
		return
	}

	if n.deadLetter != nil && lastErr != nil {
		dl := DeadLetter{
			Timestamp:   time.Now(),
			WebhookName: ep.Name,
			URL:         ep.URL,
			Action:      action,
			Payload:     string(body),
			Error:       lastErr.Error(),
			Attempts:    maxRetries,
		}
		_ = n.deadLetter.Append(dl)
	}
}

func (n *Notifier) send(ctx context.Context, ep Endpoint, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Proposer-Webhook/1.0")

	if ep.Secret != "" {
		sig := sign(body, ep.Secret)
		req.Header.Set("X-Proposer-Signature", sig)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// sign computes HMAC-SHA256 of the payload using the secret.
func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
