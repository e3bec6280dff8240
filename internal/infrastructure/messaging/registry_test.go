package messaging

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

func testEvent(action string) domain.Event {
	return domain.Event{
		ID:        "evt-1",
		Timestamp: time.Now(),
		Action:    action,
		Actor:     "user",
		Metadata:  map[string]interface{}{"section": "executiveSummary"},
	}
}

func TestNewRegistry_SkipsDisabled(t *testing.T) {
	reg, err := NewRegistry([]AdapterConfig{
		{Name: "off", Type: "webhook", URL: "http://example.com", Enabled: false},
		{Name: "on", Type: "slack", URL: "http://example.com", Enabled: true},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(reg.Adapters()) != 1 {
		t.Errorf("adapters = %d, want 1", len(reg.Adapters()))
	}
	if reg.Adapters()[0].Type() != "slack" {
		t.Errorf("type = %q", reg.Adapters()[0].Type())
	}
}

func TestNewRegistry_UnknownType(t *testing.T) {
	_, err := NewRegistry([]AdapterConfig{
		{Name: "bad", Type: "carrier-pigeon", Enabled: true},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown adapter type") {
		t.Errorf("err = %v", err)
	}
}

func TestWebhookAdapter_SendsEvent(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewWebhookAdapter(AdapterConfig{Name: "w", URL: srv.URL, Enabled: true})
	if err := a.Send(context.Background(), testEvent("proposal.generate")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var ev domain.Event
	if err := json.Unmarshal(gotBody, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Action != "proposal.generate" {
		t.Errorf("action = %q", ev.Action)
	}
}

func TestSlackAdapter_FormatsMessage(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewSlackAdapter(AdapterConfig{Name: "s", URL: srv.URL, Enabled: true})
	if err := a.Send(context.Background(), testEvent("section.edit")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	text, _ := payload["text"].(string)
	if !strings.Contains(text, "executiveSummary") {
		t.Errorf("text = %q, want section name included", text)
	}
}

func TestSlackAdapter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewSlackAdapter(AdapterConfig{Name: "s", URL: srv.URL, Enabled: true})
	if err := a.Send(context.Background(), testEvent("request.set")); err == nil {
		t.Error("expected error on 403")
	}
}

func TestRegistry_DispatchFiltersAndCollectsErrors(t *testing.T) {
	var okCalls atomic.Int32
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer okSrv.Close()
	badSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer badSrv.Close()

	reg, err := NewRegistry([]AdapterConfig{
		{Name: "all", Type: "webhook", URL: okSrv.URL, Enabled: true},
		{Name: "broken", Type: "webhook", URL: badSrv.URL, Enabled: true},
		{Name: "picky", Type: "webhook", URL: okSrv.URL, Enabled: true, ActionFilters: []string{"proposal.generate"}},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	err = reg.Dispatch(context.Background(), testEvent("team.add"))
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("err = %v, want broken adapter reported", err)
	}
	// "all" received it, "picky" filtered it out.
	if okCalls.Load() != 1 {
		t.Errorf("ok deliveries = %d, want 1", okCalls.Load())
	}
}
