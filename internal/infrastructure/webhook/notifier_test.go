package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
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
	}
}

func TestNotifier_DeliversPayload(t *testing.T) {
	var received atomic.Int32
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier([]Endpoint{
		{Name: "test", URL: srv.URL, Enabled: true},
	}, nil)
	n.Notify(context.Background(), testEvent("proposal.generate"))

	if received.Load() != 1 {
		t.Fatalf("deliveries = %d, want 1", received.Load())
	}

	var payload Payload
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Action != "proposal.generate" {
		t.Errorf("action = %q", payload.Action)
	}
	if payload.Event.Actor != "user" {
		t.Errorf("event actor = %q", payload.Event.Actor)
	}
}

func TestNotifier_SignsWithSecret(t *testing.T) {
	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Proposer-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier([]Endpoint{
		{Name: "signed", URL: srv.URL, Secret: "s3cret", Enabled: true},
	}, nil)
	n.Notify(context.Background(), testEvent("request.set"))

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}
}

func TestNotifier_SkipsDisabledAndFiltered(t *testing.T) {
	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier([]Endpoint{
		{Name: "disabled", URL: srv.URL, Enabled: false},
		{Name: "filtered", URL: srv.URL, Enabled: true, ActionFilters: []string{"proposal.generate"}},
	}, nil)
	n.Notify(context.Background(), testEvent("team.add"))

	if received.Load() != 0 {
		t.Errorf("deliveries = %d, want 0", received.Load())
	}

	n.Notify(context.Background(), testEvent("proposal.generate"))
	if received.Load() != 1 {
		t.Errorf("deliveries = %d, want 1", received.Load())
	}
}

func TestNotifier_DeadLettersAfterRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "deadletter.jsonl"))
	n := NewNotifier([]Endpoint{
		{Name: "failing", URL: srv.URL, Enabled: true, MaxRetries: 2, RetryDelay: time.Millisecond},
	}, store)
	n.Notify(context.Background(), testEvent("proposal.generate"))

	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read dead letters: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dead letters = %d, want 1", len(entries))
	}
	if entries[0].WebhookName != "failing" || entries[0].Attempts != 2 {
		t.Errorf("dead letter = %+v", entries[0])
	}
}

func TestDeadLetterStore_MissingFile(t *testing.T) {
	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "nope.jsonl"))
	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil for missing file, got %v", entries)
	}
}
