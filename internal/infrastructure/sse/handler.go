// Package sse streams workspace events to browsers via Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/felixgeelhaar/proposer/internal/domain"
)

// Handler fans published events out to connected SSE clients. It is fed by
// the workspace watcher while `proposer watch --serve` is running.
type Handler struct {
	mu      sync.RWMutex
	clients map[chan domain.Event]struct{}
}

// NewHandler creates an SSE handler with no connected clients.
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[chan domain.Event]struct{}),
	}
}

// Publish delivers an event to every connected client. Slow clients are
// skipped rather than blocking the publisher.
func (h *Handler) Publish(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- event:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Handler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections. Clients may filter by audit action with
// ?actions=proposal.generate,section.edit.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	actionFilter := make(map[string]bool)
	if actions := r.URL.Query().Get("actions"); actions != "" {
		for _, a := range strings.Split(actions, ",") {
			actionFilter[strings.TrimSpace(a)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := make(chan domain.Event, 64)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}()

	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if len(actionFilter) > 0 && !actionFilter[event.Action] {
				continue
			}

			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
			_, _ = fmt.Fprintf(w, "event: %s\n", event.Action)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
