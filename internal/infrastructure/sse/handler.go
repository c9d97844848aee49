// Package sse streams workspace events to browsers over Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/storage"
)

// heartbeatInterval keeps idle connections alive through proxies that cut
// silent streams.
const heartbeatInterval = 15 * time.Second

// SSEHandler fans audited events out to any number of connected clients.
type SSEHandler struct {
	mu      sync.RWMutex
	clients map[chan *events.BaseEvent]struct{}
}

// NewSSEHandler returns a handler subscribed to the publisher. Slow clients
// lose events rather than stalling the publisher.
func NewSSEHandler(publisher *storage.InMemoryEventPublisher) *SSEHandler {
	h := &SSEHandler{clients: make(map[chan *events.BaseEvent]struct{})}
	publisher.Subscribe(func(e *events.BaseEvent) error {
		h.broadcast(e)
		return nil
	})
	return h
}

func (h *SSEHandler) broadcast(e *events.BaseEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *SSEHandler) register() chan *events.BaseEvent {
	ch := make(chan *events.BaseEvent, 64)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *SSEHandler) unregister(ch chan *events.BaseEvent) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

// ServeHTTP streams events until the client disconnects. A comma-separated
// ?types= query restricts the stream to matching event types.
func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	wanted := parseTypeFilter(r.URL.Query().Get("types"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Push the headers out right away so clients see the stream open before
	// the first event or heartbeat.
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ch := h.register()
	defer h.unregister(ch)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return
			}
			if wanted != nil && !wanted[event.Type] {
				continue
			}
			if err := writeEvent(w, event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func parseTypeFilter(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	filter := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter[t] = true
		}
	}
	return filter
}

func writeEvent(w http.ResponseWriter, event *events.BaseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data)
	return err
}
