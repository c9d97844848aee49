package sse_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/compasshq/compass/internal/infrastructure/sse"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/storage"
)

func TestNewSSEHandler_CreatesHandler(t *testing.T) {
	publisher := storage.NewInMemoryEventPublisher()
	handler := sse.NewSSEHandler(publisher)

	if handler == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestSSEHandler_OpensStreamImmediately(t *testing.T) {
	publisher := storage.NewInMemoryEventPublisher()
	handler := sse.NewSSEHandler(publisher)

	server := httptest.NewServer(handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// No events are ever published; the headers must still arrive before the
	// request deadline.
	start := time.Now()
	req, _ := http.NewRequestWithContext(ctx, "GET", server.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect blocked for %v: %v", time.Since(start), err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %s", got)
	}
}

func TestSSEHandler_StreamsEvents(t *testing.T) {
	publisher := storage.NewInMemoryEventPublisher()
	handler := sse.NewSSEHandler(publisher)

	server := httptest.NewServer(handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", server.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %s", got)
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = publisher.Publish(&events.BaseEvent{
			ID:        "evt-1",
			Type:      events.TypeIdeaCreated,
			Timestamp: time.Now(),
		})
	}()

	scanner := bufio.NewScanner(resp.Body)
	var sawEvent, sawData bool
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event: idea.created" {
			sawEvent = true
		}
		if strings.HasPrefix(line, "data: ") && strings.Contains(line, "evt-1") {
			sawData = true
		}
		if sawEvent && sawData {
			break
		}
	}
	if !sawEvent || !sawData {
		t.Errorf("expected event and data lines, got event=%v data=%v", sawEvent, sawData)
	}
}

func TestSSEHandler_FiltersByType(t *testing.T) {
	publisher := storage.NewInMemoryEventPublisher()
	handler := sse.NewSSEHandler(publisher)

	server := httptest.NewServer(handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", server.URL+"?types=release.cut", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = publisher.Publish(&events.BaseEvent{ID: "evt-1", Type: events.TypeIdeaCreated, Timestamp: time.Now()})
		_ = publisher.Publish(&events.BaseEvent{ID: "evt-2", Type: events.TypeReleaseCut, Timestamp: time.Now()})
	}()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "idea.created") {
			t.Fatal("filtered event type leaked through")
		}
		if line == "event: release.cut" {
			return
		}
	}
	t.Error("never received the release.cut event")
}
