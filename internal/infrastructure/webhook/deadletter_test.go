package webhook

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/compasshq/compass/pkg/domain/events"
)

func TestDeadLetterStore_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletters.jsonl")
	store := NewDeadLetterStore(path)

	dl := events.DeadLetter{
		URL:       "https://example.com/hook",
		EventID:   "e1",
		EventType: events.TypeReleaseCut,
		Error:     "connection refused",
		FailedAt:  time.Now(),
		Attempts:  3,
	}

	if err := store.Append(dl); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(dl); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != dl.URL || entries[0].EventID != "e1" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestDeadLetterStore_ReadMissingFile(t *testing.T) {
	store := NewDeadLetterStore(filepath.Join(t.TempDir(), "nope.jsonl"))

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil for missing file, got %v", entries)
	}
}

func TestDeadLetterStore_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletters.jsonl")
	store := NewDeadLetterStore(path)

	if err := store.Append(events.DeadLetter{EventID: "good"}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json\n")
	f.Close()

	entries, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(entries) != 1 || entries[0].EventID != "good" {
		t.Errorf("entries = %+v", entries)
	}
}
