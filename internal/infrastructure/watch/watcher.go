package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a change to a workspace data file.
type ChangeEvent struct {
	Path       string
	File       string
	ChangeType string // "create", "write", "remove", "rename"
}

// WorkspaceWatcher watches the .compass directory for data file changes
// using fsnotify. Changes to unrelated files (editor temp files, the event
// log itself) are ignored.
type WorkspaceWatcher struct {
	dir      string
	debounce time.Duration
	onChange func(ChangeEvent)
	ignored  map[string]bool
}

// NewWorkspaceWatcher creates a watcher over the given workspace directory.
func NewWorkspaceWatcher(dir string, debounce time.Duration, onChange func(ChangeEvent)) *WorkspaceWatcher {
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &WorkspaceWatcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		ignored: map[string]bool{
			"events.jsonl":      true,
			"deadletters.jsonl": true,
		},
	}
}

// Relevant reports whether a changed file should be surfaced.
func (w *WorkspaceWatcher) Relevant(path string) bool {
	name := filepath.Base(path)
	if w.ignored[name] {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *WorkspaceWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	debouncer := NewDebouncer(w.debounce, func(change ChangeEvent) {
		if w.onChange != nil {
			w.onChange(change)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" || !w.Relevant(event.Name) {
				continue
			}
			debouncer.Trigger(ChangeEvent{
				Path:       event.Name,
				File:       filepath.Base(event.Name),
				ChangeType: changeType,
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
