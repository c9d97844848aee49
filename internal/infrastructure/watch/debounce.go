// Package watch provides filesystem watching over the workspace directory.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid changes into a single callback invocation.
// The callback receives the most recent change when the window expires.
type Debouncer struct {
	window   time.Duration
	callback func(ChangeEvent)

	mu      sync.Mutex
	timer   *time.Timer
	pending ChangeEvent
}

// NewDebouncer creates a debouncer with the given window duration.
func NewDebouncer(window time.Duration, callback func(ChangeEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger records a change and resets the debounce timer. The callback fires
// with the last recorded change after the window elapses with no further triggers.
func (d *Debouncer) Trigger(change ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = change
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		change := d.pending
		d.mu.Unlock()
		d.callback(change)
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
