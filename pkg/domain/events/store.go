package events

import "time"

// EventStore provides append-only persistence for domain events.
type EventStore interface {
	// Append adds a new event to the store, chaining it to the previous event.
	Append(event *BaseEvent) error

	// LoadAll returns all events in chronological order.
	LoadAll() ([]*BaseEvent, error)

	// LoadByAggregate returns events for a specific aggregate.
	LoadByAggregate(aggregateType, aggregateID string) ([]*BaseEvent, error)

	// LoadByType returns events of a specific type.
	LoadByType(eventType string) ([]*BaseEvent, error)

	// LoadSince returns events that occurred after the given timestamp.
	LoadSince(since time.Time) ([]*BaseEvent, error)

	// GetLastEvent returns the most recent event (for hash chaining).
	GetLastEvent() (*BaseEvent, error)

	// Count returns the total number of events.
	Count() (int, error)
}

// EventHandler processes one event. Handlers must not block.
type EventHandler func(*BaseEvent) error

// Publisher fans events out to in-process subscribers.
type Publisher interface {
	Publish(event *BaseEvent) error
	Subscribe(handler EventHandler)
}

// WebhookEndpoint is a configured outgoing notification target.
type WebhookEndpoint struct {
	Name       string        `json:"name" yaml:"name"`
	URL        string        `json:"url" yaml:"url"`
	Secret     string        `json:"secret,omitempty" yaml:"secret,omitempty"`
	EventTypes []string      `json:"event_types,omitempty" yaml:"event_types,omitempty"`
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	MaxRetries int           `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	RetryDelay time.Duration `json:"retry_delay,omitempty" yaml:"retry_delay,omitempty"`
}

// Matches returns true if the endpoint wants the given event type. An empty
// filter matches everything.
func (w WebhookEndpoint) Matches(eventType string) bool {
	if !w.Enabled {
		return false
	}
	if len(w.EventTypes) == 0 {
		return true
	}
	for _, t := range w.EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// DeadLetter records a webhook delivery that exhausted its retries.
type DeadLetter struct {
	URL       string    `json:"url"`
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failed_at"`
	Attempts  int       `json:"attempts"`
}
