package feature

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a feature or task.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// validTransitions defines the allowed state transitions and their events.
// Map: currentStatus -> event -> targetStatus
var validTransitions = map[Status]map[string]Status{
	StatusNew: {
		"start":  StatusInProgress,
		"cancel": StatusCancelled,
	},
	StatusInProgress: {
		"review": StatusInReview,
		"stop":   StatusNew,
		"cancel": StatusCancelled,
	},
	StatusInReview: {
		"approve": StatusDone,
		"reject":  StatusInProgress,
		"cancel":  StatusCancelled,
	},
	StatusDone: {
		"reopen": StatusInProgress,
	},
	StatusCancelled: {},
}

// AllStatuses returns all valid statuses.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusInReview, StatusDone, StatusCancelled}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusInReview, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsActive returns true for statuses that represent started or completed
// work, the statuses that make a feature releasable.
func (s Status) IsActive() bool {
	switch s {
	case StatusInProgress, StatusInReview, StatusDone:
		return true
	default:
		return false
	}
}

// IsFinal returns true if no further transitions are expected.
func (s Status) IsFinal() bool {
	return s == StatusCancelled
}

// CanTransitionWith returns true if the given event can trigger a transition
// from this status.
func (s Status) CanTransitionWith(event string) bool {
	transitions, ok := validTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the target status for a given event, or an error if
// the transition is not allowed.
func (s Status) TransitionWith(event string) (Status, error) {
	transitions, ok := validTransitions[s]
	if !ok {
		return s, fmt.Errorf("no transitions defined for status: %s", s)
	}
	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("event '%s' not allowed from status '%s'", event, s)
	}
	return target, nil
}

// ValidEvents returns all events that can be triggered from this status.
func (s Status) ValidEvents() []string {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}
	var events []string
	for e := range transitions {
		events = append(events, e)
	}
	return events
}

// ParseStatus parses a string into a Status.
func ParseStatus(str string) (Status, error) {
	s := Status(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid feature status: %s", str)
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler. An empty string decodes to "new"
// so drafts without an explicit status stay loadable.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = StatusNew
		return nil
	}
	status := Status(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid feature status: %s", str)
	}
	*s = status
	return nil
}
