package idea

import "fmt"

// Status is the lifecycle state of an idea.
type Status string

const (
	StatusOpen        Status = "open"
	StatusUnderReview Status = "under_review"
	StatusPlanned     Status = "planned"
	StatusPromoted    Status = "promoted"
	StatusArchived    Status = "archived"
)

// AllStatuses returns all valid idea statuses.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusUnderReview, StatusPlanned, StatusPromoted, StatusArchived}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusUnderReview, StatusPlanned, StatusPromoted, StatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once the idea can no longer change state.
func (s Status) IsTerminal() bool {
	return s == StatusPromoted || s == StatusArchived
}

// CanPromote returns true if an idea in this status may be promoted to a
// feature.
func (s Status) CanPromote() bool {
	return s == StatusUnderReview || s == StatusPlanned
}

// ParseStatus parses a string into a Status.
func ParseStatus(str string) (Status, error) {
	s := Status(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid idea status: %s", str)
	}
	return s, nil
}
