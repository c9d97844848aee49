package prioritization

import (
	"encoding/json"
	"fmt"
)

// Priority is the manually assigned priority of an idea, set independently of
// any RICE score.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// priorityOrder defines the ordering of priorities (higher order = higher priority)
var priorityOrder = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// AllPriorities returns all valid priorities.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Order returns the numeric order of the priority (higher = more important).
func (p Priority) Order() int {
	if order, ok := priorityOrder[p]; ok {
		return order
	}
	return 0
}

// Compare compares this priority to another.
// Returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Priority) Compare(other Priority) int {
	switch {
	case p.Order() < other.Order():
		return -1
	case p.Order() > other.Order():
		return 1
	default:
		return 0
	}
}

// DisplayName returns a human-readable display name for the priority.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// DefaultPriority returns the priority assigned to new ideas.
func DefaultPriority() Priority {
	return PriorityMedium
}

// MarshalJSON implements json.Marshaler.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler. An empty string decodes to the
// default priority so older records without the field stay loadable.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*p = DefaultPriority()
		return nil
	}
	priority := Priority(str)
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", str)
	}
	*p = priority
	return nil
}
