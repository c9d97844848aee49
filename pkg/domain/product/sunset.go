package product

import (
	"fmt"
	"time"
)

// Milestone is one step of a sunset plan (e.g. "notify customers",
// "disable signups", "final shutdown").
type Milestone struct {
	Name  string    `json:"name" yaml:"name"`
	DueAt time.Time `json:"due_at" yaml:"due_at"`
	Done  bool      `json:"done" yaml:"done"`
}

// SunsetPlan captures a product's end-of-life schedule.
type SunsetPlan struct {
	ProductID      string      `json:"product_id" yaml:"product_id"`
	Reason         string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	AnnouncedAt    time.Time   `json:"announced_at" yaml:"announced_at"`
	EndOfLifeAt    time.Time   `json:"end_of_life_at" yaml:"end_of_life_at"`
	MigrationNotes string      `json:"migration_notes,omitempty" yaml:"migration_notes,omitempty"`
	Milestones     []Milestone `json:"milestones,omitempty" yaml:"milestones,omitempty"`
}

// Validate checks the plan's schedule invariants.
func (sp SunsetPlan) Validate() error {
	if sp.ProductID == "" {
		return fmt.Errorf("sunset plan must reference a product")
	}
	if sp.EndOfLifeAt.IsZero() {
		return fmt.Errorf("sunset plan must have an end-of-life date")
	}
	if !sp.AnnouncedAt.IsZero() && sp.EndOfLifeAt.Before(sp.AnnouncedAt) {
		return fmt.Errorf("end-of-life date cannot precede announcement")
	}
	for _, m := range sp.Milestones {
		if m.Name == "" {
			return fmt.Errorf("sunset milestone name cannot be empty")
		}
	}
	return nil
}

// Progress returns the fraction of milestones completed, in percent. A plan
// without milestones reports 0.
func (sp SunsetPlan) Progress() float64 {
	if len(sp.Milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range sp.Milestones {
		if m.Done {
			done++
		}
	}
	return float64(done) / float64(len(sp.Milestones)) * 100
}

// Overdue returns the milestones past due at the given time.
func (sp SunsetPlan) Overdue(now time.Time) []Milestone {
	var late []Milestone
	for _, m := range sp.Milestones {
		if !m.Done && m.DueAt.Before(now) {
			late = append(late, m)
		}
	}
	return late
}
