// Package idea contains the product idea entity and its ranking rules.
package idea

import (
	"time"

	"github.com/compasshq/compass/pkg/domain/prioritization"
)

// Idea is a captured product idea awaiting prioritization. RICE sub-scores
// are optional until a user provides them; the score itself is derived on
// read and never persisted.
type Idea struct {
	ID          string                      `json:"id" yaml:"id"`
	ProductID   string                      `json:"product_id" yaml:"product_id"`
	Title       string                      `json:"title" yaml:"title"`
	Description string                      `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status                      `json:"status" yaml:"status"`
	Priority    prioritization.Priority     `json:"priority" yaml:"priority"`
	RICE        prioritization.RICEInputs   `json:"rice" yaml:"rice"`
	WSJF        prioritization.WSJFInputs   `json:"wsjf,omitempty" yaml:"wsjf,omitempty"`
	Votes       int                         `json:"votes" yaml:"votes"`
	SubmittedBy string                      `json:"submitted_by,omitempty" yaml:"submitted_by,omitempty"`
	CreatedAt   time.Time                   `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at" yaml:"updated_at"`
}

// New creates an idea with defaults applied: open status, medium priority,
// no votes, no sub-scores.
func New(id, productID, title string) Idea {
	now := time.Now()
	return Idea{
		ID:        id,
		ProductID: productID,
		Title:     title,
		Status:    StatusOpen,
		Priority:  prioritization.DefaultPriority(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Score computes the idea's RICE score. A nil result means the idea has not
// been fully scored yet.
func (i Idea) Score() (*float64, error) {
	return prioritization.ComputeRICE(i.RICE)
}

// Display returns the two-facet priority used in listings.
func (i Idea) Display() prioritization.DisplayPriority {
	score, err := prioritization.ComputeRICE(i.RICE)
	if err != nil {
		score = nil
	}
	return prioritization.Classify(i.Priority, score)
}
