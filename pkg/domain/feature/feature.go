// Package feature contains the feature entity, its task breakdown, and the
// status lifecycle shared by both.
package feature

import "time"

// Task is a unit of work inside a feature. Effort is optional story points;
// a missing effort counts as zero in rollups.
type Task struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Status   Status `json:"status" yaml:"status"`
	Effort   *int   `json:"effort,omitempty" yaml:"effort,omitempty"`
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
}

// Feature is a deliverable unit of product work. A feature belongs to at most
// one release; ReleaseID is nil until the feature is bound.
type Feature struct {
	ID          string    `json:"id" yaml:"id"`
	ProductID   string    `json:"product_id" yaml:"product_id"`
	IdeaID      string    `json:"idea_id,omitempty" yaml:"idea_id,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	ReleaseID   *string   `json:"release_id,omitempty" yaml:"release_id,omitempty"`
	SprintID    *string   `json:"sprint_id,omitempty" yaml:"sprint_id,omitempty"`
	Tasks       []Task    `json:"tasks" yaml:"tasks"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// New creates a feature with defaults applied.
func New(id, productID, title string) Feature {
	now := time.Now()
	return Feature{
		ID:        id,
		ProductID: productID,
		Title:     title,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsBound returns true once the feature belongs to a release.
func (f Feature) IsBound() bool {
	return f.ReleaseID != nil
}
