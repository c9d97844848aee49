package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/org"
)

// FeatureService manages features and their task breakdown. Status moves go
// through the state machine so invalid transitions are rejected with the
// list of valid events.
type FeatureService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewFeatureService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *FeatureService {
	return &FeatureService{repo: repo, audit: audit}
}

// Create adds a new feature in the new status.
func (s *FeatureService) Create(actor, title, description string) (*feature.Feature, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if title == "" {
		return nil, fmt.Errorf("feature title cannot be empty")
	}
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return nil, err
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, err
	}
	productID := ""
	if p != nil {
		productID = p.ID
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}

	created := feature.New(uuid.New().String(), productID, title)
	created.Description = description

	features = append(features, created)
	if err := s.repo.SaveFeatures(features); err != nil {
		return nil, err
	}

	return &created, s.audit.Log(events.TypeFeatureCreated, "feature", created.ID, actor, map[string]any{
		"title": title,
	})
}

// List returns all features.
func (s *FeatureService) List() ([]feature.Feature, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadFeatures()
}

// Get returns a single feature by ID.
func (s *FeatureService) Get(id string) (*feature.Feature, error) {
	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	for i := range features {
		if features[i].ID == id {
			return &features[i], nil
		}
	}
	return nil, ErrFeatureNotFound
}

// Transition fires an event (start, review, approve, reject, stop, reopen,
// cancel) against a feature's state machine.
func (s *FeatureService) Transition(actor, id, event string) (feature.Status, error) {
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return "", err
	}

	target, err := s.Get(id)
	if err != nil {
		return "", err
	}

	guard := func(featureID, ev string) bool {
		return authorize(s.repo, actor, org.ActionEditFeatures) == nil
	}
	fsm, err := feature.NewStateMachine(string(target.Status), id, guard)
	if err != nil {
		return "", err
	}

	if err := fsm.Transition(event); err != nil {
		return "", fmt.Errorf("cannot %s feature %s from %s (valid events: %v)",
			event, id, target.Status, fsm.ValidEvents())
	}

	next := fsm.CurrentStatus()
	if _, err := s.update(id, func(f *feature.Feature) error {
		f.Status = next
		return nil
	}); err != nil {
		return "", err
	}

	return next, s.audit.Log(events.TypeFeatureMoved, "feature", id, actor, map[string]any{
		"event":  event,
		"status": string(next),
	})
}

// AddTask appends a task to a feature. Effort may be nil for unestimated
// tasks.
func (s *FeatureService) AddTask(actor, featureID, title string, effort *int) (*feature.Task, error) {
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}
	if effort != nil && *effort < 0 {
		return nil, fmt.Errorf("task effort cannot be negative")
	}

	task := feature.Task{
		ID:     uuid.New().String(),
		Title:  title,
		Status: feature.StatusNew,
		Effort: effort,
	}
	if _, err := s.update(featureID, func(f *feature.Feature) error {
		f.Tasks = append(f.Tasks, task)
		return nil
	}); err != nil {
		return nil, err
	}
	return &task, nil
}

// MoveTask fires a transition event against a single task inside a feature.
func (s *FeatureService) MoveTask(actor, featureID, taskID, event string) (feature.Status, error) {
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return "", err
	}

	var next feature.Status
	_, err := s.update(featureID, func(f *feature.Feature) error {
		for i := range f.Tasks {
			if f.Tasks[i].ID != taskID {
				continue
			}
			moved, err := f.Tasks[i].Status.TransitionWith(event)
			if err != nil {
				return err
			}
			f.Tasks[i].Status = moved
			next = moved
			return nil
		}
		return fmt.Errorf("task not found: %s", taskID)
	})
	return next, err
}

// AssignTask sets the assignee of a task.
func (s *FeatureService) AssignTask(actor, featureID, taskID, assignee string) error {
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return err
	}
	_, err := s.update(featureID, func(f *feature.Feature) error {
		for i := range f.Tasks {
			if f.Tasks[i].ID == taskID {
				f.Tasks[i].Assignee = assignee
				return nil
			}
		}
		return fmt.Errorf("task not found: %s", taskID)
	})
	return err
}

// update loads the features, applies fn to the matching one, and saves.
func (s *FeatureService) update(id string, fn func(*feature.Feature) error) (*feature.Feature, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	for i := range features {
		if features[i].ID != id {
			continue
		}
		if err := fn(&features[i]); err != nil {
			return nil, err
		}
		features[i].UpdatedAt = time.Now()
		if err := s.repo.SaveFeatures(features); err != nil {
			return nil, err
		}
		return &features[i], nil
	}
	return nil, ErrFeatureNotFound
}
