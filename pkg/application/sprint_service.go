package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/sprint"
)

// SprintService manages sprint planning and velocity analytics.
type SprintService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewSprintService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *SprintService {
	return &SprintService{repo: repo, audit: audit}
}

// Start creates a sprint over the given window with a point capacity.
func (s *SprintService) Start(actor, name, goal string, startsAt, endsAt time.Time, capacity int) (*sprint.Sprint, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return nil, err
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("sprint end must be after start")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("sprint capacity cannot be negative")
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, err
	}
	productID := ""
	if p != nil {
		productID = p.ID
	}

	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, err
	}

	created := sprint.Sprint{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      name,
		Goal:      goal,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Capacity:  capacity,
	}
	sprints = append(sprints, created)
	if err := s.repo.SaveSprints(sprints); err != nil {
		return nil, err
	}

	return &created, s.audit.Log(events.TypeSprintStarted, "sprint", created.ID, actor, map[string]any{
		"name":     name,
		"capacity": capacity,
	})
}

// List returns all sprints.
func (s *SprintService) List() ([]sprint.Sprint, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadSprints()
}

// Get returns a sprint by ID.
func (s *SprintService) Get(id string) (*sprint.Sprint, error) {
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, err
	}
	for i := range sprints {
		if sprints[i].ID == id {
			return &sprints[i], nil
		}
	}
	return nil, ErrSprintNotFound
}

// Active returns the sprint whose window contains now, or ErrNoActiveSprint.
func (s *SprintService) Active(now time.Time) (*sprint.Sprint, error) {
	sprints, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range sprints {
		if sprints[i].IsActive(now) {
			return &sprints[i], nil
		}
	}
	return nil, ErrNoActiveSprint
}

// Commit adds a feature to a sprint.
func (s *SprintService) Commit(actor, sprintID, featureID string) error {
	if err := authorize(s.repo, actor, org.ActionEditFeatures); err != nil {
		return err
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return err
	}
	found := false
	for i := range features {
		if features[i].ID == featureID {
			sid := sprintID
			features[i].SprintID = &sid
			features[i].UpdatedAt = time.Now()
			found = true
		}
	}
	if !found {
		return ErrFeatureNotFound
	}

	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return err
	}
	committed := false
	for i := range sprints {
		if sprints[i].ID != sprintID {
			continue
		}
		for _, fid := range sprints[i].FeatureIDs {
			if fid == featureID {
				return nil // already committed
			}
		}
		sprints[i].FeatureIDs = append(sprints[i].FeatureIDs, featureID)
		committed = true
	}
	if !committed {
		return ErrSprintNotFound
	}

	if err := s.repo.SaveFeatures(features); err != nil {
		return err
	}
	return s.repo.SaveSprints(sprints)
}

// Progress measures a sprint against the features committed to it.
func (s *SprintService) Progress(id string) (*sprint.Progress, error) {
	target, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	inSprint := make(map[string]bool, len(target.FeatureIDs))
	for _, fid := range target.FeatureIDs {
		inSprint[fid] = true
	}
	committed := features[:0:0]
	for _, f := range features {
		if inSprint[f.ID] {
			committed = append(committed, f)
		}
	}

	progress := target.Measure(committed)
	return &progress, nil
}

// Velocity computes velocity statistics over completed points of past
// sprints, oldest first.
func (s *SprintService) Velocity() (*sprint.VelocityStats, error) {
	sprints, err := s.List()
	if err != nil {
		return nil, err
	}

	var samples []int
	now := time.Now()
	for _, sp := range sprints {
		if sp.EndsAt.After(now) {
			continue // still running
		}
		progress, err := s.Progress(sp.ID)
		if err != nil {
			return nil, err
		}
		samples = append(samples, progress.CompletedPoints)
	}

	stats := sprint.Velocity(samples)
	return &stats, nil
}
