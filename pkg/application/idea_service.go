package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/prioritization"
)

// IdeaService manages the idea backlog: capture, scoring, voting, ranking,
// and promotion into features.
type IdeaService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewIdeaService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *IdeaService {
	return &IdeaService{repo: repo, audit: audit}
}

// Create captures a new idea in the backlog.
func (s *IdeaService) Create(actor, title, description string) (*idea.Idea, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if title == "" {
		return nil, fmt.Errorf("idea title cannot be empty")
	}
	if err := authorize(s.repo, actor, org.ActionEditIdeas); err != nil {
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

	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return nil, err
	}

	created := idea.New(uuid.New().String(), productID, title)
	created.Description = description
	created.SubmittedBy = actor

	ideas = append(ideas, created)
	if err := s.repo.SaveIdeas(ideas); err != nil {
		return nil, err
	}

	return &created, s.audit.Log(events.TypeIdeaCreated, "idea", created.ID, actor, map[string]any{
		"title": title,
	})
}

// List returns all ideas, unranked.
func (s *IdeaService) List() ([]idea.Idea, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadIdeas()
}

// Get returns a single idea by ID.
func (s *IdeaService) Get(id string) (*idea.Idea, error) {
	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID == id {
			return &ideas[i], nil
		}
	}
	return nil, ErrIdeaNotFound
}

// ScoreRICE records RICE sub-scores for an idea and returns its computed
// score. A zero effort is rejected before anything is persisted.
func (s *IdeaService) ScoreRICE(actor, id string, inputs prioritization.RICEInputs) (*float64, error) {
	if err := authorize(s.repo, actor, org.ActionScoreIdeas); err != nil {
		return nil, err
	}

	score, err := prioritization.ComputeRICE(inputs)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(id, func(i *idea.Idea) error {
		i.RICE = inputs
		return nil
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{"complete": inputs.Complete()}
	if score != nil {
		metadata["rice"] = *score
	}
	return score, s.audit.Log(events.TypeIdeaScored, "idea", updated.ID, actor, metadata)
}

// ScoreWSJF records WSJF inputs for an idea and returns its computed score.
func (s *IdeaService) ScoreWSJF(actor, id string, inputs prioritization.WSJFInputs) (*float64, error) {
	if err := authorize(s.repo, actor, org.ActionScoreIdeas); err != nil {
		return nil, err
	}

	score, err := prioritization.ComputeWSJF(inputs)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(id, func(i *idea.Idea) error {
		i.WSJF = inputs
		return nil
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{"method": "wsjf"}
	if score != nil {
		metadata["wsjf"] = *score
	}
	return score, s.audit.Log(events.TypeIdeaScored, "idea", updated.ID, actor, metadata)
}

// SetPriority sets the manual priority facet of an idea. It never touches
// the RICE facet.
func (s *IdeaService) SetPriority(actor, id string, priority prioritization.Priority) error {
	if err := authorize(s.repo, actor, org.ActionScoreIdeas); err != nil {
		return err
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	_, err := s.update(id, func(i *idea.Idea) error {
		i.Priority = priority
		return nil
	})
	return err
}

// Vote adds one vote to an idea.
func (s *IdeaService) Vote(actor, id string) (int, error) {
	if err := authorize(s.repo, actor, org.ActionView); err != nil {
		return 0, err
	}
	updated, err := s.update(id, func(i *idea.Idea) error {
		i.Votes++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated.Votes, s.audit.Log(events.TypeIdeaVoted, "idea", id, actor, map[string]any{
		"votes": updated.Votes,
	})
}

// Rank returns the backlog ordered by RICE score with the documented
// tie-breaks applied.
func (s *IdeaService) Rank() ([]idea.Idea, error) {
	ideas, err := s.List()
	if err != nil {
		return nil, err
	}
	return idea.Rank(ideas), nil
}

// Promote converts an idea into a feature. The idea must be under review or
// planned; the resulting feature starts in the new status and carries the
// idea's title and description.
func (s *IdeaService) Promote(actor, id string) (*feature.Feature, error) {
	if err := authorize(s.repo, actor, org.ActionPromoteIdea); err != nil {
		return nil, err
	}

	target, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !target.Status.CanPromote() {
		return nil, fmt.Errorf("idea %s cannot be promoted from status %s", id, target.Status)
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}

	promoted := feature.New(uuid.New().String(), target.ProductID, target.Title)
	promoted.Description = target.Description
	promoted.IdeaID = target.ID

	features = append(features, promoted)
	if err := s.repo.SaveFeatures(features); err != nil {
		return nil, err
	}

	if _, err := s.update(id, func(i *idea.Idea) error {
		i.Status = idea.StatusPromoted
		return nil
	}); err != nil {
		return nil, err
	}

	return &promoted, s.audit.Log(events.TypeIdeaPromoted, "idea", id, actor, map[string]any{
		"feature_id": promoted.ID,
	})
}

// Archive moves an idea to the archived status.
func (s *IdeaService) Archive(actor, id string) error {
	if err := authorize(s.repo, actor, org.ActionEditIdeas); err != nil {
		return err
	}
	_, err := s.update(id, func(i *idea.Idea) error {
		if i.Status == idea.StatusPromoted {
			return errors.New("promoted ideas cannot be archived")
		}
		i.Status = idea.StatusArchived
		return nil
	})
	return err
}

// SetStatus moves an idea to an arbitrary backlog status.
func (s *IdeaService) SetStatus(actor, id string, status idea.Status) error {
	if err := authorize(s.repo, actor, org.ActionEditIdeas); err != nil {
		return err
	}
	_, err := s.update(id, func(i *idea.Idea) error {
		i.Status = status
		return nil
	})
	return err
}

// update loads the backlog, applies fn to the matching idea, and saves.
func (s *IdeaService) update(id string, fn func(*idea.Idea) error) (*idea.Idea, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID != id {
			continue
		}
		if err := fn(&ideas[i]); err != nil {
			return nil, err
		}
		ideas[i].UpdatedAt = time.Now()
		if err := s.repo.SaveIdeas(ideas); err != nil {
			return nil, err
		}
		return &ideas[i], nil
	}
	return nil, ErrIdeaNotFound
}
