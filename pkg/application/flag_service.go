package application

import (
	"time"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/flag"
	"github.com/compasshq/compass/pkg/domain/org"
)

// FlagService manages feature flags and their staged rollouts.
type FlagService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewFlagService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *FlagService {
	return &FlagService{repo: repo, audit: audit}
}

// List returns all flags.
func (s *FlagService) List() ([]flag.Flag, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadFlags()
}

// Get returns a flag by key.
func (s *FlagService) Get(key string) (*flag.Flag, error) {
	flags, err := s.repo.LoadFlags()
	if err != nil {
		return nil, err
	}
	for i := range flags {
		if flags[i].Key == key {
			return &flags[i], nil
		}
	}
	return nil, ErrFlagNotFound
}

// Set creates or replaces a flag. Linking to a feature is optional.
func (s *FlagService) Set(actor string, f flag.Flag) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionManageFlags); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return err
	}
	if f.ProductID == "" && p != nil {
		f.ProductID = p.ID
	}
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	flags, err := s.repo.LoadFlags()
	if err != nil {
		return err
	}
	replaced := false
	for i := range flags {
		if flags[i].Key == f.Key {
			f.CreatedAt = flags[i].CreatedAt
			flags[i] = f
			replaced = true
		}
	}
	if !replaced {
		flags = append(flags, f)
	}
	return s.repo.SaveFlags(flags)
}

// Toggle flips a flag on or off.
func (s *FlagService) Toggle(actor, key string, enabled bool) error {
	if err := authorize(s.repo, actor, org.ActionManageFlags); err != nil {
		return err
	}
	if err := s.update(key, func(f *flag.Flag) {
		f.Enabled = enabled
	}); err != nil {
		return err
	}
	return s.audit.Log(events.TypeFlagToggled, "flag", key, actor, map[string]any{
		"enabled": enabled,
	})
}

// SetRollout sets the rollout percentage for one environment.
func (s *FlagService) SetRollout(actor, key, environment string, percentage int) error {
	if err := authorize(s.repo, actor, org.ActionManageFlags); err != nil {
		return err
	}

	target, err := s.Get(key)
	if err != nil {
		return err
	}
	candidate := *target
	candidate.Rollouts = append([]flag.Rollout(nil), target.Rollouts...)
	placed := false
	for i := range candidate.Rollouts {
		if candidate.Rollouts[i].Environment == environment {
			candidate.Rollouts[i].Percentage = percentage
			placed = true
		}
	}
	if !placed {
		candidate.Rollouts = append(candidate.Rollouts, flag.Rollout{Environment: environment, Percentage: percentage})
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	return s.update(key, func(f *flag.Flag) {
		f.Rollouts = candidate.Rollouts
	})
}

// Evaluate returns whether a flag is served to a subject in an environment.
func (s *FlagService) Evaluate(key, environment, subject string) (bool, error) {
	target, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return target.IsServed(environment, subject), nil
}

func (s *FlagService) update(key string, fn func(*flag.Flag)) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	flags, err := s.repo.LoadFlags()
	if err != nil {
		return err
	}
	for i := range flags {
		if flags[i].Key == key {
			fn(&flags[i])
			flags[i].UpdatedAt = time.Now()
			return s.repo.SaveFlags(flags)
		}
	}
	return ErrFlagNotFound
}
