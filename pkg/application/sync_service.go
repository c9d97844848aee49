package application

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/plugin"
)

// SyncService runs configured integration connectors and applies their
// results to the workspace.
type SyncService struct {
	repo       domain.WorkspaceRepository
	audit      domain.AuditLogger
	featureSvc *FeatureService
}

func NewSyncService(repo domain.WorkspaceRepository, audit domain.AuditLogger, featureSvc *FeatureService) *SyncService {
	return &SyncService{repo: repo, audit: audit, featureSvc: featureSvc}
}

// Run loads a named integration from integrations.yaml, executes its plugin
// binary, and applies the sync result. It returns a human-readable line per
// applied change.
func (s *SyncService) Run(actor, name string) ([]string, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}

	configs, err := s.repo.LoadIntegrations()
	if err != nil {
		return nil, err
	}
	var cfg *domain.IntegrationConfig
	for i := range configs {
		if configs[i].Name == name {
			cfg = &configs[i]
		}
	}
	if cfg == nil {
		return nil, fmt.Errorf("integration not configured: %s", name)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("integration is disabled: %s", name)
	}

	loader := plugin.NewLoader()
	defer loader.Cleanup()

	connector, err := loader.Load(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin: %w", err)
	}
	if err := connector.Init(cfg.Settings); err != nil {
		return nil, fmt.Errorf("failed to initialize plugin: %w", err)
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return nil, err
	}

	result, err := connector.Sync(features, ideas)
	if err != nil {
		return nil, fmt.Errorf("failed to sync: %w", err)
	}

	var lines []string

	// 1. Status updates coming back from the tracker
	for id, status := range result.StatusUpdates {
		var event string
		switch status {
		case feature.StatusInProgress:
			event = "start"
		case feature.StatusInReview:
			event = "review"
		case feature.StatusDone:
			event = "approve"
		case feature.StatusCancelled:
			event = "cancel"
		}
		if event == "" {
			continue
		}
		if _, err := s.featureSvc.Transition(actor, id, event); err != nil {
			lines = append(lines, fmt.Sprintf("Feature %s: skip (%v)", id, err))
		} else {
			lines = append(lines, fmt.Sprintf("Feature %s: %s", id, status))
		}
	}

	// 2. External issue links discovered during sync
	for id, ref := range result.LinkUpdates {
		lines = append(lines, fmt.Sprintf("Feature %s: linked to %s %s (%s)", id, ref.Provider, ref.ID, ref.URL))
	}

	// 3. Externally filed requests become idea candidates
	if len(result.NewIdeas) > 0 {
		existing, err := s.repo.LoadIdeas()
		if err != nil {
			return nil, err
		}
		for _, incoming := range result.NewIdeas {
			candidate := idea.New(uuid.New().String(), incoming.ProductID, incoming.Title)
			candidate.Description = incoming.Description
			candidate.SubmittedBy = name
			existing = append(existing, candidate)
			lines = append(lines, fmt.Sprintf("Idea imported: %s", incoming.Title))
		}
		if err := s.repo.SaveIdeas(existing); err != nil {
			return nil, err
		}
	}

	for _, e := range result.Errors {
		lines = append(lines, fmt.Sprintf("Plugin error: %s", e))
	}

	return lines, s.audit.Log(events.TypeSyncRun, "integration", name, actor, map[string]any{
		"changes": len(lines),
		"errors":  len(result.Errors),
	})
}

// Configure adds or updates an integration entry.
func (s *SyncService) Configure(cfg domain.IntegrationConfig) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if cfg.Name == "" {
		return fmt.Errorf("integration name cannot be empty")
	}
	if cfg.Binary == "" {
		return fmt.Errorf("integration binary cannot be empty")
	}

	configs, err := s.repo.LoadIntegrations()
	if err != nil {
		return err
	}
	replaced := false
	for i := range configs {
		if configs[i].Name == cfg.Name {
			configs[i] = cfg
			replaced = true
		}
	}
	if !replaced {
		configs = append(configs, cfg)
	}
	return s.repo.SaveIntegrations(configs)
}

// List returns the configured integrations.
func (s *SyncService) List() ([]domain.IntegrationConfig, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadIntegrations()
}
