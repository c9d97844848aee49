package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/release"
)

// ReleaseService composes draft releases from eligible features and cuts
// them. Version suggestions follow the increment rules; a regression against
// the latest cut release is recorded as a warning, never rejected.
type ReleaseService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewReleaseService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *ReleaseService {
	return &ReleaseService{repo: repo, audit: audit}
}

// List returns all releases.
func (s *ReleaseService) List() ([]release.Release, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadReleases()
}

// Get returns a single release by ID.
func (s *ReleaseService) Get(id string) (*release.Release, error) {
	releases, err := s.repo.LoadReleases()
	if err != nil {
		return nil, err
	}
	for i := range releases {
		if releases[i].ID == id {
			return &releases[i], nil
		}
	}
	return nil, ErrReleaseNotFound
}

// LatestVersion returns the highest version among cut releases, or "0.0.0"
// when nothing has shipped.
func (s *ReleaseService) LatestVersion() (string, error) {
	releases, err := s.repo.LoadReleases()
	if err != nil {
		return "", err
	}
	latest := release.Version{}
	for _, r := range releases {
		if r.Status != release.StatusReleased {
			continue
		}
		if v := release.ParseVersion(r.Version); v.Compare(latest) > 0 {
			latest = v
		}
	}
	return latest.String(), nil
}

// SuggestVersion computes the next version for a release type from the
// latest cut release.
func (s *ReleaseService) SuggestVersion(t release.Type) (string, error) {
	if !s.repo.IsInitialized() {
		return "", ErrNotInitialized
	}
	current, err := s.LatestVersion()
	if err != nil {
		return "", err
	}
	return release.NextVersion(current, t), nil
}

// Eligible returns the features that can be pulled into a new release:
// unbound and at least started.
func (s *ReleaseService) Eligible() ([]feature.Feature, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	return release.EligibleFeatures(features), nil
}

// Compose creates a draft release from the given feature IDs. An empty
// featureIDs pulls in every eligible feature. The rollup is computed and
// returned alongside the draft.
func (s *ReleaseService) Compose(actor, version string, t release.Type, featureIDs []string) (*release.Release, *release.Rollup, error) {
	if err := authorize(s.repo, actor, org.ActionCutRelease); err != nil {
		return nil, nil, err
	}
	if !t.IsValid() {
		return nil, nil, fmt.Errorf("invalid release type: %s", t)
	}

	eligible, err := s.Eligible()
	if err != nil {
		return nil, nil, err
	}

	selected := eligible
	if len(featureIDs) > 0 {
		wanted := make(map[string]bool, len(featureIDs))
		for _, id := range featureIDs {
			wanted[id] = true
		}
		selected = selected[:0:0]
		for _, f := range eligible {
			if wanted[f.ID] {
				selected = append(selected, f)
				delete(wanted, f.ID)
			}
		}
		for id := range wanted {
			return nil, nil, fmt.Errorf("feature %s is not eligible for release", id)
		}
	}

	if version == "" {
		version, err = s.SuggestVersion(t)
		if err != nil {
			return nil, nil, err
		}
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, nil, err
	}
	productID := ""
	if p != nil {
		productID = p.ID
	}

	draft := release.New(uuid.New().String(), productID, version, t)
	for _, f := range selected {
		draft.FeatureIDs = append(draft.FeatureIDs, f.ID)
	}
	rollup := release.Compose(selected)

	releases, err := s.repo.LoadReleases()
	if err != nil {
		return nil, nil, err
	}
	releases = append(releases, draft)
	if err := s.repo.SaveReleases(releases); err != nil {
		return nil, nil, err
	}

	return &draft, &rollup, s.audit.Log(events.TypeReleaseComposed, "release", draft.ID, actor, map[string]any{
		"version":  version,
		"type":     string(t),
		"features": len(selected),
	})
}

// Cut marks a draft release as released and binds its features. Cutting a
// version at or below the latest released one records a regression warning
// event but still proceeds.
func (s *ReleaseService) Cut(actor, id string) (*release.Release, error) {
	if err := authorize(s.repo, actor, org.ActionCutRelease); err != nil {
		return nil, err
	}

	target, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if target.Status == release.StatusReleased {
		return nil, ErrReleaseAlreadyCut
	}

	latest, err := s.LatestVersion()
	if err != nil {
		return nil, err
	}
	if release.ParseVersion(target.Version).Compare(release.ParseVersion(latest)) <= 0 && latest != "0.0.0" {
		if err := s.audit.Log(events.TypeVersionRegressed, "release", id, actor, map[string]any{
			"version": target.Version,
			"latest":  latest,
		}); err != nil {
			return nil, err
		}
	}

	// Bind the features first so a failed save leaves the release a draft.
	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	inRelease := make(map[string]bool, len(target.FeatureIDs))
	for _, fid := range target.FeatureIDs {
		inRelease[fid] = true
	}
	for i := range features {
		if inRelease[features[i].ID] {
			rid := id
			features[i].ReleaseID = &rid
			features[i].UpdatedAt = time.Now()
		}
	}
	if err := s.repo.SaveFeatures(features); err != nil {
		return nil, err
	}

	releases, err := s.repo.LoadReleases()
	if err != nil {
		return nil, err
	}
	var cut *release.Release
	for i := range releases {
		if releases[i].ID == id {
			now := time.Now()
			releases[i].Status = release.StatusReleased
			releases[i].ReleasedAt = &now
			cut = &releases[i]
		}
	}
	if cut == nil {
		return nil, ErrReleaseNotFound
	}
	if err := s.repo.SaveReleases(releases); err != nil {
		return nil, err
	}

	return cut, s.audit.Log(events.TypeReleaseCut, "release", id, actor, map[string]any{
		"version":  cut.Version,
		"features": len(cut.FeatureIDs),
	})
}

// Rollup recomputes the rollup for an existing release from its bound
// features.
func (s *ReleaseService) Rollup(id string) (*release.Rollup, error) {
	target, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return nil, err
	}
	inRelease := make(map[string]bool, len(target.FeatureIDs))
	for _, fid := range target.FeatureIDs {
		inRelease[fid] = true
	}
	var selected []feature.Feature
	for _, f := range features {
		if inRelease[f.ID] {
			selected = append(selected, f)
		}
	}

	rollup := release.Compose(selected)
	return &rollup, nil
}
