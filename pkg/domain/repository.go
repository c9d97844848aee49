// Package domain holds the workspace repository contract shared by all
// application services.
package domain

import (
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/flag"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/interview"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/compasshq/compass/pkg/domain/sprint"
)

// WorkspaceRepository handles the persistence of compass artifacts in the
// .compass/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool

	SaveOrg(o *org.Organization) error
	LoadOrg() (*org.Organization, error)

	SaveProduct(p *product.Product) error
	LoadProduct() (*product.Product, error)

	SaveIdeas(ideas []idea.Idea) error
	LoadIdeas() ([]idea.Idea, error)

	SaveFeatures(features []feature.Feature) error
	LoadFeatures() ([]feature.Feature, error)

	SaveReleases(releases []release.Release) error
	LoadReleases() ([]release.Release, error)

	SaveSprints(sprints []sprint.Sprint) error
	LoadSprints() ([]sprint.Sprint, error)

	SaveFlags(flags []flag.Flag) error
	LoadFlags() ([]flag.Flag, error)

	SaveInterviews(interviews []interview.Interview) error
	LoadInterviews() ([]interview.Interview, error)

	SaveSunsetPlan(plan *product.SunsetPlan) error
	LoadSunsetPlan() (*product.SunsetPlan, error)

	SaveIntegrations(configs []IntegrationConfig) error
	LoadIntegrations() ([]IntegrationConfig, error)
}

// AuditLogger records who did what. Implementations append to the event
// store; services call it before mutating state.
type AuditLogger interface {
	Log(eventType, aggregateType, aggregateID, actor string, metadata map[string]any) error
}

// IntegrationConfig is the serialized representation of integrations.yaml.
type IntegrationConfig struct {
	Name     string            `yaml:"name"`
	Binary   string            `yaml:"binary"`
	Enabled  bool              `yaml:"enabled"`
	Settings map[string]string `yaml:"settings,omitempty"`
}
