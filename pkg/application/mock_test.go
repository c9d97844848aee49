package application_test

import (
	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/flag"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/interview"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/compasshq/compass/pkg/domain/sprint"
)

type MockRepo struct {
	Org          *org.Organization
	Product      *product.Product
	Ideas        []idea.Idea
	Features     []feature.Feature
	Releases     []release.Release
	Sprints      []sprint.Sprint
	Flags        []flag.Flag
	Interviews   []interview.Interview
	Sunset       *product.SunsetPlan
	Integrations []domain.IntegrationConfig
	Initialized  bool
	SaveError    error
	LoadError    error
}

func (m *MockRepo) Initialize() error   { m.Initialized = true; return nil }
func (m *MockRepo) IsInitialized() bool { return m.Initialized }

func (m *MockRepo) SaveOrg(o *org.Organization) error   { m.Org = o; return m.SaveError }
func (m *MockRepo) LoadOrg() (*org.Organization, error) { return m.Org, m.LoadError }

func (m *MockRepo) SaveProduct(p *product.Product) error   { m.Product = p; return m.SaveError }
func (m *MockRepo) LoadProduct() (*product.Product, error) { return m.Product, m.LoadError }

func (m *MockRepo) SaveIdeas(ideas []idea.Idea) error { m.Ideas = ideas; return m.SaveError }
func (m *MockRepo) LoadIdeas() ([]idea.Idea, error)   { return m.Ideas, m.LoadError }

func (m *MockRepo) SaveFeatures(features []feature.Feature) error {
	m.Features = features
	return m.SaveError
}
func (m *MockRepo) LoadFeatures() ([]feature.Feature, error) { return m.Features, m.LoadError }

func (m *MockRepo) SaveReleases(releases []release.Release) error {
	m.Releases = releases
	return m.SaveError
}
func (m *MockRepo) LoadReleases() ([]release.Release, error) { return m.Releases, m.LoadError }

func (m *MockRepo) SaveSprints(sprints []sprint.Sprint) error { m.Sprints = sprints; return m.SaveError }
func (m *MockRepo) LoadSprints() ([]sprint.Sprint, error)     { return m.Sprints, m.LoadError }

func (m *MockRepo) SaveFlags(flags []flag.Flag) error { m.Flags = flags; return m.SaveError }
func (m *MockRepo) LoadFlags() ([]flag.Flag, error)   { return m.Flags, m.LoadError }

func (m *MockRepo) SaveInterviews(interviews []interview.Interview) error {
	m.Interviews = interviews
	return m.SaveError
}
func (m *MockRepo) LoadInterviews() ([]interview.Interview, error) {
	return m.Interviews, m.LoadError
}

func (m *MockRepo) SaveSunsetPlan(plan *product.SunsetPlan) error { m.Sunset = plan; return m.SaveError }
func (m *MockRepo) LoadSunsetPlan() (*product.SunsetPlan, error)  { return m.Sunset, m.LoadError }

func (m *MockRepo) SaveIntegrations(configs []domain.IntegrationConfig) error {
	m.Integrations = configs
	return m.SaveError
}
func (m *MockRepo) LoadIntegrations() ([]domain.IntegrationConfig, error) {
	return m.Integrations, m.LoadError
}

type loggedEvent struct {
	Type        string
	AggregateID string
	Actor       string
	Metadata    map[string]any
}

// RecordingAudit captures audit calls for assertions.
type RecordingAudit struct {
	Events []loggedEvent
}

func (a *RecordingAudit) Log(eventType, aggregateType, aggregateID, actor string, metadata map[string]any) error {
	a.Events = append(a.Events, loggedEvent{
		Type:        eventType,
		AggregateID: aggregateID,
		Actor:       actor,
		Metadata:    metadata,
	})
	return nil
}

func (a *RecordingAudit) Has(eventType string) bool {
	for _, e := range a.Events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }
