// Package storage persists compass workspace artifacts under .compass/.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/flag"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/interview"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/compasshq/compass/pkg/domain/sprint"
)

const CompassDir = ".compass"
const OrgFile = "org.yaml"
const ProductFile = "product.yaml"
const IdeasFile = "ideas.json"
const FeaturesFile = "features.json"
const ReleasesFile = "releases.json"
const SprintsFile = "sprints.json"
const FlagsFile = "flags.yaml"
const InterviewsFile = "interviews.json"
const SunsetFile = "sunset.yaml"
const EventsFile = "events.jsonl"
const WebhooksFile = "webhooks.yaml"
const DeadLetterFile = "deadletters.jsonl"
const IntegrationsFile = "integrations.yaml"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .compass directory and prevents
// traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, CompassDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child.
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, CompassDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .compass directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, CompassDir))
	return err == nil
}

// saveYAML marshals v to YAML and writes it with restricted permissions.
func (r *FilesystemRepository) saveYAML(filename string, v any) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	return os.WriteFile(path, data, 0600)
}

// saveJSON marshals v to indented JSON and writes it with restricted
// permissions. Writes retry with backoff to ride out transient filesystem
// contention.
func (r *FilesystemRepository) saveJSON(filename string, v any) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	retryer := retry.New[struct{}](r.retryConfig)
	_, err = retryer.Do(context.Background(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, os.WriteFile(path, data, 0600)
	})
	return err
}

// loadFile reads a workspace file, returning (nil, nil) when it does not
// exist yet.
func (r *FilesystemRepository) loadFile(filename string) ([]byte, error) {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

func (r *FilesystemRepository) SaveOrg(o *org.Organization) error {
	return r.saveYAML(OrgFile, o)
}

func (r *FilesystemRepository) LoadOrg() (*org.Organization, error) {
	data, err := r.loadFile(OrgFile)
	if err != nil || data == nil {
		return nil, err
	}
	var o org.Organization
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to unmarshal org: %w", err)
	}
	return &o, nil
}

func (r *FilesystemRepository) SaveProduct(p *product.Product) error {
	return r.saveYAML(ProductFile, p)
}

func (r *FilesystemRepository) LoadProduct() (*product.Product, error) {
	data, err := r.loadFile(ProductFile)
	if err != nil || data == nil {
		return nil, err
	}
	var p product.Product
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &p, nil
}

func (r *FilesystemRepository) SaveIdeas(ideas []idea.Idea) error {
	return r.saveJSON(IdeasFile, ideas)
}

func (r *FilesystemRepository) LoadIdeas() ([]idea.Idea, error) {
	data, err := r.loadFile(IdeasFile)
	if err != nil || data == nil {
		return nil, err
	}
	var ideas []idea.Idea
	if err := json.Unmarshal(data, &ideas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ideas: %w", err)
	}
	return ideas, nil
}

func (r *FilesystemRepository) SaveFeatures(features []feature.Feature) error {
	return r.saveJSON(FeaturesFile, features)
}

func (r *FilesystemRepository) LoadFeatures() ([]feature.Feature, error) {
	data, err := r.loadFile(FeaturesFile)
	if err != nil || data == nil {
		return nil, err
	}
	var features []feature.Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("failed to unmarshal features: %w", err)
	}
	return features, nil
}

func (r *FilesystemRepository) SaveReleases(releases []release.Release) error {
	return r.saveJSON(ReleasesFile, releases)
}

func (r *FilesystemRepository) LoadReleases() ([]release.Release, error) {
	data, err := r.loadFile(ReleasesFile)
	if err != nil || data == nil {
		return nil, err
	}
	var releases []release.Release
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal releases: %w", err)
	}
	return releases, nil
}

func (r *FilesystemRepository) SaveSprints(sprints []sprint.Sprint) error {
	return r.saveJSON(SprintsFile, sprints)
}

func (r *FilesystemRepository) LoadSprints() ([]sprint.Sprint, error) {
	data, err := r.loadFile(SprintsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var sprints []sprint.Sprint
	if err := json.Unmarshal(data, &sprints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sprints: %w", err)
	}
	return sprints, nil
}

func (r *FilesystemRepository) SaveFlags(flags []flag.Flag) error {
	return r.saveYAML(FlagsFile, flags)
}

func (r *FilesystemRepository) LoadFlags() ([]flag.Flag, error) {
	data, err := r.loadFile(FlagsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var flags []flag.Flag
	if err := yaml.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
	}
	return flags, nil
}

func (r *FilesystemRepository) SaveInterviews(interviews []interview.Interview) error {
	return r.saveJSON(InterviewsFile, interviews)
}

func (r *FilesystemRepository) LoadInterviews() ([]interview.Interview, error) {
	data, err := r.loadFile(InterviewsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var interviews []interview.Interview
	if err := json.Unmarshal(data, &interviews); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interviews: %w", err)
	}
	return interviews, nil
}

func (r *FilesystemRepository) SaveSunsetPlan(plan *product.SunsetPlan) error {
	return r.saveYAML(SunsetFile, plan)
}

func (r *FilesystemRepository) LoadSunsetPlan() (*product.SunsetPlan, error) {
	data, err := r.loadFile(SunsetFile)
	if err != nil || data == nil {
		return nil, err
	}
	var plan product.SunsetPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sunset plan: %w", err)
	}
	return &plan, nil
}

// SaveWebhooks persists the outgoing webhook endpoints.
func (r *FilesystemRepository) SaveWebhooks(endpoints []events.WebhookEndpoint) error {
	return r.saveYAML(WebhooksFile, endpoints)
}

// LoadWebhooks returns the configured outgoing webhook endpoints.
func (r *FilesystemRepository) LoadWebhooks() ([]events.WebhookEndpoint, error) {
	data, err := r.loadFile(WebhooksFile)
	if err != nil || data == nil {
		return nil, err
	}
	var endpoints []events.WebhookEndpoint
	if err := yaml.Unmarshal(data, &endpoints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhooks: %w", err)
	}
	return endpoints, nil
}

// SaveIntegrations persists the integration plugin configuration.
func (r *FilesystemRepository) SaveIntegrations(configs []domain.IntegrationConfig) error {
	return r.saveYAML(IntegrationsFile, configs)
}

// LoadIntegrations returns the configured integration plugins.
func (r *FilesystemRepository) LoadIntegrations() ([]domain.IntegrationConfig, error) {
	data, err := r.loadFile(IntegrationsFile)
	if err != nil || data == nil {
		return nil, err
	}
	var configs []domain.IntegrationConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal integrations: %w", err)
	}
	return configs, nil
}
