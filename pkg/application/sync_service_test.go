package application_test

import (
	"testing"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain"
)

func TestSyncService_Configure(t *testing.T) {
	repo := &MockRepo{Initialized: true}
	svc := application.NewSyncService(repo, &RecordingAudit{}, nil)

	cfg := domain.IntegrationConfig{
		Name:     "github",
		Binary:   "compass-plugin-github",
		Enabled:  true,
		Settings: map[string]string{"repo": "acme/widgets"},
	}
	if err := svc.Configure(cfg); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	cfg.Settings["repo"] = "acme/gadgets"
	if err := svc.Configure(cfg); err != nil {
		t.Fatalf("Configure() update error = %v", err)
	}
	configs, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(configs) != 1 || configs[0].Settings["repo"] != "acme/gadgets" {
		t.Errorf("configs = %+v", configs)
	}
}

func TestSyncService_ConfigureValidation(t *testing.T) {
	svc := application.NewSyncService(&MockRepo{Initialized: true}, &RecordingAudit{}, nil)

	if err := svc.Configure(domain.IntegrationConfig{Binary: "x"}); err == nil {
		t.Error("missing name should be rejected")
	}
	if err := svc.Configure(domain.IntegrationConfig{Name: "x"}); err == nil {
		t.Error("missing binary should be rejected")
	}
}

func TestSyncService_RunUnknownIntegration(t *testing.T) {
	svc := application.NewSyncService(&MockRepo{Initialized: true}, &RecordingAudit{}, nil)

	if _, err := svc.Run("alice", "ghost"); err == nil {
		t.Error("unknown integration should be rejected")
	}
}

func TestSyncService_RunDisabledIntegration(t *testing.T) {
	repo := &MockRepo{Initialized: true, Integrations: []domain.IntegrationConfig{
		{Name: "jira", Binary: "compass-plugin-jira", Enabled: false},
	}}
	svc := application.NewSyncService(repo, &RecordingAudit{}, nil)

	if _, err := svc.Run("alice", "jira"); err == nil {
		t.Error("disabled integration should be rejected")
	}
}
