package wiring

import (
	"testing"

	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/storage"
)

func TestNewWorkspaceProvidesRepoAndAudit(t *testing.T) {
	tempDir := t.TempDir()
	ws, err := NewWorkspace(tempDir)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	if ws.Repo == nil {
		t.Fatal("expected repository instance")
	}
	if ws.Audit == nil {
		t.Fatal("expected audit service instance")
	}
	if err := ws.Repo.Initialize(); err != nil {
		t.Fatalf("failed to initialize repo: %v", err)
	}
	if !ws.Repo.IsInitialized() {
		t.Fatal("expected repository to be initialized")
	}
	if err := ws.Audit.Log("test.workspace", "workspace", "w1", "tester", nil); err != nil {
		t.Fatalf("audit log failed: %v", err)
	}
}

func TestNewWorkspaceSubscribesNotifier(t *testing.T) {
	tempDir := t.TempDir()
	repo := storage.NewFilesystemRepository(tempDir)
	if err := repo.Initialize(); err != nil {
		t.Fatalf("initialize repo: %v", err)
	}
	endpoints := []events.WebhookEndpoint{
		{Name: "ci", URL: "https://example.invalid/hook", Enabled: true},
	}
	if err := repo.SaveWebhooks(endpoints); err != nil {
		t.Fatalf("save webhooks: %v", err)
	}

	ws, err := NewWorkspace(tempDir)
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	if ws.Notifier == nil {
		t.Fatal("expected notifier when webhooks are configured")
	}
}

func TestNewWorkspaceWithoutWebhooks(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}
	if ws.Notifier != nil {
		t.Fatal("expected nil notifier without webhook config")
	}
}
