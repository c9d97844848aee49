// Package wiring constructs the application services with their
// infrastructure dependencies for a workspace root.
package wiring

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/compasshq/compass/internal/infrastructure/webhook"
	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo       *storage.FilesystemRepository
	EventStore *storage.FileEventStore
	Publisher  *storage.InMemoryEventPublisher
	Audit      *application.AuditService
	Notifier   *webhook.Notifier
}

// NewWorkspace builds the storage and event plumbing for a workspace root.
// When webhook endpoints are configured, deliveries are subscribed to the
// event publisher so every audited event fans out to them.
func NewWorkspace(root string) (*Workspace, error) {
	repo := storage.NewFilesystemRepository(root)

	store, err := storage.NewFileEventStore(filepath.Join(root, storage.CompassDir))
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	publisher := storage.NewInMemoryEventPublisher()

	var notifier *webhook.Notifier
	if endpoints, err := repo.LoadWebhooks(); err == nil && len(endpoints) > 0 {
		dlPath := filepath.Join(root, storage.CompassDir, storage.DeadLetterFile)
		notifier = webhook.NewNotifier(endpoints, webhook.NewDeadLetterStore(dlPath))
		publisher.Subscribe(func(event *events.BaseEvent) error {
			notifier.Notify(context.Background(), event)
			return nil
		})
	}

	return &Workspace{
		Repo:       repo,
		EventStore: store,
		Publisher:  publisher,
		Audit:      application.NewAuditService(store, publisher),
		Notifier:   notifier,
	}, nil
}
