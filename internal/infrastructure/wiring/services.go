package wiring

import (
	"github.com/compasshq/compass/pkg/application"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	Org       *application.OrgService
	Idea      *application.IdeaService
	Feature   *application.FeatureService
	Release   *application.ReleaseService
	Sprint    *application.SprintService
	Flag      *application.FlagService
	Interview *application.InterviewService
	Sunset    *application.SunsetService
	Export    *application.ExportService
	Import    *application.ImportService
	Sync      *application.SyncService
	Audit     *application.AuditService
}

// BuildAppServices constructs the full service set for a repo root.
func BuildAppServices(root string) (*AppServices, error) {
	workspace, err := NewWorkspace(root)
	if err != nil {
		return nil, err
	}

	// Create services in dependency order
	featureSvc := application.NewFeatureService(workspace.Repo, workspace.Audit)

	return &AppServices{
		Workspace: workspace,
		Org:       application.NewOrgService(workspace.Repo, workspace.Audit),
		Idea:      application.NewIdeaService(workspace.Repo, workspace.Audit),
		Feature:   featureSvc,
		Release:   application.NewReleaseService(workspace.Repo, workspace.Audit),
		Sprint:    application.NewSprintService(workspace.Repo, workspace.Audit),
		Flag:      application.NewFlagService(workspace.Repo, workspace.Audit),
		Interview: application.NewInterviewService(workspace.Repo, workspace.Audit),
		Sunset:    application.NewSunsetService(workspace.Repo, workspace.Audit),
		Export:    application.NewExportService(workspace.Repo, workspace.Audit),
		Import:    application.NewImportService(workspace.Repo, workspace.Audit),
		Sync:      application.NewSyncService(workspace.Repo, workspace.Audit, featureSvc),
		Audit:     workspace.Audit,
	}, nil
}
