package application_test

import (
	"errors"
	"testing"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/org"
)

func TestFeatureService_Create(t *testing.T) {
	repo := &MockRepo{Initialized: true}
	audit := &RecordingAudit{}
	svc := application.NewFeatureService(repo, audit)

	created, err := svc.Create("alice", "Search", "full text search")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Status != feature.StatusNew {
		t.Errorf("status = %s, want new", created.Status)
	}
	if !audit.Has(events.TypeFeatureCreated) {
		t.Error("feature.created event not recorded")
	}
}

func TestFeatureService_Transition(t *testing.T) {
	repo := &MockRepo{Initialized: true, Features: []feature.Feature{
		{ID: "f1", Status: feature.StatusNew},
	}}
	audit := &RecordingAudit{}
	svc := application.NewFeatureService(repo, audit)

	next, err := svc.Transition("alice", "f1", "start")
	if err != nil {
		t.Fatalf("Transition(start) error = %v", err)
	}
	if next != feature.StatusInProgress {
		t.Errorf("status = %s, want in_progress", next)
	}
	if repo.Features[0].Status != feature.StatusInProgress {
		t.Error("transition not persisted")
	}
	if !audit.Has(events.TypeFeatureMoved) {
		t.Error("feature.transitioned event not recorded")
	}
}

func TestFeatureService_TransitionInvalid(t *testing.T) {
	repo := &MockRepo{Initialized: true, Features: []feature.Feature{
		{ID: "f1", Status: feature.StatusNew},
	}}
	svc := application.NewFeatureService(repo, &RecordingAudit{})

	if _, err := svc.Transition("alice", "f1", "approve"); err == nil {
		t.Error("approve from new should be rejected")
	}
	if repo.Features[0].Status != feature.StatusNew {
		t.Error("rejected transition must not change status")
	}

	if _, err := svc.Transition("alice", "missing", "start"); !errors.Is(err, application.ErrFeatureNotFound) {
		t.Errorf("error = %v, want ErrFeatureNotFound", err)
	}
}

func TestFeatureService_TransitionDeniedByGuard(t *testing.T) {
	o := org.New("o1", "Acme", "alice")
	if err := o.AddMember("bob", org.RoleViewer); err != nil {
		t.Fatal(err)
	}
	repo := &MockRepo{Initialized: true, Org: &o, Features: []feature.Feature{
		{ID: "f1", Status: feature.StatusNew},
	}}
	svc := application.NewFeatureService(repo, &RecordingAudit{})

	if _, err := svc.Transition("bob", "f1", "start"); !errors.Is(err, org.ErrForbidden) {
		t.Errorf("viewer transition error = %v, want ErrForbidden", err)
	}
}

func TestFeatureService_Tasks(t *testing.T) {
	repo := &MockRepo{Initialized: true, Features: []feature.Feature{
		{ID: "f1", Status: feature.StatusInProgress},
	}}
	svc := application.NewFeatureService(repo, &RecordingAudit{})

	task, err := svc.AddTask("alice", "f1", "write handler", intPtr(3))
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if task.Status != feature.StatusNew || *task.Effort != 3 {
		t.Errorf("task = %+v", task)
	}

	if _, err := svc.AddTask("alice", "f1", "", nil); err == nil {
		t.Error("empty task title should be rejected")
	}
	negative := -1
	if _, err := svc.AddTask("alice", "f1", "x", &negative); err == nil {
		t.Error("negative effort should be rejected")
	}

	next, err := svc.MoveTask("alice", "f1", task.ID, "start")
	if err != nil {
		t.Fatalf("MoveTask() error = %v", err)
	}
	if next != feature.StatusInProgress {
		t.Errorf("task status = %s, want in_progress", next)
	}

	if _, err := svc.MoveTask("alice", "f1", "missing", "start"); err == nil {
		t.Error("unknown task should be rejected")
	}

	if err := svc.AssignTask("alice", "f1", task.ID, "bob"); err != nil {
		t.Fatalf("AssignTask() error = %v", err)
	}
	if repo.Features[0].Tasks[0].Assignee != "bob" {
		t.Error("assignee not persisted")
	}
}
