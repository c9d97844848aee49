package application_test

import (
	"errors"
	"testing"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
)

func TestOrgService_InitWorkspace(t *testing.T) {
	repo := &MockRepo{}
	svc := application.NewOrgService(repo, &RecordingAudit{})

	p, err := svc.InitWorkspace("Acme", "Widgets", "widgets", "alice")
	if err != nil {
		t.Fatalf("InitWorkspace() error = %v", err)
	}
	if !repo.Initialized {
		t.Error("workspace not initialized")
	}
	if p.Lifecycle != product.LifecycleActive {
		t.Errorf("lifecycle = %s, want active", p.Lifecycle)
	}
	if repo.Org == nil || len(repo.Org.Members) != 1 || repo.Org.Members[0].Role != org.RoleOwner {
		t.Errorf("org = %+v", repo.Org)
	}

	if _, err := svc.InitWorkspace("Acme", "Widgets", "widgets", "alice"); err == nil {
		t.Error("double init should be rejected")
	}
}

func TestOrgService_Membership(t *testing.T) {
	o := org.New("o1", "Acme", "alice")
	repo := &MockRepo{Initialized: true, Org: &o}
	svc := application.NewOrgService(repo, &RecordingAudit{})

	if err := svc.AddMember("alice", "bob", org.RoleEditor); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if len(repo.Org.Members) != 2 {
		t.Errorf("members = %d, want 2", len(repo.Org.Members))
	}

	// Only owners manage the org
	if err := svc.AddMember("bob", "carol", org.RoleViewer); !errors.Is(err, org.ErrForbidden) {
		t.Errorf("editor add error = %v, want ErrForbidden", err)
	}
	if err := svc.AddMember("ghost", "carol", org.RoleViewer); !errors.Is(err, org.ErrNotAMember) {
		t.Errorf("outsider add error = %v, want ErrNotAMember", err)
	}

	if err := svc.RemoveMember("alice", "bob"); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	// The last owner cannot be removed
	if err := svc.RemoveMember("alice", "alice"); err == nil {
		t.Error("removing the last owner should be rejected")
	}
}

func TestOrgService_GetProduct(t *testing.T) {
	svc := application.NewOrgService(&MockRepo{Initialized: true}, &RecordingAudit{})
	if _, err := svc.GetProduct(); !errors.Is(err, application.ErrNoProduct) {
		t.Errorf("error = %v, want ErrNoProduct", err)
	}

	uninitialized := application.NewOrgService(&MockRepo{}, &RecordingAudit{})
	if _, err := uninitialized.GetOrg(); !errors.Is(err, application.ErrNotInitialized) {
		t.Errorf("error = %v, want ErrNotInitialized", err)
	}
}
