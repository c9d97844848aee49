package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
)

func sunsetFixture(t *testing.T) (*MockRepo, *RecordingAudit, *application.SunsetService) {
	t.Helper()
	p := product.New("p1", "o1", "Widgets", "widgets")
	repo := &MockRepo{Initialized: true, Product: &p}
	audit := &RecordingAudit{}
	return repo, audit, application.NewSunsetService(repo, audit)
}

func TestSunsetService_Declare(t *testing.T) {
	repo, audit, svc := sunsetFixture(t)

	err := svc.Declare("alice", product.SunsetPlan{
		Reason:      "replaced by Widgets 2",
		EndOfLifeAt: time.Now().AddDate(0, 6, 0),
		Milestones: []product.Milestone{
			{Name: "notify customers", DueAt: time.Now().AddDate(0, 1, 0)},
		},
	})
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	if repo.Product.Lifecycle != product.LifecycleSunsetting {
		t.Errorf("lifecycle = %s, want sunsetting", repo.Product.Lifecycle)
	}
	if repo.Sunset == nil || repo.Sunset.ProductID != "p1" {
		t.Errorf("plan = %+v", repo.Sunset)
	}
	if !audit.Has(events.TypeSunsetDeclared) {
		t.Error("sunset.declared event not recorded")
	}
}

func TestSunsetService_DeclareValidation(t *testing.T) {
	_, _, svc := sunsetFixture(t)

	if err := svc.Declare("alice", product.SunsetPlan{}); err == nil {
		t.Error("plan without end of life date should be rejected")
	}
	err := svc.Declare("alice", product.SunsetPlan{
		AnnouncedAt: time.Now(),
		EndOfLifeAt: time.Now().AddDate(0, 0, -1),
	})
	if err == nil {
		t.Error("end of life before announcement should be rejected")
	}
}

func TestSunsetService_DeclareRequiresAdmin(t *testing.T) {
	repo, _, svc := sunsetFixture(t)
	o := org.New("o1", "Acme", "alice")
	if err := o.AddMember("eve", org.RoleEditor); err != nil {
		t.Fatal(err)
	}
	repo.Org = &o

	err := svc.Declare("eve", product.SunsetPlan{EndOfLifeAt: time.Now().AddDate(1, 0, 0)})
	if !errors.Is(err, org.ErrForbidden) {
		t.Errorf("editor declare error = %v, want ErrForbidden", err)
	}
}

func TestSunsetService_MilestonesAndRetire(t *testing.T) {
	repo, _, svc := sunsetFixture(t)
	repo.Sunset = &product.SunsetPlan{
		ProductID:   "p1",
		AnnouncedAt: time.Now().AddDate(0, -7, 0),
		EndOfLifeAt: time.Now().AddDate(0, -1, 0),
		Milestones:  []product.Milestone{{Name: "final shutdown"}},
	}

	if err := svc.CompleteMilestone("alice", "final shutdown"); err != nil {
		t.Fatalf("CompleteMilestone() error = %v", err)
	}
	if !repo.Sunset.Milestones[0].Done {
		t.Error("milestone not marked done")
	}
	if err := svc.CompleteMilestone("alice", "ghost"); err == nil {
		t.Error("unknown milestone should be rejected")
	}

	if err := svc.Retire("alice"); err != nil {
		t.Fatalf("Retire() error = %v", err)
	}
	if repo.Product.Lifecycle != product.LifecycleRetired {
		t.Errorf("lifecycle = %s, want retired", repo.Product.Lifecycle)
	}
}

func TestSunsetService_RetireBeforeEOL(t *testing.T) {
	repo, _, svc := sunsetFixture(t)
	repo.Sunset = &product.SunsetPlan{
		ProductID:   "p1",
		AnnouncedAt: time.Now(),
		EndOfLifeAt: time.Now().AddDate(1, 0, 0),
	}

	if err := svc.Retire("alice"); err == nil {
		t.Error("retiring before the end of life date should be rejected")
	}
}
