package application_test

import (
	"errors"
	"testing"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/prioritization"
)

func TestIdeaService_Create(t *testing.T) {
	repo := &MockRepo{Initialized: true}
	audit := &RecordingAudit{}
	svc := application.NewIdeaService(repo, audit)

	created, err := svc.Create("alice", "Dark mode", "Users keep asking")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Title != "Dark mode" || created.Status != idea.StatusOpen {
		t.Errorf("Create() = %+v", created)
	}
	if len(repo.Ideas) != 1 {
		t.Errorf("backlog size = %d, want 1", len(repo.Ideas))
	}
	if !audit.Has(events.TypeIdeaCreated) {
		t.Error("idea.created event not recorded")
	}
}

func TestIdeaService_CreateValidation(t *testing.T) {
	repo := &MockRepo{Initialized: true}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	if _, err := svc.Create("alice", "", ""); err == nil {
		t.Error("empty title should be rejected")
	}

	uninitialized := application.NewIdeaService(&MockRepo{}, &RecordingAudit{})
	if _, err := uninitialized.Create("alice", "x", ""); !errors.Is(err, application.ErrNotInitialized) {
		t.Errorf("error = %v, want ErrNotInitialized", err)
	}
}

func TestIdeaService_ScoreRICE(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	audit := &RecordingAudit{}
	svc := application.NewIdeaService(repo, audit)

	score, err := svc.ScoreRICE("alice", "i1", prioritization.RICEInputs{
		Reach: intPtr(500), Impact: intPtr(3), Confidence: intPtr(80), Effort: intPtr(4),
	})
	if err != nil {
		t.Fatalf("ScoreRICE() error = %v", err)
	}
	if score == nil || *score != 30000 {
		t.Errorf("score = %v, want 30000", score)
	}
	if !audit.Has(events.TypeIdeaScored) {
		t.Error("idea.scored event not recorded")
	}
}

func TestIdeaService_ScoreRICEZeroEffort(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	_, err := svc.ScoreRICE("alice", "i1", prioritization.RICEInputs{
		Reach: intPtr(500), Impact: intPtr(3), Confidence: intPtr(80), Effort: intPtr(0),
	})
	if !errors.Is(err, prioritization.ErrZeroEffort) {
		t.Errorf("error = %v, want ErrZeroEffort", err)
	}
	if repo.Ideas[0].RICE.Effort != nil {
		t.Error("rejected score must not be persisted")
	}
}

func TestIdeaService_PartialScoreIsNil(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	score, err := svc.ScoreRICE("alice", "i1", prioritization.RICEInputs{Reach: intPtr(500)})
	if err != nil {
		t.Fatalf("ScoreRICE() error = %v", err)
	}
	if score != nil {
		t.Errorf("partial inputs should yield no score, got %v", *score)
	}
	if repo.Ideas[0].RICE.Reach == nil {
		t.Error("partial inputs should still be persisted")
	}
}

func TestIdeaService_Vote(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	audit := &RecordingAudit{}
	svc := application.NewIdeaService(repo, audit)

	votes, err := svc.Vote("bob", "i1")
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if votes != 1 {
		t.Errorf("votes = %d, want 1", votes)
	}
	if _, err := svc.Vote("bob", "missing"); !errors.Is(err, application.ErrIdeaNotFound) {
		t.Errorf("error = %v, want ErrIdeaNotFound", err)
	}
}

func TestIdeaService_Promote(t *testing.T) {
	backlog := idea.New("i1", "p1", "Search")
	backlog.Status = idea.StatusPlanned
	backlog.Description = "full text search"
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{backlog}}
	audit := &RecordingAudit{}
	svc := application.NewIdeaService(repo, audit)

	promoted, err := svc.Promote("alice", "i1")
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if promoted.IdeaID != "i1" || promoted.Description != "full text search" {
		t.Errorf("Promote() = %+v", promoted)
	}
	if repo.Ideas[0].Status != idea.StatusPromoted {
		t.Errorf("idea status = %s, want promoted", repo.Ideas[0].Status)
	}
	if len(repo.Features) != 1 {
		t.Errorf("features = %d, want 1", len(repo.Features))
	}
	if !audit.Has(events.TypeIdeaPromoted) {
		t.Error("idea.promoted event not recorded")
	}
}

func TestIdeaService_PromoteWrongStatus(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	if _, err := svc.Promote("alice", "i1"); err == nil {
		t.Error("open ideas should not be promotable")
	}
}

func TestIdeaService_AuthorizationDenied(t *testing.T) {
	o := org.New("o1", "Acme", "alice")
	if err := o.AddMember("bob", org.RoleViewer); err != nil {
		t.Fatal(err)
	}
	repo := &MockRepo{Initialized: true, Org: &o, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	if _, err := svc.Create("bob", "x", ""); !errors.Is(err, org.ErrForbidden) {
		t.Errorf("viewer create error = %v, want ErrForbidden", err)
	}
	if _, err := svc.ScoreRICE("bob", "i1", prioritization.RICEInputs{}); !errors.Is(err, org.ErrForbidden) {
		t.Errorf("viewer score error = %v, want ErrForbidden", err)
	}
	// Viewers can still vote
	if _, err := svc.Vote("bob", "i1"); err != nil {
		t.Errorf("viewer vote error = %v", err)
	}
}

func TestIdeaService_Rank(t *testing.T) {
	low := idea.New("low", "p1", "Low")
	low.RICE = prioritization.RICEInputs{Reach: intPtr(10), Impact: intPtr(1), Confidence: intPtr(50), Effort: intPtr(5)}
	high := idea.New("high", "p1", "High")
	high.RICE = prioritization.RICEInputs{Reach: intPtr(1000), Impact: intPtr(3), Confidence: intPtr(80), Effort: intPtr(2)}
	unscored := idea.New("unscored", "p1", "Unscored")

	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{low, unscored, high}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	ranked, err := svc.Rank()
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if ranked[0].ID != "high" || ranked[1].ID != "low" || ranked[2].ID != "unscored" {
		ids := []string{ranked[0].ID, ranked[1].ID, ranked[2].ID}
		t.Errorf("rank order = %v", ids)
	}
}

func TestIdeaService_Archive(t *testing.T) {
	promoted := idea.New("i1", "p1", "Shipped")
	promoted.Status = idea.StatusPromoted
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{promoted}}
	svc := application.NewIdeaService(repo, &RecordingAudit{})

	if err := svc.Archive("alice", "i1"); err == nil {
		t.Error("promoted ideas should not be archivable")
	}
}
