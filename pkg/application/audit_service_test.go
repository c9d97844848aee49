package application_test

import (
	"testing"
	"time"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/storage"
)

func newAuditFixture(t *testing.T) (*application.AuditService, *storage.InMemoryEventPublisher) {
	t.Helper()
	store, err := storage.NewFileEventStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	pub := storage.NewInMemoryEventPublisher()
	return application.NewAuditService(store, pub), pub
}

func TestAuditService_LogAndTimeline(t *testing.T) {
	svc, pub := newAuditFixture(t)

	var published []string
	pub.Subscribe(func(e *events.BaseEvent) error {
		published = append(published, e.Type)
		return nil
	})

	if err := svc.Log(events.TypeIdeaCreated, "idea", "i1", "alice", map[string]any{"title": "Search"}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := svc.Log(events.TypeIdeaVoted, "idea", "i1", "bob", nil); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	timeline, err := svc.GetTimeline()
	if err != nil {
		t.Fatalf("GetTimeline() error = %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("timeline = %d events, want 2", len(timeline))
	}
	if timeline[1].PrevHash != timeline[0].Hash {
		t.Error("events are not hash chained")
	}
	if len(published) != 2 {
		t.Errorf("published = %v, want both events fanned out", published)
	}

	scoped, err := svc.GetTimelineFor("idea", "i1")
	if err != nil {
		t.Fatalf("GetTimelineFor() error = %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("scoped timeline = %d events, want 2", len(scoped))
	}

	violations, err := svc.VerifyIntegrity()
	if err != nil {
		t.Fatalf("VerifyIntegrity() error = %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v", violations)
	}
}

func TestAuditService_ScoringVelocity(t *testing.T) {
	svc, _ := newAuditFixture(t)

	velocity, err := svc.ScoringVelocity()
	if err != nil || velocity != 0 {
		t.Errorf("empty log velocity = %v, %v", velocity, err)
	}

	for range 3 {
		if err := svc.Log(events.TypeIdeaScored, "idea", "i1", "alice", nil); err != nil {
			t.Fatal(err)
		}
	}
	velocity, err = svc.ScoringVelocity()
	if err != nil {
		t.Fatalf("ScoringVelocity() error = %v", err)
	}
	if velocity != 3 {
		t.Errorf("velocity = %f, want 3 per day (floored at one day)", velocity)
	}

	since, err := svc.ActivitySince(time.Now().Add(-time.Minute))
	if err != nil || len(since) != 3 {
		t.Errorf("ActivitySince() = %d events, %v", len(since), err)
	}
}
