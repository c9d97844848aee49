package mcp

import (
	"context"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(t.TempDir())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if _, err := server.orgSvc.InitWorkspace("Acme", "Rocket", "rocket", "alice"); err != nil {
		t.Fatalf("init workspace: %v", err)
	}
	return server
}

func TestServerHandlersExercise(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	created, err := server.handleCreateIdea(ctx, CreateIdeaArgs{Title: "Faster onboarding", Actor: "alice"})
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}
	ideas, err := server.ideaSvc.List()
	if err != nil || len(ideas) != 1 {
		t.Fatalf("expected 1 idea, got %d (err %v)", len(ideas), err)
	}
	_ = created
	ideaID := ideas[0].ID

	msg, err := server.handleScoreIdea(ctx, ScoreIdeaArgs{
		IdeaID: ideaID, Reach: 5, Impact: 3, Confidence: 4, Effort: 4, Actor: "alice",
	})
	if err != nil {
		t.Fatalf("score idea: %v", err)
	}
	if !strings.Contains(msg, "15.0") {
		t.Errorf("score message = %q", msg)
	}

	ranked, err := server.handleRankIdeas(ctx, struct{}{})
	if err != nil {
		t.Fatalf("rank ideas: %v", err)
	}
	if ranked == nil {
		t.Fatal("expected ranked ideas")
	}

	version, err := server.handleSuggestVersion(ctx, SuggestVersionArgs{Type: "minor"})
	if err != nil {
		t.Fatalf("suggest version: %v", err)
	}
	if version != "0.1.0" {
		t.Errorf("suggested version = %q, want 0.1.0", version)
	}

	status, err := server.handleStatus(ctx, struct{}{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	summary, ok := status.(statusSummary)
	if !ok {
		t.Fatalf("status type = %T", status)
	}
	if summary.Ideas != 1 || summary.ScoredIdeas != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ActiveSprint != "" {
		t.Errorf("active sprint = %q, want empty when none is running", summary.ActiveSprint)
	}
}

func TestServerStatusWithoutActiveSprint(t *testing.T) {
	server := newTestServer(t)

	status, err := server.handleStatus(context.Background(), struct{}{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	summary, ok := status.(statusSummary)
	if !ok {
		t.Fatalf("status type = %T", status)
	}
	if summary.ActiveSprint != "" {
		t.Errorf("active sprint = %q, want empty", summary.ActiveSprint)
	}
}

func TestServerScoreIdeaRejectsZeroEffort(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	if _, err := server.handleCreateIdea(ctx, CreateIdeaArgs{Title: "Risky bet", Actor: "alice"}); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	ideas, _ := server.ideaSvc.List()

	_, err := server.handleScoreIdea(ctx, ScoreIdeaArgs{
		IdeaID: ideas[0].ID, Reach: 3, Impact: 2, Confidence: 4, Effort: 0, Actor: "alice",
	})
	if err == nil {
		t.Fatal("expected error for zero effort")
	}
}

func TestServerScoreIdeaRejectsOutOfRange(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	if _, err := server.handleCreateIdea(ctx, CreateIdeaArgs{Title: "Moonshot", Actor: "alice"}); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	ideas, _ := server.ideaSvc.List()

	_, err := server.handleScoreIdea(ctx, ScoreIdeaArgs{
		IdeaID: ideas[0].ID, Reach: 500, Impact: 3, Confidence: 80, Effort: 4, Actor: "alice",
	})
	if err == nil {
		t.Fatal("expected error for sub-scores outside the 1-5 scale")
	}
}

func TestServerSuggestVersionRejectsUnknownType(t *testing.T) {
	server := newTestServer(t)

	if _, err := server.handleSuggestVersion(context.Background(), SuggestVersionArgs{Type: "mega"}); err == nil {
		t.Fatal("expected error for unknown release type")
	}
}
