package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/infrastructure/wiring"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Rocket", "rocket"},
		{"Rocket Dashboard", "rocket-dashboard"},
		{"  Spaces  ", "spaces"},
		{"snake_case_name", "snake-case-name"},
		{"Emoji ✨ Launch!", "emoji-launch"},
		{"UPPER-case", "upper-case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.name); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestGetProjectRootUsesFlag(t *testing.T) {
	dir := t.TempDir()
	old := projectPath
	projectPath = dir
	t.Cleanup(func() { projectPath = old })

	got, err := getProjectRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}
}

func TestGetProjectRootRejectsFile(t *testing.T) {
	dir := t.TempDir()
	old := projectPath
	projectPath = dir + "/missing"
	t.Cleanup(func() { projectPath = old })

	if _, err := getProjectRoot(); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestInitCommandCreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	old := projectPath
	projectPath = dir
	t.Cleanup(func() { projectPath = old })

	RootCmd.SetArgs([]string{"init", "Acme", "Rocket Dashboard"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	services, err := wiring.BuildAppServices(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	product, err := services.Workspace.Repo.LoadProduct()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Rocket Dashboard" {
		t.Errorf("expected product name, got %q", product.Name)
	}
	if product.Slug != "rocket-dashboard" {
		t.Errorf("expected derived slug, got %q", product.Slug)
	}
}

func TestIdeaScoreRejectsOutOfRangeInputs(t *testing.T) {
	dir := t.TempDir()
	old := projectPath
	projectPath = dir
	t.Cleanup(func() { projectPath = old })

	RootCmd.SetArgs([]string{"init", "Acme", "Rocket"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	RootCmd.SetArgs([]string{"idea", "score", "some-idea", "--reach", "100"})
	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for reach outside the 1-5 scale")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected a CLIError, got %T", err)
	}
	if !strings.Contains(cliErr.Message, "reach") {
		t.Errorf("message = %q, want it to name the offending flag", cliErr.Message)
	}
}

func TestCurrentActorFallsBack(t *testing.T) {
	t.Setenv("COMPASS_ACTOR", "pm-alice")
	if got := currentActor(); got != "pm-alice" {
		t.Errorf("expected pm-alice, got %s", got)
	}

	t.Setenv("COMPASS_ACTOR", "")
	t.Setenv("USER", "bob")
	if got := currentActor(); got != "bob" {
		t.Errorf("expected bob, got %s", got)
	}
}
