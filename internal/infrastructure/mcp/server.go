// Package mcp exposes compass workspace state and operations to MCP clients.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/compasshq/compass/internal/infrastructure/wiring"
	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/prioritization"
	"github.com/compasshq/compass/pkg/domain/release"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

type Server struct {
	mcpServer  *mcp.Server
	orgSvc     *application.OrgService
	ideaSvc    *application.IdeaService
	featureSvc *application.FeatureService
	releaseSvc *application.ReleaseService
	sprintSvc  *application.SprintService
	auditSvc   *application.AuditService
	root       string
}

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted; only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(root string) (*Server, error) {
	services, err := wiring.BuildAppServices(root)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	info := mcp.ServerInfo{
		Name:    "compass",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Compass MCP Server"),
			mcp.WithDescription("Compass exposes idea prioritization, release composition, and sprint state to MCP clients."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to rank ideas, score them, compose releases, and move features through the board."),
		),
		orgSvc:     services.Org,
		ideaSvc:    services.Idea,
		featureSvc: services.Feature,
		releaseSvc: services.Release,
		sprintSvc:  services.Sprint,
		auditSvc:   services.Audit,
		root:       root,
	}

	s.registerTools()
	return s, nil
}

type ScoreIdeaArgs struct {
	IdeaID     string `json:"idea_id" jsonschema:"description=The idea to score"`
	Reach      int    `json:"reach" jsonschema:"description=Reach on a 1-5 scale"`
	Impact     int    `json:"impact" jsonschema:"description=Impact on a 1-5 scale"`
	Confidence int    `json:"confidence" jsonschema:"description=Confidence on a 1-5 scale"`
	Effort     int    `json:"effort" jsonschema:"description=Effort on a 1-5 scale"`
	Actor      string `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

type CreateIdeaArgs struct {
	Title       string `json:"title" jsonschema:"description=Short idea title"`
	Description string `json:"description,omitempty" jsonschema:"description=Longer description"`
	Actor       string `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

type PromoteIdeaArgs struct {
	IdeaID string `json:"idea_id" jsonschema:"description=The planned idea to promote into a feature"`
	Actor  string `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

type SuggestVersionArgs struct {
	Type string `json:"type" jsonschema:"description=Release type: major, minor, patch, or hotfix"`
}

type ComposeReleaseArgs struct {
	Type       string   `json:"type" jsonschema:"description=Release type: major, minor, patch, or hotfix"`
	Version    string   `json:"version,omitempty" jsonschema:"description=Explicit version (defaults to the suggested next version)"`
	FeatureIDs []string `json:"feature_ids,omitempty" jsonschema:"description=Features to include (defaults to all eligible)"`
	Actor      string   `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

type CutReleaseArgs struct {
	ReleaseID string `json:"release_id" jsonschema:"description=The draft release to cut"`
	Actor     string `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

type MoveFeatureArgs struct {
	FeatureID string `json:"feature_id" jsonschema:"description=The feature to move"`
	Event     string `json:"event" jsonschema:"description=Transition event: start, review, approve, cancel, or reopen"`
	Actor     string `json:"actor,omitempty" jsonschema:"description=Acting user (defaults to ai-agent)"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("compass_rank_ideas").
		Description("List all ideas ordered by RICE score, highest first; unscored ideas last").
		Handler(s.handleRankIdeas)

	s.mcpServer.Tool("compass_create_idea").
		Description("Capture a new product idea").
		Handler(s.handleCreateIdea)

	s.mcpServer.Tool("compass_score_idea").
		Description("Score an idea with the RICE model (reach, impact, confidence, effort)").
		Handler(s.handleScoreIdea)

	s.mcpServer.Tool("compass_promote_idea").
		Description("Promote a planned idea into a feature on the delivery board").
		Handler(s.handlePromoteIdea)

	s.mcpServer.Tool("compass_suggest_version").
		Description("Suggest the next semantic version for a release type").
		Handler(s.handleSuggestVersion)

	s.mcpServer.Tool("compass_eligible_features").
		Description("List features eligible for the next release (active and unbound)").
		Handler(s.handleEligibleFeatures)

	s.mcpServer.Tool("compass_compose_release").
		Description("Compose a draft release from eligible features with an effort rollup").
		Handler(s.handleComposeRelease)

	s.mcpServer.Tool("compass_cut_release").
		Description("Cut a draft release, binding its features permanently").
		Handler(s.handleCutRelease)

	s.mcpServer.Tool("compass_move_feature").
		Description("Transition a feature through the board (start, review, approve, cancel, reopen)").
		Handler(s.handleMoveFeature)

	s.mcpServer.Tool("compass_status").
		Description("Get a high-level summary of the workspace: ideas, features, releases, active sprint").
		Handler(s.handleStatus)
}

func actorOrAgent(actor string) string {
	if actor == "" {
		return "ai-agent"
	}
	return actor
}

func (s *Server) handleRankIdeas(ctx context.Context, args struct{}) (any, error) {
	ranked, err := s.ideaSvc.Rank()
	if err != nil {
		return nil, mcpErr("Failed to rank ideas. Ensure the workspace is initialized with 'compass init'.")
	}
	return ranked, nil
}

func (s *Server) handleCreateIdea(ctx context.Context, args CreateIdeaArgs) (any, error) {
	created, err := s.ideaSvc.Create(actorOrAgent(args.Actor), args.Title, args.Description)
	if err != nil {
		return nil, mcpErr("Failed to create idea. Ensure the title is not empty and the workspace is initialized.")
	}
	return created, nil
}

func (s *Server) handleScoreIdea(ctx context.Context, args ScoreIdeaArgs) (string, error) {
	for name, v := range map[string]int{
		"reach": args.Reach, "impact": args.Impact,
		"confidence": args.Confidence, "effort": args.Effort,
	} {
		if v < 1 || v > 5 {
			return "", mcpErr(fmt.Sprintf("RICE sub-score '%s' must be between 1 and 5, got %d.", name, v))
		}
	}
	inputs := prioritization.RICEInputs{
		Reach:      &args.Reach,
		Impact:     &args.Impact,
		Confidence: &args.Confidence,
		Effort:     &args.Effort,
	}
	score, err := s.ideaSvc.ScoreRICE(actorOrAgent(args.Actor), args.IdeaID, inputs)
	if err != nil {
		return "", mcpErr(fmt.Sprintf("Failed to score idea '%s'. Ensure it exists and effort is positive.", args.IdeaID))
	}
	if score == nil {
		return "Inputs saved; idea is not fully scored yet.", nil
	}
	return fmt.Sprintf("Idea %s scored %.1f", args.IdeaID, *score), nil
}

func (s *Server) handlePromoteIdea(ctx context.Context, args PromoteIdeaArgs) (string, error) {
	feat, err := s.ideaSvc.Promote(actorOrAgent(args.Actor), args.IdeaID)
	if err != nil {
		return "", mcpErr(fmt.Sprintf("Failed to promote idea '%s'. Only planned ideas can be promoted.", args.IdeaID))
	}
	return fmt.Sprintf("Idea %s promoted to feature %s", args.IdeaID, feat.ID), nil
}

func (s *Server) handleSuggestVersion(ctx context.Context, args SuggestVersionArgs) (string, error) {
	t, err := release.ParseType(args.Type)
	if err != nil {
		return "", mcpErr("Invalid release type. Use major, minor, patch, or hotfix.")
	}
	version, err := s.releaseSvc.SuggestVersion(t)
	if err != nil {
		return "", mcpErr("Failed to suggest a version. Ensure the workspace is initialized.")
	}
	return version, nil
}

func (s *Server) handleEligibleFeatures(ctx context.Context, args struct{}) (any, error) {
	features, err := s.releaseSvc.Eligible()
	if err != nil {
		return nil, mcpErr("Failed to list eligible features. Ensure the workspace is initialized.")
	}
	return features, nil
}

func (s *Server) handleComposeRelease(ctx context.Context, args ComposeReleaseArgs) (any, error) {
	t, err := release.ParseType(args.Type)
	if err != nil {
		return nil, mcpErr("Invalid release type. Use major, minor, patch, or hotfix.")
	}
	draft, rollup, err := s.releaseSvc.Compose(actorOrAgent(args.Actor), args.Version, t, args.FeatureIDs)
	if err != nil {
		return nil, mcpErr("Failed to compose release. Ensure the selected features are eligible.")
	}
	return map[string]any{
		"release": draft,
		"rollup":  rollup,
	}, nil
}

func (s *Server) handleCutRelease(ctx context.Context, args CutReleaseArgs) (string, error) {
	cut, err := s.releaseSvc.Cut(actorOrAgent(args.Actor), args.ReleaseID)
	if err != nil {
		return "", mcpErr(fmt.Sprintf("Failed to cut release '%s'. Ensure it exists and is still a draft.", args.ReleaseID))
	}
	return fmt.Sprintf("Release %s cut with %d features", cut.Version, len(cut.FeatureIDs)), nil
}

func (s *Server) handleMoveFeature(ctx context.Context, args MoveFeatureArgs) (string, error) {
	status, err := s.featureSvc.Transition(actorOrAgent(args.Actor), args.FeatureID, args.Event)
	if err != nil {
		return "", mcpErr(fmt.Sprintf("Failed to move feature '%s' with event '%s'. Ensure the transition is valid.", args.FeatureID, args.Event))
	}
	return fmt.Sprintf("Feature %s is now %s", args.FeatureID, status), nil
}

type statusSummary struct {
	Product      string  `json:"product,omitempty"`
	Ideas        int     `json:"ideas"`
	ScoredIdeas  int     `json:"scored_ideas"`
	Features     int     `json:"features"`
	DoneFeatures int     `json:"done_features"`
	Releases     int     `json:"releases"`
	Latest       string  `json:"latest_version"`
	ActiveSprint string  `json:"active_sprint,omitempty"`
	TopIdea      string  `json:"top_idea,omitempty"`
	TopScore     float64 `json:"top_score,omitempty"`
}

func (s *Server) handleStatus(ctx context.Context, args struct{}) (any, error) {
	summary := statusSummary{}

	if p, err := s.orgSvc.GetProduct(); err == nil {
		summary.Product = p.Name
	}

	ranked, err := s.ideaSvc.Rank()
	if err != nil {
		return nil, mcpErr("Failed to load workspace state. Ensure the workspace is initialized with 'compass init'.")
	}
	summary.Ideas = len(ranked)
	for _, i := range ranked {
		if score, err := i.Score(); err == nil && score != nil {
			summary.ScoredIdeas++
		}
	}
	if len(ranked) > 0 {
		if score, err := ranked[0].Score(); err == nil && score != nil {
			summary.TopIdea = ranked[0].Title
			summary.TopScore = *score
		}
	}

	features, err := s.featureSvc.List()
	if err != nil {
		return nil, mcpErr("Failed to load features.")
	}
	summary.Features = len(features)
	for _, f := range features {
		if f.Status == feature.StatusDone {
			summary.DoneFeatures++
		}
	}

	releases, err := s.releaseSvc.List()
	if err != nil {
		return nil, mcpErr("Failed to load releases.")
	}
	summary.Releases = len(releases)
	if latest, err := s.releaseSvc.LatestVersion(); err == nil {
		summary.Latest = latest
	}

	if active, err := s.sprintSvc.Active(time.Now()); err == nil {
		summary.ActiveSprint = active.Name
	}

	return summary, nil
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) StartWebSocket(addr string) error {
	return s.ServeWebSocket(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
