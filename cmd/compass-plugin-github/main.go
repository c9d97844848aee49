package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/integration"
	infraplugin "github.com/compasshq/compass/pkg/plugin"
)

// marker ties a GitHub issue to the compass feature it mirrors. It lives in
// the issue body so labels stay free for the team.
const marker = "compass-id:"

// ideaLabel marks issues that should come back as idea candidates.
const ideaLabel = "idea"

type GitHubConnector struct {
	client *github.Client
	owner  string
	repo   string
}

func (c *GitHubConnector) Init(config map[string]string) error {
	token := config["token"]
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	slug := config["repo"]
	if slug == "" {
		slug = os.Getenv("GITHUB_REPO")
	}
	parts := strings.SplitN(slug, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("repo must be owner/name, got %q", slug)
	}
	c.owner, c.repo = parts[0], parts[1]

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
	c.client = github.NewClient(httpClient)

	if token == "" {
		log.Println("github connector: no token configured, running unauthenticated")
		return nil
	}
	// Auth check: a bad token fails here instead of mid-sync.
	if _, _, err := c.client.Users.Get(context.Background(), ""); err != nil {
		return fmt.Errorf("github auth check failed: %w", err)
	}
	return nil
}

func (c *GitHubConnector) Sync(features []feature.Feature, ideas []idea.Idea) (*integration.SyncResult, error) {
	ctx := context.Background()
	result := &integration.SyncResult{
		StatusUpdates: make(map[string]feature.Status),
		LinkUpdates:   make(map[string]integration.ExternalRef),
	}

	linked := make(map[string]feature.Feature, len(features))
	for _, f := range features {
		linked[f.ID] = f
	}
	known := make(map[string]bool, len(ideas))
	for _, i := range ideas {
		known[strings.ToLower(i.Title)] = true
	}

	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues: %w", err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			if id := featureID(issue.GetBody()); id != "" {
				f, ok := linked[id]
				if !ok {
					result.Errors = append(result.Errors, fmt.Sprintf("issue #%d references unknown feature %s", issue.GetNumber(), id))
					continue
				}
				result.LinkUpdates[id] = integration.ExternalRef{
					Provider: "github",
					ID:       fmt.Sprintf("%d", issue.GetNumber()),
					URL:      issue.GetHTMLURL(),
				}
				if issue.GetState() == "closed" && f.Status != feature.StatusDone {
					result.StatusUpdates[id] = feature.StatusDone
				}
				continue
			}
			if hasLabel(issue, ideaLabel) && !known[strings.ToLower(issue.GetTitle())] {
				candidate := idea.Idea{
					Title:       issue.GetTitle(),
					Description: issue.GetBody(),
				}
				result.NewIdeas = append(result.NewIdeas, candidate)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Printf("github connector: %d status updates, %d idea candidates", len(result.StatusUpdates), len(result.NewIdeas))
	return result, nil
}

func (c *GitHubConnector) Push(featureID string, status feature.Status) error {
	ctx := context.Background()
	number, err := c.findIssue(ctx, featureID)
	if err != nil {
		return err
	}
	if number == 0 {
		return fmt.Errorf("no issue carries %s %s", marker, featureID)
	}

	state := "open"
	if status == feature.StatusDone || status == feature.StatusCancelled {
		state = "closed"
	}
	req := &github.IssueRequest{State: github.Ptr(state)}
	if _, _, err := c.client.Issues.Edit(ctx, c.owner, c.repo, number, req); err != nil {
		return fmt.Errorf("update issue #%d: %w", number, err)
	}

	comment := &github.IssueComment{
		Body: github.Ptr(fmt.Sprintf("Status changed to `%s`.", status)),
	}
	if _, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, number, comment); err != nil {
		return fmt.Errorf("comment on issue #%d: %w", number, err)
	}
	return nil
}

func (c *GitHubConnector) findIssue(ctx context.Context, id string) (int, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return 0, fmt.Errorf("list issues: %w", err)
		}
		for _, issue := range issues {
			if featureID(issue.GetBody()) == id {
				return issue.GetNumber(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return 0, nil
}

// featureID extracts the compass feature id from an issue body, or "".
func featureID(body string) string {
	idx := strings.Index(body, marker)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(body[idx+len(marker):])
	if end := strings.IndexAny(rest, " \t\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func hasLabel(issue *github.Issue, name string) bool {
	for _, l := range issue.Labels {
		if strings.EqualFold(l.GetName(), name) {
			return true
		}
	}
	return false
}

func main() {
	infraplugin.Serve(&GitHubConnector{})
}
