package main

import (
	"fmt"
	"log"
	"os"

	"github.com/felixgeelhaar/jirasdk"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/integration"
	infraplugin "github.com/compasshq/compass/pkg/plugin"
)

type JiraConnector struct {
	client  *jirasdk.Client
	project string
}

func (c *JiraConnector) Init(config map[string]string) error {
	baseURL := config["url"]
	if baseURL == "" {
		baseURL = os.Getenv("JIRA_URL")
	}
	email := config["email"]
	if email == "" {
		email = os.Getenv("JIRA_EMAIL")
	}
	token := config["token"]
	if token == "" {
		token = os.Getenv("JIRA_API_TOKEN")
	}
	c.project = config["project"]
	if c.project == "" {
		c.project = os.Getenv("JIRA_PROJECT")
	}

	if baseURL == "" || email == "" || token == "" {
		return fmt.Errorf("jira connector needs url, email and token settings")
	}

	client, err := jirasdk.NewClient(jirasdk.WithBaseURL(baseURL), jirasdk.WithAPIToken(email, token))
	if err != nil {
		return fmt.Errorf("jira client: %w", err)
	}
	c.client = client
	return nil
}

func (c *JiraConnector) Sync(features []feature.Feature, ideas []idea.Idea) (*integration.SyncResult, error) {
	log.Printf("jira connector: syncing %d features against project %s", len(features), c.project)

	// TODO(jira): map features to issues via a compass-id property and pull
	// status transitions back once the issue mapping settles.
	return &integration.SyncResult{
		StatusUpdates: make(map[string]feature.Status),
	}, nil
}

func (c *JiraConnector) Push(featureID string, status feature.Status) error {
	log.Printf("jira connector: push %s -> %s not yet mapped to a transition", featureID, status)
	return nil
}

func main() {
	infraplugin.Serve(&JiraConnector{})
}
