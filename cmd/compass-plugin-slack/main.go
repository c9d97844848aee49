package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/integration"
	infraplugin "github.com/compasshq/compass/pkg/plugin"
)

// SlackConnector posts status changes to a Slack incoming webhook. It is
// outbound only: nothing in Slack flows back into the workspace.
type SlackConnector struct {
	webhookURL string
	channel    string
	client     *http.Client
}

func (c *SlackConnector) Init(config map[string]string) error {
	c.webhookURL = config["webhook_url"]
	if c.webhookURL == "" {
		c.webhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	}
	if c.webhookURL == "" {
		return fmt.Errorf("slack connector needs a webhook_url setting")
	}
	c.channel = config["channel"]
	c.client = &http.Client{Timeout: 10 * time.Second}
	return nil
}

func (c *SlackConnector) Sync(features []feature.Feature, ideas []idea.Idea) (*integration.SyncResult, error) {
	done := 0
	for _, f := range features {
		if f.Status == feature.StatusDone {
			done++
		}
	}
	text := fmt.Sprintf("Compass sync: %d features (%d done), %d ideas in the backlog.", len(features), done, len(ideas))
	if err := c.post(text); err != nil {
		return &integration.SyncResult{Errors: []string{err.Error()}}, nil
	}
	return &integration.SyncResult{}, nil
}

func (c *SlackConnector) Push(featureID string, status feature.Status) error {
	return c.post(fmt.Sprintf("Feature %s moved to *%s*.", featureID, status))
}

func (c *SlackConnector) post(text string) error {
	payload := map[string]string{"text": text}
	if c.channel != "" {
		payload["channel"] = c.channel
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack post: status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	infraplugin.Serve(&SlackConnector{})
}
