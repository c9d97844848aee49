package main

import (
	"log"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/integration"
	infraplugin "github.com/compasshq/compass/pkg/plugin"
)

// MockConnector simulates an external tracker for local testing: it walks
// every feature one step forward and files a single canned idea.
type MockConnector struct{}

func (m *MockConnector) Init(config map[string]string) error {
	return nil
}

func (m *MockConnector) Sync(features []feature.Feature, ideas []idea.Idea) (*integration.SyncResult, error) {
	log.Printf("mock connector: received %d features, %d ideas", len(features), len(ideas))

	updates := make(map[string]feature.Status)
	for _, f := range features {
		switch f.Status {
		case feature.StatusNew:
			updates[f.ID] = feature.StatusInProgress
		case feature.StatusInProgress:
			updates[f.ID] = feature.StatusInReview
		case feature.StatusInReview:
			updates[f.ID] = feature.StatusDone
		}
	}

	result := &integration.SyncResult{StatusUpdates: updates}
	for _, i := range ideas {
		if i.Title == "Customer-reported latency" {
			return result, nil
		}
	}
	result.NewIdeas = []idea.Idea{{
		Title:       "Customer-reported latency",
		Description: "Filed from the mock tracker during sync.",
	}}
	return result, nil
}

func (m *MockConnector) Push(featureID string, status feature.Status) error {
	log.Printf("mock connector: push %s -> %s", featureID, status)
	return nil
}

func main() {
	infraplugin.Serve(&MockConnector{})
}
