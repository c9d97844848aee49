package integration_test

import (
	"errors"
	"testing"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/integration"
)

type stubConnector struct {
	updates   map[string]feature.Status
	pushed    []string
	initError error
}

func (s *stubConnector) Init(config map[string]string) error {
	return s.initError
}

func (s *stubConnector) Sync(features []feature.Feature, ideas []idea.Idea) (*integration.SyncResult, error) {
	return &integration.SyncResult{StatusUpdates: s.updates}, nil
}

func (s *stubConnector) Push(featureID string, status feature.Status) error {
	s.pushed = append(s.pushed, featureID)
	return nil
}

func TestConnectorRPCServer_Sync(t *testing.T) {
	stub := &stubConnector{
		updates: map[string]feature.Status{"f1": feature.StatusDone},
	}
	server := &integration.ConnectorRPCServer{Impl: stub}

	var resp integration.SyncResult
	args := &integration.SyncArgs{Features: []feature.Feature{{ID: "f1"}}}
	if err := server.Sync(args, &resp); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if resp.StatusUpdates["f1"] != feature.StatusDone {
		t.Errorf("StatusUpdates = %v", resp.StatusUpdates)
	}
}

func TestConnectorRPCServer_Init(t *testing.T) {
	wantErr := errors.New("bad credentials")
	server := &integration.ConnectorRPCServer{Impl: &stubConnector{initError: wantErr}}

	var resp interface{}
	if err := server.Init(map[string]string{"token": "x"}, &resp); !errors.Is(err, wantErr) {
		t.Errorf("Init() error = %v, want %v", err, wantErr)
	}
}

func TestConnectorRPCServer_Push(t *testing.T) {
	stub := &stubConnector{}
	server := &integration.ConnectorRPCServer{Impl: stub}

	var resp interface{}
	args := &integration.PushArgs{FeatureID: "f1", Status: feature.StatusInReview}
	if err := server.Push(args, &resp); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(stub.pushed) != 1 || stub.pushed[0] != "f1" {
		t.Errorf("pushed = %v", stub.pushed)
	}
}
