// Package integration defines the contract external tracker connectors
// implement. Connectors run as separate processes and talk to compass over
// hashicorp/go-plugin's net/rpc transport.
package integration

import (
	"net/rpc"

	goplugin "github.com/hashicorp/go-plugin"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
)

// ExternalRef points at the issue a feature is mirrored to in an external
// tracker.
type ExternalRef struct {
	Provider string `json:"provider"`
	ID       string `json:"id"`
	URL      string `json:"url"`
}

// Connector is the interface that integration plugins must implement.
type Connector interface {
	// Init ensures the plugin can connect (auth check)
	Init(config map[string]string) error

	// Sync performs a bi-directional synchronization: features are mirrored
	// out, and externally filed requests come back as idea candidates.
	Sync(features []feature.Feature, ideas []idea.Idea) (*SyncResult, error)

	// Push sends a status update for a specific feature to the external system
	Push(featureID string, status feature.Status) error
}

// SyncResult captures the outcome of a sync operation.
type SyncResult struct {
	StatusUpdates map[string]feature.Status `json:"status_updates"`
	LinkUpdates   map[string]ExternalRef    `json:"link_updates"`
	NewIdeas      []idea.Idea               `json:"new_ideas"`
	Errors        []string                  `json:"errors"`
}

// ConnectorPlugin is the implementation of plugin.Plugin so we can
// serve/consume this.
type ConnectorPlugin struct {
	Impl Connector
}

func (p *ConnectorPlugin) Server(*goplugin.MuxBroker) (interface{}, error) {
	return &ConnectorRPCServer{Impl: p.Impl}, nil
}

func (p *ConnectorPlugin) Client(b *goplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &ConnectorRPCClient{Client: c}, nil
}

// RPC Client/Server wrappers
type SyncArgs struct {
	Features []feature.Feature
	Ideas    []idea.Idea
}

type PushArgs struct {
	FeatureID string
	Status    feature.Status
}

type ConnectorRPCClient struct{ Client *rpc.Client }

func (g *ConnectorRPCClient) Init(config map[string]string) error {
	var resp interface{}
	return g.Client.Call("Plugin.Init", config, &resp)
}

func (g *ConnectorRPCClient) Sync(features []feature.Feature, ideas []idea.Idea) (*SyncResult, error) {
	var resp SyncResult
	args := &SyncArgs{Features: features, Ideas: ideas}
	err := g.Client.Call("Plugin.Sync", args, &resp)
	return &resp, err
}

func (g *ConnectorRPCClient) Push(featureID string, status feature.Status) error {
	var resp interface{}
	args := &PushArgs{FeatureID: featureID, Status: status}
	return g.Client.Call("Plugin.Push", args, &resp)
}

type ConnectorRPCServer struct{ Impl Connector }

func (s *ConnectorRPCServer) Init(config map[string]string, resp *interface{}) error {
	return s.Impl.Init(config)
}

func (s *ConnectorRPCServer) Sync(args *SyncArgs, resp *SyncResult) error {
	result, err := s.Impl.Sync(args.Features, args.Ideas)
	if result != nil {
		*resp = *result
	}
	return err
}

func (s *ConnectorRPCServer) Push(args *PushArgs, resp *interface{}) error {
	return s.Impl.Push(args.FeatureID, args.Status)
}
