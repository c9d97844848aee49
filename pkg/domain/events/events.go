// Package events defines hash-chained domain events for auditing.
package events

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// Event type constants for the product-management domain.
const (
	TypeIdeaCreated      = "idea.created"
	TypeIdeaScored       = "idea.scored"
	TypeIdeaVoted        = "idea.voted"
	TypeIdeaPromoted     = "idea.promoted"
	TypeFeatureCreated   = "feature.created"
	TypeFeatureMoved     = "feature.transitioned"
	TypeReleaseComposed  = "release.composed"
	TypeReleaseCut       = "release.cut"
	TypeVersionRegressed = "release.version_regressed"
	TypeSprintStarted    = "sprint.started"
	TypeFlagToggled      = "flag.toggled"
	TypeInterviewLogged  = "interview.logged"
	TypeSunsetDeclared   = "product.sunset_declared"
	TypeSyncRun          = "integration.sync_run"
	TypeExportWritten    = "export.written"
)

// BaseEvent is the persisted audit record. Events are chained: each carries
// the hash of its predecessor so tampering breaks the chain.
type BaseEvent struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	Timestamp     time.Time      `json:"timestamp"`
	Actor         string         `json:"actor"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	PrevHash      string         `json:"prev_hash,omitempty"`
	Hash          string         `json:"hash,omitempty"`
}

// New creates an event ready for appending; the store assigns ID, timestamp
// and chain hashes.
func New(eventType, aggregateType, aggregateID, actor string, metadata map[string]any) *BaseEvent {
	return &BaseEvent{
		Type:          eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Actor:         actor,
		Metadata:      metadata,
	}
}

// CalculateHash generates a deterministic SHA256 hash of the event.
func (e *BaseEvent) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(e.PrevHash))
	h.Write([]byte(e.ID))
	h.Write([]byte(e.Timestamp.Format(time.RFC3339Nano)))
	h.Write([]byte(e.Type))
	h.Write([]byte(e.AggregateID))
	h.Write([]byte(e.Actor))
	h.Write([]byte(canonicalJSON(e.Metadata)))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON produces a deterministic JSON representation.
func canonicalJSON(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make(map[string]any, len(m))
	for _, k := range keys {
		ordered[k] = m[k]
	}
	// encoding/json sorts map keys, so this round-trip is deterministic.
	data, err := json.Marshal(ordered)
	if err != nil {
		return ""
	}
	return string(data)
}
