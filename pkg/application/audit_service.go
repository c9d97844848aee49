package application

import (
	"time"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
)

// AuditService records workspace activity in the hash-chained event log and
// fans events out to subscribers.
type AuditService struct {
	store     events.EventStore
	publisher events.Publisher
}

// Compile-time check that AuditService implements AuditLogger
var _ domain.AuditLogger = (*AuditService)(nil)

func NewAuditService(store events.EventStore, publisher events.Publisher) *AuditService {
	return &AuditService{store: store, publisher: publisher}
}

func (s *AuditService) Log(eventType, aggregateType, aggregateID, actor string, metadata map[string]any) error {
	event := events.New(eventType, aggregateType, aggregateID, actor, metadata)
	if err := s.store.Append(event); err != nil {
		return err
	}
	if s.publisher != nil {
		return s.publisher.Publish(event)
	}
	return nil
}

// GetTimeline returns all recorded events in chronological order.
func (s *AuditService) GetTimeline() ([]*events.BaseEvent, error) {
	return s.store.LoadAll()
}

// GetTimelineFor returns the event history of a single aggregate.
func (s *AuditService) GetTimelineFor(aggregateType, aggregateID string) ([]*events.BaseEvent, error) {
	return s.store.LoadByAggregate(aggregateType, aggregateID)
}

// ActivitySince returns events recorded after the given time, newest last.
func (s *AuditService) ActivitySince(since time.Time) ([]*events.BaseEvent, error) {
	return s.store.LoadSince(since)
}

// VerifyIntegrity checks the event log hash chain and reports violations.
func (s *AuditService) VerifyIntegrity() ([]string, error) {
	type verifier interface {
		VerifyIntegrity() ([]string, error)
	}
	if v, ok := s.store.(verifier); ok {
		return v.VerifyIntegrity()
	}
	return nil, nil
}

// ScoringVelocity returns the average number of ideas scored per day since
// the first scoring event.
func (s *AuditService) ScoringVelocity() (float64, error) {
	scored, err := s.store.LoadByType(events.TypeIdeaScored)
	if err != nil {
		return 0, err
	}
	if len(scored) == 0 {
		return 0, nil
	}

	days := time.Since(scored[0].Timestamp).Hours() / 24.0
	if days < 1 {
		days = 1 // floor at one day to avoid spikes on fresh workspaces
	}
	return float64(len(scored)) / days, nil
}
