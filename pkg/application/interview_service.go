package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/interview"
	"github.com/compasshq/compass/pkg/domain/org"
)

// InterviewService records customer interviews and links insights to backlog
// ideas as supporting evidence.
type InterviewService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewInterviewService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *InterviewService {
	return &InterviewService{repo: repo, audit: audit}
}

// Record logs a new interview.
func (s *InterviewService) Record(actor, customer, notes string) (*interview.Interview, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if customer == "" {
		return nil, fmt.Errorf("interview customer cannot be empty")
	}
	if err := authorize(s.repo, actor, org.ActionRecordInterview); err != nil {
		return nil, err
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, err
	}
	productID := ""
	if p != nil {
		productID = p.ID
	}

	interviews, err := s.repo.LoadInterviews()
	if err != nil {
		return nil, err
	}

	recorded := interview.Interview{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Customer:    customer,
		Interviewer: actor,
		ConductedAt: time.Now(),
		Notes:       notes,
	}
	interviews = append(interviews, recorded)
	if err := s.repo.SaveInterviews(interviews); err != nil {
		return nil, err
	}

	return &recorded, s.audit.Log(events.TypeInterviewLogged, "interview", recorded.ID, actor, map[string]any{
		"customer": customer,
	})
}

// List returns all interviews.
func (s *InterviewService) List() ([]interview.Interview, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadInterviews()
}

// AddInsight attaches an insight to an interview, optionally linking it to
// one or more ideas.
func (s *InterviewService) AddInsight(actor, interviewID, text string, sentiment interview.Sentiment, ideaIDs []string) error {
	if err := authorize(s.repo, actor, org.ActionRecordInterview); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("insight text cannot be empty")
	}
	if !sentiment.IsValid() {
		return fmt.Errorf("invalid sentiment: %s", sentiment)
	}

	// Reject links to ideas that do not exist.
	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(ideas))
	for _, i := range ideas {
		known[i.ID] = true
	}
	for _, id := range ideaIDs {
		if !known[id] {
			return fmt.Errorf("%w: %s", ErrIdeaNotFound, id)
		}
	}

	interviews, err := s.repo.LoadInterviews()
	if err != nil {
		return err
	}
	for i := range interviews {
		if interviews[i].ID != interviewID {
			continue
		}
		interviews[i].Insights = append(interviews[i].Insights, interview.Insight{
			Text:      text,
			Sentiment: sentiment,
			IdeaIDs:   ideaIDs,
		})
		return s.repo.SaveInterviews(interviews)
	}
	return ErrInterviewNotFound
}

// EvidenceFor returns the insights across all interviews linked to an idea.
func (s *InterviewService) EvidenceFor(ideaID string) ([]interview.Insight, error) {
	interviews, err := s.List()
	if err != nil {
		return nil, err
	}
	var insights []interview.Insight
	for _, iv := range interviews {
		insights = append(insights, iv.InsightsFor(ideaID)...)
	}
	return insights, nil
}

// EvidenceCounts returns how many insights back each idea.
func (s *InterviewService) EvidenceCounts() (map[string]int, error) {
	interviews, err := s.List()
	if err != nil {
		return nil, err
	}
	return interview.EvidenceCount(interviews), nil
}
