package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/prioritization"
)

const ideaImportSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title"],
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "votes": {"type": "integer", "minimum": 0},
      "priority": {"type": "string", "enum": ["low", "medium", "high"]},
      "reach": {"type": "integer", "minimum": 0},
      "impact": {"type": "integer", "minimum": 0},
      "confidence": {"type": "integer", "minimum": 0},
      "effort": {"type": "integer", "minimum": 1}
    }
  }
}`

var ideaImportSchemaLoader = gojsonschema.NewStringLoader(ideaImportSchemaJSON)

// importedIdea is the accepted wire shape for one backlog entry.
type importedIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Votes       int    `json:"votes"`
	Priority    string `json:"priority"`
	Reach       *int   `json:"reach"`
	Impact      *int   `json:"impact"`
	Confidence  *int   `json:"confidence"`
	Effort      *int   `json:"effort"`
}

// ImportService bulk-loads ideas from a JSON document, validated against a
// schema before anything is written.
type ImportService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewImportService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *ImportService {
	return &ImportService{repo: repo, audit: audit}
}

// Ideas imports a JSON array of ideas into the backlog and returns the
// created entries. The whole document is rejected if any entry fails schema
// validation.
func (s *ImportService) Ideas(actor string, data []byte) ([]idea.Idea, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionEditIdeas); err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(ideaImportSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate import document: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("import document is invalid: %s", strings.Join(problems, "; "))
	}

	var entries []importedIdea
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse import document: %w", err)
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, err
	}
	productID := ""
	if p != nil {
		productID = p.ID
	}

	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return nil, err
	}

	var created []idea.Idea
	for _, e := range entries {
		imported := idea.New(uuid.New().String(), productID, e.Title)
		imported.Description = e.Description
		imported.Votes = e.Votes
		imported.SubmittedBy = actor
		if e.Priority != "" {
			priority, err := prioritization.ParsePriority(e.Priority)
			if err != nil {
				return nil, err
			}
			imported.Priority = priority
		}
		imported.RICE = prioritization.RICEInputs{
			Reach:      e.Reach,
			Impact:     e.Impact,
			Confidence: e.Confidence,
			Effort:     e.Effort,
		}
		created = append(created, imported)
	}

	ideas = append(ideas, created...)
	if err := s.repo.SaveIdeas(ideas); err != nil {
		return nil, err
	}

	return created, s.audit.Log(events.TypeIdeaCreated, "workspace", "import", actor, map[string]any{
		"imported": len(created),
	})
}
