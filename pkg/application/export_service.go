package application

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/org"
)

// ExportService writes workspace data out for spreadsheets and downstream
// tooling.
type ExportService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewExportService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *ExportService {
	return &ExportService{repo: repo, audit: audit}
}

// IdeasCSV writes the ranked backlog as CSV. Unscored inputs render as empty
// cells, not zeros.
func (s *ExportService) IdeasCSV(actor string, w io.Writer) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionExport); err != nil {
		return err
	}

	ideas, err := s.repo.LoadIdeas()
	if err != nil {
		return err
	}
	ranked := idea.Rank(ideas)

	cw := csv.NewWriter(w)
	header := []string{"id", "title", "status", "priority", "reach", "impact", "confidence", "effort", "rice", "votes", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, i := range ranked {
		score, err := i.Score()
		if err != nil {
			score = nil
		}
		row := []string{
			i.ID,
			i.Title,
			string(i.Status),
			i.Priority.String(),
			intCell(i.RICE.Reach),
			intCell(i.RICE.Impact),
			intCell(i.RICE.Confidence),
			intCell(i.RICE.Effort),
			floatCell(score),
			strconv.Itoa(i.Votes),
			i.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return s.audit.Log(events.TypeExportWritten, "workspace", "ideas", actor, map[string]any{
		"format": "csv",
		"rows":   len(ranked),
	})
}

// FeaturesCSV writes all features with their completion rollup as CSV.
func (s *ExportService) FeaturesCSV(actor string, w io.Writer) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionExport); err != nil {
		return err
	}

	features, err := s.repo.LoadFeatures()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "title", "status", "release_id", "sprint_id", "tasks", "total_effort", "completion_pct"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, f := range features {
		releaseID := ""
		if f.ReleaseID != nil {
			releaseID = *f.ReleaseID
		}
		sprintID := ""
		if f.SprintID != nil {
			sprintID = *f.SprintID
		}
		row := []string{
			f.ID,
			f.Title,
			string(f.Status),
			releaseID,
			sprintID,
			strconv.Itoa(len(f.Tasks)),
			strconv.Itoa(f.TotalEffort()),
			fmt.Sprintf("%.1f", f.CompletionPct()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return s.audit.Log(events.TypeExportWritten, "workspace", "features", actor, map[string]any{
		"format": "csv",
		"rows":   len(features),
	})
}

// Snapshot is the full-workspace JSON export shape.
type Snapshot struct {
	ExportedAt time.Time `json:"exported_at"`
	Product    any       `json:"product,omitempty"`
	Ideas      any       `json:"ideas,omitempty"`
	Features   any       `json:"features,omitempty"`
	Releases   any       `json:"releases,omitempty"`
	Sprints    any       `json:"sprints,omitempty"`
	Flags      any       `json:"flags,omitempty"`
	Interviews any       `json:"interviews,omitempty"`
}

// JSON writes the entire workspace as one JSON document.
func (s *ExportService) JSON(actor string, w io.Writer) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionExport); err != nil {
		return err
	}

	snapshot := Snapshot{ExportedAt: time.Now()}
	var err error
	if snapshot.Product, err = s.repo.LoadProduct(); err != nil {
		return err
	}
	if snapshot.Ideas, err = s.repo.LoadIdeas(); err != nil {
		return err
	}
	if snapshot.Features, err = s.repo.LoadFeatures(); err != nil {
		return err
	}
	if snapshot.Releases, err = s.repo.LoadReleases(); err != nil {
		return err
	}
	if snapshot.Sprints, err = s.repo.LoadSprints(); err != nil {
		return err
	}
	if snapshot.Flags, err = s.repo.LoadFlags(); err != nil {
		return err
	}
	if snapshot.Interviews, err = s.repo.LoadInterviews(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return err
	}

	return s.audit.Log(events.TypeExportWritten, "workspace", "snapshot", actor, map[string]any{
		"format": "json",
	})
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
