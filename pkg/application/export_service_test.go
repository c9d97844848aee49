package application_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/compasshq/compass/pkg/application"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/prioritization"
)

func TestExportService_IdeasCSV(t *testing.T) {
	scored := idea.New("i1", "p1", "Search")
	scored.RICE = prioritization.RICEInputs{Reach: intPtr(500), Impact: intPtr(3), Confidence: intPtr(80), Effort: intPtr(4)}
	unscored := idea.New("i2", "p1", "Dark mode")

	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{unscored, scored}}
	audit := &RecordingAudit{}
	svc := application.NewExportService(repo, audit)

	var buf bytes.Buffer
	if err := svc.IdeasCSV("alice", &buf); err != nil {
		t.Fatalf("IdeasCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	// Scored idea ranks first
	if rows[1][0] != "i1" || rows[1][8] != "30000" {
		t.Errorf("first data row = %v", rows[1])
	}
	// Unscored inputs render as empty cells, not zeros
	if rows[2][4] != "" || rows[2][8] != "" {
		t.Errorf("unscored row = %v", rows[2])
	}
	if !audit.Has(events.TypeExportWritten) {
		t.Error("export.written event not recorded")
	}
}

func TestExportService_FeaturesCSV(t *testing.T) {
	rel := "r1"
	repo := &MockRepo{Initialized: true, Features: []feature.Feature{
		{ID: "f1", Title: "Search", Status: feature.StatusDone, ReleaseID: &rel, Tasks: []feature.Task{
			{ID: "t1", Status: feature.StatusDone, Effort: intPtr(5)},
		}},
	}}
	svc := application.NewExportService(repo, &RecordingAudit{})

	var buf bytes.Buffer
	if err := svc.FeaturesCSV("alice", &buf); err != nil {
		t.Fatalf("FeaturesCSV() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "f1,Search,done,r1,,1,5,100.0") {
		t.Errorf("output = %s", out)
	}
}

func TestExportService_JSON(t *testing.T) {
	repo := &MockRepo{Initialized: true, Ideas: []idea.Idea{idea.New("i1", "p1", "Search")}}
	svc := application.NewExportService(repo, &RecordingAudit{})

	var buf bytes.Buffer
	if err := svc.JSON("alice", &buf); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var snapshot map[string]any
	if err := json.Unmarshal(buf.Bytes(), &snapshot); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := snapshot["ideas"]; !ok {
		t.Error("snapshot missing ideas")
	}
	if _, ok := snapshot["exported_at"]; !ok {
		t.Error("snapshot missing exported_at")
	}
}
