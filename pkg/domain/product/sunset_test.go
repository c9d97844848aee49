package product

import (
	"testing"
	"time"
)

func TestProduct_Validate(t *testing.T) {
	p := New("p1", "o1", "Widgets", "widgets")
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	p.Slug = ""
	if err := p.Validate(); err == nil {
		t.Error("expected error for empty slug")
	}
}

func TestSunsetPlan_Validate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		plan    SunsetPlan
		wantErr bool
	}{
		{"valid", SunsetPlan{ProductID: "p1", AnnouncedAt: now, EndOfLifeAt: now.AddDate(1, 0, 0)}, false},
		{"no product", SunsetPlan{EndOfLifeAt: now}, true},
		{"no eol", SunsetPlan{ProductID: "p1"}, true},
		{"eol before announcement", SunsetPlan{ProductID: "p1", AnnouncedAt: now, EndOfLifeAt: now.AddDate(0, 0, -1)}, true},
		{"unnamed milestone", SunsetPlan{ProductID: "p1", EndOfLifeAt: now, Milestones: []Milestone{{}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSunsetPlan_Progress(t *testing.T) {
	sp := SunsetPlan{Milestones: []Milestone{
		{Name: "announce", Done: true},
		{Name: "migrate", Done: false},
	}}
	if got := sp.Progress(); got != 50 {
		t.Errorf("Progress() = %v, want 50", got)
	}
	if (SunsetPlan{}).Progress() != 0 {
		t.Error("plan without milestones should report 0")
	}
}

func TestSunsetPlan_Overdue(t *testing.T) {
	now := time.Now()
	sp := SunsetPlan{Milestones: []Milestone{
		{Name: "late", DueAt: now.AddDate(0, 0, -1)},
		{Name: "done-late", DueAt: now.AddDate(0, 0, -1), Done: true},
		{Name: "future", DueAt: now.AddDate(0, 0, 1)},
	}}

	late := sp.Overdue(now)
	if len(late) != 1 || late[0].Name != "late" {
		t.Errorf("Overdue() = %v", late)
	}
}
