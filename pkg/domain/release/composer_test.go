package release

import (
	"testing"

	"github.com/compasshq/compass/pkg/domain/feature"
)

func intPtr(v int) *int { return &v }

func TestEligibleFeatures(t *testing.T) {
	bound := "rel-0"
	features := []feature.Feature{
		{ID: "new", Status: feature.StatusNew},
		{ID: "in-progress", Status: feature.StatusInProgress},
		{ID: "in-review", Status: feature.StatusInReview},
		{ID: "done", Status: feature.StatusDone},
		{ID: "cancelled", Status: feature.StatusCancelled},
		{ID: "already-bound", Status: feature.StatusDone, ReleaseID: &bound},
	}

	eligible := EligibleFeatures(features)

	want := map[string]bool{"in-progress": true, "in-review": true, "done": true}
	if len(eligible) != len(want) {
		t.Fatalf("EligibleFeatures() returned %d features, want %d", len(eligible), len(want))
	}
	for _, f := range eligible {
		if !want[f.ID] {
			t.Errorf("unexpected eligible feature %s", f.ID)
		}
	}
}

func TestEligibleFeatures_BoundExcludedRegardlessOfStatus(t *testing.T) {
	rel := "rel-1"
	features := []feature.Feature{
		{ID: "f1", Status: feature.StatusInProgress, ReleaseID: &rel},
		{ID: "f2", Status: feature.StatusDone, ReleaseID: &rel},
	}
	if got := EligibleFeatures(features); len(got) != 0 {
		t.Errorf("bound features must be excluded, got %d", len(got))
	}
}

func TestCompose(t *testing.T) {
	features := []feature.Feature{
		{
			ID: "f1",
			Tasks: []feature.Task{
				{ID: "t1", Status: feature.StatusDone, Effort: intPtr(3)},
				{ID: "t2", Status: feature.StatusNew, Effort: intPtr(5)},
			},
		},
		{
			ID: "f2",
			Tasks: []feature.Task{
				{ID: "t3", Status: feature.StatusDone},
				{ID: "t4", Status: feature.StatusInProgress, Effort: intPtr(2)},
			},
		},
	}

	rollup := Compose(features)

	if rollup.TotalEffort != 10 {
		t.Errorf("TotalEffort = %d, want 10", rollup.TotalEffort)
	}
	if rollup.CompletionPct != 50 {
		t.Errorf("CompletionPct = %v, want 50", rollup.CompletionPct)
	}
	if rollup.FeatureCount != 2 || rollup.TaskCount != 4 {
		t.Errorf("counts = %d features / %d tasks, want 2/4", rollup.FeatureCount, rollup.TaskCount)
	}
}

func TestCompose_Empty(t *testing.T) {
	rollup := Compose(nil)
	if rollup.TotalEffort != 0 || rollup.CompletionPct != 0 {
		t.Errorf("empty selection should roll up to zero, got %+v", rollup)
	}
}
