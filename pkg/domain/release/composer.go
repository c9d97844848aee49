package release

import "github.com/compasshq/compass/pkg/domain/feature"

// Rollup summarizes a candidate feature set for release review.
type Rollup struct {
	TotalEffort   int     `json:"total_effort"`
	CompletionPct float64 `json:"completion_pct"`
	FeatureCount  int     `json:"feature_count"`
	TaskCount     int     `json:"task_count"`
}

// EligibleFeatures filters a feature collection down to the ones that may be
// bound into a new release: unbound (no release yet) and with started or
// completed work. Ineligible features are silently excluded, never an error.
func EligibleFeatures(features []feature.Feature) []feature.Feature {
	eligible := make([]feature.Feature, 0, len(features))
	for _, f := range features {
		if f.IsBound() {
			continue
		}
		if !f.Status.IsActive() {
			continue
		}
		eligible = append(eligible, f)
	}
	return eligible
}

// Compose computes the rollup numbers for a selected feature set. It does
// not bind features to a release; persisting ReleaseID is the application
// layer's job.
func Compose(selected []feature.Feature) Rollup {
	var tasks []feature.Task
	for _, f := range selected {
		tasks = append(tasks, f.Tasks...)
	}
	return Rollup{
		TotalEffort:   feature.TaskEffort(tasks),
		CompletionPct: feature.TaskCompletionPct(tasks),
		FeatureCount:  len(selected),
		TaskCount:     len(tasks),
	}
}
