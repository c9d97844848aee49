// Package sprint provides sprint planning entities and velocity analytics.
package sprint

import (
	"math"
	"time"

	"github.com/compasshq/compass/pkg/domain/feature"
)

// Sprint is a timeboxed commitment of features against a point capacity.
type Sprint struct {
	ID         string    `json:"id" yaml:"id"`
	ProductID  string    `json:"product_id" yaml:"product_id"`
	Name       string    `json:"name" yaml:"name"`
	Goal       string    `json:"goal,omitempty" yaml:"goal,omitempty"`
	StartsAt   time.Time `json:"starts_at" yaml:"starts_at"`
	EndsAt     time.Time `json:"ends_at" yaml:"ends_at"`
	Capacity   int       `json:"capacity" yaml:"capacity"`
	FeatureIDs []string  `json:"feature_ids" yaml:"feature_ids"`
}

// IsActive returns true while now falls inside the sprint window.
func (s Sprint) IsActive(now time.Time) bool {
	return !now.Before(s.StartsAt) && now.Before(s.EndsAt)
}

// Progress summarizes a sprint against its committed features.
type Progress struct {
	CommittedPoints int     `json:"committed_points"`
	CompletedPoints int     `json:"completed_points"`
	CompletionPct   float64 `json:"completion_pct"`
	OverCapacity    bool    `json:"over_capacity"`
}

// Measure computes sprint progress over the features committed to it.
// Completed points come from done tasks only.
func (s Sprint) Measure(features []feature.Feature) Progress {
	committed := 0
	completed := 0
	totalTasks := 0
	doneTasks := 0

	for _, f := range features {
		for _, t := range f.Tasks {
			totalTasks++
			if t.Effort != nil {
				committed += *t.Effort
			}
			if t.Status == feature.StatusDone {
				doneTasks++
				if t.Effort != nil {
					completed += *t.Effort
				}
			}
		}
	}

	pct := 0.0
	if totalTasks > 0 {
		pct = float64(doneTasks) / float64(totalTasks) * 100
	}

	return Progress{
		CommittedPoints: committed,
		CompletedPoints: completed,
		CompletionPct:   pct,
		OverCapacity:    s.Capacity > 0 && committed > s.Capacity,
	}
}

// VelocityStats holds a statistical summary of completed points per sprint.
type VelocityStats struct {
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

// Variability returns the coefficient of variation (StdDev/Mean).
func (vs VelocityStats) Variability() float64 {
	if vs.Mean == 0 {
		return 0
	}
	return vs.StdDev / vs.Mean
}

// IsConsistent returns true if velocity is relatively stable.
func (vs VelocityStats) IsConsistent() bool {
	return vs.Variability() < 0.3
}

// Velocity summarizes completed points across past sprints.
func Velocity(completedPoints []int) VelocityStats {
	if len(completedPoints) == 0 {
		return VelocityStats{}
	}

	sum := 0.0
	min := math.MaxFloat64
	max := -math.MaxFloat64
	for _, p := range completedPoints {
		v := float64(p)
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(completedPoints))

	variance := 0.0
	for _, p := range completedPoints {
		d := float64(p) - mean
		variance += d * d
	}
	variance /= float64(len(completedPoints))

	return VelocityStats{
		Mean:    mean,
		StdDev:  math.Sqrt(variance),
		Min:     min,
		Max:     max,
		Samples: len(completedPoints),
	}
}
