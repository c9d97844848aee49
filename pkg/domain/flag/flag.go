// Package flag contains per-product feature flags with staged rollouts.
package flag

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Rollout is the percentage of traffic served the flag in one environment.
type Rollout struct {
	Environment string `json:"environment" yaml:"environment"`
	Percentage  int    `json:"percentage" yaml:"percentage"`
}

// Flag is a feature flag, optionally linked to the feature it gates.
type Flag struct {
	Key         string    `json:"key" yaml:"key"`
	ProductID   string    `json:"product_id" yaml:"product_id"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	FeatureID   string    `json:"feature_id,omitempty" yaml:"feature_id,omitempty"`
	Enabled     bool      `json:"enabled" yaml:"enabled"`
	Rollouts    []Rollout `json:"rollouts,omitempty" yaml:"rollouts,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Validate checks flag invariants: a non-empty key and rollout percentages
// within [0,100].
func (f Flag) Validate() error {
	if f.Key == "" {
		return fmt.Errorf("flag key cannot be empty")
	}
	for _, r := range f.Rollouts {
		if r.Environment == "" {
			return fmt.Errorf("flag %s: rollout environment cannot be empty", f.Key)
		}
		if r.Percentage < 0 || r.Percentage > 100 {
			return fmt.Errorf("flag %s: rollout percentage %d out of range [0,100]", f.Key, r.Percentage)
		}
	}
	return nil
}

// RolloutFor returns the rollout percentage configured for an environment.
// An environment without explicit configuration serves 100% when the flag is
// enabled.
func (f Flag) RolloutFor(environment string) int {
	for _, r := range f.Rollouts {
		if r.Environment == environment {
			return r.Percentage
		}
	}
	return 100
}

// IsServed decides whether the flag is on for a given subject in an
// environment. The subject (a user or session key) is hashed into a stable
// bucket so the same subject always gets the same answer.
func (f Flag) IsServed(environment, subject string) bool {
	if !f.Enabled {
		return false
	}
	pct := f.RolloutFor(environment)
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return bucket(f.Key, subject) < pct
}

// bucket maps a flag/subject pair to [0,100).
func bucket(key, subject string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(subject))
	return int(h.Sum32() % 100)
}
