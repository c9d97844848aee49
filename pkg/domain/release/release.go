// Package release contains the release entity, semantic version math, and
// the composer that selects releasable features.
package release

import (
	"fmt"
	"time"
)

// Type classifies a release for version suggestion.
type Type string

const (
	TypeMajor  Type = "major"
	TypeMinor  Type = "minor"
	TypePatch  Type = "patch"
	TypeHotfix Type = "hotfix"
)

// AllTypes returns all valid release types.
func AllTypes() []Type {
	return []Type{TypeMajor, TypeMinor, TypePatch, TypeHotfix}
}

// IsValid returns true if the type is a known value.
func (t Type) IsValid() bool {
	switch t {
	case TypeMajor, TypeMinor, TypePatch, TypeHotfix:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// ParseType parses a string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid release type: %s", s)
	}
	return t, nil
}

// Status is the lifecycle state of a release.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReleased Status = "released"
)

// Release is a versioned cut of features. FeatureIDs are bound at creation
// time; a feature belongs to at most one release.
type Release struct {
	ID         string     `json:"id" yaml:"id"`
	ProductID  string     `json:"product_id" yaml:"product_id"`
	Version    string     `json:"version" yaml:"version"`
	Type       Type       `json:"type" yaml:"type"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Notes      string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status     Status     `json:"status" yaml:"status"`
	FeatureIDs []string   `json:"feature_ids" yaml:"feature_ids"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty" yaml:"released_at,omitempty"`
}

// New creates a draft release.
func New(id, productID, version string, t Type) Release {
	return Release{
		ID:        id,
		ProductID: productID,
		Version:   version,
		Type:      t,
		Status:    StatusDraft,
		CreatedAt: time.Now(),
	}
}
