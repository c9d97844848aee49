// Package product contains the product entity and its sunset planning.
package product

import (
	"fmt"
	"time"
)

// Lifecycle is the overall state of a product.
type Lifecycle string

const (
	LifecycleActive     Lifecycle = "active"
	LifecycleSunsetting Lifecycle = "sunsetting"
	LifecycleRetired    Lifecycle = "retired"
)

// IsValid returns true if the lifecycle is a known value.
func (l Lifecycle) IsValid() bool {
	switch l {
	case LifecycleActive, LifecycleSunsetting, LifecycleRetired:
		return true
	default:
		return false
	}
}

// Product is the unit of ownership: ideas, features, releases, sprints and
// flags all belong to a product, which belongs to an organization.
type Product struct {
	ID        string    `json:"id" yaml:"id"`
	OrgID     string    `json:"org_id" yaml:"org_id"`
	Name      string    `json:"name" yaml:"name"`
	Slug      string    `json:"slug" yaml:"slug"`
	Lifecycle Lifecycle `json:"lifecycle" yaml:"lifecycle"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// New creates an active product.
func New(id, orgID, name, slug string) Product {
	return Product{
		ID:        id,
		OrgID:     orgID,
		Name:      name,
		Slug:      slug,
		Lifecycle: LifecycleActive,
		CreatedAt: time.Now(),
	}
}

// Validate checks the product's required fields.
func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if p.Slug == "" {
		return fmt.Errorf("product slug cannot be empty")
	}
	if !p.Lifecycle.IsValid() {
		return fmt.Errorf("invalid product lifecycle: %s", p.Lifecycle)
	}
	return nil
}
