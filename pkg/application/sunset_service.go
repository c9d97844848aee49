package application

import (
	"fmt"
	"time"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
)

// SunsetService manages the product end-of-life process. Declaring a sunset
// requires owner or admin rights.
type SunsetService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewSunsetService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *SunsetService {
	return &SunsetService{repo: repo, audit: audit}
}

// Declare starts the sunset process: the plan is validated and saved, and
// the product lifecycle moves to sunsetting.
func (s *SunsetService) Declare(actor string, plan product.SunsetPlan) error {
	if !s.repo.IsInitialized() {
		return ErrNotInitialized
	}
	if err := authorize(s.repo, actor, org.ActionDeclareSunset); err != nil {
		return err
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProduct
	}
	if p.Lifecycle == product.LifecycleRetired {
		return fmt.Errorf("product is already retired")
	}

	plan.ProductID = p.ID
	if plan.AnnouncedAt.IsZero() {
		plan.AnnouncedAt = time.Now()
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	if err := s.repo.SaveSunsetPlan(&plan); err != nil {
		return err
	}

	p.Lifecycle = product.LifecycleSunsetting
	if err := s.repo.SaveProduct(p); err != nil {
		return err
	}

	return s.audit.Log(events.TypeSunsetDeclared, "product", p.ID, actor, map[string]any{
		"end_of_life": plan.EndOfLifeAt.Format(time.RFC3339),
		"reason":      plan.Reason,
	})
}

// Plan returns the current sunset plan, or nil when none is declared.
func (s *SunsetService) Plan() (*product.SunsetPlan, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadSunsetPlan()
}

// CompleteMilestone marks a named milestone done.
func (s *SunsetService) CompleteMilestone(actor, name string) error {
	if err := authorize(s.repo, actor, org.ActionDeclareSunset); err != nil {
		return err
	}

	plan, err := s.Plan()
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no sunset plan declared")
	}

	for i := range plan.Milestones {
		if plan.Milestones[i].Name == name {
			plan.Milestones[i].Done = true
			return s.repo.SaveSunsetPlan(plan)
		}
	}
	return fmt.Errorf("milestone not found: %s", name)
}

// Retire finalizes the sunset once the end-of-life date has passed.
func (s *SunsetService) Retire(actor string) error {
	if err := authorize(s.repo, actor, org.ActionDeclareSunset); err != nil {
		return err
	}

	plan, err := s.Plan()
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no sunset plan declared")
	}
	if time.Now().Before(plan.EndOfLifeAt) {
		return fmt.Errorf("end of life date %s has not passed yet", plan.EndOfLifeAt.Format("2006-01-02"))
	}

	p, err := s.repo.LoadProduct()
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProduct
	}
	p.Lifecycle = product.LifecycleRetired
	return s.repo.SaveProduct(p)
}
