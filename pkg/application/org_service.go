package application

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/compasshq/compass/pkg/domain/product"
)

// OrgService manages workspace initialization and organization membership.
type OrgService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewOrgService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *OrgService {
	return &OrgService{repo: repo, audit: audit}
}

// InitWorkspace creates the workspace directory, the organization, and the
// product in one step. The initializing user becomes the owner.
func (s *OrgService) InitWorkspace(orgName, productName, slug, owner string) (*product.Product, error) {
	if s.repo.IsInitialized() {
		return nil, fmt.Errorf("workspace already initialized")
	}
	if err := s.repo.Initialize(); err != nil {
		return nil, err
	}

	o := org.New(uuid.New().String(), orgName, owner)
	if err := s.repo.SaveOrg(&o); err != nil {
		return nil, err
	}

	p := product.New(uuid.New().String(), o.ID, productName, slug)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProduct(&p); err != nil {
		return nil, err
	}

	return &p, s.audit.Log(events.TypeSyncRun, "org", o.ID, owner, map[string]any{
		"action":  "workspace.init",
		"org":     orgName,
		"product": productName,
	})
}

// GetOrg returns the workspace organization.
func (s *OrgService) GetOrg() (*org.Organization, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return s.repo.LoadOrg()
}

// GetProduct returns the workspace product.
func (s *OrgService) GetProduct() (*product.Product, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	p, err := s.repo.LoadProduct()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProduct
	}
	return p, nil
}

// AddMember adds a user to the organization or updates their role.
func (s *OrgService) AddMember(actor, userID string, role org.Role) error {
	o, err := s.requireOrg()
	if err != nil {
		return err
	}
	if err := o.Authorize(actor, org.ActionManageOrg); err != nil {
		return err
	}
	if err := o.AddMember(userID, role); err != nil {
		return err
	}
	return s.repo.SaveOrg(o)
}

// RemoveMember removes a user from the organization.
func (s *OrgService) RemoveMember(actor, userID string) error {
	o, err := s.requireOrg()
	if err != nil {
		return err
	}
	if err := o.Authorize(actor, org.ActionManageOrg); err != nil {
		return err
	}
	if err := o.RemoveMember(userID); err != nil {
		return err
	}
	return s.repo.SaveOrg(o)
}

func (s *OrgService) requireOrg() (*org.Organization, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	o, err := s.repo.LoadOrg()
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("no organization configured")
	}
	return o, nil
}

// authorize checks an actor against the workspace organization. Workspaces
// without an organization file are treated as single-user and allow
// everything.
func authorize(repo domain.WorkspaceRepository, actor string, action org.Action) error {
	o, err := repo.LoadOrg()
	if err != nil {
		return err
	}
	if o == nil {
		return nil
	}
	return o.Authorize(actor, action)
}
