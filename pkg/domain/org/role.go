package org

import "fmt"

// Role is a member's role within an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Action is a named operation gated by role.
type Action string

const (
	ActionManageOrg       Action = "org.manage"
	ActionManageProduct   Action = "product.manage"
	ActionDeclareSunset   Action = "product.sunset"
	ActionEditIdeas       Action = "ideas.edit"
	ActionScoreIdeas      Action = "ideas.score"
	ActionPromoteIdea     Action = "ideas.promote"
	ActionEditFeatures    Action = "features.edit"
	ActionCutRelease      Action = "releases.cut"
	ActionManageFlags     Action = "flags.manage"
	ActionRecordInterview Action = "interviews.record"
	ActionExport          Action = "export"
	ActionView            Action = "view"
)

// permissions is the single authorization table. Every service check routes
// through Role.Can so gating lives in one place instead of per-handler.
var permissions = map[Role]map[Action]bool{
	RoleOwner: {
		ActionManageOrg: true, ActionManageProduct: true, ActionDeclareSunset: true,
		ActionEditIdeas: true, ActionScoreIdeas: true, ActionPromoteIdea: true,
		ActionEditFeatures: true, ActionCutRelease: true, ActionManageFlags: true,
		ActionRecordInterview: true, ActionExport: true, ActionView: true,
	},
	RoleAdmin: {
		ActionManageProduct: true, ActionDeclareSunset: true,
		ActionEditIdeas: true, ActionScoreIdeas: true, ActionPromoteIdea: true,
		ActionEditFeatures: true, ActionCutRelease: true, ActionManageFlags: true,
		ActionRecordInterview: true, ActionExport: true, ActionView: true,
	},
	RoleEditor: {
		ActionEditIdeas: true, ActionScoreIdeas: true,
		ActionEditFeatures: true, ActionRecordInterview: true,
		ActionExport: true, ActionView: true,
	},
	RoleViewer: {
		ActionExport: true, ActionView: true,
	},
}

// AllRoles returns all valid roles.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleEditor, RoleViewer}
}

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Can reports whether the role may perform the action. Unknown roles and
// unknown actions are denied.
func (r Role) Can(a Action) bool {
	table, ok := permissions[r]
	if !ok {
		return false
	}
	return table[a]
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
