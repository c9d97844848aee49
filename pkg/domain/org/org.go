// Package org contains the organization entity and role-based authorization.
package org

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotAMember is returned when an actor is not part of the organization.
var ErrNotAMember = errors.New("not a member of this organization")

// ErrForbidden is returned when a member's role does not allow an action.
var ErrForbidden = errors.New("role does not permit this action")

// Member is a user's membership in an organization.
type Member struct {
	UserID   string    `json:"user_id" yaml:"user_id"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Role     Role      `json:"role" yaml:"role"`
	JoinedAt time.Time `json:"joined_at" yaml:"joined_at"`
}

// Organization owns products and members.
type Organization struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Members   []Member  `json:"members" yaml:"members"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// New creates an organization with its founding owner.
func New(id, name, ownerID string) Organization {
	now := time.Now()
	return Organization{
		ID:   id,
		Name: name,
		Members: []Member{
			{UserID: ownerID, Role: RoleOwner, JoinedAt: now},
		},
		CreatedAt: now,
	}
}

// RoleOf returns the role of a user, or ErrNotAMember.
func (o Organization) RoleOf(userID string) (Role, error) {
	for _, m := range o.Members {
		if m.UserID == userID {
			return m.Role, nil
		}
	}
	return "", ErrNotAMember
}

// Authorize checks that a user may perform an action. This is the one gate
// every mutating service call goes through.
func (o Organization) Authorize(userID string, action Action) error {
	role, err := o.RoleOf(userID)
	if err != nil {
		return err
	}
	if !role.Can(action) {
		return fmt.Errorf("%w: %s cannot %s", ErrForbidden, role, action)
	}
	return nil
}

// AddMember adds a user with the given role. Adding an existing member
// updates their role instead.
func (o *Organization) AddMember(userID string, role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	for i, m := range o.Members {
		if m.UserID == userID {
			o.Members[i].Role = role
			return nil
		}
	}
	o.Members = append(o.Members, Member{UserID: userID, Role: role, JoinedAt: time.Now()})
	return nil
}

// RemoveMember removes a user. The last owner cannot be removed.
func (o *Organization) RemoveMember(userID string) error {
	idx := -1
	owners := 0
	for i, m := range o.Members {
		if m.Role == RoleOwner {
			owners++
		}
		if m.UserID == userID {
			idx = i
		}
	}
	if idx == -1 {
		return ErrNotAMember
	}
	if o.Members[idx].Role == RoleOwner && owners == 1 {
		return fmt.Errorf("cannot remove the last owner")
	}
	o.Members = append(o.Members[:idx], o.Members[idx+1:]...)
	return nil
}
