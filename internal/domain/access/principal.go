package access

import (
	"github.com/google/uuid"
)

// Role represents the role of an authenticated principal
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleFinance Role = "finance"
	RolePartner Role = "partner"
)

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleFinance, RolePartner:
		return true
	}
	return false
}

// IsPartner returns true if the role is the restricted partner role
func (r Role) IsPartner() bool {
	return r == RolePartner
}

// Principal is the authenticated actor making a request.
// It is an immutable snapshot taken at resolution time and is re-derived
// from the durable store on every request, never trusted from a cached
// token, so deactivation takes effect immediately.
type Principal struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Role     Role
	IsActive bool
}

// Action represents an operation requested against a resource
type Action string

const (
	ActionCreate     Action = "create"
	ActionRead       Action = "read"
	ActionUpdate     Action = "update"
	ActionSoftDelete Action = "soft_delete"
	ActionDelete     Action = "delete"
)

// IsValid returns true if the action is a known action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionSoftDelete, ActionDelete:
		return true
	}
	return false
}

// IsWrite returns true if the action mutates state
func (a Action) IsWrite() bool {
	return a != ActionRead
}

// IsMutation returns true for actions recorded in the audit trail
func (a Action) IsMutation() bool {
	return a.IsValid() && a != ActionRead
}
