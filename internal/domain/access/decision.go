package access

import (
	"github.com/google/uuid"
)

// Effect is the outcome of an access decision
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
	EffectScope Effect = "scope"
)

// ScopeFilter is the additional predicate a caller must intersect into
// any listing query when the decision is Scope. It is a struct rather
// than an opaque closure so the persistence layer can translate it
// into SQL.
type ScopeFilter struct {
	PartnerID   uuid.UUID
	BusinessIDs []uuid.UUID
}

// Decision is the result of evaluating a principal against a resource
type Decision struct {
	Effect Effect
	Filter *ScopeFilter
	Reason string
}

// Allowed returns true unless the decision is Deny
func (d Decision) Allowed() bool {
	return d.Effect != EffectDeny
}

// Allow builds an unconditional allow decision
func Allow() Decision {
	return Decision{Effect: EffectAllow}
}

// Deny builds a deny decision with a reason for logging
func Deny(reason string) Decision {
	return Decision{Effect: EffectDeny, Reason: reason}
}

// Scoped builds a scope decision carrying the filter to intersect
func Scoped(filter ScopeFilter) Decision {
	return Decision{Effect: EffectScope, Filter: &filter}
}

// Resource identifies the target of an access check
type Resource struct {
	// Entity is the entity-type name, e.g. "Customer"
	Entity string
	// Content is the content-category gate, empty when ungated
	Content ContentType
	// BusinessID is the owning business unit, uuid.Nil when not business-owned
	BusinessID uuid.UUID
}

// Decide combines the principal's role, the partner access scope and the
// requested resource into an access decision. It is a pure function:
// no store access, no side effects.
//
// Read and write scopes are enforced independently: a write action must
// pass the editable-business check even when read access to the same
// business was already granted.
func Decide(principal Principal, partnerAccess *PartnerAccessInfo, resource Resource, action Action) Decision {
	// Resolver should already have rejected inactive principals;
	// rechecking here keeps the engine safe when called directly.
	if !principal.IsActive {
		return Deny("principal is inactive")
	}

	if !principal.Role.IsPartner() {
		return Allow()
	}

	if partnerAccess == nil || partnerAccess.IsEmpty() {
		return Deny("partner has no business assignments")
	}

	if resource.BusinessID != uuid.Nil && !partnerAccess.HasBusiness(resource.BusinessID) {
		return Deny("resource business is outside partner scope")
	}

	if resource.Content != "" {
		required := PermissionView
		if action.IsWrite() {
			required = PermissionEdit
		}
		if !partnerAccess.HasContentPermission(resource.Content, required) {
			return Deny("partner lacks content permission: " + string(required))
		}
	}

	if action.IsWrite() && resource.BusinessID != uuid.Nil &&
		!partnerAccess.CanEditBusiness(resource.BusinessID) {
		return Deny("resource business is not editable by partner")
	}

	return Scoped(ScopeFilter{
		PartnerID:   partnerAccess.PartnerID,
		BusinessIDs: partnerAccess.BusinessIDs,
	})
}
