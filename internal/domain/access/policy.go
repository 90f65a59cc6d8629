package access

import (
	"slices"
)

// OperationPolicy declares who may perform an action on an entity type.
// Policies are consumed uniformly by the mutation facade instead of
// re-implementing role checks ad hoc in every handler.
type OperationPolicy struct {
	Entity string
	Action Action
	// RequiredRoles restricts the operation to the listed roles.
	// Empty means any authenticated role.
	RequiredRoles []Role
	// Content is the content-category gate applied to partner principals.
	Content ContentType
}

// RoleAllowed returns true if the role satisfies the policy
func (p OperationPolicy) RoleAllowed(role Role) bool {
	if len(p.RequiredRoles) == 0 {
		return true
	}
	return slices.Contains(p.RequiredRoles, role)
}

type policyKey struct {
	entity string
	action Action
}

// PolicyRegistry holds the declarative per-operation policies
type PolicyRegistry struct {
	policies map[policyKey]OperationPolicy
}

// NewPolicyRegistry creates an empty registry
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[policyKey]OperationPolicy)}
}

// Register adds a policy for one entity/action pair
func (r *PolicyRegistry) Register(p OperationPolicy) {
	r.policies[policyKey{entity: p.Entity, action: p.Action}] = p
}

// RegisterEntity adds the same content gate and role set for all mutating
// actions of an entity type.
func (r *PolicyRegistry) RegisterEntity(entity string, content ContentType, requiredRoles ...Role) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionSoftDelete, ActionDelete} {
		r.Register(OperationPolicy{
			Entity:        entity,
			Action:        action,
			RequiredRoles: requiredRoles,
			Content:       content,
		})
	}
}

// RegisterRead adds the read policy for an entity type
func (r *PolicyRegistry) RegisterRead(entity string, content ContentType, requiredRoles ...Role) {
	r.Register(OperationPolicy{
		Entity:        entity,
		Action:        ActionRead,
		RequiredRoles: requiredRoles,
		Content:       content,
	})
}

// PolicyFor returns the policy for an entity/action pair. The fallback
// for unregistered operations is an open policy with no content gate.
func (r *PolicyRegistry) PolicyFor(entity string, action Action) OperationPolicy {
	if p, ok := r.policies[policyKey{entity: entity, action: action}]; ok {
		return p
	}
	return OperationPolicy{Entity: entity, Action: action}
}

// DefaultPolicies returns the registry for the managed entity types.
// Budget writes are admin-only; everything else is open to any role,
// with partner principals still subject to scope decisions.
func DefaultPolicies() *PolicyRegistry {
	r := NewPolicyRegistry()
	r.RegisterEntity("Customer", ContentCustomer)
	r.RegisterRead("Customer", ContentCustomer)
	r.RegisterEntity("Payment", ContentPayment)
	r.RegisterRead("Payment", ContentPayment)
	r.RegisterEntity("WorkflowTemplate", ContentWorkflowTemplate)
	r.RegisterRead("WorkflowTemplate", ContentWorkflowTemplate)
	r.RegisterEntity("Budget", ContentBudget, RoleAdmin)
	r.RegisterRead("Budget", ContentBudget)
	r.RegisterEntity("Business", "", RoleAdmin, RoleStaff)
	r.RegisterRead("Business", "")
	r.RegisterEntity("User", "", RoleAdmin)
	r.RegisterRead("User", "", RoleAdmin)
	r.RegisterEntity("Partner", "", RoleAdmin)
	r.RegisterRead("Partner", "", RoleAdmin)
	r.RegisterEntity("BusinessAssignment", "", RoleAdmin)
	r.RegisterRead("BusinessAssignment", "", RoleAdmin)
	r.RegisterEntity("ContentGrant", "", RoleAdmin)
	r.RegisterRead("ContentGrant", "", RoleAdmin)
	r.RegisterRead("AuditLog", "", RoleAdmin)
	r.RegisterRead("DataVersion", "", RoleAdmin)
	return r
}
