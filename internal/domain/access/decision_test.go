package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffPrincipal() Principal {
	return Principal{
		ID:       uuid.New(),
		Email:    "staff@example.com",
		Name:     "Staff",
		Role:     RoleStaff,
		IsActive: true,
	}
}

func partnerPrincipal() Principal {
	return Principal{
		ID:       uuid.New(),
		Email:    "partner@example.com",
		Name:     "Partner",
		Role:     RolePartner,
		IsActive: true,
	}
}

func partnerAccess(t *testing.T, businessIDs, editable []uuid.UUID, perms map[ContentType][]PermissionLevel) *PartnerAccessInfo {
	t.Helper()
	info, err := NewPartnerAccessInfo(uuid.New(), businessIDs, editable, perms)
	require.NoError(t, err)
	return info
}

func TestDecide_InactivePrincipalDenied(t *testing.T) {
	principal := staffPrincipal()
	principal.IsActive = false

	decision := Decide(principal, nil, Resource{Entity: "Customer"}, ActionRead)

	assert.Equal(t, EffectDeny, decision.Effect)
	assert.False(t, decision.Allowed())
}

func TestDecide_InternalRolesBypassScoping(t *testing.T) {
	resource := Resource{Entity: "Customer", Content: ContentCustomer, BusinessID: uuid.New()}

	for _, role := range []Role{RoleAdmin, RoleStaff, RoleFinance} {
		principal := staffPrincipal()
		principal.Role = role

		decision := Decide(principal, nil, resource, ActionUpdate)

		assert.Equal(t, EffectAllow, decision.Effect, "role %s", role)
		assert.Nil(t, decision.Filter)
	}
}

func TestDecide_PartnerWithoutAccessDenied(t *testing.T) {
	principal := partnerPrincipal()
	resource := Resource{Entity: "Customer", Content: ContentCustomer}

	decision := Decide(principal, nil, resource, ActionRead)
	assert.Equal(t, EffectDeny, decision.Effect)

	decision = Decide(principal, EmptyPartnerAccess(uuid.New()), resource, ActionRead)
	assert.Equal(t, EffectDeny, decision.Effect)
}

func TestDecide_PartnerReadInScopeIsScoped(t *testing.T) {
	businessID := uuid.New()
	info := partnerAccess(t,
		[]uuid.UUID{businessID}, nil,
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView}},
	)

	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:     "Customer",
		Content:    ContentCustomer,
		BusinessID: businessID,
	}, ActionRead)

	assert.Equal(t, EffectScope, decision.Effect)
	require.NotNil(t, decision.Filter)
	assert.Equal(t, info.PartnerID, decision.Filter.PartnerID)
	assert.Equal(t, []uuid.UUID{businessID}, decision.Filter.BusinessIDs)
}

func TestDecide_PartnerOutOfScopeBusinessDenied(t *testing.T) {
	info := partnerAccess(t,
		[]uuid.UUID{uuid.New()}, nil,
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView}},
	)

	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:     "Customer",
		Content:    ContentCustomer,
		BusinessID: uuid.New(),
	}, ActionRead)

	assert.Equal(t, EffectDeny, decision.Effect)
}

func TestDecide_ContentGateRequiresView(t *testing.T) {
	businessID := uuid.New()
	info := partnerAccess(t,
		[]uuid.UUID{businessID}, nil,
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView}},
	)

	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:     "Payment",
		Content:    ContentPayment,
		BusinessID: businessID,
	}, ActionRead)

	assert.Equal(t, EffectDeny, decision.Effect)
}

func TestDecide_WriteRequiresEditPermission(t *testing.T) {
	businessID := uuid.New()
	info := partnerAccess(t,
		[]uuid.UUID{businessID},
		[]uuid.UUID{businessID},
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView}},
	)

	resource := Resource{Entity: "Customer", Content: ContentCustomer, BusinessID: businessID}

	// View-only grant covers reads but not writes on the same content
	decision := Decide(partnerPrincipal(), info, resource, ActionRead)
	assert.Equal(t, EffectScope, decision.Effect)

	decision = Decide(partnerPrincipal(), info, resource, ActionUpdate)
	assert.Equal(t, EffectDeny, decision.Effect)
}

func TestDecide_WriteRequiresEditableBusiness(t *testing.T) {
	readable := uuid.New()
	editable := uuid.New()
	info := partnerAccess(t,
		[]uuid.UUID{readable, editable},
		[]uuid.UUID{editable},
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView, PermissionEdit}},
	)

	// Write to the read-only business is denied even though reads pass
	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:     "Customer",
		Content:    ContentCustomer,
		BusinessID: readable,
	}, ActionUpdate)
	assert.Equal(t, EffectDeny, decision.Effect)

	decision = Decide(partnerPrincipal(), info, Resource{
		Entity:     "Customer",
		Content:    ContentCustomer,
		BusinessID: editable,
	}, ActionUpdate)
	assert.Equal(t, EffectScope, decision.Effect)
}

func TestDecide_ListingWithoutBusinessIsScoped(t *testing.T) {
	businessID := uuid.New()
	info := partnerAccess(t,
		[]uuid.UUID{businessID}, nil,
		map[ContentType][]PermissionLevel{ContentCustomer: {PermissionView}},
	)

	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:  "Customer",
		Content: ContentCustomer,
	}, ActionRead)

	assert.Equal(t, EffectScope, decision.Effect)
	require.NotNil(t, decision.Filter)
	assert.Equal(t, []uuid.UUID{businessID}, decision.Filter.BusinessIDs)
}

func TestDecide_UngatedEntityStillScopedForPartner(t *testing.T) {
	businessID := uuid.New()
	info := partnerAccess(t, []uuid.UUID{businessID}, nil, nil)

	decision := Decide(partnerPrincipal(), info, Resource{
		Entity:     "Business",
		BusinessID: businessID,
	}, ActionRead)

	assert.Equal(t, EffectScope, decision.Effect)
}
