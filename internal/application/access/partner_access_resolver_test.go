package access

import (
	"context"
	"testing"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPartnerRepository is a mock implementation of access.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*access.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindBusinessAssignments(ctx context.Context, partnerID uuid.UUID) ([]access.BusinessAssignment, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]access.BusinessAssignment), args.Error(1)
}

func (m *MockPartnerRepository) FindContentGrants(ctx context.Context, partnerID uuid.UUID) ([]access.ContentGrant, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]access.ContentGrant), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, partner *access.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) SaveBusinessAssignment(ctx context.Context, assignment *access.BusinessAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockPartnerRepository) SaveContentGrant(ctx context.Context, grant *access.ContentGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func testPartner(userID uuid.UUID) *access.Partner {
	partner, _ := access.NewPartner(userID, "Acme Partners")
	return partner
}

func assignment(t *testing.T, partnerID, businessID uuid.UUID, canEdit bool) access.BusinessAssignment {
	t.Helper()
	a, err := access.NewBusinessAssignment(partnerID, businessID, canEdit)
	require.NoError(t, err)
	return *a
}

func grant(t *testing.T, partnerID uuid.UUID, ct access.ContentType, level access.PermissionLevel) access.ContentGrant {
	t.Helper()
	g, err := access.NewContentGrant(partnerID, ct, level)
	require.NoError(t, err)
	return *g
}

func TestPartnerAccessResolver_NonPartnerRoleIsUnscoped(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())

	info, err := resolver.Resolve(ctx, access.Principal{
		ID:       uuid.New(),
		Role:     access.RoleStaff,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Nil(t, info)
	repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestPartnerAccessResolver_MissingLinkYieldsZeroAccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)

	info, err := resolver.Resolve(ctx, access.Principal{
		ID:       userID,
		Role:     access.RolePartner,
		IsActive: true,
	})

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.IsEmpty())
}

func TestPartnerAccessResolver_InactivePartnerYieldsZeroAccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())
	userID := uuid.New()

	partner := testPartner(userID)
	partner.IsActive = false
	repo.On("FindByUserID", ctx, userID).Return(partner, nil)

	info, err := resolver.Resolve(ctx, access.Principal{
		ID:       userID,
		Role:     access.RolePartner,
		IsActive: true,
	})

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.IsEmpty())
	repo.AssertNotCalled(t, "FindBusinessAssignments", mock.Anything, mock.Anything)
}

func TestPartnerAccessResolver_FoldsAssignmentsAndGrants(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())
	userID := uuid.New()

	partner := testPartner(userID)
	viewOnly := uuid.New()
	editableID := uuid.New()
	inactiveID := uuid.New()

	inactive := assignment(t, partner.ID, inactiveID, true)
	inactive.IsActive = false

	repo.On("FindByUserID", ctx, userID).Return(partner, nil)
	repo.On("FindBusinessAssignments", ctx, partner.ID).Return([]access.BusinessAssignment{
		assignment(t, partner.ID, viewOnly, false),
		assignment(t, partner.ID, editableID, true),
		inactive,
	}, nil)
	repo.On("FindContentGrants", ctx, partner.ID).Return([]access.ContentGrant{
		grant(t, partner.ID, access.ContentCustomer, access.PermissionView),
		grant(t, partner.ID, access.ContentCustomer, access.PermissionEdit),
		grant(t, partner.ID, access.ContentPayment, access.PermissionView),
	}, nil)

	info, err := resolver.Resolve(ctx, access.Principal{
		ID:       userID,
		Role:     access.RolePartner,
		IsActive: true,
	})

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.ElementsMatch(t, []uuid.UUID{viewOnly, editableID}, info.BusinessIDs)
	assert.Equal(t, []uuid.UUID{editableID}, info.EditableBusinessIDs)
	assert.False(t, info.HasBusiness(inactiveID))
	assert.True(t, info.HasContentPermission(access.ContentCustomer, access.PermissionEdit))
	assert.True(t, info.HasContentPermission(access.ContentPayment, access.PermissionView))
	assert.False(t, info.HasContentPermission(access.ContentPayment, access.PermissionEdit))
}

func TestPartnerAccessResolver_ResolveIsRepeatable(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())
	userID := uuid.New()

	partner := testPartner(userID)
	businessID := uuid.New()

	repo.On("FindByUserID", ctx, userID).Return(partner, nil)
	repo.On("FindBusinessAssignments", ctx, partner.ID).Return([]access.BusinessAssignment{
		assignment(t, partner.ID, businessID, true),
	}, nil)
	repo.On("FindContentGrants", ctx, partner.ID).Return([]access.ContentGrant{
		grant(t, partner.ID, access.ContentCustomer, access.PermissionView),
	}, nil)

	principal := access.Principal{ID: userID, Role: access.RolePartner, IsActive: true}

	first, err := resolver.Resolve(ctx, principal)
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, principal)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPartnerAccessResolver_DropsMalformedGrants(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartnerRepository)
	resolver := NewPartnerAccessResolver(repo, zap.NewNop())
	userID := uuid.New()

	partner := testPartner(userID)
	businessID := uuid.New()

	repo.On("FindByUserID", ctx, userID).Return(partner, nil)
	repo.On("FindBusinessAssignments", ctx, partner.ID).Return([]access.BusinessAssignment{
		assignment(t, partner.ID, businessID, false),
	}, nil)
	repo.On("FindContentGrants", ctx, partner.ID).Return([]access.ContentGrant{
		{PartnerID: partner.ID, ContentType: "invoice", Level: access.PermissionView},
	}, nil)

	info, err := resolver.Resolve(ctx, access.Principal{
		ID:       userID,
		Role:     access.RolePartner,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Empty(t, info.ContentPermissions)
}
