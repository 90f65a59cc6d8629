package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPartnerAccessResolver is a mock implementation of PartnerAccessResolver
type MockPartnerAccessResolver struct {
	mock.Mock
}

func (m *MockPartnerAccessResolver) Resolve(ctx context.Context, principal access.Principal) (*access.PartnerAccessInfo, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.PartnerAccessInfo), args.Error(1)
}

// MockLogRepository is a mock implementation of audit.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]audit.LogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLogRepository) FindByEntity(ctx context.Context, entity string, entityID uuid.UUID, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	args := m.Called(ctx, entity, entityID, filter)
	return args.Get(0).([]audit.LogEntry), args.Get(1).(int64), args.Error(2)
}

// MockVersionRepository is a mock implementation of audit.VersionRepository
type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) Append(ctx context.Context, version *audit.DataVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockVersionRepository) FindByEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]audit.DataVersion, error) {
	args := m.Called(ctx, entity, entityID)
	return args.Get(0).([]audit.DataVersion), args.Error(1)
}

func (m *MockVersionRepository) FindAsOf(ctx context.Context, entity string, entityID uuid.UUID, asOf time.Time) (*audit.DataVersion, error) {
	args := m.Called(ctx, entity, entityID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.DataVersion), args.Error(1)
}

// stubEntity is a minimal Snapshotter for exercising the facade
type stubEntity struct {
	id   uuid.UUID
	name string
}

func (e *stubEntity) GetID() uuid.UUID { return e.id }

func (e *stubEntity) Snapshot() map[string]any {
	return map[string]any{"id": e.id.String(), "name": e.name}
}

type facadeFixture struct {
	resolver    *MockPartnerAccessResolver
	auditRepo   *MockLogRepository
	versionRepo *MockVersionRepository
	facade      *Facade
}

func newFacadeFixture() *facadeFixture {
	resolver := new(MockPartnerAccessResolver)
	auditRepo := new(MockLogRepository)
	versionRepo := new(MockVersionRepository)
	return &facadeFixture{
		resolver:    resolver,
		auditRepo:   auditRepo,
		versionRepo: versionRepo,
		facade:      NewFacade(resolver, access.DefaultPolicies(), auditRepo, versionRepo, zap.NewNop()),
	}
}

func adminPrincipal() access.Principal {
	return access.Principal{
		ID:       uuid.New(),
		Email:    "admin@example.com",
		Name:     "Admin",
		Role:     access.RoleAdmin,
		IsActive: true,
	}
}

func TestFacade_Create_WritesAuditAndVersion(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	entity := &stubEntity{id: uuid.New(), name: "acme"}

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)
	f.auditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.LogEntry) bool {
		return e.Action == access.ActionCreate &&
			e.Entity == "Customer" &&
			e.EntityID == entity.id &&
			e.Before == nil &&
			e.After != nil
	})).Return(nil)
	f.versionRepo.On("Append", ctx, mock.MatchedBy(func(v *audit.DataVersion) bool {
		return v.Entity == "Customer" &&
			v.EntityID == entity.id &&
			v.ChangeType == access.ActionCreate &&
			v.ChangedBy == principal.ID
	})).Return(nil)

	result, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return entity, nil
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity, result)
	f.auditRepo.AssertExpectations(t)
	f.versionRepo.AssertExpectations(t)
	f.auditRepo.AssertNumberOfCalls(t, "Append", 1)
	f.versionRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestFacade_Update_CarriesBeforeAndAfter(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	entity := &stubEntity{id: uuid.New(), name: "renamed"}

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)
	f.auditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.LogEntry) bool {
		return e.Action == access.ActionUpdate &&
			e.Before["name"] == "original" &&
			e.After["name"] == "renamed"
	})).Return(nil)
	f.versionRepo.On("Append", ctx, mock.Anything).Return(nil)

	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "Customer",
		EntityID:  entity.id,
		Before: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{"id": entity.id.String(), "name": "original"}, nil
		},
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return entity, nil
		},
	})

	require.NoError(t, err)
	f.auditRepo.AssertExpectations(t)
	f.versionRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestFacade_SoftDelete_AuditsWithoutVersion(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	entityID := uuid.New()

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)
	f.auditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.LogEntry) bool {
		return e.Action == access.ActionSoftDelete &&
			e.Before != nil &&
			e.After == nil
	})).Return(nil)

	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionSoftDelete,
		Entity:    "Customer",
		EntityID:  entityID,
		Before: func(ctx context.Context) (map[string]any, error) {
			return map[string]any{"id": entityID.String(), "name": "gone"}, nil
		},
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return nil, nil
		},
	})

	require.NoError(t, err)
	f.auditRepo.AssertExpectations(t)
	f.versionRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestFacade_DeniedMutationWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	principal.Role = access.RoleStaff

	executed := false
	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Budget",
		Execute: func(ctx context.Context) (Snapshotter, error) {
			executed = true
			return &stubEntity{id: uuid.New()}, nil
		},
	})

	require.ErrorIs(t, err, shared.ErrForbidden)
	assert.False(t, executed)
	f.auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.versionRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestFacade_PartnerScopeDenialBeforeExecute(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	principal.Role = access.RolePartner

	f.resolver.On("Resolve", ctx, principal).Return(access.EmptyPartnerAccess(uuid.New()), nil)

	executed := false
	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Resource:  access.Resource{Entity: "Customer", BusinessID: uuid.New()},
		Execute: func(ctx context.Context) (Snapshotter, error) {
			executed = true
			return &stubEntity{id: uuid.New()}, nil
		},
	})

	require.ErrorIs(t, err, shared.ErrForbidden)
	assert.False(t, executed)
}

func TestFacade_ExecuteFailureSkipsAudit(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)

	storeErr := errors.New("constraint violation")
	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return nil, storeErr
		},
	})

	require.ErrorIs(t, err, storeErr)
	f.auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestFacade_AuditFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	entity := &stubEntity{id: uuid.New(), name: "acme"}

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)
	f.auditRepo.On("Append", ctx, mock.Anything).Return(errors.New("audit store down"))
	f.versionRepo.On("Append", ctx, mock.Anything).Return(nil)

	result, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return entity, nil
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity, result)
}

func TestFacade_UpdateRequiresBeforeLoader(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)

	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "Customer",
		EntityID:  uuid.New(),
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return &stubEntity{id: uuid.New()}, nil
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MUTATION", domainErr.Code)
}

func TestFacade_RequestMetadataReachesAudit(t *testing.T) {
	f := newFacadeFixture()
	principal := adminPrincipal()
	entity := &stubEntity{id: uuid.New(), name: "acme"}

	ctx := WithRequestMetadata(context.Background(), audit.RequestMetadata{
		Method:    "POST",
		Path:      "/api/v1/customers",
		IP:        "10.0.0.7",
		UserAgent: "Firefox/142.0",
	})

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)
	f.auditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.LogEntry) bool {
		return e.Metadata.Method == "POST" &&
			e.Metadata.Path == "/api/v1/customers" &&
			e.Metadata.IP == "10.0.0.7"
	})).Return(nil)
	f.versionRepo.On("Append", ctx, mock.Anything).Return(nil)

	_, err := f.facade.Mutate(ctx, Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Execute: func(ctx context.Context) (Snapshotter, error) {
			return entity, nil
		},
	})

	require.NoError(t, err)
	f.auditRepo.AssertExpectations(t)
}

func TestFacade_AuthorizeRead_RolePolicyEnforced(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	principal.Role = access.RoleStaff

	_, err := f.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "AuditLog"})

	require.ErrorIs(t, err, shared.ErrForbidden)
	f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestFacade_AuthorizeRead_PartnerGetsScopeFilter(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()
	principal.Role = access.RolePartner

	businessID := uuid.New()
	info, err := access.NewPartnerAccessInfo(uuid.New(), []uuid.UUID{businessID}, nil,
		map[access.ContentType][]access.PermissionLevel{
			access.ContentCustomer: {access.PermissionView},
		})
	require.NoError(t, err)

	f.resolver.On("Resolve", ctx, principal).Return(info, nil)

	filter, err := f.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer"})

	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, []uuid.UUID{businessID}, filter.BusinessIDs)
}

func TestFacade_AuthorizeRead_UnscopedForInternalRoles(t *testing.T) {
	ctx := context.Background()
	f := newFacadeFixture()
	principal := adminPrincipal()

	f.resolver.On("Resolve", ctx, principal).Return(nil, nil)

	filter, err := f.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer"})

	require.NoError(t, err)
	assert.Nil(t, filter)
}
