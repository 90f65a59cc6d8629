package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTokenVerifier is a mock implementation of TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

// MockTokenBlacklist is a mock implementation of auth.TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func claimsFor(user *identity.User, jti string) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: jti},
		UserID:           user.ID.String(),
		Email:            user.Email,
	}
}

func activeUser(t *testing.T, role access.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("user@example.com", "Test User", "Password123!", role)
	require.NoError(t, err)
	return user
}

func TestPrincipalResolver_EmptyTokenRejected(t *testing.T) {
	resolver := NewPrincipalResolver(new(MockTokenVerifier), nil, new(MockUserRepository), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "")

	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestPrincipalResolver_InvalidTokenRejected(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "garbage").Return(nil, errors.New("token is malformed"))

	resolver := NewPrincipalResolver(verifier, nil, new(MockUserRepository), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "garbage")

	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestPrincipalResolver_BlacklistedTokenRejected(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, access.RoleStaff)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "revoked").Return(claimsFor(user, "jti-1"), nil)

	blacklist := new(MockTokenBlacklist)
	blacklist.On("IsBlacklisted", ctx, "jti-1").Return(true, nil)

	userRepo := new(MockUserRepository)
	resolver := NewPrincipalResolver(verifier, blacklist, userRepo, zap.NewNop())

	_, err := resolver.Resolve(ctx, "revoked")

	require.ErrorIs(t, err, shared.ErrUnauthenticated)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPrincipalResolver_RoleComesFromStoreNotToken(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, access.RolePartner)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "valid").Return(claimsFor(user, "jti-2"), nil)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	resolver := NewPrincipalResolver(verifier, nil, userRepo, zap.NewNop())

	principal, err := resolver.Resolve(ctx, "valid")

	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, access.RolePartner, principal.Role)
	assert.True(t, principal.IsActive)
}

func TestPrincipalResolver_DeactivatedUserRejected(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, access.RoleStaff)
	require.NoError(t, user.Deactivate())

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "valid").Return(claimsFor(user, "jti-3"), nil)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	resolver := NewPrincipalResolver(verifier, nil, userRepo, zap.NewNop())

	_, err := resolver.Resolve(ctx, "valid")

	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestPrincipalResolver_DeletedUserRejected(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, access.RoleStaff)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "valid").Return(claimsFor(user, "jti-4"), nil)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

	resolver := NewPrincipalResolver(verifier, nil, userRepo, zap.NewNop())

	_, err := resolver.Resolve(ctx, "valid")

	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestPrincipalResolver_BlacklistBackendErrorFailsOpen(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, access.RoleStaff)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "valid").Return(claimsFor(user, "jti-5"), nil)

	blacklist := new(MockTokenBlacklist)
	blacklist.On("IsBlacklisted", ctx, "jti-5").Return(false, errors.New("redis down"))

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	resolver := NewPrincipalResolver(verifier, blacklist, userRepo, zap.NewNop())

	principal, err := resolver.Resolve(ctx, "valid")

	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
}
