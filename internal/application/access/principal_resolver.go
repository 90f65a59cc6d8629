package access

import (
	"context"
	"errors"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier abstracts the session/credential verification mechanism
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// PrincipalResolver turns an opaque session token into a live,
// freshly-verified Principal, or fails closed with Unauthenticated.
type PrincipalResolver struct {
	verifier  TokenVerifier
	blacklist auth.TokenBlacklist
	userRepo  identity.UserRepository
	logger    *zap.Logger
}

// NewPrincipalResolver creates a new principal resolver. The blacklist
// is optional; pass nil to skip revocation checks.
func NewPrincipalResolver(
	verifier TokenVerifier,
	blacklist auth.TokenBlacklist,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *PrincipalResolver {
	return &PrincipalResolver{
		verifier:  verifier,
		blacklist: blacklist,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Resolve verifies the session token and re-fetches the user row from
// the durable store. Nothing beyond identity is trusted from the token:
// role and active status always come from the store, so a deactivated
// account loses access before its session naturally expires.
func (r *PrincipalResolver) Resolve(ctx context.Context, rawToken string) (*access.Principal, error) {
	if rawToken == "" {
		return nil, shared.ErrUnauthenticated
	}

	claims, err := r.verifier.Verify(rawToken)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}

	if r.blacklist != nil && claims.ID != "" {
		blacklisted, err := r.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Fail open on blacklist backend errors for availability;
			// the short token lifetime bounds the exposure.
			r.logger.Error("Failed to check token blacklist",
				zap.String("jti", claims.ID),
				zap.Error(err))
		} else if blacklisted {
			return nil, shared.ErrUnauthenticated
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}

	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsActive {
		r.logger.Warn("Rejected session of deactivated user",
			zap.String("user_id", user.ID.String()))
		return nil, shared.ErrUnauthenticated
	}

	principal := user.Principal()
	return &principal, nil
}
