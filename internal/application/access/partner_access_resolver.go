package access

import (
	"context"
	"errors"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// PartnerAccessResolver computes the scoping rules for a partner
// principal from the live grant tables. It is idempotent and
// side-effect free; callers recompute once per request and reuse the
// value within that request only.
type PartnerAccessResolver struct {
	partnerRepo access.PartnerRepository
	logger      *zap.Logger
}

// NewPartnerAccessResolver creates a new partner access resolver
func NewPartnerAccessResolver(partnerRepo access.PartnerRepository, logger *zap.Logger) *PartnerAccessResolver {
	return &PartnerAccessResolver{
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

// Resolve returns nil for any non-partner role, signaling full access
// with no scoping. For a partner principal it folds the active business
// assignments and content grants into a PartnerAccessInfo. A missing or
// inactive partner link yields an info value with empty sets: zero
// access, never full access.
func (r *PartnerAccessResolver) Resolve(ctx context.Context, principal access.Principal) (*access.PartnerAccessInfo, error) {
	if !principal.Role.IsPartner() {
		return nil, nil
	}

	partner, err := r.partnerRepo.FindByUserID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("Partner principal has no partner link",
				zap.String("user_id", principal.ID.String()))
			return access.EmptyPartnerAccess(uuid.Nil), nil
		}
		return nil, err
	}
	if !partner.IsActive {
		return access.EmptyPartnerAccess(partner.ID), nil
	}

	assignments, err := r.partnerRepo.FindBusinessAssignments(ctx, partner.ID)
	if err != nil {
		return nil, err
	}
	grants, err := r.partnerRepo.FindContentGrants(ctx, partner.ID)
	if err != nil {
		return nil, err
	}

	active := lo.Filter(assignments, func(a access.BusinessAssignment, _ int) bool {
		return a.IsActive
	})
	businessIDs := lo.Uniq(lo.Map(active, func(a access.BusinessAssignment, _ int) uuid.UUID {
		return a.BusinessID
	}))
	editable := lo.Uniq(lo.FilterMap(active, func(a access.BusinessAssignment, _ int) (uuid.UUID, bool) {
		return a.BusinessID, a.CanEdit
	}))

	permissions := make(map[access.ContentType][]access.PermissionLevel)
	for _, grant := range grants {
		if !grant.ContentType.IsValid() || !grant.Level.IsValid() {
			// Unknown tags in the grant table are dropped, not trusted
			r.logger.Warn("Skipping malformed content grant",
				zap.String("partner_id", partner.ID.String()),
				zap.String("content_type", string(grant.ContentType)),
				zap.String("level", string(grant.Level)))
			continue
		}
		permissions[grant.ContentType] = append(permissions[grant.ContentType], grant.Level)
	}
	for ct := range permissions {
		permissions[ct] = lo.Uniq(permissions[ct])
	}

	return access.NewPartnerAccessInfo(partner.ID, businessIDs, editable, permissions)
}
