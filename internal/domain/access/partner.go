package access

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Partner is the restricted external-role link record tying a user to
// a set of business and content grants.
type Partner struct {
	shared.BaseEntity
	UserID   uuid.UUID
	Name     string
	IsActive bool
}

// NewPartner creates a new active partner link for a user
func NewPartner(userID uuid.UUID, name string) (*Partner, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARTNER_NAME", "Partner name cannot be empty")
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
		IsActive:   true,
	}, nil
}

// Snapshot returns the full state of the partner link
func (p *Partner) Snapshot() map[string]any {
	return map[string]any{
		"id":         p.ID.String(),
		"user_id":    p.UserID.String(),
		"name":       p.Name,
		"is_active":  p.IsActive,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// BusinessAssignment grants a partner access to one business unit
type BusinessAssignment struct {
	shared.BaseEntity
	PartnerID  uuid.UUID
	BusinessID uuid.UUID
	CanEdit    bool
	IsActive   bool
}

// NewBusinessAssignment creates a new active business assignment
func NewBusinessAssignment(partnerID, businessID uuid.UUID, canEdit bool) (*BusinessAssignment, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS_ID", "Business ID cannot be empty")
	}
	return &BusinessAssignment{
		BaseEntity: shared.NewBaseEntity(),
		PartnerID:  partnerID,
		BusinessID: businessID,
		CanEdit:    canEdit,
		IsActive:   true,
	}, nil
}

// Snapshot returns the full state of the assignment
func (a *BusinessAssignment) Snapshot() map[string]any {
	return map[string]any{
		"id":          a.ID.String(),
		"partner_id":  a.PartnerID.String(),
		"business_id": a.BusinessID.String(),
		"can_edit":    a.CanEdit,
		"is_active":   a.IsActive,
		"created_at":  a.CreatedAt,
		"updated_at":  a.UpdatedAt,
	}
}

// ContentGrant grants a partner a permission level on one content type
type ContentGrant struct {
	shared.BaseEntity
	PartnerID   uuid.UUID
	ContentType ContentType
	Level       PermissionLevel
}

// NewContentGrant creates a new content grant
func NewContentGrant(partnerID uuid.UUID, contentType ContentType, level PermissionLevel) (*ContentGrant, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}
	if !contentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Unknown content type: "+string(contentType))
	}
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERMISSION_LEVEL", "Unknown permission level: "+string(level))
	}
	return &ContentGrant{
		BaseEntity:  shared.NewBaseEntity(),
		PartnerID:   partnerID,
		ContentType: contentType,
		Level:       level,
	}, nil
}

// Snapshot returns the full state of the grant
func (g *ContentGrant) Snapshot() map[string]any {
	return map[string]any{
		"id":           g.ID.String(),
		"partner_id":   g.PartnerID.String(),
		"content_type": string(g.ContentType),
		"level":        string(g.Level),
		"created_at":   g.CreatedAt,
		"updated_at":   g.UpdatedAt,
	}
}

// PartnerRepository provides read access to partner grant tables
type PartnerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Partner, error)
	FindBusinessAssignments(ctx context.Context, partnerID uuid.UUID) ([]BusinessAssignment, error)
	FindContentGrants(ctx context.Context, partnerID uuid.UUID) ([]ContentGrant, error)
	Save(ctx context.Context, partner *Partner) error
	SaveBusinessAssignment(ctx context.Context, assignment *BusinessAssignment) error
	SaveContentGrant(ctx context.Context, grant *ContentGrant) error
}
