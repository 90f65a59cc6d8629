package access

import (
	"context"
	"time"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/google/uuid"
)

// CreatePartnerRequest is the input for linking a user to a partner record
type CreatePartnerRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Name   string    `json:"name" binding:"required,max=200"`
}

// AssignBusinessRequest is the input for granting a partner access to
// one business unit
type AssignBusinessRequest struct {
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
	CanEdit    bool      `json:"can_edit"`
}

// GrantContentRequest is the input for granting a partner a permission
// level on a content type
type GrantContentRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Level       string `json:"level" binding:"required,oneof=view edit"`
}

// PartnerResponse is the API shape of a partner link
type PartnerResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnerAccessResponse is the API shape of a partner's resolved access
type PartnerAccessResponse struct {
	PartnerID           uuid.UUID           `json:"partner_id"`
	BusinessIDs         []uuid.UUID         `json:"business_ids"`
	EditableBusinessIDs []uuid.UUID         `json:"editable_business_ids"`
	ContentPermissions  map[string][]string `json:"content_permissions"`
}

// ToPartnerResponse converts a domain partner to its response shape
func ToPartnerResponse(p *access.Partner) PartnerResponse {
	return PartnerResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPartnerAccessResponse converts resolved partner access to its
// response shape
func ToPartnerAccessResponse(info *access.PartnerAccessInfo) PartnerAccessResponse {
	permissions := make(map[string][]string, len(info.ContentPermissions))
	for ct, levels := range info.ContentPermissions {
		out := make([]string, len(levels))
		for i, level := range levels {
			out[i] = string(level)
		}
		permissions[string(ct)] = out
	}
	return PartnerAccessResponse{
		PartnerID:           info.PartnerID,
		BusinessIDs:         info.BusinessIDs,
		EditableBusinessIDs: info.EditableBusinessIDs,
		ContentPermissions:  permissions,
	}
}

// PartnerService manages partner links and their grant tables. All
// writes go through the mutation facade; operation policy restricts
// them to admins.
type PartnerService struct {
	partnerRepo access.PartnerRepository
	resolver    *PartnerAccessResolver
	facade      *mutation.Facade
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerRepo access.PartnerRepository, resolver *PartnerAccessResolver, facade *mutation.Facade) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		resolver:    resolver,
		facade:      facade,
	}
}

// Create links a user to a new partner record
func (s *PartnerService) Create(ctx context.Context, principal access.Principal, req CreatePartnerRequest) (*PartnerResponse, error) {
	partner, err := access.NewPartner(req.UserID, req.Name)
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Partner",
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.partnerRepo.Save(ctx, partner); err != nil {
				return nil, err
			}
			return partner, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToPartnerResponse(result.(*access.Partner))
	return &response, nil
}

// AssignBusiness grants a partner access to one business unit
func (s *PartnerService) AssignBusiness(ctx context.Context, principal access.Principal, partnerID uuid.UUID, req AssignBusinessRequest) error {
	assignment, err := access.NewBusinessAssignment(partnerID, req.BusinessID, req.CanEdit)
	if err != nil {
		return err
	}

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "BusinessAssignment",
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.partnerRepo.SaveBusinessAssignment(ctx, assignment); err != nil {
				return nil, err
			}
			return assignment, nil
		},
	})
	return err
}

// GrantContent grants a partner a permission level on a content type
func (s *PartnerService) GrantContent(ctx context.Context, principal access.Principal, partnerID uuid.UUID, req GrantContentRequest) error {
	grant, err := access.NewContentGrant(partnerID, access.ContentType(req.ContentType), access.PermissionLevel(req.Level))
	if err != nil {
		return err
	}

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "ContentGrant",
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.partnerRepo.SaveContentGrant(ctx, grant); err != nil {
				return nil, err
			}
			return grant, nil
		},
	})
	return err
}

// AccessOf returns the resolved access of one partner's user, for
// inspection by administrators.
func (s *PartnerService) AccessOf(ctx context.Context, principal access.Principal, userID uuid.UUID) (*PartnerAccessResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Partner"}); err != nil {
		return nil, err
	}
	info, err := s.resolver.Resolve(ctx, access.Principal{ID: userID, Role: access.RolePartner, IsActive: true})
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = access.EmptyPartnerAccess(uuid.Nil)
	}
	response := ToPartnerAccessResponse(info)
	return &response, nil
}
