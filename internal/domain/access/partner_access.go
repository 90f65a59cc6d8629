package access

import (
	"slices"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContentType tags a category of partner-visible content
type ContentType string

const (
	ContentCustomer         ContentType = "customer"
	ContentPayment          ContentType = "payment"
	ContentWorkflowTemplate ContentType = "workflow_template"
	ContentBudget           ContentType = "budget"
)

// IsValid returns true if the content type is a known tag
func (c ContentType) IsValid() bool {
	switch c {
	case ContentCustomer, ContentPayment, ContentWorkflowTemplate, ContentBudget:
		return true
	}
	return false
}

// PermissionLevel represents the level of access granted on a content type
type PermissionLevel string

const (
	PermissionView PermissionLevel = "view"
	PermissionEdit PermissionLevel = "edit"
)

// IsValid returns true if the permission level is a known level
func (p PermissionLevel) IsValid() bool {
	return p == PermissionView || p == PermissionEdit
}

// PartnerAccessInfo is the derived scoping record for a partner principal.
// It is recomputed on every request that needs it and is never cached
// across requests, so revoked grants take effect immediately.
//
// Invariant: EditableBusinessIDs is a subset of BusinessIDs.
type PartnerAccessInfo struct {
	PartnerID           uuid.UUID
	BusinessIDs         []uuid.UUID
	ContentPermissions  map[ContentType][]PermissionLevel
	EditableBusinessIDs []uuid.UUID
}

// NewPartnerAccessInfo builds a PartnerAccessInfo, validating the
// editable-subset invariant at the boundary rather than trusting it
// deeper in the call chain.
func NewPartnerAccessInfo(
	partnerID uuid.UUID,
	businessIDs, editableBusinessIDs []uuid.UUID,
	contentPermissions map[ContentType][]PermissionLevel,
) (*PartnerAccessInfo, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}
	for _, id := range editableBusinessIDs {
		if !slices.Contains(businessIDs, id) {
			return nil, shared.NewDomainError("INVALID_ACCESS_STATE",
				"Editable business IDs must be a subset of accessible business IDs")
		}
	}
	for ct, levels := range contentPermissions {
		if !ct.IsValid() {
			return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Unknown content type: "+string(ct))
		}
		for _, level := range levels {
			if !level.IsValid() {
				return nil, shared.NewDomainError("INVALID_PERMISSION_LEVEL", "Unknown permission level: "+string(level))
			}
		}
	}
	if contentPermissions == nil {
		contentPermissions = make(map[ContentType][]PermissionLevel)
	}

	return &PartnerAccessInfo{
		PartnerID:           partnerID,
		BusinessIDs:         businessIDs,
		ContentPermissions:  contentPermissions,
		EditableBusinessIDs: editableBusinessIDs,
	}, nil
}

// EmptyPartnerAccess returns a zero-access info value. It is used when the
// partner link is missing or inactive: fail closed, not open.
func EmptyPartnerAccess(partnerID uuid.UUID) *PartnerAccessInfo {
	return &PartnerAccessInfo{
		PartnerID:           partnerID,
		BusinessIDs:         []uuid.UUID{},
		ContentPermissions:  make(map[ContentType][]PermissionLevel),
		EditableBusinessIDs: []uuid.UUID{},
	}
}

// IsEmpty returns true if the info grants access to no business at all
func (a *PartnerAccessInfo) IsEmpty() bool {
	return len(a.BusinessIDs) == 0
}

// HasBusiness returns true if the partner may see the given business
func (a *PartnerAccessInfo) HasBusiness(businessID uuid.UUID) bool {
	return slices.Contains(a.BusinessIDs, businessID)
}

// CanEditBusiness returns true if the partner may modify data in the given business
func (a *PartnerAccessInfo) CanEditBusiness(businessID uuid.UUID) bool {
	return slices.Contains(a.EditableBusinessIDs, businessID)
}

// HasContentPermission returns true if the partner holds the given level on the content type
func (a *PartnerAccessInfo) HasContentPermission(ct ContentType, level PermissionLevel) bool {
	return slices.Contains(a.ContentPermissions[ct], level)
}
