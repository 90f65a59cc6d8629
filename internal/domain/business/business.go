// Package business holds the managed aggregates guarded by the access
// control and audit core: business units and the customer, payment,
// workflow template and budget records that belong to them.
package business

import (
	"strings"

	"github.com/bizdesk/backend/internal/domain/shared"
)

// Business is a business unit, the scoping boundary for partner access
type Business struct {
	shared.BaseEntity
	Name     string
	Code     string
	IsActive bool
}

// NewBusiness creates a new active business unit
func NewBusiness(name, code string) (*Business, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Business code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Business code cannot exceed 50 characters")
	}

	return &Business{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		IsActive:   true,
	}, nil
}

// Snapshot returns the denormalized full state of the business
func (b *Business) Snapshot() map[string]any {
	return map[string]any{
		"id":         b.ID.String(),
		"name":       b.Name,
		"code":       b.Code,
		"is_active":  b.IsActive,
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	}
}
