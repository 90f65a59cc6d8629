package models

import (
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/google/uuid"
)

// PartnerModel is the persistence model for the Partner domain entity.
type PartnerModel struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(200);not null"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner entity.
func (m *PartnerModel) ToDomain() *access.Partner {
	return &access.Partner{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Name:       m.Name,
		IsActive:   m.IsActive,
	}
}

// PartnerModelFromDomain converts a domain Partner entity to its persistence model.
func PartnerModelFromDomain(p *access.Partner) *PartnerModel {
	m := &PartnerModel{
		UserID:   p.UserID,
		Name:     p.Name,
		IsActive: p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// BusinessAssignmentModel is the persistence model for a partner's
// business assignment.
type BusinessAssignmentModel struct {
	BaseModel
	PartnerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_partner_business,priority:1"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_partner_business,priority:2"`
	CanEdit    bool      `gorm:"not null;default:false"`
	IsActive   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BusinessAssignmentModel) TableName() string {
	return "partner_business_assignments"
}

// ToDomain converts the persistence model to a domain BusinessAssignment.
func (m *BusinessAssignmentModel) ToDomain() access.BusinessAssignment {
	return access.BusinessAssignment{
		BaseEntity: m.BaseModel.ToDomain(),
		PartnerID:  m.PartnerID,
		BusinessID: m.BusinessID,
		CanEdit:    m.CanEdit,
		IsActive:   m.IsActive,
	}
}

// BusinessAssignmentModelFromDomain converts a domain BusinessAssignment to its persistence model.
func BusinessAssignmentModelFromDomain(a *access.BusinessAssignment) *BusinessAssignmentModel {
	m := &BusinessAssignmentModel{
		PartnerID:  a.PartnerID,
		BusinessID: a.BusinessID,
		CanEdit:    a.CanEdit,
		IsActive:   a.IsActive,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ContentGrantModel is the persistence model for a partner's content grant.
type ContentGrantModel struct {
	BaseModel
	PartnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grant_partner_content_level,priority:1"`
	ContentType string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_grant_partner_content_level,priority:2"`
	Level       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_grant_partner_content_level,priority:3"`
}

// TableName returns the table name for GORM
func (ContentGrantModel) TableName() string {
	return "partner_content_grants"
}

// ToDomain converts the persistence model to a domain ContentGrant.
func (m *ContentGrantModel) ToDomain() access.ContentGrant {
	return access.ContentGrant{
		BaseEntity:  m.BaseModel.ToDomain(),
		PartnerID:   m.PartnerID,
		ContentType: access.ContentType(m.ContentType),
		Level:       access.PermissionLevel(m.Level),
	}
}

// ContentGrantModelFromDomain converts a domain ContentGrant to its persistence model.
func ContentGrantModelFromDomain(g *access.ContentGrant) *ContentGrantModel {
	m := &ContentGrantModel{
		PartnerID:   g.PartnerID,
		ContentType: string(g.ContentType),
		Level:       string(g.Level),
	}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}
