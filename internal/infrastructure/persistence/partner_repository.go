package persistence

import (
	"context"
	"errors"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByUserID finds the partner link for a user
func (r *GormPartnerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*access.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBusinessAssignments finds all business assignments of a partner
func (r *GormPartnerRepository) FindBusinessAssignments(ctx context.Context, partnerID uuid.UUID) ([]access.BusinessAssignment, error) {
	var assignmentModels []models.BusinessAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]access.BusinessAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = model.ToDomain()
	}
	return assignments, nil
}

// FindContentGrants finds all content grants of a partner
func (r *GormPartnerRepository) FindContentGrants(ctx context.Context, partnerID uuid.UUID) ([]access.ContentGrant, error) {
	var grantModels []models.ContentGrantModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Find(&grantModels).Error; err != nil {
		return nil, err
	}

	grants := make([]access.ContentGrant, len(grantModels))
	for i, model := range grantModels {
		grants[i] = model.ToDomain()
	}
	return grants, nil
}

// Save creates or updates a partner link
func (r *GormPartnerRepository) Save(ctx context.Context, partner *access.Partner) error {
	model := models.PartnerModelFromDomain(partner)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBusinessAssignment creates or updates a business assignment
func (r *GormPartnerRepository) SaveBusinessAssignment(ctx context.Context, assignment *access.BusinessAssignment) error {
	model := models.BusinessAssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveContentGrant creates or updates a content grant
func (r *GormPartnerRepository) SaveContentGrant(ctx context.Context, grant *access.ContentGrant) error {
	model := models.ContentGrantModelFromDomain(grant)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ access.PartnerRepository = (*GormPartnerRepository)(nil)
