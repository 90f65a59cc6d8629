package persistence

import (
	"context"
	"errors"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/partnerscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessRepository implements BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all businesses matching the filter. The scope, when
// present, restricts results to the partner's assigned businesses by
// primary key.
func (r *GormBusinessRepository) FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]business.Business, int64, error) {
	scoped := func() *gorm.DB {
		return partnerscope.ApplyToColumn(
			r.db.WithContext(ctx).Model(&models.BusinessModel{}), scope, "id")
	}

	var total int64
	if err := r.applySearch(scoped(), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var businessModels []models.BusinessModel
	if err := r.applyFilter(scoped(), filter).Find(&businessModels).Error; err != nil {
		return nil, 0, err
	}

	businesses := make([]business.Business, len(businessModels))
	for i, model := range businessModels {
		businesses[i] = *model.ToDomain()
	}
	return businesses, total, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, b *business.Business) error {
	model := models.BusinessModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormBusinessRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

func (r *GormBusinessRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, BusinessSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormBusinessRepository implements BusinessRepository
var _ business.BusinessRepository = (*GormBusinessRepository)(nil)
