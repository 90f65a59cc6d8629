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

// GormWorkflowTemplateRepository implements WorkflowTemplateRepository using GORM
type GormWorkflowTemplateRepository struct {
	db *gorm.DB
}

// NewGormWorkflowTemplateRepository creates a new GormWorkflowTemplateRepository
func NewGormWorkflowTemplateRepository(db *gorm.DB) *GormWorkflowTemplateRepository {
	return &GormWorkflowTemplateRepository{db: db}
}

// FindByID finds a workflow template by its ID within the scope
func (r *GormWorkflowTemplateRepository) FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*business.WorkflowTemplate, error) {
	var model models.WorkflowTemplateModel
	query := partnerscope.Apply(r.db.WithContext(ctx), scope)
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all workflow templates matching the filter within the scope
func (r *GormWorkflowTemplateRepository) FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]business.WorkflowTemplate, int64, error) {
	scoped := func() *gorm.DB {
		return partnerscope.Apply(r.db.WithContext(ctx).Model(&models.WorkflowTemplateModel{}), scope)
	}

	var total int64
	if err := r.applySearch(scoped(), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templateModels []models.WorkflowTemplateModel
	if err := r.applyFilter(scoped(), filter).Find(&templateModels).Error; err != nil {
		return nil, 0, err
	}

	templates := make([]business.WorkflowTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, total, nil
}

// Save creates or updates a workflow template
func (r *GormWorkflowTemplateRepository) Save(ctx context.Context, t *business.WorkflowTemplate) error {
	model := models.WorkflowTemplateModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// SoftDelete marks a workflow template as deleted without removing the row
func (r *GormWorkflowTemplateRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WorkflowTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete permanently removes a workflow template row
func (r *GormWorkflowTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.WorkflowTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormWorkflowTemplateRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *GormWorkflowTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, WorkflowTemplateSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormWorkflowTemplateRepository implements WorkflowTemplateRepository
var _ business.WorkflowTemplateRepository = (*GormWorkflowTemplateRepository)(nil)
