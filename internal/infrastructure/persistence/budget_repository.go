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

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by its ID within the scope
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*business.Budget, error) {
	var model models.BudgetModel
	query := partnerscope.Apply(r.db.WithContext(ctx), scope)
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all budgets matching the filter within the scope
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]business.Budget, int64, error) {
	scoped := func() *gorm.DB {
		return partnerscope.Apply(r.db.WithContext(ctx).Model(&models.BudgetModel{}), scope)
	}

	var total int64
	if err := r.applySearch(scoped(), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var budgetModels []models.BudgetModel
	if err := r.applyFilter(scoped(), filter).Find(&budgetModels).Error; err != nil {
		return nil, 0, err
	}

	budgets := make([]business.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, total, nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, b *business.Budget) error {
	model := models.BudgetModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// SoftDelete marks a budget as deleted without removing the row
func (r *GormBudgetRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete permanently removes a budget row
func (r *GormBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBudgetRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR period ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

func (r *GormBudgetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, BudgetSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormBudgetRepository implements BudgetRepository
var _ business.BudgetRepository = (*GormBudgetRepository)(nil)
