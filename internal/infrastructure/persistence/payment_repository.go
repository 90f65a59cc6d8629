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

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID within the scope
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*business.Payment, error) {
	var model models.PaymentModel
	query := partnerscope.Apply(r.db.WithContext(ctx), scope)
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments matching the filter within the scope
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]business.Payment, int64, error) {
	scoped := func() *gorm.DB {
		return partnerscope.Apply(r.db.WithContext(ctx).Model(&models.PaymentModel{}), scope)
	}
	return r.findPaginated(scoped, filter)
}

// FindByCustomer finds all payments of one customer within the scope
func (r *GormPaymentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter, scope *access.ScopeFilter) ([]business.Payment, int64, error) {
	scoped := func() *gorm.DB {
		return partnerscope.Apply(
			r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("customer_id = ?", customerID),
			scope)
	}
	return r.findPaginated(scoped, filter)
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *business.Payment) error {
	model := models.PaymentModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SoftDelete marks a payment as deleted without removing the row
func (r *GormPaymentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete permanently removes a payment row
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPaymentRepository) findPaginated(scoped func() *gorm.DB, filter shared.Filter) ([]business.Payment, int64, error) {
	var total int64
	if err := r.applySearch(scoped(), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paymentModels []models.PaymentModel
	if err := r.applyFilter(scoped(), filter).Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]business.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, total, nil
}

func (r *GormPaymentRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("currency ILIKE ? OR status ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ business.PaymentRepository = (*GormPaymentRepository)(nil)
