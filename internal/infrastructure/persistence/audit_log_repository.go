package persistence

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements LogRepository using GORM. The table
// is append-only: this type exposes no update or delete path.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append writes one audit log entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	model, err := models.AuditLogModelFromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByUser finds audit entries written for one user's actions
func (r *GormAuditLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("user_id = ?", userID)
	}
	return r.findPaginated(scoped, filter)
}

// FindByEntity finds audit entries written for one entity
func (r *GormAuditLogRepository) FindByEntity(ctx context.Context, entity string, entityID uuid.UUID, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.AuditLogModel{}).
			Where("entity = ? AND entity_id = ?", entity, entityID)
	}
	return r.findPaginated(scoped, filter)
}

func (r *GormAuditLogRepository) findPaginated(scoped func() *gorm.DB, filter shared.Filter) ([]audit.LogEntry, int64, error) {
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.AuditLogModel
	if err := r.applyFilter(scoped(), filter).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.LogEntry, len(logModels))
	for i, model := range logModels {
		entry, err := model.ToDomain()
		if err != nil {
			return nil, 0, err
		}
		entries[i] = *entry
	}
	return entries, total, nil
}

func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, AuditLogSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
