package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDataVersionRepository implements VersionRepository using GORM.
// Append-only; rows are never updated or garbage-collected here.
type GormDataVersionRepository struct {
	db *gorm.DB
}

// NewGormDataVersionRepository creates a new GormDataVersionRepository
func NewGormDataVersionRepository(db *gorm.DB) *GormDataVersionRepository {
	return &GormDataVersionRepository{db: db}
}

// Append writes one data version snapshot
func (r *GormDataVersionRepository) Append(ctx context.Context, version *audit.DataVersion) error {
	model, err := models.DataVersionModelFromDomain(version)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity finds all versions of one entity, oldest first
func (r *GormDataVersionRepository) FindByEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]audit.DataVersion, error) {
	var versionModels []models.DataVersionModel
	if err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at ASC").
		Find(&versionModels).Error; err != nil {
		return nil, err
	}

	versions := make([]audit.DataVersion, len(versionModels))
	for i, model := range versionModels {
		version, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		versions[i] = *version
	}
	return versions, nil
}

// FindAsOf returns the latest version of the entity at or before the
// given instant. Each version row is a full snapshot, so one row answers
// the question without replaying history.
func (r *GormDataVersionRepository) FindAsOf(ctx context.Context, entity string, entityID uuid.UUID, asOf time.Time) (*audit.DataVersion, error) {
	var model models.DataVersionModel
	if err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ? AND created_at <= ?", entity, entityID, asOf).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// Ensure GormDataVersionRepository implements VersionRepository
var _ audit.VersionRepository = (*GormDataVersionRepository)(nil)
