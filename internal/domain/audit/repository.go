package audit

import (
	"context"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogRepository persists audit log entries. Append-only: no update or
// delete operations are exposed.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]LogEntry, int64, error)
	FindByEntity(ctx context.Context, entity string, entityID uuid.UUID, filter shared.Filter) ([]LogEntry, int64, error)
}

// VersionRepository persists data versions. Append-only; retention is
// an external concern and this subsystem never garbage-collects rows.
type VersionRepository interface {
	Append(ctx context.Context, version *DataVersion) error
	FindByEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]DataVersion, error)
	// FindAsOf returns the latest version of the entity at or before the
	// given instant, or shared.ErrNotFound when none exists.
	FindAsOf(ctx context.Context, entity string, entityID uuid.UUID, asOf time.Time) (*DataVersion, error)
}
