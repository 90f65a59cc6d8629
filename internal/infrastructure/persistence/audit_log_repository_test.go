package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendLogEntry(t *testing.T, repo *GormAuditLogRepository, userID uuid.UUID, action access.Action, entity string, entityID uuid.UUID, at time.Time) *audit.LogEntry {
	t.Helper()
	var before, after map[string]any
	if action != access.ActionCreate {
		before = map[string]any{"name": "before"}
	}
	if action != access.ActionSoftDelete && action != access.ActionDelete {
		after = map[string]any{"name": "after"}
	}
	entry, err := audit.NewLogEntry(userID, action, entity, entityID, before, after, audit.RequestMetadata{
		Method: "POST",
		Path:   "/api/v1/customers",
		IP:     "10.0.0.1",
	})
	require.NoError(t, err)
	entry.CreatedAt = at
	require.NoError(t, repo.Append(context.Background(), entry))
	return entry
}

func TestGormAuditLogRepository_AppendAndFindByUser(t *testing.T) {
	repo := NewGormAuditLogRepository(setupTestDB(t))
	userID := uuid.New()
	base := time.Now().Add(-time.Hour)

	appendLogEntry(t, repo, userID, access.ActionCreate, "Customer", uuid.New(), base)
	appendLogEntry(t, repo, userID, access.ActionUpdate, "Customer", uuid.New(), base.Add(time.Minute))
	appendLogEntry(t, repo, uuid.New(), access.ActionCreate, "Customer", uuid.New(), base)

	entries, total, err := repo.FindByUser(context.Background(), userID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, userID, e.UserID)
		assert.Equal(t, "POST", e.Metadata.Method)
	}
}

func TestGormAuditLogRepository_FindByEntity(t *testing.T) {
	repo := NewGormAuditLogRepository(setupTestDB(t))
	entityID := uuid.New()
	base := time.Now().Add(-time.Hour)

	appendLogEntry(t, repo, uuid.New(), access.ActionCreate, "Customer", entityID, base)
	appendLogEntry(t, repo, uuid.New(), access.ActionUpdate, "Customer", entityID, base.Add(time.Minute))
	appendLogEntry(t, repo, uuid.New(), access.ActionSoftDelete, "Customer", entityID, base.Add(2*time.Minute))
	appendLogEntry(t, repo, uuid.New(), access.ActionCreate, "Payment", entityID, base)

	filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "created_at", OrderDir: "asc"}
	entries, total, err := repo.FindByEntity(context.Background(), "Customer", entityID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)

	assert.Equal(t, access.ActionCreate, entries[0].Action)
	assert.Nil(t, entries[0].Before)
	assert.NotNil(t, entries[0].After)

	assert.Equal(t, access.ActionUpdate, entries[1].Action)
	assert.NotNil(t, entries[1].Before)
	assert.NotNil(t, entries[1].After)

	assert.Equal(t, access.ActionSoftDelete, entries[2].Action)
	assert.NotNil(t, entries[2].Before)
	assert.Nil(t, entries[2].After)
}

func TestGormAuditLogRepository_FindByEntity_Pagination(t *testing.T) {
	repo := NewGormAuditLogRepository(setupTestDB(t))
	entityID := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		appendLogEntry(t, repo, uuid.New(), access.ActionUpdate, "Customer", entityID, base.Add(time.Duration(i)*time.Minute))
	}

	filter := shared.Filter{Page: 2, PageSize: 2, OrderBy: "created_at", OrderDir: "asc"}
	entries, total, err := repo.FindByEntity(context.Background(), "Customer", entityID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, entries, 2)
}

func TestGormAuditLogRepository_FindByUser_Empty(t *testing.T) {
	repo := NewGormAuditLogRepository(setupTestDB(t))

	entries, total, err := repo.FindByUser(context.Background(), uuid.New(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}
