// Package audit provides read access to the audit trail and version
// history. The trail itself is written only by the mutation facade.
package audit

import (
	"context"
	"time"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QueryService answers audit and version history queries. Reads are
// restricted to admins by operation policy.
type QueryService struct {
	logRepo     audit.LogRepository
	versionRepo audit.VersionRepository
	facade      *mutation.Facade
}

// NewQueryService creates a new QueryService
func NewQueryService(logRepo audit.LogRepository, versionRepo audit.VersionRepository, facade *mutation.Facade) *QueryService {
	return &QueryService{
		logRepo:     logRepo,
		versionRepo: versionRepo,
		facade:      facade,
	}
}

// LogsByUser returns the audit entries recorded for one user's actions
func (s *QueryService) LogsByUser(ctx context.Context, principal access.Principal, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[LogEntryResponse], error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "AuditLog"}); err != nil {
		return nil, err
	}
	entries, total, err := s.logRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return s.paginateLogs(entries, total, filter), nil
}

// LogsByEntity returns the audit entries recorded for one entity
func (s *QueryService) LogsByEntity(ctx context.Context, principal access.Principal, entity string, entityID uuid.UUID, filter shared.Filter) (*shared.Paginated[LogEntryResponse], error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "AuditLog"}); err != nil {
		return nil, err
	}
	entries, total, err := s.logRepo.FindByEntity(ctx, entity, entityID, filter)
	if err != nil {
		return nil, err
	}
	return s.paginateLogs(entries, total, filter), nil
}

// VersionsOf returns the full version history of one entity, oldest first
func (s *QueryService) VersionsOf(ctx context.Context, principal access.Principal, entity string, entityID uuid.UUID) ([]DataVersionResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "DataVersion"}); err != nil {
		return nil, err
	}
	versions, err := s.versionRepo.FindByEntity(ctx, entity, entityID)
	if err != nil {
		return nil, err
	}
	items := make([]DataVersionResponse, len(versions))
	for i := range versions {
		items[i] = ToDataVersionResponse(&versions[i])
	}
	return items, nil
}

// AsOf returns the entity's state at or before the given instant
func (s *QueryService) AsOf(ctx context.Context, principal access.Principal, entity string, entityID uuid.UUID, asOf time.Time) (*DataVersionResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "DataVersion"}); err != nil {
		return nil, err
	}
	version, err := s.versionRepo.FindAsOf(ctx, entity, entityID, asOf)
	if err != nil {
		return nil, err
	}
	response := ToDataVersionResponse(version)
	return &response, nil
}

func (s *QueryService) paginateLogs(entries []audit.LogEntry, total int64, filter shared.Filter) *shared.Paginated[LogEntryResponse] {
	items := make([]LogEntryResponse, len(entries))
	for i := range entries {
		items[i] = ToLogEntryResponse(&entries[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page
}
