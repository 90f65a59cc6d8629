package audit

import (
	"maps"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestMetadata carries transport details captured for an audit entry.
// All fields are optional; the entry degrades gracefully when the
// extractor is absent.
type RequestMetadata struct {
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// LogEntry records one mutating action with before/after snapshots.
// Entries are append-only: once written they are never mutated or deleted.
type LogEntry struct {
	shared.BaseEntity
	UserID   uuid.UUID       `json:"user_id"`
	Action   access.Action   `json:"action"`
	Entity   string          `json:"entity"`
	EntityID uuid.UUID       `json:"entity_id"`
	Before   map[string]any  `json:"before,omitempty"`
	After    map[string]any  `json:"after,omitempty"`
	Metadata RequestMetadata `json:"metadata"`
}

// NewLogEntry creates an audit log entry for a mutation.
// Before is nil for CREATE; After is nil for hard DELETE. SOFT_DELETE
// always carries the pre-deletion state in Before so reconstruction
// remains possible.
func NewLogEntry(
	userID uuid.UUID,
	action access.Action,
	entity string,
	entityID uuid.UUID,
	before, after map[string]any,
	meta RequestMetadata,
) (*LogEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !action.IsMutation() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action must be a mutation")
	}
	if entity == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity name cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	if action == access.ActionSoftDelete && before == nil {
		return nil, shared.NewDomainError("MISSING_BEFORE_STATE", "Soft delete requires the pre-deletion state")
	}

	return &LogEntry{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Before:     copySnapshot(before),
		After:      copySnapshot(after),
		Metadata:   meta,
	}, nil
}

// GetBefore returns a copy of the before snapshot
func (e *LogEntry) GetBefore() map[string]any {
	return copySnapshot(e.Before)
}

// GetAfter returns a copy of the after snapshot
func (e *LogEntry) GetAfter() map[string]any {
	return copySnapshot(e.After)
}

func copySnapshot(snapshot map[string]any) map[string]any {
	if snapshot == nil {
		return nil
	}
	result := make(map[string]any, len(snapshot))
	maps.Copy(result, snapshot)
	return result
}
