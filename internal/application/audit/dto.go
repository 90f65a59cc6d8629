package audit

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// LogEntryResponse is the API shape of an audit log entry
type LogEntryResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  uuid.UUID      `json:"entity_id"`
	Before    map[string]any `json:"before,omitempty"`
	After     map[string]any `json:"after,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToLogEntryResponse converts a domain log entry to its response shape
func ToLogEntryResponse(e *audit.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Before:    e.GetBefore(),
		After:     e.GetAfter(),
		Method:    e.Metadata.Method,
		Path:      e.Metadata.Path,
		IP:        e.Metadata.IP,
		UserAgent: e.Metadata.UserAgent,
		CreatedAt: e.CreatedAt,
	}
}

// DataVersionResponse is the API shape of a data version snapshot
type DataVersionResponse struct {
	ID         uuid.UUID      `json:"id"`
	Entity     string         `json:"entity"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Data       map[string]any `json:"data"`
	ChangedBy  uuid.UUID      `json:"changed_by"`
	ChangeType string         `json:"change_type"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ToDataVersionResponse converts a domain data version to its response shape
func ToDataVersionResponse(v *audit.DataVersion) DataVersionResponse {
	return DataVersionResponse{
		ID:         v.ID,
		Entity:     v.Entity,
		EntityID:   v.EntityID,
		Data:       v.Data,
		ChangedBy:  v.ChangedBy,
		ChangeType: string(v.ChangeType),
		CreatedAt:  v.CreatedAt,
	}
}
