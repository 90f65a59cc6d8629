package audit

import (
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DataVersion is a point-in-time full snapshot of an entity taken at
// mutation time. Each row is independently sufficient to answer "what
// did entity E look like after change N": reconstruction never depends
// on replaying a chain of diffs. Versions live in a key space separate
// from the audit log because their query shape differs (state as of
// time T versus actions of user U).
type DataVersion struct {
	shared.BaseEntity
	Entity     string         `json:"entity"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Data       map[string]any `json:"data"`
	ChangedBy  uuid.UUID      `json:"changed_by"`
	ChangeType access.Action  `json:"change_type"`
}

// NewDataVersion creates a version snapshot for a create or update.
// Deletions are excluded from versioning; the audit trail holds the
// final pre-deletion state.
func NewDataVersion(
	entity string,
	entityID uuid.UUID,
	data map[string]any,
	changedBy uuid.UUID,
	changeType access.Action,
) (*DataVersion, error) {
	if entity == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity name cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	if changeType != access.ActionCreate && changeType != access.ActionUpdate {
		return nil, shared.NewDomainError("INVALID_CHANGE_TYPE", "Data versions are only written for create and update")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Version snapshot cannot be empty")
	}
	if changedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "ChangedBy cannot be empty")
	}

	return &DataVersion{
		BaseEntity: shared.NewBaseEntity(),
		Entity:     entity,
		EntityID:   entityID,
		Data:       copySnapshot(data),
		ChangedBy:  changedBy,
		ChangeType: changeType,
	}, nil
}
