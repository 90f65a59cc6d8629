package models

import (
	"encoding/json"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogModel is the persistence model for an audit log entry.
// Snapshots and request metadata are stored as JSON documents.
type AuditLogModel struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action   string    `gorm:"type:varchar(20);not null"`
	Entity   string    `gorm:"type:varchar(100);not null;index:idx_audit_entity,priority:1"`
	EntityID uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	Before   []byte    `gorm:"type:jsonb"`
	After    []byte    `gorm:"type:jsonb"`
	Metadata []byte    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain LogEntry.
func (m *AuditLogModel) ToDomain() (*audit.LogEntry, error) {
	entry := &audit.LogEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Action:     access.Action(m.Action),
		Entity:     m.Entity,
		EntityID:   m.EntityID,
	}
	if err := unmarshalSnapshot(m.Before, &entry.Before); err != nil {
		return nil, err
	}
	if err := unmarshalSnapshot(m.After, &entry.After); err != nil {
		return nil, err
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &entry.Metadata); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// AuditLogModelFromDomain converts a domain LogEntry to its persistence model.
func AuditLogModelFromDomain(e *audit.LogEntry) (*AuditLogModel, error) {
	before, err := marshalSnapshot(e.Before)
	if err != nil {
		return nil, err
	}
	after, err := marshalSnapshot(e.After)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, err
	}

	m := &AuditLogModel{
		UserID:   e.UserID,
		Action:   string(e.Action),
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Before:   before,
		After:    after,
		Metadata: metadata,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m, nil
}

// DataVersionModel is the persistence model for a data version snapshot.
type DataVersionModel struct {
	BaseModel
	Entity     string    `gorm:"type:varchar(100);not null;index:idx_version_entity,priority:1"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_version_entity,priority:2"`
	Data       []byte    `gorm:"type:jsonb;not null"`
	ChangedBy  uuid.UUID `gorm:"type:uuid;not null;index"`
	ChangeType string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (DataVersionModel) TableName() string {
	return "data_versions"
}

// ToDomain converts the persistence model to a domain DataVersion.
func (m *DataVersionModel) ToDomain() (*audit.DataVersion, error) {
	version := &audit.DataVersion{
		BaseEntity: m.BaseModel.ToDomain(),
		Entity:     m.Entity,
		EntityID:   m.EntityID,
		ChangedBy:  m.ChangedBy,
		ChangeType: access.Action(m.ChangeType),
	}
	if err := unmarshalSnapshot(m.Data, &version.Data); err != nil {
		return nil, err
	}
	return version, nil
}

// DataVersionModelFromDomain converts a domain DataVersion to its persistence model.
func DataVersionModelFromDomain(v *audit.DataVersion) (*DataVersionModel, error) {
	data, err := marshalSnapshot(v.Data)
	if err != nil {
		return nil, err
	}

	m := &DataVersionModel{
		Entity:     v.Entity,
		EntityID:   v.EntityID,
		Data:       data,
		ChangedBy:  v.ChangedBy,
		ChangeType: string(v.ChangeType),
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m, nil
}

func marshalSnapshot(snapshot map[string]any) ([]byte, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}

func unmarshalSnapshot(data []byte, target *map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
