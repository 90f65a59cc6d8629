package business

import (
	"encoding/json"
	"strings"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WorkflowTemplate is a reusable workflow definition owned by a business unit.
// Steps are stored as a JSON document; the core treats them as opaque.
type WorkflowTemplate struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	Name       string
	Steps      string
	IsActive   bool
}

// NewWorkflowTemplate creates a new active workflow template
func NewWorkflowTemplate(businessID uuid.UUID, name, steps string) (*WorkflowTemplate, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS_ID", "Business ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if err := validateSteps(steps); err != nil {
		return nil, err
	}

	return &WorkflowTemplate{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Name:       name,
		Steps:      steps,
		IsActive:   true,
	}, nil
}

// Update changes the template's name and steps
func (t *WorkflowTemplate) Update(name, steps string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if err := validateSteps(steps); err != nil {
		return err
	}
	t.Name = name
	t.Steps = steps
	t.Touch()
	return nil
}

// Deactivate disables the template without deleting it
func (t *WorkflowTemplate) Deactivate() {
	t.IsActive = false
	t.Touch()
}

// Snapshot returns the denormalized full state of the template
func (t *WorkflowTemplate) Snapshot() map[string]any {
	return map[string]any{
		"id":          t.ID.String(),
		"business_id": t.BusinessID.String(),
		"name":        t.Name,
		"steps":       t.Steps,
		"is_active":   t.IsActive,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func validateSteps(steps string) error {
	if steps == "" {
		return shared.NewDomainError("INVALID_STEPS", "Template steps cannot be empty")
	}
	if !json.Valid([]byte(steps)) {
		return shared.NewDomainError("INVALID_STEPS", "Template steps must be valid JSON")
	}
	return nil
}
