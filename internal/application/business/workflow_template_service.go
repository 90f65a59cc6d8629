package business

import (
	"context"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WorkflowTemplateService handles workflow template operations
type WorkflowTemplateService struct {
	templateRepo business.WorkflowTemplateRepository
	facade       *mutation.Facade
}

// NewWorkflowTemplateService creates a new WorkflowTemplateService
func NewWorkflowTemplateService(templateRepo business.WorkflowTemplateRepository, facade *mutation.Facade) *WorkflowTemplateService {
	return &WorkflowTemplateService{
		templateRepo: templateRepo,
		facade:       facade,
	}
}

// Create creates a new workflow template
func (s *WorkflowTemplateService) Create(ctx context.Context, principal access.Principal, req CreateWorkflowTemplateRequest) (*WorkflowTemplateResponse, error) {
	template, err := business.NewWorkflowTemplate(req.BusinessID, req.Name, req.Steps)
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "WorkflowTemplate",
		Resource:  access.Resource{BusinessID: req.BusinessID},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.templateRepo.Save(ctx, template); err != nil {
				return nil, err
			}
			return template, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToWorkflowTemplateResponse(result.(*business.WorkflowTemplate))
	return &response, nil
}

// GetByID retrieves a workflow template, applying partner scoping
func (s *WorkflowTemplateService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*WorkflowTemplateResponse, error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	template, err := s.templateRepo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	response := ToWorkflowTemplateResponse(template)
	return &response, nil
}

// List returns workflow templates visible to the principal
func (s *WorkflowTemplateService) List(ctx context.Context, principal access.Principal, filter shared.Filter) (*shared.Paginated[WorkflowTemplateResponse], error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	templates, total, err := s.templateRepo.FindAll(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	items := make([]WorkflowTemplateResponse, len(templates))
	for i := range templates {
		items[i] = ToWorkflowTemplateResponse(&templates[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a workflow template
func (s *WorkflowTemplateService) Update(ctx context.Context, principal access.Principal, id uuid.UUID, req UpdateWorkflowTemplateRequest) (*WorkflowTemplateResponse, error) {
	template, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	before := template.Snapshot()

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "WorkflowTemplate",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: template.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := template.Update(req.Name, req.Steps); err != nil {
				return nil, err
			}
			if err := s.templateRepo.Save(ctx, template); err != nil {
				return nil, err
			}
			return template, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToWorkflowTemplateResponse(result.(*business.WorkflowTemplate))
	return &response, nil
}

// SoftDelete marks a workflow template deleted without removing the row
func (s *WorkflowTemplateService) SoftDelete(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	template, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return err
	}
	before := template.Snapshot()

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionSoftDelete,
		Entity:    "WorkflowTemplate",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: template.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			return nil, s.templateRepo.SoftDelete(ctx, id)
		},
	})
	return err
}

func (s *WorkflowTemplateService) authorizeRead(ctx context.Context, principal access.Principal) (*access.ScopeFilter, error) {
	return s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "WorkflowTemplate", Content: access.ContentWorkflowTemplate})
}

func (s *WorkflowTemplateService) loadForMutation(ctx context.Context, principal access.Principal, id uuid.UUID) (*business.WorkflowTemplate, error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.templateRepo.FindByID(ctx, id, scope)
}
