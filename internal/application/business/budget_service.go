package business

import (
	"context"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BudgetService handles budget operations. Budget writes are restricted
// to admins by the operation policy consumed in the facade.
type BudgetService struct {
	budgetRepo business.BudgetRepository
	facade     *mutation.Facade
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo business.BudgetRepository, facade *mutation.Facade) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		facade:     facade,
	}
}

// Create creates a new budget
func (s *BudgetService) Create(ctx context.Context, principal access.Principal, req CreateBudgetRequest) (*BudgetResponse, error) {
	budget, err := business.NewBudget(req.BusinessID, req.Name, req.Period, req.Amount)
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Budget",
		Resource:  access.Resource{BusinessID: req.BusinessID},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.budgetRepo.Save(ctx, budget); err != nil {
				return nil, err
			}
			return budget, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToBudgetResponse(result.(*business.Budget))
	return &response, nil
}

// GetByID retrieves a budget, applying partner scoping
func (s *BudgetService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*BudgetResponse, error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	response := ToBudgetResponse(budget)
	return &response, nil
}

// List returns budgets visible to the principal
func (s *BudgetService) List(ctx context.Context, principal access.Principal, filter shared.Filter) (*shared.Paginated[BudgetResponse], error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	budgets, total, err := s.budgetRepo.FindAll(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	items := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		items[i] = ToBudgetResponse(&budgets[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a budget
func (s *BudgetService) Update(ctx context.Context, principal access.Principal, id uuid.UUID, req UpdateBudgetRequest) (*BudgetResponse, error) {
	budget, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	before := budget.Snapshot()

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "Budget",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: budget.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := budget.Update(req.Name, req.Amount); err != nil {
				return nil, err
			}
			if err := s.budgetRepo.Save(ctx, budget); err != nil {
				return nil, err
			}
			return budget, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToBudgetResponse(result.(*business.Budget))
	return &response, nil
}

// SoftDelete marks a budget deleted without removing the row
func (s *BudgetService) SoftDelete(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	budget, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return err
	}
	before := budget.Snapshot()

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionSoftDelete,
		Entity:    "Budget",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: budget.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			return nil, s.budgetRepo.SoftDelete(ctx, id)
		},
	})
	return err
}

func (s *BudgetService) authorizeRead(ctx context.Context, principal access.Principal) (*access.ScopeFilter, error) {
	return s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Budget", Content: access.ContentBudget})
}

func (s *BudgetService) loadForMutation(ctx context.Context, principal access.Principal, id uuid.UUID) (*business.Budget, error) {
	scope, err := s.authorizeRead(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.FindByID(ctx, id, scope)
}
