package business

import (
	"context"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessService manages business units. Writes are restricted to
// admin and staff roles by operation policy.
type BusinessService struct {
	businessRepo business.BusinessRepository
	facade       *mutation.Facade
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo business.BusinessRepository, facade *mutation.Facade) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		facade:       facade,
	}
}

// Create creates a new business unit
func (s *BusinessService) Create(ctx context.Context, principal access.Principal, req CreateBusinessRequest) (*BusinessResponse, error) {
	b, err := business.NewBusiness(req.Name, req.Code)
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Business",
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.businessRepo.Save(ctx, b); err != nil {
				return nil, err
			}
			return b, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToBusinessResponse(result.(*business.Business))
	return &response, nil
}

// GetByID retrieves a business unit
func (s *BusinessService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*BusinessResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Business", BusinessID: id}); err != nil {
		return nil, err
	}
	b, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBusinessResponse(b)
	return &response, nil
}

// List returns business units visible to the principal. Partners see
// only the businesses they are assigned to.
func (s *BusinessService) List(ctx context.Context, principal access.Principal, filter shared.Filter) (*shared.Paginated[BusinessResponse], error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Business"})
	if err != nil {
		return nil, err
	}
	businesses, total, err := s.businessRepo.FindAll(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	items := make([]BusinessResponse, len(businesses))
	for i := range businesses {
		items[i] = ToBusinessResponse(&businesses[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
