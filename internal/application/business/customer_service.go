package business

import (
	"context"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer operations, routing every mutation
// through the facade.
type CustomerService struct {
	customerRepo business.CustomerRepository
	facade       *mutation.Facade
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo business.CustomerRepository, facade *mutation.Facade) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		facade:       facade,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, principal access.Principal, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := business.NewCustomer(req.BusinessID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" {
		if err := customer.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Customer",
		Resource:  access.Resource{BusinessID: req.BusinessID},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.customerRepo.Save(ctx, customer); err != nil {
				return nil, err
			}
			return customer, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(result.(*business.Customer))
	return &response, nil
}

// GetByID retrieves a customer, applying partner scoping. An
// out-of-scope or soft-deleted customer reports not-found.
func (s *CustomerService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*CustomerResponse, error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer", Content: access.ContentCustomer})
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns customers visible to the principal
func (s *CustomerService) List(ctx context.Context, principal access.Principal, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer", Content: access.ContentCustomer})
	if err != nil {
		return nil, err
	}
	customers, total, err := s.customerRepo.FindAll(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, principal access.Principal, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	before := customer.Snapshot()

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "Customer",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: customer.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := customer.Update(req.Name); err != nil {
				return nil, err
			}
			if err := customer.SetContact(req.Email, req.Phone); err != nil {
				return nil, err
			}
			customer.SetNotes(req.Notes)
			if err := s.customerRepo.Save(ctx, customer); err != nil {
				return nil, err
			}
			return customer, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(result.(*business.Customer))
	return &response, nil
}

// SoftDelete marks a customer deleted without removing the row
func (s *CustomerService) SoftDelete(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	customer, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return err
	}
	before := customer.Snapshot()

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionSoftDelete,
		Entity:    "Customer",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: customer.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			return nil, s.customerRepo.SoftDelete(ctx, id)
		},
	})
	return err
}

// loadForMutation loads the mutation target with partner scoping
// applied, so an out-of-scope target reads as not-found before any
// decision detail leaks.
func (s *CustomerService) loadForMutation(ctx context.Context, principal access.Principal, id uuid.UUID) (*business.Customer, error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer", Content: access.ContentCustomer})
	if err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, id, scope)
}
