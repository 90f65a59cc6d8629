package business

import (
	"context"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService handles payment operations
type PaymentService struct {
	paymentRepo  business.PaymentRepository
	customerRepo business.CustomerRepository
	facade       *mutation.Facade
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo business.PaymentRepository,
	customerRepo business.CustomerRepository,
	facade *mutation.Facade,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		facade:       facade,
	}
}

// Create records a new pending payment
func (s *PaymentService) Create(ctx context.Context, principal access.Principal, req CreatePaymentRequest) (*PaymentResponse, error) {
	// The customer must exist, be visible and belong to the same business
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Customer", Content: access.ContentCustomer})
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID, scope)
	if err != nil {
		return nil, err
	}
	if customer.BusinessID != req.BusinessID {
		return nil, shared.NewDomainError("BUSINESS_MISMATCH", "Customer belongs to a different business")
	}

	payment, err := business.NewPayment(req.BusinessID, req.CustomerID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "Payment",
		Resource:  access.Resource{BusinessID: req.BusinessID},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.paymentRepo.Save(ctx, payment); err != nil {
				return nil, err
			}
			return payment, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(result.(*business.Payment))
	return &response, nil
}

// GetByID retrieves a payment, applying partner scoping
func (s *PaymentService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*PaymentResponse, error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Payment", Content: access.ContentPayment})
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List returns payments visible to the principal
func (s *PaymentService) List(ctx context.Context, principal access.Principal, filter shared.Filter) (*shared.Paginated[PaymentResponse], error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Payment", Content: access.ContentPayment})
	if err != nil {
		return nil, err
	}
	payments, total, err := s.paymentRepo.FindAll(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkPaid transitions a pending payment to paid
func (s *PaymentService) MarkPaid(ctx context.Context, principal access.Principal, id uuid.UUID) (*PaymentResponse, error) {
	return s.transition(ctx, principal, id, func(p *business.Payment) error { return p.MarkPaid() })
}

// Refund transitions a paid payment to refunded
func (s *PaymentService) Refund(ctx context.Context, principal access.Principal, id uuid.UUID) (*PaymentResponse, error) {
	return s.transition(ctx, principal, id, func(p *business.Payment) error { return p.Refund() })
}

// SoftDelete marks a payment deleted without removing the row
func (s *PaymentService) SoftDelete(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	payment, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return err
	}
	before := payment.Snapshot()

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionSoftDelete,
		Entity:    "Payment",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: payment.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			return nil, s.paymentRepo.SoftDelete(ctx, id)
		},
	})
	return err
}

func (s *PaymentService) transition(ctx context.Context, principal access.Principal, id uuid.UUID, fn func(*business.Payment) error) (*PaymentResponse, error) {
	payment, err := s.loadForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	before := payment.Snapshot()

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "Payment",
		EntityID:  id,
		Resource:  access.Resource{BusinessID: payment.BusinessID},
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := fn(payment); err != nil {
				return nil, err
			}
			if err := s.paymentRepo.Save(ctx, payment); err != nil {
				return nil, err
			}
			return payment, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(result.(*business.Payment))
	return &response, nil
}

func (s *PaymentService) loadForMutation(ctx context.Context, principal access.Principal, id uuid.UUID) (*business.Payment, error) {
	scope, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "Payment", Content: access.ContentPayment})
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByID(ctx, id, scope)
}
