package business

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repositories in this package are soft-delete aware: every read path
// filters out rows with a non-null deletion timestamp, and a find for a
// soft-deleted row reports not-found. A nil scope means full access;
// a non-nil scope intersects the partner's business filter into the
// query, so an out-of-scope row is indistinguishable from a missing one.

// BusinessRepository provides access to business units
type BusinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]Business, int64, error)
	Save(ctx context.Context, b *Business) error
}

// CustomerRepository provides access to customer records
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]Customer, int64, error)
	Save(ctx context.Context, c *Customer) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository provides access to payment records
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]Payment, int64, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter, scope *access.ScopeFilter) ([]Payment, int64, error)
	Save(ctx context.Context, p *Payment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkflowTemplateRepository provides access to workflow templates
type WorkflowTemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*WorkflowTemplate, error)
	FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]WorkflowTemplate, int64, error)
	Save(ctx context.Context, t *WorkflowTemplate) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetRepository provides access to budgets
type BudgetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, scope *access.ScopeFilter) (*Budget, error)
	FindAll(ctx context.Context, filter shared.Filter, scope *access.ScopeFilter) ([]Budget, int64, error)
	Save(ctx context.Context, b *Budget) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
