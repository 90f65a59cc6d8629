package business

import (
	"strings"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending budget for one business unit and period.
// Budget writes are restricted to admins by operation policy.
type Budget struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	Name       string
	Period     string // e.g. "2026-Q3"
	Amount     decimal.Decimal
	Spent      decimal.Decimal
}

// NewBudget creates a new budget
func NewBudget(businessID uuid.UUID, name, period string, amount decimal.Decimal) (*Budget, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS_ID", "Business ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Budget name cannot be empty")
	}
	if period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Budget period cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Budget amount must be positive")
	}

	return &Budget{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Name:       name,
		Period:     period,
		Amount:     amount,
		Spent:      decimal.Zero,
	}, nil
}

// Update changes the budget's name and amount
func (b *Budget) Update(name string, amount decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Budget name cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Budget amount must be positive")
	}
	b.Name = name
	b.Amount = amount
	b.Touch()
	return nil
}

// RecordSpend adds to the spent total
func (b *Budget) RecordSpend(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Spend amount must be positive")
	}
	b.Spent = b.Spent.Add(amount)
	b.Touch()
	return nil
}

// Remaining returns the unspent portion of the budget
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// Snapshot returns the denormalized full state of the budget
func (b *Budget) Snapshot() map[string]any {
	return map[string]any{
		"id":          b.ID.String(),
		"business_id": b.BusinessID.String(),
		"name":        b.Name,
		"period":      b.Period,
		"amount":      b.Amount.String(),
		"spent":       b.Spent.String(),
		"created_at":  b.CreatedAt,
		"updated_at":  b.UpdatedAt,
	}
}
