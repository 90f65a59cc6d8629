package business

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// IsValid returns true if the status is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment represents a payment made by a customer within one business unit
type Payment struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	Status     PaymentStatus
	PaidAt     *time.Time
}

// NewPayment creates a new pending payment
func NewPayment(businessID, customerID uuid.UUID, amount decimal.Decimal, currency string) (*Payment, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS_ID", "Business ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		CustomerID: customerID,
		Amount:     amount,
		Currency:   currency,
		Status:     PaymentStatusPending,
	}, nil
}

// MarkPaid transitions the payment to paid
func (p *Payment) MarkPaid() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can be marked paid")
	}
	now := time.Now()
	p.Status = PaymentStatusPaid
	p.PaidAt = &now
	p.Touch()
	return nil
}

// Refund transitions a paid payment to refunded
func (p *Payment) Refund() error {
	if p.Status != PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid payments can be refunded")
	}
	p.Status = PaymentStatusRefunded
	p.Touch()
	return nil
}

// MarkFailed transitions a pending payment to failed
func (p *Payment) MarkFailed() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can fail")
	}
	p.Status = PaymentStatusFailed
	p.Touch()
	return nil
}

// Snapshot returns the denormalized full state of the payment
func (p *Payment) Snapshot() map[string]any {
	snapshot := map[string]any{
		"id":          p.ID.String(),
		"business_id": p.BusinessID.String(),
		"customer_id": p.CustomerID.String(),
		"amount":      p.Amount.String(),
		"currency":    p.Currency,
		"status":      string(p.Status),
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
	if p.PaidAt != nil {
		snapshot["paid_at"] = *p.PaidAt
	}
	return snapshot
}
