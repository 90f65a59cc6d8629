package business

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBusinessRequest is the input for creating a business unit
type CreateBusinessRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Code string `json:"code" binding:"required,max=50"`
}

// BusinessResponse is the API shape of a business unit
type BusinessResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBusinessResponse converts a domain business to its response shape
func ToBusinessResponse(b *business.Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Code:      b.Code,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateCustomerRequest is the input for creating a customer
type CreateCustomerRequest struct {
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
	Name       string    `json:"name" binding:"required,max=200"`
	Email      string    `json:"email" binding:"omitempty,email"`
	Phone      string    `json:"phone" binding:"omitempty,max=50"`
	Notes      string    `json:"notes"`
}

// UpdateCustomerRequest is the input for updating a customer
type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
	Notes string `json:"notes"`
}

// CustomerResponse is the API shape of a customer
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its response shape
func ToCustomerResponse(c *business.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CreatePaymentRequest is the input for recording a payment
type CreatePaymentRequest struct {
	BusinessID uuid.UUID       `json:"business_id" binding:"required"`
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3"`
}

// PaymentResponse is the API shape of a payment
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	BusinessID uuid.UUID       `json:"business_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a domain payment to its response shape
func ToPaymentResponse(p *business.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// CreateWorkflowTemplateRequest is the input for creating a workflow template
type CreateWorkflowTemplateRequest struct {
	BusinessID uuid.UUID `json:"business_id" binding:"required"`
	Name       string    `json:"name" binding:"required,max=200"`
	Steps      string    `json:"steps" binding:"required"`
}

// UpdateWorkflowTemplateRequest is the input for updating a workflow template
type UpdateWorkflowTemplateRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Steps string `json:"steps" binding:"required"`
}

// WorkflowTemplateResponse is the API shape of a workflow template
type WorkflowTemplateResponse struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	Steps      string    `json:"steps"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToWorkflowTemplateResponse converts a domain template to its response shape
func ToWorkflowTemplateResponse(t *business.WorkflowTemplate) WorkflowTemplateResponse {
	return WorkflowTemplateResponse{
		ID:         t.ID,
		BusinessID: t.BusinessID,
		Name:       t.Name,
		Steps:      t.Steps,
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// CreateBudgetRequest is the input for creating a budget
type CreateBudgetRequest struct {
	BusinessID uuid.UUID       `json:"business_id" binding:"required"`
	Name       string          `json:"name" binding:"required,max=200"`
	Period     string          `json:"period" binding:"required,period"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetRequest is the input for updating a budget
type UpdateBudgetRequest struct {
	Name   string          `json:"name" binding:"required,max=200"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetResponse is the API shape of a budget
type BudgetResponse struct {
	ID         uuid.UUID       `json:"id"`
	BusinessID uuid.UUID       `json:"business_id"`
	Name       string          `json:"name"`
	Period     string          `json:"period"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToBudgetResponse converts a domain budget to its response shape
func ToBudgetResponse(b *business.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Period:     b.Period,
		Amount:     b.Amount,
		Spent:      b.Spent,
		Remaining:  b.Remaining(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
