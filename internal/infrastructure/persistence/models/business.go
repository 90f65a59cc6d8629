package models

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessModel is the persistence model for the Business domain entity.
type BusinessModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the persistence model to a domain Business entity.
func (m *BusinessModel) ToDomain() *business.Business {
	return &business.Business{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Code:       m.Code,
		IsActive:   m.IsActive,
	}
}

// BusinessModelFromDomain converts a domain Business entity to its persistence model.
func BusinessModelFromDomain(b *business.Business) *BusinessModel {
	m := &BusinessModel{
		Name:     b.Name,
		Code:     b.Code,
		IsActive: b.IsActive,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	SoftDeleteModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Email      string    `gorm:"type:varchar(200);index"`
	Phone      string    `gorm:"type:varchar(50)"`
	Notes      string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *business.Customer {
	return &business.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Notes:      m.Notes,
	}
}

// CustomerModelFromDomain converts a domain Customer entity to its persistence model.
func CustomerModelFromDomain(c *business.Customer) *CustomerModel {
	m := &CustomerModel{
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Notes:      c.Notes,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	SoftDeleteModel
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt     *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *business.Payment {
	return &business.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		CustomerID: m.CustomerID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Status:     business.PaymentStatus(m.Status),
		PaidAt:     m.PaidAt,
	}
}

// PaymentModelFromDomain converts a domain Payment entity to its persistence model.
func PaymentModelFromDomain(p *business.Payment) *PaymentModel {
	m := &PaymentModel{
		BusinessID: p.BusinessID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		PaidAt:     p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// WorkflowTemplateModel is the persistence model for the WorkflowTemplate domain entity.
type WorkflowTemplateModel struct {
	SoftDeleteModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Steps      string    `gorm:"type:jsonb;not null"`
	IsActive   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (WorkflowTemplateModel) TableName() string {
	return "workflow_templates"
}

// ToDomain converts the persistence model to a domain WorkflowTemplate entity.
func (m *WorkflowTemplateModel) ToDomain() *business.WorkflowTemplate {
	return &business.WorkflowTemplate{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Steps:      m.Steps,
		IsActive:   m.IsActive,
	}
}

// WorkflowTemplateModelFromDomain converts a domain WorkflowTemplate entity to its persistence model.
func WorkflowTemplateModelFromDomain(t *business.WorkflowTemplate) *WorkflowTemplateModel {
	m := &WorkflowTemplateModel{
		BusinessID: t.BusinessID,
		Name:       t.Name,
		Steps:      t.Steps,
		IsActive:   t.IsActive,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// BudgetModel is the persistence model for the Budget domain entity.
type BudgetModel struct {
	SoftDeleteModel
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Period     string          `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Spent      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *business.Budget {
	return &business.Budget{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Period:     m.Period,
		Amount:     m.Amount,
		Spent:      m.Spent,
	}
}

// BudgetModelFromDomain converts a domain Budget entity to its persistence model.
func BudgetModelFromDomain(b *business.Budget) *BudgetModel {
	m := &BudgetModel{
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Period:     b.Period,
		Amount:     b.Amount,
		Spent:      b.Spent,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
