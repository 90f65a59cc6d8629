package business

import (
	"regexp"
	"strings"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var customerEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a customer record owned by one business unit
type Customer struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	Name       string
	Email      string
	Phone      string
	Notes      string
}

// NewCustomer creates a new customer for a business
func NewCustomer(businessID uuid.UUID, name string) (*Customer, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS_ID", "Business ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		Name:       name,
	}, nil
}

// Update changes the customer's name
func (c *Customer) Update(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetContact sets the customer's contact details
func (c *Customer) SetContact(email, phone string) error {
	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if !customerEmailRegex.MatchString(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Touch()
	return nil
}

// SetNotes sets free-form notes on the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.Touch()
}

// Snapshot returns the denormalized full state of the customer
func (c *Customer) Snapshot() map[string]any {
	return map[string]any{
		"id":          c.ID.String(),
		"business_id": c.BusinessID.String(),
		"name":        c.Name,
		"email":       c.Email,
		"phone":       c.Phone,
		"notes":       c.Notes,
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}
}
