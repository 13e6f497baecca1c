// Package customer provides the Customer catalog.
// Customers are the parties commercial documents are addressed to.
package customer

import (
	"context"
	"regexp"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/entity"
)

// Pre-compiled regex patterns for validation
var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	vatRE   = regexp.MustCompile(`^[A-Z]{2}[A-Za-z0-9]{2,12}$`)
)

// Customer represents a party commercial documents are issued to.
type Customer struct {
	entity.Catalog

	// Email is the primary contact email, used as the default
	// recipient when a document is sent.
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// VATNumber is the EU-style VAT identifier (unique when set)
	VATNumber *string `db:"vat_number" json:"vat_number,omitempty"`

	// BillingAddress is the address printed on documents
	BillingAddress *string `db:"billing_address" json:"billing_address,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contact_person,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if c.VATNumber != nil && *c.VATNumber != "" && !vatRE.MatchString(*c.VATNumber) {
		return apperror.NewValidation("invalid VAT number format (country code plus 2-12 characters)").
			WithDetail("field", "vat_number")
	}

	return nil
}
