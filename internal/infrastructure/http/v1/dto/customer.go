package dto

import (
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/catalogs/customer"
)

// CreateCustomerRequest for creating customers.
// Code is optional; when empty it is generated from the customer sequence.
type CreateCustomerRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	VATNumber      *string `json:"vat_number"`
	BillingAddress *string `json:"billing_address"`
	ContactPerson  *string `json:"contact_person"`
	Comment        *string `json:"comment"`
}

// ToEntity builds a customer from the request.
func (r CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.Email = r.Email
	c.Phone = r.Phone
	c.VATNumber = r.VATNumber
	c.BillingAddress = r.BillingAddress
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	return c
}

// UpdateCustomerRequest for updating customers.
type UpdateCustomerRequest struct {
	Code           *string `json:"code"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	VATNumber      *string `json:"vat_number"`
	BillingAddress *string `json:"billing_address"`
	ContactPerson  *string `json:"contact_person"`
	Comment        *string `json:"comment"`
	Version        int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request onto an existing customer.
func (r UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.VATNumber != nil {
		c.VATNumber = r.VATNumber
	}
	if r.BillingAddress != nil {
		c.BillingAddress = r.BillingAddress
	}
	if r.ContactPerson != nil {
		c.ContactPerson = r.ContactPerson
	}
	if r.Comment != nil {
		c.Comment = r.Comment
	}
	c.Version = r.Version
}

// CustomerResponse contains customer fields.
type CustomerResponse struct {
	BaseResponse
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	VATNumber      *string `json:"vat_number,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
	ContactPerson  *string `json:"contact_person,omitempty"`
	Comment        *string `json:"comment,omitempty"`
}

// FromCustomer creates a customer response.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		BaseResponse:   FromBaseCatalog(c.BaseCatalog),
		Code:           c.Code,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		VATNumber:      c.VATNumber,
		BillingAddress: c.BillingAddress,
		ContactPerson:  c.ContactPerson,
		Comment:        c.Comment,
	}
}

// FromCustomerList maps a page of customers.
func FromCustomerList(customers []*customer.Customer) []CustomerResponse {
	items := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, FromCustomer(c))
	}
	return items
}
