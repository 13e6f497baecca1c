// Package commercial provides the commercial document engine: quotes, orders,
// invoices, credit notes, proformas and delivery notes share one document
// model, one status lattice and one transformation workflow.
package commercial

import (
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
)

// DocumentType classifies a commercial document.
// The representation is closed: unknown tags are rejected at the boundary,
// never defaulted.
type DocumentType string

const (
	TypeQuote      DocumentType = "quote"
	TypeOrder      DocumentType = "order"
	TypeInvoice    DocumentType = "invoice"
	TypeCreditNote DocumentType = "credit_note"
	TypeProforma   DocumentType = "proforma"
	TypeDelivery   DocumentType = "delivery"
)

// DocumentTypes lists all known document types.
var DocumentTypes = []DocumentType{
	TypeQuote, TypeOrder, TypeInvoice, TypeCreditNote, TypeProforma, TypeDelivery,
}

// ParseDocumentType converts a wire tag to a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.Valid() {
		return "", apperror.NewValidation("unknown document type").
			WithDetail("field", "type").
			WithDetail("value", s)
	}
	return t, nil
}

// Valid reports whether the type is one of the known tags.
func (t DocumentType) Valid() bool {
	switch t {
	case TypeQuote, TypeOrder, TypeInvoice, TypeCreditNote, TypeProforma, TypeDelivery:
		return true
	}
	return false
}

// Label returns the display name of the type.
func (t DocumentType) Label() string {
	switch t {
	case TypeQuote:
		return "Quote"
	case TypeOrder:
		return "Order"
	case TypeInvoice:
		return "Invoice"
	case TypeCreditNote:
		return "Credit note"
	case TypeProforma:
		return "Proforma"
	case TypeDelivery:
		return "Delivery note"
	default:
		return string(t)
	}
}
