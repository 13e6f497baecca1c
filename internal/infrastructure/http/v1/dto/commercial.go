package dto

import (
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/types"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/documents/commercial"
)

// --- Requests ---

// CommercialLineRequest carries one priced line of a document.
type CommercialLineRequest struct {
	Description     string      `json:"description" binding:"required"`
	Unit            string      `json:"unit"`
	Quantity        types.Money `json:"quantity"`
	UnitPrice       types.Money `json:"unit_price"`
	DiscountPercent types.Money `json:"discount_percent"`
	TaxRate         types.Money `json:"tax_rate"`
}

// ToInput converts the request line to a domain line input.
func (r CommercialLineRequest) ToInput() commercial.LineInput {
	return commercial.LineInput{
		Description:     r.Description,
		Unit:            r.Unit,
		Quantity:        r.Quantity,
		UnitPrice:       r.UnitPrice,
		DiscountPercent: r.DiscountPercent,
		TaxRate:         r.TaxRate,
	}
}

// CreateCommercialRequest for creating commercial documents.
type CreateCommercialRequest struct {
	Type          string                  `json:"type" binding:"required"`
	CustomerID    string                  `json:"customer_id" binding:"required"`
	CustomerName  string                  `json:"customer_name"`
	CustomerEmail string                  `json:"customer_email"`
	Date          *time.Time              `json:"date"`
	DueDate       *time.Time              `json:"due_date"`
	ValidityDate  *time.Time              `json:"validity_date"`
	Currency      string                  `json:"currency"`
	Notes         string                  `json:"notes"`
	Lines         []CommercialLineRequest `json:"lines"`
}

// ToEntity builds a draft document from the request.
func (r CreateCommercialRequest) ToEntity() (*commercial.Document, error) {
	docType, err := commercial.ParseDocumentType(r.Type)
	if err != nil {
		return nil, err
	}

	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer_id").
			WithDetail("field", "customer_id").
			WithDetail("value", r.CustomerID)
	}

	doc := commercial.NewDocument(docType, customerID)
	doc.CustomerName = r.CustomerName
	doc.CustomerEmail = r.CustomerEmail
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.DueDate = r.DueDate
	doc.ValidityDate = r.ValidityDate
	if r.Currency != "" {
		doc.Currency = r.Currency
	}
	doc.Notes = r.Notes

	inputs := make([]commercial.LineInput, 0, len(r.Lines))
	for _, line := range r.Lines {
		inputs = append(inputs, line.ToInput())
	}
	if err := doc.ReplaceLines(inputs); err != nil {
		return nil, err
	}

	return doc, nil
}

// UpdateCommercialRequest for updating draft documents.
// The line table is replaced wholesale; partial line patches are not supported.
type UpdateCommercialRequest struct {
	CustomerID    *string                 `json:"customer_id"`
	CustomerName  *string                 `json:"customer_name"`
	CustomerEmail *string                 `json:"customer_email"`
	Date          *time.Time              `json:"date"`
	DueDate       *time.Time              `json:"due_date"`
	ValidityDate  *time.Time              `json:"validity_date"`
	Currency      *string                 `json:"currency"`
	Notes         *string                 `json:"notes"`
	Lines         []CommercialLineRequest `json:"lines"`
	Version       int                     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request onto an existing document.
func (r UpdateCommercialRequest) ApplyTo(doc *commercial.Document) error {
	if r.CustomerID != nil {
		customerID, err := id.Parse(*r.CustomerID)
		if err != nil {
			return apperror.NewValidation("invalid customer_id").
				WithDetail("field", "customer_id").
				WithDetail("value", *r.CustomerID)
		}
		doc.CustomerID = customerID
	}
	if r.CustomerName != nil {
		doc.CustomerName = *r.CustomerName
	}
	if r.CustomerEmail != nil {
		doc.CustomerEmail = *r.CustomerEmail
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.DueDate != nil {
		doc.DueDate = r.DueDate
	}
	if r.ValidityDate != nil {
		doc.ValidityDate = r.ValidityDate
	}
	if r.Currency != nil {
		doc.Currency = *r.Currency
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	doc.Version = r.Version

	if r.Lines != nil {
		inputs := make([]commercial.LineInput, 0, len(r.Lines))
		for _, line := range r.Lines {
			inputs = append(inputs, line.ToInput())
		}
		if err := doc.ReplaceLines(inputs); err != nil {
			return err
		}
	}

	return nil
}

// ReportStatusRequest for POST :id/status.
type ReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransformRequest for POST :id/transform.
type TransformRequest struct {
	TargetType string `json:"target_type" binding:"required"`
}

// --- Responses ---

// CommercialLineResponse contains one line with computed amounts.
type CommercialLineResponse struct {
	LineID          string      `json:"line_id"`
	LineNo          int         `json:"line_no"`
	Description     string      `json:"description"`
	Unit            string      `json:"unit,omitempty"`
	Quantity        types.Money `json:"quantity"`
	UnitPrice       types.Money `json:"unit_price"`
	DiscountPercent types.Money `json:"discount_percent"`
	TaxRate         types.Money `json:"tax_rate"`
	Subtotal        types.Money `json:"subtotal"`
	DiscountAmount  types.Money `json:"discount_amount"`
	TaxAmount       types.Money `json:"tax_amount"`
	Total           types.Money `json:"total"`
}

// CommercialResponse contains document fields with display-rounded amounts.
type CommercialResponse struct {
	BaseResponse
	Number        string     `json:"number"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Date          time.Time  `json:"date"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	ValidityDate  *time.Time `json:"validity_date,omitempty"`

	Currency        string      `json:"currency"`
	Subtotal        types.Money `json:"subtotal"`
	DiscountPercent types.Money `json:"discount_percent"`
	DiscountAmount  types.Money `json:"discount_amount"`
	TaxAmount       types.Money `json:"tax_amount"`
	Total           types.Money `json:"total"`

	ParentID *string `json:"parent_id,omitempty"`
	Notes    string  `json:"notes,omitempty"`

	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Lines    []CommercialLineResponse `json:"lines,omitempty"`
	Children []CommercialResponse     `json:"children,omitempty"`
}

// FromCommercialLine creates a line response.
func FromCommercialLine(l commercial.DocumentLine) CommercialLineResponse {
	return CommercialLineResponse{
		LineID:          l.LineID.String(),
		LineNo:          l.LineNo,
		Description:     l.Description,
		Unit:            l.Unit,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		DiscountPercent: l.DiscountPercent,
		TaxRate:         l.TaxRate,
		Subtotal:        types.RoundDisplay(l.Subtotal),
		DiscountAmount:  types.RoundDisplay(l.DiscountAmount),
		TaxAmount:       types.RoundDisplay(l.TaxAmount),
		Total:           types.RoundDisplay(l.Total),
	}
}

// FromCommercial creates a document response.
func FromCommercial(d *commercial.Document) CommercialResponse {
	resp := CommercialResponse{
		BaseResponse:  FromBaseDocument(d.BaseDocument),
		Number:        d.Number,
		Type:          string(d.Type),
		Status:        string(d.Status),
		Date:          d.Date,
		CustomerID:    d.CustomerID.String(),
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		DueDate:       d.DueDate,
		ValidityDate:  d.ValidityDate,

		Currency:        d.Currency,
		Subtotal:        types.RoundDisplay(d.Subtotal),
		DiscountPercent: d.DiscountPercent,
		DiscountAmount:  types.RoundDisplay(d.DiscountAmount),
		TaxAmount:       types.RoundDisplay(d.TaxAmount),
		Total:           types.RoundDisplay(d.Total),

		Notes: d.Notes,

		ValidatedAt: d.ValidatedAt,
		SentAt:      d.SentAt,
		PaidAt:      d.PaidAt,
		CancelledAt: d.CancelledAt,
	}

	if d.ParentID != nil {
		parentID := d.ParentID.String()
		resp.ParentID = &parentID
	}

	if len(d.Lines) > 0 {
		resp.Lines = make([]CommercialLineResponse, 0, len(d.Lines))
		for _, line := range d.Lines {
			resp.Lines = append(resp.Lines, FromCommercialLine(line))
		}
	}

	if len(d.Children) > 0 {
		resp.Children = make([]CommercialResponse, 0, len(d.Children))
		for _, child := range d.Children {
			resp.Children = append(resp.Children, FromCommercial(child))
		}
	}

	return resp
}

// FromCommercialList maps a page of documents.
func FromCommercialList(docs []*commercial.Document) []CommercialResponse {
	items := make([]CommercialResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, FromCommercial(doc))
	}
	return items
}
