package commercial

import (
	"context"
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/entity"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/types"
)

// Document represents one commercial document (quote, order, invoice, ...).
// Totals are derived: they are recomputed from lines on every line mutation
// and are never settable from outside this package.
type Document struct {
	entity.Document

	// Classification
	Type   DocumentType `db:"type" json:"type"`
	Status Status       `db:"status" json:"status"`

	// Customer reference with denormalized display fields.
	// The customer directory owns these; they are opaque here.
	CustomerID    id.ID  `db:"customer_id" json:"customer_id"`
	CustomerName  string `db:"customer_name" json:"customer_name,omitempty"`
	CustomerEmail string `db:"customer_email" json:"customer_email,omitempty"`

	// Temporal
	DueDate      *time.Time `db:"due_date" json:"due_date,omitempty"`
	ValidityDate *time.Time `db:"validity_date" json:"validity_date,omitempty"`

	// Financials (derived from lines)
	Currency        string      `db:"currency" json:"currency"`
	Subtotal        types.Money `db:"subtotal" json:"subtotal"`
	DiscountPercent types.Money `db:"discount_percent" json:"discount_percent"`
	DiscountAmount  types.Money `db:"discount_amount" json:"discount_amount"`
	TaxAmount       types.Money `db:"tax_amount" json:"tax_amount"`
	Total           types.Money `db:"total" json:"total"`

	// Lineage
	ParentID *id.ID `db:"parent_id" json:"parent_id,omitempty"`

	// Lifecycle timestamps, each set exactly once by its transition
	ValidatedAt *time.Time `db:"validated_at" json:"validated_at,omitempty"`
	SentAt      *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`

	// Table part: priced lines
	Lines []DocumentLine `db:"-" json:"lines"`

	// Children are documents transformed from this one (loaded on demand)
	Children []*Document `db:"-" json:"children,omitempty"`
}

// DocumentLine represents one priced item within a document.
type DocumentLine struct {
	LineID id.ID `db:"line_id" json:"line_id"`
	LineNo int   `db:"line_no" json:"line_no"`

	Description string `db:"description" json:"description"`
	Unit        string `db:"unit" json:"unit,omitempty"`

	Quantity        types.Money `db:"quantity" json:"quantity"`
	UnitPrice       types.Money `db:"unit_price" json:"unit_price"`
	DiscountPercent types.Money `db:"discount_percent" json:"discount_percent"`
	TaxRate         types.Money `db:"tax_rate" json:"tax_rate"`

	// Derived amounts, recomputed from the inputs above
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discount_amount"`
	TaxAmount      types.Money `db:"tax_amount" json:"tax_amount"`
	Total          types.Money `db:"total" json:"total"`
}

// LineInput carries the caller-settable fields of a line.
type LineInput struct {
	Description     string
	Unit            string
	Quantity        types.Money
	UnitPrice       types.Money
	DiscountPercent types.Money
	TaxRate         types.Money
}

// NewDocument creates a new draft document of the given type.
func NewDocument(docType DocumentType, customerID id.ID) *Document {
	doc := &Document{
		Document:   entity.NewDocument(),
		Type:       docType,
		Status:     StatusDraft,
		CustomerID: customerID,
		Currency:   "EUR",
		Lines:      make([]DocumentLine, 0),
	}
	doc.RecalculateTotals()
	return doc
}

// AddLine appends a line and recalculates totals.
// Only draft documents accept line mutation.
func (d *Document) AddLine(in LineInput) error {
	if !d.CanEdit() {
		return apperror.NewNotEditable(d.ID.String(), string(d.Status))
	}

	amounts, err := CalculateLine(in.Quantity, in.UnitPrice, in.DiscountPercent, in.TaxRate)
	if err != nil {
		return err
	}

	d.Lines = append(d.Lines, DocumentLine{
		LineID:          id.New(),
		LineNo:          len(d.Lines) + 1,
		Description:     in.Description,
		Unit:            in.Unit,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		DiscountPercent: in.DiscountPercent,
		TaxRate:         in.TaxRate,
		Subtotal:        amounts.Subtotal,
		DiscountAmount:  amounts.DiscountAmount,
		TaxAmount:       amounts.TaxAmount,
		Total:           amounts.Total,
	})
	d.RecalculateTotals()
	return nil
}

// UpdateLine replaces the inputs of an existing line and recalculates totals.
func (d *Document) UpdateLine(lineID id.ID, in LineInput) error {
	if !d.CanEdit() {
		return apperror.NewNotEditable(d.ID.String(), string(d.Status))
	}

	for i := range d.Lines {
		if d.Lines[i].LineID != lineID {
			continue
		}

		amounts, err := CalculateLine(in.Quantity, in.UnitPrice, in.DiscountPercent, in.TaxRate)
		if err != nil {
			return err
		}

		line := &d.Lines[i]
		line.Description = in.Description
		line.Unit = in.Unit
		line.Quantity = in.Quantity
		line.UnitPrice = in.UnitPrice
		line.DiscountPercent = in.DiscountPercent
		line.TaxRate = in.TaxRate
		line.Subtotal = amounts.Subtotal
		line.DiscountAmount = amounts.DiscountAmount
		line.TaxAmount = amounts.TaxAmount
		line.Total = amounts.Total

		d.RecalculateTotals()
		return nil
	}

	return apperror.NewNotFound("document line", lineID.String())
}

// RemoveLine deletes a line, renumbers the remainder and recalculates totals.
func (d *Document) RemoveLine(lineID id.ID) error {
	if !d.CanEdit() {
		return apperror.NewNotEditable(d.ID.String(), string(d.Status))
	}

	for i := range d.Lines {
		if d.Lines[i].LineID != lineID {
			continue
		}
		d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
		for j := range d.Lines {
			d.Lines[j].LineNo = j + 1
		}
		d.RecalculateTotals()
		return nil
	}

	return apperror.NewNotFound("document line", lineID.String())
}

// ReplaceLines rebuilds the line table from inputs and recalculates totals.
func (d *Document) ReplaceLines(inputs []LineInput) error {
	if !d.CanEdit() {
		return apperror.NewNotEditable(d.ID.String(), string(d.Status))
	}

	lines := make([]DocumentLine, 0, len(inputs))
	for i, in := range inputs {
		amounts, err := CalculateLine(in.Quantity, in.UnitPrice, in.DiscountPercent, in.TaxRate)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("line_no", i+1)
			}
			return err
		}
		lines = append(lines, DocumentLine{
			LineID:          id.New(),
			LineNo:          i + 1,
			Description:     in.Description,
			Unit:            in.Unit,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			TaxRate:         in.TaxRate,
			Subtotal:        amounts.Subtotal,
			DiscountAmount:  amounts.DiscountAmount,
			TaxAmount:       amounts.TaxAmount,
			Total:           amounts.Total,
		})
	}

	d.Lines = lines
	d.RecalculateTotals()
	return nil
}

// RecalculateTotals updates document totals from lines.
func (d *Document) RecalculateTotals() {
	totals := AggregateLines(d.Lines)
	d.Subtotal = totals.Subtotal
	d.DiscountPercent = totals.DiscountPercent
	d.DiscountAmount = totals.DiscountAmount
	d.TaxAmount = totals.TaxAmount
	d.Total = totals.Total
}

// Validate implements entity.Validatable.
// Checks structural invariants; completeness checks that only matter at the
// validate transition (non-empty descriptions) live in MarkValidated.
func (d *Document) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if !d.Type.Valid() {
		return apperror.NewValidation("unknown document type").
			WithDetail("field", "type").
			WithDetail("value", string(d.Type))
	}

	if !d.Status.Valid() {
		return apperror.NewValidation("unknown document status").
			WithDetail("field", "status").
			WithDetail("value", string(d.Status))
	}

	if id.IsNil(d.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customer_id")
	}

	if d.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	for i, line := range d.Lines {
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("line_no", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "lines").
				WithDetail("line_no", i+1)
		}
	}

	return nil
}

// GetDocumentType returns the document type tag (for numbering and logs).
func (d *Document) GetDocumentType() string {
	return string(d.Type)
}
