package commercial

import (
	"time"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/entity"
)

// Transition describes the single transform a document type may undergo.
type Transition struct {
	Target DocumentType
	Label  string
}

// transitions is the static transform registry. Types without an entry
// (invoice, credit note) still change status but cannot spawn a child.
var transitions = map[DocumentType]Transition{
	TypeQuote:    {Target: TypeOrder, Label: "Convert to order"},
	TypeOrder:    {Target: TypeInvoice, Label: "Create invoice"},
	TypeProforma: {Target: TypeOrder, Label: "Convert to order"},
	TypeDelivery: {Target: TypeInvoice, Label: "Create invoice"},
}

// TransitionFor returns the registry entry for a type.
// Absence means "not transformable", not an error.
func TransitionFor(t DocumentType) (Transition, bool) {
	tr, ok := transitions[t]
	return tr, ok
}

// BuildTransform constructs the draft child a validated source transforms
// into. The source is never mutated; its set of children grows once the new
// document is persisted. Repeated invocation is allowed deliberately (one
// quote may spawn many invoices over time).
//
// The target must equal the registry target for the source type; anything
// else is a caller error and fails before any document is built.
func BuildTransform(source *Document, target DocumentType, now time.Time) (*Document, error) {
	tr, ok := TransitionFor(source.Type)
	if !ok {
		return nil, apperror.NewIllegalTransition("document type cannot be transformed").
			WithDetail("type", string(source.Type))
	}

	if target != tr.Target {
		return nil, apperror.NewIllegalTransition("transform target does not match registry").
			WithDetail("type", string(source.Type)).
			WithDetail("requested", string(target)).
			WithDetail("expected", string(tr.Target))
	}

	if source.Status != StatusValidated {
		return nil, apperror.NewValidation("only validated documents can be transformed").
			WithDetail("status", string(source.Status))
	}

	child, err := newDescendant(source, target, now)
	if err != nil {
		return nil, err
	}
	child.ParentID = &source.ID
	child.DueDate = copyDate(source.DueDate)
	child.Notes = source.Notes

	return child, nil
}

// BuildDuplicate constructs a same-type draft copy of any document,
// with no parent linkage and the notes prefixed to mark it as a copy.
func BuildDuplicate(source *Document, now time.Time) (*Document, error) {
	copy, err := newDescendant(source, source.Type, now)
	if err != nil {
		return nil, err
	}
	copy.DueDate = copyDate(source.DueDate)
	copy.ValidityDate = copyDate(source.ValidityDate)

	prefix := "Copy of " + source.Number
	if source.Notes != "" {
		copy.Notes = prefix + ": " + source.Notes
	} else {
		copy.Notes = prefix
	}

	return copy, nil
}

// newDescendant builds a fresh draft carrying the source's customer,
// currency and value-copied lines. Line identities are stripped: each copied
// line gets a new line ID owned by the new document. A source line whose
// stored inputs no longer pass the calculator fails the whole build; a child
// must never silently lose lines.
func newDescendant(source *Document, docType DocumentType, now time.Time) (*Document, error) {
	child := &Document{
		Document:      entity.NewDocument(),
		Type:          docType,
		Status:        StatusDraft,
		CustomerID:    source.CustomerID,
		CustomerName:  source.CustomerName,
		CustomerEmail: source.CustomerEmail,
		Currency:      source.Currency,
		Lines:         make([]DocumentLine, 0, len(source.Lines)),
	}
	child.Date = now

	for i, line := range source.Lines {
		// Pricing inputs are carried over unchanged; amounts are recomputed
		// by the aggregator so the child independently satisfies the totals
		// invariant.
		err := child.AddLine(LineInput{
			Description:     line.Description,
			Unit:            line.Unit,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxRate:         line.TaxRate,
		})
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("line_no", i+1)
			}
			return nil, err
		}
	}

	child.RecalculateTotals()
	return child, nil
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
