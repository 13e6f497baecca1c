package commercial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
)

func TestTransitionFor(t *testing.T) {
	cases := []struct {
		source DocumentType
		target DocumentType
		ok     bool
	}{
		{TypeQuote, TypeOrder, true},
		{TypeOrder, TypeInvoice, true},
		{TypeProforma, TypeOrder, true},
		{TypeDelivery, TypeInvoice, true},
		{TypeInvoice, "", false},
		{TypeCreditNote, "", false},
	}

	for _, tc := range cases {
		tr, ok := TransitionFor(tc.source)
		assert.Equal(t, tc.ok, ok, "registry entry for %s", tc.source)
		if tc.ok {
			assert.Equal(t, tc.target, tr.Target)
			assert.NotEmpty(t, tr.Label)
		}
	}
}

func validatedQuote(t *testing.T) *Document {
	t.Helper()

	doc := NewDocument(TypeQuote, newTestID())
	doc.Number = "QUO-2026-00042"
	doc.Notes = "urgent"
	require.NoError(t, doc.AddLine(LineInput{
		Description: "Consulting", Unit: "h", Quantity: d("3"), UnitPrice: d("100"),
		DiscountPercent: d("10"), TaxRate: d("20"),
	}))
	require.NoError(t, doc.AddLine(LineInput{
		Description: "Travel", Quantity: d("1"), UnitPrice: d("250"),
		DiscountPercent: d("0"), TaxRate: d("10"),
	}))
	require.NoError(t, doc.MarkValidated(testNow))
	return doc
}

func TestBuildTransform(t *testing.T) {
	source := validatedQuote(t)

	child, err := BuildTransform(source, TypeOrder, testNow)
	require.NoError(t, err)

	assert.Equal(t, TypeOrder, child.Type)
	assert.Equal(t, StatusDraft, child.Status)
	assert.Equal(t, source.CustomerID, child.CustomerID)
	assert.Equal(t, source.Currency, child.Currency)
	assert.Equal(t, source.Notes, child.Notes)
	assert.Equal(t, testNow, child.Date)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, source.ID, *child.ParentID)
	assert.NotEqual(t, source.ID, child.ID)
	assert.Empty(t, child.Number, "number is assigned at persistence, not by the builder")

	require.Len(t, child.Lines, 2)
	for i, line := range child.Lines {
		srcLine := source.Lines[i]
		assert.NotEqual(t, srcLine.LineID, line.LineID, "line identities are stripped")
		assert.Equal(t, srcLine.Description, line.Description)
		assert.Equal(t, srcLine.Unit, line.Unit)
		assert.True(t, line.Quantity.Equal(srcLine.Quantity))
		assert.True(t, line.UnitPrice.Equal(srcLine.UnitPrice))
		assert.True(t, line.DiscountPercent.Equal(srcLine.DiscountPercent))
		assert.True(t, line.TaxRate.Equal(srcLine.TaxRate))
	}

	// The child independently satisfies the totals invariant.
	assert.True(t, child.Total.Equal(source.Total))
	assert.True(t, child.Total.Equal(
		child.Subtotal.Sub(child.DiscountAmount).Add(child.TaxAmount)))
}

func TestBuildTransform_DoesNotMutateSource(t *testing.T) {
	source := validatedQuote(t)
	statusBefore := source.Status
	totalBefore := source.Total
	linesBefore := len(source.Lines)
	lineIDBefore := source.Lines[0].LineID

	_, err := BuildTransform(source, TypeOrder, testNow)
	require.NoError(t, err)

	assert.Equal(t, statusBefore, source.Status)
	assert.True(t, source.Total.Equal(totalBefore))
	assert.Len(t, source.Lines, linesBefore)
	assert.Equal(t, lineIDBefore, source.Lines[0].LineID)
}

func TestBuildTransform_WrongTarget(t *testing.T) {
	source := validatedQuote(t)
	source.Type = TypeOrder // registry maps order -> invoice

	_, err := BuildTransform(source, TypeCreditNote, testNow)
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "invoice", appErr.Details["expected"])
}

func TestBuildTransform_NotValidated(t *testing.T) {
	doc := draftWithLine(TypeQuote)

	_, err := BuildTransform(doc, TypeOrder, testNow)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestBuildTransform_TerminalType(t *testing.T) {
	doc := draftWithLine(TypeInvoice)
	require.NoError(t, doc.MarkValidated(testNow))

	_, err := BuildTransform(doc, TypeCreditNote, testNow)
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
}

func TestBuildTransform_RepeatedInvocation(t *testing.T) {
	source := validatedQuote(t)

	first, err := BuildTransform(source, TypeOrder, testNow)
	require.NoError(t, err)
	second, err := BuildTransform(source, TypeOrder, testNow)
	require.NoError(t, err)

	// One source may spawn many children; each is a distinct document.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, *first.ParentID, *second.ParentID)
}

// corruptLine appends a line with out-of-range stored inputs directly to
// the line table, the way bad data would come back from storage.
func corruptLine(doc *Document) {
	doc.Lines = append(doc.Lines, DocumentLine{
		LineID:          newTestID(),
		LineNo:          len(doc.Lines) + 1,
		Description:     "Corrupt",
		Quantity:        d("1"),
		UnitPrice:       d("100"),
		DiscountPercent: d("150"),
		TaxRate:         d("20"),
	})
}

func TestBuildTransform_CorruptSourceLine(t *testing.T) {
	source := validatedQuote(t)
	corruptLine(source)

	child, err := BuildTransform(source, TypeOrder, testNow)
	require.Error(t, err)
	assert.Nil(t, child, "no partially-built child on bad line data")
	assert.True(t, apperror.IsInputRange(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 3, appErr.Details["line_no"])
}

func TestBuildDuplicate_CorruptSourceLine(t *testing.T) {
	source := validatedQuote(t)
	corruptLine(source)

	copy, err := BuildDuplicate(source, testNow)
	require.Error(t, err)
	assert.Nil(t, copy, "no partially-built copy on bad line data")
	assert.True(t, apperror.IsInputRange(err))
}

func TestBuildDuplicate(t *testing.T) {
	source := validatedQuote(t)

	copy, err := BuildDuplicate(source, testNow)
	require.NoError(t, err)

	assert.Equal(t, source.Type, copy.Type)
	assert.Equal(t, StatusDraft, copy.Status)
	assert.Nil(t, copy.ParentID, "a duplicate is an originating document")
	assert.Equal(t, "Copy of QUO-2026-00042: urgent", copy.Notes)
	require.Len(t, copy.Lines, 2)
	assert.True(t, copy.Total.Equal(source.Total))
}

func TestBuildDuplicate_EmptyNotes(t *testing.T) {
	source := validatedQuote(t)
	source.Notes = ""

	copy, err := BuildDuplicate(source, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Copy of QUO-2026-00042", copy.Notes)
}
