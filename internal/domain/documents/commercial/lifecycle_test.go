package commercial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
)

func newTestID() id.ID {
	return id.New()
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func draftWithLine(docType DocumentType) *Document {
	doc := NewDocument(docType, newTestID())
	if err := doc.AddLine(LineInput{
		Description: "Consulting", Quantity: d("3"), UnitPrice: d("100"),
		DiscountPercent: d("10"), TaxRate: d("20"),
	}); err != nil {
		panic(err)
	}
	return doc
}

func TestCanEdit(t *testing.T) {
	doc := draftWithLine(TypeQuote)
	assert.True(t, doc.CanEdit())

	require.NoError(t, doc.MarkValidated(testNow))
	assert.False(t, doc.CanEdit())

	// Once a document leaves draft it never becomes editable again.
	require.NoError(t, doc.ReportStatus(StatusSent, testNow))
	assert.False(t, doc.CanEdit())
	require.NoError(t, doc.ReportStatus(StatusPaid, testNow))
	assert.False(t, doc.CanEdit())
}

func TestLinesFrozenAfterValidate(t *testing.T) {
	doc := draftWithLine(TypeQuote)
	require.NoError(t, doc.MarkValidated(testNow))

	err := doc.AddLine(LineInput{
		Description: "Extra", Quantity: d("1"), UnitPrice: d("10"),
		DiscountPercent: d("0"), TaxRate: d("20"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotEditable, appErr.Code)
	assert.Len(t, doc.Lines, 1)
}

func TestCanValidate(t *testing.T) {
	empty := NewDocument(TypeInvoice, newTestID())
	assert.False(t, empty.CanValidate())

	err := empty.MarkValidated(testNow)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, StatusDraft, empty.Status, "failed validate must not change status")

	withLine := draftWithLine(TypeInvoice)
	assert.True(t, withLine.CanValidate())
}

func TestMarkValidated_EmptyDescription(t *testing.T) {
	doc := NewDocument(TypeQuote, newTestID())
	require.NoError(t, doc.AddLine(LineInput{
		Description: "", Quantity: d("1"), UnitPrice: d("10"),
		DiscountPercent: d("0"), TaxRate: d("0"),
	}))

	err := doc.MarkValidated(testNow)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, 1, appErr.Details["line_no"])
}

func TestMarkValidated_SetsTimestampOnce(t *testing.T) {
	doc := draftWithLine(TypeQuote)
	require.NoError(t, doc.MarkValidated(testNow))

	require.NotNil(t, doc.ValidatedAt)
	assert.Equal(t, testNow, *doc.ValidatedAt)

	// Re-validating a validated document is an illegal transition.
	err := doc.MarkValidated(testNow.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
	assert.Equal(t, testNow, *doc.ValidatedAt)
}

func TestReportStatus(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"validated to sent", StatusValidated, StatusSent, true},
		{"validated to pending", StatusValidated, StatusPending, true},
		{"validated to accepted", StatusValidated, StatusAccepted, true},
		{"validated to rejected", StatusValidated, StatusRejected, true},
		{"validated to delivered", StatusValidated, StatusDelivered, true},
		{"validated to invoiced", StatusValidated, StatusInvoiced, true},
		{"sent to paid", StatusSent, StatusPaid, true},
		{"invoiced to paid", StatusInvoiced, StatusPaid, true},
		{"validated to paid", StatusValidated, StatusPaid, false},
		{"accepted to paid", StatusAccepted, StatusPaid, false},
		{"draft to sent", StatusDraft, StatusSent, false},
		{"rejected to sent", StatusRejected, StatusSent, false},
		{"paid to sent", StatusPaid, StatusSent, false},
		{"cancelled to sent", StatusCancelled, StatusSent, false},
		{"sent to draft", StatusSent, StatusDraft, false},
		{"sent to validated", StatusSent, StatusValidated, false},
		{"sent to cancelled", StatusSent, StatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := draftWithLine(TypeInvoice)
			doc.Status = tc.from

			err := doc.ReportStatus(tc.to, testNow)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, doc.Status)
			} else {
				require.Error(t, err)
				assert.True(t, apperror.IsIllegalTransition(err))
				assert.Equal(t, tc.from, doc.Status)
			}
		})
	}
}

func TestReportStatus_Timestamps(t *testing.T) {
	doc := draftWithLine(TypeInvoice)
	require.NoError(t, doc.MarkValidated(testNow))

	require.NoError(t, doc.ReportStatus(StatusSent, testNow))
	require.NotNil(t, doc.SentAt)
	assert.Equal(t, testNow, *doc.SentAt)

	paidAt := testNow.Add(30 * 24 * time.Hour)
	require.NoError(t, doc.ReportStatus(StatusPaid, paidAt))
	require.NotNil(t, doc.PaidAt)
	assert.Equal(t, paidAt, *doc.PaidAt)
}

func TestCancel(t *testing.T) {
	for _, from := range []Status{StatusDraft, StatusValidated, StatusPending, StatusSent, StatusAccepted, StatusRejected, StatusDelivered, StatusInvoiced} {
		doc := draftWithLine(TypeOrder)
		doc.Status = from

		require.NoError(t, doc.MarkCancelled(testNow), "cancel from %s", from)
		assert.Equal(t, StatusCancelled, doc.Status)
		require.NotNil(t, doc.CancelledAt)
	}

	for _, from := range []Status{StatusPaid, StatusCancelled} {
		doc := draftWithLine(TypeOrder)
		doc.Status = from

		err := doc.MarkCancelled(testNow)
		require.Error(t, err, "cancel from %s must fail", from)
		assert.True(t, apperror.IsIllegalTransition(err))
	}
}

func TestDaysUntilDue(t *testing.T) {
	doc := draftWithLine(TypeInvoice)
	assert.Nil(t, doc.DaysUntilDue(testNow), "no due date yields nil, not an error")

	due := testNow.Add(-5 * 24 * time.Hour)
	doc.DueDate = &due

	days := doc.DaysUntilDue(testNow)
	require.NotNil(t, days)
	assert.Equal(t, -5, *days)

	future := testNow.Add(10 * 24 * time.Hour)
	doc.DueDate = &future
	days = doc.DaysUntilDue(testNow)
	require.NotNil(t, days)
	assert.Equal(t, 10, *days)

	// Partial days round up: due in 36 hours means 2 days left.
	soon := testNow.Add(36 * time.Hour)
	doc.DueDate = &soon
	days = doc.DaysUntilDue(testNow)
	require.NotNil(t, days)
	assert.Equal(t, 2, *days)
}

func TestIsOverdue(t *testing.T) {
	pastDue := testNow.Add(-5 * 24 * time.Hour)

	doc := draftWithLine(TypeInvoice)
	doc.Status = StatusSent
	doc.DueDate = &pastDue
	assert.True(t, doc.IsOverdue(testNow))

	// A paid document is never overdue, however old the due date.
	doc.Status = StatusPaid
	assert.False(t, doc.IsOverdue(testNow))

	doc.Status = StatusCancelled
	assert.False(t, doc.IsOverdue(testNow))

	doc.Status = StatusSent
	doc.DueDate = nil
	assert.False(t, doc.IsOverdue(testNow))

	futureDue := testNow.Add(5 * 24 * time.Hour)
	doc.DueDate = &futureDue
	assert.False(t, doc.IsOverdue(testNow))
}

func TestParseRejectsUnknownTags(t *testing.T) {
	_, err := ParseDocumentType("purchase_order")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = ParseStatus("archived")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = ParseDocumentType("quote")
	assert.NoError(t, err)
	_, err = ParseStatus("paid")
	assert.NoError(t, err)
}
