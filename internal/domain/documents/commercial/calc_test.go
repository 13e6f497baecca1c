package commercial

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalculateLine(t *testing.T) {
	amounts, err := CalculateLine(d("3"), d("100"), d("10"), d("20"))
	require.NoError(t, err)

	assert.True(t, amounts.DiscountAmount.Equal(d("30")), "discount: %s", amounts.DiscountAmount)
	assert.True(t, amounts.Subtotal.Equal(d("270")), "subtotal: %s", amounts.Subtotal)
	assert.True(t, amounts.TaxAmount.Equal(d("54")), "tax: %s", amounts.TaxAmount)
	assert.True(t, amounts.Total.Equal(d("324")), "total: %s", amounts.Total)
}

func TestCalculateLine_Deterministic(t *testing.T) {
	first, err := CalculateLine(d("7.5"), d("19.99"), d("2.5"), d("21"))
	require.NoError(t, err)

	second, err := CalculateLine(d("7.5"), d("19.99"), d("2.5"), d("21"))
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestCalculateLine_TotalIdentity(t *testing.T) {
	cases := []struct {
		name                             string
		qty, price, discountPct, taxRate string
	}{
		{"plain", "2", "50", "0", "20"},
		{"discounted", "10", "9.99", "15", "5.5"},
		{"free item", "1", "0", "0", "20"},
		{"surtax above 100", "4", "25", "0", "120"},
		{"full discount", "3", "10", "100", "20"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amounts, err := CalculateLine(d(tc.qty), d(tc.price), d(tc.discountPct), d(tc.taxRate))
			require.NoError(t, err)

			base := d(tc.qty).Mul(d(tc.price))
			assert.True(t, amounts.Subtotal.Equal(base.Sub(amounts.DiscountAmount)),
				"subtotal != base - discount")
			assert.True(t, amounts.Total.Equal(amounts.Subtotal.Add(amounts.TaxAmount)),
				"total != subtotal + tax")
		})
	}
}

func TestCalculateLine_InputRange(t *testing.T) {
	cases := []struct {
		name                             string
		qty, price, discountPct, taxRate string
		field                            string
	}{
		{"negative quantity", "-1", "100", "0", "20", "quantity"},
		{"zero quantity", "0", "100", "0", "20", "quantity"},
		{"negative price", "1", "-100", "0", "20", "unit_price"},
		{"negative discount", "1", "100", "-5", "20", "discount_percent"},
		{"discount above 100", "1", "100", "101", "20", "discount_percent"},
		{"negative tax", "1", "100", "0", "-20", "tax_rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateLine(d(tc.qty), d(tc.price), d(tc.discountPct), d(tc.taxRate))
			require.Error(t, err)
			assert.True(t, apperror.IsInputRange(err))

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, appErr.Details["field"])
		})
	}
}

func TestAggregateLines(t *testing.T) {
	doc := NewDocument(TypeInvoice, newTestID())
	require.NoError(t, doc.AddLine(LineInput{
		Description: "Consulting", Quantity: d("3"), UnitPrice: d("100"),
		DiscountPercent: d("10"), TaxRate: d("20"),
	}))
	require.NoError(t, doc.AddLine(LineInput{
		Description: "Hosting", Quantity: d("1"), UnitPrice: d("50"),
		DiscountPercent: d("0"), TaxRate: d("20"),
	}))

	totals := AggregateLines(doc.Lines)

	// Gross base: 300 + 50; discounts: 30; taxes: 54 + 10; total: 324 + 60.
	assert.True(t, totals.Subtotal.Equal(d("350")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(d("30")), "discount: %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(d("64")), "tax: %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(d("384")), "total: %s", totals.Total)

	// Document identity: total = subtotal - discount + tax.
	assert.True(t, totals.Total.Equal(
		totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)))

	// Aggregate total equals the sum of per-line totals.
	sum := decimal.Zero
	for _, line := range doc.Lines {
		sum = sum.Add(line.Total)
	}
	assert.True(t, totals.Total.Equal(sum))
}

func TestAggregateLines_Empty(t *testing.T) {
	totals := AggregateLines(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.DiscountPercent.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestRecalculateTotals_FollowsLineMutation(t *testing.T) {
	doc := NewDocument(TypeQuote, newTestID())
	require.NoError(t, doc.AddLine(LineInput{
		Description: "Design", Quantity: d("2"), UnitPrice: d("400"),
		DiscountPercent: d("0"), TaxRate: d("20"),
	}))
	assert.True(t, doc.Total.Equal(d("960")))

	lineID := doc.Lines[0].LineID
	require.NoError(t, doc.UpdateLine(lineID, LineInput{
		Description: "Design", Quantity: d("1"), UnitPrice: d("400"),
		DiscountPercent: d("0"), TaxRate: d("20"),
	}))
	assert.True(t, doc.Total.Equal(d("480")))

	require.NoError(t, doc.RemoveLine(lineID))
	assert.True(t, doc.Total.IsZero())
	assert.Empty(t, doc.Lines)
}
