package commercial

import (
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/apperror"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/types"
)

// LineAmounts holds the derived amounts of one priced line.
// All values keep full decimal precision; rounding to two fraction digits
// happens at the display boundary, never here.
type LineAmounts struct {
	Subtotal       types.Money
	DiscountAmount types.Money
	TaxAmount      types.Money
	Total          types.Money
}

// Totals holds document-level amounts aggregated from lines.
//
// Subtotal is the gross base (quantity x unit price summed over lines),
// DiscountAmount the sum of line discounts, so that
// Total = Subtotal - DiscountAmount + TaxAmount holds exactly.
// DiscountPercent is the derived effective rate, not an input.
type Totals struct {
	Subtotal        types.Money
	DiscountPercent types.Money
	DiscountAmount  types.Money
	TaxAmount       types.Money
	Total           types.Money
}

// CalculateLine converts one line's quantity, unit price, discount and tax
// rate into derived amounts:
//
//	base            = quantity x unit_price
//	discount_amount = base x discount_percent / 100
//	subtotal        = base - discount_amount
//	tax_amount      = subtotal x tax_rate / 100
//	total           = subtotal + tax_amount
//
// Pure and deterministic: identical inputs yield identical outputs.
// Tax rates above 100 are legal (surtaxes); discounts are capped at 0-100.
func CalculateLine(quantity, unitPrice, discountPercent, taxRate types.Money) (LineAmounts, error) {
	if !quantity.IsPositive() {
		return LineAmounts{}, apperror.NewInputRange("quantity", "quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, apperror.NewInputRange("unit_price", "unit price must not be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(types.Hundred) {
		return LineAmounts{}, apperror.NewInputRange("discount_percent", "discount must be between 0 and 100")
	}
	if taxRate.IsNegative() {
		return LineAmounts{}, apperror.NewInputRange("tax_rate", "tax rate must not be negative")
	}

	base := quantity.Mul(unitPrice)
	discountAmount := types.Percent(base, discountPercent)
	subtotal := base.Sub(discountAmount)
	taxAmount := types.Percent(subtotal, taxRate)

	return LineAmounts{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          subtotal.Add(taxAmount),
	}, nil
}

// AggregateLines sums lines into document totals.
// Totals are always recomputed from the complete line list, never patched
// incrementally, so a torn total cannot be observed.
func AggregateLines(lines []DocumentLine) Totals {
	var t Totals
	t.Subtotal = types.Zero()
	t.DiscountPercent = types.Zero()
	t.DiscountAmount = types.Zero()
	t.TaxAmount = types.Zero()
	t.Total = types.Zero()

	for _, line := range lines {
		t.Subtotal = t.Subtotal.Add(line.Subtotal).Add(line.DiscountAmount)
		t.DiscountAmount = t.DiscountAmount.Add(line.DiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(line.TaxAmount)
		t.Total = t.Total.Add(line.Total)
	}

	if t.Subtotal.IsPositive() {
		t.DiscountPercent = t.DiscountAmount.Mul(types.Hundred).Div(t.Subtotal)
	}

	return t
}
