package entity

import "github.com/shopspring/decimal"

// Totals is the read-side fold over a set of line items. It is never stored.
type Totals struct {
	Subtotal                  decimal.Decimal `json:"subtotal"`
	TotalDiscount             decimal.Decimal `json:"total_discount"`
	GrandTotal                decimal.Decimal `json:"grand_total"`
	DiscountPercentOfSubtotal decimal.Decimal `json:"discount_percent_of_subtotal"`
}

// ComputeTotals folds items into subtotal, discount and grand total.
// The discount percentage is zero when the subtotal is zero.
func ComputeTotals(items []LineItem) Totals {
	t := Totals{
		Subtotal:                  decimal.Zero,
		TotalDiscount:             decimal.Zero,
		GrandTotal:                decimal.Zero,
		DiscountPercentOfSubtotal: decimal.Zero,
	}
	for i := range items {
		t.Subtotal = t.Subtotal.Add(items[i].RawAmount())
		t.TotalDiscount = t.TotalDiscount.Add(items[i].DiscountAmount())
		t.GrandTotal = t.GrandTotal.Add(items[i].ComputedPrice)
	}
	if !t.Subtotal.IsZero() {
		t.DiscountPercentOfSubtotal = t.TotalDiscount.Div(t.Subtotal).Mul(hundred)
	}
	return t
}
