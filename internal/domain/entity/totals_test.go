package entity

import (
	"testing"

	"github.com/sangkips/invoice-desk/internal/domain/enum"
)

func TestComputeTotalsExample(t *testing.T) {
	items := []LineItem{
		item("1", "50", "0", enum.DiscountAbsolute),
		item("2", "20", "5", enum.DiscountAbsolute),
	}
	got := ComputeTotals(items)

	if !got.Subtotal.Equal(dec("90")) {
		t.Errorf("subtotal = %s, want 90", got.Subtotal)
	}
	if !got.TotalDiscount.Equal(dec("5")) {
		t.Errorf("total discount = %s, want 5", got.TotalDiscount)
	}
	if !got.GrandTotal.Equal(dec("85")) {
		t.Errorf("grand total = %s, want 85", got.GrandTotal)
	}
	if pct := got.DiscountPercentOfSubtotal.StringFixed(2); pct != "5.56" {
		t.Errorf("discount percent = %s, want 5.56", pct)
	}
}

func TestComputeTotalsZeroSubtotal(t *testing.T) {
	cases := [][]LineItem{
		nil,
		{NewLineItem("a")},
		{item("0", "100", "10", enum.DiscountAbsolute)},
	}
	for i, items := range cases {
		got := ComputeTotals(items)
		if !got.DiscountPercentOfSubtotal.IsZero() {
			t.Errorf("case %d: percent = %s, want 0", i, got.DiscountPercentOfSubtotal)
		}
	}
}

func TestTotalDiscountAgreesWithDifference(t *testing.T) {
	items := []LineItem{
		item("3", "100", "10", enum.DiscountPercent),
		item("2", "20", "5", enum.DiscountAbsolute),
		item("1", "7.5", "0", enum.DiscountAbsolute),
	}
	got := ComputeTotals(items)
	diff := got.Subtotal.Sub(got.GrandTotal)
	if !got.TotalDiscount.Equal(diff) {
		t.Fatalf("total discount %s != subtotal - grand total %s", got.TotalDiscount, diff)
	}
}
