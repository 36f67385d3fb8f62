package entity

import (
	"strings"

	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Limits on operator-entered numbers. Values outside them read as 0.
const maxInputExponent = 32

var maxInputMagnitude = decimal.New(1, 12)

// NormalizeInput returns d, or zero when d is too large or too finely scaled
// to be a quantity, price or discount.
func NormalizeInput(d decimal.Decimal) decimal.Decimal {
	// Exponent first: comparing a huge exponent rescales the coefficient.
	if exp := d.Exponent(); exp > maxInputExponent || exp < -maxInputExponent {
		return decimal.Zero
	}
	if d.Abs().GreaterThan(maxInputMagnitude) {
		return decimal.Zero
	}
	return d
}

// LineItem represents one billable row of the invoice draft.
// ComputedPrice is derived from Quantity, UnitPrice, DiscountValue and
// DiscountKind and is only ever written by Recompute.
type LineItem struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Quantity         decimal.Decimal   `json:"quantity"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	DiscountValue    decimal.Decimal   `json:"discount_value"`
	DiscountKind     enum.DiscountKind `json:"discount_kind"`
	IsCatalogSourced bool              `json:"is_catalog_sourced"`
	ComputedPrice    decimal.Decimal   `json:"computed_price"`
}

// NewLineItem returns an empty row: quantity 1, no price, no discount.
func NewLineItem(id string) LineItem {
	return LineItem{
		ID:            id,
		Quantity:      decimal.NewFromInt(1),
		UnitPrice:     decimal.Zero,
		DiscountValue: decimal.Zero,
		DiscountKind:  enum.DiscountAbsolute,
		ComputedPrice: decimal.Zero,
	}
}

// RawAmount is quantity × unit price.
func (li *LineItem) RawAmount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// DiscountAmount is the discount in currency, before clamping.
func (li *LineItem) DiscountAmount() decimal.Decimal {
	if li.DiscountKind == enum.DiscountPercent {
		return li.RawAmount().Mul(li.DiscountValue).Div(hundred)
	}
	return li.DiscountValue
}

// Recompute derives ComputedPrice = max(0, raw - discount) and returns it.
func (li *LineItem) Recompute() decimal.Decimal {
	price := li.RawAmount().Sub(li.DiscountAmount())
	if price.IsNegative() {
		price = decimal.Zero
	}
	li.ComputedPrice = price
	return price
}

// IsValid reports whether the row is billable: it has a name and a
// positive computed price.
func (li *LineItem) IsValid() bool {
	return strings.TrimSpace(li.Name) != "" && li.ComputedPrice.IsPositive()
}

// LineItemChanges carries a partial row edit. Nil fields are left as they are.
type LineItemChanges struct {
	Name          *string
	Quantity      *decimal.Decimal
	UnitPrice     *decimal.Decimal
	DiscountValue *decimal.Decimal
	DiscountKind  *enum.DiscountKind
}

// Apply merges the changes into the row and recomputes its price.
// Numbers outside the input limits are stored as 0.
func (li *LineItem) Apply(c LineItemChanges) {
	if c.Name != nil {
		li.Name = *c.Name
	}
	if c.Quantity != nil {
		li.Quantity = NormalizeInput(*c.Quantity)
	}
	if c.UnitPrice != nil {
		li.UnitPrice = NormalizeInput(*c.UnitPrice)
	}
	if c.DiscountValue != nil {
		li.DiscountValue = NormalizeInput(*c.DiscountValue)
	}
	if c.DiscountKind != nil {
		li.DiscountKind = *c.DiscountKind
	}
	li.Recompute()
}
