package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/sangkips/invoice-desk/pkg/apperror"
	"github.com/shopspring/decimal"
)

// FlexNumber is a numeric form field. It accepts a JSON number or a string;
// anything that does not parse as a finite number within the entity input
// limits reads as 0.
type FlexNumber struct {
	Value decimal.Decimal
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.Value = decimal.Zero
			return nil
		}
		raw = s
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		v = decimal.Zero
	}
	n.Value = entity.NormalizeInput(v)
	return nil
}

func (n *FlexNumber) ptr() *decimal.Decimal {
	if n == nil {
		return nil
	}
	v := n.Value
	return &v
}

// StartSessionRequest opens a new draft, optionally locked to a staff member.
type StartSessionRequest struct {
	StaffID string `json:"staff_id" form:"staffId" binding:"omitempty,max=64"`
}

// UpdateHeaderRequest edits the draft header. Omitted fields are unchanged.
type UpdateHeaderRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,max=255"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,max=32"`
	Note         *string `json:"note" binding:"omitempty,max=1000"`
	Date         *string `json:"date"`
}

// SelectStaffRequest picks the collecting staff member.
type SelectStaffRequest struct {
	StaffID string `json:"staff_id" binding:"max=64"`
}

// UpdateItemRequest edits one line item. Omitted fields are unchanged.
type UpdateItemRequest struct {
	Name          *string     `json:"name" binding:"omitempty,max=255"`
	Quantity      *FlexNumber `json:"quantity"`
	UnitPrice     *FlexNumber `json:"unit_price"`
	DiscountValue *FlexNumber `json:"discount_value"`
	DiscountType  *string     `json:"discount_type"`
}

// ToChanges converts the request into a row edit.
func (r *UpdateItemRequest) ToChanges() (entity.LineItemChanges, error) {
	changes := entity.LineItemChanges{
		Name:          r.Name,
		Quantity:      r.Quantity.ptr(),
		UnitPrice:     r.UnitPrice.ptr(),
		DiscountValue: r.DiscountValue.ptr(),
	}
	if r.DiscountType != nil {
		kind, err := enum.ParseDiscountKind(*r.DiscountType)
		if err != nil {
			return entity.LineItemChanges{}, apperror.NewBadRequestError("discount_type must be 'amount' or 'percent'")
		}
		changes.DiscountKind = &kind
	}
	return changes, nil
}

// SelectItemRequest applies an item picker selection. A null selection
// clears the row.
type SelectItemRequest struct {
	Selection *string `json:"selection"`
}
