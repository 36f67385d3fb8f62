package service

import (
	"strings"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/pkg/apperror"
)

// Validation messages, checked in this order.
const (
	MsgCustomerRequired = "Customer Name is mandatory."
	MsgDateRequired     = "Date is mandatory."
	MsgStaffRequired    = "Staff (Collected By) selection is mandatory."
	MsgNoValidItems     = "At least one valid item with positive price is required."
)

// ValidateDraft checks the draft is complete enough to submit or print and
// returns the valid items. Only the first failing rule is reported.
func ValidateDraft(d *entity.Draft) ([]entity.LineItem, error) {
	if strings.TrimSpace(d.CustomerName) == "" {
		return nil, apperror.NewValidationError("customer_name", MsgCustomerRequired)
	}
	if d.Date == nil || d.Date.IsZero() {
		return nil, apperror.NewValidationError("date", MsgDateRequired)
	}
	if strings.TrimSpace(d.CollectedByStaffID) == "" || strings.TrimSpace(d.CollectedByStaffName) == "" {
		return nil, apperror.NewValidationError("collected_by", MsgStaffRequired)
	}
	valid := d.ValidItems()
	if len(valid) == 0 {
		return nil, apperror.NewValidationError("line_items", MsgNoValidItems)
	}
	return valid, nil
}
