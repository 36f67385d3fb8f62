package entity

import (
	"time"
)

// SaveInvoiceAction is the action name the spreadsheet endpoint dispatches on.
const SaveInvoiceAction = "saveInvoice"

// StatusSuccess is the only response status that means the invoice was stored.
const StatusSuccess = "success"

// SaveInvoiceRequest is the row-oriented payload sent to the storage endpoint.
// BillData holds exactly one row for the bills sheet and ItemsData one row
// per valid item for the items sheet.
type SaveInvoiceRequest struct {
	Action    string  `json:"action"`
	BillData  [][]any `json:"billData"`
	ItemsData [][]any `json:"itemsData"`
}

// SaveInvoiceResponse is the endpoint's reply.
type SaveInvoiceResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the endpoint accepted the invoice.
func (r *SaveInvoiceResponse) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// Bill sheet columns, in order.
var BillColumns = []string{
	"Timestamp", "Bill Number", "Date", "Customer Name", "Mobile", "Collected By",
	"Collected By ID", "Item Count", "Subtotal", "Total Discount", "Total After", "Note",
}

// Item sheet columns, in order.
var ItemColumns = []string{
	"Bill Number", "Timestamp", "Date", "Collected By", "Row", "Item", "Qty", "Unit Price",
	"Discount", "Discount Type", "Discount Amount", "Price", "From Catalog",
}

// BuildSaveInvoiceRequest serializes a draft snapshot and its valid items.
// Totals are computed over the valid items only, the same set the receipt prints.
func BuildSaveInvoiceRequest(d *Draft, valid []LineItem, at time.Time) *SaveInvoiceRequest {
	ts := at.Format(time.RFC3339)
	date := d.FormattedDate()
	totals := ComputeTotals(valid)

	bill := []any{
		ts,
		d.BillNumber,
		date,
		d.CustomerName,
		d.MobileNumber,
		d.CollectedByStaffName,
		d.CollectedByStaffID,
		len(valid),
		totals.Subtotal.InexactFloat64(),
		totals.TotalDiscount.InexactFloat64(),
		totals.GrandTotal.InexactFloat64(),
		d.Note,
	}

	items := make([][]any, 0, len(valid))
	for i, it := range valid {
		fromCatalog := "No"
		if it.IsCatalogSourced {
			fromCatalog = "Yes"
		}
		items = append(items, []any{
			d.BillNumber,
			ts,
			date,
			d.CollectedByStaffName,
			i + 1,
			it.Name,
			it.Quantity.InexactFloat64(),
			it.UnitPrice.InexactFloat64(),
			it.DiscountValue.InexactFloat64(),
			it.DiscountKind.String(),
			it.DiscountAmount().InexactFloat64(),
			it.ComputedPrice.InexactFloat64(),
			fromCatalog,
		})
	}

	return &SaveInvoiceRequest{
		Action:    SaveInvoiceAction,
		BillData:  [][]any{bill},
		ItemsData: items,
	}
}
