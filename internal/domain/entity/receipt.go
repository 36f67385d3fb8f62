package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the shop header printed at the top of an invoice.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Footer   string `json:"footer,omitempty"`
}

// Receipt is the printable rendering of a submitted (or previewed) draft.
// It holds only the valid items and the totals computed over them, so
// it mirrors exactly what was sent to the storage endpoint.
// It is composed at print time and never stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	BillNumber  string        `json:"bill_number"`
	Date        string        `json:"date"`
	Customer    string        `json:"customer"`
	Mobile      string        `json:"mobile,omitempty"`
	CollectedBy string        `json:"collected_by"`
	Note        string        `json:"note,omitempty"`
	Items       []LineItem    `json:"items"`
	Totals      Totals        `json:"totals"`
}

// NewReceipt builds a receipt from a draft snapshot and its valid items.
func NewReceipt(header ReceiptHeader, d *Draft, valid []LineItem) *Receipt {
	return &Receipt{
		Header:      header,
		BillNumber:  d.BillNumber,
		Date:        d.FormattedDate(),
		Customer:    d.CustomerName,
		Mobile:      d.MobileNumber,
		CollectedBy: d.CollectedByStaffName,
		Note:        d.Note,
		Items:       valid,
		Totals:      ComputeTotals(valid),
	}
}

// Money formats an amount with two decimals for presentation.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
