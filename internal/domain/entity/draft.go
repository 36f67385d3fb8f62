package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the form and on the wire.
const DateLayout = "2006-01-02"

// CatalogMatch is a catalog entry the selection resolved to.
type CatalogMatch struct {
	Name      string
	UnitPrice decimal.Decimal
}

// Draft is the in-memory, unsaved invoice being edited by the operator.
// LineItems keeps insertion order and is never empty.
type Draft struct {
	BillNumber           string     `json:"bill_number"`
	Date                 *time.Time `json:"date"`
	CustomerName         string     `json:"customer_name"`
	MobileNumber         string     `json:"mobile_number"`
	Note                 string     `json:"note"`
	CollectedByStaffID   string     `json:"collected_by_staff_id"`
	CollectedByStaffName string     `json:"collected_by_staff_name"`
	StaffLocked          bool       `json:"staff_locked"`
	LineItems            []LineItem `json:"line_items"`

	newID func() string
}

// NewDraft creates a fresh draft dated today with one empty row.
func NewDraft(billNumber string, today time.Time, newID func() string) *Draft {
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	d := &Draft{
		BillNumber: billNumber,
		Date:       &date,
		newID:      newID,
	}
	d.LineItems = []LineItem{NewLineItem(newID())}
	return d
}

// Clone returns a deep copy that shares no mutable state with d.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.Date != nil {
		date := *d.Date
		c.Date = &date
	}
	c.LineItems = make([]LineItem, len(d.LineItems))
	copy(c.LineItems, d.LineItems)
	return &c
}

// FormattedDate returns the draft date as YYYY-MM-DD, or "" when unset.
func (d *Draft) FormattedDate() string {
	if d.Date == nil {
		return ""
	}
	return d.Date.Format(DateLayout)
}

func (d *Draft) indexOf(id string) int {
	for i := range d.LineItems {
		if d.LineItems[i].ID == id {
			return i
		}
	}
	return -1
}

// Item returns a copy of the row with the given id.
func (d *Draft) Item(id string) (LineItem, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return LineItem{}, false
	}
	return d.LineItems[i], true
}

// AddItem appends an empty row and returns it.
func (d *Draft) AddItem() LineItem {
	item := NewLineItem(d.newID())
	d.LineItems = append(d.LineItems, item)
	return item
}

// UpdateItem applies a partial edit to one row and recomputes only that row.
func (d *Draft) UpdateItem(id string, changes LineItemChanges) (LineItem, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return LineItem{}, false
	}
	d.LineItems[i].Apply(changes)
	return d.LineItems[i], true
}

// RemoveItem deletes a row. Removing the only row leaves a fresh empty row
// in its place.
func (d *Draft) RemoveItem(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.LineItems = append(d.LineItems[:i], d.LineItems[i+1:]...)
	if len(d.LineItems) == 0 {
		d.LineItems = []LineItem{NewLineItem(d.newID())}
	}
	return true
}

// ApplySelection sets the row's item identity from the item picker.
//
// A nil selection clears name and unit price and leaves the discount alone.
// A catalog match copies name and unit price and resets the discount value.
// Anything else is a custom entry with no price. Every non-nil selection
// appends a new empty trailing row.
func (d *Draft) ApplySelection(id string, selection *string, match *CatalogMatch) (LineItem, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return LineItem{}, false
	}
	item := &d.LineItems[i]
	switch {
	case selection == nil:
		item.Name = ""
		item.UnitPrice = decimal.Zero
		item.IsCatalogSourced = false
	case match != nil:
		item.Name = match.Name
		item.UnitPrice = match.UnitPrice
		item.DiscountValue = decimal.Zero
		item.IsCatalogSourced = true
	default:
		item.Name = *selection
		item.UnitPrice = decimal.Zero
		item.IsCatalogSourced = false
	}
	item.Recompute()
	updated := *item

	if selection != nil {
		d.AddItem()
	}
	return updated, true
}

// ValidItems returns the rows that will be submitted and printed, in order.
func (d *Draft) ValidItems() []LineItem {
	valid := make([]LineItem, 0, len(d.LineItems))
	for _, item := range d.LineItems {
		if item.IsValid() {
			valid = append(valid, item)
		}
	}
	return valid
}

// Totals folds every row of the draft, including placeholders.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.LineItems)
}
