package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogItem is a known billable service with its default unit price.
// Position keeps the order the item picker shows them in.
type CatalogItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;uniqueIndex;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Position  int             `gorm:"not null;default:0;index" json:"position"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new catalog item
func (c *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// Match converts the entry into the value applied to a draft row.
func (c *CatalogItem) Match() *CatalogMatch {
	return &CatalogMatch{Name: c.Name, UnitPrice: c.UnitPrice}
}

// Staff is a person who can be recorded as having collected the payment.
// StaffID is the directory's own identifier (e.g. "S001"), not a UUID.
type Staff struct {
	StaffID   string    `gorm:"size:64;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Position  int       `gorm:"not null;default:0;index" json:"position"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
