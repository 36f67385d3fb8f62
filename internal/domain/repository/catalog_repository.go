package repository

import (
	"context"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
)

// CatalogRepository provides the read-only item catalog used for auto-fill.
type CatalogRepository interface {
	// List returns all catalog items in display order.
	List(ctx context.Context) ([]entity.CatalogItem, error)
	// FindByName returns the entry whose name matches exactly, or nil.
	FindByName(ctx context.Context, name string) (*entity.CatalogItem, error)
	// UpsertBatch inserts or refreshes entries by name (used for seeding).
	UpsertBatch(ctx context.Context, items []entity.CatalogItem) error
}

// StaffRepository provides the read-only staff directory.
type StaffRepository interface {
	// List returns all staff in display order.
	List(ctx context.Context) ([]entity.Staff, error)
	// FindByID returns the staff member with that directory id, or nil.
	FindByID(ctx context.Context, id string) (*entity.Staff, error)
	// UpsertBatch inserts or refreshes entries by id (used for seeding).
	UpsertBatch(ctx context.Context, staff []entity.Staff) error
}
