package service

import (
	"context"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/repository"
)

// CatalogService exposes the item catalog and staff directory for the pickers.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	staffRepo   repository.StaffRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, staffRepo repository.StaffRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, staffRepo: staffRepo}
}

// ListItems returns the catalog in display order.
func (s *CatalogService) ListItems(ctx context.Context) ([]entity.CatalogItem, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.CatalogItem{}
	}
	return items, nil
}

// ListStaff returns the staff directory in display order.
func (s *CatalogService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		staff = []entity.Staff{}
	}
	return staff, nil
}
