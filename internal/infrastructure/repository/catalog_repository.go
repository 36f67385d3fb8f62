package repository

import (
	"context"
	"errors"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	domainRepo "github.com/sangkips/invoice-desk/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(ctx context.Context) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	err := r.db.WithContext(ctx).
		Scopes(DisplayOrder).
		Find(&items).Error
	return items, err
}

func (r *catalogRepository) FindByName(ctx context.Context, name string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) UpsertBatch(ctx context.Context, items []entity.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"unit_price", "position", "updated_at"}),
		}).
		Create(&items).Error
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff directory repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) List(ctx context.Context) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.db.WithContext(ctx).
		Scopes(DisplayOrder).
		Find(&staff).Error
	return staff, err
}

func (r *staffRepository) FindByID(ctx context.Context, id string) (*entity.Staff, error) {
	var s entity.Staff
	err := r.db.WithContext(ctx).First(&s, "staff_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) UpsertBatch(ctx context.Context, staff []entity.Staff) error {
	if len(staff) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "staff_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "position", "updated_at"}),
		}).
		Create(&staff).Error
}
