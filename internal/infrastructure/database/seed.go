package database

import (
	"context"
	"fmt"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type seedItem struct {
	Name      string  `mapstructure:"name"`
	UnitPrice float64 `mapstructure:"unit_price"`
}

type seedStaff struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// Seed is the reference data loaded at startup.
type Seed struct {
	Items []entity.CatalogItem
	Staff []entity.Staff
}

// DefaultSeed is used when no seed file is configured.
func DefaultSeed() *Seed {
	items := []seedItem{
		{Name: "Aadhaar Update", UnitPrice: 50},
		{Name: "PAN Card Application", UnitPrice: 120},
		{Name: "Passport Application", UnitPrice: 200},
		{Name: "Income Certificate", UnitPrice: 40},
		{Name: "Photocopy", UnitPrice: 2},
		{Name: "Colour Print", UnitPrice: 10},
	}
	staff := []seedStaff{
		{ID: "S001", Name: "Anitha"},
		{ID: "S002", Name: "Rahul"},
	}
	return buildSeed(items, staff)
}

// LoadSeedFile reads catalog items and staff from a YAML, JSON or TOML file:
//
//	items:
//	  - name: Photocopy
//	    unit_price: 2
//	staff:
//	  - id: S001
//	    name: Anitha
func LoadSeedFile(path string) (*Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var items []seedItem
	if err := v.UnmarshalKey("items", &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog items: %w", err)
	}
	var staff []seedStaff
	if err := v.UnmarshalKey("staff", &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return buildSeed(items, staff), nil
}

func buildSeed(items []seedItem, staff []seedStaff) *Seed {
	s := &Seed{
		Items: make([]entity.CatalogItem, 0, len(items)),
		Staff: make([]entity.Staff, 0, len(staff)),
	}
	for i, it := range items {
		if it.Name == "" {
			continue
		}
		s.Items = append(s.Items, entity.CatalogItem{
			Name:      it.Name,
			UnitPrice: decimal.NewFromFloat(it.UnitPrice),
			Position:  i,
		})
	}
	for i, st := range staff {
		if st.ID == "" {
			continue
		}
		s.Staff = append(s.Staff, entity.Staff{
			StaffID:  st.ID,
			Name:     st.Name,
			Position: i,
		})
	}
	return s
}

// SeedReferenceData writes the catalog and staff directory.
func SeedReferenceData(ctx context.Context, catalog repository.CatalogRepository, staff repository.StaffRepository, seed *Seed, log *zap.Logger) error {
	if err := catalog.UpsertBatch(ctx, seed.Items); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	if err := staff.UpsertBatch(ctx, seed.Staff); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}
	log.Info("reference data seeded",
		zap.Int("catalog_items", len(seed.Items)),
		zap.Int("staff", len(seed.Staff)))
	return nil
}
