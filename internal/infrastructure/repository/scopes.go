package repository

import "gorm.io/gorm"

// DisplayOrder sorts reference data the way pickers list it: by seeded
// position, then by name for entries sharing a position.
func DisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("name ASC")
}
