package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/models"
)

// Migrate brings the schema up to date. The catalog tables carry the unique
// name indexes that back the Conflict semantics, so ordering matters only in
// that referenced tables are created before recipes.
func Migrate(db *gorm.DB) error {
	log.Printf("Running schema migration")
	return db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Cuisine{},
		&models.Category{},
		&models.Recipe{},
	)
}
