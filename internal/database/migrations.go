package database

import (
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Sport{},
		&models.User{},
		&models.Match{},
		&models.Event{},
		&models.GalleryImage{},
		&models.ContactMessage{},
		&models.CacheEntry{},
	)
}
