package repository

import (
	"vidtube/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Video{},
		&domain.Subscription{},
	)
}
