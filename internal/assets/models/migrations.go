package models

import "gorm.io/gorm"

// AutoMigrate runs database migrations for the assets domain
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&File{},
		&Section{},
		&Commit{},
	)
}
