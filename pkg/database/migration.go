package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

// AutoMigrate creates or updates the schema for every model, then adds
// the indexes gorm tags cannot express.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.RefreshToken{},
		&model.EmailVerificationToken{},
		&model.PasswordResetToken{},
		&model.Category{},
		&model.StockItem{},
		&model.StockLevel{},
		&model.Dress{},
		&model.DressVariant{},
		&model.DressImage{},
		&model.Order{},
		&model.CustomerMeasurement{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return CreateIndexes(db)
}
