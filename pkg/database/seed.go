package database

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/config"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	return SeedAdmin(db, cfg)
}

// SeedAdmin creates the default ADMIN user and its employee row when the
// email is not taken yet.
func SeedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		logger.GetLogger().Info("Admin seeding skipped, no credentials configured")
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)
	provider := model.ProviderEmail

	return db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			FullName:         cfg.AdminName,
			Email:            email,
			Phone:            cfg.AdminPhone,
			PasswordHash:     &hash,
			Role:             model.RoleAdmin,
			IsActive:         true,
			OAuthProvider:    &provider,
			EmailVerified:    true,
			ProfileCompleted: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		employee := model.Employee{
			UserID:         user.UserID,
			JobTitle:       "Administrator",
			EmploymentType: model.EmploymentFullTime,
			SalaryType:     model.SalaryMonthly,
			BaseSalary:     decimal.Zero,
			HireDate:       datatypes.Date(time.Now().UTC()),
			IsActive:       true,
		}
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("Default admin seeded",
			zap.String("email", email),
			zap.Uint("user_id", user.UserID),
		)
		return nil
	})
}
