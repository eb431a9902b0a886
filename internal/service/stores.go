package service

import (
	"context"
	"time"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/repository"
)

// Persistence ports. The gorm repositories satisfy them; tests use in-memory fakes.

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	LinkGoogleAccount(ctx context.Context, userID uint, googleID string) error
	CompleteProfile(ctx context.Context, userID uint, phone string) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	SetActive(ctx context.Context, userID uint, active bool) error
}

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByUserID(ctx context.Context, userID uint) (*model.Employee, error)
}

type VerificationTokenStore interface {
	Create(ctx context.Context, token *model.EmailVerificationToken) error
	GetByToken(ctx context.Context, token string) (*model.EmailVerificationToken, error)
	MarkVerified(ctx context.Context, tokenID uint) (int64, error)
	DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error)
}

type ResetTokenStore interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, tokenID uint) (int64, error)
	DeleteExpiredUnused(ctx context.Context, now time.Time) (int64, error)
}

type CategoryStore interface {
	ListWithDressCount(ctx context.Context) ([]repository.CategoryCount, error)
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	CountDresses(ctx context.Context, id uint) (int64, error)
	CountActiveDresses(ctx context.Context, id uint) (int64, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type DressStore interface {
	Browse(ctx context.Context, f dto.CatalogFilter) ([]model.Dress, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Dress, error)
	GetDetail(ctx context.Context, id uint) (*model.Dress, error)
	Create(ctx context.Context, dress *model.Dress) error
	Update(ctx context.Context, dress *model.Dress) error
	Deactivate(ctx context.Context, id uint) error
}

type VariantStore interface {
	ExistsForDress(ctx context.Context, dressID uint, size, color string) (bool, error)
	GetByID(ctx context.Context, dressID, variantID uint) (*model.DressVariant, error)
	Create(ctx context.Context, variant *model.DressVariant) error
	UpdateStatus(ctx context.Context, variantID uint, status model.VariantStatus) error
}

type StockStore interface {
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	CreateItem(ctx context.Context, item *model.StockItem, level *model.StockLevel) error
}

type ImageStore interface {
	Create(ctx context.Context, image *model.DressImage) error
	CountByURL(ctx context.Context, url string) (int64, error)
	GetByID(ctx context.Context, dressID, imageID uint) (*model.DressImage, error)
	Delete(ctx context.Context, imageID uint) error
}

type MeasurementStore interface {
	GetActive(ctx context.Context, customerID uint) (*model.CustomerMeasurement, error)
	DeactivateAll(ctx context.Context, customerID uint) (int64, error)
	Create(ctx context.Context, m *model.CustomerMeasurement) error
}

type OrderStore interface {
	HandlesCustomer(ctx context.Context, employeeID, customerID uint) (bool, error)
}
