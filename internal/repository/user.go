package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByID")

	logger.DebugWithContext(ctx, "Getting user by ID").
		Uint("user_id", id).
		Log()

	// Check if context is cancelled
	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := conn(ctx, r.db).Where("user_id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by ID").
				Uint("user_id", id).
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("user_id", id).
		String("email", user.Email).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByEmail finds user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByEmail")

	start := time.Now()
	var user model.User
	result := conn(ctx, r.db).Where("email = ?", email).First(&user)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by email").
				String("email", email).
				Duration(time.Since(start)).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByGoogleID")

	var user model.User
	if err := conn(ctx, r.db).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by Google ID").
				Err(err).
				Log()
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ExistsByEmail")

	var count int64
	if err := conn(ctx, r.db).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to check email existence").
			String("email", email).
			Err(err).
			Log()
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	start := time.Now()
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User created successfully").
		Uint("user_id", user.UserID).
		String("email", user.Email).
		String("role", string(user.Role)).
		Duration(time.Since(start)).
		Log()
	return nil
}

// updateColumns writes only the given columns so concurrent changes to
// other columns survive
func (r *UserRepository) updateColumns(ctx context.Context, userID uint, columns map[string]interface{}) error {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(columns)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateLastLogin")
	return r.updateColumns(ctx, userID, map[string]interface{}{"last_login_at": at})
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "MarkEmailVerified")
	return r.updateColumns(ctx, userID, map[string]interface{}{"email_verified": true})
}

// LinkGoogleAccount attaches a Google subject and marks the email verified
func (r *UserRepository) LinkGoogleAccount(ctx context.Context, userID uint, googleID string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "LinkGoogleAccount")
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"google_id":      googleID,
		"oauth_provider": model.ProviderGoogle,
		"email_verified": true,
	})
}

func (r *UserRepository) CompleteProfile(ctx context.Context, userID uint, phone string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CompleteProfile")
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"phone":             phone,
		"profile_completed": true,
	})
}

// UpdatePassword stores a new hash and clears the forced-change flag
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdatePassword")
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"password_hash":            passwordHash,
		"password_change_required": false,
	})
}

func (r *UserRepository) SetActive(ctx context.Context, userID uint, active bool) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "SetActive")
	return r.updateColumns(ctx, userID, map[string]interface{}{"is_active": active})
}

func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateEmployee")

	if err := conn(ctx, r.db).Create(employee).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create employee").
			Uint("user_id", employee.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetEmployeeByUserID")

	var employee model.Employee
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&employee).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get employee").
				Uint("user_id", userID).
				Err(err).
				Log()
		}
		return nil, err
	}
	return &employee, nil
}
