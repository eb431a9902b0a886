package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateRefreshToken")

	if err := conn(ctx, r.db).Create(token).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", token.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetRefreshToken")

	var rt model.RefreshToken
	if err := conn(ctx, r.db).Where("token = ?", token).First(&rt).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to look up refresh token").
				Err(err).
				Log()
		}
		return nil, err
	}
	return &rt, nil
}

// Revoke flags one live token and reports how many rows changed. Zero means
// another caller consumed or revoked it first.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID uint) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "RevokeRefreshToken")

	result := conn(ctx, r.db).Model(&model.RefreshToken{}).
		Where("token_id = ? AND revoked = ?", tokenID, false).
		Update("revoked", true)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke refresh token").
			Uint("token_id", tokenID).
			Err(result.Error).
			Log()
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "RevokeAllForUser")

	start := time.Now()
	result := conn(ctx, r.db).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke refresh tokens").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.DebugWithContext(ctx, "Refresh tokens revoked").
		Uint("user_id", userID).
		Int64("revoked", result.RowsAffected).
		Duration(time.Since(start)).
		Log()
	return result.RowsAffected, nil
}

// DeleteExpired removes tokens past expiry and unlinks children pointing at them
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteExpiredRefreshTokens")

	var deleted int64
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&model.RefreshToken{}).Select("token_id").Where("expires_at < ?", now)
		if err := tx.Model(&model.RefreshToken{}).
			Where("parent_token_id IN (?)", expired).
			Update("parent_token_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("expires_at < ?", now).Delete(&model.RefreshToken{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to purge expired refresh tokens").
			Err(err).
			Log()
		return 0, err
	}
	return deleted, nil
}

type EmailVerificationTokenRepository struct {
	db *gorm.DB
}

func NewEmailVerificationTokenRepository(db *gorm.DB) *EmailVerificationTokenRepository {
	return &EmailVerificationTokenRepository{db: db}
}

func (r *EmailVerificationTokenRepository) Create(ctx context.Context, token *model.EmailVerificationToken) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateVerificationToken")

	if err := conn(ctx, r.db).Create(token).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to store verification token").
			Uint("user_id", token.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *EmailVerificationTokenRepository) GetByToken(ctx context.Context, token string) (*model.EmailVerificationToken, error) {
	var vt model.EmailVerificationToken
	if err := conn(ctx, r.db).Where("token = ?", token).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

// MarkVerified consumes an unverified token and reports the rows changed
func (r *EmailVerificationTokenRepository) MarkVerified(ctx context.Context, tokenID uint) (int64, error) {
	result := conn(ctx, r.db).Model(&model.EmailVerificationToken{}).
		Where("token_id = ? AND verified = ?", tokenID, false).
		Update("verified", true)
	return result.RowsAffected, result.Error
}

func (r *EmailVerificationTokenRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("verified = ? AND expires_at < ?", false, now).
		Delete(&model.EmailVerificationToken{})
	return result.RowsAffected, result.Error
}

type PasswordResetTokenRepository struct {
	db *gorm.DB
}

func NewPasswordResetTokenRepository(db *gorm.DB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

func (r *PasswordResetTokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateResetToken")

	if err := conn(ctx, r.db).Create(token).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to store password reset token").
			Uint("user_id", token.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var pt model.PasswordResetToken
	if err := conn(ctx, r.db).Where("token = ?", token).First(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// MarkUsed consumes an unused token and reports the rows changed
func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, tokenID uint) (int64, error) {
	result := conn(ctx, r.db).Model(&model.PasswordResetToken{}).
		Where("token_id = ? AND used = ?", tokenID, false).
		Update("used", true)
	return result.RowsAffected, result.Error
}

func (r *PasswordResetTokenRepository) DeleteExpiredUnused(ctx context.Context, now time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("used = ? AND expires_at < ?", false, now).
		Delete(&model.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
