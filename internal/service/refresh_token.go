package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type RefreshTokenStore interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, tokenID uint) (int64, error)
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenService issues and rotates refresh tokens. Each rotated token
// points at the one it replaced, so a session's history forms a chain.
type RefreshTokenService struct {
	repo RefreshTokenStore
	ttl  time.Duration
	now  func() time.Time
}

func NewRefreshTokenService(repo RefreshTokenStore, ttl time.Duration) *RefreshTokenService {
	return &RefreshTokenService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *RefreshTokenService) Create(ctx context.Context, userID uint) (*model.RefreshToken, error) {
	return s.issue(ctx, userID, nil)
}

func (s *RefreshTokenService) issue(ctx context.Context, userID uint, parentID *uint) (*model.RefreshToken, error) {
	value, err := GenerateSecureToken(constants.RefreshTokenBytes)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token := &model.RefreshToken{
		UserID:        userID,
		Token:         value,
		ExpiresAt:     s.now().Add(s.ttl),
		ParentTokenID: parentID,
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return token, nil
}

// Verify returns the stored token when it exists, is not revoked and has not expired
func (s *RefreshTokenService) Verify(ctx context.Context, value string) (*model.RefreshToken, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "VerifyRefreshToken")

	token, err := s.repo.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid refresh token")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if token.Revoked {
		logger.WarnWithContext(ctx, "Revoked refresh token presented").
			Uint("token_id", token.TokenID).
			Uint("user_id", token.UserID).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Refresh token has been revoked")
	}
	if token.IsExpired(s.now()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Refresh token has expired")
	}
	return token, nil
}

// Rotate revokes old and issues its successor. Only the caller whose revoke
// flips the row gets a successor.
func (s *RefreshTokenService) Rotate(ctx context.Context, old *model.RefreshToken) (*model.RefreshToken, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "RotateRefreshToken")

	revoked, err := s.repo.Revoke(ctx, old.TokenID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if revoked == 0 {
		logger.WarnWithContext(ctx, "Refresh token already rotated").
			Uint("token_id", old.TokenID).
			Uint("user_id", old.UserID).
			Log()
		return nil, apperrors.WithMessage(apperrors.ErrInvalidToken, "Refresh token has been revoked")
	}
	old.Revoked = true

	parentID := old.TokenID
	return s.issue(ctx, old.UserID, &parentID)
}

func (s *RefreshTokenService) RevokeAll(ctx context.Context, userID uint) error {
	if _, err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
