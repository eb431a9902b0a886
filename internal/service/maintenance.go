package service

import (
	"context"
	"time"

	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type MaintenanceService struct {
	refresh       RefreshTokenStore
	verifications VerificationTokenStore
	resets        ResetTokenStore
	now           func() time.Time
}

func NewMaintenanceService(refresh RefreshTokenStore, verifications VerificationTokenStore, resets ResetTokenStore) *MaintenanceService {
	return &MaintenanceService{
		refresh:       refresh,
		verifications: verifications,
		resets:        resets,
		now:           time.Now,
	}
}

// PurgeExpiredTokens deletes expired refresh tokens and expired action tokens
// that were never consumed. Consumed action tokens are kept for audit.
func (s *MaintenanceService) PurgeExpiredTokens(ctx context.Context) error {
	ctx = ctxutil.WithFunction(ctx, "service", "PurgeExpiredTokens")
	now := s.now()

	refresh, err := s.refresh.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	verifications, err := s.verifications.DeleteExpiredUnverified(ctx, now)
	if err != nil {
		return err
	}
	resets, err := s.resets.DeleteExpiredUnused(ctx, now)
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Expired tokens purged").
		Int64("refresh_tokens", refresh).
		Int64("verification_tokens", verifications).
		Int64("reset_tokens", resets).
		Log()
	return nil
}
