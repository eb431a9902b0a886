package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
)

// revokedElsewhere reports that another request already revoked the token
type revokedElsewhere struct {
	*fakeRefreshTokens
}

func (revokedElsewhere) Revoke(context.Context, uint) (int64, error) { return 0, nil }

func TestRotate_SecondReaderOfSameTokenLoses(t *testing.T) {
	repo := &fakeRefreshTokens{}
	svc := NewRefreshTokenService(repo, time.Hour)
	ctx := context.Background()

	original, err := svc.Create(ctx, 7)
	require.NoError(t, err)

	// both requests read the token before either writes
	first, err := svc.Verify(ctx, original.Token)
	require.NoError(t, err)
	second, err := svc.Verify(ctx, original.Token)
	require.NoError(t, err)

	next, err := svc.Rotate(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, next.ParentTokenID)

	_, err = svc.Rotate(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	children := 0
	for _, tok := range repo.tokens {
		if tok.ParentTokenID != nil && *tok.ParentTokenID == original.TokenID {
			children++
		}
	}
	assert.Equal(t, 1, children)
}

func TestRefresh_LostRevokeIssuesNothing(t *testing.T) {
	f := newAuthFixture()
	f.verifiedUser(t, "ok@example.com", "Secret@123")
	login, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ok@example.com", Password: "Secret@123"})
	require.NoError(t, err)
	require.Len(t, f.refresh.tokens, 1)

	f.svc.refresh = NewRefreshTokenService(revokedElsewhere{f.refresh}, time.Hour)

	_, err = f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "INVALID_TOKEN", apperrors.GetErrorCode(err))
	assert.Len(t, f.refresh.tokens, 1)
}
