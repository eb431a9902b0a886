package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

type authFixture struct {
	svc           *AuthService
	users         *fakeUsers
	verifications *fakeVerifications
	resets        *fakeResets
	refresh       *fakeRefreshTokens
	mail          *recordingMailer
	google        *fakeIdentity
	jwt           *JWTService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:         newFakeUsers(),
		verifications: &fakeVerifications{},
		resets:        &fakeResets{},
		refresh:       &fakeRefreshTokens{},
		mail:          newRecordingMailer(),
		google:        &fakeIdentity{},
		jwt:           NewJWTService("test-secret", 15*time.Minute),
	}
	f.svc = NewAuthService(AuthDeps{
		Tx:              &fakeTx{},
		Users:           f.users,
		Verifications:   f.verifications,
		Resets:          f.resets,
		RefreshTokens:   NewRefreshTokenService(f.refresh, 7*24*time.Hour),
		JWT:             f.jwt,
		Google:          f.google,
		Mail:            f.mail,
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        time.Hour,
	})
	return f
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName: "Nadeesha Perera",
		Email:    email,
		Password: "Secret@123",
		Phone:    "+94771234567",
	}
}

func (f *authFixture) verifiedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return f.users.add(model.User{
		FullName:      "Verified User",
		Email:         email,
		PasswordHash:  &hash,
		Role:          model.RoleCustomer,
		IsActive:      true,
		EmailVerified: true,
	})
}

func TestRegister_CreatesUserTokensAndSendsVerification(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(context.Background(), registerRequest("  Bride@Example.com "))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.RequiresEmailVerification)
	assert.False(t, resp.RequiresProfileCompletion)
	assert.Equal(t, "bride@example.com", resp.User.Email)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.True(t, resp.User.ProfileCompleted)
	assert.False(t, resp.User.EmailVerified)

	require.Len(t, f.verifications.tokens, 1)
	vt := f.verifications.tokens[0]
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), vt.ExpiresAt, time.Minute)
	assert.Equal(t, vt.Token, f.mail.verifications["bride@example.com"])

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bride@example.com", claims.Email)
}

func TestRegister_DuplicateEmailHasNoSideEffects(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), registerRequest("bride@example.com"))

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Len(t, f.users.byID, 1)
	assert.Len(t, f.verifications.tokens, 1)
	assert.Len(t, f.refresh.tokens, 1)
}

func TestLogin_Failures(t *testing.T) {
	f := newAuthFixture()
	f.verifiedUser(t, "ok@example.com", "Secret@123")

	hash, _ := HashPassword("Secret@123")
	f.users.add(model.User{Email: "unverified@example.com", PasswordHash: &hash, IsActive: true})
	f.users.add(model.User{Email: "inactive@example.com", PasswordHash: &hash, IsActive: false, EmailVerified: true})
	f.users.add(model.User{Email: "google@example.com", IsActive: true, EmailVerified: true})

	tests := []struct {
		name     string
		email    string
		password string
		kind     error
		message  string
	}{
		{"unknown email", "nobody@example.com", "Secret@123", apperrors.ErrUnauthorized, "Invalid email or password"},
		{"wrong password", "ok@example.com", "wrong", apperrors.ErrUnauthorized, "Invalid email or password"},
		{"oauth only", "google@example.com", "Secret@123", apperrors.ErrUnauthorized, "Please use Google Sign-In for this account"},
		{"deactivated", "inactive@example.com", "Secret@123", apperrors.ErrUnauthorized, "Account is deactivated"},
		{"unverified with correct password", "unverified@example.com", "Secret@123", apperrors.ErrEmailNotVerified, "Please verify your email before logging in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, apperrors.GetErrorMessage(err))
		})
	}
	assert.Empty(t, f.refresh.tokens)
}

func TestLogin_StampsLastLogin(t *testing.T) {
	f := newAuthFixture()
	user := f.verifiedUser(t, "ok@example.com", "Secret@123")

	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "OK@example.com", Password: "Secret@123"})
	require.NoError(t, err)

	assert.False(t, resp.RequiresEmailVerification)
	assert.True(t, resp.RequiresProfileCompletion)
	assert.NotNil(t, f.users.byID[user.UserID].LastLoginAt)
}

func TestRefresh_RotatesAndChains(t *testing.T) {
	f := newAuthFixture()
	f.verifiedUser(t, "ok@example.com", "Secret@123")
	login, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ok@example.com", Password: "Secret@123"})
	require.NoError(t, err)
	first := login.RefreshToken

	rotated, err := f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first})
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated.RefreshToken)
	assert.NotEmpty(t, rotated.AccessToken)

	old := f.refresh.byValue(first)
	next := f.refresh.byValue(rotated.RefreshToken)
	require.NotNil(t, old)
	require.NotNil(t, next)
	assert.True(t, old.Revoked)
	require.NotNil(t, next.ParentTokenID)
	assert.Equal(t, old.TokenID, *next.ParentTokenID)

	_, err = f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "Refresh token has been revoked", apperrors.GetErrorMessage(err))

	again, err := f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, again.RefreshToken)
}

func TestRefresh_UnknownAndExpired(t *testing.T) {
	f := newAuthFixture()
	user := f.verifiedUser(t, "ok@example.com", "Secret@123")

	_, err := f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "nope"})
	assert.Equal(t, "Invalid refresh token", apperrors.GetErrorMessage(err))

	require.NoError(t, f.refresh.Create(context.Background(), &model.RefreshToken{
		UserID:    user.UserID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	_, err = f.svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "stale"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "Refresh token has expired", apperrors.GetErrorMessage(err))
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))
	require.NoError(t, err)
	token := f.mail.verifications["bride@example.com"]

	require.NoError(t, f.svc.VerifyEmail(context.Background(), token))
	assert.True(t, f.users.byID[resp.User.UserID].EmailVerified)

	err = f.svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "Email already verified", apperrors.GetErrorMessage(err))

	err = f.svc.VerifyEmail(context.Background(), "unknown")
	assert.Equal(t, "Invalid verification token", apperrors.GetErrorMessage(err))
}

func TestVerifyEmail_Expired(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	err = f.svc.VerifyEmail(context.Background(), f.mail.verifications["bride@example.com"])
	assert.Equal(t, "Verification token has expired", apperrors.GetErrorMessage(err))
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))
	require.NoError(t, err)
	first := f.mail.verifications["bride@example.com"]

	require.NoError(t, f.svc.ResendVerification(context.Background(), "bride@example.com"))
	assert.NotEqual(t, first, f.mail.verifications["bride@example.com"])

	assert.ErrorIs(t, f.svc.ResendVerification(context.Background(), "ghost@example.com"), apperrors.ErrResourceNotFound)

	f.verifiedUser(t, "done@example.com", "Secret@123")
	assert.ErrorIs(t, f.svc.ResendVerification(context.Background(), "done@example.com"), apperrors.ErrIllegalState)
}

func TestResetPassword_RevokesSessionsAndIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	f.verifiedUser(t, "ok@example.com", "Secret@123")
	login, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ok@example.com", Password: "Secret@123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ok@example.com"))
	token := f.mail.resets["ok@example.com"]
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), f.resets.tokens[0].ExpiresAt, time.Minute)

	require.NoError(t, f.svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: token, NewPassword: "NewSecret@1"}))
	assert.True(t, f.refresh.byValue(login.RefreshToken).Revoked)

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ok@example.com", Password: "NewSecret@1"})
	assert.NoError(t, err)

	err = f.svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: token, NewPassword: "Another@1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "Reset token already used", apperrors.GetErrorMessage(err))

	err = f.svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{Token: "bogus", NewPassword: "Another@1"})
	assert.Equal(t, "Invalid reset token", apperrors.GetErrorMessage(err))
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture()
	err := f.svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, f.resets.tokens)
}

func TestGoogleLogin(t *testing.T) {
	t.Run("creates new customer", func(t *testing.T) {
		f := newAuthFixture()
		f.google.identity = &GoogleIdentity{Subject: "g-1", Email: "new@example.com", Name: "New Bride"}

		resp, err := f.svc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{IDToken: "tok"})
		require.NoError(t, err)

		assert.True(t, resp.RequiresProfileCompletion)
		assert.True(t, resp.User.EmailVerified)
		stored := f.users.byID[resp.User.UserID]
		assert.False(t, stored.HasPassword())
		assert.Equal(t, model.ProviderGoogle, *stored.OAuthProvider)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("links existing email account", func(t *testing.T) {
		f := newAuthFixture()
		hash, _ := HashPassword("Secret@123")
		existing := f.users.add(model.User{Email: "bride@example.com", PasswordHash: &hash, IsActive: true, ProfileCompleted: true})
		f.google.identity = &GoogleIdentity{Subject: "g-2", Email: "bride@example.com"}

		resp, err := f.svc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{IDToken: "tok"})
		require.NoError(t, err)

		assert.Equal(t, existing.UserID, resp.User.UserID)
		assert.False(t, resp.RequiresProfileCompletion)
		stored := f.users.byID[existing.UserID]
		require.NotNil(t, stored.GoogleID)
		assert.Equal(t, "g-2", *stored.GoogleID)
		assert.True(t, stored.EmailVerified)
		assert.Len(t, f.users.byID, 1)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newAuthFixture()
		f.google.err = apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid Google ID token")

		_, err := f.svc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{IDToken: "bad"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Empty(t, f.users.byID)
	})
}

func TestCompleteProfileAndLogout(t *testing.T) {
	f := newAuthFixture()
	f.google.identity = &GoogleIdentity{Subject: "g-1", Email: "new@example.com", Name: "New Bride"}
	login, err := f.svc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{IDToken: "tok"})
	require.NoError(t, err)
	auth := AuthContext{UserID: login.User.UserID, Role: model.RoleCustomer}

	user, err := f.svc.CompleteProfile(context.Background(), auth, &dto.CompleteProfileRequest{Phone: "+94770000001"})
	require.NoError(t, err)
	assert.True(t, user.ProfileCompleted)
	assert.Equal(t, "+94770000001", user.Phone)

	require.NoError(t, f.svc.Logout(context.Background(), auth))
	assert.True(t, f.refresh.byValue(login.RefreshToken).Revoked)

	_, err = f.svc.CompleteProfile(context.Background(), AuthContext{UserID: 999}, &dto.CompleteProfileRequest{Phone: "+94770000001"})
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

// consumedResets reports that a concurrent request used the token first
type consumedResets struct {
	*fakeResets
}

func (consumedResets) MarkUsed(context.Context, uint) (int64, error) { return 0, nil }

// consumedVerifications reports that a concurrent request verified first
type consumedVerifications struct {
	*fakeVerifications
}

func (consumedVerifications) MarkVerified(context.Context, uint) (int64, error) { return 0, nil }

func TestResetPassword_TokenConsumedConcurrently(t *testing.T) {
	f := newAuthFixture()
	user := f.verifiedUser(t, "ok@example.com", "Secret@123")
	oldHash := *user.PasswordHash
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ok@example.com"))
	f.svc.resets = consumedResets{f.resets}

	err := f.svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       f.mail.resets["ok@example.com"],
		NewPassword: "NewSecret@1",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Equal(t, "Reset token already used", apperrors.GetErrorMessage(err))
	assert.Equal(t, oldHash, *f.users.byID[user.UserID].PasswordHash)
}

func TestVerifyEmail_TokenConsumedConcurrently(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))
	require.NoError(t, err)
	f.svc.verifications = consumedVerifications{f.verifications}

	err = f.svc.VerifyEmail(context.Background(), f.mail.verifications["bride@example.com"])

	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.False(t, f.users.byID[resp.User.UserID].EmailVerified)
}

func TestRegister_UniqueViolationMapsToEmailExists(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey)

	_, err := f.svc.Register(context.Background(), registerRequest("bride@example.com"))

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, http.StatusConflict, apperrors.ToHTTPStatus(err))
	assert.Empty(t, f.mail.verifications)
}

// deactivatedAfterRead simulates an admin deactivating the account between
// the login lookup and the last-login write
type deactivatedAfterRead struct {
	*fakeUsers
}

func (u deactivatedAfterRead) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.fakeUsers.GetByEmail(ctx, email)
	if err == nil {
		u.byID[user.UserID].IsActive = false
	}
	return user, err
}

func TestLogin_DoesNotOverwriteConcurrentDeactivation(t *testing.T) {
	f := newAuthFixture()
	user := f.verifiedUser(t, "ok@example.com", "Secret@123")
	f.svc.users = deactivatedAfterRead{f.users}

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ok@example.com", Password: "Secret@123"})
	require.NoError(t, err)

	stored := f.users.byID[user.UserID]
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.LastLoginAt)
}
