package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthMailer is the subset of EmailService used by authentication flows
type AuthMailer interface {
	SendVerification(ctx context.Context, to, token string)
	SendPasswordReset(ctx context.Context, to, token string)
}

type AuthService struct {
	tx            Transactor
	users         UserStore
	verifications VerificationTokenStore
	resets        ResetTokenStore
	refresh       *RefreshTokenService
	jwt           *JWTService
	google        IdentityVerifier
	mail          AuthMailer

	verificationTTL time.Duration
	resetTTL        time.Duration
	now             func() time.Time
}

type AuthDeps struct {
	Tx              Transactor
	Users           UserStore
	Verifications   VerificationTokenStore
	Resets          ResetTokenStore
	RefreshTokens   *RefreshTokenService
	JWT             *JWTService
	Google          IdentityVerifier
	Mail            AuthMailer
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func NewAuthService(deps AuthDeps) *AuthService {
	return &AuthService{
		tx:              deps.Tx,
		users:           deps.Users,
		verifications:   deps.Verifications,
		resets:          deps.Resets,
		refresh:         deps.RefreshTokens,
		jwt:             deps.JWT,
		google:          deps.Google,
		mail:            deps.Mail,
		verificationTTL: deps.VerificationTTL,
		resetTTL:        deps.ResetTTL,
		now:             time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey reports a unique constraint violation translated by gorm
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// toDomainError maps unexpected errors to INTERNAL_ERROR and passes domain errors through
func toDomainError(err error) error {
	if apperrors.IsDomainError(err) {
		return err
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// issueTokens creates a fresh refresh token and a matching access token
func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (string, string, error) {
	refresh, err := s.refresh.Create(ctx, user.UserID)
	if err != nil {
		return "", "", err
	}
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return "", "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return access, refresh.Token, nil
}

func (s *AuthService) newVerificationToken(ctx context.Context, userID uint) (string, error) {
	value, err := GenerateSecureToken(constants.ActionTokenBytes)
	if err != nil {
		return "", err
	}
	token := &model.EmailVerificationToken{
		UserID:    userID,
		Token:     value,
		ExpiresAt: s.now().Add(s.verificationTTL),
	}
	if err := s.verifications.Create(ctx, token); err != nil {
		return "", err
	}
	return value, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")
	email := normalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "Registering customer").
		String("email", email).
		Log()

	var (
		user            *model.User
		verification    string
		access, refresh string
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrEmailAlreadyExists
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return err
		}

		provider := model.ProviderEmail
		user = &model.User{
			FullName:         strings.TrimSpace(req.FullName),
			Email:            email,
			Phone:            strings.TrimSpace(req.Phone),
			Address:          strings.TrimSpace(req.Address),
			PasswordHash:     &hash,
			Role:             model.RoleCustomer,
			IsActive:         true,
			OAuthProvider:    &provider,
			ProfileCompleted: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if isDuplicateKey(err) {
				return apperrors.ErrEmailAlreadyExists
			}
			return err
		}

		if verification, err = s.newVerificationToken(ctx, user.UserID); err != nil {
			return err
		}
		access, refresh, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.WarnWithContext(ctx, "Registration rejected, email taken").
				String("email", email).
				Log()
			return nil, err
		}
		logger.ErrorWithContext(ctx, "Registration failed").
			String("email", email).
			Err(err).
			Log()
		return nil, toDomainError(err)
	}

	s.mail.SendVerification(ctx, user.Email, verification)
	logger.LogAuth(user.Email, "register", true)

	return &dto.AuthResponse{
		AccessToken:               access,
		RefreshToken:              refresh,
		User:                      dto.NewUserResponse(user),
		RequiresEmailVerification: true,
		RequiresProfileCompletion: false,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")
	email := normalizeEmail(req.Email)

	var (
		user            *model.User
		access, refresh string
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			if isNotFound(err) {
				return apperrors.WithMessage(apperrors.ErrUnauthorized, msgInvalidCredentials)
			}
			return err
		}

		if !user.HasPassword() {
			return apperrors.WithMessage(apperrors.ErrUnauthorized, "Please use Google Sign-In for this account")
		}
		if !CheckPassword(*user.PasswordHash, req.Password) {
			return apperrors.WithMessage(apperrors.ErrUnauthorized, msgInvalidCredentials)
		}
		if !user.IsActive {
			return apperrors.WithMessage(apperrors.ErrUnauthorized, "Account is deactivated")
		}
		if !user.EmailVerified {
			return apperrors.ErrEmailNotVerified
		}

		now := s.now()
		if err := s.users.UpdateLastLogin(ctx, user.UserID, now); err != nil {
			return err
		}
		user.LastLoginAt = &now

		access, refresh, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		logger.LogAuth(email, "login", false)
		if apperrors.IsDomainError(err) {
			logger.WarnWithContext(ctx, "Login rejected").
				String("email", email).
				String("reason", apperrors.GetErrorMessage(err)).
				Log()
		}
		return nil, toDomainError(err)
	}

	logger.LogAuth(email, "login", true)
	return &dto.AuthResponse{
		AccessToken:               access,
		RefreshToken:              refresh,
		User:                      dto.NewUserResponse(user),
		RequiresEmailVerification: false,
		RequiresProfileCompletion: !user.ProfileCompleted,
	}, nil
}

// GoogleLogin signs in with a Google ID token. The account is found by
// Google subject, then by email (linking it), and created otherwise.
func (s *AuthService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GoogleLogin")

	identity, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(identity.Email)

	var (
		user            *model.User
		access, refresh string
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.resolveGoogleUser(ctx, identity, email)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return apperrors.WithMessage(apperrors.ErrUnauthorized, "Account is deactivated")
		}

		now := s.now()
		if err := s.users.UpdateLastLogin(ctx, user.UserID, now); err != nil {
			return err
		}
		user.LastLoginAt = &now

		access, refresh, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		logger.LogAuth(email, "google_login", false)
		return nil, toDomainError(err)
	}

	logger.LogAuth(email, "google_login", true)
	return &dto.AuthResponse{
		AccessToken:               access,
		RefreshToken:              refresh,
		User:                      dto.NewUserResponse(user),
		RequiresEmailVerification: false,
		RequiresProfileCompletion: !user.ProfileCompleted,
	}, nil
}

func (s *AuthService) resolveGoogleUser(ctx context.Context, identity *GoogleIdentity, email string) (*model.User, error) {
	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	provider := model.ProviderGoogle
	googleID := identity.Subject

	user, err = s.users.GetByEmail(ctx, email)
	if err == nil {
		logger.InfoWithContext(ctx, "Linking Google identity to existing account").
			Uint("user_id", user.UserID).
			Log()
		if err := s.users.LinkGoogleAccount(ctx, user.UserID, googleID); err != nil {
			return nil, err
		}
		user.GoogleID = &googleID
		user.OAuthProvider = &provider
		user.EmailVerified = true
		return user, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = email
	}
	user = &model.User{
		FullName:      name,
		Email:         email,
		Role:          model.RoleCustomer,
		IsActive:      true,
		GoogleID:      &googleID,
		OAuthProvider: &provider,
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) CompleteProfile(ctx context.Context, auth AuthContext, req *dto.CompleteProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CompleteProfile")

	user, err := s.users.GetByID(ctx, auth.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User")
		}
		return nil, toDomainError(err)
	}

	phone := strings.TrimSpace(req.Phone)
	if err := s.users.CompleteProfile(ctx, user.UserID, phone); err != nil {
		return nil, toDomainError(err)
	}
	user.Phone = phone
	user.ProfileCompleted = true

	logger.InfoWithContext(ctx, "Profile completed").
		Uint("user_id", user.UserID).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "VerifyEmail")

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		vt, err := s.verifications.GetByToken(ctx, token)
		if err != nil {
			if isNotFound(err) {
				return apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid verification token")
			}
			return err
		}
		if vt.Verified {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Email already verified")
		}
		if vt.IsExpired(s.now()) {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Verification token has expired")
		}

		consumed, err := s.verifications.MarkVerified(ctx, vt.TokenID)
		if err != nil {
			return err
		}
		if consumed == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Email already verified")
		}
		return s.users.MarkEmailVerified(ctx, vt.UserID)
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Email verification failed").Err(err).Log()
		return toDomainError(err)
	}
	return nil
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "ResendVerification")
	email = normalizeEmail(email)

	var token string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("User")
			}
			return err
		}
		if user.EmailVerified {
			return apperrors.WithMessage(apperrors.ErrIllegalState, "Email already verified")
		}
		token, err = s.newVerificationToken(ctx, user.UserID)
		return err
	})
	if err != nil {
		return toDomainError(err)
	}

	s.mail.SendVerification(ctx, email, token)
	return nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "ForgotPassword")
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("User")
		}
		return toDomainError(err)
	}

	value, err := GenerateSecureToken(constants.ActionTokenBytes)
	if err != nil {
		return toDomainError(err)
	}
	token := &model.PasswordResetToken{
		UserID:    user.UserID,
		Token:     value,
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return toDomainError(err)
	}

	s.mail.SendPasswordReset(ctx, user.Email, value)
	logger.InfoWithContext(ctx, "Password reset requested").
		Uint("user_id", user.UserID).
		Log()
	return nil
}

// ResetPassword consumes a reset token and signs the user out everywhere
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ctx = ctxutil.WithFunction(ctx, "service", "ResetPassword")

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rt, err := s.resets.GetByToken(ctx, req.Token)
		if err != nil {
			if isNotFound(err) {
				return apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid reset token")
			}
			return err
		}
		if rt.Used {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Reset token already used")
		}
		if rt.IsExpired(s.now()) {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Reset token has expired")
		}

		consumed, err := s.resets.MarkUsed(ctx, rt.TokenID)
		if err != nil {
			return err
		}
		if consumed == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidToken, "Reset token already used")
		}

		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		if err := s.users.UpdatePassword(ctx, rt.UserID, hash); err != nil {
			return err
		}
		return s.refresh.RevokeAll(ctx, rt.UserID)
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Password reset failed").Err(err).Log()
		return toDomainError(err)
	}
	return nil
}

// Refresh rotates the presented refresh token and issues a new access token
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenRefreshResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Refresh")

	var resp dto.TokenRefreshResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		old, err := s.refresh.Verify(ctx, req.RefreshToken)
		if err != nil {
			return err
		}

		user, err := s.users.GetByID(ctx, old.UserID)
		if err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("User")
			}
			return err
		}
		if !user.IsActive {
			return apperrors.WithMessage(apperrors.ErrUnauthorized, "Account is deactivated")
		}

		next, err := s.refresh.Rotate(ctx, old)
		if err != nil {
			return err
		}
		access, err := s.jwt.GenerateAccessToken(user)
		if err != nil {
			return err
		}
		resp = dto.TokenRefreshResponse{AccessToken: access, RefreshToken: next.Token}
		return nil
	})
	if err != nil {
		return nil, toDomainError(err)
	}
	return &resp, nil
}

func (s *AuthService) Logout(ctx context.Context, auth AuthContext) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	if err := s.refresh.RevokeAll(ctx, auth.UserID); err != nil {
		return err
	}
	logger.InfoWithContext(ctx, "User logged out").
		Uint("user_id", auth.UserID).
		Log()
	return nil
}
