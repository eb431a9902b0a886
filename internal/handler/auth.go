package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type AuthHandler struct {
	authService AuthAPI
}

func NewAuthHandler(authService AuthAPI) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a customer account and sends the verification email
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	logger.InfoWithContext(ctx, "Registration attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Register(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Registration", err)
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", response.User.UserID).
		Log()

	c.JSON(http.StatusOK, response)
}

// Login handles email and password authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	response, err := h.authService.Login(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Login", err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in").
		Uint("user_id", response.User.UserID).
		Log()

	c.JSON(http.StatusOK, response)
}

// GoogleLogin signs in with a Google ID token, creating or linking the account
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GoogleLogin")

	var req dto.GoogleLoginRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	response, err := h.authService.GoogleLogin(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Google login", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CompleteProfile")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.CompleteProfileRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	if _, err := h.authService.CompleteProfile(ctx, auth, &req); err != nil {
		respondError(c, ctx, "Complete profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgProfileCompleted})
}

// VerifyEmail consumes the token from the emailed link
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyEmail")

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponseWithCode(
			apperrors.CodeInvalidInput, "Token is required", nil))
		return
	}

	if err := h.authService.VerifyEmail(ctx, token); err != nil {
		respondError(c, ctx, "Email verification", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgEmailVerified})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResendVerification")

	var req dto.EmailRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	if err := h.authService.ResendVerification(ctx, req.Email); err != nil {
		respondError(c, ctx, "Resend verification", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgVerificationResent})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ForgotPassword")

	var req dto.EmailRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	if err := h.authService.ForgotPassword(ctx, req.Email); err != nil {
		respondError(c, ctx, "Forgot password", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgPasswordResetSent})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	if err := h.authService.ResetPassword(ctx, &req); err != nil {
		respondError(c, ctx, "Reset password", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgPasswordResetDone})
}

// RefreshToken rotates the refresh token and issues a new access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	var req dto.RefreshTokenRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	response, err := h.authService.Refresh(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Token refresh", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes every refresh token of the caller
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(ctx, auth); err != nil {
		respondError(c, ctx, "Logout", err)
		return
	}

	logger.InfoWithContext(ctx, "User logged out").
		Uint("user_id", auth.UserID).
		Log()

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgLogoutSuccessful})
}
