package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// UserFinder reloads the token's subject on every request
type UserFinder interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type JWTMiddleware struct {
	jwtService *service.JWTService
	users      UserFinder
}

func NewJWTMiddleware(jwtService *service.JWTService, users UserFinder) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// RequireAuth validates the bearer token, reloads the user and stores the
// caller's AuthContext on the gin context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "middleware", "RequireAuth")

		tokenString, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, constants.MsgUnauthorized))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid or expired access token").
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, constants.MsgUnauthorized))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid subject in access token").Err(err).Log()
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, constants.MsgUnauthorized))
			return
		}

		user, err := m.users.GetByID(ctx, userID)
		if err != nil {
			logger.WarnWithContext(ctx, "User of access token not found").
				Uint("user_id", userID).
				Err(err).
				Log()
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, constants.MsgUnauthorized))
			return
		}

		if !user.IsActive {
			logger.WarnWithContext(ctx, "Deactivated user presented access token").
				Uint("user_id", userID).
				Log()
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Account is deactivated"))
			return
		}

		auth := service.AuthContext{
			UserID: user.UserID,
			Role:   user.Role,
			Email:  user.Email,
		}
		c.Set(constants.GinKeyAuth, auth)
		c.Request = c.Request.WithContext(ctxutil.WithUser(c.Request.Context(), auth.UserID, string(auth.Role)))

		logger.DebugWithContext(ctx, "User authenticated").
			Uint("user_id", auth.UserID).
			String("role", string(auth.Role)).
			Log()

		c.Next()
	}
}

// RequireRole must run after RequireAuth
func (m *JWTMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuthContext(c)
		if !ok {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, constants.MsgUnauthorized))
			return
		}

		for _, role := range roles {
			if auth.Role == role {
				c.Next()
				return
			}
		}

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "middleware", "RequireRole")
		logger.WarnWithContext(ctx, "Role not permitted for route").
			Uint("user_id", auth.UserID).
			String("role", string(auth.Role)).
			String("path", c.Request.URL.Path).
			Log()
		abortWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, constants.MsgForbidden))
	}
}

// GetAuthContext returns the caller stored by RequireAuth
func GetAuthContext(c *gin.Context) (service.AuthContext, bool) {
	v, exists := c.Get(constants.GinKeyAuth)
	if !exists {
		return service.AuthContext{}, false
	}
	auth, ok := v.(service.AuthContext)
	return auth, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != constants.BearerPrefix || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortWithError(c *gin.Context, err *apperrors.DomainError) {
	c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponseWithCode(err.Code, err.Message, nil))
}
