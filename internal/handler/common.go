package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/middleware"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/validation"
)

// bindJSON decodes and validates the body into req. On failure it writes a
// 400 with field level messages and returns false.
func bindJSON(c *gin.Context, ctx context.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			logger.WarnWithContext(ctx, "Request validation failed").
				Int("error_count", len(fields)).
				Log()
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponseWithCode(
				apperrors.CodeInvalidInput, constants.MsgValidationFailed, fields))
			return false
		}

		logger.WarnWithContext(ctx, "Malformed request body").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponseWithCode(
			apperrors.CodeInvalidInput, constants.MsgBadRequest, err.Error()))
		return false
	}
	return true
}

// respondError maps err to its status and writes the standard error body
func respondError(c *gin.Context, ctx context.Context, action string, err error) {
	status := apperrors.ToHTTPStatus(err)

	entry := logger.WarnWithContext(ctx, action+" failed")
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, action+" failed")
	}
	entry.Int("http_status", status).Err(err).Log()

	c.JSON(status, constants.BuildErrorResponseWithCode(
		apperrors.GetErrorCode(err), apperrors.GetErrorMessage(err), nil))
}

// pathID parses a positive numeric path parameter, answering 400 otherwise
func pathID(c *gin.Context, ctx context.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		logger.WarnWithContext(ctx, "Invalid path id").
			String("param", name).
			String("raw_id", raw).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponseWithCode(
			apperrors.CodeInvalidInput, "Invalid "+name, nil))
		return 0, false
	}
	return uint(id), true
}

// callerOrAbort returns the AuthContext set by the auth middleware
func callerOrAbort(c *gin.Context) (service.AuthContext, bool) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponseWithCode(
			apperrors.CodeUnauthorized, constants.MsgUnauthorized, nil))
		return service.AuthContext{}, false
	}
	return auth, true
}
