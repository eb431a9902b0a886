package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// RequestIDMiddleware reuses the caller's X-Request-ID or mints one, and
// echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(constants.HeaderXRequestID, requestID)
		}

		c.Header(constants.HeaderXRequestID, requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// ContextMiddleware seeds request metadata and bounds the request with timeout
func ContextMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "http", c.FullPath())

		if timeout > 0 {
			var cancel func()
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if d := ctxutil.GetDuration(ctx); d > 5*time.Second {
			logger.WarnWithContext(ctx, "Slow request detected").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Int("status_code", c.Writer.Status()).
				Duration(d).
				Log()
		}
	}
}
