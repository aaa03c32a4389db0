package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbuddy/internal/errors"
)

// RequireFeature gates a route group on a flag decided at startup. When the
// feature is off every request is rejected with the given error.
func RequireFeature(enabled bool, disabled *apperrors.AppError) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			abortWithAppError(c, disabled)
			return
		}
		c.Next()
	}
}

// LimitBody caps the request body at maxBytes. Reads past the limit fail and
// the body is closed when the handler returns.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		defer func() { _ = c.Request.Body.Close() }()
		c.Next()
	}
}
