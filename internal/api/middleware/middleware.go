package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/media-monitor/internal/api/shared/errors"
	"github.com/feral-file/media-monitor/internal/logger"
)

const (
	REQUEST_ID_HEADER            = "X-Request-ID"
	REQUEST_ID_KEY    contextKey = "request_id"
	MAX_REQUEST_ID_LENGTH        = 128
)

// RequestID returns a gin middleware that tags every request with an id.
// An incoming X-Request-ID header is kept, otherwise a random UUID is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if id == "" || len(id) > MAX_REQUEST_ID_LENGTH {
			id = uuid.NewString()
		}

		c.Set(string(REQUEST_ID_KEY), id)
		c.Header(REQUEST_ID_HEADER, id)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, empty when absent
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(REQUEST_ID_KEY))
}

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		logger.InfoCtx(c.Request.Context(), "API request",
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("request_id", GetRequestID(c)),
					zap.String("path", c.Request.URL.Path),
				)
				apiErr := apierrors.NewInternalError("Internal server error").WithRequestID(GetRequestID(c))
				c.AbortWithStatusJSON(apiErr.Status(), apierrors.ErrorResponse{Error: apiErr})
			}
		}()
		c.Next()
	}
}
