package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/api/middleware"
	apierrors "github.com/feral-file/media-monitor/internal/api/shared/errors"
	"github.com/feral-file/media-monitor/internal/logger"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, apiErr *apierrors.APIError) {
	apiErr = apiErr.WithRequestID(middleware.GetRequestID(c))
	c.JSON(apiErr.Status(), apierrors.ErrorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, apierrors.NewValidationError(details))
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	fields = append(fields, zap.String("request_id", middleware.GetRequestID(c)))
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respondWithError(c, apierrors.NewInternalError(message))
}
