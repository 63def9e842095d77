package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/crypto_pulse/internal/apperrors"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnsupportedCurrency):
		logger.Warn("Rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrLoopStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Service unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service is shutting down"})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		resp := gin.H{"error": failure}
		if requestID, ok := middleware.GetRequestID(c); ok {
			resp["requestId"] = requestID
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}
