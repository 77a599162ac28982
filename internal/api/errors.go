package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
)

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	var tooLarge customerrors.ErrImageTooLarge

	switch {
	case errors.Is(err, customerrors.ErrArtistNotFound),
		errors.Is(err, customerrors.ErrVinylNotFound),
		errors.Is(err, customerrors.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, customerrors.ErrInvalidArtist),
		errors.Is(err, customerrors.ErrInvalidName),
		errors.Is(err, customerrors.ErrInvalidCount),
		errors.Is(err, customerrors.ErrInvalidFileName):
		return http.StatusBadRequest
	case errors.Is(err, customerrors.ErrArtistHasVinyls):
		return http.StatusConflict
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, customerrors.ErrConnectionFailed):
		return http.StatusServiceUnavailable
	case errors.Is(err, customerrors.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Client errors carry the domain message;
// server errors are logged and answered with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	message := "Internal server error"
	switch status {
	case http.StatusServiceUnavailable:
		message = "Storage unavailable"
	case http.StatusGatewayTimeout:
		message = "Storage did not answer in time"
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": message + ": " + err.Error()})
}
