package handler

import (
	"errors"
	"net/http"

	"stayloyal/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a loyalty domain error to an HTTP response.
func respondServiceError(c *gin.Context, err error) {
	var insufficient *service.InsufficientBalanceError
	switch {
	case errors.Is(err, service.ErrGuestNotFound),
		errors.Is(err, service.ErrTierNotFound),
		errors.Is(err, service.ErrNotEnrolled):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrNegativeBalance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
