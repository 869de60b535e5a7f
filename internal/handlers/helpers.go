package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/transport-backend/internal/store"
)

// respondError translates gateway errors into user-displayable JSON. Every
// tagged error maps to a stable status; anything unexpected becomes a 500
// with a generic message so nothing terminates the session silently.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(401, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrPermissionDenied):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateLogin),
		errors.Is(err, store.ErrReferencedByTrip),
		errors.Is(err, store.ErrDanglingReference):
		c.JSON(409, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(422, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": "Internal error"})
	}
}
