package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
)

// respondError maps the scheduling error taxonomy onto HTTP statuses.
// Conflicts are recoverable ("pick another time"), so they carry a code the
// UI can branch on instead of treating them as failures.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *scheduling.ValidationError
		stateErr      *scheduling.StateError
		conflictErr   *scheduling.ConflictError
		persistErr    *scheduling.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error(), "code": "invalid_state"})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error(), "code": "slot_conflict"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already booked", "code": "slot_conflict"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
