package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interview-scheduler-backend/internal/model"
)

type availabilityRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Timezone  string `json:"timezone" binding:"required"`
}

// GetAvailability handles GET /api/panelists/:panelist_id/availability.
// An optional day_of_week query narrows to one weekday.
func (h *Handler) GetAvailability(c *gin.Context) {
	day := -1
	if raw := c.Query("day_of_week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 6 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'day_of_week'. Use 0-6."})
			return
		}
		day = parsed
	}

	windows, err := h.store.ListAvailability(c.Request.Context(), c.Param("panelist_id"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": windows})
}

// PostAvailability handles POST /api/panelists/:panelist_id/availability.
func (h *Handler) PostAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window := model.PanelistAvailability{
		PanelistID: c.Param("panelist_id"),
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Timezone:   req.Timezone,
		Active:     true,
	}
	if err := h.store.CreateAvailability(c.Request.Context(), &window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.engine.Invalidate(window.PanelistID)
	c.JSON(http.StatusCreated, window)
}

// DeleteAvailability handles DELETE /api/availability/:id by deactivating the
// window. Rows are kept so past bookings remain interpretable.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid availability ID"})
		return
	}
	window, err := h.store.GetAvailability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.DeactivateAvailability(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.engine.Invalidate(window.PanelistID)
	c.Status(http.StatusNoContent)
}
