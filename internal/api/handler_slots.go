package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetSlots handles GET /api/panelists/:panelist_id/slots?date=YYYY-MM-DD&duration=60.
// An optional candidate_id narrows the answer by that candidate's stored
// preferences.
func (h *Handler) GetSlots(c *gin.Context) {
	panelistID := c.Param("panelist_id")

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date'. Use YYYY-MM-DD."})
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'duration'. Use positive minutes."})
		return
	}

	candidateID := c.Query("candidate_id")
	slots, err := h.engine.SuggestForCandidate(c.Request.Context(), panelistID, candidateID, date, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetConflicts handles GET /api/panelists/:panelist_id/conflicts?start=RFC3339&duration=60,
// exposing the conflict detector directly for pre-flight checks.
func (h *Handler) GetConflicts(c *gin.Context) {
	panelistID := c.Param("panelist_id")

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'start' timestamp. Use RFC3339."})
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'duration'. Use positive minutes."})
		return
	}

	conflicts, err := h.detector.Detect(c.Request.Context(), panelistID, start, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}
