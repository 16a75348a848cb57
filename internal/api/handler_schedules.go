package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/store"
)

type scheduleRequest struct {
	CandidateID     string            `json:"candidateId" binding:"required"`
	PanelistID      string            `json:"panelistId"`
	ScheduledStart  time.Time         `json:"scheduledStart" binding:"required"`
	DurationMinutes int               `json:"durationMinutes" binding:"required,gt=0"`
	InterviewType   string            `json:"interviewType" binding:"required"`
	Timezone        string            `json:"timezone"`
	MeetingLink     string            `json:"meetingLink"`
	Location        string            `json:"location"`
	Notes           string            `json:"notes"`
	Metadata        map[string]string `json:"metadata"`
	CreatedBy       string            `json:"createdBy"`
}

type scheduleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetSchedules handles GET /api/schedules with panelist_id, candidate_id,
// status, from and to filters. The [from, to) range is half-open.
func (h *Handler) GetSchedules(c *gin.Context) {
	filter := store.ScheduleFilter{
		PanelistID:  c.Query("panelist_id"),
		CandidateID: c.Query("candidate_id"),
		Status:      c.Query("status"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp. Use RFC3339."})
			return
		}
		filter.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp. Use RFC3339."})
			return
		}
		filter.To = t
	}
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	schedules, err := h.store.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// GetSchedule handles GET /api/schedules/:id.
func (h *Handler) GetSchedule(c *gin.Context) {
	rec, err := h.store.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// PostSchedule handles POST /api/schedules — a direct create that bypasses
// the booking workflow but still goes through the store's conflict-checked
// write, so a colliding interval answers 409.
func (h *Handler) PostSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := model.InterviewSchedule{
		ID:              uuid.NewString(),
		CandidateID:     req.CandidateID,
		PanelistID:      req.PanelistID,
		ScheduledStart:  req.ScheduledStart,
		DurationMinutes: req.DurationMinutes,
		InterviewType:   req.InterviewType,
		Status:          model.StatusScheduled,
		Timezone:        req.Timezone,
		MeetingLink:     req.MeetingLink,
		Location:        req.Location,
		Notes:           req.Notes,
		Metadata:        req.Metadata,
		CreatedBy:       req.CreatedBy,
	}
	if err := h.store.CreateSchedule(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}
	h.engine.Invalidate(rec.PanelistID)
	c.JSON(http.StatusCreated, rec)
}

// PatchScheduleStatus handles PATCH /api/schedules/:id/status for the
// post-interview transitions (completed, cancelled, rescheduled).
func (h *Handler) PatchScheduleStatus(c *gin.Context) {
	var req scheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	// The panelist is read first so the suggestion cache can be dropped:
	// cancelling or completing a booking frees its interval.
	rec, err := h.store.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.UpdateScheduleStatus(c.Request.Context(), rec.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	h.engine.Invalidate(rec.PanelistID)
	c.Status(http.StatusNoContent)
}

// DeleteSchedule handles DELETE /api/schedules/:id.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	rec, err := h.store.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.DeleteSchedule(c.Request.Context(), rec.ID); err != nil {
		respondError(c, err)
		return
	}
	h.engine.Invalidate(rec.PanelistID)
	c.Status(http.StatusNoContent)
}
