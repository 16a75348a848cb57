package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
	CreatedBy   string `json:"createdBy"`
}

type selectTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

type selectPanelistRequest struct {
	PanelistID string `json:"panelistId" binding:"required"`
}

type selectSlotRequest struct {
	Start    time.Time `json:"start" binding:"required"`
	Timezone string    `json:"timezone"`
}

type detailsRequest struct {
	MeetingLink string `json:"meetingLink"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// PostBooking handles POST /api/bookings, opening a new workflow session at
// the TemplateSelect step.
func (h *Handler) PostBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := h.bookings.Create(req.CandidateID, req.CreatedBy)
	c.JSON(http.StatusCreated, b.State())
}

// GetBooking handles GET /api/bookings/:id, returning the serializable
// workflow state.
func (h *Handler) GetBooking(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// PostBookingTemplate handles POST /api/bookings/:id/template.
func (h *Handler) PostBookingTemplate(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := b.SelectTemplate(c.Request.Context(), req.TemplateID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// GetBookingPanelists handles GET /api/bookings/:id/panelists, the directory
// view for the PanelistSelect step.
func (h *Handler) GetBookingPanelists(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	panelists, err := b.EligiblePanelists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"panelists": panelists})
}

// PostBookingPanelist handles POST /api/bookings/:id/panelist.
func (h *Handler) PostBookingPanelist(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	var req selectPanelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := b.SelectPanelist(c.Request.Context(), req.PanelistID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// GetBookingSlots handles GET /api/bookings/:id/slots?date=YYYY-MM-DD.
func (h *Handler) GetBookingSlots(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date'. Use YYYY-MM-DD."})
		return
	}
	slots, err := b.SuggestSlots(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// PostBookingSlot handles POST /api/bookings/:id/slot. A conflict detected
// by the re-check answers 409 and leaves the session at SlotSelect.
func (h *Handler) PostBookingSlot(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	var req selectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := b.SelectSlot(c.Request.Context(), req.Start, req.Timezone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// PostBookingDetails handles POST /api/bookings/:id/details. All fields are
// optional.
func (h *Handler) PostBookingDetails(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := b.SetDetails(req.MeetingLink, req.Location, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// PostBookingConfirm handles POST /api/bookings/:id/confirm. On success the
// persisted schedule record is returned and the session is released; on a
// conflict or store failure the session stays at Review.
func (h *Handler) PostBookingConfirm(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	rec, err := b.Confirm(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.bookings.Remove(c.Param("id"))
	c.JSON(http.StatusCreated, rec)
}

// PostBookingBack handles POST /api/bookings/:id/back.
func (h *Handler) PostBookingBack(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	if err := b.Back(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b.State())
}

// PostBookingCancel handles POST /api/bookings/:id/cancel. Nothing was
// persisted, so cancelling only releases the session.
func (h *Handler) PostBookingCancel(c *gin.Context) {
	b, ok := h.bookings.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found"})
		return
	}
	if err := b.Cancel(); err != nil {
		respondError(c, err)
		return
	}
	h.bookings.Remove(c.Param("id"))
	c.JSON(http.StatusOK, b.State())
}
