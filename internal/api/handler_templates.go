package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"interview-scheduler-backend/internal/model"
)

type templateRequest struct {
	Name            string   `json:"name" binding:"required"`
	InterviewType   string   `json:"interviewType" binding:"required"`
	DurationMinutes int      `json:"durationMinutes" binding:"required,gt=0"`
	Questions       []string `json:"questions"`
	ChecklistItems  []string `json:"checklistItems"`
	RequiredSkills  []string `json:"requiredSkills"`
}

// GetTemplates handles GET /api/templates. Pass all=true to include retired
// templates.
func (h *Handler) GetTemplates(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	templates, err := h.store.ListTemplates(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate handles GET /api/templates/:id.
func (h *Handler) GetTemplate(c *gin.Context) {
	tmpl, err := h.store.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// PostTemplate handles POST /api/templates.
func (h *Handler) PostTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl := model.InterviewTemplate{
		ID:              uuid.NewString(),
		Name:            req.Name,
		InterviewType:   req.InterviewType,
		DurationMinutes: req.DurationMinutes,
		Questions:       req.Questions,
		ChecklistItems:  req.ChecklistItems,
		RequiredSkills:  req.RequiredSkills,
		Active:          true,
	}
	if err := h.store.CreateTemplate(c.Request.Context(), &tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

// DeleteTemplate handles DELETE /api/templates/:id by retiring the template.
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.store.DeactivateTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
