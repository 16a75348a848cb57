package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPanelists handles GET /api/panelists?interview_type=technical, listing
// the directory's eligible panelists for the PanelistSelect step.
func (h *Handler) GetPanelists(c *gin.Context) {
	panelists, err := h.store.ListPanelists(c.Request.Context(), c.Query("interview_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"panelists": panelists})
}
