package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resto-analytics/backend/internal/restohost"
)

// @Summary Ingest a RestoHost call webhook
// @Tags ingest
// @Accept json
// @Produce json
// @Param payload body restohost.IngestPayload true "Call tree"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/ingest/restohost [post]
func (h *Handler) IngestRestohost(c *gin.Context) {
	var payload restohost.IngestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}
	if payload.Restaurant.ExternalID == "" || payload.Call.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Missing required fields: restaurant.externalId or call.id",
		})
		return
	}

	if err := h.Store.Ingest(c.Request.Context(), restohost.ToTree(payload)); err != nil {
		h.Logger.Error().Err(err).
			Str("restaurant", payload.Restaurant.ExternalID).
			Str("call", payload.Call.ID).
			Msg("ingest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
