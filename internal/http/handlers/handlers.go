package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/restohost"
)

type Handler struct {
	Store     *db.Store
	Remote    *restohost.Client
	Validator *validator.Validate
	Logger    zerolog.Logger
}

// writeError emits the flat {error} payload the dashboard expects.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
