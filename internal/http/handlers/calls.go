package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/models"
)

// @Summary List calls
// @Tags calls
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param restaurantId query string false "Restaurant filter, 'all' for none"
// @Param outcome query string false "Outcome filter, 'all' for none"
// @Param from query string false "Range start"
// @Param to query string false "Range end"
// @Success 200 {object} map[string]any
// @Router /api/calls [get]
func (h *Handler) CallsList(c *gin.Context) {
	p := parsePage(c)
	f := db.CallFilter{
		RestaurantID: filterParam(c, "restaurantId"),
		Outcome:      filterParam(c, "outcome"),
	}
	f.From, f.To = parseDateRange(c)

	calls, total, err := h.Store.ListCalls(c.Request.Context(), f, p)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list calls")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"calls":      calls,
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": db.TotalPages(total, p.Limit),
	})
}

type CreateCallRequest struct {
	RestaurantID   string    `json:"restaurantId" validate:"required"`
	StartedAt      time.Time `json:"startedAt" validate:"required"`
	EndedAt        time.Time `json:"endedAt" validate:"required"`
	CallerPhone    string    `json:"callerPhone" validate:"required"`
	CallerName     *string   `json:"callerName"`
	TranscriptText string    `json:"transcriptText"`
	SummaryText    *string   `json:"summaryText"`
	Outcome        string    `json:"outcome" validate:"required"`
	RecordingURL   *string   `json:"recordingUrl"`
	IsRecorded     bool      `json:"isRecorded"`
}

func (h *Handler) CallCreate(c *gin.Context) {
	var req CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validOutcome(req.Outcome) {
		writeError(c, http.StatusBadRequest, "invalid outcome")
		return
	}
	call, err := h.Store.CreateCall(c.Request.Context(), db.CallInput{
		RestaurantID:   req.RestaurantID,
		StartedAt:      req.StartedAt,
		EndedAt:        req.EndedAt,
		CallerPhone:    req.CallerPhone,
		CallerName:     req.CallerName,
		TranscriptText: req.TranscriptText,
		SummaryText:    req.SummaryText,
		Outcome:        models.CallOutcome(req.Outcome),
		RecordingURL:   req.RecordingURL,
		IsRecorded:     req.IsRecorded,
	})
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create call")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, call)
}

func (h *Handler) CallGet(c *gin.Context) {
	call, err := h.Store.GetCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "call not found")
			return
		}
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, call)
}

type UpdateCallRequest struct {
	CallerPhone    string  `json:"callerPhone" validate:"required"`
	CallerName     *string `json:"callerName"`
	Outcome        string  `json:"outcome" validate:"required"`
	TranscriptText string  `json:"transcriptText"`
	SummaryText    *string `json:"summaryText"`
}

func (h *Handler) CallUpdate(c *gin.Context) {
	var req UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validOutcome(req.Outcome) {
		writeError(c, http.StatusBadRequest, "invalid outcome")
		return
	}
	call, err := h.Store.UpdateCall(c.Request.Context(), c.Param("id"), db.CallUpdate{
		CallerPhone:    req.CallerPhone,
		CallerName:     req.CallerName,
		Outcome:        models.CallOutcome(req.Outcome),
		TranscriptText: req.TranscriptText,
		SummaryText:    req.SummaryText,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "call not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update call")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, call)
}

func (h *Handler) CallDelete(c *gin.Context) {
	if err := h.Store.DeleteCall(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "call not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete call")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// validOutcome guards the CRUD path, where a typo should be rejected
// instead of silently mapped to OTHER like on ingest.
func validOutcome(s string) bool {
	switch models.CallOutcome(s) {
	case models.OutcomeOrderPlaced, models.OutcomeInquiry, models.OutcomeMissed,
		models.OutcomeCanceled, models.OutcomeOther:
		return true
	}
	return false
}
