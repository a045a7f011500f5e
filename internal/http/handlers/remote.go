package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resto-analytics/backend/internal/restohost"
)

// Handlers below proxy RestoHost-only entities through to the dashboard.
// On upstream failure they return 500 with a zeroed body so the frontend
// widgets render empty instead of crashing on a missing shape.

// @Summary List reservations (proxied from RestoHost)
// @Tags reservations
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/reservations [get]
func (h *Handler) ReservationsList(c *gin.Context) {
	p := parsePage(c)
	params := restohost.ReservationListParams{
		Page:     p.Page,
		PageSize: p.Limit,
		Status:   filterParam(c, "status"),
		Date:     c.Query("date"),
	}
	resp, err := h.Remote.ListReservations(c.Request.Context(), bearerToken(c), params)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list reservations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"reservations": []restohost.DashboardReservation{},
			"total":        0,
			"page":         p.Page,
			"limit":        p.Limit,
			"totalPages":   0,
			"error":        err.Error(),
		})
		return
	}
	reservations := make([]restohost.DashboardReservation, 0, len(resp.Items))
	for _, r := range resp.Items {
		reservations = append(reservations, restohost.AdaptReservation(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"total":        resp.Total,
		"page":         resp.Page,
		"limit":        resp.PageSize,
		"totalPages":   resp.Pages,
	})
}

// @Summary List live calls (proxied from RestoHost)
// @Tags calls
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/remote/calls [get]
func (h *Handler) RemoteCallsList(c *gin.Context) {
	p := parsePage(c)
	params := restohost.CallListParams{
		Page:     p.Page,
		PageSize: p.Limit,
		Status:   filterParam(c, "status"),
		Outcome:  filterParam(c, "outcome"),
	}
	resp, err := h.Remote.ListCalls(c.Request.Context(), bearerToken(c), params)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list remote calls")
		c.JSON(http.StatusInternalServerError, gin.H{
			"calls":      []restohost.DashboardCall{},
			"total":      0,
			"page":       p.Page,
			"limit":      p.Limit,
			"totalPages": 0,
			"error":      err.Error(),
		})
		return
	}
	calls := make([]restohost.DashboardCall, 0, len(resp.Items))
	for _, rc := range resp.Items {
		calls = append(calls, restohost.AdaptCall(rc))
	}
	c.JSON(http.StatusOK, gin.H{
		"calls":      calls,
		"total":      resp.Total,
		"page":       resp.Page,
		"limit":      resp.PageSize,
		"totalPages": resp.Pages,
	})
}

// @Summary List live orders (proxied from RestoHost)
// @Tags orders
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/remote/orders [get]
func (h *Handler) RemoteOrdersList(c *gin.Context) {
	p := parsePage(c)
	params := restohost.OrderListParams{
		Page:     p.Page,
		PageSize: p.Limit,
		Status:   filterParam(c, "status"),
	}
	resp, err := h.Remote.ListOrders(c.Request.Context(), bearerToken(c), params)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list remote orders")
		c.JSON(http.StatusInternalServerError, gin.H{
			"orders":     []restohost.DashboardOrder{},
			"total":      0,
			"page":       p.Page,
			"limit":      p.Limit,
			"totalPages": 0,
			"error":      err.Error(),
		})
		return
	}
	orders := make([]restohost.DashboardOrder, 0, len(resp.Items))
	for _, ro := range resp.Items {
		orders = append(orders, restohost.AdaptOrder(ro))
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"total":      resp.Total,
		"page":       resp.Page,
		"limit":      resp.PageSize,
		"totalPages": resp.Pages,
	})
}

// @Summary List menu items (proxied from RestoHost)
// @Tags menu
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/menu [get]
func (h *Handler) MenuList(c *gin.Context) {
	params := restohost.MenuListParams{Category: filterParam(c, "category")}
	v := c.Query("is_active")
	if v == "" {
		v = c.Query("isActive")
	}
	if v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			params.IsActive = &active
		}
	}
	items, err := h.Remote.ListMenuItems(c.Request.Context(), bearerToken(c), params)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list menu items")
		c.JSON(http.StatusInternalServerError, gin.H{
			"items": []restohost.DashboardMenuItem{},
			"total": 0,
			"error": err.Error(),
		})
		return
	}
	out := make([]restohost.DashboardMenuItem, 0, len(items))
	for _, m := range items {
		out = append(out, restohost.AdaptMenuItem(m))
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

// @Summary Call stats summary (proxied from RestoHost)
// @Tags stats
// @Produce json
// @Success 200 {object} restohost.CallStats
// @Router /api/calls/stats [get]
func (h *Handler) CallStatsProxy(c *gin.Context) {
	stats, err := h.Remote.GetCallStats(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch call stats")
		c.JSON(http.StatusInternalServerError, gin.H{
			"total_calls":          0,
			"calls_last_24h":       0,
			"calls_last_7d":        0,
			"escalation_rate_7d":   0,
			"avg_duration_seconds": 0,
			"outcomes":             gin.H{},
			"error":                err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Order stats summary (proxied from RestoHost)
// @Tags stats
// @Produce json
// @Success 200 {object} restohost.OrderStats
// @Router /api/orders/stats [get]
func (h *Handler) OrderStatsProxy(c *gin.Context) {
	stats, err := h.Remote.GetOrderStats(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch order stats")
		c.JSON(http.StatusInternalServerError, gin.H{
			"orders_today":          0,
			"revenue_today_cents":   0,
			"revenue_today_dollars": 0,
			"revenue_7d_cents":      0,
			"revenue_7d_dollars":    0,
			"status_breakdown":      gin.H{},
			"error":                 err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Reservation stats summary (proxied from RestoHost)
// @Tags stats
// @Produce json
// @Success 200 {object} restohost.ReservationStats
// @Router /api/reservations/stats [get]
func (h *Handler) ReservationStatsProxy(c *gin.Context) {
	stats, err := h.Remote.GetReservationStats(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch reservation stats")
		c.JSON(http.StatusInternalServerError, gin.H{
			"reservations_today": 0,
			"covers_today":       0,
			"upcoming":           0,
			"no_show_rate_7d":    0,
			"status_breakdown":   gin.H{},
			"error":              err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
