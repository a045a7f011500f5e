package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/models"
	"github.com/resto-analytics/backend/internal/service"
)

// @Summary Dashboard metrics rollup
// @Tags metrics
// @Produce json
// @Param restaurantId query string false "Restaurant filter, 'all' for none"
// @Param orderType query string false "Order type filter, 'all' for none"
// @Param paymentMethod query string false "Payment method filter, 'all' for none"
// @Param from query string false "Range start"
// @Param to query string false "Range end"
// @Success 200 {object} service.Rollup
// @Router /api/metrics [get]
func (h *Handler) Metrics(c *gin.Context) {
	restaurantID := filterParam(c, "restaurantId")
	orderType := filterParam(c, "orderType")
	paymentMethod := filterParam(c, "paymentMethod")
	from, to := parseDateRange(c)

	var (
		orders []models.Order
		calls  []models.Call
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		orders, err = h.Store.LoadPlacedOrders(ctx, db.OrderFilter{
			RestaurantID:  restaurantID,
			OrderType:     orderType,
			PaymentMethod: paymentMethod,
			From:          from,
			To:            to,
		})
		return err
	})
	g.Go(func() (err error) {
		calls, err = h.Store.LoadCalls(ctx, db.CallFilter{RestaurantID: restaurantID, From: from, To: to})
		return err
	})
	if err := g.Wait(); err != nil {
		h.Logger.Error().Err(err).Msg("failed to load metrics")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, service.ComputeRollup(orders, calls))
}
