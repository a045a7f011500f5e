package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/models"
)

// @Summary List orders
// @Tags orders
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param restaurantId query string false "Restaurant filter, 'all' for none"
// @Param orderType query string false "Order type filter, 'all' for none"
// @Param paymentMethod query string false "Payment method filter, 'all' for none"
// @Param status query string false "Status filter, 'all' for none"
// @Param from query string false "Range start"
// @Param to query string false "Range end"
// @Success 200 {object} map[string]any
// @Router /api/orders [get]
func (h *Handler) OrdersList(c *gin.Context) {
	p := parsePage(c)
	f := db.OrderFilter{
		RestaurantID:  filterParam(c, "restaurantId"),
		OrderType:     filterParam(c, "orderType"),
		PaymentMethod: filterParam(c, "paymentMethod"),
		Status:        filterParam(c, "status"),
	}
	f.From, f.To = parseDateRange(c)

	orders, total, err := h.Store.ListOrders(c.Request.Context(), f, p)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list orders")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": db.TotalPages(total, p.Limit),
	})
}

type OrderItemRequest struct {
	ItemName  string         `json:"itemName" validate:"required"`
	Quantity  int            `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64       `json:"unitPrice"`
	Modifiers map[string]any `json:"modifiersJson"`
}

type CreateOrderRequest struct {
	RestaurantID  string             `json:"restaurantId" validate:"required"`
	CallID        *string            `json:"callId"`
	OrderType     string             `json:"orderType" validate:"required,oneof=PICKUP DELIVERY"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=CASH CARD ONLINE OTHER UNKNOWN"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Tip           float64            `json:"tip"`
	Total         float64            `json:"total"`
	Status        string             `json:"status" validate:"required,oneof=PLACED CANCELED FAILED NEEDS_FOLLOWUP"`
	CustomerName  *string            `json:"customerName"`
	CustomerPhone *string            `json:"customerPhone"`
	Items         []OrderItemRequest `json:"items" validate:"dive"`
}

func (h *Handler) OrderCreate(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.Store.CreateOrder(c.Request.Context(), db.OrderInput{
		RestaurantID:  req.RestaurantID,
		CallID:        req.CallID,
		OrderType:     models.OrderType(req.OrderType),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Subtotal:      decimal.NewFromFloat(req.Subtotal),
		Tax:           decimal.NewFromFloat(req.Tax),
		Tip:           decimal.NewFromFloat(req.Tip),
		Total:         decimal.NewFromFloat(req.Total),
		Status:        models.OrderStatus(req.Status),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         itemInputs(req.Items),
	})
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create order")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) OrderGet(c *gin.Context) {
	order, err := h.Store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "order not found")
			return
		}
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdateOrderRequest struct {
	OrderType     string             `json:"orderType" validate:"required,oneof=PICKUP DELIVERY"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=CASH CARD ONLINE OTHER UNKNOWN"`
	Total         *float64           `json:"total"`
	Status        string             `json:"status" validate:"required,oneof=PLACED CANCELED FAILED NEEDS_FOLLOWUP"`
	CustomerName  *string            `json:"customerName"`
	CustomerPhone *string            `json:"customerPhone"`
	Items         []OrderItemRequest `json:"items" validate:"dive"`
}

func (h *Handler) OrderUpdate(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	up := db.OrderUpdate{
		OrderType:     models.OrderType(req.OrderType),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Status:        models.OrderStatus(req.Status),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	if req.Total != nil {
		total := decimal.NewFromFloat(*req.Total)
		up.Total = &total
	}
	if req.Items != nil {
		up.Items = itemInputs(req.Items)
	}
	order, err := h.Store.UpdateOrder(c.Request.Context(), c.Param("id"), up)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "order not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update order")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) OrderDelete(c *gin.Context) {
	if err := h.Store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "order not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete order")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func itemInputs(items []OrderItemRequest) []db.ItemInput {
	out := make([]db.ItemInput, 0, len(items))
	for _, it := range items {
		item := db.ItemInput{
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			Modifiers: it.Modifiers,
		}
		if it.UnitPrice != nil {
			price := decimal.NewFromFloat(*it.UnitPrice)
			item.UnitPrice = &price
		}
		out = append(out, item)
	}
	return out
}
