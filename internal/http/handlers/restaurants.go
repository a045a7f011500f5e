package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/models"
	"github.com/resto-analytics/backend/internal/service"
)

func (h *Handler) RestaurantsList(c *gin.Context) {
	restaurants, err := h.Store.ListRestaurants(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list restaurants")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

type CreateRestaurantRequest struct {
	Name  string  `json:"name" validate:"required"`
	Brand *string `json:"brand"`
	Phone *string `json:"phone"`
}

func (h *Handler) RestaurantCreate(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "restaurant name is required")
		return
	}
	restaurant, err := h.Store.CreateRestaurant(c.Request.Context(), req.Name, req.Brand, req.Phone)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create restaurant")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *Handler) RestaurantGet(c *gin.Context) {
	restaurant, err := h.Store.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "restaurant not found")
			return
		}
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) RestaurantUpdate(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "restaurant name is required")
		return
	}
	restaurant, err := h.Store.UpdateRestaurant(c.Request.Context(), c.Param("id"), req.Name, req.Brand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "restaurant not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update restaurant")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) RestaurantDelete(c *gin.Context) {
	if err := h.Store.DeleteRestaurant(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "restaurant not found")
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete restaurant")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary Per-restaurant rollup
// @Tags stats
// @Produce json
// @Param from query string false "Range start"
// @Param to query string false "Range end"
// @Success 200 {array} service.RestaurantStats
// @Router /api/restaurants/stats [get]
func (h *Handler) RestaurantStats(c *gin.Context) {
	from, to := parseDateRange(c)

	var (
		restaurants []models.Restaurant
		calls       []models.Call
		orders      []models.Order
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		restaurants, err = h.Store.ListRestaurants(ctx)
		return err
	})
	g.Go(func() (err error) {
		calls, err = h.Store.LoadCalls(ctx, db.CallFilter{From: from, To: to})
		return err
	})
	g.Go(func() (err error) {
		orders, err = h.Store.LoadPlacedOrders(ctx, db.OrderFilter{From: from, To: to})
		return err
	})
	if err := g.Wait(); err != nil {
		h.Logger.Error().Err(err).Msg("failed to load restaurant stats")
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, service.ComputeRestaurantStats(restaurants, calls, orders))
}
