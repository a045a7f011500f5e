package service

import (
	"time"

	"github.com/resto-analytics/backend/internal/models"
)

type RestaurantStats struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Brand          *string    `json:"brand"`
	TotalCalls     int        `json:"totalCalls"`
	TotalOrders    int        `json:"totalOrders"`
	Sales          float64    `json:"sales"`
	AvgTicket      float64    `json:"avgTicket"`
	ConversionRate float64    `json:"conversionRate"`
	LastCall       *time.Time `json:"lastCall"`
}

// ComputeRestaurantStats groups calls and PLACED orders by restaurant
// and computes the per-restaurant rollup. Restaurants with no calls in
// range report a null lastCall, not a sentinel date.
func ComputeRestaurantStats(restaurants []models.Restaurant, calls []models.Call, orders []models.Order) []RestaurantStats {
	callsByRestaurant := map[string][]models.Call{}
	for _, c := range calls {
		callsByRestaurant[c.RestaurantID] = append(callsByRestaurant[c.RestaurantID], c)
	}
	ordersByRestaurant := map[string][]models.Order{}
	for _, o := range orders {
		ordersByRestaurant[o.RestaurantID] = append(ordersByRestaurant[o.RestaurantID], o)
	}

	out := make([]RestaurantStats, 0, len(restaurants))
	for _, r := range restaurants {
		rCalls := callsByRestaurant[r.ID]
		rOrders := ordersByRestaurant[r.ID]

		st := RestaurantStats{
			ID:          r.ID,
			Name:        r.Name,
			Brand:       r.Brand,
			TotalCalls:  len(rCalls),
			TotalOrders: len(rOrders),
		}
		for _, o := range rOrders {
			st.Sales += o.Total.InexactFloat64()
		}
		if st.TotalOrders > 0 {
			st.AvgTicket = st.Sales / float64(st.TotalOrders)
		}

		converted := 0
		for _, c := range rCalls {
			if c.Outcome == models.OutcomeOrderPlaced {
				converted++
			}
			if st.LastCall == nil || c.StartedAt.After(*st.LastCall) {
				startedAt := c.StartedAt
				st.LastCall = &startedAt
			}
		}
		if st.TotalCalls > 0 {
			st.ConversionRate = float64(converted) / float64(st.TotalCalls) * 100
		}

		out = append(out, st)
	}
	return out
}
