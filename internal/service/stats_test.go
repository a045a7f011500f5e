package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-analytics/backend/internal/models"
)

func TestComputeRestaurantStats(t *testing.T) {
	early := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)

	restaurants := []models.Restaurant{
		{ID: "r1", Name: "Falafel House"},
		{ID: "r2", Name: "Quiet Corner"},
	}
	calls := []models.Call{
		{ID: "c1", RestaurantID: "r1", StartedAt: late, Outcome: models.OutcomeOrderPlaced},
		{ID: "c2", RestaurantID: "r1", StartedAt: early, Outcome: models.OutcomeInquiry},
	}
	orders := []models.Order{
		{ID: "o1", RestaurantID: "r1", Total: decimal.NewFromInt(40), Status: models.StatusPlaced},
	}

	stats := ComputeRestaurantStats(restaurants, calls, orders)
	require.Len(t, stats, 2)

	busy := stats[0]
	assert.Equal(t, "r1", busy.ID)
	assert.Equal(t, 2, busy.TotalCalls)
	assert.Equal(t, 1, busy.TotalOrders)
	assert.InDelta(t, 40.0, busy.Sales, 1e-9)
	assert.InDelta(t, 40.0, busy.AvgTicket, 1e-9)
	assert.InDelta(t, 50.0, busy.ConversionRate, 1e-9)
	require.NotNil(t, busy.LastCall)
	assert.True(t, busy.LastCall.Equal(late))

	quiet := stats[1]
	assert.Equal(t, "r2", quiet.ID)
	assert.Zero(t, quiet.TotalCalls)
	assert.Zero(t, quiet.Sales)
	assert.Zero(t, quiet.ConversionRate)
	assert.Nil(t, quiet.LastCall)
}
