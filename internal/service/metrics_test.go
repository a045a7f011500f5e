package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-analytics/backend/internal/models"
)

func placedOrder(total float64, day time.Time) models.Order {
	return models.Order{
		RestaurantID:  "r1",
		OrderType:     models.OrderTypePickup,
		PaymentMethod: models.PaymentCard,
		Total:         decimal.NewFromFloat(total),
		Status:        models.StatusPlaced,
		CreatedAt:     day,
	}
}

func TestComputeRollupEmpty(t *testing.T) {
	r := ComputeRollup(nil, nil)

	assert.Zero(t, r.Sales)
	assert.Zero(t, r.Orders)
	assert.Zero(t, r.AvgTicket)
	assert.Zero(t, r.ConversionRate)
	assert.Zero(t, r.CallMinutes)

	// Empty ranges serialize as [] rather than null.
	require.NotNil(t, r.DailySales)
	require.NotNil(t, r.DailyCalls)
	require.NotNil(t, r.PaymentMethods)
	require.NotNil(t, r.TopItems)
}

func TestComputeRollupAvgTicketWithoutCalls(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{placedOrder(10, day), placedOrder(20, day)}

	r := ComputeRollup(orders, nil)

	assert.InDelta(t, 30.0, r.Sales, 1e-9)
	assert.Equal(t, 2, r.Orders)
	assert.InDelta(t, 15.0, r.AvgTicket, 1e-9)
	assert.Zero(t, r.TotalCalls)
	assert.Zero(t, r.ConversionRate)
}

func TestComputeRollupConversionRate(t *testing.T) {
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	calls := []models.Call{
		{ID: "c1", StartedAt: started, Outcome: models.OutcomeOrderPlaced, DurationSeconds: 90},
		{ID: "c2", StartedAt: started, Outcome: models.OutcomeInquiry, DurationSeconds: 30},
		{ID: "c3", StartedAt: started, Outcome: models.OutcomeMissed},
		{ID: "c4", StartedAt: started, Outcome: models.OutcomeOther},
	}

	r := ComputeRollup(nil, calls)

	assert.Equal(t, 4, r.TotalCalls)
	assert.InDelta(t, 25.0, r.ConversionRate, 1e-9)
	assert.InDelta(t, 2.0, r.CallMinutes, 1e-9)
}

func TestDailySalesChronological(t *testing.T) {
	feb1 := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	jan31 := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		placedOrder(5, feb1),
		placedOrder(7, jan31),
		placedOrder(3, feb1),
	}

	series := ComputeRollup(orders, nil).DailySales

	require.Len(t, series, 2)
	assert.Equal(t, "Jan 31", series[0].Date)
	assert.InDelta(t, 7.0, series[0].Sales, 1e-9)
	assert.Equal(t, 1, series[0].Orders)
	assert.Equal(t, "Feb 01", series[1].Date)
	assert.InDelta(t, 8.0, series[1].Sales, 1e-9)
	assert.Equal(t, 2, series[1].Orders)
}

func TestDailySeriesNonUTCOffsets(t *testing.T) {
	// timestamptz values come back with the session offset, not UTC.
	hebron := time.FixedZone("EET", 2*60*60)
	jan1Noon := time.Date(2025, 1, 1, 12, 0, 0, 0, hebron)
	jan2Early := time.Date(2025, 1, 2, 0, 30, 0, 0, hebron) // still Jan 1 in UTC
	orders := []models.Order{
		placedOrder(10, jan1Noon),
		placedOrder(20, jan2Early),
	}
	calls := []models.Call{
		{ID: "c1", StartedAt: jan1Noon, Outcome: models.OutcomeInquiry},
		{ID: "c2", StartedAt: jan2Early, Outcome: models.OutcomeInquiry},
	}

	r := ComputeRollup(orders, calls)

	require.Len(t, r.DailySales, 2)
	assert.Equal(t, "Jan 01", r.DailySales[0].Date)
	assert.InDelta(t, 10.0, r.DailySales[0].Sales, 1e-9)
	assert.Equal(t, "Jan 02", r.DailySales[1].Date)
	assert.InDelta(t, 20.0, r.DailySales[1].Sales, 1e-9)

	require.Len(t, r.DailyCalls, 2)
	assert.Equal(t, "Jan 01", r.DailyCalls[0].Date)
	assert.Equal(t, "Jan 02", r.DailyCalls[1].Date)
}

func TestPaymentBreakdownFirstAppearanceOrder(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		placedOrder(10, day),
		placedOrder(20, day),
	}
	orders[0].PaymentMethod = models.PaymentOnline
	orders[1].PaymentMethod = models.PaymentCash

	breakdown := ComputeRollup(orders, nil).PaymentMethods

	require.Len(t, breakdown, 2)
	assert.Equal(t, "ONLINE", breakdown[0].Method)
	assert.Equal(t, "CASH", breakdown[1].Method)
}

func TestTopItemsNilUnitPriceCountsZeroRevenue(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	price := decimal.NewFromFloat(4.50)
	order := placedOrder(9, day)
	order.Items = []models.OrderItem{
		{ItemName: "Shawarma", Quantity: 2, UnitPrice: &price},
		{ItemName: "Water", Quantity: 3, UnitPrice: nil},
	}

	items := ComputeRollup([]models.Order{order}, nil).TopItems

	require.Len(t, items, 2)
	assert.Equal(t, "Water", items[0].ItemName)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Zero(t, items[0].Revenue)
	assert.Equal(t, "Shawarma", items[1].ItemName)
	assert.InDelta(t, 9.0, items[1].Revenue, 1e-9)
}

func TestTopItemsCappedAtTenStable(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	order := placedOrder(100, day)
	for i := 0; i < 12; i++ {
		order.Items = append(order.Items, models.OrderItem{
			ItemName: fmt.Sprintf("item-%02d", i),
			Quantity: 1,
		})
	}

	items := ComputeRollup([]models.Order{order}, nil).TopItems

	require.Len(t, items, 10)
	// Equal quantities keep first-appearance order.
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("item-%02d", i), it.ItemName)
	}
}
