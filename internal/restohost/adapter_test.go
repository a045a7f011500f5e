package restohost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-analytics/backend/internal/models"
)

func TestParseOutcome(t *testing.T) {
	cases := map[string]models.CallOutcome{
		"ORDER_PLACED":     models.OutcomeOrderPlaced,
		"order_placed":     models.OutcomeOrderPlaced,
		"reservation_made": models.OutcomeInquiry,
		"faq_answered":     models.OutcomeInquiry,
		"voicemail":        models.OutcomeMissed,
		"hangup":           models.OutcomeCanceled,
		"escalated":        models.OutcomeOther,
		"something-new":    models.OutcomeOther,
		"":                 models.OutcomeOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseOutcome(in), "input %q", in)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]models.PaymentMethod{
		"CARD":      models.PaymentCard,
		"link_sent": models.PaymentOnline,
		"paid":      models.PaymentCard,
		"cash":      models.PaymentCash,
		"pending":   models.PaymentUnknown,
		"refunded":  models.PaymentUnknown,
		"gibberish": models.PaymentUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParsePaymentMethod(in), "input %q", in)
	}
}

func TestParseOrderTypeAndStatusFallbacks(t *testing.T) {
	assert.Equal(t, models.OrderTypeDelivery, ParseOrderType("DELIVERY"))
	assert.Equal(t, models.OrderTypePickup, ParseOrderType("drive_thru"))

	assert.Equal(t, models.StatusPlaced, ParseOrderStatus("PLACED"))
	assert.Equal(t, models.StatusNeedsFollowup, ParseOrderStatus("confirmed"))
}

func TestToTree(t *testing.T) {
	price := 4.5
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	payload := IngestPayload{
		Restaurant: IngestRestaurant{ExternalID: "rh-77", Name: "Falafel House"},
		Call: IngestCall{
			ID:          "call-1",
			StartedAt:   started,
			EndedAt:     started.Add(95 * time.Second),
			CallerPhone: "+970590000000",
			Outcome:     "order_placed",
		},
		Orders: []IngestOrder{{
			ID:            "ord-1",
			OrderType:     "pickup",
			PaymentMethod: "link_sent",
			Total:         21.30,
			Status:        "PLACED",
			Items: []IngestItem{
				{ItemName: "Shawarma", Quantity: 2, UnitPrice: &price},
				{ItemName: "Water", Quantity: 1},
			},
		}},
	}

	tree := ToTree(payload)

	assert.Equal(t, "rh-77", tree.Restaurant.ExternalID)
	assert.Equal(t, "call-1", tree.Call.ExternalID)
	assert.Equal(t, models.OutcomeOrderPlaced, tree.Call.Outcome)

	require.Len(t, tree.Orders, 1)
	o := tree.Orders[0]
	assert.Equal(t, models.OrderTypePickup, o.OrderType)
	assert.Equal(t, models.PaymentOnline, o.PaymentMethod)
	assert.Equal(t, models.StatusPlaced, o.Status)
	assert.Equal(t, "21.3", o.Total.String())

	require.Len(t, o.Items, 2)
	require.NotNil(t, o.Items[0].UnitPrice)
	assert.Equal(t, "4.5", o.Items[0].UnitPrice.String())
	assert.Nil(t, o.Items[1].UnitPrice)
}

func TestAdaptCall(t *testing.T) {
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	outcome := "order_placed"
	recording := "https://cdn.example/rec.mp3"

	d := AdaptCall(Call{
		ID:               "call-1",
		FromNumberMasked: "+9705*****00",
		StartedAt:        started,
		Outcome:          &outcome,
		RecordingURL:     &recording,
		Transcript:       &Transcript{Text: "hello"},
	})

	assert.Equal(t, "ORDER_PLACED", d.Outcome)
	assert.True(t, d.IsRecorded)
	assert.Equal(t, "hello", d.TranscriptText)
	// Calls still in progress report a zero duration and end when they started.
	assert.True(t, d.EndedAt.Equal(started))
	assert.Zero(t, d.DurationSeconds)
}

func TestAdaptOrder(t *testing.T) {
	d := AdaptOrder(Order{
		ID:                  "ord-1",
		CustomerName:        "Amal",
		CustomerPhoneMasked: "+9705*****00",
		TotalDollars:        21.30,
		PaymentStatus:       "link_sent",
		Items: []OrderItem{
			{Name: "Shawarma", Quantity: 2, PriceCents: 450, Modifiers: []any{"extra garlic"}},
			{Name: "Water", Quantity: 1},
		},
	})

	assert.Equal(t, "PICKUP", d.OrderType)
	assert.Equal(t, "ONLINE", d.PaymentMethod)
	require.NotNil(t, d.CustomerName)
	assert.Equal(t, "Amal", *d.CustomerName)
	require.Len(t, d.Items, 2)
	require.NotNil(t, d.Items[0].UnitPrice)
	assert.InDelta(t, 4.5, *d.Items[0].UnitPrice, 1e-9)
	assert.Equal(t, []any{"extra garlic"}, d.Items[0].ModifiersJSON)
	assert.Nil(t, d.Items[1].UnitPrice)
	// Missing modifiers serialize as [] rather than null.
	assert.Equal(t, []any{}, d.Items[1].ModifiersJSON)
}

func TestAdaptReservation(t *testing.T) {
	when := time.Date(2025, 4, 1, 19, 30, 0, 0, time.UTC)
	r := Reservation{
		ID:                  "res-1",
		CustomerName:        "Amal",
		CustomerPhoneMasked: "+9705*****00",
		PartySize:           4,
		ReservationDatetime: when,
		DurationMinutes:     90,
		Status:              "confirmed",
	}

	d := AdaptReservation(r)
	assert.Equal(t, "res-1", d.ID)
	assert.Equal(t, "+9705*****00", d.CustomerPhone)
	assert.True(t, d.ReservationTime.Equal(when))
	assert.Equal(t, 90, d.DurationMinutes)
}

func TestAdaptMenuItem(t *testing.T) {
	m := MenuItem{
		ID:           "mi-1",
		Name:         "Hummus",
		PriceCents:   650,
		PriceDollars: 6.5,
		Category:     "starters",
		IsActive:     true,
		IsAvailable:  true,
	}

	d := AdaptMenuItem(m)
	assert.Equal(t, "Hummus", d.Name)
	assert.InDelta(t, 6.5, d.Price, 1e-9)
	assert.True(t, d.IsActive)
}
