package restohost

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/models"
)

// Enum mapping between RestoHost values and the dashboard schema. Every
// mapper is total: unrecognized inputs land on an explicit fallback
// variant instead of leaking raw strings into the database.

var outcomeMap = map[string]models.CallOutcome{
	"order_placed":     models.OutcomeOrderPlaced,
	"reservation_made": models.OutcomeInquiry,
	"faq_answered":     models.OutcomeInquiry,
	"escalated":        models.OutcomeOther,
	"voicemail":        models.OutcomeMissed,
	"hangup":           models.OutcomeCanceled,
	"error":            models.OutcomeOther,
	"unknown":          models.OutcomeOther,
}

func ParseOutcome(s string) models.CallOutcome {
	switch models.CallOutcome(s) {
	case models.OutcomeOrderPlaced, models.OutcomeInquiry, models.OutcomeMissed,
		models.OutcomeCanceled, models.OutcomeOther:
		return models.CallOutcome(s)
	}
	if v, ok := outcomeMap[strings.ToLower(s)]; ok {
		return v
	}
	return models.OutcomeOther
}

var paymentMap = map[string]models.PaymentMethod{
	"pending":   models.PaymentUnknown,
	"link_sent": models.PaymentOnline,
	"paid":      models.PaymentCard,
	"failed":    models.PaymentUnknown,
	"refunded":  models.PaymentUnknown,
	"cash":      models.PaymentCash,
}

func ParsePaymentMethod(s string) models.PaymentMethod {
	switch models.PaymentMethod(s) {
	case models.PaymentCash, models.PaymentCard, models.PaymentOnline,
		models.PaymentOther, models.PaymentUnknown:
		return models.PaymentMethod(s)
	}
	if v, ok := paymentMap[strings.ToLower(s)]; ok {
		return v
	}
	return models.PaymentUnknown
}

// ParseOrderType falls back to PICKUP: RestoHost only takes pickup
// orders, so that is the declared default for anything unrecognized.
func ParseOrderType(s string) models.OrderType {
	switch models.OrderType(s) {
	case models.OrderTypePickup, models.OrderTypeDelivery:
		return models.OrderType(s)
	}
	return models.OrderTypePickup
}

// ParseOrderStatus maps unrecognized statuses to NEEDS_FOLLOWUP so they
// surface for review instead of counting as placed revenue.
func ParseOrderStatus(s string) models.OrderStatus {
	switch models.OrderStatus(s) {
	case models.StatusPlaced, models.StatusCanceled, models.StatusFailed, models.StatusNeedsFollowup:
		return models.OrderStatus(s)
	}
	return models.StatusNeedsFollowup
}

// IngestPayload is the webhook body RestoHost delivers after each call:
// the restaurant, the call, and any orders it produced.
type IngestPayload struct {
	Restaurant IngestRestaurant `json:"restaurant"`
	Call       IngestCall       `json:"call"`
	Orders     []IngestOrder    `json:"orders"`
}

type IngestRestaurant struct {
	ExternalID string  `json:"externalId"`
	Name       string  `json:"name"`
	Brand      *string `json:"brand"`
	Phone      *string `json:"phone"`
	Timezone   string  `json:"timezone"`
}

type IngestCall struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"startedAt"`
	EndedAt        time.Time `json:"endedAt"`
	CallerPhone    string    `json:"callerPhone"`
	CallerName     *string   `json:"callerName"`
	RecordingURL   *string   `json:"recordingUrl"`
	IsRecorded     bool      `json:"isRecorded"`
	TranscriptText string    `json:"transcriptText"`
	SummaryText    *string   `json:"summaryText"`
	Outcome        string    `json:"outcome"`
}

type IngestOrder struct {
	ID            string         `json:"id"`
	OrderType     string         `json:"orderType"`
	PaymentMethod string         `json:"paymentMethod"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Tip           float64        `json:"tip"`
	Total         float64        `json:"total"`
	Status        string         `json:"status"`
	CustomerName  *string        `json:"customerName"`
	CustomerPhone *string        `json:"customerPhone"`
	Items         []IngestItem   `json:"items"`
}

type IngestItem struct {
	ItemName  string         `json:"itemName"`
	Quantity  int            `json:"quantity"`
	UnitPrice *float64       `json:"unitPrice"`
	Modifiers map[string]any `json:"modifiersJson"`
}

// ToTree maps the webhook payload onto the storage upsert tree,
// normalizing every enum through the mappers above.
func ToTree(p IngestPayload) db.IngestTree {
	tree := db.IngestTree{
		Restaurant: db.IngestRestaurant{
			ExternalID: p.Restaurant.ExternalID,
			Name:       p.Restaurant.Name,
			Brand:      p.Restaurant.Brand,
			Phone:      p.Restaurant.Phone,
			Timezone:   p.Restaurant.Timezone,
		},
		Call: db.IngestCall{
			ExternalID:     p.Call.ID,
			StartedAt:      p.Call.StartedAt,
			EndedAt:        p.Call.EndedAt,
			CallerPhone:    p.Call.CallerPhone,
			CallerName:     p.Call.CallerName,
			RecordingURL:   p.Call.RecordingURL,
			IsRecorded:     p.Call.IsRecorded,
			TranscriptText: p.Call.TranscriptText,
			SummaryText:    p.Call.SummaryText,
			Outcome:        ParseOutcome(p.Call.Outcome),
		},
	}
	for _, o := range p.Orders {
		items := make([]db.ItemInput, 0, len(o.Items))
		for _, it := range o.Items {
			item := db.ItemInput{
				ItemName:  it.ItemName,
				Quantity:  it.Quantity,
				Modifiers: it.Modifiers,
			}
			if it.UnitPrice != nil {
				price := decimal.NewFromFloat(*it.UnitPrice)
				item.UnitPrice = &price
			}
			items = append(items, item)
		}
		tree.Orders = append(tree.Orders, db.IngestOrder{
			ExternalID:    o.ID,
			OrderType:     ParseOrderType(o.OrderType),
			PaymentMethod: ParsePaymentMethod(o.PaymentMethod),
			Subtotal:      decimal.NewFromFloat(o.Subtotal),
			Tax:           decimal.NewFromFloat(o.Tax),
			Tip:           decimal.NewFromFloat(o.Tip),
			Total:         decimal.NewFromFloat(o.Total),
			Status:        ParseOrderStatus(o.Status),
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Items:         items,
		})
	}
	return tree
}

// Dashboard-facing shapes for RestoHost entities.

// DashboardCall is a remote call rendered in the dashboard schema,
// for views fed straight from RestoHost rather than local storage.
type DashboardCall struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationSeconds int       `json:"durationSeconds"`
	CallerPhone     string    `json:"callerPhone"`
	CallerName      *string   `json:"callerName"`
	Outcome         string    `json:"outcome"`
	IsRecorded      bool      `json:"isRecorded"`
	RecordingURL    *string   `json:"recordingUrl"`
	TranscriptText  string    `json:"transcriptText"`
	SummaryText     *string   `json:"summaryText"`
}

func AdaptCall(c Call) DashboardCall {
	d := DashboardCall{
		ID:           c.ID,
		StartedAt:    c.StartedAt,
		EndedAt:      c.StartedAt,
		CallerPhone:  c.FromNumberMasked,
		IsRecorded:   c.RecordingURL != nil,
		RecordingURL: c.RecordingURL,
		SummaryText:  c.Summary,
	}
	if c.EndedAt != nil {
		d.EndedAt = *c.EndedAt
	}
	if c.DurationSeconds != nil {
		d.DurationSeconds = *c.DurationSeconds
	}
	outcome := ""
	if c.Outcome != nil {
		outcome = *c.Outcome
	}
	d.Outcome = string(ParseOutcome(outcome))
	if c.Transcript != nil {
		d.TranscriptText = c.Transcript.Text
	}
	return d
}

type DashboardOrder struct {
	ID            string               `json:"id"`
	CreatedAt     time.Time            `json:"createdAt"`
	OrderType     string               `json:"orderType"`
	Total         float64              `json:"total"`
	PaymentMethod string               `json:"paymentMethod"`
	CustomerName  *string              `json:"customerName"`
	CustomerPhone string               `json:"customerPhone"`
	Items         []DashboardOrderItem `json:"items"`
}

type DashboardOrderItem struct {
	ItemName      string   `json:"itemName"`
	Quantity      int      `json:"quantity"`
	UnitPrice     *float64 `json:"unitPrice"`
	ModifiersJSON []any    `json:"modifiersJson"`
}

func AdaptOrder(o Order) DashboardOrder {
	d := DashboardOrder{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		OrderType:     string(models.OrderTypePickup),
		Total:         o.TotalDollars,
		PaymentMethod: string(ParsePaymentMethod(o.PaymentStatus)),
		CustomerPhone: o.CustomerPhoneMasked,
	}
	if o.CustomerName != "" {
		name := o.CustomerName
		d.CustomerName = &name
	}
	for _, it := range o.Items {
		item := DashboardOrderItem{
			ItemName:      it.Name,
			Quantity:      it.Quantity,
			ModifiersJSON: it.Modifiers,
		}
		if item.ModifiersJSON == nil {
			item.ModifiersJSON = []any{}
		}
		if it.PriceCents > 0 {
			price := float64(it.PriceCents) / 100
			item.UnitPrice = &price
		}
		d.Items = append(d.Items, item)
	}
	return d
}

type DashboardReservation struct {
	ID              string    `json:"id"`
	CallID          *string   `json:"callId"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	PartySize       int       `json:"partySize"`
	ReservationTime time.Time `json:"reservationTime"`
	DurationMinutes int       `json:"durationMinutes"`
	TablePreference *string   `json:"tablePreference"`
	SpecialRequests *string   `json:"specialRequests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func AdaptReservation(r Reservation) DashboardReservation {
	return DashboardReservation{
		ID:              r.ID,
		CallID:          r.CallID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhoneMasked,
		PartySize:       r.PartySize,
		ReservationTime: r.ReservationDatetime,
		DurationMinutes: r.DurationMinutes,
		TablePreference: r.TablePreference,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
	}
}

type DashboardMenuItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	IsActive        bool    `json:"isActive"`
	IsAvailable     bool    `json:"isAvailable"`
	PrepTimeMinutes *int    `json:"prepTimeMinutes"`
}

func AdaptMenuItem(m MenuItem) DashboardMenuItem {
	return DashboardMenuItem{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.PriceDollars,
		Category:        m.Category,
		IsActive:        m.IsActive,
		IsAvailable:     m.IsAvailable,
		PrepTimeMinutes: m.PrepTimeMinutes,
	}
}
