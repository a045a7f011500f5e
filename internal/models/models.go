package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CallOutcome string

const (
	OutcomeOrderPlaced CallOutcome = "ORDER_PLACED"
	OutcomeInquiry     CallOutcome = "INQUIRY"
	OutcomeMissed      CallOutcome = "MISSED"
	OutcomeCanceled    CallOutcome = "CANCELED"
	OutcomeOther       CallOutcome = "OTHER"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "PICKUP"
	OrderTypeDelivery OrderType = "DELIVERY"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentCard    PaymentMethod = "CARD"
	PaymentOnline  PaymentMethod = "ONLINE"
	PaymentOther   PaymentMethod = "OTHER"
	PaymentUnknown PaymentMethod = "UNKNOWN"
)

type OrderStatus string

const (
	StatusPlaced        OrderStatus = "PLACED"
	StatusCanceled      OrderStatus = "CANCELED"
	StatusFailed        OrderStatus = "FAILED"
	StatusNeedsFollowup OrderStatus = "NEEDS_FOLLOWUP"
)

const DefaultTimezone = "Asia/Hebron"

type Restaurant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Brand      *string   `json:"brand"`
	Phone      *string   `json:"phone"`
	Timezone   string    `json:"timezone"`
	ExternalID *string   `json:"externalId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Call struct {
	ID              string      `json:"id"`
	RestaurantID    string      `json:"restaurantId"`
	StartedAt       time.Time   `json:"startedAt"`
	EndedAt         time.Time   `json:"endedAt"`
	DurationSeconds int         `json:"durationSeconds"`
	CallerPhone     string      `json:"callerPhone"`
	CallerName      *string     `json:"callerName"`
	TranscriptText  string      `json:"transcriptText"`
	SummaryText     *string     `json:"summaryText"`
	Outcome         CallOutcome `json:"outcome"`
	RecordingURL    *string     `json:"recordingUrl"`
	IsRecorded      bool        `json:"isRecorded"`
	ExternalID      *string     `json:"externalId"`
	CreatedAt       time.Time   `json:"createdAt"`

	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Orders     []Order     `json:"orders,omitempty"`
}

type Order struct {
	ID            string          `json:"id"`
	CallID        *string         `json:"callId"`
	RestaurantID  string          `json:"restaurantId"`
	OrderType     OrderType       `json:"orderType"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Tip           decimal.Decimal `json:"tip"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	CustomerName  *string         `json:"customerName"`
	CustomerPhone *string         `json:"customerPhone"`
	ExternalID    *string         `json:"externalId"`
	CreatedAt     time.Time       `json:"createdAt"`

	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Call       *Call       `json:"call,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"orderId"`
	ItemName  string           `json:"itemName"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Modifiers map[string]any   `json:"modifiersJson"`
}
