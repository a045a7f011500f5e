// Package restohost talks to the RestoHost voice/ordering API and
// adapts its payloads into the dashboard schema.
package restohost

import "time"

type Call struct {
	ID               string      `json:"id"`
	TenantID         string      `json:"tenant_id"`
	FromNumber       string      `json:"from_number"`
	FromNumberMasked string      `json:"from_number_masked"`
	ToNumber         string      `json:"to_number"`
	StartedAt        time.Time   `json:"started_at"`
	EndedAt          *time.Time  `json:"ended_at"`
	DurationSeconds  *int        `json:"duration_seconds"`
	Status           string      `json:"status"`
	Outcome          *string     `json:"outcome"`
	RecordingURL     *string     `json:"recording_url"`
	Escalated        bool        `json:"escalated"`
	Summary          *string     `json:"summary"`
	Transcript       *Transcript `json:"transcript,omitempty"`
}

type Transcript struct {
	ID       string `json:"id"`
	CallID   string `json:"call_id"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type Order struct {
	ID                  string      `json:"id"`
	TenantID            string      `json:"tenant_id"`
	CallID              *string     `json:"call_id"`
	OrderNumber         string      `json:"order_number"`
	CustomerName        string      `json:"customer_name"`
	CustomerPhone       string      `json:"customer_phone"`
	CustomerPhoneMasked string      `json:"customer_phone_masked"`
	Items               []OrderItem `json:"items_json"`
	SubtotalCents       int         `json:"subtotal_cents"`
	TaxCents            int         `json:"tax_cents"`
	TotalCents          int         `json:"total_cents"`
	TotalDollars        float64     `json:"total_dollars"`
	Status              string      `json:"status"`
	PaymentStatus       string      `json:"payment_status"`
	CreatedAt           time.Time   `json:"created_at"`
}

type OrderItem struct {
	ItemID     *string `json:"item_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	PriceCents int     `json:"price_cents"`
	Modifiers  []any   `json:"modifiers,omitempty"`
}

type Reservation struct {
	ID                  string    `json:"id"`
	TenantID            string    `json:"tenant_id"`
	CallID              *string   `json:"call_id"`
	CustomerName        string    `json:"customer_name"`
	CustomerPhoneMasked string    `json:"customer_phone_masked"`
	PartySize           int       `json:"party_size"`
	ReservationDatetime time.Time `json:"reservation_datetime"`
	DurationMinutes     int       `json:"duration_minutes"`
	TablePreference     *string   `json:"table_preference"`
	SpecialRequests     *string   `json:"special_requests"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type MenuItem struct {
	ID              string  `json:"id"`
	TenantID        string  `json:"tenant_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	PriceCents      int     `json:"price_cents"`
	PriceDollars    float64 `json:"price_dollars"`
	Category        string  `json:"category"`
	IsActive        bool    `json:"is_active"`
	IsAvailable     bool    `json:"is_available"`
	PrepTimeMinutes *int    `json:"prep_time_minutes"`
}

type CallListResponse struct {
	Items    []Call `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Pages    int    `json:"pages"`
}

type OrderListResponse struct {
	Items    []Order `json:"items"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Pages    int     `json:"pages"`
}

type ReservationListResponse struct {
	Items    []Reservation `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Pages    int           `json:"pages"`
}

type CallStats struct {
	TotalCalls         int            `json:"total_calls"`
	CallsLast24h       int            `json:"calls_last_24h"`
	CallsLast7d        int            `json:"calls_last_7d"`
	EscalationRate7d   float64        `json:"escalation_rate_7d"`
	AvgDurationSeconds float64        `json:"avg_duration_seconds"`
	Outcomes           map[string]int `json:"outcomes"`
}

type OrderStats struct {
	OrdersToday         int            `json:"orders_today"`
	RevenueTodayCents   int            `json:"revenue_today_cents"`
	RevenueTodayDollars float64        `json:"revenue_today_dollars"`
	Revenue7dCents      int            `json:"revenue_7d_cents"`
	Revenue7dDollars    float64        `json:"revenue_7d_dollars"`
	StatusBreakdown     map[string]int `json:"status_breakdown"`
}

type ReservationStats struct {
	ReservationsToday int            `json:"reservations_today"`
	CoversToday       int            `json:"covers_today"`
	Upcoming          int            `json:"upcoming"`
	NoShowRate7d      float64        `json:"no_show_rate_7d"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
}
