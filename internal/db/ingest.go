package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/resto-analytics/backend/internal/models"
)

// IngestTree is one delivery from the upstream voice/ordering system:
// a restaurant, the call it handled, and the orders the call produced.
// External ids are the upsert keys, so replaying the same delivery
// converges instead of duplicating rows.
type IngestTree struct {
	Restaurant IngestRestaurant
	Call       IngestCall
	Orders     []IngestOrder
}

type IngestRestaurant struct {
	ExternalID string
	Name       string
	Brand      *string
	Phone      *string
	Timezone   string
}

type IngestCall struct {
	ExternalID     string
	StartedAt      time.Time
	EndedAt        time.Time
	CallerPhone    string
	CallerName     *string
	RecordingURL   *string
	IsRecorded     bool
	TranscriptText string
	SummaryText    *string
	Outcome        models.CallOutcome
}

type IngestOrder struct {
	ExternalID    string
	OrderType     models.OrderType
	PaymentMethod models.PaymentMethod
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Tip           decimal.Decimal
	Total         decimal.Decimal
	Status        models.OrderStatus
	CustomerName  *string
	CustomerPhone *string
	Items         []ItemInput
}

// Ingest upserts the whole tree in a single transaction, so a failure
// in the item replacement step leaves the previous state intact rather
// than a parent order with missing children.
func (s *Store) Ingest(ctx context.Context, tree IngestTree) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		timezone := tree.Restaurant.Timezone
		if timezone == "" {
			timezone = models.DefaultTimezone
		}

		var restaurantID string
		err := tx.QueryRow(ctx, `
			INSERT INTO restaurants (id, name, brand, phone, timezone, external_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				brand = EXCLUDED.brand,
				phone = EXCLUDED.phone,
				timezone = EXCLUDED.timezone
			RETURNING id
		`, uuid.NewString(), tree.Restaurant.Name, tree.Restaurant.Brand, tree.Restaurant.Phone,
			timezone, tree.Restaurant.ExternalID, now).Scan(&restaurantID)
		if err != nil {
			return err
		}

		duration := int(tree.Call.EndedAt.Sub(tree.Call.StartedAt).Seconds())
		var callID string
		err = tx.QueryRow(ctx, `
			INSERT INTO calls (id, restaurant_id, started_at, ended_at, duration_seconds,
				caller_phone, caller_name, transcript_text, summary_text,
				outcome, recording_url, is_recorded, external_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (external_id) DO UPDATE SET
				started_at = EXCLUDED.started_at,
				ended_at = EXCLUDED.ended_at,
				duration_seconds = EXCLUDED.duration_seconds,
				caller_phone = EXCLUDED.caller_phone,
				caller_name = EXCLUDED.caller_name,
				transcript_text = EXCLUDED.transcript_text,
				summary_text = EXCLUDED.summary_text,
				outcome = EXCLUDED.outcome,
				recording_url = EXCLUDED.recording_url,
				is_recorded = EXCLUDED.is_recorded
			RETURNING id
		`, uuid.NewString(), restaurantID, tree.Call.StartedAt, tree.Call.EndedAt, duration,
			tree.Call.CallerPhone, tree.Call.CallerName, tree.Call.TranscriptText, tree.Call.SummaryText,
			tree.Call.Outcome, tree.Call.RecordingURL, tree.Call.IsRecorded, tree.Call.ExternalID, now).Scan(&callID)
		if err != nil {
			return err
		}

		for _, o := range tree.Orders {
			var orderID string
			err = tx.QueryRow(ctx, `
				INSERT INTO orders (id, call_id, restaurant_id, order_type, payment_method,
					subtotal, tax, tip, total, status,
					customer_name, customer_phone, external_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT (external_id) DO UPDATE SET
					call_id = EXCLUDED.call_id,
					order_type = EXCLUDED.order_type,
					payment_method = EXCLUDED.payment_method,
					subtotal = EXCLUDED.subtotal,
					tax = EXCLUDED.tax,
					tip = EXCLUDED.tip,
					total = EXCLUDED.total,
					status = EXCLUDED.status,
					customer_name = EXCLUDED.customer_name,
					customer_phone = EXCLUDED.customer_phone
				RETURNING id
			`, uuid.NewString(), callID, restaurantID, o.OrderType, o.PaymentMethod,
				o.Subtotal, o.Tax, o.Tip, o.Total, o.Status,
				o.CustomerName, o.CustomerPhone, o.ExternalID, now).Scan(&orderID)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
				return err
			}
			if err := insertItems(ctx, tx, orderID, o.Items); err != nil {
				return err
			}
		}
		return nil
	})
}
