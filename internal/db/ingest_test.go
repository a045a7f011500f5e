package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto-analytics/backend/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := Migrate(url); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestIngestIdempotent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	price := decimal.NewFromFloat(4.50)
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tree := IngestTree{
		Restaurant: IngestRestaurant{
			ExternalID: "rh-" + uuid.NewString(),
			Name:       "Falafel House",
		},
		Call: IngestCall{
			ExternalID:  "call-" + uuid.NewString(),
			StartedAt:   started,
			EndedAt:     started.Add(95 * time.Second),
			CallerPhone: "+970590000000",
			Outcome:     models.OutcomeOrderPlaced,
		},
		Orders: []IngestOrder{{
			ExternalID:    "ord-" + uuid.NewString(),
			OrderType:     models.OrderTypePickup,
			PaymentMethod: models.PaymentOnline,
			Total:         decimal.NewFromFloat(21.30),
			Status:        models.StatusPlaced,
			Items: []ItemInput{
				{ItemName: "Shawarma", Quantity: 2, UnitPrice: &price},
				{ItemName: "Water", Quantity: 1},
			},
		}},
	}

	if err := store.Ingest(ctx, tree); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	// Replaying the identical delivery must converge, not duplicate.
	tree.Restaurant.Name = "Falafel House Renamed"
	if err := store.Ingest(ctx, tree); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	var restaurantID, name string
	err := store.Pool.QueryRow(ctx,
		`SELECT id, name FROM restaurants WHERE external_id = $1`,
		tree.Restaurant.ExternalID).Scan(&restaurantID, &name)
	if err != nil {
		t.Fatalf("restaurant lookup: %v", err)
	}
	if name != "Falafel House Renamed" {
		t.Fatalf("expected upsert to refresh name, got %q", name)
	}

	var callCount int
	if err := store.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM calls WHERE external_id = $1`,
		tree.Call.ExternalID).Scan(&callCount); err != nil {
		t.Fatalf("call count: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 call, got %d", callCount)
	}

	var duration int
	if err := store.Pool.QueryRow(ctx,
		`SELECT duration_seconds FROM calls WHERE external_id = $1`,
		tree.Call.ExternalID).Scan(&duration); err != nil {
		t.Fatalf("call duration: %v", err)
	}
	if duration != 95 {
		t.Fatalf("expected duration 95, got %d", duration)
	}

	var itemCount int
	if err := store.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.external_id = $1`,
		tree.Orders[0].ExternalID).Scan(&itemCount); err != nil {
		t.Fatalf("item count: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("expected 2 items after replay, got %d", itemCount)
	}
}

func TestDeleteRestaurantCascades(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tree := IngestTree{
		Restaurant: IngestRestaurant{ExternalID: "rh-" + uuid.NewString(), Name: "Cascade Test"},
		Call: IngestCall{
			ExternalID:  "call-" + uuid.NewString(),
			StartedAt:   started,
			EndedAt:     started.Add(time.Minute),
			CallerPhone: "+970590000001",
			Outcome:     models.OutcomeInquiry,
		},
		Orders: []IngestOrder{{
			ExternalID:    "ord-" + uuid.NewString(),
			OrderType:     models.OrderTypePickup,
			PaymentMethod: models.PaymentCash,
			Total:         decimal.NewFromInt(10),
			Status:        models.StatusPlaced,
			Items:         []ItemInput{{ItemName: "Hummus", Quantity: 1}},
		}},
	}
	if err := store.Ingest(ctx, tree); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	var restaurantID string
	if err := store.Pool.QueryRow(ctx,
		`SELECT id FROM restaurants WHERE external_id = $1`,
		tree.Restaurant.ExternalID).Scan(&restaurantID); err != nil {
		t.Fatalf("restaurant lookup: %v", err)
	}
	if err := store.DeleteRestaurant(ctx, restaurantID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var orphans int
	if err := store.Pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM calls WHERE restaurant_id = $1)
		     + (SELECT COUNT(*) FROM orders WHERE restaurant_id = $1)`,
		restaurantID).Scan(&orphans); err != nil {
		t.Fatalf("orphan count: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected cascade delete, found %d orphan rows", orphans)
	}
}
