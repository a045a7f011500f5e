package db

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/resto-analytics/backend/internal/models"
)

var orderColumns = []string{
	"id", "call_id", "restaurant_id", "order_type", "payment_method",
	"subtotal", "tax", "tip", "total", "status",
	"customer_name", "customer_phone", "external_id", "created_at",
}

func scanOrder(row scanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.CallID, &o.RestaurantID, &o.OrderType, &o.PaymentMethod,
		&o.Subtotal, &o.Tax, &o.Tip, &o.Total, &o.Status,
		&o.CustomerName, &o.CustomerPhone, &o.ExternalID, &o.CreatedAt,
	)
	return o, err
}

func scanOrderItem(row scanner) (models.OrderItem, error) {
	var (
		it        models.OrderItem
		unitPrice decimal.NullDecimal
		modifiers []byte
	)
	if err := row.Scan(&it.ID, &it.OrderID, &it.ItemName, &it.Quantity, &unitPrice, &modifiers); err != nil {
		return it, err
	}
	if unitPrice.Valid {
		it.UnitPrice = &unitPrice.Decimal
	}
	if len(modifiers) > 0 {
		_ = json.Unmarshal(modifiers, &it.Modifiers)
	}
	return it, nil
}

// ItemInput describes one order line for inserts and item replacement.
type ItemInput struct {
	ItemName  string
	Quantity  int
	UnitPrice *decimal.Decimal
	Modifiers map[string]any
}

type OrderInput struct {
	RestaurantID  string
	CallID        *string
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

type OrderUpdate struct {
	OrderType     models.OrderType
	PaymentMethod models.PaymentMethod
	Total         *decimal.Decimal
	Status        models.OrderStatus
	CustomerName  *string
	CustomerPhone *string
	Items         []ItemInput // nil leaves the item list untouched
}

func (s *Store) ListOrders(ctx context.Context, f OrderFilter, p Page) ([]models.Order, int, error) {
	query, args, err := f.apply(psql.Select(orderColumns...).From("orders")).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.offset()).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := f.apply(psql.Select("COUNT(*)").From("orders")).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := s.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if err := s.hydrateOrders(ctx, s.Pool, orders, true); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	orders := []models.Order{o}
	if err := s.hydrateOrders(ctx, s.Pool, orders, true); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *Store) CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		query, args, err := psql.Insert("orders").
			Columns("id", "call_id", "restaurant_id", "order_type", "payment_method",
				"subtotal", "tax", "tip", "total", "status",
				"customer_name", "customer_phone", "created_at").
			Values(id, in.CallID, in.RestaurantID, in.OrderType, in.PaymentMethod,
				in.Subtotal, in.Tax, in.Tip, in.Total, in.Status,
				in.CustomerName, in.CustomerPhone, now).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, in.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) UpdateOrder(ctx context.Context, id string, up OrderUpdate) (*models.Order, error) {
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		b := psql.Update("orders").
			Set("order_type", up.OrderType).
			Set("payment_method", up.PaymentMethod).
			Set("status", up.Status).
			Set("customer_name", up.CustomerName).
			Set("customer_phone", up.CustomerPhone).
			Where(sq.Eq{"id": id})
		if up.Total != nil {
			b = b.Set("total", *up.Total)
		}
		query, args, err := b.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if up.Items == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, up.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder cascades to the order's items.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LoadPlacedOrders returns every PLACED order matching the filter, with
// items attached, for the metrics rollups. No pagination on purpose.
func (s *Store) LoadPlacedOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	f.Status = string(models.StatusPlaced)
	query, args, err := f.apply(psql.Select(orderColumns...).From("orders")).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.hydrateOrders(ctx, s.Pool, orders, false); err != nil {
		return nil, err
	}
	return orders, nil
}

// hydrateOrders attaches items to each order, plus the restaurant and
// originating call when withRefs is set.
func (s *Store) hydrateOrders(ctx context.Context, q querier, orders []models.Order, withRefs bool) error {
	if len(orders) == 0 {
		return nil
	}
	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := s.itemsForOrders(ctx, q, orderIDs)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	if !withRefs {
		return nil
	}

	restaurantIDs := make([]string, 0, len(orders))
	callIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		restaurantIDs = append(restaurantIDs, o.RestaurantID)
		if o.CallID != nil {
			callIDs = append(callIDs, *o.CallID)
		}
	}
	restaurants, err := s.restaurantsByID(ctx, q, restaurantIDs)
	if err != nil {
		return err
	}
	calls, err := s.callsByID(ctx, q, callIDs)
	if err != nil {
		return err
	}
	for i := range orders {
		if r, ok := restaurants[orders[i].RestaurantID]; ok {
			restaurant := r
			orders[i].Restaurant = &restaurant
		}
		if orders[i].CallID != nil {
			if c, ok := calls[*orders[i].CallID]; ok {
				call := c
				orders[i].Call = &call
			}
		}
	}
	return nil
}

func (s *Store) itemsForOrders(ctx context.Context, q querier, orderIDs []string) (map[string][]models.OrderItem, error) {
	out := map[string][]models.OrderItem{}
	if len(orderIDs) == 0 {
		return out, nil
	}
	query, args, err := psql.Select("id", "order_id", "item_name", "quantity", "unit_price", "modifiers_json").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func insertItems(ctx context.Context, q querier, orderID string, items []ItemInput) error {
	if len(items) == 0 {
		return nil
	}
	b := psql.Insert("order_items").
		Columns("id", "order_id", "item_name", "quantity", "unit_price", "modifiers_json")
	for _, it := range items {
		var modifiers []byte
		if it.Modifiers != nil {
			var err error
			modifiers, err = json.Marshal(it.Modifiers)
			if err != nil {
				return err
			}
		}
		b = b.Values(uuid.NewString(), orderID, it.ItemName, it.Quantity, it.UnitPrice, modifiers)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, query, args...)
	return err
}
