package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resto-analytics/backend/internal/models"
)

var callColumns = []string{
	"id", "restaurant_id", "started_at", "ended_at", "duration_seconds",
	"caller_phone", "caller_name", "transcript_text", "summary_text",
	"outcome", "recording_url", "is_recorded", "external_id", "created_at",
}

func scanCall(row scanner) (models.Call, error) {
	var c models.Call
	err := row.Scan(
		&c.ID, &c.RestaurantID, &c.StartedAt, &c.EndedAt, &c.DurationSeconds,
		&c.CallerPhone, &c.CallerName, &c.TranscriptText, &c.SummaryText,
		&c.Outcome, &c.RecordingURL, &c.IsRecorded, &c.ExternalID, &c.CreatedAt,
	)
	return c, err
}

type CallInput struct {
	RestaurantID   string
	StartedAt      time.Time
	EndedAt        time.Time
	CallerPhone    string
	CallerName     *string
	TranscriptText string
	SummaryText    *string
	Outcome        models.CallOutcome
	RecordingURL   *string
	IsRecorded     bool
}

type CallUpdate struct {
	CallerPhone    string
	CallerName     *string
	Outcome        models.CallOutcome
	TranscriptText string
	SummaryText    *string
}

func (s *Store) ListCalls(ctx context.Context, f CallFilter, p Page) ([]models.Call, int, error) {
	query, args, err := f.apply(psql.Select(callColumns...).From("calls")).
		OrderBy("started_at DESC").
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

	calls := []models.Call{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, 0, err
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := f.apply(psql.Select("COUNT(*)").From("calls")).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := s.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if err := s.hydrateCalls(ctx, s.Pool, calls); err != nil {
		return nil, 0, err
	}
	return calls, total, nil
}

func (s *Store) GetCall(ctx context.Context, id string) (*models.Call, error) {
	query, args, err := psql.Select(callColumns...).
		From("calls").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCall(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	calls := []models.Call{c}
	if err := s.hydrateCalls(ctx, s.Pool, calls); err != nil {
		return nil, err
	}
	return &calls[0], nil
}

func (s *Store) CreateCall(ctx context.Context, in CallInput) (*models.Call, error) {
	id := uuid.NewString()
	duration := int(in.EndedAt.Sub(in.StartedAt).Seconds())
	query, args, err := psql.Insert("calls").
		Columns("id", "restaurant_id", "started_at", "ended_at", "duration_seconds",
			"caller_phone", "caller_name", "transcript_text", "summary_text",
			"outcome", "recording_url", "is_recorded", "created_at").
		Values(id, in.RestaurantID, in.StartedAt, in.EndedAt, duration,
			in.CallerPhone, in.CallerName, in.TranscriptText, in.SummaryText,
			in.Outcome, in.RecordingURL, in.IsRecorded, time.Now().UTC()).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := s.Pool.Exec(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.GetCall(ctx, id)
}

func (s *Store) UpdateCall(ctx context.Context, id string, up CallUpdate) (*models.Call, error) {
	query, args, err := psql.Update("calls").
		Set("caller_phone", up.CallerPhone).
		Set("caller_name", up.CallerName).
		Set("outcome", up.Outcome).
		Set("transcript_text", up.TranscriptText).
		Set("summary_text", up.SummaryText).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return s.GetCall(ctx, id)
}

func (s *Store) DeleteCall(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM calls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LoadCalls returns every call matching the filter, unhydrated, for the
// metrics rollups.
func (s *Store) LoadCalls(ctx context.Context, f CallFilter) ([]models.Call, error) {
	query, args, err := f.apply(psql.Select(callColumns...).From("calls")).
		OrderBy("started_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calls := []models.Call{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// hydrateCalls attaches the owning restaurant and the call's orders
// (with items) to each call.
func (s *Store) hydrateCalls(ctx context.Context, q querier, calls []models.Call) error {
	if len(calls) == 0 {
		return nil
	}
	restaurantIDs := make([]string, 0, len(calls))
	callIDs := make([]string, 0, len(calls))
	for _, c := range calls {
		restaurantIDs = append(restaurantIDs, c.RestaurantID)
		callIDs = append(callIDs, c.ID)
	}
	restaurants, err := s.restaurantsByID(ctx, q, restaurantIDs)
	if err != nil {
		return err
	}
	orders, err := s.ordersForCalls(ctx, q, callIDs)
	if err != nil {
		return err
	}
	for i := range calls {
		if r, ok := restaurants[calls[i].RestaurantID]; ok {
			restaurant := r
			calls[i].Restaurant = &restaurant
		}
		calls[i].Orders = orders[calls[i].ID]
		if calls[i].Orders == nil {
			calls[i].Orders = []models.Order{}
		}
	}
	return nil
}

func (s *Store) callsByID(ctx context.Context, q querier, ids []string) (map[string]models.Call, error) {
	out := map[string]models.Call{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select(callColumns...).
		From("calls").
		Where(sq.Eq{"id": ids}).
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
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

func (s *Store) ordersForCalls(ctx context.Context, q querier, callIDs []string) (map[string][]models.Order, error) {
	out := map[string][]models.Order{}
	if len(callIDs) == 0 {
		return out, nil
	}
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"call_id": callIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
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
	if err := s.hydrateOrders(ctx, q, orders, false); err != nil {
		return nil, err
	}
	for _, o := range orders {
		out[*o.CallID] = append(out[*o.CallID], o)
	}
	return out, nil
}
