package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resto-analytics/backend/internal/models"
)

var restaurantColumns = []string{"id", "name", "brand", "phone", "timezone", "external_id", "created_at"}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row scanner) (models.Restaurant, error) {
	var r models.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Brand, &r.Phone, &r.Timezone, &r.ExternalID, &r.CreatedAt)
	return r, err
}

func (s *Store) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	query, args, err := psql.Select(restaurantColumns...).
		From("restaurants").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	query, args, err := psql.Select(restaurantColumns...).
		From("restaurants").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	r, err := scanRestaurant(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, name string, brand, phone *string) (*models.Restaurant, error) {
	r := models.Restaurant{
		ID:        uuid.NewString(),
		Name:      name,
		Brand:     brand,
		Phone:     phone,
		Timezone:  models.DefaultTimezone,
		CreatedAt: time.Now().UTC(),
	}
	query, args, err := psql.Insert("restaurants").
		Columns("id", "name", "brand", "phone", "timezone", "created_at").
		Values(r.ID, r.Name, r.Brand, r.Phone, r.Timezone, r.CreatedAt).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := s.Pool.Exec(ctx, query, args...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) UpdateRestaurant(ctx context.Context, id, name string, brand *string) (*models.Restaurant, error) {
	query, args, err := psql.Update("restaurants").
		Set("name", name).
		Set("brand", brand).
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
	return s.GetRestaurant(ctx, id)
}

// DeleteRestaurant cascades to the restaurant's calls and orders.
func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) restaurantsByID(ctx context.Context, q querier, ids []string) (map[string]models.Restaurant, error) {
	out := map[string]models.Restaurant{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select(restaurantColumns...).
		From("restaurants").
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
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out[r.ID] = r
	}
	return out, rows.Err()
}
