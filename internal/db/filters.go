package db

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with $n placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CallFilter narrows call queries. Empty string fields mean "no filter";
// the HTTP layer maps the literal value "all" to empty before it gets here.
type CallFilter struct {
	RestaurantID string
	Outcome      string
	From         *time.Time
	To           *time.Time
}

func (f CallFilter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.RestaurantID != "" {
		b = b.Where(sq.Eq{"restaurant_id": f.RestaurantID})
	}
	if f.Outcome != "" {
		b = b.Where(sq.Eq{"outcome": f.Outcome})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"started_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"started_at": *f.To})
	}
	return b
}

type OrderFilter struct {
	RestaurantID  string
	OrderType     string
	PaymentMethod string
	Status        string
	From          *time.Time
	To            *time.Time
}

func (f OrderFilter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.RestaurantID != "" {
		b = b.Where(sq.Eq{"restaurant_id": f.RestaurantID})
	}
	if f.OrderType != "" {
		b = b.Where(sq.Eq{"order_type": f.OrderType})
	}
	if f.PaymentMethod != "" {
		b = b.Where(sq.Eq{"payment_method": f.PaymentMethod})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"created_at": *f.To})
	}
	return b
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) offset() uint64 {
	return uint64((p.Page - 1) * p.Limit)
}

// TotalPages is ceil(total/limit); zero when the limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
