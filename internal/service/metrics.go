package service

import (
	"sort"
	"time"

	"github.com/resto-analytics/backend/internal/models"
)

// dateKeyFormat matches the dashboard's chart axis labels, e.g. "Jan 02".
const dateKeyFormat = "Jan 02"

const topItemsLimit = 10

type Rollup struct {
	Sales          float64            `json:"sales"`
	Orders         int                `json:"orders"`
	AvgTicket      float64            `json:"avgTicket"`
	TotalCalls     int                `json:"totalCalls"`
	CallMinutes    float64            `json:"callMinutes"`
	ConversionRate float64            `json:"conversionRate"`
	DailySales     []DailySales       `json:"dailySales"`
	DailyCalls     []DailyCalls       `json:"dailyCalls"`
	PaymentMethods []PaymentBreakdown `json:"paymentMethods"`
	TopItems       []TopItem          `json:"topItems"`
}

type DailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type DailyCalls struct {
	Date  string `json:"date"`
	Calls int    `json:"calls"`
}

type PaymentBreakdown struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

type TopItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ComputeRollup reduces a filtered set of PLACED orders (with items)
// and calls into the dashboard metrics object. Every ratio guards its
// zero denominator, so an empty range yields zeros rather than NaN.
func ComputeRollup(orders []models.Order, calls []models.Call) Rollup {
	r := Rollup{
		DailySales:     []DailySales{},
		DailyCalls:     []DailyCalls{},
		PaymentMethods: []PaymentBreakdown{},
		TopItems:       []TopItem{},
	}

	for _, o := range orders {
		r.Sales += o.Total.InexactFloat64()
	}
	r.Orders = len(orders)
	if r.Orders > 0 {
		r.AvgTicket = r.Sales / float64(r.Orders)
	}

	r.TotalCalls = len(calls)
	totalSeconds := 0
	converted := 0
	for _, c := range calls {
		totalSeconds += c.DurationSeconds
		if c.Outcome == models.OutcomeOrderPlaced {
			converted++
		}
	}
	r.CallMinutes = float64(totalSeconds) / 60
	if r.TotalCalls > 0 {
		r.ConversionRate = float64(converted) / float64(r.TotalCalls) * 100
	}

	r.DailySales = dailySalesSeries(orders)
	r.DailyCalls = dailyCallsSeries(calls)
	r.PaymentMethods = paymentBreakdown(orders)
	r.TopItems = topItems(orders)
	return r
}

// calendarDay is midnight of t's own calendar date. Truncate would cut
// on UTC epoch-day boundaries and misfile timestamps carrying an offset.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dailySalesSeries(orders []models.Order) []DailySales {
	type bucket struct {
		day    time.Time
		sales  float64
		orders int
	}
	byDay := map[string]*bucket{}
	for _, o := range orders {
		key := o.CreatedAt.Format(dateKeyFormat)
		b, ok := byDay[key]
		if !ok {
			b = &bucket{day: calendarDay(o.CreatedAt)}
			byDay[key] = b
		}
		b.sales += o.Total.InexactFloat64()
		b.orders++
	}

	buckets := make([]*bucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].day.Before(buckets[j].day) })

	out := make([]DailySales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DailySales{Date: b.day.Format(dateKeyFormat), Sales: b.sales, Orders: b.orders})
	}
	return out
}

func dailyCallsSeries(calls []models.Call) []DailyCalls {
	type bucket struct {
		day   time.Time
		calls int
	}
	byDay := map[string]*bucket{}
	for _, c := range calls {
		key := c.StartedAt.Format(dateKeyFormat)
		b, ok := byDay[key]
		if !ok {
			b = &bucket{day: calendarDay(c.StartedAt)}
			byDay[key] = b
		}
		b.calls++
	}

	buckets := make([]*bucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].day.Before(buckets[j].day) })

	out := make([]DailyCalls, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DailyCalls{Date: b.day.Format(dateKeyFormat), Calls: b.calls})
	}
	return out
}

// paymentBreakdown keeps methods in order of first appearance.
func paymentBreakdown(orders []models.Order) []PaymentBreakdown {
	index := map[models.PaymentMethod]int{}
	out := []PaymentBreakdown{}
	for _, o := range orders {
		i, ok := index[o.PaymentMethod]
		if !ok {
			i = len(out)
			index[o.PaymentMethod] = i
			out = append(out, PaymentBreakdown{Method: string(o.PaymentMethod)})
		}
		out[i].Count++
		out[i].Total += o.Total.InexactFloat64()
	}
	return out
}

// topItems ranks items by quantity sold. The sort is stable, so items
// with equal quantities keep their first-appearance order. Items with
// no unit price contribute zero revenue.
func topItems(orders []models.Order) []TopItem {
	index := map[string]int{}
	out := []TopItem{}
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.ItemName]
			if !ok {
				i = len(out)
				index[it.ItemName] = i
				out = append(out, TopItem{ItemName: it.ItemName})
			}
			out[i].Quantity += it.Quantity
			if it.UnitPrice != nil {
				out[i].Revenue += it.UnitPrice.InexactFloat64() * float64(it.Quantity)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > topItemsLimit {
		out = out[:topItemsLimit]
	}
	return out
}
