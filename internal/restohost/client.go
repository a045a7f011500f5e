package restohost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a thin wrapper over the RestoHost tenant API. The bearer
// token is passed per call rather than stored on the client, so one
// client instance serves every request.
type Client struct {
	BaseURL  string
	TenantID string
	HTTP     *http.Client
}

func NewClient(baseURL, tenantID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		TenantID: tenantID,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, token, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/tenants/%s%s", c.BaseURL, c.TenantID, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("restohost api error: %d - %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type CallListParams struct {
	Page     int
	PageSize int
	Status   string
	Outcome  string
}

func (c *Client) ListCalls(ctx context.Context, token string, p CallListParams) (*CallListResponse, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Status != "" {
		q.Set("status_filter", p.Status)
	}
	if p.Outcome != "" {
		q.Set("outcome", p.Outcome)
	}
	var out CallListResponse
	if err := c.get(ctx, token, "/calls", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type OrderListParams struct {
	Page     int
	PageSize int
	Status   string
}

func (c *Client) ListOrders(ctx context.Context, token string, p OrderListParams) (*OrderListResponse, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Status != "" {
		q.Set("status_filter", p.Status)
	}
	var out OrderListResponse
	if err := c.get(ctx, token, "/orders", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ReservationListParams struct {
	Page     int
	PageSize int
	Status   string
	Date     string
}

func (c *Client) ListReservations(ctx context.Context, token string, p ReservationListParams) (*ReservationListResponse, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Status != "" {
		q.Set("status_filter", p.Status)
	}
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	var out ReservationListResponse
	if err := c.get(ctx, token, "/reservations", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type MenuListParams struct {
	Category string
	IsActive *bool
}

func (c *Client) ListMenuItems(ctx context.Context, token string, p MenuListParams) ([]MenuItem, error) {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*p.IsActive))
	}
	var out []MenuItem
	if err := c.get(ctx, token, "/menu_items", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCallStats(ctx context.Context, token string) (*CallStats, error) {
	var out CallStats
	if err := c.get(ctx, token, "/calls/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrderStats(ctx context.Context, token string) (*OrderStats, error) {
	var out OrderStats
	if err := c.get(ctx, token, "/orders/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReservationStats(ctx context.Context, token string) (*ReservationStats, error) {
	var out ReservationStats
	if err := c.get(ctx, token, "/reservations/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
