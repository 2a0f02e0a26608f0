// Package gateway is the HTTP client for the external order-processing
// backend. Paths and methods mirror the gateway API exactly; nothing here
// interprets order state, that belongs to the lifecycle package.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
)

type Client struct {
	baseURL string
	client  *http.Client
}

// StatusError is returned when the gateway answers with an unexpected
// HTTP status. Body is truncated, for diagnostics only.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d, body: %s", e.Code, e.Body)
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL reports the gateway address this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// listPage is the paginated wrapper some gateway deployments return for
// list endpoints. Both the wrapper and a raw array are valid shapes.
type listPage struct {
	Content       json.RawMessage `json:"content"`
	TotalElements int64           `json:"totalElements"`
}

// DecodeList normalizes a list response: either a raw JSON array or a
// {content: [...], totalElements} page. Both shapes are produced by real
// gateway deployments.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var page listPage
	if err := json.Unmarshal(raw, &page); err != nil || page.Content == nil {
		return nil, fmt.Errorf("response is neither an array nor a page")
	}
	if err := json.Unmarshal(page.Content, &items); err != nil {
		return nil, fmt.Errorf("decode page content: %w", err)
	}
	return items, nil
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[T](raw)
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return list[domain.Order](ctx, c, "/api/orders")
}

// ListAdminOrders hits the unfiltered admin listing used by the synthetic
// checks. Same record shape as ListOrders.
func (c *Client) ListAdminOrders(ctx context.Context) ([]domain.Order, error) {
	return list[domain.Order](ctx, c, "/api/admin/orders")
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	var resp domain.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RetryOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/retry", nil, nil)
}

func (c *Client) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return list[domain.InventoryItem](ctx, c, "/api/admin/inventory")
}

func (c *Client) GetInventoryItem(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/admin/inventory/"+url.PathEscape(sku), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) AddInventory(ctx context.Context, item domain.InventoryItem) error {
	return c.do(ctx, http.MethodPost, "/api/admin/inventory", item, nil)
}

func (c *Client) UpdateInventoryQty(ctx context.Context, sku string, qty int) error {
	return c.do(ctx, http.MethodPut, "/api/admin/inventory/"+url.PathEscape(sku), domain.UpdateInventoryRequest{Qty: qty}, nil)
}

func (c *Client) DeleteInventory(ctx context.Context, sku string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/inventory/"+url.PathEscape(sku), nil, nil)
}

func (c *Client) ListFulfillments(ctx context.Context) ([]domain.Fulfillment, error) {
	return list[domain.Fulfillment](ctx, c, "/api/admin/fulfillments")
}

func (c *Client) GetFulfillment(ctx context.Context, id int64) (*domain.Fulfillment, error) {
	var f domain.Fulfillment
	if err := c.do(ctx, http.MethodGet, "/api/admin/fulfillments/"+strconv.FormatInt(id, 10), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) ShipFulfillment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/api/admin/fulfillments/"+strconv.FormatInt(id, 10)+"/ship", nil, nil)
}

func (c *Client) EventCount(ctx context.Context) (*domain.EventCount, error) {
	var ec domain.EventCount
	if err := c.do(ctx, http.MethodGet, "/api/admin/analytics/events/count", nil, &ec); err != nil {
		return nil, err
	}
	return &ec, nil
}

// DailySummary fetches order totals for one day. date is YYYY-MM-DD.
func (c *Client) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	var s domain.DailySummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/analytics/summary?date="+url.QueryEscape(date), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
