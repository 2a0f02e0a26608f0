package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
	"github.com/omg-dev-tech/workshop-eda/internal/gateway"
)

// DefaultChecks is the fixed smoke sequence covering the admin API surface:
// list plus single-record fetch for orders, inventory and fulfillments, then
// the two analytics endpoints. Single-record checks chain off ids captured
// by the preceding list check and are skipped when the backend is empty.
func DefaultChecks() []Check {
	var orderID string
	var sku string
	var fulfillmentID int64
	var haveOrder, haveSKU, haveFulfillment bool

	return []Check{
		{
			Name:         "Order API - list",
			Method:       http.MethodGet,
			Path:         "/api/admin/orders",
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				orders, err := gateway.DecodeList[domain.Order](json.RawMessage(body))
				if err != nil {
					return fmt.Errorf("response should be a list: %w", err)
				}
				if len(orders) > 0 {
					orderID, haveOrder = orders[0].ID, true
				}
				return nil
			},
		},
		{
			Name:   "Order API - single",
			Method: http.MethodGet,
			PathFunc: func() (string, bool) {
				return "/api/admin/orders/" + url.PathEscape(orderID), !haveOrder
			},
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				var o domain.Order
				if err := json.Unmarshal(body, &o); err != nil {
					return fmt.Errorf("decode order: %w", err)
				}
				if o.ID != orderID {
					return fmt.Errorf("order id mismatch: got %q, want %q", o.ID, orderID)
				}
				return nil
			},
		},
		{
			Name:         "Inventory API - list",
			Method:       http.MethodGet,
			Path:         "/api/admin/inventory",
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				items, err := gateway.DecodeList[domain.InventoryItem](json.RawMessage(body))
				if err != nil {
					return fmt.Errorf("response should be a list: %w", err)
				}
				if len(items) > 0 {
					sku, haveSKU = items[0].SKU, true
				}
				return nil
			},
		},
		{
			Name:   "Inventory API - single",
			Method: http.MethodGet,
			PathFunc: func() (string, bool) {
				return "/api/admin/inventory/" + url.PathEscape(sku), !haveSKU
			},
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				var item domain.InventoryItem
				if err := json.Unmarshal(body, &item); err != nil {
					return fmt.Errorf("decode inventory item: %w", err)
				}
				if item.SKU != sku {
					return fmt.Errorf("sku mismatch: got %q, want %q", item.SKU, sku)
				}
				return nil
			},
		},
		{
			Name:         "Fulfillment API - list",
			Method:       http.MethodGet,
			Path:         "/api/admin/fulfillments",
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				fs, err := gateway.DecodeList[domain.Fulfillment](json.RawMessage(body))
				if err != nil {
					return fmt.Errorf("response should be a list: %w", err)
				}
				if len(fs) > 0 {
					fulfillmentID, haveFulfillment = fs[0].ID, true
				}
				return nil
			},
		},
		{
			Name:   "Fulfillment API - single",
			Method: http.MethodGet,
			PathFunc: func() (string, bool) {
				return "/api/admin/fulfillments/" + strconv.FormatInt(fulfillmentID, 10), !haveFulfillment
			},
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				var f domain.Fulfillment
				if err := json.Unmarshal(body, &f); err != nil {
					return fmt.Errorf("decode fulfillment: %w", err)
				}
				if f.ID != fulfillmentID {
					return fmt.Errorf("fulfillment id mismatch: got %d, want %d", f.ID, fulfillmentID)
				}
				return nil
			},
		},
		{
			Name:         "Analytics API - event count",
			Method:       http.MethodGet,
			Path:         "/api/admin/analytics/events/count",
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				var ec domain.EventCount
				if err := json.Unmarshal(body, &ec); err != nil {
					return fmt.Errorf("decode event count: %w", err)
				}
				if ec.Count < 0 {
					return fmt.Errorf("count should be non-negative, got %d", ec.Count)
				}
				return nil
			},
		},
		{
			Name:         "Analytics API - daily summary",
			Method:       http.MethodGet,
			Path:         "/api/admin/analytics/summary?date=" + time.Now().Format("2006-01-02"),
			ExpectStatus: http.StatusOK,
			Validate: func(body []byte) error {
				var s domain.DailySummary
				if err := json.Unmarshal(body, &s); err != nil {
					return fmt.Errorf("decode summary: %w", err)
				}
				return nil
			},
		},
	}
}
