package stubgateway

import (
	"errors"
	"testing"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := s.AddInventory(domain.InventoryItem{SKU: "LAPTOP-001", ProductName: "Laptop", Qty: 5}); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return s
}

func createOrder(t *testing.T, s *Store, qty int) string {
	t.Helper()
	id, err := s.CreateOrder(domain.CreateOrderRequest{
		CustomerID: "customer-001",
		Amount:     50000,
		Currency:   "KRW",
		Items:      []domain.OrderItem{{SKU: "LAPTOP-001", Qty: qty}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return id
}

func TestCreateOrderCompletes(t *testing.T) {
	s := seedStore(t)
	id := createOrder(t, s, 2)

	o, err := s.GetOrder(id)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if o.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want COMPLETED", o.Status)
	}
	if o.CreatedAt == "" {
		t.Error("createdAt should be set")
	}

	items := s.ListInventory()
	if len(items) != 1 || items[0].Qty != 3 {
		t.Errorf("inventory after order: %+v, want qty 3", items)
	}

	fs := s.ListFulfillments()
	if len(fs) != 1 || fs[0].Status != domain.FulfillmentScheduled || fs[0].OrderID != id {
		t.Errorf("fulfillments = %+v, want one SCHEDULED for %s", fs, id)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	s := seedStore(t)
	id := createOrder(t, s, 10)

	o, _ := s.GetOrder(id)
	if o.Status != domain.StatusInventoryRejected {
		t.Errorf("status = %q, want INVENTORY_REJECTED", o.Status)
	}
	if items := s.ListInventory(); items[0].Qty != 5 {
		t.Errorf("rejected order must not consume stock, qty = %d", items[0].Qty)
	}
	if len(s.ListFulfillments()) != 0 {
		t.Error("rejected order must not schedule a fulfillment")
	}
}

func TestPaymentFailureReleasesStock(t *testing.T) {
	s := seedStore(t)
	s.PaymentFails = func(o *domain.Order) bool { return true }
	id := createOrder(t, s, 2)

	o, _ := s.GetOrder(id)
	if o.Status != domain.StatusPaymentFailed {
		t.Errorf("status = %q, want PAYMENT_FAILED", o.Status)
	}
	if items := s.ListInventory(); items[0].Qty != 5 {
		t.Errorf("stock not released: qty = %d, want 5", items[0].Qty)
	}
}

func TestRetryAfterRestock(t *testing.T) {
	s := seedStore(t)
	id := createOrder(t, s, 10) // rejected, only 5 in stock

	if err := s.UpdateInventoryQty("LAPTOP-001", 20); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if err := s.RetryOrder(id); err != nil {
		t.Fatalf("RetryOrder: %v", err)
	}

	o, _ := s.GetOrder(id)
	if o.Status != domain.StatusCompleted {
		t.Errorf("status after retry = %q, want COMPLETED", o.Status)
	}
	if items := s.ListInventory(); items[0].Qty != 10 {
		t.Errorf("qty after retry = %d, want 10", items[0].Qty)
	}
}

func TestRetryAfterPaymentFailure(t *testing.T) {
	s := seedStore(t)
	s.PaymentFails = func(o *domain.Order) bool { return true }
	id := createOrder(t, s, 1)

	s.PaymentFails = nil
	if err := s.RetryOrder(id); err != nil {
		t.Fatalf("RetryOrder: %v", err)
	}
	o, _ := s.GetOrder(id)
	if o.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want COMPLETED", o.Status)
	}
}

func TestRetryTerminalOrderRejected(t *testing.T) {
	s := seedStore(t)
	id := createOrder(t, s, 1) // completes

	if err := s.RetryOrder(id); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("retry of COMPLETED: err = %v, want ErrNotRetryable", err)
	}
	if err := s.RetryOrder("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("retry of missing: err = %v, want ErrNotFound", err)
	}
}

func TestInventoryCRUD(t *testing.T) {
	s := NewStore()

	if err := s.AddInventory(domain.InventoryItem{SKU: "A", ProductName: "a", Qty: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddInventory(domain.InventoryItem{SKU: "A", ProductName: "dup", Qty: 2}); !errors.Is(err, ErrDuplicateSKU) {
		t.Errorf("duplicate add: err = %v, want ErrDuplicateSKU", err)
	}

	item, err := s.GetInventoryItem("A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Stock != 1 {
		t.Errorf("single-item stock = %d, want 1", item.Stock)
	}

	if err := s.UpdateInventoryQty("A", 9); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.ListInventory()[0].Qty; got != 9 {
		t.Errorf("qty = %d, want 9 (full replace)", got)
	}

	if err := s.DeleteInventory("A"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteInventory("A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestShipFulfillment(t *testing.T) {
	s := seedStore(t)
	createOrder(t, s, 1)

	fs := s.ListFulfillments()
	if len(fs) != 1 {
		t.Fatalf("fulfillments = %d, want 1", len(fs))
	}
	if err := s.ShipFulfillment(fs[0].ID); err != nil {
		t.Fatalf("ship: %v", err)
	}

	f, _ := s.GetFulfillment(fs[0].ID)
	if f.Status != domain.FulfillmentShipped {
		t.Errorf("status = %q, want SHIPPED", f.Status)
	}
	if f.ShippingID == "" {
		t.Error("shipping id should be assigned")
	}

	if err := s.ShipFulfillment(fs[0].ID); !errors.Is(err, ErrNotScheduled) {
		t.Errorf("second ship: err = %v, want ErrNotScheduled", err)
	}
	if err := s.ShipFulfillment(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing ship: err = %v, want ErrNotFound", err)
	}
}

func TestAnalyticsCounters(t *testing.T) {
	s := seedStore(t)
	if s.EventCount() != 1 { // inventory add
		t.Fatalf("event count = %d, want 1", s.EventCount())
	}
	createOrder(t, s, 1)
	if s.EventCount() <= 1 {
		t.Error("order flow should publish events")
	}

	day := s.now().UTC().Format("2006-01-02")
	summary := s.DailySummary(day)
	if summary.TotalOrders != 1 || summary.TotalAmount != 50000 {
		t.Errorf("summary = %+v, want 1 order / 50000", summary)
	}
	empty := s.DailySummary("1999-01-01")
	if empty.TotalOrders != 0 || empty.TotalAmount != 0 {
		t.Errorf("empty day summary = %+v", empty)
	}
}
