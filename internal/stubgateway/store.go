// Package stubgateway emulates the order-processing backend behind the API
// gateway for local development and end-to-end tests. The real pipeline is
// event-driven across services; here the whole flow runs synchronously
// in memory, but it obeys the same state machine.
package stubgateway

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotRetryable  = errors.New("order is not retryable")
	ErrNotScheduled  = errors.New("fulfillment is not in SCHEDULED state")
	ErrDuplicateSKU  = errors.New("sku already exists")
	ErrInvalidOrder  = errors.New("order must have a customer and at least one item")
	ErrBadTransition = errors.New("illegal status transition")
)

type dailyTotals struct {
	orders int64
	amount int64
}

type Store struct {
	mu           sync.RWMutex
	orders       map[string]*domain.Order
	orderItems   map[string][]domain.OrderItem
	inventory    map[string]*domain.InventoryItem
	fulfillments map[int64]*domain.Fulfillment
	nextFID      int64
	eventCount   int64
	daily        map[string]*dailyTotals

	// PaymentFails decides whether payment is rejected for an order.
	// Nil means payment always succeeds. Tests install deterministic hooks.
	PaymentFails func(o *domain.Order) bool

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		orders:       make(map[string]*domain.Order),
		orderItems:   make(map[string][]domain.OrderItem),
		inventory:    make(map[string]*domain.InventoryItem),
		fulfillments: make(map[int64]*domain.Fulfillment),
		daily:        make(map[string]*dailyTotals),
		now:          time.Now,
	}
}

// event bumps the analytics counter. Every pipeline hop publishes one event,
// matching what the analytics service would consume off the bus.
func (s *Store) event() { s.eventCount++ }

// transition moves an order along the state machine, refusing moves the
// model does not allow.
func (s *Store) transition(o *domain.Order, to domain.Status) error {
	if !domain.CanTransition(o.Status, to) {
		return ErrBadTransition
	}
	o.Status = to
	s.event()
	return nil
}

// CreateOrder registers a new order and synchronously drives it through
// inventory reservation and payment.
func (s *Store) CreateOrder(req domain.CreateOrderRequest) (string, error) {
	if req.CustomerID == "" || len(req.Items) == 0 {
		return "", ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	o := &domain.Order{
		ID:         uuid.NewString(),
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Status:     domain.StatusPending,
		CreatedAt:  now.Format(time.RFC3339),
	}
	s.orders[o.ID] = o
	s.orderItems[o.ID] = req.Items
	s.event() // OrderCreated

	day := now.Format("2006-01-02")
	if s.daily[day] == nil {
		s.daily[day] = &dailyTotals{}
	}
	s.daily[day].orders++
	s.daily[day].amount += o.Amount

	s.process(o)
	return o.ID, nil
}

// process runs one reservation/payment pass from PENDING.
func (s *Store) process(o *domain.Order) {
	items := s.orderItems[o.ID]

	for _, it := range items {
		inv, ok := s.inventory[it.SKU]
		if !ok || inv.Qty < it.Qty {
			_ = s.transition(o, domain.StatusInventoryRejected)
			return
		}
	}
	for _, it := range items {
		s.inventory[it.SKU].Qty -= it.Qty
	}
	_ = s.transition(o, domain.StatusInventoryReserved)

	if s.PaymentFails != nil && s.PaymentFails(o) {
		// Release the reservation so a retry can claim stock again.
		for _, it := range items {
			if inv, ok := s.inventory[it.SKU]; ok {
				inv.Qty += it.Qty
			}
		}
		_ = s.transition(o, domain.StatusPaymentFailed)
		return
	}
	_ = s.transition(o, domain.StatusCompleted)

	s.nextFID++
	s.fulfillments[s.nextFID] = &domain.Fulfillment{
		ID:      s.nextFID,
		OrderID: o.ID,
		Status:  domain.FulfillmentScheduled,
	}
	s.event() // FulfillmentScheduled
}

// RetryOrder re-drives a retryable order from PENDING.
func (s *Store) RetryOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return ErrNotFound
	}
	switch o.Status {
	case domain.StatusInventoryRejected, domain.StatusPaymentFailed:
		if err := s.transition(o, domain.StatusPending); err != nil {
			return err
		}
	case domain.StatusPending, domain.StatusInventoryReserved:
		// Already in flight; a retry re-runs processing from where it is.
		if o.Status == domain.StatusInventoryReserved {
			// Release and start over.
			for _, it := range s.orderItems[o.ID] {
				if inv, ok := s.inventory[it.SKU]; ok {
					inv.Qty += it.Qty
				}
			}
			o.Status = domain.StatusPending
			s.event()
		}
	default:
		return ErrNotRetryable
	}
	s.process(o)
	return nil
}

// ListOrders returns orders newest first.
func (s *Store) ListOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) GetOrder(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return *o, nil
}

func (s *Store) AddInventory(item domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.inventory[item.SKU]; exists {
		return ErrDuplicateSKU
	}
	s.inventory[item.SKU] = &domain.InventoryItem{SKU: item.SKU, ProductName: item.ProductName, Qty: item.Qty}
	s.event()
	return nil
}

// UpdateInventoryQty replaces the quantity. Last write wins.
func (s *Store) UpdateInventoryQty(sku string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.inventory[sku]
	if !ok {
		return ErrNotFound
	}
	item.Qty = qty
	s.event()
	return nil
}

func (s *Store) DeleteInventory(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inventory[sku]; !ok {
		return ErrNotFound
	}
	delete(s.inventory, sku)
	s.event()
	return nil
}

func (s *Store) ListInventory() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

func (s *Store) GetInventoryItem(sku string) (domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.inventory[sku]
	if !ok {
		return domain.InventoryItem{}, ErrNotFound
	}
	// The single-item endpoint reports quantity as "stock".
	return domain.InventoryItem{SKU: item.SKU, ProductName: item.ProductName, Qty: item.Qty, Stock: item.Qty}, nil
}

func (s *Store) ListFulfillments() []domain.Fulfillment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Fulfillment, 0, len(s.fulfillments))
	for _, f := range s.fulfillments {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetFulfillment(id int64) (domain.Fulfillment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fulfillments[id]
	if !ok {
		return domain.Fulfillment{}, ErrNotFound
	}
	return *f, nil
}

// ShipFulfillment marks a SCHEDULED fulfillment as shipped and assigns a
// shipping id.
func (s *Store) ShipFulfillment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fulfillments[id]
	if !ok {
		return ErrNotFound
	}
	if f.Status != domain.FulfillmentScheduled {
		return ErrNotScheduled
	}
	f.Status = domain.FulfillmentShipped
	f.ShippingID = "SHIP-" + uuid.NewString()[:8]
	s.event()
	return nil
}

func (s *Store) EventCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventCount
}

func (s *Store) DailySummary(date string) domain.DailySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := domain.DailySummary{Date: date}
	if d := s.daily[date]; d != nil {
		summary.TotalOrders = d.orders
		summary.TotalAmount = d.amount
	}
	return summary
}
