package presentation

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
	"github.com/omg-dev-tech/workshop-eda/internal/gateway"
	"github.com/omg-dev-tech/workshop-eda/internal/lifecycle"
	"github.com/omg-dev-tech/workshop-eda/internal/logger"
	"github.com/omg-dev-tech/workshop-eda/internal/session"
)

// Localized inline errors shown when a list load fails. A failed load never
// clobbers anything else on screen.
const (
	errLoadOrders       = "주문 목록을 불러올 수 없습니다."
	errLoadInventory    = "재고 목록을 불러올 수 없습니다."
	errLoadFulfillments = "배송 목록을 불러올 수 없습니다."
	errValue            = "오류"
)

type DashboardHandler struct {
	gw     *gateway.Client
	secret string
	tmpl   *template.Template
}

func NewDashboardHandler(gw *gateway.Client, secret string) *DashboardHandler {
	return &DashboardHandler{gw: gw, secret: secret, tmpl: parseTemplates()}
}

func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(h.secret))

		r.Get("/", h.home)
		r.Get("/orders", h.clientOrders)
		r.Post("/orders", h.createOrder)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/admin/orders", h.adminOrders)
			r.Post("/admin/orders/{id}/retry", h.retryOrder)
			r.Get("/admin/inventory", h.inventory)
			r.Post("/admin/inventory", h.addInventory)
			r.Post("/admin/inventory/{sku}/update", h.updateInventory)
			r.Post("/admin/inventory/{sku}/delete", h.deleteInventory)
			r.Get("/admin/fulfillments", h.fulfillments)
			r.Post("/admin/fulfillments/{id}/ship", h.shipFulfillment)
			r.Get("/admin/analytics", h.analytics)
		})
	})
}

// requireAdmin bounces non-admin sessions back to the client screen.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.FromContext(r.Context())
		if !ok || u.Role != session.RoleAdmin {
			http.Redirect(w, r, "/orders", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *DashboardHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Warn("render failed", "template", name, "err", err)
	}
}

func (h *DashboardHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", page{})
}

func (h *DashboardHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login", page{Error: "잘못된 요청입니다."})
		return
	}
	u, err := session.Authenticate(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.render(w, "login", page{Error: "아이디 또는 비밀번호가 올바르지 않습니다."})
		return
	}
	token, err := session.Issue(u, h.secret)
	if err != nil {
		logger.Warn("issue session failed", "err", err)
		h.render(w, "login", page{Error: errValue})
		return
	}
	session.SetCookie(w, token)
	if u.Role == session.RoleAdmin {
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *DashboardHandler) logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *DashboardHandler) home(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	if u.Role == session.RoleAdmin {
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// clientOrders shows the order form plus the 10 most recent orders.
func (h *DashboardHandler) clientOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	orders, err := h.gw.ListOrders(r.Context())
	if err != nil {
		logger.Warn("load orders failed", "err", err)
		h.render(w, "client_orders", newOrdersPage(u, nil, errLoadOrders))
		return
	}
	if len(orders) > 10 {
		orders = orders[:10]
	}
	h.render(w, "client_orders", newOrdersPage(u, orders, ""))
}

func (h *DashboardHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.render(w, "client_orders", newOrdersPage(u, nil, "잘못된 요청입니다."))
		return
	}
	amount, _ := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	qty, _ := strconv.Atoi(r.FormValue("qty"))

	req := domain.CreateOrderRequest{
		CustomerID: r.FormValue("customerId"),
		Amount:     amount,
		Currency:   "KRW",
		Items:      []domain.OrderItem{{SKU: r.FormValue("sku"), Qty: qty}},
	}
	if _, err := h.gw.CreateOrder(r.Context(), req); err != nil {
		logger.Warn("create order failed", "err", err)
		orders, _ := h.gw.ListOrders(r.Context())
		h.render(w, "client_orders", newOrdersPage(u, orders, "주문 생성에 실패했습니다."))
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *DashboardHandler) adminOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	orders, err := h.gw.ListOrders(r.Context())
	if err != nil {
		logger.Warn("load orders failed", "err", err)
		h.render(w, "admin_orders", newOrdersPage(u, nil, errLoadOrders))
		return
	}
	h.render(w, "admin_orders", newOrdersPage(u, orders, ""))
}

func (h *DashboardHandler) retryOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	if err := h.gw.RetryOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		logger.Warn("retry failed", "order", chi.URLParam(r, "id"), "err", err)
		orders, _ := h.gw.ListOrders(r.Context())
		h.render(w, "admin_orders", newOrdersPage(u, orders, "재처리에 실패했습니다."))
		return
	}
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

func (h *DashboardHandler) inventory(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	items, err := h.gw.ListInventory(r.Context())
	if err != nil {
		logger.Warn("load inventory failed", "err", err)
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: errLoadInventory}})
		return
	}
	h.render(w, "admin_inventory", inventoryPage{page: page{User: u}, Items: items})
}

func (h *DashboardHandler) addInventory(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: "잘못된 요청입니다."}})
		return
	}
	qty, _ := strconv.Atoi(r.FormValue("qty"))
	item := domain.InventoryItem{
		SKU:         r.FormValue("sku"),
		ProductName: r.FormValue("productName"),
		Qty:         qty,
	}
	if err := h.gw.AddInventory(r.Context(), item); err != nil {
		logger.Warn("add inventory failed", "sku", item.SKU, "err", err)
		items, _ := h.gw.ListInventory(r.Context())
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: "재고 추가에 실패했습니다."}, Items: items})
		return
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

func (h *DashboardHandler) updateInventory(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	sku := chi.URLParam(r, "sku")
	if err := r.ParseForm(); err != nil {
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: "잘못된 요청입니다."}})
		return
	}
	qty, _ := strconv.Atoi(r.FormValue("qty"))
	if err := h.gw.UpdateInventoryQty(r.Context(), sku, qty); err != nil {
		logger.Warn("update inventory failed", "sku", sku, "err", err)
		items, _ := h.gw.ListInventory(r.Context())
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: "재고 수정에 실패했습니다."}, Items: items})
		return
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

func (h *DashboardHandler) deleteInventory(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	sku := chi.URLParam(r, "sku")
	if err := h.gw.DeleteInventory(r.Context(), sku); err != nil {
		logger.Warn("delete inventory failed", "sku", sku, "err", err)
		items, _ := h.gw.ListInventory(r.Context())
		h.render(w, "admin_inventory", inventoryPage{page: page{User: u, Error: "재고 삭제에 실패했습니다."}, Items: items})
		return
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

func (h *DashboardHandler) fulfillments(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	fs, err := h.gw.ListFulfillments(r.Context())
	if err != nil {
		logger.Warn("load fulfillments failed", "err", err)
		h.render(w, "admin_fulfillments", newFulfillmentsPage(u, nil, errLoadFulfillments))
		return
	}
	h.render(w, "admin_fulfillments", newFulfillmentsPage(u, fs, ""))
}

func (h *DashboardHandler) shipFulfillment(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		err = h.gw.ShipFulfillment(r.Context(), id)
	}
	if err != nil {
		logger.Warn("ship failed", "id", chi.URLParam(r, "id"), "err", err)
		fs, _ := h.gw.ListFulfillments(r.Context())
		h.render(w, "admin_fulfillments", newFulfillmentsPage(u, fs, "배송 처리에 실패했습니다."))
		return
	}
	http.Redirect(w, r, "/admin/fulfillments", http.StatusSeeOther)
}

// analytics loads the two analytics widgets. Each value degrades to 오류
// independently, mirroring how the widgets fail one by one.
func (h *DashboardHandler) analytics(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context())
	data := analyticsPage{
		page:        page{User: u},
		EventCount:  errValue,
		TodayOrders: errValue,
		TodayAmount: errValue,
	}

	if ec, err := h.gw.EventCount(r.Context()); err == nil {
		data.EventCount = lifecycle.FormatCount(ec.Count)
	} else {
		logger.Warn("load event count failed", "err", err)
	}

	today := time.Now().Format("2006-01-02")
	if s, err := h.gw.DailySummary(r.Context(), today); err == nil {
		data.TodayOrders = lifecycle.FormatCount(s.TotalOrders)
		data.TodayAmount = lifecycle.FormatAmount(s.TotalAmount, "KRW")
	} else {
		logger.Warn("load summary failed", "date", today, "err", err)
	}
	h.render(w, "admin_analytics", data)
}
