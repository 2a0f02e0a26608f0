package stubgateway

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
	"github.com/omg-dev-tech/workshop-eda/internal/presentation/helpers"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Router builds the full gateway API surface. CORS is wide open because the
// web route and the gateway route live on different hosts.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	h.Register(r)
	return r
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/orders", h.listOrders)
	r.Post("/api/orders", h.createOrder)
	r.Post("/api/orders/{id}/retry", h.retryOrder)

	r.Get("/api/admin/orders", h.listOrders)
	r.Get("/api/admin/orders/{id}", h.getOrder)

	r.Get("/api/admin/inventory", h.listInventory)
	r.Post("/api/admin/inventory", h.addInventory)
	r.Get("/api/admin/inventory/{sku}", h.getInventoryItem)
	r.Put("/api/admin/inventory/{sku}", h.updateInventory)
	r.Delete("/api/admin/inventory/{sku}", h.deleteInventory)

	r.Get("/api/admin/fulfillments", h.listFulfillments)
	r.Get("/api/admin/fulfillments/{id}", h.getFulfillment)
	r.Put("/api/admin/fulfillments/{id}/ship", h.shipFulfillment)

	r.Get("/api/admin/analytics/events/count", h.eventCount)
	r.Get("/api/admin/analytics/summary", h.dailySummary)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.store.ListOrders())
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	id, err := h.store.CreateOrder(req)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, domain.CreateOrderResponse{OrderID: id})
}

func (h *Handler) retryOrder(w http.ResponseWriter, r *http.Request) {
	err := h.store.RetryOrder(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrNotFound):
		helpers.HttpError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, ErrNotRetryable):
		helpers.HttpError(w, http.StatusConflict, "order is not retryable")
	case err != nil:
		helpers.HttpError(w, http.StatusInternalServerError, err.Error())
	default:
		helpers.OK(w)
	}
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.store.ListInventory())
}

func (h *Handler) addInventory(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if err := helpers.DecodeJSON(r.Body, &item); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if item.SKU == "" {
		helpers.HttpError(w, http.StatusBadRequest, "sku is required")
		return
	}
	if err := h.store.AddInventory(item); err != nil {
		helpers.HttpError(w, http.StatusConflict, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) getInventoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.GetInventoryItem(chi.URLParam(r, "sku"))
	if err != nil {
		helpers.HttpError(w, http.StatusNotFound, "inventory item not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) updateInventory(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateInventoryRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.store.UpdateInventoryQty(chi.URLParam(r, "sku"), req.Qty); err != nil {
		helpers.HttpError(w, http.StatusNotFound, "inventory item not found")
		return
	}
	helpers.OK(w)
}

func (h *Handler) deleteInventory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteInventory(chi.URLParam(r, "sku")); err != nil {
		helpers.HttpError(w, http.StatusNotFound, "inventory item not found")
		return
	}
	helpers.OK(w)
}

func (h *Handler) listFulfillments(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.store.ListFulfillments())
}

func (h *Handler) getFulfillment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid fulfillment id")
		return
	}
	f, err := h.store.GetFulfillment(id)
	if err != nil {
		helpers.HttpError(w, http.StatusNotFound, "fulfillment not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) shipFulfillment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid fulfillment id")
		return
	}
	err = h.store.ShipFulfillment(id)
	switch {
	case errors.Is(err, ErrNotFound):
		helpers.HttpError(w, http.StatusNotFound, "fulfillment not found")
	case errors.Is(err, ErrNotScheduled):
		helpers.HttpError(w, http.StatusConflict, "fulfillment already shipped")
	case err != nil:
		helpers.HttpError(w, http.StatusInternalServerError, err.Error())
	default:
		helpers.OK(w)
	}
}

func (h *Handler) eventCount(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, domain.EventCount{Count: h.store.EventCount()})
}

func (h *Handler) dailySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	helpers.WriteJSON(w, http.StatusOK, h.store.DailySummary(date))
}
