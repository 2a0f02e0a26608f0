package presentation

import (
	"embed"
	"html/template"

	"github.com/omg-dev-tech/workshop-eda/internal/domain"
	"github.com/omg-dev-tech/workshop-eda/internal/lifecycle"
	"github.com/omg-dev-tech/workshop-eda/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// page is the data every view shares. Role travels with the data instead of
// living in a process-wide current-user variable.
type page struct {
	User  session.User
	Error string
}

type orderRow struct {
	ID         string
	CustomerID string
	P          lifecycle.Projection
}

// orderRows projects raw orders for rendering. ShowRetry is decided here so
// both screens use the same rule: admin role and a retryable status.
type ordersPage struct {
	page
	Rows    []orderRow
	IsAdmin bool
}

func newOrdersPage(u session.User, orders []domain.Order, errMsg string) ordersPage {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{ID: o.ID, CustomerID: o.CustomerID, P: lifecycle.Project(o)})
	}
	return ordersPage{
		page:    page{User: u, Error: errMsg},
		Rows:    rows,
		IsAdmin: u.Role == session.RoleAdmin,
	}
}

type inventoryPage struct {
	page
	Items []domain.InventoryItem
}

type fulfillmentRow struct {
	domain.Fulfillment
	ShortOrderID string
	CanShip      bool
}

type fulfillmentsPage struct {
	page
	Rows []fulfillmentRow
}

func newFulfillmentsPage(u session.User, fs []domain.Fulfillment, errMsg string) fulfillmentsPage {
	rows := make([]fulfillmentRow, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, fulfillmentRow{
			Fulfillment:  f,
			ShortOrderID: lifecycle.ShortID(f.OrderID),
			CanShip:      f.Status == domain.FulfillmentScheduled,
		})
	}
	return fulfillmentsPage{page: page{User: u, Error: errMsg}, Rows: rows}
}

type analyticsPage struct {
	page
	EventCount  string
	TodayOrders string
	TodayAmount string
}
