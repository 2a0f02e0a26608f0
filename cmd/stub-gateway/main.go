package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/omg-dev-tech/workshop-eda/internal/config"
	"github.com/omg-dev-tech/workshop-eda/internal/domain"
	"github.com/omg-dev-tech/workshop-eda/internal/logger"
	"github.com/omg-dev-tech/workshop-eda/internal/stubgateway"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load[config.StubConfig]()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}

	store := stubgateway.NewStore()
	if cfg.Seed {
		seed(store)
	}

	addr := ":" + cfg.HTTPPort
	logger.Info("starting stub gateway", "addr", addr, "seeded", cfg.Seed)
	if err := http.ListenAndServe(addr, stubgateway.NewHandler(store).Router()); err != nil {
		logger.Warn("http server crashed", "err", err)
		os.Exit(1)
	}
}

// seed loads the workshop demo catalog so the dashboard has something to show.
func seed(store *stubgateway.Store) {
	items := []domain.InventoryItem{
		{SKU: "LAPTOP-001", ProductName: "노트북", Qty: 50},
		{SKU: "KEYBOARD-001", ProductName: "키보드", Qty: 200},
		{SKU: "MOUSE-001", ProductName: "마우스", Qty: 300},
	}
	for _, item := range items {
		if err := store.AddInventory(item); err != nil {
			logger.Warn("seed inventory failed", "sku", item.SKU, "err", err)
		}
	}

	orders := []domain.CreateOrderRequest{
		{CustomerID: "customer-001", Amount: 50000, Currency: "KRW", Items: []domain.OrderItem{{SKU: "LAPTOP-001", Qty: 1}}},
		{CustomerID: "customer-002", Amount: 120000, Currency: "KRW", Items: []domain.OrderItem{{SKU: "KEYBOARD-001", Qty: 2}}},
		{CustomerID: "customer-003", Amount: 9000, Currency: "KRW", Items: []domain.OrderItem{{SKU: "SOLD-OUT-001", Qty: 1}}},
	}
	for _, req := range orders {
		if _, err := store.CreateOrder(req); err != nil {
			logger.Warn("seed order failed", "customer", req.CustomerID, "err", err)
		}
	}
}
