package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/omg-dev-tech/workshop-eda/internal/config"
	"github.com/omg-dev-tech/workshop-eda/internal/gateway"
	"github.com/omg-dev-tech/workshop-eda/internal/logger"
	"github.com/omg-dev-tech/workshop-eda/internal/presentation"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load[config.DashboardConfig]()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}

	baseURL := cfg.GatewayURL
	if baseURL == "" {
		baseURL = gateway.ResolveBaseURL(cfg.PublicScheme, cfg.PublicHost)
	}
	gw := gateway.NewClient(baseURL)
	logger.Info("gateway resolved", "base_url", gw.BaseURL())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewDashboardHandler(gw, cfg.SessionSecret)
	h.Register(r)

	addr := ":" + cfg.HTTPPort
	logger.Info("starting dashboard", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Warn("http server crashed", "err", err)
		os.Exit(1)
	}
}
