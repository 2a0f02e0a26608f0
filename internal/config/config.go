package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DashboardConfig configures cmd/dashboard. GatewayURL left empty means the
// base URL is derived from PublicHost (web- -> api-gateway- substitution).
type DashboardConfig struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"3000"`
	GatewayURL    string `env:"API_GATEWAY_URL"`
	PublicHost    string `env:"PUBLIC_HOST"`
	PublicScheme  string `env:"PUBLIC_SCHEME" envDefault:"https"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"workshop-demo-secret"`
}

// SmoketestConfig configures cmd/smoketest. API_GATEWAY_URL matches the
// variable the synthetic monitoring platform injects.
type SmoketestConfig struct {
	GatewayURL  string `env:"API_GATEWAY_URL" envDefault:"http://localhost:8080"`
	WaitSeconds int    `env:"WAIT_SECONDS" envDefault:"0"`
}

type StubConfig struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	Seed     bool   `env:"SEED_DEMO_DATA" envDefault:"true"`
}

func Load[T any]() (*T, error) {
	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
