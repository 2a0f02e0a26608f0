package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/omg-dev-tech/workshop-eda/internal/config"
	"github.com/omg-dev-tech/workshop-eda/internal/monitor"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load[config.SmoketestConfig]()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(2)
	}

	ctx := context.Background()
	fmt.Printf("Synthetic API Test - Workshop EDA\n")
	fmt.Printf("Base URL: %s\n", cfg.GatewayURL)
	fmt.Printf("Start Time: %s\n", time.Now().UTC().Format(time.RFC3339))

	if cfg.WaitSeconds > 0 {
		if err := monitor.WaitReady(ctx, cfg.GatewayURL, time.Duration(cfg.WaitSeconds)*time.Second); err != nil {
			fmt.Fprintln(os.Stderr, "gateway never became ready:", err)
			os.Exit(1)
		}
	}

	runner := monitor.NewRunner(cfg.GatewayURL, os.Stdout)
	results := runner.Run(ctx, monitor.DefaultChecks())
	runner.Report(results)
	fmt.Printf("End Time: %s\n", time.Now().UTC().Format(time.RFC3339))

	if results.AnyFailed() {
		fmt.Printf("\n%d check(s) failed\n", results.Failed)
		os.Exit(1)
	}
	fmt.Println("\nAll API checks passed")
}
