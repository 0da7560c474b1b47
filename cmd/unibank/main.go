package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abaasith/unibank/infra/initializer"
	"github.com/abaasith/unibank/internal/cli"
	"github.com/abaasith/unibank/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	deps.Logger.Info(
		"starting terminal session",
		"store_dir", cfg.Store.Dir,
		"annual_interest_rate", cfg.Interest.AnnualRate,
	)

	terminal := cli.New(
		deps.Auth,
		deps.Ledger,
		deps.Customers,
		deps.Interest,
		os.Stdin,
		os.Stdout,
		deps.Logger,
	)
	return terminal.Run(context.Background())
}
