// pulseboard serves the customer-success dashboard API: a read-only customer
// list with filter/sort/paginate queries and per-customer health detail.
//
// The data set is an in-memory fixture loaded at startup; pass -seed-file to
// replace it with a JSON snapshot.
package main

import (
	"log"
	"os"

	"github.com/pulseboard/pulseboard/internal/admin"
	"github.com/pulseboard/pulseboard/internal/api"
	"github.com/pulseboard/pulseboard/internal/store"
	"github.com/pulseboard/pulseboard/pkg/pulsecore"
)

func main() {
	cfg := pulsecore.ParseFlags("pulseboard")
	if cfg.Port == 0 {
		cfg.Port = 8090
	}

	app := pulsecore.New(cfg)
	memStore := store.New()
	memStore.SeedDefaults()

	// API handlers
	apiHandler := api.NewHandler(memStore, app.Middleware())
	apiHandler.Routes(app.Router)

	// Admin control plane
	adminHandler := admin.NewHandler(memStore, app.Middleware(), memStore.Clock)
	adminHandler.SetConfigProvider(app)
	adminHandler.Routes(app.Router)

	// Replace the default fixture if a seed file is provided
	if cfg.SeedFile != "" {
		data, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to read seed file: %v", err)
		}
		if err := memStore.LoadState(data); err != nil {
			log.Fatalf("failed to load seed data: %v", err)
		}
		app.Logger.Info("loaded seed data", "file", cfg.SeedFile)
	}

	app.Logger.Info("pulseboard ready",
		"port", cfg.Port,
		"customers", memStore.Customers.Count(),
	)

	if err := app.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
