package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/router"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/repository/csvexport"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/retail-bank-ledger/internal/auth"
	"github.com/api-sage/retail-bank-ledger/internal/config"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	registry := ledger.NewRegistry(auth.BcryptVerifier{Cost: cfg.BcryptCost})
	engine := ledger.NewEngine(registry)

	var sinks []services.SnapshotSink
	if cfg.SnapshotDir != "" {
		sinks = append(sinks, csvexport.New(cfg.SnapshotDir))
	}
	if cfg.DatabaseDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			cancel()
			log.Fatalf("connect postgres: %v", err)
		}
		if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()
		defer db.Close()
		sinks = append(sinks, postgres.NewSnapshotRepository(db))
	}

	customerService := services.NewCustomerService(registry)
	accountService := services.NewAccountService(engine, sinks)
	transferService := services.NewTransferService(engine, sinks)

	mux := router.New(
		controller.NewCustomerController(customerService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	log.Printf("ledger server listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
