// Package main is the entry point for the retailcore API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailcore/internal/domain/auth"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/domain/inventory"
	"retailcore/internal/domain/ledger"
	"retailcore/internal/domain/purchases"
	"retailcore/internal/domain/reports"
	"retailcore/internal/domain/sales"
	"retailcore/internal/domain/users"
	v1 "retailcore/internal/infrastructure/http/v1"
	"retailcore/internal/infrastructure/http/v1/handlers"
	"retailcore/internal/infrastructure/storage/postgres"
	"retailcore/internal/infrastructure/storage/postgres/catalog_repo"
	"retailcore/internal/infrastructure/storage/postgres/document_repo"
	"retailcore/internal/infrastructure/storage/postgres/register_repo"
	"retailcore/internal/infrastructure/storage/postgres/report_repo"
	"retailcore/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting retailcore server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 25); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditLog, err := postgres.NewAuditLog(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit log", "error", err)
	}

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	userRepo := catalog_repo.NewUserRepo(txManager)
	ledgerRepo := register_repo.NewLedgerRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	orderRepo := document_repo.NewPurchaseOrderRepo(txManager)
	adjustmentRepo := document_repo.NewAdjustmentRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Services ---
	ledgerService := ledger.NewService(ledgerRepo)
	productService := product.NewService(productRepo)
	supplierService := supplier.NewService(supplierRepo)
	saleService := sales.NewService(saleRepo, ledgerService, txManager, auditLog)
	purchaseService := purchases.NewService(orderRepo, supplierRepo, productRepo, ledgerService, txManager, auditLog)
	inventoryService := inventory.NewService(adjustmentRepo, productRepo, ledgerService, txManager, auditLog)
	reportService := reports.NewService(reportRepo, txManager)
	userService := users.NewService(userRepo)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(userService, jwtService)

	// --- Router ---
	router := v1.NewRouter(log, jwtService, v1.Handlers{
		Health:        handlers.NewHealthHandler(pool.Pool),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUserHandler(userService),
		Products:      handlers.NewProductHandler(productService),
		Suppliers:     handlers.NewSupplierHandler(supplierService),
		Sales:         handlers.NewSaleHandler(saleService),
		PurchaseOrder: handlers.NewPurchaseOrderHandler(purchaseService),
		Inventory:     handlers.NewInventoryHandler(inventoryService),
		Reports:       handlers.NewReportsHandler(reportService),
		Audit:         handlers.NewAuditHandler(auditLog),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
