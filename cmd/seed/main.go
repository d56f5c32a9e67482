// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"retailcore/internal/core/types"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/domain/users"
	"retailcore/internal/infrastructure/storage/postgres"
	"retailcore/internal/infrastructure/storage/postgres/catalog_repo"
	"retailcore/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	userService := users.NewService(catalog_repo.NewUserRepo(txManager))

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@retailcore.local")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "changeme-now")

	if _, err := userService.GetByEmail(ctx, adminEmail); err == nil {
		log.Infow("admin user already exists", "email", adminEmail)
	} else {
		admin, err := userService.Create(ctx, users.CreateInput{
			Name:     "Administrator",
			Email:    adminEmail,
			Password: adminPassword,
			Role:     users.RoleAdmin,
		})
		if err != nil {
			log.Fatalw("failed to seed admin user", "error", err)
		}
		log.Infow("admin user created", "user_id", admin.ID, "email", adminEmail)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	productService := product.NewService(catalog_repo.NewProductRepo(txManager))
	supplierService := supplier.NewService(catalog_repo.NewSupplierRepo(txManager))

	demoProducts := []product.CreateInput{
		{Name: "Laptop", SKU: "LAP-001", Price: types.MustMoney("999.99"), Stock: 50},
		{Name: "Wireless Mouse", SKU: "MOU-001", Price: types.MustMoney("19.99"), Stock: 200},
		{Name: "Mechanical Keyboard", SKU: "KEY-001", Price: types.MustMoney("89.99"), Stock: 75},
		{Name: "USB-C Cable", SKU: "CAB-001", Price: types.MustMoney("9.99"), Stock: 8},
	}
	for _, input := range demoProducts {
		p, err := productService.Create(ctx, input)
		if err != nil {
			log.Warnw("skipping product", "sku", input.SKU, "error", err)
			continue
		}
		log.Infow("product seeded", "sku", p.SKU, "stock", p.Stock)
	}

	demoSuppliers := []supplier.CreateInput{
		{
			Name:         "Acme Wholesale",
			ContactName:  "Jordan Lee",
			ContactEmail: "jordan@acme-wholesale.example",
			ContactPhone: "+1-555-0100",
			Address:      "100 Warehouse Rd",
		},
		{
			Name:         "Global Components",
			ContactName:  "Sam Ortiz",
			ContactEmail: "sam@globalcomponents.example",
			ContactPhone: "+1-555-0101",
			Address:      "42 Industry Ave",
		},
	}
	for _, input := range demoSuppliers {
		s, err := supplierService.Create(ctx, input)
		if err != nil {
			log.Warnw("skipping supplier", "name", input.Name, "error", err)
			continue
		}
		log.Infow("supplier seeded", "name", s.Name)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
