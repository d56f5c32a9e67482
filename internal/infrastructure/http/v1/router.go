// Package v1 wires the REST API routes.
package v1

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/domain/users"
	"retailcore/internal/infrastructure/http/v1/handlers"
	"retailcore/internal/infrastructure/http/v1/middleware"
	"retailcore/pkg/logger"
)

// Handlers groups the handlers the router mounts.
type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Products      *handlers.ProductHandler
	Suppliers     *handlers.SupplierHandler
	Sales         *handlers.SaleHandler
	PurchaseOrder *handlers.PurchaseOrderHandler
	Inventory     *handlers.InventoryHandler
	Reports       *handlers.ReportsHandler
	Audit         *handlers.AuditHandler
}

// NewRouter builds the Gin engine with all routes and middleware.
func NewRouter(log *logger.Logger, validator middleware.TokenValidator, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Trace(log),
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	router.GET("/health", h.Health.Health)

	api := router.Group("/api/v1")

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(validator))

	adminOnly := middleware.RequireRole(users.RoleAdmin)
	anyRole := middleware.RequireRole(users.RoleAdmin, users.RoleCashier)

	products := authed.Group("/products")
	{
		products.GET("", anyRole, h.Products.List)
		products.GET("/:id", anyRole, h.Products.Get)
		products.POST("", adminOnly, h.Products.Create)
		products.PATCH("/:id", adminOnly, h.Products.Update)
		products.DELETE("/:id", adminOnly, h.Products.Delete)
	}

	suppliers := authed.Group("/suppliers", adminOnly)
	{
		suppliers.GET("", h.Suppliers.List)
		suppliers.GET("/:id", h.Suppliers.Get)
		suppliers.POST("", h.Suppliers.Create)
		suppliers.PATCH("/:id", h.Suppliers.Update)
		suppliers.DELETE("/:id", h.Suppliers.Delete)
	}

	sales := authed.Group("/sales", anyRole)
	{
		sales.POST("", h.Sales.Create)
		sales.GET("", h.Sales.List)
		sales.GET("/:id", h.Sales.Get)
	}

	orders := authed.Group("/purchase-orders", adminOnly)
	{
		orders.POST("", h.PurchaseOrder.Create)
		orders.GET("", h.PurchaseOrder.List)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.PATCH("/:id/receive", h.PurchaseOrder.Receive)
		orders.PATCH("/:id/cancel", h.PurchaseOrder.Cancel)
	}

	inventory := authed.Group("/inventory", adminOnly)
	{
		inventory.POST("/adjustments", h.Inventory.CreateAdjustment)
		inventory.GET("/adjustments", h.Inventory.List)
		inventory.GET("/adjustments/:id", h.Inventory.Get)
		inventory.GET("/products/:id/history", h.Inventory.ProductHistory)
	}

	reports := authed.Group("/reports", adminOnly)
	{
		reports.GET("/sales", h.Reports.Sales)
		reports.GET("/inventory", h.Reports.Inventory)
		reports.GET("/purchases", h.Reports.Purchases)
	}

	userRoutes := authed.Group("/users", adminOnly)
	{
		userRoutes.GET("", h.Users.List)
		userRoutes.GET("/:id", h.Users.Get)
		userRoutes.POST("", h.Users.Create)
		userRoutes.PATCH("/:id", h.Users.Update)
		userRoutes.DELETE("/:id", h.Users.Delete)
	}

	authed.GET("/audit", adminOnly, h.Audit.Recent)

	return router
}
