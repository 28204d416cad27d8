// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appctx "dukapos/internal/core/context"
	"dukapos/internal/domain/auth"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/internal/domain/catalogs/supplier"
	"dukapos/internal/domain/documents/expense"
	"dukapos/internal/domain/documents/sale"
	"dukapos/internal/domain/pricing"
	"dukapos/internal/domain/restock"
	"dukapos/internal/infrastructure/http/v1/handlers"
	"dukapos/internal/infrastructure/http/v1/middleware"
	"dukapos/internal/infrastructure/storage/postgres"
	"dukapos/internal/infrastructure/storage/postgres/catalog_repo"
	"dukapos/internal/infrastructure/storage/postgres/document_repo"
	"dukapos/internal/infrastructure/storage/postgres/pricing_repo"
	"dukapos/pkg/logger"
	pgsequence "dukapos/pkg/sequence"
)

// RouterConfig holds everything the router needs to wire handlers.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// AuthService also acts as the JWT validator for the auth middleware.
	AuthService *auth.Service

	// ActivityLog records sale, restock and login events. May be nil.
	ActivityLog *postgres.ActivityLog

	// Version is reported by /health/info.
	Version string

	// CookieMaxAge is the access token cookie lifetime in seconds.
	CookieMaxAge int
	CookieSecure bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Operational endpoints (no auth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share the one transaction manager so coordinated
	// flows (restock, sales) run their writes in a single transaction.
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	expenseRepo := document_repo.NewExpenseRepo(cfg.TxManager)
	saleRepo := document_repo.NewSaleRepo(cfg.TxManager)
	priceRepo := pricing_repo.NewPriceRecordRepo(cfg.TxManager)

	numbers := pgsequence.NewGenerator(pgsequence.NewCounter(cfg.Pool))

	productService := product.NewService(productRepo, cfg.TxManager)
	supplierService := supplier.NewService(supplierRepo, cfg.TxManager)
	expenseService := expense.NewService(expenseRepo, cfg.TxManager)
	saleService := sale.NewService(saleRepo, productRepo, numbers, cfg.TxManager)
	pricingService := pricing.NewService(priceRepo, productRepo)
	restockService := restock.NewService(productRepo, supplierService, expenseRepo, priceRepo, cfg.TxManager)

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService, cfg.ActivityLog, cfg.CookieMaxAge, cfg.CookieSecure)
	productHandler := handlers.NewProductHandler(base, productService, pricingService)
	supplierHandler := handlers.NewSupplierHandler(base, supplierService)
	expenseHandler := handlers.NewExpenseHandler(base, expenseService)
	saleHandler := handlers.NewSaleHandler(base, saleService, cfg.ActivityLog)
	stockHandler := handlers.NewStockHandler(base, restockService, cfg.ActivityLog)

	apiV1 := router.Group("/api/v1")
	{
		// Login is public. Register is public so the first user can
		// bootstrap the system, but the handler requires an admin once
		// any user exists; optionalAuth resolves the caller if a token
		// is present.
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", optionalAuth(cfg.AuthService), authHandler.Register)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", middleware.Auth(cfg.AuthService), authHandler.Me)
		}

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		manageStock := middleware.RequireRole(appctx.RoleInventory)

		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.GET("/:id/pricing", productHandler.PricingHistory)
			products.GET("/:id/pricing/:supplierId", productHandler.SupplierPricing)
			products.POST("", manageStock, productHandler.Create)
			products.PUT("/:id", manageStock, productHandler.Update)
			products.DELETE("/:id", manageStock, productHandler.Delete)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.POST("", manageStock, supplierHandler.Create)
			suppliers.PUT("/:id", manageStock, supplierHandler.Update)
			suppliers.DELETE("/:id", manageStock, supplierHandler.Delete)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.POST("", manageStock, expenseHandler.Create)
			expenses.POST("/:id/pay", manageStock, expenseHandler.MarkPaid)
		}

		sales := protected.Group("/sales")
		{
			sales.GET("", saleHandler.List)
			sales.GET("/:id", saleHandler.Get)
			sales.GET("/number/:number", saleHandler.GetByNumber)
			sales.POST("", middleware.RequireRole(appctx.RoleSales, appctx.RoleInventory), saleHandler.Create)
		}

		stock := protected.Group("/stock")
		{
			stock.POST("/restock", manageStock, stockHandler.Restock)
		}
	}

	return router
}

// optionalAuth resolves the user from a token when one is present but
// lets anonymous requests through. Used on the register endpoint where
// the handler decides between bootstrap and admin-only paths.
func optionalAuth(validator middleware.JWTValidator) gin.HandlerFunc {
	authMw := middleware.Auth(validator)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if _, err := c.Cookie(middleware.AccessTokenCookie); err != nil {
				c.Next()
				return
			}
		}
		authMw(c)
	}
}
