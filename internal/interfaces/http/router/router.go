package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers the router wires up
type Handlers struct {
	Units        *handler.UnitOfMeasureHandler
	Products     *handler.ProductHandler
	ProductUnits *handler.ProductUnitHandler
	Sales        *handler.SaleHandler
	Returns      *handler.SaleReturnHandler
}

// Config holds router configuration
type Config struct {
	Environment    string
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string
}

// New builds the gin engine with middleware and all API routes registered
func New(cfg Config, handlers Handlers, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	units := api.Group("/units")
	{
		units.POST("", handlers.Units.Create)
		units.GET("", handlers.Units.List)
		units.GET("/:id", handlers.Units.GetByID)
	}

	products := api.Group("/products")
	{
		products.POST("", handlers.Products.Create)
		products.GET("", handlers.Products.List)
		products.GET("/:id", handlers.Products.GetByID)
		products.DELETE("/:id", handlers.Products.Delete)
		products.POST("/:id/units", handlers.ProductUnits.AddUnit)
		products.GET("/:id/units", handlers.ProductUnits.ListByProduct)
	}

	productUnits := api.Group("/product-units")
	{
		productUnits.PATCH("/:id", handlers.ProductUnits.UpdateUnit)
	}

	salesGroup := api.Group("/sales")
	{
		salesGroup.POST("", handlers.Sales.Create)
		salesGroup.GET("", handlers.Sales.List)
		salesGroup.GET("/:id", handlers.Sales.GetByID)
		salesGroup.POST("/:id/cancel", handlers.Sales.Cancel)
		salesGroup.POST("/:id/returns", handlers.Returns.Create)
		salesGroup.GET("/:id/returns", handlers.Returns.ListBySale)
	}

	returns := api.Group("/returns")
	{
		returns.GET("/:id", handlers.Returns.GetByID)
	}

	return engine
}
