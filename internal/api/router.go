package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/hospitalsupply/supplyrecon/internal/api/v1"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/rest/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Invoice *v1.InvoiceHandler
	Order   *v1.OrderHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.Default()
	// multipart parts beyond this spill to temp files
	router.MaxMultipartMemory = cfg.Upload.MaxFileSizeBytes

	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.GET("/:id/file", handlers.Invoice.GetInvoiceFile)
		invoices.PUT("/:id/line_items", handlers.Invoice.SubmitLineItems)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("", handlers.Order.ListOrders)
		orders.GET("/:id", handlers.Order.GetOrder)
	}
}
