package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hospitalsupply/supplyrecon/internal/api"
	v1 "github.com/hospitalsupply/supplyrecon/internal/api/v1"
	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/internal/postgres"
	pubsubRouter "github.com/hospitalsupply/supplyrecon/internal/pubsub/router"
	"github.com/hospitalsupply/supplyrecon/internal/repository"
	"github.com/hospitalsupply/supplyrecon/internal/service"
	"github.com/hospitalsupply/supplyrecon/internal/types"
	"github.com/hospitalsupply/supplyrecon/internal/validator"
	"github.com/hospitalsupply/supplyrecon/internal/workflow"
	"go.uber.org/fx"
)

// @title Supply Reconciliation API
// @version 1.0
// @description Purchase order and supplier invoice reconciliation
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Repositories
			repository.NewOrderRepository,
			repository.NewInvoiceRepository,
			repository.NewLineItemRepository,

			// PubSub
			pubsubRouter.NewRouter,
		),
		postgres.Module(),
	)

	// Invoice check notifier (must be initialised before services)
	opts = append(opts, workflow.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewOrderService,
			service.NewInvoiceService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	db *postgres.DB,
	orderService service.OrderService,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(db, logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, cfg, logger),
		Order:   v1.NewOrderHandler(orderService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	handler workflow.Handler,
	publisher workflow.Publisher,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, cfg, router, handler, publisher, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *pubsubRouter.Router,
	handler workflow.Handler,
	publisher workflow.Publisher,
	logger *logger.Logger,
) {
	if !cfg.Workflow.Enabled {
		logger.Info("workflow notifier disabled, message router not started")
		return
	}

	// Register handlers before starting the router
	handler.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting message router")
			go func() {
				if err := router.Run(context.Background()); err != nil {
					logger.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping message router")
			if err := router.Close(); err != nil {
				return err
			}
			return publisher.Close()
		},
	})
}
