package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sevderk/lavash-bakery-supabase/internal/application/service"
	"github.com/sevderk/lavash-bakery-supabase/internal/config"
	"github.com/sevderk/lavash-bakery-supabase/internal/infrastructure/database"
	"github.com/sevderk/lavash-bakery-supabase/internal/infrastructure/localstore"
	"github.com/sevderk/lavash-bakery-supabase/internal/infrastructure/repository"
	"github.com/sevderk/lavash-bakery-supabase/internal/presentation/http/handler"
	"github.com/sevderk/lavash-bakery-supabase/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Console logging in development, JSON in production
	if cfg.App.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the local draft store
	draftStorage, err := localstore.NewFileStorage(cfg.Draft.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize draft storage")
	}

	// Initialize services
	draftService := service.NewDraftService(draftStorage, cfg.Draft.DefaultUnitPrice)
	customerService := service.NewCustomerService(customerRepo, orderRepo, paymentRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, draftService)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo)
	reportService := service.NewReportService(reportRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Draft:    handler.NewDraftHandler(draftService, orderService, customerService),
		Order:    handler.NewOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("Starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
