package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/application/service"
	"github.com/sowani/salon-api/internal/config"
	"github.com/sowani/salon-api/internal/infrastructure/database"
	"github.com/sowani/salon-api/internal/infrastructure/repository"
	"github.com/sowani/salon-api/internal/presentation/http/handler"
	"github.com/sowani/salon-api/internal/presentation/http/routes"
	"github.com/sowani/salon-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.App.DefaultPIN); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	paymentRepo := repository.NewPaymentRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, logger)
	authService := service.NewAuthService(staffRepo, settingsService, jwtManager)
	checkoutService := service.NewCheckoutService(paymentRepo, ticketRepo, offerRepo, logger)
	paymentService := service.NewPaymentService(paymentRepo, ticketRepo, offerRepo, logger)
	receiptService := service.NewReceiptService(paymentRepo, ticketRepo, offerRepo)
	printerService := service.NewPrinterService(receiptService, settingsService, nil, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Receipt:  handler.NewReceiptHandler(receiptService, printerService),
		Settings: handler.NewSettingsHandler(settingsService, printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
