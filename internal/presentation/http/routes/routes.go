package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/config"
	domainRepo "github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/internal/presentation/http/handler"
	"github.com/sowani/salon-api/internal/presentation/http/middleware"
	"github.com/sowani/salon-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Checkout *handler.CheckoutHandler
	Payment  *handler.PaymentHandler
	Receipt  *handler.ReceiptHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.GET("/staff", h.Auth.ListStaff)
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Checkout. A retried request must not create a second payment tree.
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})
	protected.POST("/checkouts", idempotency, h.Checkout.Create)

	// Payment history
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.DELETE("/:id", h.Payment.Cancel)
	}

	// Receipts
	receipts := protected.Group("/receipts")
	{
		receipts.GET("/:payment_id", h.Receipt.Get)
		receipts.POST("/:payment_id/print", h.Receipt.Print)
	}

	// Store settings
	settings := protected.Group("/settings")
	{
		settings.GET("/printer", h.Settings.GetPrinter)
		settings.PUT("/printer", h.Settings.UpdatePrinter)
		settings.POST("/printer/test", h.Settings.TestPrint)
		settings.PUT("/pin", h.Settings.UpdatePIN)
	}
}
