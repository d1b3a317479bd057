package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevderk/lavash-bakery-supabase/internal/config"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"github.com/sevderk/lavash-bakery-supabase/internal/presentation/http/handler"
	"github.com/sevderk/lavash-bakery-supabase/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Draft    *handler.DraftHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
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
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCustomerRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerDraftRoutes(v1, h)
		registerOrderRoutes(v1, h, deps)
		registerPaymentRoutes(v1, h)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/statement", h.Customer.Statement)
		customers.GET("/:id/payments", h.Payment.ListByCustomer)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers) {
	drafts := v1.Group("/drafts")
	{
		drafts.GET("", h.Draft.List)
		drafts.GET("/summary", h.Draft.Summary)
		drafts.DELETE("", h.Draft.ClearAll)
		drafts.GET("/:customerId", h.Draft.GetCart)
		drafts.PUT("/:customerId", h.Draft.SetCart)
		drafts.PATCH("/:customerId/quantity", h.Draft.SetQuantity)
		drafts.PATCH("/:customerId/unit-price", h.Draft.SetUnitPrice)
		drafts.DELETE("/:customerId", h.Draft.ClearCart)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := v1.Group("/orders")
	{
		// Submission honors an optional Idempotency-Key header so a retried
		// batch replays the original receipt instead of committing twice.
		orders.POST("/submit",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Order.Submit,
		)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.PUT("/:id/items", h.Order.UpdateItems)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerPaymentRoutes(v1 *gin.RouterGroup, h *Handlers) {
	payments := v1.Group("/payments")
	{
		payments.POST("", h.Payment.Create)
		payments.DELETE("/:id", h.Payment.Delete)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
	}
	v1.GET("/dashboard", h.Report.Dashboard)
}
