// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/config"
	"github.com/shopdash/backend/internal/handlers"
	"github.com/shopdash/backend/internal/middleware"
	"github.com/shopdash/backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	mailer := services.NewSMTPMailer(cfg.Email)
	templates := services.EmailTemplates{TrackingBaseURL: cfg.Tracking.PublicBaseURL}

	emailService := services.NewEmailService(db, mailer)
	addressService := services.NewAddressService(db, emailService, templates)
	forecastService := services.NewForecastService(db)
	profitService := services.NewProfitService(db)
	syncService := services.NewSyncService(db, cfg, addressService, forecastService, profitService)
	storeService := services.NewStoreService(db, cfg)
	orderService := services.NewOrderService(db, emailService, templates)
	productService := services.NewProductService(db, syncService)
	trackingService := services.NewTrackingService(db)

	// Initialize handlers
	storeHandler := handlers.NewStoreHandler(storeService)
	syncHandler := handlers.NewSyncHandler(syncService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService, forecastService)
	profitHandler := handlers.NewProfitHandler(profitService)
	emailHandler := handlers.NewEmailHandler(emailService, orderService, addressService, cfg.Sync.FollowUpAfterDays)
	trackingHandler := handlers.NewTrackingHandler(trackingService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Public tracking page, rate limited separately
	public := r.Group("/public")
	public.Use(middleware.TrackingRateLimit())
	{
		public.GET("/tracking/:number", trackingHandler.GetTrackingPage)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.POST("/stores/connect", storeHandler.ConnectStore)
		v1.GET("/auth/callback", storeHandler.OAuthCallback)

		v1.POST("/sync", syncHandler.Sync)

		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		}

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.PATCH("/:id", productHandler.UpdateProduct)
		}

		profit := v1.Group("/profit")
		{
			profit.GET("", profitHandler.GetProfitEntries)
			profit.POST("/recalculate", profitHandler.RecalculateProfits)
			profit.PATCH("/:id", profitHandler.UpdateProfitEntry)
		}

		emails := v1.Group("/emails")
		{
			emails.GET("", emailHandler.GetEmails)
			emails.POST("", emailHandler.SendEmail)
			emails.POST("/follow-ups", emailHandler.SendFollowUps)
		}

		tracking := v1.Group("/tracking")
		{
			tracking.GET("/config", trackingHandler.GetTrackingConfig)
			tracking.PUT("/config", trackingHandler.UpdateTrackingConfig)
		}
	}

	return r
}
