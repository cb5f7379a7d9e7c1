// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/gateway"
	"github.com/zipstore/zip-storefront/internal/geo"
	"github.com/zipstore/zip-storefront/internal/handlers"
	"github.com/zipstore/zip-storefront/internal/middleware"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// Initialize wires services, handlers and routes. The returned watcher must
// be stopped on shutdown so polling goroutines exit cleanly.
func Initialize(db *gorm.DB, cache *redis.Client, geoData *geo.Dataset, cfg *config.Config) (*gin.Engine, *services.PaymentWatcher) {
	// Initialize services
	client := upstream.NewClient(cfg.Upstream)

	var paymentGateway gateway.Gateway
	if cfg.Payment.Provider == "stripe" {
		paymentGateway = gateway.NewStripeGateway(cfg)
	} else {
		paymentGateway = gateway.NewRESTGateway(client)
	}

	notificationService := services.NewNotificationService(cfg, nil)
	storageService, _ := services.NewStorageService(cfg)
	catalogService := services.NewCatalogService(client, cache, time.Duration(cfg.Redis.CacheTTL)*time.Second, nil)
	cartService := services.NewCartService(db, nil)
	checkoutService := services.NewCheckoutService(db, cfg, cartService, paymentGateway, geoData, nil)
	watcher := services.NewPaymentWatcher(db, paymentGateway, cartService, notificationService, cfg.Payment.PollInterval, nil)
	orderService := services.NewOrderService(client, nil)
	contactService := services.NewContactService(db, notificationService, nil)
	authService := services.NewAuthService(db, nil)
	adminService := services.NewAdminService(db, cfg, client, nil)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	productHandler := handlers.NewProductHandler(catalogService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService, watcher, paymentGateway)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)
	authHandler := handlers.NewAuthHandler(authService)
	geoHandler := handlers.NewGeoHandler(geoData)
	adminHandler := handlers.NewAdminHandler(adminService, contactService, storageService)

	// Set token secrets
	utils.SetSessionSecret(cfg.Auth.SessionSecret)
	utils.SetAdminSecret(cfg.Auth.AdminSecret)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Session())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Catalog
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:productId", productHandler.GetProduct)
		api.GET("/products/:productId/related", productHandler.GetRelatedProducts)
		api.GET("/categories", productHandler.GetCategories)

		// Cart
		cart := api.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:productId", cartHandler.UpdateItem)
			cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		}

		// Checkout and payment
		payment := api.Group("/payment")
		{
			payment.POST("/create", middleware.CheckoutRateLimit(), middleware.OptionalAuth(), paymentHandler.CreatePayment)
			payment.GET("/status/:orderCode", paymentHandler.GetStatus)
			payment.POST("/watch/:orderCode", paymentHandler.StartWatch)
			payment.DELETE("/watch/:orderCode", paymentHandler.StopWatch)
			payment.GET("/result/:orderCode", paymentHandler.GetResult)
			payment.GET("/pending", paymentHandler.GetPending)
		}

		// Orders
		orders := api.Group("/orders")
		{
			orders.GET("", middleware.AuthRequired(), orderHandler.ListOrders)
			orders.POST("/check", orderHandler.CheckOrder)
			orders.GET("/:orderNumber", middleware.AuthRequired(), orderHandler.GetOrder)
		}

		// Contact
		api.POST("/contact", middleware.ContactRateLimit(), contactHandler.SubmitInquiry)

		// Auth
		auth := api.Group("/auth")
		{
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetCurrentUser)
			auth.PUT("/redirect-target", authHandler.SetRedirectTarget)
			auth.GET("/redirect-target", authHandler.ConsumeRedirectTarget)
		}

		// Geo data for the checkout form
		geoGroup := api.Group("/geo")
		{
			geoGroup.GET("/provinces", geoHandler.ListProvinces)
			geoGroup.GET("/provinces/:province/districts", geoHandler.ListDistricts)
		}

		// Admin console
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AdminRequired())
			{
				protected.GET("/dashboard/stats", adminHandler.GetDashboardStats)

				protected.GET("/products", adminHandler.ListProducts)
				protected.POST("/products", adminHandler.CreateProduct)
				protected.POST("/products/images", middleware.UploadRateLimit(), adminHandler.UploadProductImages)
				protected.PUT("/products/:productId", adminHandler.UpdateProduct)
				protected.DELETE("/products/:productId", adminHandler.DeleteProduct)

				protected.GET("/orders", adminHandler.ListOrders)
				protected.GET("/orders/:orderNumber", adminHandler.GetOrder)
				protected.PUT("/orders/:orderNumber/status", adminHandler.UpdateOrderStatus)

				protected.GET("/contacts", adminHandler.ListContacts)
				protected.GET("/contacts/:id", adminHandler.GetContact)
				protected.PUT("/contacts/:id/status", adminHandler.UpdateContactStatus)
				protected.DELETE("/contacts/:id", adminHandler.DeleteContact)

				protected.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}

	return r, watcher
}
