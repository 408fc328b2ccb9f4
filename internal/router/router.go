// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/config"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/handlers"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/middleware"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/services"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	storeService := services.NewStoreService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, cfg)
	orderService := services.NewOrderService(db)
	storefrontService := services.NewStorefrontService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Store management (dashboard)
		stores := v1.Group("/stores")
		stores.Use(middleware.AuthRequired())
		{
			stores.POST("", storeHandler.CreateStore)
			stores.GET("", storeHandler.GetStores)
			stores.GET("/:storeId", storeHandler.GetStore)
			stores.PATCH("/:storeId", storeHandler.UpdateStore)
			stores.DELETE("/:storeId", storeHandler.DeleteStore)

			stores.POST("/:storeId/categories", categoryHandler.CreateCategory)
			stores.GET("/:storeId/categories", categoryHandler.GetCategories)

			stores.POST("/:storeId/products", productHandler.CreateProduct)
			stores.GET("/:storeId/products", productHandler.GetProducts)

			stores.GET("/:storeId/orders", orderHandler.GetStoreOrders)
		}

		// Category management (dashboard)
		categories := v1.Group("/categories")
		categories.Use(middleware.AuthRequired())
		{
			categories.PATCH("/:categoryId", categoryHandler.UpdateCategory)
			categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
		}

		// Public product listing by store id
		v1.GET("/products", storefrontHandler.GetPublicProducts)

		// Product management (dashboard)
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.GET("/:productId", productHandler.GetProduct)
			products.PATCH("/:productId", productHandler.UpdateProduct)
			products.DELETE("/:productId", productHandler.DeleteProduct)
			products.PUT("/:productId/inventory", productHandler.SetInventory)
			products.POST("/:productId/variants", productHandler.AddVariant)
		}

		// Variant management (dashboard)
		variants := v1.Group("/variants")
		variants.Use(middleware.AuthRequired())
		{
			variants.PATCH("/:variantId", productHandler.UpdateVariant)
			variants.DELETE("/:variantId", productHandler.DeleteVariant)
		}

		// Order routes. Creation is public (buyers have no accounts);
		// everything else belongs to the dashboard.
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.OrderRateLimit(), orderHandler.CreateOrder)

			protected := orders.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/:orderId", orderHandler.GetOrder)
				protected.PATCH("/:orderId/status", orderHandler.UpdateOrderStatus)
			}
		}

		// Image uploads (dashboard)
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			uploads.POST("", uploadHandler.UploadImage)
		}

		// Public storefront routes
		storefront := v1.Group("/storefront")
		{
			storefront.GET("/:slug", storefrontHandler.GetStorefront)
			storefront.GET("/:slug/products", storefrontHandler.GetProducts)
			storefront.GET("/:slug/products/:productId", storefrontHandler.GetProduct)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
