// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/interfaces/http/handlers"
	"github.com/voltstore/backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes registers every API route on the given group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)
	wishlistHandler := handlers.NewWishlistHandler(db, redisClient, cfg)
	profileHandler := handlers.NewUserProfileHandler(db, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)

	// Authentication
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
	}

	// Public catalog
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetProductReviews)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:slug", categoryHandler.GetCategoryBySlug)
	}

	// Cart works for both guests and authenticated users
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// Authenticated user endpoints
	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.POST("/cart/merge", cartHandler.MergeGuestCart)

		users := protected.Group("/users")
		{
			users.GET("/profile", profileHandler.GetProfile)
			users.PUT("/profile", profileHandler.UpdateProfile)
			users.PUT("/password", profileHandler.ChangePassword)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		}

		protected.POST("/products/:id/reviews", reviewHandler.CreateReview)

		wishlist := protected.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("/items", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
			wishlist.POST("/items/:productId/move-to-cart", wishlistHandler.MoveToCart)
			wishlist.DELETE("", wishlistHandler.ClearWishlist)
		}
	}

	// Admin endpoints
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", analyticsHandler.GetDashboard)

		adminProducts := admin.Group("/products")
		{
			adminProducts.GET("", productHandler.AdminGetProducts)
			adminProducts.GET("/:id", productHandler.AdminGetProduct)
			adminProducts.POST("", productHandler.AdminCreateProduct)
			adminProducts.PUT("/:id", productHandler.AdminUpdateProduct)
			adminProducts.DELETE("/:id", productHandler.AdminDeleteProduct)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", orderHandler.AdminGetOrders)
			adminOrders.GET("/:id", orderHandler.AdminGetOrder)
			adminOrders.PUT("/:id/status", orderHandler.AdminUpdateOrderStatus)
			adminOrders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", userAdminHandler.GetUsers)
			adminUsers.GET("/:id", userAdminHandler.GetUser)
			adminUsers.PUT("/:id/role", userAdminHandler.UpdateUserRole)
		}
	}
}
