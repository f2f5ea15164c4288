package routes

import (
	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/handlers/admin"
	carthandlers "vroomvisions_backend/internal/handlers/cart"
	"vroomvisions_backend/internal/handlers/intake"
	"vroomvisions_backend/internal/handlers/payement"
	"vroomvisions_backend/internal/handlers/product"
	"vroomvisions_backend/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.ShopSession())

	// Catalogue
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:slug", product.GetProductBySlug)

	// Avis & newsletter
	api.GET("/reviews", intake.GetReviews)
	api.POST("/reviews",
		middleware.IntakeRateLimit("reviews", middleware.ReviewMaxPerHour),
		intake.CreateReview)
	api.POST("/subscribe",
		middleware.IntakeRateLimit("subscribe", middleware.SubscribeMaxPerHour),
		intake.Subscribe)

	// Panier de session
	api.GET("/cart", carthandlers.GetCart)
	api.POST("/cart/add", carthandlers.AddToCart)
	api.DELETE("/cart/:productId", carthandlers.RemoveFromCart)
	api.DELETE("/cart", carthandlers.ClearCart)

	// Paiement Razorpay
	api.POST("/razorpay/order", payement.CreateRazorpayOrder)
	api.POST("/razorpay/verify", payement.VerifyPayment)
	api.POST("/razorpay/failed", payement.PaymentFailed)

	// Administration
	api.POST("/admin/login", admin.Login)
	adminGroup := api.Group("/admin", middleware.AdminRequired())
	adminGroup.POST("/products", admin.UpsertProduct)
	adminGroup.DELETE("/reviews/:id", admin.DeleteReview)
}
