package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/catalog"
	"vroomvisions_backend/internal/checkout"
	"vroomvisions_backend/internal/config"
	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/handlers/payement"
	"vroomvisions_backend/internal/handlers/product"
	"vroomvisions_backend/internal/middleware"
	"vroomvisions_backend/internal/routes"
	"vroomvisions_backend/internal/services"
)

func main() {
	config.Load()

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("❌ Impossible d'initialiser Razorpay : clés manquantes")
	}
	log.Println("✅ Razorpay initialisé")

	database.ConnectDatabases()

	middleware.InitSessionStore()

	// Catalogue deux étages : ScyllaDB+Redis d'abord, snapshot embarqué en repli
	product.Store = catalog.NewStore(catalog.NewScyllaStore(), catalog.NewStaticStore(nil))

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	// Orchestrateurs de checkout, un par session, passerelle Razorpay
	gateway := services.NewRazorpayGateway(keyID, keySecret)
	payement.Checkouts = checkout.NewManager(gateway, "INR")

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin()},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Vroom Visions lancé sur le port", port)
	r.Run(":" + port)
}

func frontendOrigin() string {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return origin
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du
// premier appel : un List complet remplit products:all.
func warmupRedisCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := product.Store.List(ctx); err != nil {
		log.Printf("⚠️ Pré-chauffage du cache Redis impossible: %v", err)
		return
	}
	log.Println("✅ Cache Redis pré-chauffé (products:all)")
}
