// Le panier de session : état reconstruit depuis Redis à chaque requête,
// muté via l'API du package cart, puis resérialisé. La clé Redis est
// cart:<sid>, où sid vient du cookie de session anonyme.
package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	cartstate "vroomvisions_backend/internal/cart"
	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/handlers/product"
	"vroomvisions_backend/internal/middleware"
	"vroomvisions_backend/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(sid string) string { return "cart:" + sid }

// Load reconstruit le panier de la session depuis Redis (vide si absent).
func Load(ctx context.Context, sid string) *cartstate.Cart {
	data, err := database.RedisClient.Get(ctx, cartKey(sid)).Result()
	if err != nil || data == "" {
		return cartstate.New()
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return cartstate.New()
	}
	return cartstate.FromItems(items)
}

// Save persiste le panier en session Redis (30 jours).
func Save(ctx context.Context, sid string, c *cartstate.Cart) {
	data, _ := json.Marshal(c.Items())
	database.RedisClient.Set(ctx, cartKey(sid), data, cartTTL)
}

// Delete supprime la clé Redis du panier (après paiement réussi).
func Delete(ctx context.Context, sid string) {
	database.RedisClient.Del(ctx, cartKey(sid))
}

func respond(c *gin.Context, crt *cartstate.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"items": crt.Items(),
		"total": crt.TotalPrice(),
	})
}

// GetCart — GET /api/cart
func GetCart(c *gin.Context) {
	sid := c.GetString(middleware.SessionIDKey)
	respond(c, Load(c.Request.Context(), sid))
}

// AddToCart — POST /api/cart/add
func AddToCart(c *gin.Context) {
	sid := c.GetString(middleware.SessionIDKey)

	var input struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantité invalide"})
		return
	}

	// 🧩 Le prix vient toujours du catalogue, jamais du client
	p, err := product.Store.GetByID(c.Request.Context(), input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit introuvable"})
		return
	}

	crt := Load(c.Request.Context(), sid)
	crt.AddQuantity(*p, input.Quantity)
	Save(c.Request.Context(), sid, crt)

	respond(c, crt)
}

// RemoveFromCart — DELETE /api/cart/:productId
// Supprime la ligne entière, quelle que soit la quantité.
func RemoveFromCart(c *gin.Context) {
	sid := c.GetString(middleware.SessionIDKey)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID produit invalide"})
		return
	}

	crt := Load(c.Request.Context(), sid)
	crt.Remove(productID)
	Save(c.Request.Context(), sid, crt)

	respond(c, crt)
}

// ClearCart — DELETE /api/cart
func ClearCart(c *gin.Context) {
	sid := c.GetString(middleware.SessionIDKey)
	Delete(c.Request.Context(), sid)
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
}
