package admin

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vroomvisions_backend/internal/catalog"
	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/middleware"
	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/services"
	"vroomvisions_backend/internal/utils"
)

// Login — POST /api/admin/login
// Credential unique configuré en .env (ADMIN_USERNAME + ADMIN_PASSWORD_HASH
// au format Argon2id). Émet un JWT de 12h.
func Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if username == "" || passwordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Administration non configurée"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !ok || req.Username != username {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identifiants invalides"})
		return
	}

	token, err := middleware.IssueAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur génération token"})
		return
	}

	log.Println("🔐 Connexion admin réussie")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// UpsertProduct — POST /api/admin/products
// Écrit dans products et products_by_slug, invalide le cache Redis et
// réindexe dans Elasticsearch.
func UpsertProduct(c *gin.Context) {
	// DownloadKey porte json:"-" sur models.Product (jamais exposé au public),
	// donc le payload admin passe par une structure dédiée.
	var req struct {
		models.Product
		DownloadKey string `json:"downloadKey"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données produit invalides"})
		return
	}
	p := req.Product
	p.DownloadKey = req.DownloadKey
	if p.ID <= 0 || p.Slug == "" || p.Name == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id, slug, name et price sont obligatoires"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p.UpdatedAt = &now
	if p.CreatedAt == nil {
		p.CreatedAt = &now
	}

	for _, table := range []string{"products", "products_by_slug"} {
		query := "INSERT INTO " + table + ` (product_id, slug, name, description, price, original_price, discount, features, category, compatibility, image_url, download_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if err := session.Query(query,
			p.ID, p.Slug, p.Name, p.Description, p.Price, p.OriginalPrice, p.Discount,
			p.Features, p.Category, p.Compatibility, p.ImageURL, p.DownloadKey,
			p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur écriture produit: " + err.Error()})
			return
		}
	}

	catalog.InvalidateCache(c.Request.Context(), p.Slug)

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	log.Printf("🛠️ Produit upserté: %d (%s)", p.ID, p.Slug)
	c.JSON(http.StatusOK, p)
}

// DeleteReview — DELETE /api/admin/reviews/:id
func DeleteReview(c *gin.Context) {
	reviewID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID avis invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM reviews WHERE review_id = ?", reviewID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur suppression avis"})
		return
	}

	log.Printf("🗑️ Avis supprimé: %s", reviewID)
	c.JSON(http.StatusOK, gin.H{"message": "Avis supprimé"})
}
