package product

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/catalog"
	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/services"
)

// Store est le catalogue deux étages branché au démarrage (cmd/server).
// Jamais nil après l'init ; l'étage de repli garantit une réponse.
var Store *catalog.Store

// GetAllProducts — GET /api/products
func GetAllProducts(c *gin.Context) {
	products, err := Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProductBySlug — GET /api/products/:slug
func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	p, err := Store.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SearchProducts — GET /api/products/search?q=
// 🔎 Elasticsearch en priorité, repli catalogue + filtre mémoire sinon.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(c.Request.Context(), query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 Repli : le catalogue est petit, le filtre mémoire suffit
	all, err := Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur recherche"})
		return
	}

	matched := []models.Product{}
	for _, p := range all {
		if containsIgnoreCase(p.Name, query) ||
			containsIgnoreCase(p.Description, query) ||
			containsIgnoreCase(p.Category, query) ||
			featuresContain(p.Features, query) {
			matched = append(matched, p)
		}
	}
	c.JSON(http.StatusOK, matched)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func featuresContain(features []string, query string) bool {
	for _, f := range features {
		if containsIgnoreCase(f, query) {
			return true
		}
	}
	return false
}
