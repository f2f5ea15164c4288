package intake

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/models"
)

// GetReviews — GET /api/reviews
func GetReviews(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(database.StmtListReviews).
		WithContext(c.Request.Context()).Iter()

	reviews := []models.Review{}
	var r models.Review
	for iter.Scan(&r.ID, &r.Name, &r.Role, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
		r = models.Review{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview — POST /api/reviews
// Valide la forme (note 1-5, champs non vides) avant de persister.
func CreateReview(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required,min=2,max=100"`
		Role    string `json:"role" binding:"required,min=2,max=100"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required,min=10,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données d'avis invalides"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		Name:      req.Name,
		Role:      req.Role,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	err = session.Query(database.StmtInsertReview,
		review.ID, review.Name, review.Role, review.Rating, review.Comment, review.CreatedAt).
		WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Printf("❌ Erreur création avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création avis"})
		return
	}

	log.Printf("⭐ Avis créé: %s par %s (note: %d/5)", review.ID, review.Name, review.Rating)
	c.JSON(http.StatusCreated, review)
}
