package intake

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/utils"
)

// insertSubscriber écrit l'email en base et retourne le flag applied
// (false : l'email existe déjà, l'état existant n'est pas touché).
// Variable de package pour substituer la persistance en test.
var insertSubscriber = func(ctx context.Context, email string, at time.Time) (bool, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return false, err
	}
	return session.Query(database.StmtInsertSubscriber, email, at).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
}

// Subscribe — POST /api/subscribe
// L'INSERT IF NOT EXISTS fait du doublon un signal de conflit explicite
// (applied = false) : pas de sniffing du message d'erreur du stockage.
func Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Adresse email invalide"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	applied, err := insertSubscriber(c.Request.Context(), email, time.Now())
	if err != nil {
		log.Printf("❌ Erreur inscription newsletter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur inscription"})
		return
	}

	if !applied {
		// conflit : l'email existe déjà, l'état existant n'est pas touché
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email déjà inscrit"})
		return
	}

	log.Printf("📧 Nouvel abonné newsletter: %s", email)

	go func() {
		if err := utils.SendWelcomeEmail(email); err != nil {
			log.Printf("⚠️ Erreur envoi email de bienvenue à %s: %v", email, err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{"message": "Inscription réussie"})
}
