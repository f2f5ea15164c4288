package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "vv_session"
	// SessionIDKey est la clé gin.Context sous laquelle l'identifiant de
	// session boutique est disponible pour les handlers panier/paiement.
	SessionIDKey = "session_id"
)

var sessionStore *sessions.CookieStore

// InitSessionStore configure le cookie de session anonyme qui porte
// l'identifiant du panier (clé Redis cart:<sid>).
func InitSessionStore() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	sessionStore = sessions.NewCookieStore([]byte(secret))
	sessionStore.MaxAge(86400 * 30)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	log.Println("✅ Store de sessions initialisé")
}

// ShopSession garantit un identifiant de session par visiteur anonyme et
// l'expose sous SessionIDKey.
func ShopSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := sessionStore.Get(c.Request, sessionName)

		sid, ok := sess.Values["sid"].(string)
		if !ok || sid == "" {
			sid = uuid.NewString()
			sess.Values["sid"] = sid
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Erreur sauvegarde session: %v", err)
			}
		}

		c.Set(SessionIDKey, sid)
		c.Next()
	}
}
