package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/database"
)

const (
	// Limites des endpoints d'intake publics (anti-spam)
	ReviewMaxPerHour    = 5
	SubscribeMaxPerHour = 3

	IntakeCooldown = 1 * time.Hour
)

// IntakeRateLimit limite les soumissions par IP sur un endpoint d'intake
// (avis, newsletter). Compteur Redis avec TTL glissant.
func IntakeRateLimit(name string, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis en panne : on laisse passer plutôt que de bloquer la boutique
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, IntakeCooldown)
		}

		if count > int64(max) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     "Trop de soumissions, réessayez plus tard",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
