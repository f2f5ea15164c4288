package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le .env de la boutique. Toutes les clés (Scylla, Redis,
// Elastic, MinIO, Razorpay, SMTP, admin) sont lues ensuite via os.Getenv.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé")
	}
}
