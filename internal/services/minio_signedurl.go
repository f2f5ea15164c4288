package services

import (
	"context"
	"net/url"
	"os"
	"time"

	"vroomvisions_backend/internal/database"
)

// DownloadURLTTL : durée de validité des liens de téléchargement envoyés par
// email après un paiement vérifié.
const DownloadURLTTL = 24 * time.Hour

// GenerateSignedURL génère une URL signée MinIO pour un objet du bucket
// (archive de pack LUT ou image produit) avec expiration.
func GenerateSignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error) {
	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectKey,
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
