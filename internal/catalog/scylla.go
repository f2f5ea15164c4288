package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vroomvisions_backend/internal/database"
	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/storeerr"

	"github.com/gocql/gocql"
)

const (
	cacheKeyAll     = "products:all"
	cacheKeySlug    = "product:slug:"
	productCacheTTL = time.Hour
)

const productColumns = `product_id, slug, name, description, price, original_price, discount, features, category, compatibility, image_url, download_key, created_at, updated_at`

// ScyllaStore est l'étage primaire du catalogue : ScyllaDB comme source de
// vérité, Redis en cache devant (clé products:all, TTL 1h).
type ScyllaStore struct{}

func NewScyllaStore() *ScyllaStore { return &ScyllaStore{} }

func scanProduct(scan func(...interface{}) error) (*models.Product, error) {
	var p models.Product
	var createdAt, updatedAt time.Time
	if err := scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
		&p.Discount, &p.Features, &p.Category, &p.Compatibility, &p.ImageURL,
		&p.DownloadKey, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if !createdAt.IsZero() {
		p.CreatedAt = &createdAt
	}
	if !updatedAt.IsZero() {
		p.UpdatedAt = &updatedAt
	}
	return &p, nil
}

func (s *ScyllaStore) List(ctx context.Context) ([]models.Product, error) {
	// ✅ Vérifie le cache Redis d'abord
	if val, err := database.RedisClient.Get(ctx, cacheKeyAll).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("connexion catalogue: %w", err)
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	var createdAt, updatedAt time.Time
	for iter.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
		&p.Discount, &p.Features, &p.Category, &p.Compatibility, &p.ImageURL,
		&p.DownloadKey, &createdAt, &updatedAt) {
		if !createdAt.IsZero() {
			t := createdAt
			p.CreatedAt = &t
		}
		if !updatedAt.IsZero() {
			t := updatedAt
			p.UpdatedAt = &t
		}
		products = append(products, p)
		p = models.Product{} // reset pour la prochaine itération
		createdAt, updatedAt = time.Time{}, time.Time{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKeyAll, data, productCacheTTL)
	}

	return products, nil
}

func (s *ScyllaStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("connexion catalogue: %w", err)
	}

	q := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).WithContext(ctx)
	p, err := scanProduct(q.Scan)
	if err == gocql.ErrNotFound {
		return nil, storeerr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit %d: %w", id, err)
	}
	return p, nil
}

func (s *ScyllaStore) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	// ✅ Cache par slug (la fiche produit est la page la plus consultée)
	key := cacheKeySlug + slug
	if val, err := database.RedisClient.Get(ctx, key).Result(); err == nil && val != "" {
		var cached models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, fmt.Errorf("connexion catalogue: %w", err)
	}

	// products_by_slug est la table d'index, même colonnes que products
	q := session.Query(database.StmtGetProductBySlug, slug).WithContext(ctx)
	p, err := scanProduct(q.Scan)
	if err == gocql.ErrNotFound {
		return nil, storeerr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit %q: %w", slug, err)
	}

	if data, err := json.Marshal(p); err == nil {
		database.RedisClient.Set(ctx, key, data, productCacheTTL)
	}
	return p, nil
}

// InvalidateCache purge les entrées Redis du catalogue après un upsert admin.
func InvalidateCache(ctx context.Context, slug string) {
	database.RedisClient.Del(ctx, cacheKeyAll, cacheKeySlug+slug)
}
