package database

// Requêtes chaudes de la boutique, partagées entre les handlers et le
// catalogue. gocql prépare et met en cache les statements côté driver,
// on ne garde donc ici que le texte CQL.
const (
	// IF NOT EXISTS fait du doublon un signal de conflit explicite
	// (applied = false), pas une erreur à parser
	StmtInsertSubscriber = `INSERT INTO subscribers (email, created_at) VALUES (?, ?) IF NOT EXISTS`

	StmtInsertReview = `INSERT INTO reviews (review_id, name, role, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	StmtListReviews = `SELECT review_id, name, role, rating, comment, created_at FROM reviews`

	StmtGetProductBySlug = `SELECT product_id, slug, name, description, price, original_price, discount, features, category, compatibility, image_url, download_key, created_at, updated_at FROM products_by_slug WHERE slug = ?`
)
