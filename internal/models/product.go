package models

import "time"

// Product est un pack de LUTs vendu sur la boutique.
// Les prix sont en unités mineures (paise) pour éviter les arrondis flottants.
type Product struct {
	ID            int        `json:"id" db:"product_id"`
	Slug          string     `json:"slug" db:"slug"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	Price         int64      `json:"price" db:"price"`
	OriginalPrice int64      `json:"originalPrice,omitempty" db:"original_price"`
	Discount      int        `json:"discount,omitempty" db:"discount"`
	Features      []string   `json:"features" db:"features"`
	Category      string     `json:"category" db:"category"`
	Compatibility []string   `json:"compatibility" db:"compatibility"`
	ImageURL      string     `json:"imageUrl" db:"image_url"`
	DownloadKey   string     `json:"-" db:"download_key"` // objet MinIO du pack, jamais exposé au client
	CreatedAt     *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
