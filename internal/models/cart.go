package models

// CartItem est une ligne de panier telle que stockée en session Redis.
// Quantité toujours >= 1 : une ligne qui tombe à zéro est supprimée.
type CartItem struct {
	ProductID int    `json:"productId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // unités mineures
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl"`
}
