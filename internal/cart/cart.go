// Package cart implémente l'état du panier : un objet explicite avec une API
// de mutation et des observateurs notifiés de façon synchrone, passé par
// référence aux consommateurs plutôt qu'accédé comme état global ambiant.
package cart

import (
	"vroomvisions_backend/internal/models"
)

// Observer est appelé de manière synchrone après chaque mutation, dans
// l'ordre d'abonnement. Les totaux affichés restent donc cohérents avec
// l'état sans verrou : mutations et lectures sont sérialisées par l'appelant.
type Observer func(c *Cart)

type Cart struct {
	entries   map[int]*models.CartItem
	order     []int // ordre d'insertion, pertinent pour l'affichage seulement
	observers []Observer
}

func New() *Cart {
	return &Cart{entries: make(map[int]*models.CartItem)}
}

// FromItems reconstruit un panier depuis sa représentation session (Redis).
// Les lignes à quantité nulle ou négative sont écartées.
func FromItems(items []models.CartItem) *Cart {
	c := New()
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if existing, ok := c.entries[it.ProductID]; ok {
			existing.Quantity += it.Quantity
			continue
		}
		copied := it
		c.entries[it.ProductID] = &copied
		c.order = append(c.order, it.ProductID)
	}
	return c
}

// Subscribe enregistre un observateur. Il n'est pas rappelé pour l'état
// courant, seulement pour les mutations futures.
func (c *Cart) Subscribe(fn Observer) {
	c.observers = append(c.observers, fn)
}

func (c *Cart) notify() {
	for _, fn := range c.observers {
		fn(c)
	}
}

// Add incrémente la quantité du produit de 1, en insérant une nouvelle ligne
// à quantité 1 si absente. Des appels répétés font croître la quantité.
func (c *Cart) Add(p models.Product) {
	if entry, ok := c.entries[p.ID]; ok {
		entry.Quantity++
		c.notify()
		return
	}
	c.entries[p.ID] = &models.CartItem{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
	}
	c.order = append(c.order, p.ID)
	c.notify()
}

// AddQuantity ajoute n exemplaires d'un coup (POST /api/cart/add).
// n <= 0 est ignoré.
func (c *Cart) AddQuantity(p models.Product, n int) {
	if n <= 0 {
		return
	}
	if entry, ok := c.entries[p.ID]; ok {
		entry.Quantity += n
		c.notify()
		return
	}
	c.entries[p.ID] = &models.CartItem{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  n,
		ImageURL:  p.ImageURL,
	}
	c.order = append(c.order, p.ID)
	c.notify()
}

// Remove supprime la ligne entière (pas de décrément). No-op si absente.
func (c *Cart) Remove(productID int) {
	if _, ok := c.entries[productID]; !ok {
		return
	}
	delete(c.entries, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.notify()
}

// SetQuantity fixe la quantité d'une ligne. Une quantité <= 0 supprime la
// ligne : l'invariant quantité >= 1 tient toujours.
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if entry, ok := c.entries[productID]; ok {
		entry.Quantity = quantity
		c.notify()
	}
}

// TotalPrice retourne Σ(prix × quantité), recalculé à chaque lecture.
// Lecture pure, aucun effet de bord.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, entry := range c.entries {
		total += entry.Price * int64(entry.Quantity)
	}
	return total
}

// Clear vide le panier. Utilisé après un paiement réussi.
func (c *Cart) Clear() {
	if len(c.entries) == 0 {
		return
	}
	c.entries = make(map[int]*models.CartItem)
	c.order = nil
	c.notify()
}

// Items retourne les lignes dans l'ordre d'insertion (copie).
func (c *Cart) Items() []models.CartItem {
	items := make([]models.CartItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.entries[id])
	}
	return items
}

func (c *Cart) Len() int { return len(c.entries) }

func (c *Cart) IsEmpty() bool { return len(c.entries) == 0 }

// Quantity retourne la quantité courante d'un produit, 0 si absent.
func (c *Cart) Quantity(productID int) int {
	if entry, ok := c.entries[productID]; ok {
		return entry.Quantity
	}
	return 0
}
