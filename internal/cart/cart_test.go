package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vroomvisions_backend/internal/models"
)

func produit(id int, price int64) models.Product {
	return models.Product{ID: id, Slug: "p", Name: "Pack", Price: price}
}

func TestAddInsereAUn(t *testing.T) {
	c := New()
	c.Add(produit(1, 5900))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Quantity(1))
	assert.Equal(t, int64(5900), c.TotalPrice())
}

func TestAddDeuxFoisMemeProduit(t *testing.T) {
	c := New()
	c.Add(produit(1, 5900))
	c.Add(produit(1, 5900))

	// une seule ligne, quantité 2
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Quantity(1))
	assert.Equal(t, int64(11800), c.TotalPrice())
}

func TestRemoveSupprimeLaLigneEntiere(t *testing.T) {
	c := New()
	p := produit(1, 5900)
	c.Add(p)
	c.Add(p)
	c.Add(p)

	c.Remove(1)

	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalPrice())
}

func TestRemoveAbsentNoOp(t *testing.T) {
	c := New()
	c.Add(produit(1, 5900))

	notified := 0
	c.Subscribe(func(*Cart) { notified++ })

	c.Remove(42)
	assert.Zero(t, notified)
	assert.Equal(t, 1, c.Len())
}

func TestSetQuantityZeroSupprime(t *testing.T) {
	c := New()
	c.Add(produit(1, 5900))

	c.SetQuantity(1, 0)
	assert.True(t, c.IsEmpty())

	c.Add(produit(2, 3900))
	c.SetQuantity(2, -3)
	assert.True(t, c.IsEmpty())
}

func TestExempleTotal(t *testing.T) {
	// [{id=1, 5900, qty 2}, {id=3, 3900, qty 1}] => 15700
	c := New()
	c.Add(produit(1, 5900))
	c.Add(produit(1, 5900))
	c.Add(produit(3, 3900))

	assert.Equal(t, int64(15700), c.TotalPrice())
}

func TestObservateursSynchrones(t *testing.T) {
	c := New()
	var totals []int64
	c.Subscribe(func(cc *Cart) { totals = append(totals, cc.TotalPrice()) })

	c.Add(produit(1, 100))
	c.Add(produit(1, 100))
	c.Remove(1)
	c.Clear() // déjà vide, pas de notification

	require.Equal(t, []int64{100, 200, 0}, totals)
}

func TestOrdreInsertionPreserve(t *testing.T) {
	c := New()
	c.Add(produit(3, 10))
	c.Add(produit(1, 20))
	c.Add(produit(2, 30))
	c.Add(produit(1, 20))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{items[0].ProductID, items[1].ProductID, items[2].ProductID})
}

func TestFromItemsEcarteQuantitesNulles(t *testing.T) {
	c := FromItems([]models.CartItem{
		{ProductID: 1, Price: 5900, Quantity: 2},
		{ProductID: 2, Price: 3900, Quantity: 0},
		{ProductID: 1, Price: 5900, Quantity: 1},
	})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Quantity(1))
	assert.Equal(t, int64(17700), c.TotalPrice())
}

// Propriété : quelle que soit la séquence add/remove/setQuantity, TotalPrice
// égale toujours la somme prix×quantité des lignes courantes.
func TestProprieteTotalToujoursCoherent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prices := map[int]int64{1: 5900, 2: 11900, 3: 3900, 4: 7900, 5: 990}

	for run := 0; run < 50; run++ {
		c := New()
		for step := 0; step < 200; step++ {
			id := 1 + rng.Intn(5)
			switch rng.Intn(4) {
			case 0, 1:
				c.Add(produit(id, prices[id]))
			case 2:
				c.Remove(id)
			case 3:
				c.SetQuantity(id, rng.Intn(6)-1)
			}

			var want int64
			for _, it := range c.Items() {
				require.GreaterOrEqual(t, it.Quantity, 1, "une ligne à quantité nulle doit être supprimée")
				want += it.Price * int64(it.Quantity)
			}
			require.Equal(t, want, c.TotalPrice())
		}
	}
}
