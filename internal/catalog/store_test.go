package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/storeerr"
)

// primaire qui tombe toujours en panne
type brokenReader struct{ err error }

func (b *brokenReader) List(context.Context) ([]models.Product, error) { return nil, b.err }
func (b *brokenReader) GetByID(context.Context, int) (*models.Product, error) {
	return nil, b.err
}
func (b *brokenReader) GetBySlug(context.Context, string) (*models.Product, error) {
	return nil, b.err
}

func TestStaticStoreLookups(t *testing.T) {
	s := NewStaticStore(nil)
	ctx := context.Background()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	p, err := s.GetBySlug(ctx, "sci-fi-luts")
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, int64(3900), p.Price)

	p, err = s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "color-grading-luts", p.Slug)

	_, err = s.GetBySlug(ctx, "inconnu")
	assert.ErrorIs(t, err, storeerr.ErrNotFound)
}

func TestStoreBasculeSurSnapshotEnPanne(t *testing.T) {
	store := NewStore(&brokenReader{err: errors.New("scylla injoignable")}, nil)
	ctx := context.Background()

	// la boutique reste navigable, aucune erreur ne remonte
	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	p, err := store.GetBySlug(ctx, "vintage-car-luts")
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
}

func TestStoreNotFoundPrimaireFaitFoi(t *testing.T) {
	// un "introuvable" authentique du primaire ne déclenche pas le repli
	store := NewStore(&brokenReader{err: storeerr.ErrNotFound}, nil)

	_, err := store.GetBySlug(context.Background(), "color-grading-luts")
	assert.ErrorIs(t, err, storeerr.ErrNotFound)
}

func TestStoreSansPrimaire(t *testing.T) {
	store := NewStore(nil, nil)

	p, err := store.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "color-grading-luts-volume-2", p.Slug)
}

func TestSnapshotCopieDefensive(t *testing.T) {
	s := NewStaticStore(nil)
	ctx := context.Background()

	all, _ := s.List(ctx)
	all[0].Name = "modifié"

	again, _ := s.List(ctx)
	assert.Equal(t, "Color Grading LUTs", again[0].Name)
}
