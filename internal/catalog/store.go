// Package catalog expose le catalogue produits derrière une interface de
// lecture unique. Deux étages : ScyllaDB (avec cache Redis) en premier,
// snapshot statique embarqué en repli. L'appelant ne sait pas quel étage a
// répondu ; une panne de l'étage primaire dégrade silencieusement.
package catalog

import (
	"context"
	"errors"
	"log"

	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/storeerr"
)

// Reader est le contrat de lecture du catalogue. Immutable côté lecteur.
type Reader interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// Store enchaîne l'étage primaire et le repli statique.
type Store struct {
	primary  Reader
	fallback Reader
}

func NewStore(primary, fallback Reader) *Store {
	if fallback == nil {
		fallback = NewStaticStore(nil)
	}
	return &Store{primary: primary, fallback: fallback}
}

// fallbackWorthy : un "introuvable" de l'étage primaire fait foi, seules les
// pannes de récupération déclenchent le repli.
func fallbackWorthy(err error) bool {
	return err != nil && !errors.Is(err, storeerr.ErrNotFound)
}

func (s *Store) List(ctx context.Context) ([]models.Product, error) {
	if s.primary != nil {
		products, err := s.primary.List(ctx)
		if err == nil {
			return products, nil
		}
		log.Printf("⚠️ Catalogue primaire indisponible, bascule sur le snapshot: %v", err)
	}
	return s.fallback.List(ctx)
}

func (s *Store) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if s.primary != nil {
		p, err := s.primary.GetByID(ctx, id)
		if !fallbackWorthy(err) {
			return p, err
		}
		log.Printf("⚠️ Catalogue primaire indisponible, bascule sur le snapshot: %v", err)
	}
	return s.fallback.GetByID(ctx, id)
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s.primary != nil {
		p, err := s.primary.GetBySlug(ctx, slug)
		if !fallbackWorthy(err) {
			return p, err
		}
		log.Printf("⚠️ Catalogue primaire indisponible, bascule sur le snapshot: %v", err)
	}
	return s.fallback.GetBySlug(ctx, slug)
}
