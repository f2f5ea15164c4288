package catalog

import (
	"context"

	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/storeerr"
)

// Snapshot est le catalogue embarqué : la boutique reste navigable même si
// ScyllaDB et Redis sont injoignables. Prix en paise.
var Snapshot = []models.Product{
	{
		ID:            1,
		Slug:          "color-grading-luts",
		Name:          "Color Grading LUTs",
		Description:   "Professional color grading LUTs for car photography. Transform your images with just one click.",
		Price:         5900,
		OriginalPrice: 11900,
		Discount:      50,
		Features: []string{
			"20+ unique LUTs for different lighting conditions",
			"Compatible with Adobe Premiere Pro, After Effects, and Final Cut Pro X",
			"Installation guide included",
			"Free updates for life",
		},
		Category:      "luts",
		Compatibility: []string{"AE", "PR", "FCPX"},
		ImageURL:      "/images/color-grading-luts.png",
		DownloadKey:   "packs/color-grading-luts.zip",
	},
	{
		ID:            2,
		Slug:          "color-grading-luts-volume-2",
		Name:          "Color Grading LUTs Volume 2",
		Description:   "Expand your car photography toolkit with our second volume of professional LUTs. Perfect for moody and dramatic car shots.",
		Price:         5900,
		OriginalPrice: 11900,
		Discount:      50,
		Features: []string{
			"15 new cinematic LUTs for diverse lighting",
			"Compatible with all major editing software",
			"Before/after examples included",
			"One-click application",
		},
		Category:      "luts",
		Compatibility: []string{"AE", "PR", "FCPX"},
		ImageURL:      "/images/color-grading-luts-volume-2.png",
		DownloadKey:   "packs/color-grading-luts-volume-2.zip",
	},
	{
		ID:            3,
		Slug:          "sci-fi-luts",
		Name:          "Sci-Fi LUTs",
		Description:   "Give your automotive photography a futuristic sci-fi look with these specialized LUTs. Perfect for concept cars and night shots.",
		Price:         3900,
		OriginalPrice: 7900,
		Discount:      50,
		Features: []string{
			"10 futuristic color grading presets",
			"Neon and cyberpunk effects",
			"Compatible with major editing software",
			"Video tutorial included",
		},
		Category:      "luts",
		Compatibility: []string{"AE", "PR", "FCPX"},
		ImageURL:      "/images/sci-fi-luts.png",
		DownloadKey:   "packs/sci-fi-luts.zip",
	},
	{
		ID:            4,
		Slug:          "vintage-car-luts",
		Name:          "Vintage Car LUTs",
		Description:   "Specialized LUTs designed for classic and vintage car photography. Add nostalgic film looks to your automotive shots.",
		Price:         3900,
		OriginalPrice: 7900,
		Discount:      50,
		Features: []string{
			"12 vintage film emulation LUTs",
			"Perfect for classic car photography",
			"Period-appropriate color profiles",
			"Works with JPG and RAW images",
		},
		Category:      "luts",
		Compatibility: []string{"AE", "PR", "FCPX"},
		ImageURL:      "/images/vintage-car-luts.png",
		DownloadKey:   "packs/vintage-car-luts.zip",
	},
}

// StaticStore sert le snapshot embarqué. C'est l'étage de repli du catalogue.
type StaticStore struct {
	products []models.Product
}

func NewStaticStore(products []models.Product) *StaticStore {
	if products == nil {
		products = Snapshot
	}
	return &StaticStore{products: products}
}

func (s *StaticStore) List(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *StaticStore) GetByID(_ context.Context, id int) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, storeerr.ErrNotFound
}

func (s *StaticStore) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, storeerr.ErrNotFound
}
