package seed

import (
	"context"
	"fmt"
	"time"

	"cafe-backend/internal/model"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Seeder populates an empty catalog from a menu document. A catalog that
// already has categories is left untouched, so restarts do not duplicate
// the menu.
type Seeder struct {
	catalog repository.CatalogRepository
	loader  Loader
	logger  zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(catalog repository.CatalogRepository, loader Loader, logger zerolog.Logger) *Seeder {
	return &Seeder{
		catalog: catalog,
		loader:  loader,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the menu document from the given location and inserts its
// categories and food items if the catalog is empty.
func (s *Seeder) Run(ctx context.Context, location string) error {
	count, err := s.catalog.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog state: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int("categories", count).Msg("catalog already populated, skipping seed")
		return nil
	}

	menu, err := s.loader.Load(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}

	now := time.Now()
	categoryIDs := make(map[string]uuid.UUID, len(menu.Categories))

	for _, c := range menu.Categories {
		category := &model.Category{
			ID:          uuid.New(),
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.catalog.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
		categoryIDs[c.Name] = category.ID
	}

	for _, f := range menu.FoodItems {
		item := &model.FoodItem{
			ID:          uuid.New(),
			CategoryID:  categoryIDs[f.Category],
			Name:        f.Name,
			Description: f.Description,
			Price:       f.Price,
			IsAvailable: f.IsAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.catalog.CreateFoodItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed food item %q: %w", f.Name, err)
		}
	}

	s.logger.Info().
		Int("categories", len(menu.Categories)).
		Int("food_items", len(menu.FoodItems)).
		Msg("catalog seeded")

	return nil
}
