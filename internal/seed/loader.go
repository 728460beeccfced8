// Package seed bootstraps an empty catalog from a menu document stored on
// local disk or in S3.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Menu is the seed document: categories plus the food items under them,
// referenced by category name.
type Menu struct {
	Categories []CategorySeed `json:"categories"`
	FoodItems  []FoodItemSeed `json:"foodItems"`
}

// CategorySeed describes one category to create.
type CategorySeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FoodItemSeed describes one food item to create.
type FoodItemSeed struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
}

// Loader reads a menu document from a location: a file path for the file
// loader, an object key for the S3 loader.
type Loader interface {
	Load(ctx context.Context, location string) (*Menu, error)
}

// fileLoader implements Loader for menu files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based menu loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-loader").Logger(),
	}
}

// Load reads and parses a menu JSON file.
func (l *fileLoader) Load(ctx context.Context, path string) (*Menu, error) {
	l.logger.Info().Str("file", path).Msg("loading menu file")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read menu file")
		return nil, fmt.Errorf("failed to read menu file %s: %w", path, err)
	}

	menu, err := parseMenu(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse menu file")
		return nil, fmt.Errorf("failed to parse menu file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("categories", len(menu.Categories)).
		Int("food_items", len(menu.FoodItems)).
		Msg("menu file loaded")

	return menu, nil
}

// parseMenu decodes and sanity-checks a menu document.
func parseMenu(data []byte) (*Menu, error) {
	var menu Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, err
	}

	categories := make(map[string]bool, len(menu.Categories))
	for _, c := range menu.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		categories[c.Name] = true
	}

	for _, item := range menu.FoodItems {
		if item.Name == "" {
			return nil, fmt.Errorf("food item with empty name")
		}
		if !categories[item.Category] {
			return nil, fmt.Errorf("food item %q references unknown category %q", item.Name, item.Category)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("food item %q has a negative price", item.Name)
		}
	}

	return &menu, nil
}
