package repository

import (
	"context"
	"fmt"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// CreateCategory inserts a new category.
func (r *catalogRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// ListCategories retrieves all categories, optionally filtered by name.
func (r *catalogRepository) ListCategories(ctx context.Context, nameFilter string) ([]model.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, nameFilter)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// DeleteCategory removes a category.
func (r *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountCategories returns the number of categories.
func (r *catalogRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CreateFoodItem inserts a new food item.
func (r *catalogRepository) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	query := `
		INSERT INTO food_items (id, category_id, name, description, price, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.CategoryID, item.Name, item.Description,
		item.Price, item.IsAvailable, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create food item")
		return fmt.Errorf("failed to create food item: %w", err)
	}

	r.logger.Debug().Str("food_item_id", item.ID.String()).Msg("food item created")
	return nil
}

// GetFoodItem retrieves a food item by ID.
func (r *catalogRepository) GetFoodItem(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	query := `
		SELECT id, category_id, name, description, price, is_available, created_at, updated_at
		FROM food_items
		WHERE id = $1
	`

	var item model.FoodItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.Description,
		&item.Price, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("food_item_id", id.String()).Msg("food item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_item_id", id.String()).Msg("failed to query food item")
		return nil, fmt.Errorf("failed to query food item: %w", err)
	}

	return &item, nil
}

// ListFoodItems retrieves food items with optional category and availability filters.
func (r *catalogRepository) ListFoodItems(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]model.FoodItem, error) {
	query := `
		SELECT id, category_id, name, description, price, is_available, created_at, updated_at
		FROM food_items
		WHERE ($1::uuid IS NULL OR category_id = $1)
		  AND ($2 = FALSE OR is_available = TRUE)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, categoryID, availableOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query food items")
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	var items []model.FoodItem
	for rows.Next() {
		var item model.FoodItem
		err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food items: %w", err)
	}

	return items, nil
}

// UpdateFoodItem persists changes to an existing food item.
func (r *catalogRepository) UpdateFoodItem(ctx context.Context, item *model.FoodItem) (bool, error) {
	query := `
		UPDATE food_items
		SET category_id = $2, name = $3, description = $4, price = $5, is_available = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID, item.CategoryID, item.Name, item.Description,
		item.Price, item.IsAvailable, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("food_item_id", item.ID.String()).Msg("failed to update food item")
		return false, fmt.Errorf("failed to update food item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteFoodItem removes a food item.
func (r *catalogRepository) DeleteFoodItem(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM food_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("food_item_id", id.String()).Msg("failed to delete food item")
		return false, fmt.Errorf("failed to delete food item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateDiningTable inserts a new dining table.
func (r *catalogRepository) CreateDiningTable(ctx context.Context, table *model.DiningTable) error {
	query := `
		INSERT INTO dining_tables (id, table_number, is_occupied, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		table.ID, table.TableNumber, table.IsOccupied, table.CreatedAt, table.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int("table_number", table.TableNumber).Msg("failed to create dining table")
		return fmt.Errorf("failed to create dining table: %w", err)
	}

	return nil
}

// GetDiningTable retrieves a dining table by ID.
func (r *catalogRepository) GetDiningTable(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	query := `
		SELECT id, table_number, is_occupied, created_at, updated_at
		FROM dining_tables
		WHERE id = $1
	`

	var table model.DiningTable
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&table.ID, &table.TableNumber, &table.IsOccupied, &table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("table_id", id.String()).Msg("failed to query dining table")
		return nil, fmt.Errorf("failed to query dining table: %w", err)
	}

	return &table, nil
}

// ListDiningTables retrieves all dining tables ordered by table number.
func (r *catalogRepository) ListDiningTables(ctx context.Context) ([]model.DiningTable, error) {
	query := `
		SELECT id, table_number, is_occupied, created_at, updated_at
		FROM dining_tables
		ORDER BY table_number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dining tables")
		return nil, fmt.Errorf("failed to query dining tables: %w", err)
	}
	defer rows.Close()

	var tables []model.DiningTable
	for rows.Next() {
		var t model.DiningTable
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.IsOccupied, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dining table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dining tables: %w", err)
	}

	return tables, nil
}

// CreateOffer inserts a new special offer.
func (r *catalogRepository) CreateOffer(ctx context.Context, offer *model.SpecialOffer) error {
	query := `
		INSERT INTO special_offers (id, name, food_item_id, discount_percentage, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		offer.ID, offer.Name, offer.FoodItemID, offer.DiscountPercentage,
		offer.StartDate, offer.EndDate, offer.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("food_item_id", offer.FoodItemID.String()).Msg("failed to create offer")
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// ListOffers retrieves all special offers.
func (r *catalogRepository) ListOffers(ctx context.Context) ([]model.SpecialOffer, error) {
	query := `
		SELECT id, name, food_item_id, discount_percentage, start_date, end_date, description
		FROM special_offers
		ORDER BY start_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query offers")
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	return scanOffers(rows)
}

// GetOffersForItems retrieves offers for the given food items, grouped by item.
func (r *catalogRepository) GetOffersForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]model.SpecialOffer, error) {
	grouped := make(map[uuid.UUID][]model.SpecialOffer, len(itemIDs))
	if len(itemIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, name, food_item_id, discount_percentage, start_date, end_date, description
		FROM special_offers
		WHERE food_item_id = ANY($1)
		ORDER BY start_date
	`

	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("item_count", len(itemIDs)).Msg("failed to query offers for items")
		return nil, fmt.Errorf("failed to query offers for items: %w", err)
	}
	defer rows.Close()

	offers, err := scanOffers(rows)
	if err != nil {
		return nil, err
	}

	for _, offer := range offers {
		grouped[offer.FoodItemID] = append(grouped[offer.FoodItemID], offer)
	}

	return grouped, nil
}

// DeleteOffer removes a special offer.
func (r *catalogRepository) DeleteOffer(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM special_offers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to delete offer")
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanOffers drains rows into a slice of offers.
func scanOffers(rows pgx.Rows) ([]model.SpecialOffer, error) {
	var offers []model.SpecialOffer
	for rows.Next() {
		var o model.SpecialOffer
		err := rows.Scan(&o.ID, &o.Name, &o.FoodItemID, &o.DiscountPercentage,
			&o.StartDate, &o.EndDate, &o.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}
