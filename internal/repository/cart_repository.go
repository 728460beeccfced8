package repository

import (
	"context"
	"errors"
	"fmt"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetOrCreateCart returns the user's cart, creating it on first use. The
// insert is conflict-tolerant so concurrent first touches converge on the
// same row.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	insert := `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, insert, uuid.New(), userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	var cart model.Cart
	err := r.pool.QueryRow(ctx, `SELECT id, user_id FROM carts WHERE user_id = $1`, userID).
		Scan(&cart.ID, &cart.UserID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &cart, nil
}

// AddItem inserts a new cart line. The uniqueness constraint on
// (cart_id, food_item_id) is the duplicate check; a violation maps to
// model.ErrItemAlreadyInCart so two concurrent adds cannot both create a line.
func (r *cartRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, food_item_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.CartID, item.FoodItemID, item.Quantity, item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().
				Str("cart_id", item.CartID.String()).
				Str("food_item_id", item.FoodItemID.String()).
				Msg("food item already in cart")
			return model.ErrItemAlreadyInCart
		}
		r.logger.Error().Err(err).Str("cart_id", item.CartID.String()).Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Str("cart_item_id", item.ID.String()).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return nil
}

// ListItems retrieves the cart's lines with their food items joined, oldest
// line first.
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.food_item_id, ci.quantity, ci.created_at,
		       fi.id, fi.category_id, fi.name, fi.description, fi.price, fi.is_available, fi.created_at, fi.updated_at
		FROM cart_items ci
		JOIN food_items fi ON fi.id = ci.food_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(
			&item.ID, &item.CartID, &item.FoodItemID, &item.Quantity, &item.CreatedAt,
			&item.FoodItem.ID, &item.FoodItem.CategoryID, &item.FoodItem.Name,
			&item.FoodItem.Description, &item.FoodItem.Price, &item.FoodItem.IsAvailable,
			&item.FoodItem.CreatedAt, &item.FoodItem.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// UpdateQuantity changes a line's quantity, scoped to the owning cart so a
// caller cannot touch another user's lines.
func (r *cartRepository) UpdateQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE id = $2 AND cart_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, cartID, itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to update cart item quantity")
		return false, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RemoveItem deletes a line, scoped to the owning cart.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cartID, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteAllItems removes every line from the cart within the provided
// transaction, as part of converting the cart into an order.
func (r *cartRepository) DeleteAllItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
