package repository

import (
	"context"
	"fmt"
	"time"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_price, is_paid, status, estimated_time, dining_table_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.TotalPrice, order.IsPaid, order.Status,
		order.EstimatedTime, order.DiningTableID, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, user_id, total_price, is_paid, status, estimated_time, dining_table_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.TotalPrice, &order.IsPaid, &order.Status,
		&order.EstimatedTime, &order.DiningTableID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

// ListByUser retrieves the user's orders, most recently updated first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT id, user_id, total_price, is_paid, status, estimated_time, dining_table_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalPrice, &order.IsPaid, &order.Status,
			&order.EstimatedTime, &order.DiningTableID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// MarkPaid flips is_paid to true only if it is currently false. The
// condition lives in the UPDATE itself, so of two concurrent payment
// attempts exactly one sees a row affected.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET is_paid = TRUE, updated_at = $2
		WHERE id = $1 AND is_paid = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, id, paidAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateStatus sets the order's status and estimated time.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, estimatedTime int, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, estimated_time = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status, estimatedTime, updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CreateReview inserts a review for an order.
func (r *orderRepository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.UserID, review.OrderID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", review.OrderID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}
