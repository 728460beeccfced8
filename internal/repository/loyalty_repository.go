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

// loyaltyRepository implements the LoyaltyRepository interface using PostgreSQL.
type loyaltyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLoyaltyRepository creates a new PostgreSQL-backed loyalty repository.
func NewLoyaltyRepository(pool *pgxpool.Pool, logger zerolog.Logger) LoyaltyRepository {
	return &loyaltyRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "loyalty").Logger(),
	}
}

// GetBalance retrieves the user's point balance.
func (r *loyaltyRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*model.CustomerPoint, error) {
	query := `SELECT id, user_id, points FROM customer_points WHERE user_id = $1`

	var balance model.CustomerPoint
	err := r.pool.QueryRow(ctx, query, userID).Scan(&balance.ID, &balance.UserID, &balance.Points)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query point balance")
		return nil, fmt.Errorf("failed to query point balance: %w", err)
	}

	return &balance, nil
}

// CreditForOrder credits points for an order inside a single database
// transaction. The unique constraint on point_transactions.order_id is the
// idempotency guard: if a transaction for this order already exists, nothing
// is inserted and the balance is left untouched.
func (r *loyaltyRepository) CreditForOrder(ctx context.Context, userID uuid.UUID, txn *model.PointTransaction) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Get or create the balance row.
	upsert := `
		INSERT INTO customer_points (id, user_id, points)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, upsert, uuid.New(), userID); err != nil {
		return false, fmt.Errorf("failed to create point balance: %w", err)
	}

	var balanceID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM customer_points WHERE user_id = $1`, userID).Scan(&balanceID)
	if err != nil {
		return false, fmt.Errorf("failed to query point balance: %w", err)
	}
	txn.CustomerPointID = balanceID

	insert := `
		INSERT INTO point_transactions (id, customer_point_id, order_id, amount, points_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, insert,
		txn.ID, txn.CustomerPointID, txn.OrderID, txn.Amount, txn.PointsEarned, txn.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to record point transaction: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Already credited for this order.
		r.logger.Warn().
			Str("order_id", txn.OrderID.String()).
			Msg("duplicate credit attempt ignored")
		return false, nil
	}

	credit := `UPDATE customer_points SET points = points + $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, credit, balanceID, txn.PointsEarned); err != nil {
		return false, fmt.Errorf("failed to credit points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit credit: %w", err)
	}

	r.logger.Info().
		Str("order_id", txn.OrderID.String()).
		Str("user_id", userID.String()).
		Int("points_earned", txn.PointsEarned).
		Msg("points credited")

	return true, nil
}

// Redeem atomically debits the balance and records the redemption. The
// sufficiency check is part of the UPDATE predicate, so two concurrent
// redemptions against one balance cannot both succeed when only one fits.
func (r *loyaltyRepository) Redeem(ctx context.Context, txn *model.RedemptionTransaction) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	debit := `
		UPDATE customer_points
		SET points = points - $2
		WHERE user_id = $1 AND points >= $2
	`
	tag, err := tx.Exec(ctx, debit, txn.UserID, txn.PointsSpent)
	if err != nil {
		return false, fmt.Errorf("failed to debit points: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Insufficient balance (or no balance row at all).
		return false, nil
	}

	insert := `
		INSERT INTO redemption_transactions (id, user_id, redemption_option_id, points_spent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.Exec(ctx, insert,
		txn.ID, txn.UserID, txn.RedemptionOptionID, txn.PointsSpent, txn.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to record redemption: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit redemption: %w", err)
	}

	r.logger.Info().
		Str("user_id", txn.UserID.String()).
		Int("points_spent", txn.PointsSpent).
		Msg("points redeemed")

	return true, nil
}

// ListTransactions retrieves the user's earn history, newest first.
func (r *loyaltyRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.PointTransaction, error) {
	query := `
		SELECT pt.id, pt.customer_point_id, pt.order_id, pt.amount, pt.points_earned, pt.created_at
		FROM point_transactions pt
		JOIN customer_points cp ON cp.id = pt.customer_point_id
		WHERE cp.user_id = $1
		ORDER BY pt.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query point transactions")
		return nil, fmt.Errorf("failed to query point transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.PointTransaction
	for rows.Next() {
		var t model.PointTransaction
		err := rows.Scan(&t.ID, &t.CustomerPointID, &t.OrderID, &t.Amount, &t.PointsEarned, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point transactions: %w", err)
	}

	return txns, nil
}

// CreateOption inserts a redemption option.
func (r *loyaltyRepository) CreateOption(ctx context.Context, option *model.RedemptionOption) error {
	query := `
		INSERT INTO redemption_options (id, name, points_required, description)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		option.ID, option.Name, option.PointsRequired, option.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("name", option.Name).Msg("failed to create redemption option")
		return fmt.Errorf("failed to create redemption option: %w", err)
	}

	return nil
}

// GetOption retrieves a redemption option by ID.
func (r *loyaltyRepository) GetOption(ctx context.Context, id uuid.UUID) (*model.RedemptionOption, error) {
	query := `SELECT id, name, points_required, description FROM redemption_options WHERE id = $1`

	var option model.RedemptionOption
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&option.ID, &option.Name, &option.PointsRequired, &option.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("option_id", id.String()).Msg("failed to query redemption option")
		return nil, fmt.Errorf("failed to query redemption option: %w", err)
	}

	return &option, nil
}

// ListOptions retrieves all redemption options ordered by points required.
func (r *loyaltyRepository) ListOptions(ctx context.Context) ([]model.RedemptionOption, error) {
	query := `
		SELECT id, name, points_required, description
		FROM redemption_options
		ORDER BY points_required
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query redemption options")
		return nil, fmt.Errorf("failed to query redemption options: %w", err)
	}
	defer rows.Close()

	var options []model.RedemptionOption
	for rows.Next() {
		var o model.RedemptionOption
		if err := rows.Scan(&o.ID, &o.Name, &o.PointsRequired, &o.Description); err != nil {
			return nil, fmt.Errorf("failed to scan redemption option: %w", err)
		}
		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redemption options: %w", err)
	}

	return options, nil
}
