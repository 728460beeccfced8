package repository

import (
	"context"
	"fmt"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements NotificationRepository using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a notification.
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		notification.ID, notification.UserID, notification.Message, notification.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", notification.UserID.String()).Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, message, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}
