// Package notifier is the notification sink: a fire-and-forget channel for
// telling a user something happened. Failures are logged and swallowed; a
// lost notification never rolls back the operation that triggered it.
package notifier

import (
	"context"
	"time"

	"cafe-backend/internal/model"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier delivers a message to a user.
type Notifier interface {
	// Notify records a message for the user. Errors are reported for
	// logging only; callers must not fail their own operation on them.
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}

// storeNotifier persists notifications as in-app records.
type storeNotifier struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewStoreNotifier creates a notifier backed by the notification store.
func NewStoreNotifier(repo repository.NotificationRepository, logger zerolog.Logger) Notifier {
	return &storeNotifier{
		repo:   repo,
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Notify writes an in-app notification record.
func (n *storeNotifier) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	notification := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		n.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to deliver notification")
		return err
	}

	n.logger.Debug().Str("user_id", userID.String()).Msg("notification delivered")
	return nil
}
