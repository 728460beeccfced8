package service

import (
	"context"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"
	"cafe-backend/internal/repository"

	"github.com/rs/zerolog"
)

// notificationService implements NotificationService.
type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

// List retrieves the caller's notifications, newest first.
func (s *notificationService) List(ctx context.Context, ident auth.Identity) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, ident.UserID)
}
