package handler

import (
	"net/http"

	"cafe-backend/internal/service"

	"github.com/rs/zerolog"
)

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	notifications, err := h.service.List(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}
