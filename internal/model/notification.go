package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message for a user, written fire-and-forget
// after events such as a successful payment.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
