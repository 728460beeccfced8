package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerPoint is a user's loyalty point balance. Each user has at most
// one balance row; it never goes negative.
type CustomerPoint struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"userId" db:"user_id"`
	Points int       `json:"points" db:"points"`
}

// PointTransaction records a single point-earning event. At most one
// transaction exists per order, enforced by a uniqueness constraint on
// order_id so that a duplicate credit attempt cannot double-award points.
type PointTransaction struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CustomerPointID uuid.UUID       `json:"-" db:"customer_point_id"`
	OrderID         uuid.UUID       `json:"orderId" db:"order_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PointsEarned    int             `json:"pointsEarned" db:"points_earned"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// RedemptionOption is a catalog reward that points can be exchanged for.
type RedemptionOption struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	PointsRequired int       `json:"pointsRequired" db:"points_required"`
	Description    string    `json:"description" db:"description"`
}

// RedemptionTransaction records a successful redemption. It exists only if
// the balance sufficed at redemption time; the balance debit and the record
// write happen atomically.
type RedemptionTransaction struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	UserID             uuid.UUID `json:"userId" db:"user_id"`
	RedemptionOptionID uuid.UUID `json:"redemptionOptionId" db:"redemption_option_id"`
	PointsSpent        int       `json:"pointsSpent" db:"points_spent"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// RedeemRequest is the payload for redeeming points against an option.
type RedeemRequest struct {
	RedemptionOptionID uuid.UUID `json:"redemptionOptionId"`
}

// CreateOptionRequest is the admin payload for adding a redemption option.
type CreateOptionRequest struct {
	Name           string `json:"name"`
	PointsRequired int    `json:"pointsRequired"`
	Description    string `json:"description"`
}
