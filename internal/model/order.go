package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the kitchen-side lifecycle state of an order. Payment is
// tracked separately on the IsPaid flag and is not a status.
type OrderStatus string

// Order lifecycle states, in transition order.
const (
	StatusPending   OrderStatus = "PENDING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusComplete  OrderStatus = "COMPLETE"
)

// nextStatus is the only legal transition out of each state.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusReady,
	StatusReady:     StatusDelivered,
	StatusDelivered: StatusComplete,
}

// CanTransitionTo reports whether the status may move directly to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return nextStatus[s] == target
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReady, StatusDelivered, StatusComplete:
		return true
	}
	return false
}

// Estimated preparation time bounds, in minutes.
const (
	MinEstimatedTime     = 5
	MaxEstimatedTime     = 60
	EstimatedTimeStep    = 5
	DefaultEstimatedTime = 5
)

// ValidEstimatedTime reports whether minutes is a multiple of 5 in [5, 60].
func ValidEstimatedTime(minutes int) bool {
	return minutes >= MinEstimatedTime &&
		minutes <= MaxEstimatedTime &&
		minutes%EstimatedTimeStep == 0
}

// Order is a placed order. TotalPrice is snapshotted from the cart's derived
// total at creation and never recomputed afterwards; the cart lines it was
// built from are deleted, not linked.
type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"userId" db:"user_id"`
	TotalPrice    decimal.Decimal `json:"totalPrice" db:"total_price"`
	IsPaid        bool            `json:"isPaid" db:"is_paid"`
	Status        OrderStatus     `json:"status" db:"status"`
	EstimatedTime int             `json:"estimatedTime" db:"estimated_time"`
	DiningTableID *uuid.UUID      `json:"diningTableId,omitempty" db:"dining_table_id"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// Review is customer feedback on an order, allowed only on the calendar day
// the order was placed.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateOrderRequest is the payload for placing an order from the cart.
type CreateOrderRequest struct {
	DiningTableID uuid.UUID `json:"diningTableId"`
}

// ReviewRequest is the payload for reviewing an order.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// UpdateStatusRequest is the admin payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status        OrderStatus `json:"status"`
	EstimatedTime int         `json:"estimatedTime"`
}
