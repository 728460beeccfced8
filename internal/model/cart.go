package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a user's shopping cart. Each user has at most one cart, created
// lazily on first use. The cart stores no total; totals are always derived
// from the current line items and active offers.
type Cart struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"userId" db:"user_id"`
}

// CartItem is one line in a cart. A cart holds at most one line per food
// item, enforced by a uniqueness constraint on (cart_id, food_item_id).
type CartItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CartID     uuid.UUID `json:"-" db:"cart_id"`
	FoodItemID uuid.UUID `json:"-" db:"food_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// FoodItem is the joined catalog entry, populated on reads.
	FoodItem FoodItem `json:"foodItem"`
}

// CartLine is a cart item priced at read time: unit price after any active
// offer, and the line total (price x quantity).
type CartLine struct {
	CartItem
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CartView is the derived read model of a cart, recomputed on every read.
type CartView struct {
	ID         uuid.UUID       `json:"id"`
	Items      []CartLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// AddItemRequest is the payload for adding a food item to the cart.
type AddItemRequest struct {
	FoodItemID uuid.UUID `json:"foodItemId"`
	Quantity   int       `json:"quantity"`
}

// UpdateQuantityRequest is the payload for changing a cart line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
