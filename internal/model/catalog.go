package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups food items on the menu.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// FoodItem is a single menu entry. Price is the base unit price before any
// special offer is applied.
type FoodItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CategoryID  uuid.UUID       `json:"categoryId" db:"category_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	IsAvailable bool            `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// DiningTable is a physical table an order can be bound to.
type DiningTable struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TableNumber int       `json:"tableNumber" db:"table_number"`
	IsOccupied  bool      `json:"isOccupied" db:"is_occupied"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// SpecialOffer discounts a single food item within a date window.
// The window is inclusive at both ends: the offer is active at StartDate
// and still active at EndDate.
type SpecialOffer struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	FoodItemID         uuid.UUID       `json:"foodItemId" db:"food_item_id"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" db:"discount_percentage"`
	StartDate          time.Time       `json:"startDate" db:"start_date"`
	EndDate            time.Time       `json:"endDate" db:"end_date"`
	Description        string          `json:"description,omitempty" db:"description"`
}

// ActiveAt reports whether the offer window contains the given instant.
func (o SpecialOffer) ActiveAt(now time.Time) bool {
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}

// MenuItem is the customer-facing read model of a food item: the base price
// plus the effective price after the currently active offer, if any.
type MenuItem struct {
	FoodItem
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
}

// CreateCategoryRequest is the admin payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FoodItemRequest is the admin payload for creating or updating a food item.
type FoodItemRequest struct {
	CategoryID  uuid.UUID       `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
}

// CreateTableRequest is the admin payload for creating a dining table.
type CreateTableRequest struct {
	TableNumber int `json:"tableNumber"`
}

// CreateOfferRequest is the admin payload for creating a special offer.
type CreateOfferRequest struct {
	Name               string          `json:"name"`
	FoodItemID         uuid.UUID       `json:"foodItemId"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	Description        string          `json:"description"`
}
