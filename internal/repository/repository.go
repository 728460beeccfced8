package repository

import (
	"context"
	"time"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository defines data access for the menu catalog: categories,
// food items, dining tables and special offers.
type CatalogRepository interface {
	// CreateCategory inserts a new category.
	CreateCategory(ctx context.Context, category *model.Category) error

	// ListCategories retrieves all categories, optionally filtered by a
	// case-insensitive name substring.
	ListCategories(ctx context.Context, nameFilter string) ([]model.Category, error)

	// DeleteCategory removes a category. Returns false if it did not exist.
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	// CountCategories returns the number of categories.
	CountCategories(ctx context.Context) (int, error)

	// CreateFoodItem inserts a new food item.
	CreateFoodItem(ctx context.Context, item *model.FoodItem) error

	// GetFoodItem retrieves a food item by ID. Returns nil when absent.
	GetFoodItem(ctx context.Context, id uuid.UUID) (*model.FoodItem, error)

	// ListFoodItems retrieves food items, optionally restricted to one
	// category and/or to available items only.
	ListFoodItems(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]model.FoodItem, error)

	// UpdateFoodItem persists changes to an existing food item. Returns
	// false if the item did not exist.
	UpdateFoodItem(ctx context.Context, item *model.FoodItem) (bool, error)

	// DeleteFoodItem removes a food item. Returns false if it did not exist.
	DeleteFoodItem(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateDiningTable inserts a new dining table.
	CreateDiningTable(ctx context.Context, table *model.DiningTable) error

	// GetDiningTable retrieves a dining table by ID. Returns nil when absent.
	GetDiningTable(ctx context.Context, id uuid.UUID) (*model.DiningTable, error)

	// ListDiningTables retrieves all dining tables ordered by table number.
	ListDiningTables(ctx context.Context) ([]model.DiningTable, error)

	// CreateOffer inserts a new special offer.
	CreateOffer(ctx context.Context, offer *model.SpecialOffer) error

	// ListOffers retrieves all special offers.
	ListOffers(ctx context.Context) ([]model.SpecialOffer, error)

	// GetOffersForItems retrieves the offers targeting any of the given
	// food items, grouped by food item ID.
	GetOffersForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]model.SpecialOffer, error)

	// DeleteOffer removes a special offer. Returns false if it did not exist.
	DeleteOffer(ctx context.Context, id uuid.UUID) (bool, error)
}

// CartRepository defines data access for carts and cart items.
type CartRepository interface {
	// GetOrCreateCart returns the user's cart, creating it on first use.
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// AddItem inserts a new cart line. Returns model.ErrItemAlreadyInCart
	// when a line for the same food item already exists; the check is the
	// database uniqueness constraint, not a read-then-write.
	AddItem(ctx context.Context, item *model.CartItem) error

	// ListItems retrieves the cart's lines with their food items joined.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)

	// UpdateQuantity changes a line's quantity. Returns false if the line
	// does not belong to the given cart.
	UpdateQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (bool, error)

	// RemoveItem deletes a line. Returns false if the line does not belong
	// to the given cart.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)

	// DeleteAllItems removes every line from the cart within the provided
	// transaction. Used when a cart is converted into an order.
	DeleteAllItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// OrderRepository defines data access for orders and reviews.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves the user's orders, most recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// MarkPaid flips is_paid to true only if it is currently false.
	// Returns false when the order was already paid, so two concurrent
	// payment attempts yield exactly one success.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)

	// UpdateStatus sets the order's status and estimated time. Returns
	// false if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, estimatedTime int, updatedAt time.Time) (bool, error)

	// CreateReview inserts a review for an order.
	CreateReview(ctx context.Context, review *model.Review) error
}

// LoyaltyRepository defines data access for the points ledger.
type LoyaltyRepository interface {
	// GetBalance retrieves the user's point balance. Returns nil when the
	// user has never earned points.
	GetBalance(ctx context.Context, userID uuid.UUID) (*model.CustomerPoint, error)

	// CreditForOrder credits points for an order: get-or-create the
	// balance, append the transaction and add the points, all in one
	// database transaction. Returns false without side effects when a
	// transaction for the order already exists, making the credit
	// idempotent per order.
	CreditForOrder(ctx context.Context, userID uuid.UUID, txn *model.PointTransaction) (bool, error)

	// Redeem atomically debits the balance and records the redemption.
	// Returns false without side effects when the balance is insufficient;
	// the check and the debit are a single conditional update so two
	// concurrent redemptions cannot both succeed on one balance.
	Redeem(ctx context.Context, txn *model.RedemptionTransaction) (bool, error)

	// ListTransactions retrieves the user's earn history, newest first.
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.PointTransaction, error)

	// CreateOption inserts a redemption option.
	CreateOption(ctx context.Context, option *model.RedemptionOption) error

	// GetOption retrieves a redemption option by ID. Returns nil when absent.
	GetOption(ctx context.Context, id uuid.UUID) (*model.RedemptionOption, error)

	// ListOptions retrieves all redemption options ordered by points required.
	ListOptions(ctx context.Context) ([]model.RedemptionOption, error)
}

// NotificationRepository defines data access for in-app notifications.
type NotificationRepository interface {
	// Create inserts a notification.
	Create(ctx context.Context, notification *model.Notification) error

	// ListByUser retrieves the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
}
