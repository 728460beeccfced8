package service

import (
	"context"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"
	"cafe-backend/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService defines operations on the menu catalog. Reads are open to
// any authenticated caller; writes require the admin role.
type CatalogService interface {
	// Menu retrieves available food items with their current effective
	// prices, optionally restricted to one category.
	Menu(ctx context.Context, ident auth.Identity, categoryID *uuid.UUID) ([]model.MenuItem, error)

	// MenuItem retrieves a single food item priced at the current instant.
	MenuItem(ctx context.Context, ident auth.Identity, id uuid.UUID) (*model.MenuItem, error)

	// CreateCategory creates a category. Admin only.
	CreateCategory(ctx context.Context, ident auth.Identity, req *model.CreateCategoryRequest) (*model.Category, error)

	// ListCategories lists categories, optionally filtered by name. Admin only.
	ListCategories(ctx context.Context, ident auth.Identity, nameFilter string) ([]model.Category, error)

	// DeleteCategory deletes a category. Admin only.
	DeleteCategory(ctx context.Context, ident auth.Identity, id uuid.UUID) error

	// CreateFoodItem creates a food item under a category. Admin only.
	CreateFoodItem(ctx context.Context, ident auth.Identity, req *model.FoodItemRequest) (*model.FoodItem, error)

	// UpdateFoodItem updates a food item. Admin only.
	UpdateFoodItem(ctx context.Context, ident auth.Identity, id uuid.UUID, req *model.FoodItemRequest) (*model.FoodItem, error)

	// DeleteFoodItem deletes a food item. Admin only.
	DeleteFoodItem(ctx context.Context, ident auth.Identity, id uuid.UUID) error

	// CreateDiningTable creates a dining table. Admin only.
	CreateDiningTable(ctx context.Context, ident auth.Identity, req *model.CreateTableRequest) (*model.DiningTable, error)

	// ListDiningTables lists all dining tables.
	ListDiningTables(ctx context.Context, ident auth.Identity) ([]model.DiningTable, error)

	// CreateOffer creates a special offer. Admin only.
	CreateOffer(ctx context.Context, ident auth.Identity, req *model.CreateOfferRequest) (*model.SpecialOffer, error)

	// ListOffers lists all special offers. Admin only.
	ListOffers(ctx context.Context, ident auth.Identity) ([]model.SpecialOffer, error)

	// DeleteOffer deletes a special offer. Admin only.
	DeleteOffer(ctx context.Context, ident auth.Identity, id uuid.UUID) error
}

// CartService defines operations on the caller's shopping cart.
type CartService interface {
	// AddItem adds a food item to the caller's cart. A second add for the
	// same food item is rejected, never merged into the existing line.
	AddItem(ctx context.Context, ident auth.Identity, req *model.AddItemRequest) (*model.CartLine, error)

	// UpdateQuantity changes the quantity of a line in the caller's cart.
	UpdateQuantity(ctx context.Context, ident auth.Identity, itemID uuid.UUID, quantity int) error

	// RemoveItem removes a line from the caller's cart.
	RemoveItem(ctx context.Context, ident auth.Identity, itemID uuid.UUID) error

	// View retrieves the caller's cart with per-line and total prices,
	// recomputed against currently active offers on every call.
	View(ctx context.Context, ident auth.Identity) (*model.CartView, error)
}

// OrderService defines the order lifecycle.
type OrderService interface {
	// Create converts the caller's non-empty cart into an order bound to a
	// dining table, snapshotting the total and clearing the cart atomically.
	Create(ctx context.Context, ident auth.Identity, diningTableID uuid.UUID) (*model.Order, error)

	// Get retrieves one of the caller's orders.
	Get(ctx context.Context, ident auth.Identity, orderID uuid.UUID) (*model.Order, error)

	// Pay marks the order paid exactly once, credits loyalty points and
	// notifies the user. A second payment attempt fails with a conflict.
	Pay(ctx context.Context, ident auth.Identity, orderID uuid.UUID) (*model.Order, error)

	// Review records a review for an order placed today.
	Review(ctx context.Context, ident auth.Identity, orderID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)

	// History retrieves the caller's orders, most recently updated first.
	History(ctx context.Context, ident auth.Identity) ([]model.Order, error)

	// AdvanceStatus moves an order to the next lifecycle state. Admin only.
	AdvanceStatus(ctx context.Context, ident auth.Identity, orderID uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error)
}

// LoyaltyService defines the points ledger operations.
type LoyaltyService interface {
	// Balance retrieves the caller's point balance; a user who has never
	// earned points sees a zero balance.
	Balance(ctx context.Context, ident auth.Identity) (*model.CustomerPoint, error)

	// Transactions retrieves the caller's earn history, newest first.
	Transactions(ctx context.Context, ident auth.Identity) ([]model.PointTransaction, error)

	// Options lists the redemption catalog.
	Options(ctx context.Context, ident auth.Identity) ([]model.RedemptionOption, error)

	// Redeem exchanges points for a redemption option. An insufficient
	// balance returns a nil transaction and no error; the balance is
	// left unchanged.
	Redeem(ctx context.Context, ident auth.Identity, optionID uuid.UUID) (*model.RedemptionTransaction, error)

	// CreateOption adds a redemption option to the catalog. Admin only.
	CreateOption(ctx context.Context, ident auth.Identity, req *model.CreateOptionRequest) (*model.RedemptionOption, error)

	// CreditForOrder awards points for a paid order, at most once per
	// order. Invoked by the order lifecycle on payment.
	CreditForOrder(ctx context.Context, order *model.Order) error
}

// NotificationService defines read access to a user's notifications.
type NotificationService interface {
	// List retrieves the caller's notifications, newest first.
	List(ctx context.Context, ident auth.Identity) ([]model.Notification, error)
}

// priceLines prices cart items at now and returns the lines together with
// the derived cart total. offers maps food item ID to that item's offers.
func priceLines(items []model.CartItem, offers map[uuid.UUID][]model.SpecialOffer, now time.Time) ([]model.CartLine, decimal.Decimal) {
	lines := make([]model.CartLine, len(items))
	total := decimal.Zero

	for i, item := range items {
		price := pricing.EffectivePrice(item.FoodItem.Price, offers[item.FoodItemID], now)
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines[i] = model.CartLine{
			CartItem:   item,
			Price:      price,
			TotalPrice: lineTotal,
		}
		total = total.Add(lineTotal)
	}

	return lines, total
}
