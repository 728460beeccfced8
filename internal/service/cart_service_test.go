package service

import (
	"context"
	"testing"
	"time"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestCartService wires a cart service with mocks and a fixed clock.
func newTestCartService(cartRepo *MockCartRepository, catalogRepo *MockCatalogRepository, now time.Time) *cartService {
	svc := NewCartService(cartRepo, catalogRepo, zerolog.Nop()).(*cartService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCartService_AddItem_Success(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	foodItem := &model.FoodItem{ID: uuid.New(), Name: "Latte", Price: decimal.NewFromInt(100)}
	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}

	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)

	svc := newTestCartService(mockCartRepo, mockCatalogRepo, now)

	mockCatalogRepo.On("GetFoodItem", ctx, foodItem.ID).Return(foodItem, nil)
	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("AddItem", ctx, mock.AnythingOfType("*model.CartItem")).Return(nil)
	mockCatalogRepo.On("GetOffersForItems", ctx, []uuid.UUID{foodItem.ID}).Return(map[uuid.UUID][]model.SpecialOffer{}, nil)

	line, err := svc.AddItem(ctx, ident, &model.AddItemRequest{FoodItemID: foodItem.ID, Quantity: 3})

	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, line.TotalPrice.Equal(decimal.NewFromInt(300)))

	mockCartRepo.AssertExpectations(t)
	mockCatalogRepo.AssertExpectations(t)
}

func TestCartService_AddItem_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	foodItem := &model.FoodItem{ID: uuid.New(), Name: "Latte", Price: decimal.NewFromInt(100)}
	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}

	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)

	svc := newTestCartService(mockCartRepo, mockCatalogRepo, time.Now())

	mockCatalogRepo.On("GetFoodItem", ctx, foodItem.ID).Return(foodItem, nil)
	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("AddItem", ctx, mock.AnythingOfType("*model.CartItem")).Return(model.ErrItemAlreadyInCart)

	line, err := svc.AddItem(ctx, ident, &model.AddItemRequest{FoodItemID: foodItem.ID, Quantity: 1})

	assert.Nil(t, line)
	assert.ErrorIs(t, err, model.ErrItemAlreadyInCart)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	svc := newTestCartService(new(MockCartRepository), new(MockCatalogRepository), time.Now())

	for _, quantity := range []int{0, -2} {
		line, err := svc.AddItem(context.Background(), customerIdentity(), &model.AddItemRequest{FoodItemID: uuid.New(), Quantity: quantity})
		assert.Nil(t, line)
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	}
}

func TestCartService_AddItem_UnknownFoodItem(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	mockCatalogRepo := new(MockCatalogRepository)
	svc := newTestCartService(new(MockCartRepository), mockCatalogRepo, time.Now())

	itemID := uuid.New()
	mockCatalogRepo.On("GetFoodItem", ctx, itemID).Return(nil, nil)

	line, err := svc.AddItem(ctx, ident, &model.AddItemRequest{FoodItemID: itemID, Quantity: 1})

	assert.Nil(t, line)
	assert.ErrorIs(t, err, model.ErrFoodItemNotFound)
}

func TestCartService_AddItem_AdminForbidden(t *testing.T) {
	svc := newTestCartService(new(MockCartRepository), new(MockCatalogRepository), time.Now())

	line, err := svc.AddItem(context.Background(), adminIdentity(), &model.AddItemRequest{FoodItemID: uuid.New(), Quantity: 1})

	assert.Nil(t, line)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestCartService_UpdateQuantity_Success(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}
	itemID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	svc := newTestCartService(mockCartRepo, new(MockCatalogRepository), time.Now())

	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("UpdateQuantity", ctx, cart.ID, itemID, 5).Return(true, nil)

	err := svc.UpdateQuantity(ctx, ident, itemID, 5)

	require.NoError(t, err)
	mockCartRepo.AssertExpectations(t)
}

func TestCartService_UpdateQuantity_LineNotInCart(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}
	itemID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	svc := newTestCartService(mockCartRepo, new(MockCatalogRepository), time.Now())

	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("UpdateQuantity", ctx, cart.ID, itemID, 2).Return(false, nil)

	err := svc.UpdateQuantity(ctx, ident, itemID, 2)

	assert.ErrorIs(t, err, model.ErrCartItemNotFound)
}

func TestCartService_UpdateQuantity_InvalidQuantity(t *testing.T) {
	svc := newTestCartService(new(MockCartRepository), new(MockCatalogRepository), time.Now())

	err := svc.UpdateQuantity(context.Background(), customerIdentity(), uuid.New(), 0)

	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestCartService_RemoveItem_Success(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}
	itemID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	svc := newTestCartService(mockCartRepo, new(MockCatalogRepository), time.Now())

	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("RemoveItem", ctx, cart.ID, itemID).Return(true, nil)

	err := svc.RemoveItem(ctx, ident, itemID)

	require.NoError(t, err)
}

func TestCartService_View_TotalReflectsActiveOffers(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}

	discountedID := uuid.New()
	plainID := uuid.New()
	items := []model.CartItem{
		{ID: uuid.New(), CartID: cart.ID, FoodItemID: discountedID, Quantity: 2, FoodItem: model.FoodItem{ID: discountedID, Price: decimal.NewFromInt(150)}},
		{ID: uuid.New(), CartID: cart.ID, FoodItemID: plainID, Quantity: 1, FoodItem: model.FoodItem{ID: plainID, Price: decimal.NewFromInt(80)}},
	}

	offers := map[uuid.UUID][]model.SpecialOffer{
		discountedID: {{
			ID:                 uuid.New(),
			FoodItemID:         discountedID,
			DiscountPercentage: decimal.NewFromInt(20),
			StartDate:          now.Add(-time.Hour),
			EndDate:            now.Add(time.Hour),
		}},
	}

	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)

	svc := newTestCartService(mockCartRepo, mockCatalogRepo, now)

	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("ListItems", ctx, cart.ID).Return(items, nil)
	mockCatalogRepo.On("GetOffersForItems", ctx, []uuid.UUID{discountedID, plainID}).Return(offers, nil)

	view, err := svc.View(ctx, ident)

	require.NoError(t, err)
	require.NotNil(t, view)
	require.Len(t, view.Items, 2)

	// 150 at 20% off is 120 per unit; 2 x 120 + 1 x 80 = 320.
	assert.True(t, view.Items[0].Price.Equal(decimal.NewFromInt(120)), "got %s", view.Items[0].Price)
	assert.True(t, view.Items[0].TotalPrice.Equal(decimal.NewFromInt(240)))
	assert.True(t, view.Items[1].Price.Equal(decimal.NewFromInt(80)))
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(320)), "got %s", view.TotalPrice)
}

func TestCartService_View_ExpiredOfferIgnored(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}
	itemID := uuid.New()
	items := []model.CartItem{
		{ID: uuid.New(), CartID: cart.ID, FoodItemID: itemID, Quantity: 1, FoodItem: model.FoodItem{ID: itemID, Price: decimal.NewFromInt(150)}},
	}

	offers := map[uuid.UUID][]model.SpecialOffer{
		itemID: {{
			ID:                 uuid.New(),
			FoodItemID:         itemID,
			DiscountPercentage: decimal.NewFromInt(50),
			StartDate:          now.Add(-48 * time.Hour),
			EndDate:            now.Add(-24 * time.Hour),
		}},
	}

	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)

	svc := newTestCartService(mockCartRepo, mockCatalogRepo, now)

	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("ListItems", ctx, cart.ID).Return(items, nil)
	mockCatalogRepo.On("GetOffersForItems", ctx, []uuid.UUID{itemID}).Return(offers, nil)

	view, err := svc.View(ctx, ident)

	require.NoError(t, err)
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(150)), "got %s", view.TotalPrice)
}
