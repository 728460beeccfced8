package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func customerIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Role: auth.RoleCustomer}
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}
}

// newTestOrderService wires an order service with mocks and a fixed clock.
func newTestOrderService(
	orderRepo *MockOrderRepository,
	cartRepo *MockCartRepository,
	catalogRepo *MockCatalogRepository,
	loyalty *MockLoyaltyService,
	n *MockNotifier,
	now time.Time,
) *orderService {
	svc := NewOrderService(orderRepo, cartRepo, catalogRepo, loyalty, n, zerolog.Nop()).(*orderService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestOrderService_Create_Success(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	table := &model.DiningTable{ID: uuid.New(), TableNumber: 4}
	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}

	itemID := uuid.New()
	items := []model.CartItem{
		{
			ID:         uuid.New(),
			CartID:     cart.ID,
			FoodItemID: itemID,
			Quantity:   2,
			FoodItem:   model.FoodItem{ID: itemID, Name: "Latte", Price: decimal.NewFromInt(150)},
		},
	}

	// 20% off brings the unit price to 120, so two units total 240.
	offers := map[uuid.UUID][]model.SpecialOffer{
		itemID: {{
			ID:                 uuid.New(),
			FoodItemID:         itemID,
			DiscountPercentage: decimal.NewFromInt(20),
			StartDate:          now.Add(-time.Hour),
			EndDate:            now.Add(time.Hour),
		}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)
	mockLoyalty := new(MockLoyaltyService)
	mockNotifier := new(MockNotifier)
	mockTx := new(MockTx)

	svc := newTestOrderService(mockOrderRepo, mockCartRepo, mockCatalogRepo, mockLoyalty, mockNotifier, now)

	mockCatalogRepo.On("GetDiningTable", ctx, table.ID).Return(table, nil)
	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("ListItems", ctx, cart.ID).Return(items, nil)
	mockCatalogRepo.On("GetOffersForItems", ctx, []uuid.UUID{itemID}).Return(offers, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockCartRepo.On("DeleteAllItems", ctx, mockTx, cart.ID).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := svc.Create(ctx, ident, table.ID)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(240)), "got total %s", order.TotalPrice)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.Equal(t, model.DefaultEstimatedTime, order.EstimatedTime)
	require.NotNil(t, order.DiningTableID)
	assert.Equal(t, table.ID, *order.DiningTableID)
	assert.True(t, mockTx.committed)

	mockOrderRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
	mockCatalogRepo.AssertExpectations(t)
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Now()

	table := &model.DiningTable{ID: uuid.New(), TableNumber: 1}
	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)

	svc := newTestOrderService(mockOrderRepo, mockCartRepo, mockCatalogRepo, new(MockLoyaltyService), new(MockNotifier), now)

	mockCatalogRepo.On("GetDiningTable", ctx, table.ID).Return(table, nil)
	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("ListItems", ctx, cart.ID).Return([]model.CartItem{}, nil)

	order, err := svc.Create(ctx, ident, table.ID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, model.ErrCartEmpty)
	mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_Create_UnknownTable(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	mockCatalogRepo := new(MockCatalogRepository)
	svc := newTestOrderService(new(MockOrderRepository), new(MockCartRepository), mockCatalogRepo, new(MockLoyaltyService), new(MockNotifier), time.Now())

	tableID := uuid.New()
	mockCatalogRepo.On("GetDiningTable", ctx, tableID).Return(nil, nil)

	order, err := svc.Create(ctx, ident, tableID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, model.ErrTableNotFound)
}

func TestOrderService_Create_AdminForbidden(t *testing.T) {
	svc := newTestOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	order, err := svc.Create(context.Background(), adminIdentity(), uuid.New())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestOrderService_Create_RollbackOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Now()

	table := &model.DiningTable{ID: uuid.New(), TableNumber: 2}
	cart := &model.Cart{ID: uuid.New(), UserID: ident.UserID}
	itemID := uuid.New()
	items := []model.CartItem{
		{ID: uuid.New(), CartID: cart.ID, FoodItemID: itemID, Quantity: 1, FoodItem: model.FoodItem{ID: itemID, Price: decimal.NewFromInt(10)}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockCatalogRepo := new(MockCatalogRepository)
	mockTx := new(MockTx)

	svc := newTestOrderService(mockOrderRepo, mockCartRepo, mockCatalogRepo, new(MockLoyaltyService), new(MockNotifier), now)

	mockCatalogRepo.On("GetDiningTable", ctx, table.ID).Return(table, nil)
	mockCartRepo.On("GetOrCreateCart", ctx, ident.UserID).Return(cart, nil)
	mockCartRepo.On("ListItems", ctx, cart.ID).Return(items, nil)
	mockCatalogRepo.On("GetOffersForItems", ctx, []uuid.UUID{itemID}).Return(map[uuid.UUID][]model.SpecialOffer{}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(errors.New("insert failed"))
	mockTx.On("Rollback", ctx).Return(nil)

	order, err := svc.Create(ctx, ident, table.ID)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockCartRepo.AssertNotCalled(t, "DeleteAllItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Pay_Success(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	order := &model.Order{
		ID:         uuid.New(),
		UserID:     ident.UserID,
		TotalPrice: decimal.NewFromInt(240),
		Status:     model.StatusPending,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockLoyalty := new(MockLoyaltyService)
	mockNotifier := new(MockNotifier)

	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), mockLoyalty, mockNotifier, now)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("MarkPaid", ctx, order.ID, now).Return(true, nil)
	mockLoyalty.On("CreditForOrder", ctx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockNotifier.On("Notify", ctx, ident.UserID, mock.AnythingOfType("string")).Return(nil)

	paid, err := svc.Pay(ctx, ident, order.ID)

	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.True(t, paid.IsPaid)

	mockOrderRepo.AssertExpectations(t)
	mockLoyalty.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestOrderService_Pay_AlreadyPaid(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	order := &model.Order{ID: uuid.New(), UserID: ident.UserID, IsPaid: true}

	mockOrderRepo := new(MockOrderRepository)
	mockLoyalty := new(MockLoyaltyService)

	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), mockLoyalty, new(MockNotifier), time.Now())

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	paid, err := svc.Pay(ctx, ident, order.ID)

	assert.Nil(t, paid)
	assert.ErrorIs(t, err, model.ErrOrderAlreadyPaid)
	mockOrderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	mockLoyalty.AssertNotCalled(t, "CreditForOrder", mock.Anything, mock.Anything)
}

func TestOrderService_Pay_LostRace(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Now()

	order := &model.Order{ID: uuid.New(), UserID: ident.UserID, IsPaid: false}

	mockOrderRepo := new(MockOrderRepository)
	mockLoyalty := new(MockLoyaltyService)

	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), mockLoyalty, new(MockNotifier), now)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("MarkPaid", ctx, order.ID, now).Return(false, nil)

	paid, err := svc.Pay(ctx, ident, order.ID)

	assert.Nil(t, paid)
	assert.ErrorIs(t, err, model.ErrOrderAlreadyPaid)
	mockLoyalty.AssertNotCalled(t, "CreditForOrder", mock.Anything, mock.Anything)
}

func TestOrderService_Pay_CreditFailureDoesNotFailPayment(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()
	now := time.Now()

	order := &model.Order{ID: uuid.New(), UserID: ident.UserID, TotalPrice: decimal.NewFromInt(500)}

	mockOrderRepo := new(MockOrderRepository)
	mockLoyalty := new(MockLoyaltyService)
	mockNotifier := new(MockNotifier)

	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), mockLoyalty, mockNotifier, now)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("MarkPaid", ctx, order.ID, now).Return(true, nil)
	mockLoyalty.On("CreditForOrder", ctx, mock.AnythingOfType("*model.Order")).Return(errors.New("ledger down"))
	mockNotifier.On("Notify", ctx, ident.UserID, mock.AnythingOfType("string")).Return(nil)

	paid, err := svc.Pay(ctx, ident, order.ID)

	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.True(t, paid.IsPaid)
}

func TestOrderService_Pay_OtherUsersOrder(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	order := &model.Order{ID: uuid.New(), UserID: uuid.New()}

	mockOrderRepo := new(MockOrderRepository)
	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	paid, err := svc.Pay(ctx, ident, order.ID)

	assert.Nil(t, paid)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_Get_AdminSeesAnyOrder(t *testing.T) {
	ctx := context.Background()

	order := &model.Order{ID: uuid.New(), UserID: uuid.New()}

	mockOrderRepo := new(MockOrderRepository)
	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	got, err := svc.Get(ctx, adminIdentity(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestOrderService_Review_SameDay(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	placedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reviewedAt := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	order := &model.Order{ID: uuid.New(), UserID: ident.UserID, CreatedAt: placedAt}

	mockOrderRepo := new(MockOrderRepository)
	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), reviewedAt)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("CreateReview", ctx, mock.AnythingOfType("*model.Review")).Return(nil)

	review, err := svc.Review(ctx, ident, order.ID, &model.ReviewRequest{Rating: 5, Comment: "great"})

	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, order.ID, review.OrderID)
}

func TestOrderService_Review_NextDayRejected(t *testing.T) {
	ctx := context.Background()
	ident := customerIdentity()

	placedAt := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	reviewedAt := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	order := &model.Order{ID: uuid.New(), UserID: ident.UserID, CreatedAt: placedAt}

	mockOrderRepo := new(MockOrderRepository)
	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), reviewedAt)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	review, err := svc.Review(ctx, ident, order.ID, &model.ReviewRequest{Rating: 4})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, model.ErrReviewWindowOver)
	mockOrderRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestOrderService_Review_InvalidRating(t *testing.T) {
	svc := newTestOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	for _, rating := range []int{0, -1, 6} {
		review, err := svc.Review(context.Background(), customerIdentity(), uuid.New(), &model.ReviewRequest{Rating: rating})
		assert.Nil(t, review)
		assert.ErrorIs(t, err, model.ErrInvalidRating)
	}
}

func TestOrderService_AdvanceStatus_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	order := &model.Order{ID: uuid.New(), UserID: uuid.New(), Status: model.StatusPending}

	mockOrderRepo := new(MockOrderRepository)
	mockNotifier := new(MockNotifier)

	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), mockNotifier, now)

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	mockOrderRepo.On("UpdateStatus", ctx, order.ID, model.StatusReady, 15, now).Return(true, nil)
	mockNotifier.On("Notify", ctx, order.UserID, mock.AnythingOfType("string")).Return(nil)

	updated, err := svc.AdvanceStatus(ctx, adminIdentity(), order.ID, &model.UpdateStatusRequest{Status: model.StatusReady, EstimatedTime: 15})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.StatusReady, updated.Status)
	assert.Equal(t, 15, updated.EstimatedTime)
	mockNotifier.AssertExpectations(t)
}

func TestOrderService_AdvanceStatus_SkippingStateRejected(t *testing.T) {
	ctx := context.Background()

	order := &model.Order{ID: uuid.New(), Status: model.StatusPending}

	mockOrderRepo := new(MockOrderRepository)
	svc := newTestOrderService(mockOrderRepo, new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	mockOrderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	updated, err := svc.AdvanceStatus(ctx, adminIdentity(), order.ID, &model.UpdateStatusRequest{Status: model.StatusDelivered, EstimatedTime: 10})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_AdvanceStatus_InvalidEstimate(t *testing.T) {
	svc := newTestOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	for _, minutes := range []int{3, 7, 65, -5} {
		updated, err := svc.AdvanceStatus(context.Background(), adminIdentity(), uuid.New(), &model.UpdateStatusRequest{Status: model.StatusReady, EstimatedTime: minutes})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, model.ErrInvalidEstimate, "minutes=%d", minutes)
	}
}

func TestOrderService_AdvanceStatus_CustomerForbidden(t *testing.T) {
	svc := newTestOrderService(new(MockOrderRepository), new(MockCartRepository), new(MockCatalogRepository), new(MockLoyaltyService), new(MockNotifier), time.Now())

	updated, err := svc.AdvanceStatus(context.Background(), customerIdentity(), uuid.New(), &model.UpdateStatusRequest{Status: model.StatusReady})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, model.ErrForbidden)
}
