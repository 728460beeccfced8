package service

import (
	"context"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context, nameFilter string) ([]model.Category, error) {
	args := m.Called(ctx, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CountCategories(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetFoodItem(ctx context.Context, id uuid.UUID) (*model.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockCatalogRepository) ListFoodItems(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]model.FoodItem, error) {
	args := m.Called(ctx, categoryID, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockCatalogRepository) UpdateFoodItem(ctx context.Context, item *model.FoodItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) DeleteFoodItem(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateDiningTable(ctx context.Context, table *model.DiningTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetDiningTable(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiningTable), args.Error(1)
}

func (m *MockCatalogRepository) ListDiningTables(ctx context.Context) ([]model.DiningTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiningTable), args.Error(1)
}

func (m *MockCatalogRepository) CreateOffer(ctx context.Context, offer *model.SpecialOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListOffers(ctx context.Context) ([]model.SpecialOffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SpecialOffer), args.Error(1)
}

func (m *MockCatalogRepository) GetOffersForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]model.SpecialOffer, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]model.SpecialOffer), args.Error(1)
}

func (m *MockCatalogRepository) DeleteOffer(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, cartID, itemID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) DeleteAllItems(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	args := m.Called(ctx, tx, cartID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, estimatedTime int, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, estimatedTime, updatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CreateReview(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// MockLoyaltyRepository is a mock implementation of LoyaltyRepository.
type MockLoyaltyRepository struct {
	mock.Mock
}

func (m *MockLoyaltyRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*model.CustomerPoint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerPoint), args.Error(1)
}

func (m *MockLoyaltyRepository) CreditForOrder(ctx context.Context, userID uuid.UUID, txn *model.PointTransaction) (bool, error) {
	args := m.Called(ctx, userID, txn)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoyaltyRepository) Redeem(ctx context.Context, txn *model.RedemptionTransaction) (bool, error) {
	args := m.Called(ctx, txn)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoyaltyRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.PointTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PointTransaction), args.Error(1)
}

func (m *MockLoyaltyRepository) CreateOption(ctx context.Context, option *model.RedemptionOption) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) GetOption(ctx context.Context, id uuid.UUID) (*model.RedemptionOption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RedemptionOption), args.Error(1)
}

func (m *MockLoyaltyRepository) ListOptions(ctx context.Context) ([]model.RedemptionOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RedemptionOption), args.Error(1)
}

// MockLoyaltyService is a mock implementation of LoyaltyService for order
// lifecycle tests.
type MockLoyaltyService struct {
	mock.Mock
}

func (m *MockLoyaltyService) Balance(ctx context.Context, ident auth.Identity) (*model.CustomerPoint, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerPoint), args.Error(1)
}

func (m *MockLoyaltyService) Transactions(ctx context.Context, ident auth.Identity) ([]model.PointTransaction, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PointTransaction), args.Error(1)
}

func (m *MockLoyaltyService) Options(ctx context.Context, ident auth.Identity) ([]model.RedemptionOption, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RedemptionOption), args.Error(1)
}

func (m *MockLoyaltyService) Redeem(ctx context.Context, ident auth.Identity, optionID uuid.UUID) (*model.RedemptionTransaction, error) {
	args := m.Called(ctx, ident, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RedemptionTransaction), args.Error(1)
}

func (m *MockLoyaltyService) CreateOption(ctx context.Context, ident auth.Identity, req *model.CreateOptionRequest) (*model.RedemptionOption, error) {
	args := m.Called(ctx, ident, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RedemptionOption), args.Error(1)
}

func (m *MockLoyaltyService) CreditForOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockNotifier is a mock implementation of notifier.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
