package service

import (
	"context"
	"fmt"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"
	"cafe-backend/internal/notifier"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	loyalty     LoyaltyService
	notifier    notifier.Notifier
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	loyalty LoyaltyService,
	n notifier.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		loyalty:     loyalty,
		notifier:    n,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         time.Now,
	}
}

// Create converts the caller's cart into an order. The total is priced from
// the cart at this instant and snapshotted onto the order; inserting the
// order and clearing the cart happen in one transaction, so neither is ever
// observable without the other.
func (s *orderService) Create(ctx context.Context, ident auth.Identity, diningTableID uuid.UUID) (*model.Order, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	table, err := s.catalogRepo.GetDiningTable(ctx, diningTableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, model.ErrTableNotFound
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrCartEmpty
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.FoodItemID
	}

	offers, err := s.catalogRepo.GetOffersForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	_, total := priceLines(items, offers, now)

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        ident.UserID,
		TotalPrice:    total,
		IsPaid:        false,
		Status:        model.StatusPending,
		EstimatedTime: model.DefaultEstimatedTime,
		DiningTableID: &table.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = s.cartRepo.DeleteAllItems(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit order creation")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", ident.UserID.String()).
		Str("total_price", total.String()).
		Int("item_count", len(items)).
		Msg("order created")

	return order, nil
}

// Get retrieves one of the caller's orders. An order owned by someone else
// is indistinguishable from a missing one.
func (s *orderService) Get(ctx context.Context, ident auth.Identity, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!ident.IsAdmin() && order.UserID != ident.UserID) {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// Pay marks the order paid. The conditional update in the repository is the
// double-payment guard; this method is the single trigger point for loyalty
// credit and the payment notification.
func (s *orderService) Pay(ctx context.Context, ident auth.Identity, orderID uuid.UUID) (*model.Order, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != ident.UserID {
		return nil, model.ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, model.ErrOrderAlreadyPaid
	}

	paidAt := s.now()
	paid, err := s.orderRepo.MarkPaid(ctx, order.ID, paidAt)
	if err != nil {
		return nil, err
	}
	if !paid {
		// Lost the race against a concurrent payment attempt.
		return nil, model.ErrOrderAlreadyPaid
	}

	order.IsPaid = true
	order.UpdatedAt = paidAt

	if err := s.loyalty.CreditForOrder(ctx, order); err != nil {
		// The payment stands; the ledger's per-order idempotency makes a
		// retried credit safe.
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to credit loyalty points")
	}

	message := fmt.Sprintf("Payment of %s received for your order. Thank you!", order.TotalPrice.StringFixed(2))
	if err := s.notifier.Notify(ctx, order.UserID, message); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("payment notification failed")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("total_price", order.TotalPrice.String()).
		Msg("order paid")

	return order, nil
}

// Review records a review for an order, allowed only on the calendar day
// the order was placed.
func (s *orderService) Review(ctx context.Context, ident auth.Identity, orderID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != ident.UserID {
		return nil, model.ErrOrderNotFound
	}

	now := s.now()
	if !sameDay(order.CreatedAt, now) {
		return nil, model.ErrReviewWindowOver
	}

	review := &model.Review{
		ID:        uuid.New(),
		UserID:    ident.UserID,
		OrderID:   order.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
	}

	if err := s.orderRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("rating", req.Rating).
		Msg("review created")

	return review, nil
}

// History retrieves the caller's orders, most recently updated first.
func (s *orderService) History(ctx context.Context, ident auth.Identity) ([]model.Order, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}
	return s.orderRepo.ListByUser(ctx, ident.UserID)
}

// AdvanceStatus moves an order to the next lifecycle state. Only the direct
// successor is accepted: PENDING to READY to DELIVERED to COMPLETE.
func (s *orderService) AdvanceStatus(ctx context.Context, ident auth.Identity, orderID uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if !req.Status.Valid() {
		return nil, model.NewDomainError(model.KindValidation, fmt.Sprintf("unknown order status %q", req.Status))
	}

	estimated := req.EstimatedTime
	if estimated == 0 {
		estimated = model.DefaultEstimatedTime
	}
	if !model.ValidEstimatedTime(estimated) {
		return nil, model.ErrInvalidEstimate
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, model.ErrInvalidTransition
	}

	now := s.now()
	updated, err := s.orderRepo.UpdateStatus(ctx, order.ID, req.Status, estimated, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, model.ErrOrderNotFound
	}

	order.Status = req.Status
	order.EstimatedTime = estimated
	order.UpdatedAt = now

	message := fmt.Sprintf("Your order is now %s. Estimated time: %d minutes.", order.Status, estimated)
	if err := s.notifier.Notify(ctx, order.UserID, message); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("status notification failed")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order status advanced")

	return order, nil
}

// sameDay reports whether a and b fall on the same UTC calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
