package service

import (
	"context"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/loyalty"
	"cafe-backend/internal/model"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// loyaltyService implements LoyaltyService.
type loyaltyService struct {
	repo   repository.LoyaltyRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewLoyaltyService creates a new loyalty service.
func NewLoyaltyService(repo repository.LoyaltyRepository, logger zerolog.Logger) LoyaltyService {
	return &loyaltyService{
		repo:   repo,
		logger: logger.With().Str("service", "loyalty").Logger(),
		now:    time.Now,
	}
}

// Balance retrieves the caller's point balance. Users who have never earned
// points see a zero balance rather than an error.
func (s *loyaltyService) Balance(ctx context.Context, ident auth.Identity) (*model.CustomerPoint, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	balance, err := s.repo.GetBalance(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return &model.CustomerPoint{UserID: ident.UserID, Points: 0}, nil
	}
	return balance, nil
}

// Transactions retrieves the caller's earn history.
func (s *loyaltyService) Transactions(ctx context.Context, ident auth.Identity) ([]model.PointTransaction, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}
	return s.repo.ListTransactions(ctx, ident.UserID)
}

// Options lists the redemption catalog.
func (s *loyaltyService) Options(ctx context.Context, ident auth.Identity) ([]model.RedemptionOption, error) {
	return s.repo.ListOptions(ctx)
}

// Redeem exchanges points for a redemption option. The repository performs
// the balance check and debit as one atomic unit; an insufficient balance
// comes back as a nil transaction, not an error.
func (s *loyaltyService) Redeem(ctx context.Context, ident auth.Identity, optionID uuid.UUID) (*model.RedemptionTransaction, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	option, err := s.repo.GetOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, model.ErrOptionNotFound
	}

	txn := &model.RedemptionTransaction{
		ID:                 uuid.New(),
		UserID:             ident.UserID,
		RedemptionOptionID: option.ID,
		PointsSpent:        option.PointsRequired,
		CreatedAt:          s.now(),
	}

	redeemed, err := s.repo.Redeem(ctx, txn)
	if err != nil {
		return nil, err
	}
	if !redeemed {
		s.logger.Debug().
			Str("user_id", ident.UserID.String()).
			Int("points_required", option.PointsRequired).
			Msg("redemption declined: insufficient balance")
		return nil, nil
	}

	s.logger.Info().
		Str("user_id", ident.UserID.String()).
		Str("option", option.Name).
		Int("points_spent", option.PointsRequired).
		Msg("redemption completed")

	return txn, nil
}

// CreateOption adds a redemption option to the catalog.
func (s *loyaltyService) CreateOption(ctx context.Context, ident auth.Identity, req *model.CreateOptionRequest) (*model.RedemptionOption, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if req.Name == "" {
		return nil, model.NewDomainError(model.KindValidation, "option name is required")
	}
	if req.PointsRequired < 0 {
		return nil, model.NewDomainError(model.KindValidation, "points required must not be negative")
	}

	option := &model.RedemptionOption{
		ID:             uuid.New(),
		Name:           req.Name,
		PointsRequired: req.PointsRequired,
		Description:    req.Description,
	}

	if err := s.repo.CreateOption(ctx, option); err != nil {
		return nil, err
	}

	return option, nil
}

// CreditForOrder awards points for a paid order. Totals below the earning
// threshold award nothing and write no transaction. The repository's
// per-order uniqueness makes a repeated credit a no-op.
func (s *loyaltyService) CreditForOrder(ctx context.Context, order *model.Order) error {
	points := loyalty.PointsForAmount(order.TotalPrice)
	if points == 0 {
		s.logger.Debug().
			Str("order_id", order.ID.String()).
			Str("total_price", order.TotalPrice.String()).
			Msg("order total below earning threshold")
		return nil
	}

	txn := &model.PointTransaction{
		ID:           uuid.New(),
		OrderID:      order.ID,
		Amount:       order.TotalPrice,
		PointsEarned: points,
		CreatedAt:    s.now(),
	}

	credited, err := s.repo.CreditForOrder(ctx, order.UserID, txn)
	if err != nil {
		return err
	}
	if !credited {
		s.logger.Warn().Str("order_id", order.ID.String()).Msg("order already credited")
	}

	return nil
}
