package service

import (
	"context"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

// AddItem adds a food item to the caller's cart. Duplicate lines are
// rejected rather than merged.
func (s *cartService) AddItem(ctx context.Context, ident auth.Identity, req *model.AddItemRequest) (*model.CartLine, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	if req.Quantity < 1 {
		s.logger.Warn().
			Str("food_item_id", req.FoodItemID.String()).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	foodItem, err := s.catalogRepo.GetFoodItem(ctx, req.FoodItemID)
	if err != nil {
		return nil, err
	}
	if foodItem == nil {
		return nil, model.ErrFoodItemNotFound
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		ID:         uuid.New(),
		CartID:     cart.ID,
		FoodItemID: foodItem.ID,
		Quantity:   req.Quantity,
		CreatedAt:  s.now(),
		FoodItem:   *foodItem,
	}

	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("cart_id", cart.ID.String()).
		Str("food_item_id", foodItem.ID.String()).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	offers, err := s.catalogRepo.GetOffersForItems(ctx, []uuid.UUID{foodItem.ID})
	if err != nil {
		return nil, err
	}

	lines, _ := priceLines([]model.CartItem{*item}, offers, s.now())
	return &lines[0], nil
}

// UpdateQuantity changes the quantity of a line in the caller's cart.
func (s *cartService) UpdateQuantity(ctx context.Context, ident auth.Identity, itemID uuid.UUID, quantity int) error {
	if !ident.IsCustomer() {
		return model.ErrForbidden
	}

	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, ident.UserID)
	if err != nil {
		return err
	}

	updated, err := s.cartRepo.UpdateQuantity(ctx, cart.ID, itemID, quantity)
	if err != nil {
		return err
	}
	if !updated {
		return model.ErrCartItemNotFound
	}

	s.logger.Info().
		Str("cart_item_id", itemID.String()).
		Int("quantity", quantity).
		Msg("cart item quantity updated")

	return nil
}

// RemoveItem removes a line from the caller's cart.
func (s *cartService) RemoveItem(ctx context.Context, ident auth.Identity, itemID uuid.UUID) error {
	if !ident.IsCustomer() {
		return model.ErrForbidden
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, ident.UserID)
	if err != nil {
		return err
	}

	removed, err := s.cartRepo.RemoveItem(ctx, cart.ID, itemID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrCartItemNotFound
	}

	s.logger.Info().Str("cart_item_id", itemID.String()).Msg("cart item removed")
	return nil
}

// View retrieves the caller's cart. The total is derived here on every
// read, never stored, so it always reflects currently active offers.
func (s *cartService) View(ctx context.Context, ident auth.Identity) (*model.CartView, error) {
	if !ident.IsCustomer() {
		return nil, model.ErrForbidden
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.FoodItemID
	}

	offers, err := s.catalogRepo.GetOffersForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	lines, total := priceLines(items, offers, s.now())

	return &model.CartView{
		ID:         cart.ID,
		Items:      lines,
		TotalPrice: total,
	}, nil
}
