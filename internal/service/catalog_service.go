package service

import (
	"context"
	"time"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"
	"cafe-backend/internal/pricing"
	"cafe-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// catalogService implements CatalogService.
type catalogService struct {
	repo   repository.CatalogRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger.With().Str("service", "catalog").Logger(),
		now:    time.Now,
	}
}

// Menu retrieves available food items with their effective prices at the
// current instant.
func (s *catalogService) Menu(ctx context.Context, ident auth.Identity, categoryID *uuid.UUID) ([]model.MenuItem, error) {
	items, err := s.repo.ListFoodItems(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	offers, err := s.repo.GetOffersForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	menu := make([]model.MenuItem, len(items))
	for i, item := range items {
		menu[i] = model.MenuItem{
			FoodItem:       item,
			EffectivePrice: pricing.EffectivePrice(item.Price, offers[item.ID], now),
		}
	}

	return menu, nil
}

// MenuItem retrieves a single food item priced at the current instant.
func (s *catalogService) MenuItem(ctx context.Context, ident auth.Identity, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.repo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrFoodItemNotFound
	}

	offers, err := s.repo.GetOffersForItems(ctx, []uuid.UUID{item.ID})
	if err != nil {
		return nil, err
	}

	return &model.MenuItem{
		FoodItem:       *item,
		EffectivePrice: pricing.EffectivePrice(item.Price, offers[item.ID], s.now()),
	}, nil
}

// CreateCategory creates a category.
func (s *catalogService) CreateCategory(ctx context.Context, ident auth.Identity, req *model.CreateCategoryRequest) (*model.Category, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if req.Name == "" {
		return nil, model.NewDomainError(model.KindValidation, "category name is required")
	}

	now := s.now()
	category := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", category.Name).Msg("category created")
	return category, nil
}

// ListCategories lists categories, optionally filtered by name.
func (s *catalogService) ListCategories(ctx context.Context, ident auth.Identity, nameFilter string) ([]model.Category, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}
	return s.repo.ListCategories(ctx, nameFilter)
}

// DeleteCategory deletes a category.
func (s *catalogService) DeleteCategory(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	if !ident.IsAdmin() {
		return model.ErrForbidden
	}

	deleted, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}

// CreateFoodItem creates a food item under a category.
func (s *catalogService) CreateFoodItem(ctx context.Context, ident auth.Identity, req *model.FoodItemRequest) (*model.FoodItem, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if err := validateFoodItemRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	item := &model.FoodItem{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateFoodItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("food_item_id", item.ID.String()).
		Str("name", item.Name).
		Msg("food item created")

	return item, nil
}

// UpdateFoodItem updates a food item.
func (s *catalogService) UpdateFoodItem(ctx context.Context, ident auth.Identity, id uuid.UUID, req *model.FoodItemRequest) (*model.FoodItem, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if err := validateFoodItemRequest(req); err != nil {
		return nil, err
	}

	item, err := s.repo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrFoodItemNotFound
	}

	item.CategoryID = req.CategoryID
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.IsAvailable = req.IsAvailable
	item.UpdatedAt = s.now()

	updated, err := s.repo.UpdateFoodItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, model.ErrFoodItemNotFound
	}

	s.logger.Info().Str("food_item_id", item.ID.String()).Msg("food item updated")
	return item, nil
}

// DeleteFoodItem deletes a food item.
func (s *catalogService) DeleteFoodItem(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	if !ident.IsAdmin() {
		return model.ErrForbidden
	}

	deleted, err := s.repo.DeleteFoodItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrFoodItemNotFound
	}

	s.logger.Info().Str("food_item_id", id.String()).Msg("food item deleted")
	return nil
}

// CreateDiningTable creates a dining table.
func (s *catalogService) CreateDiningTable(ctx context.Context, ident auth.Identity, req *model.CreateTableRequest) (*model.DiningTable, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if req.TableNumber < 1 {
		return nil, model.NewDomainError(model.KindValidation, "table number must be a positive integer")
	}

	now := s.now()
	table := &model.DiningTable{
		ID:          uuid.New(),
		TableNumber: req.TableNumber,
		IsOccupied:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateDiningTable(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info().Int("table_number", table.TableNumber).Msg("dining table created")
	return table, nil
}

// ListDiningTables lists all dining tables.
func (s *catalogService) ListDiningTables(ctx context.Context, ident auth.Identity) ([]model.DiningTable, error) {
	return s.repo.ListDiningTables(ctx)
}

// CreateOffer creates a special offer for a food item.
func (s *catalogService) CreateOffer(ctx context.Context, ident auth.Identity, req *model.CreateOfferRequest) (*model.SpecialOffer, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}

	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, model.ErrInvalidDiscount
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, model.ErrInvalidOfferDates
	}

	item, err := s.repo.GetFoodItem(ctx, req.FoodItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrFoodItemNotFound
	}

	offer := &model.SpecialOffer{
		ID:                 uuid.New(),
		Name:               req.Name,
		FoodItemID:         req.FoodItemID,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Description:        req.Description,
	}

	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("offer_id", offer.ID.String()).
		Str("food_item_id", offer.FoodItemID.String()).
		Str("discount", offer.DiscountPercentage.String()).
		Msg("special offer created")

	return offer, nil
}

// ListOffers lists all special offers.
func (s *catalogService) ListOffers(ctx context.Context, ident auth.Identity) ([]model.SpecialOffer, error) {
	if !ident.IsAdmin() {
		return nil, model.ErrForbidden
	}
	return s.repo.ListOffers(ctx)
}

// DeleteOffer deletes a special offer.
func (s *catalogService) DeleteOffer(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	if !ident.IsAdmin() {
		return model.ErrForbidden
	}

	deleted, err := s.repo.DeleteOffer(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrOfferNotFound
	}

	s.logger.Info().Str("offer_id", id.String()).Msg("special offer deleted")
	return nil
}

// validateFoodItemRequest checks a create/update food item payload.
func validateFoodItemRequest(req *model.FoodItemRequest) error {
	if req.Name == "" {
		return model.NewDomainError(model.KindValidation, "food item name is required")
	}
	if req.CategoryID == uuid.Nil {
		return model.NewDomainError(model.KindValidation, "category ID is required")
	}
	if req.Price.IsNegative() {
		return model.NewDomainError(model.KindValidation, "price must not be negative")
	}
	return nil
}
