package handler

import (
	"encoding/json"
	"net/http"

	"cafe-backend/internal/model"
	"cafe-backend/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogHandler handles menu and catalog administration HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Menu handles GET /api/menu requests. An optional category query parameter
// restricts the listing to one category.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "invalid category ID format", h.logger)
			return
		}
		categoryID = &id
	}

	menu, err := h.service.Menu(r.Context(), ident, categoryID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// MenuItem handles GET /api/menu/{id} requests.
func (h *CatalogHandler) MenuItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid food item ID format", h.logger)
		return
	}

	item, err := h.service.MenuItem(r.Context(), ident, id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// CreateCategory handles POST /api/categories requests.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// ListCategories handles GET /api/categories requests. An optional name query
// parameter filters by substring.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(r.Context(), ident, r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// DeleteCategory handles DELETE /api/categories/{id} requests.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid category ID format", h.logger)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), ident, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateFoodItem handles POST /api/food-items requests.
func (h *CatalogHandler) CreateFoodItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	item, err := h.service.CreateFoodItem(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateFoodItem handles PUT /api/food-items/{id} requests.
func (h *CatalogHandler) UpdateFoodItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid food item ID format", h.logger)
		return
	}

	var req model.FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	item, err := h.service.UpdateFoodItem(r.Context(), ident, id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteFoodItem handles DELETE /api/food-items/{id} requests.
func (h *CatalogHandler) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid food item ID format", h.logger)
		return
	}

	if err := h.service.DeleteFoodItem(r.Context(), ident, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTable handles POST /api/tables requests.
func (h *CatalogHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	table, err := h.service.CreateDiningTable(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, table)
}

// ListTables handles GET /api/tables requests.
func (h *CatalogHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	tables, err := h.service.ListDiningTables(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tables)
}

// CreateOffer handles POST /api/offers requests.
func (h *CatalogHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, offer)
}

// ListOffers handles GET /api/offers requests.
func (h *CatalogHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	offers, err := h.service.ListOffers(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

// DeleteOffer handles DELETE /api/offers/{id} requests.
func (h *CatalogHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid offer ID format", h.logger)
		return
	}

	if err := h.service.DeleteOffer(r.Context(), ident, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
