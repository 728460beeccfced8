package handler

import (
	"encoding/json"
	"net/http"

	"cafe-backend/internal/model"
	"cafe-backend/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles shopping cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// View handles GET /api/cart requests.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	line, err := h.service.AddItem(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	itemID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid cart item ID format", h.logger)
		return
	}

	var req model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), ident, itemID, req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	itemID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid cart item ID format", h.logger)
		return
	}

	if err := h.service.RemoveItem(r.Context(), ident, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
