package handler

import (
	"encoding/json"
	"net/http"

	"cafe-backend/internal/model"
	"cafe-backend/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order lifecycle HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), ident, req.DiningTableID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Get handles GET /api/orders/{id} requests.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), ident, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// History handles GET /api/orders requests.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.History(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Pay handles POST /api/orders/{id}/pay requests.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.Pay(r.Context(), ident, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Review handles POST /api/orders/{id}/review requests.
func (h *OrderHandler) Review(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	review, err := h.service.Review(r.Context(), ident, orderID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// AdvanceStatus handles PUT /api/orders/{id}/status requests.
func (h *OrderHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	order, err := h.service.AdvanceStatus(r.Context(), ident, orderID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
