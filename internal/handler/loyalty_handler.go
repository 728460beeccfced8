package handler

import (
	"encoding/json"
	"net/http"

	"cafe-backend/internal/model"
	"cafe-backend/internal/service"

	"github.com/rs/zerolog"
)

// LoyaltyHandler handles points ledger HTTP requests.
type LoyaltyHandler struct {
	service service.LoyaltyService
	logger  zerolog.Logger
}

// NewLoyaltyHandler creates a new loyalty handler.
func NewLoyaltyHandler(service service.LoyaltyService, logger zerolog.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		service: service,
		logger:  logger.With().Str("handler", "loyalty").Logger(),
	}
}

// Balance handles GET /api/points requests.
func (h *LoyaltyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	balance, err := h.service.Balance(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// Transactions handles GET /api/points/transactions requests.
func (h *LoyaltyHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	transactions, err := h.service.Transactions(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// Options handles GET /api/redemptions/options requests.
func (h *LoyaltyHandler) Options(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	options, err := h.service.Options(r.Context(), ident)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, options)
}

// CreateOption handles POST /api/redemptions/options requests.
func (h *LoyaltyHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	option, err := h.service.CreateOption(r.Context(), ident, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, option)
}

// RedeemResponse reports the outcome of a redemption attempt. A declined
// redemption is a normal response, not an error: the balance was simply too
// low at the moment of the attempt.
type RedeemResponse struct {
	Redeemed    bool                         `json:"redeemed"`
	Transaction *model.RedemptionTransaction `json:"transaction,omitempty"`
}

// Redeem handles POST /api/redemptions requests.
func (h *LoyaltyHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	txn, err := h.service.Redeem(r.Context(), ident, req.RedemptionOptionID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if txn == nil {
		writeJSON(w, http.StatusOK, RedeemResponse{Redeemed: false})
		return
	}

	writeJSON(w, http.StatusCreated, RedeemResponse{Redeemed: true, Transaction: txn})
}
