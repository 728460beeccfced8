package router

import (
	"net/http"

	"cafe-backend/internal/handler"
	"cafe-backend/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	loyaltyHandler *handler.LoyaltyHandler,
	notificationHandler *handler.NotificationHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Menu
	mux.HandleFunc("GET /api/menu", catalogHandler.Menu)
	mux.HandleFunc("GET /api/menu/{id}", catalogHandler.MenuItem)

	// Catalog administration
	mux.HandleFunc("POST /api/categories", catalogHandler.CreateCategory)
	mux.HandleFunc("GET /api/categories", catalogHandler.ListCategories)
	mux.HandleFunc("DELETE /api/categories/{id}", catalogHandler.DeleteCategory)
	mux.HandleFunc("POST /api/food-items", catalogHandler.CreateFoodItem)
	mux.HandleFunc("PUT /api/food-items/{id}", catalogHandler.UpdateFoodItem)
	mux.HandleFunc("DELETE /api/food-items/{id}", catalogHandler.DeleteFoodItem)
	mux.HandleFunc("POST /api/tables", catalogHandler.CreateTable)
	mux.HandleFunc("GET /api/tables", catalogHandler.ListTables)
	mux.HandleFunc("POST /api/offers", catalogHandler.CreateOffer)
	mux.HandleFunc("GET /api/offers", catalogHandler.ListOffers)
	mux.HandleFunc("DELETE /api/offers/{id}", catalogHandler.DeleteOffer)

	// Cart
	mux.HandleFunc("GET /api/cart", cartHandler.View)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItem)

	// Orders
	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/orders", orderHandler.History)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.Get)
	mux.HandleFunc("POST /api/orders/{id}/pay", orderHandler.Pay)
	mux.HandleFunc("POST /api/orders/{id}/review", orderHandler.Review)
	mux.HandleFunc("PUT /api/orders/{id}/status", orderHandler.AdvanceStatus)

	// Loyalty
	mux.HandleFunc("GET /api/points", loyaltyHandler.Balance)
	mux.HandleFunc("GET /api/points/transactions", loyaltyHandler.Transactions)
	mux.HandleFunc("GET /api/redemptions/options", loyaltyHandler.Options)
	mux.HandleFunc("POST /api/redemptions/options", loyaltyHandler.CreateOption)
	mux.HandleFunc("POST /api/redemptions", loyaltyHandler.Redeem)

	// Notifications
	mux.HandleFunc("GET /api/notifications", notificationHandler.List)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> Identity
	var h http.Handler = mux
	h = middleware.Identity(logger)(h)
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
