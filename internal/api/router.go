// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"aquaflow-kiosk/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(kioskHandler *handler.KioskHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// User API routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/", kioskHandler.RegisterUser)
		r.Get("/{userID}", kioskHandler.GetUserProfile)
		r.Post("/{userID}/topup", kioskHandler.TopUpWallet)
		r.Post("/{userID}/purchases", kioskHandler.PurchaseWater)
		r.Post("/{userID}/passes", kioskHandler.PurchasePass)
		r.Get("/{userID}/transactions", kioskHandler.GetTransactionHistory)
	})

	// System-wide read-only views
	r.Get("/analytics", kioskHandler.GetAnalytics)
	r.Get("/pricing", kioskHandler.GetPricingInfo)

	return r
}
