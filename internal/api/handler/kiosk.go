// internal/api/handler/kiosk.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"aquaflow-kiosk/internal/api/types"
	"aquaflow-kiosk/internal/domain"
	"aquaflow-kiosk/internal/service"
	"aquaflow-kiosk/internal/util" // For custom errors
)

// DefaultTimeout bounds request handling in the router's timeout middleware.
const DefaultTimeout = 60 * time.Second

// KioskHandler handles HTTP requests for the kiosk operations.
type KioskHandler struct {
	service service.KioskService
	logger  *slog.Logger
}

// NewKioskHandler creates a new KioskHandler.
func NewKioskHandler(svc service.KioskService, logger *slog.Logger) *KioskHandler {
	return &KioskHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *KioskHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *KioskHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrInvalidQuantity),
		util.IsError(err, util.ErrInvalidPassType),
		util.IsError(err, util.ErrInvalidPaymentMethod):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient funds"
	case util.IsError(err, util.ErrCapacityExceeded), util.IsError(err, util.ErrLedgerFull):
		statusCode = http.StatusInsufficientStorage // 507: store at capacity
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

func (h *KioskHandler) userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// RegisterUserRequest represents the request body for user registration.
type RegisterUserRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IsStudent bool   `json:"is_student"`
}

// RegisterUser handles the new-user registration request.
// POST /users
func (h *KioskHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Name == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req.Name, req.Phone, req.IsStudent)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, user)
}

// TopUpRequest represents the request body for a wallet top-up.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TopUpWallet handles the wallet top-up request.
// POST /users/{userID}/topup
func (h *KioskHandler) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	balance, err := h.service.TopUpWallet(r.Context(), userID, req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Top-up successful",
		"user_id":     userID,
		"new_balance": balance,
	})
}

// PurchaseRequest represents the request body for a water purchase.
type PurchaseRequest struct {
	Liters decimal.Decimal      `json:"liters"`
	Method domain.PaymentMethod `json:"method"`
}

// PurchaseWater handles the water purchase request.
// POST /users/{userID}/purchases
func (h *KioskHandler) PurchaseWater(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	receipt, err := h.service.PurchaseWater(r.Context(), userID, req.Liters, req.Method)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, receipt)
}

// PassRequest represents the request body for a pass purchase.
type PassRequest struct {
	Type domain.PassType `json:"type"`
}

// PurchasePass handles the pass purchase request.
// POST /users/{userID}/passes
func (h *KioskHandler) PurchasePass(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req PassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	receipt, err := h.service.PurchasePass(r.Context(), userID, req.Type)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, receipt)
}

// GetUserProfile handles the user profile request.
// GET /users/{userID}
func (h *KioskHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	profile, err := h.service.GetUserProfile(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, profile)
}

// GetTransactionHistory handles the transaction history request.
// GET /users/{userID}/transactions
func (h *KioskHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	// Parse query parameters for pagination
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	transactions, total, err := h.service.GetTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// GetAnalytics handles the analytics snapshot request.
// GET /analytics
func (h *KioskHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetAnalytics(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, snapshot)
}

// GetPricingInfo handles the static pricing table request.
// GET /pricing
func (h *KioskHandler) GetPricingInfo(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.service.PricingInfo())
}
