// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// PaymentMethod defines how a purchase was paid for.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "CASH"
	PaymentMethodDigital PaymentMethod = "DIGITAL"
)

// Valid reports whether m is one of the recognized payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodDigital
}

// Transaction records a single completed water purchase. Records are
// immutable once appended to the ledger.
type Transaction struct {
	ID        int64           `json:"id"`        // Sequential identifier, assigned from 1
	UserID    int64           `json:"user_id"`   // Owning user
	Amount    decimal.Decimal `json:"amount"`    // Final amount charged
	Liters    decimal.Decimal `json:"liters"`    // Quantity of water purchased
	Method    PaymentMethod   `json:"method"`    // CASH or DIGITAL
	Fee       decimal.Decimal `json:"fee"`       // Digital payment fee charged, zero for cash
	Discount  decimal.Decimal `json:"discount"`  // Total discount applied
	Timestamp time.Time       `json:"timestamp"` // When the purchase completed
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(userID int64, amount, liters decimal.Decimal, method PaymentMethod, fee, discount decimal.Decimal, ts time.Time) *Transaction {
	return &Transaction{
		UserID:    userID,
		Amount:    amount,
		Liters:    liters,
		Method:    method,
		Fee:       fee,
		Discount:  discount,
		Timestamp: ts,
	}
}

// Receipt is returned to the caller after a successful purchase.
type Receipt struct {
	TransactionID int64           `json:"transaction_id"`
	UserID        int64           `json:"user_id"`
	Liters        decimal.Decimal `json:"liters"`
	Method        PaymentMethod   `json:"method"`
	BaseCost      decimal.Decimal `json:"base_cost"`
	Discount      decimal.Decimal `json:"discount"`
	Fee           decimal.Decimal `json:"fee"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	PointsEarned  int             `json:"points_earned"`
	LoyaltyPoints int             `json:"loyalty_points"` // Balance after earning and any redemption
	WalletBalance decimal.Decimal `json:"wallet_balance"` // Remaining balance, unchanged for cash
}
