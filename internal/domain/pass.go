// internal/domain/pass.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PassType defines the kind of a fee-waiver pass.
type PassType string

const (
	PassTypeWeekly  PassType = "WEEKLY"
	PassTypeMonthly PassType = "MONTHLY"
)

// Valid reports whether t is one of the recognized pass types.
func (t PassType) Valid() bool {
	return t == PassTypeWeekly || t == PassTypeMonthly
}

// Cost returns the purchase price of the pass.
func (t PassType) Cost() decimal.Decimal {
	if t == PassTypeMonthly {
		return MonthlyPassCost
	}
	return WeeklyPassCost
}

// Duration returns how long the pass stays valid from the moment of purchase.
func (t PassType) Duration() time.Duration {
	if t == PassTypeMonthly {
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// PassReceipt is returned to the caller after a successful pass purchase.
type PassReceipt struct {
	UserID        int64           `json:"user_id"`
	Type          PassType        `json:"type"`
	Cost          decimal.Decimal `json:"cost"`
	Expiry        time.Time       `json:"expiry"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}
