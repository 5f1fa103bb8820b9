// internal/domain/user.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// User represents a registered kiosk customer.
type User struct {
	ID               int64           `json:"id"`                // Sequential identifier, assigned from 1
	Name             string          `json:"name"`              // Display name
	Phone            string          `json:"phone"`             // Contact number
	WalletBalance    decimal.Decimal `json:"wallet_balance"`    // Digital wallet balance, never negative
	TotalSpent       decimal.Decimal `json:"total_spent"`       // Lifetime base-cost spend, monotone
	TransactionCount int             `json:"transaction_count"` // Number of completed purchases
	LoyaltyPoints    int             `json:"loyalty_points"`    // 1 point per currency unit of base cost
	HasWeeklyPass    bool            `json:"has_weekly_pass"`   // Weekly fee-waiver pass flag
	HasMonthlyPass   bool            `json:"has_monthly_pass"`  // Monthly fee-waiver pass flag
	PassExpiry       time.Time       `json:"pass_expiry"`       // Expiry of the current pass, zero if none
	IsStudent        bool            `json:"is_student"`        // Eligible for the student discount
	CreatedAt        time.Time       `json:"created_at"`        // Timestamp of registration
}

// NewUser creates a new User instance with an empty wallet and no pass.
func NewUser(name, phone string, isStudent bool) *User {
	return &User{
		Name:          name,
		Phone:         phone,
		IsStudent:     isStudent,
		WalletBalance: decimal.Zero,
		TotalSpent:    decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}
}

// PassValid reports whether the user holds a pass that has not expired at now.
func (u *User) PassValid(now time.Time) bool {
	return (u.HasWeeklyPass || u.HasMonthlyPass) && now.Before(u.PassExpiry)
}

// ActivePass returns the kind of the currently valid pass, or "" when the
// user has none. A monthly pass takes precedence when both flags are set.
func (u *User) ActivePass(now time.Time) PassType {
	if !u.PassValid(now) {
		return ""
	}
	if u.HasMonthlyPass {
		return PassTypeMonthly
	}
	return PassTypeWeekly
}

// ProfileView is the read model returned for a single user, combining the
// user record with derived pass and fee insights.
type ProfileView struct {
	User
	ActivePass           PassType        `json:"active_pass,omitempty"`  // "" when no valid pass
	PassDaysLeft         int             `json:"pass_days_left"`         // Whole days until expiry, 0 without a pass
	PotentialMonthlyFees decimal.Decimal `json:"potential_monthly_fees"` // TransactionCount x digital fee
}
