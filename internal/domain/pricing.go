// internal/domain/pricing.go
package domain

import "github.com/shopspring/decimal"

// Pricing constants for the kiosk. Money values are decimals, so these are
// package variables rather than untyped constants.
var (
	WaterPricePerLiter    = decimal.NewFromFloat(2.0)  // Base price per liter
	DigitalFee            = decimal.NewFromFloat(1.0)  // Surcharge for digital payments
	MinBulkLiters         = decimal.NewFromInt(10)     // Minimum quantity for bulk benefits
	LoyaltyThreshold      = decimal.NewFromFloat(50.0) // Lifetime spend needed for the loyalty discount
	WeeklyPassCost        = decimal.NewFromFloat(15.0)
	MonthlyPassCost       = decimal.NewFromFloat(50.0)
	TopUpBonusMinimum     = decimal.NewFromInt(100)    // Top-ups at or above this earn the bonus
	TopUpBonusRate        = decimal.NewFromFloat(0.02) // 2% bonus on the deposited amount
	StudentDiscountRate   = decimal.NewFromFloat(0.10) // 10% of base cost
	LoyaltyDiscountRate   = decimal.NewFromFloat(0.05) // 5% of lifetime spend
	PointsRedemptionValue = decimal.NewFromFloat(5.0)  // Flat discount per redeemed block
)

// PointsPerRedemption is the block of loyalty points consumed by a single
// redemption. At most one block is redeemed per purchase.
const PointsPerRedemption = 100

// PricingTable is the static pricing and discount reference exposed to the
// presentation layer. It carries no state.
type PricingTable struct {
	WaterPricePerLiter    decimal.Decimal `json:"water_price_per_liter"`
	DigitalFee            decimal.Decimal `json:"digital_fee"`
	MinBulkLiters         decimal.Decimal `json:"min_bulk_liters"`
	LoyaltyThreshold      decimal.Decimal `json:"loyalty_threshold"`
	WeeklyPassCost        decimal.Decimal `json:"weekly_pass_cost"`
	MonthlyPassCost       decimal.Decimal `json:"monthly_pass_cost"`
	TopUpBonusMinimum     decimal.Decimal `json:"top_up_bonus_minimum"`
	TopUpBonusRate        decimal.Decimal `json:"top_up_bonus_rate"`
	StudentDiscountRate   decimal.Decimal `json:"student_discount_rate"`
	LoyaltyDiscountRate   decimal.Decimal `json:"loyalty_discount_rate"`
	PointsPerRedemption   int             `json:"points_per_redemption"`
	PointsRedemptionValue decimal.Decimal `json:"points_redemption_value"`
}
