// internal/pricing/pricing.go

// Package pricing implements the discount engine and digital-fee optimizer.
// Every function here is pure: the engine reads a user snapshot and reports
// what should happen, and the service layer applies the side effects
// (wallet debit, loyalty-point redemption).
package pricing

import (
	"github.com/shopspring/decimal"

	"aquaflow-kiosk/internal/domain"
)

var (
	tier20 = decimal.NewFromInt(20)
	tier15 = decimal.NewFromInt(15)

	bulk20 = decimal.NewFromFloat(4.0)
	bulk15 = decimal.NewFromFloat(3.0)
	bulk10 = decimal.NewFromFloat(2.0)
)

// BaseCost returns liters times the per-liter water price.
func BaseCost(liters decimal.Decimal) decimal.Decimal {
	return liters.Mul(domain.WaterPricePerLiter)
}

// BulkDiscount returns the tiered flat discount for the given quantity.
// Quantities below the bulk minimum earn nothing.
func BulkDiscount(liters decimal.Decimal) decimal.Decimal {
	switch {
	case liters.GreaterThanOrEqual(tier20):
		return bulk20
	case liters.GreaterThanOrEqual(tier15):
		return bulk15
	case liters.GreaterThanOrEqual(domain.MinBulkLiters):
		return bulk10
	default:
		return decimal.Zero
	}
}

// LoyaltyDiscount returns 5% of the lifetime spend once it has reached the
// loyalty threshold, and zero before that. The spend passed in must be the
// pre-purchase total, excluding the purchase being priced.
func LoyaltyDiscount(totalSpent decimal.Decimal) decimal.Decimal {
	if totalSpent.LessThan(domain.LoyaltyThreshold) {
		return decimal.Zero
	}
	return totalSpent.Mul(domain.LoyaltyDiscountRate)
}

// Discount composes the student, bulk, loyalty-spend and points-redemption
// rules for a purchase of liters by u. The rules are independent and the
// total is purely additive, with no cap: the sum may exceed the base cost.
//
// The returned redeemPoints flag tells the caller to deduct exactly one
// block of loyalty points from the user. At most one block is redeemed per
// purchase, no matter how many points have accumulated.
func Discount(u *domain.User, liters decimal.Decimal) (total decimal.Decimal, redeemPoints bool) {
	total = decimal.Zero

	if u.IsStudent {
		total = total.Add(BaseCost(liters).Mul(domain.StudentDiscountRate))
	}

	total = total.Add(BulkDiscount(liters))
	total = total.Add(LoyaltyDiscount(u.TotalSpent))

	if u.LoyaltyPoints >= domain.PointsPerRedemption {
		total = total.Add(domain.PointsRedemptionValue)
		redeemPoints = true
	}

	return total, redeemPoints
}

// Quote is the fully priced outcome of a prospective purchase.
type Quote struct {
	BaseCost     decimal.Decimal
	Discount     decimal.Decimal
	Fee          decimal.Decimal
	FinalAmount  decimal.Decimal
	RedeemPoints bool
}

// Compute prices a purchase of liters by u with the given payment method.
//
// Cash purchases pay base cost minus discount; the result is not clamped and
// may go negative when the discount exceeds the base cost. Digital purchases
// by a valid pass holder short-circuit: no fee and no discount, the other
// rules are deliberately skipped. Digital purchases without a pass run the
// fee-waiver strategies in order: bulk quantity waives the fee, a discount
// covering the fee waives it, otherwise the discount reduces it.
func Compute(u *domain.User, liters decimal.Decimal, method domain.PaymentMethod, passValid bool) Quote {
	q := Quote{
		BaseCost: BaseCost(liters),
		Discount: decimal.Zero,
		Fee:      decimal.Zero,
	}

	if method == domain.PaymentMethodCash {
		q.Discount, q.RedeemPoints = Discount(u, liters)
		q.FinalAmount = q.BaseCost.Sub(q.Discount)
		return q
	}

	// Digital payment.
	if passValid {
		q.FinalAmount = q.BaseCost
		return q
	}

	q.Discount, q.RedeemPoints = Discount(u, liters)

	switch {
	case liters.GreaterThanOrEqual(domain.MinBulkLiters):
		// Bulk purchase waives the fee.
	case q.Discount.GreaterThanOrEqual(domain.DigitalFee):
		// Discount covers the fee in full.
	default:
		q.Fee = domain.DigitalFee.Sub(q.Discount)
		if q.Fee.IsNegative() {
			q.Fee = decimal.Zero
		}
	}

	q.FinalAmount = q.BaseCost.Sub(q.Discount).Add(q.Fee)
	return q
}
