// internal/domain/analytics.go
package domain

import "github.com/shopspring/decimal"

// Analytics accumulates system-wide business counters. It is zero-initialized
// at process start and updated only by completed purchases and pass purchases.
type Analytics struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`         // Sum of base costs
	TotalFeesCollected  decimal.Decimal `json:"total_fees_collected"`  // Sum of digital fees charged
	TotalDiscountsGiven decimal.Decimal `json:"total_discounts_given"` // Sum of discounts applied
	CashTransactions    int             `json:"cash_transactions"`
	DigitalTransactions int             `json:"digital_transactions"`
	BulkPurchases       int             `json:"bulk_purchases"` // Purchases of at least MinBulkLiters
	PassHolders         int             `json:"pass_holders"`   // Every pass purchase counts, repeats included
}

// NewAnalytics returns a zeroed Analytics value with decimal fields
// initialized, so snapshots marshal as 0 rather than null.
func NewAnalytics() Analytics {
	return Analytics{
		TotalRevenue:        decimal.Zero,
		TotalFeesCollected:  decimal.Zero,
		TotalDiscountsGiven: decimal.Zero,
	}
}

// AnalyticsSnapshot is the reporting view over the accumulated counters.
type AnalyticsSnapshot struct {
	Analytics
	TotalUsers        int             `json:"total_users"`
	TotalTransactions int             `json:"total_transactions"`
	NetRevenue        decimal.Decimal `json:"net_revenue"` // revenue + fees - discounts
}
