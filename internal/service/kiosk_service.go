// internal/service/kiosk_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"aquaflow-kiosk/internal/domain"
	"aquaflow-kiosk/internal/pricing"
	"aquaflow-kiosk/internal/repository"
	"aquaflow-kiosk/internal/util"
)

// KioskService defines the interface for the kiosk's business logic. It is
// the only entry point the presentation layer is given; internal storage is
// never exposed.
type KioskService interface {
	RegisterUser(ctx context.Context, name, phone string, isStudent bool) (*domain.User, error)
	TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	PurchaseWater(ctx context.Context, userID int64, liters decimal.Decimal, method domain.PaymentMethod) (*domain.Receipt, error)
	PurchasePass(ctx context.Context, userID int64, passType domain.PassType) (*domain.PassReceipt, error)
	GetUserProfile(ctx context.Context, userID int64) (*domain.ProfileView, error)
	GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	GetAnalytics(ctx context.Context) (*domain.AnalyticsSnapshot, error)
	PricingInfo() domain.PricingTable
}

// kioskService implements the KioskService interface. The mutex serializes
// every operation: the stores and the analytics counters carry no locking of
// their own, so a multi-threaded host goes through this single lock.
type kioskService struct {
	mu     sync.Mutex
	users  repository.UserRepository
	ledger repository.LedgerRepository
	stats  domain.Analytics
	now    func() time.Time
}

// NewKioskService creates a new instance of KioskService with zeroed
// analytics counters.
func NewKioskService(users repository.UserRepository, ledger repository.LedgerRepository) KioskService {
	return &kioskService{
		users:  users,
		ledger: ledger,
		stats:  domain.NewAnalytics(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RegisterUser creates a new user with an empty wallet.
func (s *kioskService) RegisterUser(ctx context.Context, name, phone string, isStudent bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.NewUser(name, phone, isStudent)
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// TopUpWallet credits amount to the user's wallet and returns the new
// balance. Deposits of at least the bonus minimum earn a 2% bonus, computed
// on the deposited amount rather than the resulting balance.
func (s *kioskService) TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, util.ErrInvalidAmount
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("top up: %w", err)
	}

	user.WalletBalance = user.WalletBalance.Add(amount)
	if amount.GreaterThanOrEqual(domain.TopUpBonusMinimum) {
		user.WalletBalance = user.WalletBalance.Add(amount.Mul(domain.TopUpBonusRate))
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return decimal.Zero, fmt.Errorf("top up: failed to update user %d: %w", userID, err)
	}
	return user.WalletBalance, nil
}

// PurchaseWater prices and records a water purchase.
//
// The transaction is appended to the ledger before any user or analytics
// state is touched, so a full ledger rejects the purchase and leaves the
// wallet, loyalty points and counters exactly as they were.
func (s *kioskService) PurchaseWater(ctx context.Context, userID int64, liters decimal.Decimal, method domain.PaymentMethod) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if liters.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidQuantity
	}
	if !method.Valid() {
		return nil, util.ErrInvalidPaymentMethod
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase water: %w", err)
	}

	now := s.now()
	quote := pricing.Compute(user, liters, method, user.PassValid(now))

	if method == domain.PaymentMethodDigital && user.WalletBalance.LessThan(quote.FinalAmount) {
		return nil, util.ErrInsufficientFunds
	}

	txn := domain.NewTransaction(userID, quote.FinalAmount, liters, method, quote.Fee, quote.Discount, now)
	if err := s.ledger.AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("purchase water: %w", err)
	}

	if method == domain.PaymentMethodDigital {
		user.WalletBalance = user.WalletBalance.Sub(quote.FinalAmount)
	}
	if quote.RedeemPoints {
		user.LoyaltyPoints -= domain.PointsPerRedemption
	}

	// Lifetime spend and points track the base cost, not the charged amount.
	pointsEarned := int(quote.BaseCost.IntPart())
	user.TotalSpent = user.TotalSpent.Add(quote.BaseCost)
	user.TransactionCount++
	user.LoyaltyPoints += pointsEarned

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("purchase water: failed to update user %d: %w", userID, err)
	}

	s.stats.TotalRevenue = s.stats.TotalRevenue.Add(quote.BaseCost)
	s.stats.TotalFeesCollected = s.stats.TotalFeesCollected.Add(quote.Fee)
	s.stats.TotalDiscountsGiven = s.stats.TotalDiscountsGiven.Add(quote.Discount)
	if method == domain.PaymentMethodCash {
		s.stats.CashTransactions++
	} else {
		s.stats.DigitalTransactions++
	}
	if liters.GreaterThanOrEqual(domain.MinBulkLiters) {
		s.stats.BulkPurchases++
	}

	return &domain.Receipt{
		TransactionID: txn.ID,
		UserID:        userID,
		Liters:        liters,
		Method:        method,
		BaseCost:      quote.BaseCost,
		Discount:      quote.Discount,
		Fee:           quote.Fee,
		FinalAmount:   quote.FinalAmount,
		PointsEarned:  pointsEarned,
		LoyaltyPoints: user.LoyaltyPoints,
		WalletBalance: user.WalletBalance,
	}, nil
}

// PurchasePass sells a fee-waiver pass out of the user's wallet. Buying a
// pass while another is active overwrites the expiry, it never extends it.
func (s *kioskService) PurchasePass(ctx context.Context, userID int64, passType domain.PassType) (*domain.PassReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !passType.Valid() {
		return nil, util.ErrInvalidPassType
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase pass: %w", err)
	}

	cost := passType.Cost()
	if user.WalletBalance.LessThan(cost) {
		return nil, util.ErrInsufficientFunds
	}

	user.WalletBalance = user.WalletBalance.Sub(cost)
	if passType == domain.PassTypeWeekly {
		user.HasWeeklyPass = true
	} else {
		user.HasMonthlyPass = true
	}
	user.PassExpiry = s.now().Add(passType.Duration())

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("purchase pass: failed to update user %d: %w", userID, err)
	}

	// Counts every purchase, including repeat purchases by the same user.
	s.stats.PassHolders++

	return &domain.PassReceipt{
		UserID:        userID,
		Type:          passType,
		Cost:          cost,
		Expiry:        user.PassExpiry,
		WalletBalance: user.WalletBalance,
	}, nil
}

// GetUserProfile returns the user record with derived pass and fee insights.
func (s *kioskService) GetUserProfile(ctx context.Context, userID int64) (*domain.ProfileView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := s.now()
	view := &domain.ProfileView{
		User:                 *user,
		ActivePass:           user.ActivePass(now),
		PotentialMonthlyFees: decimal.NewFromInt(int64(user.TransactionCount)).Mul(domain.DigitalFee),
	}
	if view.ActivePass != "" {
		view.PassDaysLeft = int(user.PassExpiry.Sub(now).Hours() / 24)
	}
	return view, nil
}

// GetTransactions retrieves a page of the user's transaction history.
func (s *kioskService) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, 0, fmt.Errorf("get transactions: %w", err)
	}
	txns, total, err := s.ledger.GetTransactionsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get transactions: %w", err)
	}
	return txns, total, nil
}

// GetAnalytics returns a snapshot of the accumulated business counters.
func (s *kioskService) GetAnalytics(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCount, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get analytics: %w", err)
	}
	txnCount, err := s.ledger.CountTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get analytics: %w", err)
	}

	return &domain.AnalyticsSnapshot{
		Analytics:         s.stats,
		TotalUsers:        userCount,
		TotalTransactions: txnCount,
		NetRevenue:        s.stats.TotalRevenue.Add(s.stats.TotalFeesCollected).Sub(s.stats.TotalDiscountsGiven),
	}, nil
}

// PricingInfo returns the static pricing and discount table.
func (s *kioskService) PricingInfo() domain.PricingTable {
	return domain.PricingTable{
		WaterPricePerLiter:    domain.WaterPricePerLiter,
		DigitalFee:            domain.DigitalFee,
		MinBulkLiters:         domain.MinBulkLiters,
		LoyaltyThreshold:      domain.LoyaltyThreshold,
		WeeklyPassCost:        domain.WeeklyPassCost,
		MonthlyPassCost:       domain.MonthlyPassCost,
		TopUpBonusMinimum:     domain.TopUpBonusMinimum,
		TopUpBonusRate:        domain.TopUpBonusRate,
		StudentDiscountRate:   domain.StudentDiscountRate,
		LoyaltyDiscountRate:   domain.LoyaltyDiscountRate,
		PointsPerRedemption:   domain.PointsPerRedemption,
		PointsRedemptionValue: domain.PointsRedemptionValue,
	}
}
