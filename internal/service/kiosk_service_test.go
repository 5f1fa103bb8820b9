// internal/service/kiosk_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aquaflow-kiosk/internal/domain"
	"aquaflow-kiosk/internal/repository/memory"
	"aquaflow-kiosk/internal/util"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetTransactionsByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) CountTransactions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestService wires the service against real in-memory stores with a
// frozen clock.
func newTestService(maxUsers, maxTransactions int) (*kioskService, *memory.UserStore, *memory.Ledger) {
	users := memory.NewUserStore(maxUsers)
	ledger := memory.NewLedger(maxTransactions)
	svc := NewKioskService(users, ledger).(*kioskService)
	svc.now = func() time.Time { return testNow }
	return svc, users, ledger
}

func TestRegisterUser_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)

	first, err := svc.RegisterUser(ctx, "Asha", "555-0101", true)
	require.NoError(t, err)
	second, err := svc.RegisterUser(ctx, "Ravi", "555-0102", false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.True(t, first.IsStudent)
	assertDec(t, "0", first.WalletBalance)
}

func TestRegisterUser_CapacityExceeded(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(1, 10)

	_, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, "Ravi", "555-0102", false)
	assert.ErrorIs(t, err, util.ErrCapacityExceeded)
}

func TestTopUpWallet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)

	// Below the bonus minimum the wallet grows by exactly the amount.
	balance, err := svc.TopUpWallet(ctx, u.ID, dec("99.99"))
	require.NoError(t, err)
	assertDec(t, "99.99", balance)

	// At the minimum the 2% bonus applies, computed on the deposit.
	balance, err = svc.TopUpWallet(ctx, u.ID, dec("100"))
	require.NoError(t, err)
	assertDec(t, "201.99", balance)
}

func TestTopUpWallet_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)

	_, err = svc.TopUpWallet(ctx, u.ID, decimal.Zero)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.TopUpWallet(ctx, u.ID, dec("-5"))
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.TopUpWallet(ctx, 99, dec("10"))
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestPurchaseWater_CashStudentBulk(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", true)
	require.NoError(t, err)

	receipt, err := svc.PurchaseWater(ctx, u.ID, dec("20"), domain.PaymentMethodCash)
	require.NoError(t, err)

	assertDec(t, "40", receipt.BaseCost)
	assertDec(t, "8", receipt.Discount) // 10% of 40 + flat 4 bulk
	assertDec(t, "0", receipt.Fee)
	assertDec(t, "32", receipt.FinalAmount)
	assert.Equal(t, 40, receipt.PointsEarned)
	assert.Equal(t, int64(1), receipt.TransactionID)

	// Cash never touches the wallet; spend and points track the base cost.
	stored, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assertDec(t, "0", stored.WalletBalance)
	assertDec(t, "40", stored.TotalSpent)
	assert.Equal(t, 40, stored.LoyaltyPoints)
	assert.Equal(t, 1, stored.TransactionCount)
}

func TestPurchaseWater_DigitalLoyaltyCoversFee(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Ravi", "555-0102", false)
	require.NoError(t, err)

	_, err = svc.TopUpWallet(ctx, u.ID, dec("50"))
	require.NoError(t, err)

	// Lifetime spend sits exactly at the loyalty threshold.
	stored, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	stored.TotalSpent = dec("50")
	require.NoError(t, users.UpdateUser(ctx, stored))

	receipt, err := svc.PurchaseWater(ctx, u.ID, dec("5"), domain.PaymentMethodDigital)
	require.NoError(t, err)

	assertDec(t, "10", receipt.BaseCost)
	assertDec(t, "2.5", receipt.Discount)
	assertDec(t, "0", receipt.Fee)
	assertDec(t, "7.5", receipt.FinalAmount)
	assertDec(t, "42.5", receipt.WalletBalance)
}

func TestPurchaseWater_PassHolderDigital(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", true)
	require.NoError(t, err)
	_, err = svc.TopUpWallet(ctx, u.ID, dec("100"))
	require.NoError(t, err)
	_, err = svc.PurchasePass(ctx, u.ID, domain.PassTypeMonthly)
	require.NoError(t, err)

	// Pass holders pay no fee and receive no discount, student status and
	// quantity notwithstanding.
	receipt, err := svc.PurchaseWater(ctx, u.ID, dec("25"), domain.PaymentMethodDigital)
	require.NoError(t, err)

	assertDec(t, "0", receipt.Fee)
	assertDec(t, "0", receipt.Discount)
	assertDec(t, "50", receipt.FinalAmount)
}

func TestPurchaseWater_RedemptionDeductsSingleBlock(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Meera", "555-0103", false)
	require.NoError(t, err)

	stored, err := users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	stored.LoyaltyPoints = 250
	require.NoError(t, users.UpdateUser(ctx, stored))

	receipt, err := svc.PurchaseWater(ctx, u.ID, dec("1"), domain.PaymentMethodCash)
	require.NoError(t, err)

	assertDec(t, "5", receipt.Discount)
	// 250 - 100 redeemed + 2 earned on the base cost.
	assert.Equal(t, 152, receipt.LoyaltyPoints)
}

func TestPurchaseWater_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc, users, ledger := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Sam", "555-0105", false)
	require.NoError(t, err)

	_, err = svc.PurchaseWater(ctx, u.ID, dec("5"), domain.PaymentMethodDigital)
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)

	// No record, no mutation.
	count, _ := ledger.CountTransactions(ctx)
	assert.Equal(t, 0, count)
	stored, _ := users.GetUserByID(ctx, u.ID)
	assert.Equal(t, 0, stored.TransactionCount)
}

func TestPurchaseWater_InvalidInputs(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Sam", "555-0105", false)
	require.NoError(t, err)

	_, err = svc.PurchaseWater(ctx, u.ID, decimal.Zero, domain.PaymentMethodCash)
	assert.ErrorIs(t, err, util.ErrInvalidQuantity)

	_, err = svc.PurchaseWater(ctx, u.ID, dec("5"), domain.PaymentMethod("CARD"))
	assert.ErrorIs(t, err, util.ErrInvalidPaymentMethod)

	_, err = svc.PurchaseWater(ctx, 42, dec("5"), domain.PaymentMethodCash)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestPurchaseWater_LedgerFullLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserRepository)
	mockLedger := new(MockLedgerRepository)

	user := domain.NewUser("Asha", "555-0101", false)
	user.ID = 1
	user.WalletBalance = dec("100")

	mockUsers.On("GetUserByID", ctx, int64(1)).Return(user, nil)
	mockLedger.On("AppendTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(util.ErrLedgerFull)

	svc := NewKioskService(mockUsers, mockLedger)

	_, err := svc.PurchaseWater(ctx, 1, dec("5"), domain.PaymentMethodDigital)
	assert.ErrorIs(t, err, util.ErrLedgerFull)

	// The user record is never written when the append is rejected.
	mockUsers.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	mockUsers.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestPurchasePass_OverwritesExpiry(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)
	_, err = svc.TopUpWallet(ctx, u.ID, dec("100"))
	require.NoError(t, err)

	weekly, err := svc.PurchasePass(ctx, u.ID, domain.PassTypeWeekly)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(7*24*time.Hour), weekly.Expiry)
	assertDec(t, "87", weekly.WalletBalance)

	// Buying a monthly pass right after replaces the expiry, it does not
	// stack onto the remaining weekly days.
	monthly, err := svc.PurchasePass(ctx, u.ID, domain.PassTypeMonthly)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(30*24*time.Hour), monthly.Expiry)
	assertDec(t, "37", monthly.WalletBalance)
}

func TestPurchasePass_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)

	_, err = svc.PurchasePass(ctx, u.ID, domain.PassType("ANNUAL"))
	assert.ErrorIs(t, err, util.ErrInvalidPassType)

	_, err = svc.PurchasePass(ctx, u.ID, domain.PassTypeWeekly)
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)

	_, err = svc.PurchasePass(ctx, 42, domain.PassTypeWeekly)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetUserProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", true)
	require.NoError(t, err)
	_, err = svc.TopUpWallet(ctx, u.ID, dec("100"))
	require.NoError(t, err)
	_, err = svc.PurchasePass(ctx, u.ID, domain.PassTypeMonthly)
	require.NoError(t, err)
	_, err = svc.PurchaseWater(ctx, u.ID, dec("5"), domain.PaymentMethodDigital)
	require.NoError(t, err)

	profile, err := svc.GetUserProfile(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.PassTypeMonthly, profile.ActivePass)
	assert.Equal(t, 30, profile.PassDaysLeft)
	assert.Equal(t, 1, profile.TransactionCount)
	assertDec(t, "1", profile.PotentialMonthlyFees)

	_, err = svc.GetUserProfile(ctx, 42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetAnalytics(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	student, err := svc.RegisterUser(ctx, "Asha", "555-0101", true)
	require.NoError(t, err)
	other, err := svc.RegisterUser(ctx, "Ravi", "555-0102", false)
	require.NoError(t, err)
	_, err = svc.TopUpWallet(ctx, other.ID, dec("100"))
	require.NoError(t, err)

	_, err = svc.PurchaseWater(ctx, student.ID, dec("20"), domain.PaymentMethodCash)
	require.NoError(t, err)
	_, err = svc.PurchaseWater(ctx, other.ID, dec("5"), domain.PaymentMethodDigital)
	require.NoError(t, err)
	_, err = svc.PurchasePass(ctx, other.ID, domain.PassTypeWeekly)
	require.NoError(t, err)

	snapshot, err := svc.GetAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.TotalUsers)
	assert.Equal(t, 2, snapshot.TotalTransactions)
	assert.Equal(t, 1, snapshot.CashTransactions)
	assert.Equal(t, 1, snapshot.DigitalTransactions)
	assert.Equal(t, 1, snapshot.BulkPurchases)
	assert.Equal(t, 1, snapshot.PassHolders)
	assertDec(t, "50", snapshot.TotalRevenue)        // 40 + 10 base costs
	assertDec(t, "1", snapshot.TotalFeesCollected)   // full fee on the 5L digital buy
	assertDec(t, "8", snapshot.TotalDiscountsGiven)  // student + bulk on the cash buy
	assertDec(t, "43", snapshot.NetRevenue)          // 50 + 1 - 8
}

func TestGetTransactions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(10, 10)
	u, err := svc.RegisterUser(ctx, "Asha", "555-0101", false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.PurchaseWater(ctx, u.ID, dec("2"), domain.PaymentMethodCash)
		require.NoError(t, err)
	}

	txns, total, err := svc.GetTransactions(ctx, u.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, txns, 2)
	assert.Equal(t, int64(3), txns[0].ID) // newest first

	_, _, err = svc.GetTransactions(ctx, 42, 10, 0)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
