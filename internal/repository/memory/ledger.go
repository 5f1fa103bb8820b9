// internal/repository/memory/ledger.go
package memory

import (
	"context"

	"aquaflow-kiosk/internal/domain"
	"aquaflow-kiosk/internal/repository"
	"aquaflow-kiosk/internal/util"
)

// Ledger implements repository.LedgerRepository in memory. The ledger is
// append-only and bounded: once full it rejects new records and keeps the
// existing ones, it never evicts.
type Ledger struct {
	maxTransactions int
	transactions    []domain.Transaction
}

// NewLedger creates a Ledger that records at most maxTransactions entries.
func NewLedger(maxTransactions int) *Ledger {
	return &Ledger{
		maxTransactions: maxTransactions,
	}
}

var _ repository.LedgerRepository = (*Ledger)(nil)

// AppendTransaction stores a new transaction and assigns the next sequential
// ID. Returns util.ErrLedgerFull when the ledger is at capacity.
func (l *Ledger) AppendTransaction(_ context.Context, txn *domain.Transaction) error {
	if len(l.transactions) >= l.maxTransactions {
		return util.ErrLedgerFull
	}
	txn.ID = int64(len(l.transactions) + 1)
	l.transactions = append(l.transactions, *txn)
	return nil
}

// GetTransactionsByUserID retrieves the user's transactions newest first,
// applying limit and offset, along with the user's total transaction count.
func (l *Ledger) GetTransactionsByUserID(_ context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	var matched []domain.Transaction
	// Walk backwards so the newest records come first.
	for i := len(l.transactions) - 1; i >= 0; i-- {
		if l.transactions[i].UserID == userID {
			matched = append(matched, l.transactions[i])
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []domain.Transaction{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// CountTransactions returns the number of recorded transactions.
func (l *Ledger) CountTransactions(_ context.Context) (int, error) {
	return len(l.transactions), nil
}
