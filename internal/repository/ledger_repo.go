// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"aquaflow-kiosk/internal/domain"
)

// LedgerRepository defines the interface for the append-only transaction
// ledger. Records are immutable once appended.
type LedgerRepository interface {
	// AppendTransaction stores a new transaction and assigns the next
	// sequential ID. A full ledger rejects the append.
	AppendTransaction(ctx context.Context, txn *domain.Transaction) error
	// GetTransactionsByUserID retrieves transaction history for a user,
	// newest first, along with the total count for pagination.
	GetTransactionsByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	// CountTransactions returns the number of recorded transactions.
	CountTransactions(ctx context.Context) (int, error)
}
