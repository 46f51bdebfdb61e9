package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// TransactionWriter defines write operations for spend transaction data
type TransactionWriter interface {
	// CreateTransactionTx inserts a spend transaction inside the given
	// database transaction. A violation of the logical-uniqueness constraint
	// (organization, supplier, category, amount, date, invoice_number) is
	// reported as apperrors.ErrDuplicate; the constraint is the sole
	// authority for duplicate detection.
	CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.SpendTransaction) error
}

// TransactionReader defines read operations for spend transaction data
type TransactionReader interface {
	// ListTransactions retrieves organization-scoped transactions matching
	// the filter, newest date first.
	ListTransactions(ctx context.Context, organizationID string, filter domain.TransactionFilter) ([]domain.SpendTransaction, error)

	// FindDuplicateGroups reports (supplier, category, amount, date) groups
	// appearing more than once since the cutoff date.
	FindDuplicateGroups(ctx context.Context, organizationID string, since time.Time) ([]domain.DuplicateGroup, error)
}

// TransactionDeleter defines delete operations for spend transaction data
type TransactionDeleter interface {
	// DeleteTransactions removes the identified transactions, scoped to the
	// organization, and returns how many rows were deleted.
	DeleteTransactions(ctx context.Context, organizationID string, transactionIDs []string) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionWriter
	TransactionReader
	TransactionDeleter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities. The ingestion row loop uses Begin/Commit/Rollback
// to scope each row's dimension upserts and fact insert into one atomic unit.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
