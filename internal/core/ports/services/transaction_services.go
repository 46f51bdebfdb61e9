package services

import (
	"context"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// TransactionSvcFacade exposes organization-scoped spend transaction operations.
type TransactionSvcFacade interface {
	// ListTransactions retrieves transactions matching the filter.
	ListTransactions(ctx context.Context, organizationID, userID string, filter domain.TransactionFilter) ([]domain.SpendTransaction, error)

	// BulkDeleteTransactions removes the identified transactions and returns
	// how many were deleted.
	BulkDeleteTransactions(ctx context.Context, organizationID, userID string, transactionIDs []string) (int64, error)

	// FindDuplicates reports potential duplicate transaction groups within
	// the trailing number of days.
	FindDuplicates(ctx context.Context, organizationID, userID string, days int) ([]domain.DuplicateGroup, error)
}
