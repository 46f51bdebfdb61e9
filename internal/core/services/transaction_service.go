package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000

	// defaultDuplicateWindowDays is the trailing window the duplicates report
	// scans when the caller does not narrow it.
	defaultDuplicateWindowDays = 30

	// maxBulkDeleteIDs bounds one bulk delete request.
	maxBulkDeleteIDs = 1000
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionOrganizationAuthorizer sets the organization authorizer for the transaction service.
func WithTransactionOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewTransactionService creates a new transaction service with the provided dependencies
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo: txnRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ListTransactions retrieves an organization's transactions matching the filter.
func (s *transactionService) ListTransactions(ctx context.Context, organizationID, userID string, filter domain.TransactionFilter) ([]domain.SpendTransaction, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	txns, err := s.txnRepo.ListTransactions(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.SpendTransaction{}
	}
	return txns, nil
}

// BulkDeleteTransactions removes the identified transactions. IDs belonging to
// other organizations are ignored rather than erred on; the returned count
// tells the caller how many rows actually went away.
func (s *transactionService) BulkDeleteTransactions(ctx context.Context, organizationID, userID string, transactionIDs []string) (int64, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return 0, err
	}

	if len(transactionIDs) == 0 {
		return 0, apperrors.NewValidationFailedError("no transaction IDs provided")
	}
	if len(transactionIDs) > maxBulkDeleteIDs {
		return 0, apperrors.NewValidationFailedError("too many transaction IDs in one request")
	}

	deleted, err := s.txnRepo.DeleteTransactions(ctx, organizationID, transactionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to bulk delete transactions",
			slog.String("organization_id", organizationID),
			slog.Int("requested", len(transactionIDs)))
		return 0, err
	}

	s.LogInfo(ctx, "Transactions deleted",
		slog.String("organization_id", organizationID),
		slog.Int("requested", len(transactionIDs)),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// FindDuplicates reports groups of transactions sharing supplier, category,
// amount and date within the trailing window.
func (s *transactionService) FindDuplicates(ctx context.Context, organizationID, userID string, days int) ([]domain.DuplicateGroup, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if days <= 0 {
		days = defaultDuplicateWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)

	groups, err := s.txnRepo.FindDuplicateGroups(ctx, organizationID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to find duplicate groups",
			slog.String("organization_id", organizationID),
			slog.Int("window_days", days))
		return nil, err
	}
	if groups == nil {
		groups = []domain.DuplicateGroup{}
	}
	return groups, nil
}
