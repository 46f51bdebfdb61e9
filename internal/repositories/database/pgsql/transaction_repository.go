package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for spend transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const fullTransactionSelectQuery = `
SELECT
	t.transaction_id, t.organization_id, t.supplier_id, t.category_id,
	t.amount, t.date, t.description, t.subcategory, t.location,
	t.fiscal_year, t.spend_band, t.payment_method, t.invoice_number,
	t.upload_batch, t.uploaded_by,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM spend_transactions t
`

func scanTransaction(row pgx.Row) (*domain.SpendTransaction, error) {
	var t domain.SpendTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.OrganizationID,
		&t.SupplierID,
		&t.CategoryID,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.Subcategory,
		&t.Location,
		&t.FiscalYear,
		&t.SpendBand,
		&t.PaymentMethod,
		&t.InvoiceNumber,
		&t.UploadBatch,
		&t.UploadedBy,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransactionTx inserts one spend transaction inside the given database
// transaction. The uq_spend_transactions_logical constraint is the sole
// authority on duplicates; its violation surfaces as apperrors.ErrDuplicate.
func (r *PgxTransactionRepository) CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.SpendTransaction) error {
	query := `
		INSERT INTO spend_transactions (
			transaction_id, organization_id, supplier_id, category_id,
			amount, date, description, subcategory, location,
			fiscal_year, spend_band, payment_method, invoice_number,
			upload_batch, uploaded_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.OrganizationID,
		txn.SupplierID,
		txn.CategoryID,
		txn.Amount,
		txn.Date,
		txn.Description,
		txn.Subcategory,
		txn.Location,
		txn.FiscalYear,
		txn.SpendBand,
		txn.PaymentMethod,
		txn.InvoiceNumber,
		txn.UploadBatch,
		txn.UploadedBy,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("transaction already exists")
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filter domain.TransactionFilter) ([]domain.SpendTransaction, error) {
	where := `WHERE t.organization_id = $1`
	args := []any{organizationID}

	addArg := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.DateFrom != nil {
		addArg(" AND t.date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(" AND t.date <= $%d", *filter.DateTo)
	}
	if filter.SupplierID != nil {
		addArg(" AND t.supplier_id = $%d", *filter.SupplierID)
	}
	if filter.CategoryID != nil {
		addArg(" AND t.category_id = $%d", *filter.CategoryID)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fullTransactionSelectQuery + where +
		fmt.Sprintf(" ORDER BY t.date DESC, t.transaction_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	var txns []domain.SpendTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindDuplicateGroups(ctx context.Context, organizationID string, since time.Time) ([]domain.DuplicateGroup, error) {
	query := `
		SELECT
			t.supplier_id, s.name AS supplier_name,
			t.category_id, c.name AS category_name,
			t.amount, t.date, COUNT(*) AS cnt
		FROM spend_transactions t
		JOIN suppliers s ON s.supplier_id = t.supplier_id
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.organization_id = $1 AND t.created_at >= $2
		GROUP BY t.supplier_id, s.name, t.category_id, c.name, t.amount, t.date
		HAVING COUNT(*) > 1
		ORDER BY cnt DESC, t.date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query duplicate groups", err)
	}
	defer rows.Close()

	var groups []domain.DuplicateGroup
	for rows.Next() {
		var g domain.DuplicateGroup
		err := rows.Scan(
			&g.SupplierID,
			&g.SupplierName,
			&g.CategoryID,
			&g.CategoryName,
			&g.Amount,
			&g.Date,
			&g.Count,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan duplicate group row", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating duplicate group rows", err)
	}
	return groups, nil
}

// DeleteTransactions removes the identified transactions. The organization
// filter makes IDs from other tenants silently fall out of the count.
func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, organizationID string, transactionIDs []string) (int64, error) {
	query := `
		DELETE FROM spend_transactions
		WHERE organization_id = $1 AND transaction_id = ANY($2);
	`
	result, err := r.Pool.Exec(ctx, query, organizationID, transactionIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete transactions", err)
	}
	return result.RowsAffected(), nil
}
