package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryWithTx {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryWithTx
var _ portsrepo.SupplierRepositoryWithTx = (*PgxSupplierRepository)(nil)

const fullSupplierSelectQuery = `
SELECT
	s.supplier_id, s.organization_id, s.name, s.code, s.contact_email,
	s.contact_phone, s.address, s.is_active,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM suppliers s
`

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.SupplierID,
		&s.OrganizationID,
		&s.Name,
		&s.Code,
		&s.ContactEmail,
		&s.ContactPhone,
		&s.Address,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreateSupplierTx resolves the supplier identified by (organization,
// name) inside the given transaction, inserting it from the prototype if it
// does not exist yet. ON CONFLICT DO NOTHING makes concurrent first-insertions
// converge on a single surviving row.
func (r *PgxSupplierRepository) GetOrCreateSupplierTx(ctx context.Context, tx pgx.Tx, prototype domain.Supplier) (*domain.Supplier, error) {
	insertQuery := `
		INSERT INTO suppliers (
			supplier_id, organization_id, name, code, contact_email,
			contact_phone, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (organization_id, name) DO NOTHING;
	`
	_, err := tx.Exec(ctx, insertQuery,
		prototype.SupplierID,
		prototype.OrganizationID,
		prototype.Name,
		prototype.Code,
		prototype.ContactEmail,
		prototype.ContactPhone,
		prototype.Address,
		prototype.IsActive,
		prototype.CreatedAt,
		prototype.CreatedBy,
		prototype.LastUpdatedAt,
		prototype.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert supplier "+prototype.Name, err)
	}

	selectQuery := fullSupplierSelectQuery + `WHERE s.organization_id = $1 AND s.name = $2;`
	supplier, err := scanSupplier(tx.QueryRow(ctx, selectQuery, prototype.OrganizationID, prototype.Name))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fetch supplier "+prototype.Name+" after upsert", err)
	}
	return supplier, nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, organizationID, supplierID string) (*domain.Supplier, error) {
	query := fullSupplierSelectQuery + `WHERE s.organization_id = $1 AND s.supplier_id = $2;`
	supplier, err := scanSupplier(r.Pool.QueryRow(ctx, query, organizationID, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("supplier not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier "+supplierID, err)
	}
	return supplier, nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, organizationID string, limit, offset int) ([]domain.Supplier, error) {
	query := fullSupplierSelectQuery + `WHERE s.organization_id = $1 ORDER BY s.name LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, *supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}
	return suppliers, nil
}
