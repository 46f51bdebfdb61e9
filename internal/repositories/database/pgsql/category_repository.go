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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryWithTx {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryWithTx
var _ portsrepo.CategoryRepositoryWithTx = (*PgxCategoryRepository)(nil)

const fullCategorySelectQuery = `
SELECT
	c.category_id, c.organization_id, c.name, c.parent_id, c.description,
	c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM categories c
`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(
		&c.CategoryID,
		&c.OrganizationID,
		&c.Name,
		&c.ParentID,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCategoryTx resolves the category identified by (organization,
// name) inside the given transaction, inserting it from the prototype if it
// does not exist yet.
func (r *PgxCategoryRepository) GetOrCreateCategoryTx(ctx context.Context, tx pgx.Tx, prototype domain.Category) (*domain.Category, error) {
	insertQuery := `
		INSERT INTO categories (
			category_id, organization_id, name, parent_id, description,
			is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (organization_id, name) DO NOTHING;
	`
	_, err := tx.Exec(ctx, insertQuery,
		prototype.CategoryID,
		prototype.OrganizationID,
		prototype.Name,
		prototype.ParentID,
		prototype.Description,
		prototype.IsActive,
		prototype.CreatedAt,
		prototype.CreatedBy,
		prototype.LastUpdatedAt,
		prototype.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert category "+prototype.Name, err)
	}

	selectQuery := fullCategorySelectQuery + `WHERE c.organization_id = $1 AND c.name = $2;`
	category, err := scanCategory(tx.QueryRow(ctx, selectQuery, prototype.OrganizationID, prototype.Name))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fetch category "+prototype.Name+" after upsert", err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error) {
	query := fullCategorySelectQuery + `WHERE c.organization_id = $1 AND c.category_id = $2;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, organizationID, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find category "+categoryID, err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, organizationID string, limit, offset int) ([]domain.Category, error) {
	query := fullCategorySelectQuery + `WHERE c.organization_id = $1 ORDER BY c.name LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return categories, nil
}
