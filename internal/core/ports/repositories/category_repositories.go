package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its UUID within an organization.
	FindCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves categories for an organization, ordered by name.
	ListCategories(ctx context.Context, organizationID string, limit, offset int) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// GetOrCreateCategoryTx atomically fetches or creates the category
	// identified by (organization, name) inside the given transaction.
	GetOrCreateCategoryTx(ctx context.Context, tx pgx.Tx, prototype domain.Category) (*domain.Category, error)
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryRepositoryWithTx extends CategoryRepositoryFacade with transaction capabilities
type CategoryRepositoryWithTx interface {
	CategoryRepositoryFacade
	TransactionManager
}
