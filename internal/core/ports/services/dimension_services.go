package services

import (
	"context"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// SupplierSvcFacade exposes supplier dimension reads. Suppliers are created
// only by the ingestion pipeline's get-or-create path.
type SupplierSvcFacade interface {
	GetSupplierByID(ctx context.Context, organizationID, supplierID, userID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.Supplier, error)
}

// CategorySvcFacade exposes category dimension reads.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, organizationID, categoryID, userID string) (*domain.Category, error)
	ListCategories(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.Category, error)
}
