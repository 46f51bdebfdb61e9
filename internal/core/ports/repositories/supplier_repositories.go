package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// SupplierReader defines read operations for supplier data
type SupplierReader interface {
	// FindSupplierByID retrieves a supplier by its UUID within an organization.
	FindSupplierByID(ctx context.Context, organizationID, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves suppliers for an organization, ordered by name.
	ListSuppliers(ctx context.Context, organizationID string, limit, offset int) ([]domain.Supplier, error)
}

// SupplierWriter defines write operations for supplier data
type SupplierWriter interface {
	// GetOrCreateSupplierTx atomically fetches or creates the supplier
	// identified by (organization, name) inside the given transaction. The
	// prototype carries the ID and audit fields to use on create; the
	// returned supplier is the surviving row either way.
	GetOrCreateSupplierTx(ctx context.Context, tx pgx.Tx, prototype domain.Supplier) (*domain.Supplier, error)
}

// SupplierRepositoryFacade combines all supplier-related repository interfaces
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
}

// SupplierRepositoryWithTx extends SupplierRepositoryFacade with transaction capabilities
type SupplierRepositoryWithTx interface {
	SupplierRepositoryFacade
	TransactionManager
}
