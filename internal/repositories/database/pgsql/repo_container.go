package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		SupplierRepo:     newPgxSupplierRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		UploadRepo:       newPgxUploadRepository(dbPool),
	}
}
