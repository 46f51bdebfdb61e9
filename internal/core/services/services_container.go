package services

import (
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The organization service goes first; every other service authorizes
	// through it.
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.Supplier = NewSupplierService(
		repos.SupplierRepo,
		WithSupplierOrganizationAuthorizer(authorizer),
	)
	container.Category = NewCategoryService(
		repos.CategoryRepo,
		WithCategoryOrganizationAuthorizer(authorizer),
	)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionOrganizationAuthorizer(authorizer),
	)
	container.Upload = NewUploadService(
		repos.UploadRepo,
		repos.SupplierRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		WithUploadOrganizationAuthorizer(authorizer),
	)

	return container
}
