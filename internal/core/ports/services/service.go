package services

// ServiceContainer holds all the service interfaces the handlers depend on.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Supplier     SupplierSvcFacade
	Category     CategorySvcFacade
	Transaction  TransactionSvcFacade
	Upload       UploadSvcFacade
}
