package domain

// Supplier is an organization-scoped dimension entity. Identity within a
// tenant is the (organization, name) pair; the SupplierID UUID is the only
// identifier ever exposed externally.
type Supplier struct {
	SupplierID     string `json:"supplierID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	Address        string `json:"address"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
