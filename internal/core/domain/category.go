package domain

// Category is an organization-scoped dimension entity, unique per
// (organization, name). Categories may nest one level via ParentID.
type Category struct {
	CategoryID     string  `json:"categoryID"` // Primary Key (UUID)
	OrganizationID string  `json:"organizationID"`
	Name           string  `json:"name"`
	ParentID       *string `json:"parentID,omitempty"` // Optional FK -> categories.category_id
	Description    string  `json:"description"`
	IsActive       bool    `json:"isActive"`
	AuditFields
}
