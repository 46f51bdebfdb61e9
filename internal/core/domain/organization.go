package domain

import "time"

// Organization is the tenant boundary: every dimension and fact row belongs to
// exactly one organization.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the possible roles a user can have within an organization.
type UserOrganizationRole string

const (
	RoleAdmin    UserOrganizationRole = "ADMIN"
	RoleMember   UserOrganizationRole = "MEMBER"
	RoleReadOnly UserOrganizationRole = "READONLY"
	RoleRemoved  UserOrganizationRole = "REMOVED" // For users who have been removed from the organization
)

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}
