package repositories

import (
	"context"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationMembershipReader defines read operations for organization memberships
type OrganizationMembershipReader interface {
	// FindUserOrganizationRole retrieves the role of a user in an organization.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)
}

// OrganizationRepositoryFacade combines all organization-related repository
// interfaces the ingestion surface needs. Organization CRUD itself is owned by
// the surrounding system.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationMembershipReader
}
