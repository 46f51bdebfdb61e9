package services

import (
	"context"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// OrganizationAuthorizerSvc checks whether a user may act within an organization.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrForbidden when the user does
	// not hold the required role (or better) in the organization.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade exposes the organization operations this service
// needs. Organization CRUD is owned by the surrounding system.
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc

	// GetOrganizationByID retrieves a single organization.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// GetOrganizationForUser retrieves a single organization after checking
	// the caller holds at least read-only membership.
	GetOrganizationForUser(ctx context.Context, organizationID, userID string) (*domain.Organization, error)
}
