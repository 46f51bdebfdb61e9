package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
)

// organizationService implements the OrganizationSvcFacade interface.
// Organization CRUD is owned by the surrounding system; this service only
// resolves organizations and authorizes member actions.
type organizationService struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service with the provided dependencies
func NewOrganizationService(organizationRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
	}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// GetOrganizationByID retrieves an organization by its ID
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

// GetOrganizationForUser retrieves an organization after verifying the caller
// holds at least read-only membership in it.
func (s *organizationService) GetOrganizationForUser(ctx context.Context, organizationID, userID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.GetOrganizationByID(ctx, organizationID)
}

// AuthorizeUserAction checks if a user has required permissions for an organization
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	membership, err := s.organizationRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user organization role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserOrganizationRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
