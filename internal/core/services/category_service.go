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

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// CategoryServiceOption is a functional option for configuring the category service
type CategoryServiceOption func(*categoryService)

// WithCategoryOrganizationAuthorizer sets the organization authorizer for the category service.
func WithCategoryOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) CategoryServiceOption {
	return func(s *categoryService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewCategoryService creates a new category service with the provided dependencies
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, options ...CategoryServiceOption) portssvc.CategorySvcFacade {
	svc := &categoryService{
		categoryRepo: categoryRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// GetCategoryByID retrieves a category by its ID within an organization.
func (s *categoryService) GetCategoryByID(ctx context.Context, organizationID, categoryID, userID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, organizationID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category",
				slog.String("organization_id", organizationID),
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

// ListCategories retrieves an organization's categories ordered by name.
func (s *categoryService) ListCategories(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.Category, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	categories, err := s.categoryRepo.ListCategories(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
