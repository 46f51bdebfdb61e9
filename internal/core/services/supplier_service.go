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

// supplierService implements the SupplierSvcFacade interface
type supplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// SupplierServiceOption is a functional option for configuring the supplier service
type SupplierServiceOption func(*supplierService)

// WithSupplierOrganizationAuthorizer sets the organization authorizer for the supplier service.
func WithSupplierOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) SupplierServiceOption {
	return func(s *supplierService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewSupplierService creates a new supplier service with the provided dependencies
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade, options ...SupplierServiceOption) portssvc.SupplierSvcFacade {
	svc := &supplierService{
		supplierRepo: supplierRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure supplierService implements the SupplierSvcFacade interface
var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

// GetSupplierByID retrieves a supplier by its ID within an organization.
func (s *supplierService) GetSupplierByID(ctx context.Context, organizationID, supplierID, userID string) (*domain.Supplier, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, organizationID, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find supplier",
				slog.String("organization_id", organizationID),
				slog.String("supplier_id", supplierID))
		}
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers retrieves an organization's suppliers ordered by name.
func (s *supplierService) ListSuppliers(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.Supplier, error) {
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

	suppliers, err := s.supplierRepo.ListSuppliers(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list suppliers",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}
