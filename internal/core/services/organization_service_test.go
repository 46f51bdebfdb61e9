package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	FindOrganizationByIDFn     func(ctx context.Context, organizationID string) (*domain.Organization, error)
	FindUserOrganizationRoleFn func(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	return m.FindOrganizationByIDFn(ctx, organizationID)
}

func (m *MockOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	return m.FindUserOrganizationRoleFn(ctx, userID, organizationID)
}

// --- Test Suite ---

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockOrgRepo *MockOrganizationRepository
	service     portssvc.OrganizationSvcFacade
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewOrganizationService(suite.mockOrgRepo)
}

func (suite *OrganizationServiceTestSuite) membership(role domain.UserOrganizationRole) {
	suite.mockOrgRepo.FindUserOrganizationRoleFn = func(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
		return &domain.UserOrganization{UserID: userID, OrganizationID: organizationID, Role: role}, nil
	}
}

// --- AuthorizeUserAction Tests ---

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()
	userID := uuid.NewString()
	orgID := uuid.NewString()

	cases := []struct {
		userRole     domain.UserOrganizationRole
		requiredRole domain.UserOrganizationRole
		allowed      bool
	}{
		{domain.RoleAdmin, domain.RoleReadOnly, true},
		{domain.RoleAdmin, domain.RoleMember, true},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleMember, domain.RoleReadOnly, true},
		{domain.RoleMember, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleAdmin, false},
		{domain.RoleReadOnly, domain.RoleReadOnly, true},
		{domain.RoleReadOnly, domain.RoleMember, false},
		{domain.RoleReadOnly, domain.RoleAdmin, false},
		{domain.RoleRemoved, domain.RoleReadOnly, false},
	}

	for _, tc := range cases {
		suite.membership(tc.userRole)
		err := suite.service.AuthorizeUserAction(ctx, userID, orgID, tc.requiredRole)
		if tc.allowed {
			suite.NoError(err, "role %s should satisfy %s", tc.userRole, tc.requiredRole)
		} else {
			suite.ErrorIs(err, apperrors.ErrForbidden, "role %s should not satisfy %s", tc.userRole, tc.requiredRole)
		}
	}
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_NonMemberIsForbidden() {
	ctx := context.Background()
	suite.mockOrgRepo.FindUserOrganizationRoleFn = func(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
		return nil, apperrors.ErrNotFound
	}

	err := suite.service.AuthorizeUserAction(ctx, uuid.NewString(), uuid.NewString(), domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- GetOrganizationForUser Tests ---

func (suite *OrganizationServiceTestSuite) TestGetOrganizationForUser_Success() {
	ctx := context.Background()
	orgID := uuid.NewString()
	expected := &domain.Organization{OrganizationID: orgID, Name: "Acme Holdings"}

	suite.membership(domain.RoleReadOnly)
	suite.mockOrgRepo.FindOrganizationByIDFn = func(ctx context.Context, organizationID string) (*domain.Organization, error) {
		return expected, nil
	}

	org, err := suite.service.GetOrganizationForUser(ctx, orgID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(expected, org)
}

func (suite *OrganizationServiceTestSuite) TestGetOrganizationForUser_Forbidden() {
	ctx := context.Background()

	suite.membership(domain.RoleRemoved)

	org, err := suite.service.GetOrganizationForUser(ctx, uuid.NewString(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(org)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
