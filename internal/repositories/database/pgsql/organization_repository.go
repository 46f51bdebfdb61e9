package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var org domain.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&org.OrganizationID,
		&org.Name,
		&org.Description,
		&org.IsActive,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("organization not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find organization "+organizationID, err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var uo domain.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&uo.UserID,
		&uo.OrganizationID,
		&uo.Role,
		&uo.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence of a membership row reads as not found; the service layer
			// turns it into a forbidden response.
			return nil, apperrors.NewNotFoundError("organization membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find role for user "+userID+" in organization "+organizationID, err)
	}
	return &uo, nil
}
