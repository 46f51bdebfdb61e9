package dto

import (
	"time"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// --- Organization DTOs ---

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}
