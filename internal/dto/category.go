package dto

import (
	"time"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// --- Category DTOs ---

// CategoryResponse defines data returned for a category.
type CategoryResponse struct {
	CategoryID     string    `json:"categoryID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	ParentID       *string   `json:"parentID,omitempty"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToCategoryResponse converts domain.Category to DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:     c.CategoryID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		ParentID:       c.ParentID,
		Description:    c.Description,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// ListCategoriesResponse wraps a list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.Category to DTO.
func ToListCategoriesResponse(cs []domain.Category) ListCategoriesResponse {
	list := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCategoryResponse(&c)
	}
	return ListCategoriesResponse{Categories: list}
}
