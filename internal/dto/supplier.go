package dto

import (
	"time"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// --- Supplier DTOs ---

// SupplierResponse defines data returned for a supplier.
type SupplierResponse struct {
	SupplierID     string    `json:"supplierID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Code           string    `json:"code,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToSupplierResponse converts domain.Supplier to DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:     s.SupplierID,
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		Code:           s.Code,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		Address:        s.Address,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

// ListSuppliersResponse wraps a list of suppliers.
type ListSuppliersResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}

// ToListSuppliersResponse converts a slice of domain.Supplier to DTO.
func ToListSuppliersResponse(ss []domain.Supplier) ListSuppliersResponse {
	list := make([]SupplierResponse, len(ss))
	for i, s := range ss {
		list[i] = ToSupplierResponse(&s)
	}
	return ListSuppliersResponse{Suppliers: list}
}
