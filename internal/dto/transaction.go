package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// --- Transaction DTOs ---

// ListTransactionsRequest defines the query parameters for listing transactions.
type ListTransactionsRequest struct {
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	SupplierID *string    `form:"supplierID"`
	CategoryID *string    `form:"categoryID"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

// TransactionResponse defines data returned for a spend transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	OrganizationID string          `json:"organizationID"`
	SupplierID     string          `json:"supplierID"`
	CategoryID     string          `json:"categoryID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description,omitempty"`
	Subcategory    string          `json:"subcategory,omitempty"`
	Location       string          `json:"location,omitempty"`
	FiscalYear     *int            `json:"fiscalYear,omitempty"`
	SpendBand      string          `json:"spendBand,omitempty"`
	PaymentMethod  string          `json:"paymentMethod,omitempty"`
	InvoiceNumber  string          `json:"invoiceNumber,omitempty"`
	UploadBatch    string          `json:"uploadBatch"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts domain.SpendTransaction to DTO.
func ToTransactionResponse(t *domain.SpendTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		OrganizationID: t.OrganizationID,
		SupplierID:     t.SupplierID,
		CategoryID:     t.CategoryID,
		Amount:         t.Amount,
		Date:           t.Date,
		Description:    t.Description,
		Subcategory:    t.Subcategory,
		Location:       t.Location,
		FiscalYear:     t.FiscalYear,
		SpendBand:      t.SpendBand,
		PaymentMethod:  t.PaymentMethod,
		InvoiceNumber:  t.InvoiceNumber,
		UploadBatch:    t.UploadBatch,
		CreatedAt:      t.CreatedAt,
	}
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain.SpendTransaction to DTO.
func ToListTransactionsResponse(ts []domain.SpendTransaction) ListTransactionsResponse {
	list := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: list}
}

// BulkDeleteTransactionsRequest defines data for deleting transactions in bulk.
type BulkDeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// BulkDeleteTransactionsResponse reports how many transactions were deleted.
type BulkDeleteTransactionsResponse struct {
	Deleted int64 `json:"deleted"`
}

// DuplicateGroupResponse defines one potential duplicate group.
type DuplicateGroupResponse struct {
	SupplierID   string          `json:"supplierID"`
	SupplierName string          `json:"supplierName"`
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Count        int             `json:"count"`
}

// ListDuplicateGroupsResponse wraps the duplicates report.
type ListDuplicateGroupsResponse struct {
	Duplicates []DuplicateGroupResponse `json:"duplicates"`
}

// ToListDuplicateGroupsResponse converts a slice of domain.DuplicateGroup to DTO.
func ToListDuplicateGroupsResponse(gs []domain.DuplicateGroup) ListDuplicateGroupsResponse {
	list := make([]DuplicateGroupResponse, len(gs))
	for i, g := range gs {
		list[i] = DuplicateGroupResponse{
			SupplierID:   g.SupplierID,
			SupplierName: g.SupplierName,
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			Amount:       g.Amount,
			Date:         g.Date,
			Count:        g.Count,
		}
	}
	return ListDuplicateGroupsResponse{Duplicates: list}
}
