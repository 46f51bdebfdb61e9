package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxTransactionAmount is the largest amount a single spend transaction may
// carry, matching the NUMERIC(15,2) storage column.
var MaxTransactionAmount = decimal.RequireFromString("999999999999.99")

// SpendTransaction is a fact row representing one spend event. It belongs to
// exactly one organization, supplier and category. The storage layer enforces
// that no two transactions in the same organization share
// (supplier, category, amount, date, invoice_number).
type SpendTransaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	SupplierID     string          `json:"supplierID"`
	CategoryID     string          `json:"categoryID"`
	Amount         decimal.Decimal `json:"amount"` // >= 0, <= MaxTransactionAmount
	Date           time.Time       `json:"date"`   // Calendar date of the spend event
	Description    string          `json:"description"`
	Subcategory    string          `json:"subcategory"`
	Location       string          `json:"location"`
	FiscalYear     *int            `json:"fiscalYear,omitempty"`
	SpendBand      string          `json:"spendBand"`
	PaymentMethod  string          `json:"paymentMethod"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	UploadBatch    string          `json:"uploadBatch"` // Batch ID of the ingestion run that created this row
	UploadedBy     string          `json:"uploadedBy"`  // UserID Reference
	AuditFields
}

// TransactionFilter narrows organization-scoped transaction listings.
type TransactionFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	SupplierID *string
	CategoryID *string
	Limit      int
	Offset     int
}

// DuplicateGroup is one group of transactions sharing
// (supplier, category, amount, date) within the report window.
type DuplicateGroup struct {
	SupplierID   string          `json:"supplierID"`
	SupplierName string          `json:"supplierName"`
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Count        int             `json:"count"`
}
