package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
	"github.com/spendscope/spendscope-backend/internal/csvsafe"
)

// requiredColumns must all be present in the upload's header row.
var requiredColumns = []string{"supplier", "category", "amount", "date"}

// optionalColumns are stored when present; all string values are trimmed and
// formula-sanitized before storage.
var optionalColumns = []string{
	"description", "subcategory", "location", "fiscal_year",
	"spend_band", "payment_method", "invoice_number",
}

// dateLayouts are the calendar-date representations accepted for the date
// column. Only forms with an unambiguous reading are listed.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// rowOutcome is the tagged result of normalizing one data row.
type rowOutcome int

const (
	rowInserted rowOutcome = iota
	rowDuplicate
)

// rowNormalizer turns one untrusted CSV row into normalized relational
// records: it resolves or lazily creates the supplier and category dimension
// rows, parses date and amount, sanitizes optional fields and inserts the
// fact row. Each row is one atomic unit; the dimension upserts and the fact
// insert commit or roll back together.
type rowNormalizer struct {
	supplierRepo portsrepo.SupplierWriter
	categoryRepo portsrepo.CategoryWriter
	txnRepo      portsrepo.TransactionRepositoryWithTx
}

func newRowNormalizer(
	supplierRepo portsrepo.SupplierWriter,
	categoryRepo portsrepo.CategoryWriter,
	txnRepo portsrepo.TransactionRepositoryWithTx,
) *rowNormalizer {
	return &rowNormalizer{
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

// processRow normalizes and persists a single row. On a uniqueness violation
// it returns rowDuplicate without error when skipDuplicates is set, otherwise
// a duplicate error. Any error leaves no partial state behind.
func (n *rowNormalizer) processRow(
	ctx context.Context,
	organizationID, userID, batchID string,
	row map[string]string,
	skipDuplicates bool,
) (rowOutcome, error) {
	supplierName := csvsafe.SanitizeCellValue(row["supplier"])
	if supplierName == "" || supplierName == "'" {
		return 0, errors.New("supplier name is required")
	}

	categoryName := csvsafe.SanitizeCellValue(row["category"])
	if categoryName == "" || categoryName == "'" {
		return 0, errors.New("category name is required")
	}

	date, err := parseDate(row["date"])
	if err != nil {
		return 0, err
	}

	amount, err := parseAmount(row["amount"])
	if err != nil {
		return 0, err
	}

	txn := domain.SpendTransaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: organizationID,
		Amount:         amount,
		Date:           date,
		UploadBatch:    batchID,
		UploadedBy:     userID,
	}
	if err := collectOptionalFields(row, &txn); err != nil {
		return 0, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	txn.AuditFields = audit

	tx, err := n.txnRepo.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = n.txnRepo.Rollback(ctx, tx)
	}()

	supplier, err := n.supplierRepo.GetOrCreateSupplierTx(ctx, tx, domain.Supplier{
		SupplierID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           supplierName,
		IsActive:       true,
		AuditFields:    audit,
	})
	if err != nil {
		return 0, err
	}

	category, err := n.categoryRepo.GetOrCreateCategoryTx(ctx, tx, domain.Category{
		CategoryID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           categoryName,
		IsActive:       true,
		AuditFields:    audit,
	})
	if err != nil {
		return 0, err
	}

	txn.SupplierID = supplier.SupplierID
	txn.CategoryID = category.CategoryID

	if err := n.txnRepo.CreateTransactionTx(ctx, tx, txn); err != nil {
		// The uniqueness constraint is the duplicate check; its violation is
		// an expected control-flow branch, not an exceptional path.
		if errors.Is(err, apperrors.ErrDuplicate) {
			if skipDuplicates {
				return rowDuplicate, nil
			}
			return 0, errors.New("duplicate transaction detected")
		}
		return 0, err
	}

	if err := n.txnRepo.Commit(ctx, tx); err != nil {
		return 0, err
	}

	return rowInserted, nil
}

// parseDate accepts any of the supported calendar-date layouts. The raw value
// is never echoed into the error.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("invalid date format")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date format")
}

// parseAmount strips thousands separators and a currency symbol, then parses
// an exact decimal within the allowed range.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, errors.New("invalid amount value")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, errors.New("amount cannot be negative")
	}
	if amount.GreaterThan(domain.MaxTransactionAmount) {
		return decimal.Decimal{}, errors.New("amount exceeds maximum allowed value")
	}
	return amount, nil
}

// collectOptionalFields trims and formula-sanitizes every present optional
// column into the transaction.
func collectOptionalFields(row map[string]string, txn *domain.SpendTransaction) error {
	for _, col := range optionalColumns {
		raw, ok := row[col]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		value := csvsafe.SanitizeCellValue(raw)

		switch col {
		case "description":
			txn.Description = value
		case "subcategory":
			txn.Subcategory = value
		case "location":
			txn.Location = value
		case "fiscal_year":
			year, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return errors.New("invalid fiscal year value")
			}
			txn.FiscalYear = &year
		case "spend_band":
			txn.SpendBand = value
		case "payment_method":
			txn.PaymentMethod = value
		case "invoice_number":
			txn.InvoiceNumber = value
		}
	}
	return nil
}
