package services

import (
	"context"
	"io"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// UploadSvcFacade drives the ingestion pipeline and exposes the batch ledger.
type UploadSvcFacade interface {
	// ProcessUpload runs one ingestion run: validates the file, creates the
	// ledger row, streams rows through normalization inside per-row atomic
	// units, and finalizes the ledger with counters, terminal status and a
	// bounded redacted error log. File-level failures before the ledger
	// exists return a validation error with no ledger row; later failures
	// finalize the ledger as failed and return a sanitized error.
	ProcessUpload(ctx context.Context, organizationID, userID string, file io.Reader, fileName string, fileSize int64, skipDuplicates bool) (*domain.DataUpload, error)

	// GetUploadByID retrieves one upload's ledger record.
	GetUploadByID(ctx context.Context, organizationID, uploadID, userID string) (*domain.DataUpload, error)

	// ListUploads retrieves an organization's upload history, newest first.
	ListUploads(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.DataUpload, error)
}

// TransactionExporter is the collaborator port for the export-to-CSV reporting
// path, which lives outside this service. Implementations must pass every
// string column through csvsafe.SanitizeCellValue before serialization:
// a value that was safe on ingress can still be reinterpreted as a formula by
// a different spreadsheet program on the way out.
type TransactionExporter interface {
	ExportTransactions(ctx context.Context, organizationID string, filter domain.TransactionFilter, w io.Writer) error
}
