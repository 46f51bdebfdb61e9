package repositories

import (
	"context"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// UploadWriter defines write operations for the batch ledger
type UploadWriter interface {
	// CreateUpload persists a fresh ledger row at status processing.
	CreateUpload(ctx context.Context, upload domain.DataUpload) error

	// FinalizeUpload writes the terminal counters, status, error log and
	// completion time of an upload.
	FinalizeUpload(ctx context.Context, upload domain.DataUpload) error
}

// UploadReader defines read operations for the batch ledger
type UploadReader interface {
	// FindUploadByID retrieves an upload by its UUID within an organization.
	FindUploadByID(ctx context.Context, organizationID, uploadID string) (*domain.DataUpload, error)

	// ListUploads retrieves an organization's uploads, newest first.
	ListUploads(ctx context.Context, organizationID string, limit, offset int) ([]domain.DataUpload, error)
}

// UploadRepositoryFacade combines all upload-ledger repository interfaces
type UploadRepositoryFacade interface {
	UploadWriter
	UploadReader
}
