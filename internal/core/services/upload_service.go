package services

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/csvsafe"
	"golang.org/x/text/encoding/charmap"
)

// uploadService implements the UploadSvcFacade interface: it coordinates one
// ingestion run from file validation through row normalization to the final
// ledger state.
type uploadService struct {
	BaseService
	uploadRepo portsrepo.UploadRepositoryFacade
	normalizer *rowNormalizer
}

// UploadServiceOption is a functional option for configuring the upload service
type UploadServiceOption func(*uploadService)

// WithUploadOrganizationAuthorizer sets the organization authorizer for the upload service.
func WithUploadOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) UploadServiceOption {
	return func(s *uploadService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewUploadService creates a new upload service with the provided dependencies
func NewUploadService(
	uploadRepo portsrepo.UploadRepositoryFacade,
	supplierRepo portsrepo.SupplierWriter,
	categoryRepo portsrepo.CategoryWriter,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	options ...UploadServiceOption,
) portssvc.UploadSvcFacade {
	svc := &uploadService{
		uploadRepo: uploadRepo,
		normalizer: newRowNormalizer(supplierRepo, categoryRepo, txnRepo),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure uploadService implements the UploadSvcFacade interface
var _ portssvc.UploadSvcFacade = (*uploadService)(nil)

// ProcessUpload runs one ingestion run. File validation failures surface
// before any ledger row exists; anything that fails after the ledger row is
// created finalizes it as failed with a single redacted entry. Row-level
// failures never abort the run.
func (s *uploadService) ProcessUpload(
	ctx context.Context,
	organizationID, userID string,
	file io.Reader,
	fileName string,
	fileSize int64,
	skipDuplicates bool,
) (*domain.DataUpload, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(file, fileProbeSize)
	head, err := br.Peek(fileProbeSize)
	if err != nil && !errors.Is(err, io.EOF) {
		s.LogError(ctx, err, "Failed to read upload probe bytes",
			slog.String("organization_id", organizationID))
		return nil, errCouldNotValidate
	}

	if err := ValidateUploadFile(fileName, fileSize, head); err != nil {
		s.LogInfo(ctx, "Upload rejected by file validation",
			slog.String("organization_id", organizationID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	now := time.Now()
	upload := domain.DataUpload{
		UploadID:         uuid.NewString(),
		OrganizationID:   organizationID,
		UploadedBy:       userID,
		FileName:         csvsafe.SanitizeFileName(fileName),
		OriginalFileName: fileName,
		FileSize:         fileSize,
		BatchID:          uuid.NewString(),
		Status:           domain.UploadStatusProcessing,
		CreatedAt:        now,
	}

	if err := s.uploadRepo.CreateUpload(ctx, upload); err != nil {
		s.LogError(ctx, err, "Failed to create upload ledger row",
			slog.String("organization_id", organizationID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to record upload", err)
	}

	if runErr := s.runIngestion(ctx, &upload, br, head, skipDuplicates); runErr != nil {
		s.LogError(ctx, runErr, "Ingestion run failed",
			slog.String("organization_id", organizationID),
			slog.String("batch_id", upload.BatchID))
		s.failUpload(ctx, &upload, runErr)

		// The caller never sees the original error text.
		var appErr *apperrors.AppError
		if errors.As(runErr, &appErr) {
			return nil, apperrors.NewAppError(appErr.Code, redactErrorMessage(appErr.Message), nil)
		}
		return nil, apperrors.NewValidationFailedError(redactErrorMessage(runErr.Error()))
	}

	s.LogInfo(ctx, "Upload processed",
		slog.String("organization_id", organizationID),
		slog.String("batch_id", upload.BatchID),
		slog.Int("total", upload.TotalRows),
		slog.Int("successful", upload.SuccessfulRows),
		slog.Int("failed", upload.FailedRows),
		slog.Int("duplicate", upload.DuplicateRows),
		slog.String("status", string(upload.Status)))
	return &upload, nil
}

// runIngestion parses the file and drives the sequential row loop. File-level
// failures (parse errors, row cap, missing columns) abort with an error and
// leave the counters untouched; row-level failures are accumulated.
func (s *uploadService) runIngestion(
	ctx context.Context,
	upload *domain.DataUpload,
	r io.Reader,
	head []byte,
	skipDuplicates bool,
) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected ingestion failure: %v", rec)
		}
	}()

	var reader io.Reader = r
	if !validUTF8Prefix(head) {
		reader = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file contains no data")
		}
		return errors.New("could not parse file contents")
	}

	records, err := cr.ReadAll()
	if err != nil {
		return errors.New("could not parse file contents")
	}

	if len(records) > MaxRowsPerUpload {
		return fmt.Errorf("file contains %d rows, maximum allowed is %d", len(records), MaxRowsPerUpload)
	}

	// Required column names are case-sensitive.
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return missingColumnsError(missing)
	}

	var successful, failed, duplicates int
	var rowErrors []domain.UploadRowError

	for i, record := range records {
		// Position 1 is the header row; the first data row reports as 2.
		position := i + 2

		row := make(map[string]string, len(header))
		for name, idx := range colIndex {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}

		outcome, rowErr := s.normalizer.processRow(ctx, upload.OrganizationID, upload.UploadedBy, upload.BatchID, row, skipDuplicates)
		switch {
		case rowErr != nil:
			failed++
			rowErrors = append(rowErrors, domain.UploadRowError{Row: position, Error: rowErr.Error()})
		case outcome == rowDuplicate:
			duplicates++
		default:
			successful++
		}
	}

	completedAt := time.Now()
	upload.TotalRows = len(records)
	upload.SuccessfulRows = successful
	upload.FailedRows = failed
	upload.DuplicateRows = duplicates
	upload.ErrorLog = redactErrorLog(rowErrors)
	upload.CompletedAt = &completedAt

	switch {
	case failed == 0:
		upload.Status = domain.UploadStatusCompleted
	case successful > 0:
		upload.Status = domain.UploadStatusPartial
	default:
		upload.Status = domain.UploadStatusFailed
	}

	if err := s.uploadRepo.FinalizeUpload(ctx, *upload); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to finalize upload", err)
	}

	return nil
}

// failUpload finalizes the ledger row as failed with a single redacted entry.
// Counters stay at zero; the failure happened before any result was reliable.
func (s *uploadService) failUpload(ctx context.Context, upload *domain.DataUpload, cause error) {
	completedAt := time.Now()
	upload.Status = domain.UploadStatusFailed
	upload.TotalRows = 0
	upload.SuccessfulRows = 0
	upload.FailedRows = 0
	upload.DuplicateRows = 0
	upload.ErrorLog = []domain.UploadRowError{{Row: 0, Error: redactErrorMessage(cause.Error())}}
	upload.CompletedAt = &completedAt

	if err := s.uploadRepo.FinalizeUpload(ctx, *upload); err != nil {
		s.LogError(ctx, err, "Failed to finalize failed upload",
			slog.String("batch_id", upload.BatchID))
	}
}

// GetUploadByID retrieves one upload's ledger record.
func (s *uploadService) GetUploadByID(ctx context.Context, organizationID, uploadID, userID string) (*domain.DataUpload, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	upload, err := s.uploadRepo.FindUploadByID(ctx, organizationID, uploadID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find upload",
				slog.String("organization_id", organizationID),
				slog.String("upload_id", uploadID))
		}
		return nil, err
	}
	return upload, nil
}

// ListUploads retrieves an organization's upload history, newest first.
func (s *uploadService) ListUploads(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.DataUpload, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	uploads, err := s.uploadRepo.ListUploads(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list uploads",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if uploads == nil {
		uploads = []domain.DataUpload{}
	}
	return uploads, nil
}
