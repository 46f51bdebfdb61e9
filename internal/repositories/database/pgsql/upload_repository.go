package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portsrepo "github.com/spendscope/spendscope-backend/internal/core/ports/repositories"
)

type PgxUploadRepository struct {
	BaseRepository
}

// newPgxUploadRepository creates a new repository for the upload ledger.
func newPgxUploadRepository(pool *pgxpool.Pool) portsrepo.UploadRepositoryFacade {
	return &PgxUploadRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUploadRepository implements portsrepo.UploadRepositoryFacade
var _ portsrepo.UploadRepositoryFacade = (*PgxUploadRepository)(nil)

const fullUploadSelectQuery = `
SELECT
	u.upload_id, u.organization_id, u.uploaded_by,
	u.file_name, u.original_file_name, u.file_size, u.batch_id,
	u.total_rows, u.successful_rows, u.failed_rows, u.duplicate_rows,
	u.status, u.error_log, u.created_at, u.completed_at
FROM data_uploads u
`

func scanUpload(row pgx.Row) (*domain.DataUpload, error) {
	var u domain.DataUpload
	var errorLog []byte
	err := row.Scan(
		&u.UploadID,
		&u.OrganizationID,
		&u.UploadedBy,
		&u.FileName,
		&u.OriginalFileName,
		&u.FileSize,
		&u.BatchID,
		&u.TotalRows,
		&u.SuccessfulRows,
		&u.FailedRows,
		&u.DuplicateRows,
		&u.Status,
		&errorLog,
		&u.CreatedAt,
		&u.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(errorLog) > 0 {
		if err := json.Unmarshal(errorLog, &u.ErrorLog); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (r *PgxUploadRepository) CreateUpload(ctx context.Context, upload domain.DataUpload) error {
	query := `
		INSERT INTO data_uploads (
			upload_id, organization_id, uploaded_by,
			file_name, original_file_name, file_size, batch_id,
			total_rows, successful_rows, failed_rows, duplicate_rows,
			status, error_log, created_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	errorLog, err := json.Marshal(upload.ErrorLog)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode error log", err)
	}
	_, err = r.Pool.Exec(ctx, query,
		upload.UploadID,
		upload.OrganizationID,
		upload.UploadedBy,
		upload.FileName,
		upload.OriginalFileName,
		upload.FileSize,
		upload.BatchID,
		upload.TotalRows,
		upload.SuccessfulRows,
		upload.FailedRows,
		upload.DuplicateRows,
		upload.Status,
		errorLog,
		upload.CreatedAt,
		upload.CompletedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save upload "+upload.UploadID, err)
	}
	return nil
}

// FinalizeUpload writes the terminal counters, status, error log and
// completion time. The ledger row itself is immutable apart from this one
// transition out of the processing state.
func (r *PgxUploadRepository) FinalizeUpload(ctx context.Context, upload domain.DataUpload) error {
	query := `
		UPDATE data_uploads
		SET total_rows = $1, successful_rows = $2, failed_rows = $3, duplicate_rows = $4,
			status = $5, error_log = $6, completed_at = $7
		WHERE upload_id = $8 AND organization_id = $9;
	`
	errorLog, err := json.Marshal(upload.ErrorLog)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode error log", err)
	}
	result, err := r.Pool.Exec(ctx, query,
		upload.TotalRows,
		upload.SuccessfulRows,
		upload.FailedRows,
		upload.DuplicateRows,
		upload.Status,
		errorLog,
		upload.CompletedAt,
		upload.UploadID,
		upload.OrganizationID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to finalize upload "+upload.UploadID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("upload not found")
	}
	return nil
}

func (r *PgxUploadRepository) FindUploadByID(ctx context.Context, organizationID, uploadID string) (*domain.DataUpload, error) {
	query := fullUploadSelectQuery + `WHERE u.organization_id = $1 AND u.upload_id = $2;`
	upload, err := scanUpload(r.Pool.QueryRow(ctx, query, organizationID, uploadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("upload not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find upload "+uploadID, err)
	}
	return upload, nil
}

func (r *PgxUploadRepository) ListUploads(ctx context.Context, organizationID string, limit, offset int) ([]domain.DataUpload, error) {
	query := fullUploadSelectQuery + `WHERE u.organization_id = $1 ORDER BY u.created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query uploads", err)
	}
	defer rows.Close()

	var uploads []domain.DataUpload
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan upload row", err)
		}
		uploads = append(uploads, *upload)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating upload rows", err)
	}
	return uploads, nil
}
