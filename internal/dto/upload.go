package dto

import (
	"time"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// --- Upload DTOs ---

// UploadRowErrorResponse is one redacted entry in an upload's error log.
type UploadRowErrorResponse struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// UploadResponse defines data returned for one upload ledger record.
type UploadResponse struct {
	UploadID         string                   `json:"uploadID"`
	OrganizationID   string                   `json:"organizationID"`
	UploadedBy       string                   `json:"uploadedBy"`
	FileName         string                   `json:"fileName"`
	OriginalFileName string                   `json:"originalFileName"`
	FileSize         int64                    `json:"fileSize"`
	BatchID          string                   `json:"batchID"`
	TotalRows        int                      `json:"totalRows"`
	SuccessfulRows   int                      `json:"successfulRows"`
	FailedRows       int                      `json:"failedRows"`
	DuplicateRows    int                      `json:"duplicateRows"`
	Status           string                   `json:"status"`
	ErrorLog         []UploadRowErrorResponse `json:"errorLog"`
	CreatedAt        time.Time                `json:"createdAt"`
	CompletedAt      *time.Time               `json:"completedAt,omitempty"`
}

// ToUploadResponse converts domain.DataUpload to DTO.
func ToUploadResponse(u *domain.DataUpload) UploadResponse {
	errorLog := make([]UploadRowErrorResponse, len(u.ErrorLog))
	for i, e := range u.ErrorLog {
		errorLog[i] = UploadRowErrorResponse{Row: e.Row, Error: e.Error}
	}
	return UploadResponse{
		UploadID:         u.UploadID,
		OrganizationID:   u.OrganizationID,
		UploadedBy:       u.UploadedBy,
		FileName:         u.FileName,
		OriginalFileName: u.OriginalFileName,
		FileSize:         u.FileSize,
		BatchID:          u.BatchID,
		TotalRows:        u.TotalRows,
		SuccessfulRows:   u.SuccessfulRows,
		FailedRows:       u.FailedRows,
		DuplicateRows:    u.DuplicateRows,
		Status:           string(u.Status),
		ErrorLog:         errorLog,
		CreatedAt:        u.CreatedAt,
		CompletedAt:      u.CompletedAt,
	}
}

// ListUploadsResponse wraps a list of uploads.
type ListUploadsResponse struct {
	Uploads []UploadResponse `json:"uploads"`
}

// ToListUploadsResponse converts a slice of domain.DataUpload to DTO.
func ToListUploadsResponse(us []domain.DataUpload) ListUploadsResponse {
	list := make([]UploadResponse, len(us))
	for i, u := range us {
		list[i] = ToUploadResponse(&u)
	}
	return ListUploadsResponse{Uploads: list}
}
