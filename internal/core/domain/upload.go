package domain

import "time"

// UploadStatus is the lifecycle state of one ingestion run.
type UploadStatus string

const (
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
	UploadStatusPartial    UploadStatus = "partial"
)

// MaxErrorLogEntries bounds the redacted error log persisted on a DataUpload.
const MaxErrorLogEntries = 100

// UploadRowError is one redacted entry in an upload's error log. It carries
// the 1-based row position and a sanitized message, never raw row contents.
type UploadRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// DataUpload is the batch ledger: one record per ingestion run, created at
// status processing before any row is read and finalized exactly once.
// Invariant: successful + failed + duplicate <= total; status is completed
// iff failed == 0, failed iff successful == 0 and failed > 0, else partial.
type DataUpload struct {
	UploadID         string           `json:"uploadID"` // Primary Key (UUID)
	OrganizationID   string           `json:"organizationID"`
	UploadedBy       string           `json:"uploadedBy"`
	FileName         string           `json:"fileName"`         // Sanitized
	OriginalFileName string           `json:"originalFileName"` // Preserved for audit
	FileSize         int64            `json:"fileSize"`
	BatchID          string           `json:"batchID"` // Unique per run; tags created transactions
	TotalRows        int              `json:"totalRows"`
	SuccessfulRows   int              `json:"successfulRows"`
	FailedRows       int              `json:"failedRows"`
	DuplicateRows    int              `json:"duplicateRows"`
	Status           UploadStatus     `json:"status"`
	ErrorLog         []UploadRowError `json:"errorLog"`
	CreatedAt        time.Time        `json:"createdAt"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
}
