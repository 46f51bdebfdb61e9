package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"golang.org/x/text/encoding/charmap"
)

const (
	// MaxUploadBytes is the largest spreadsheet upload accepted (50 MiB).
	MaxUploadBytes = 50 * 1024 * 1024

	// MaxRowsPerUpload caps the data rows processed in a single upload.
	MaxRowsPerUpload = 50000

	// fileProbeSize is how many leading bytes are inspected for binary
	// content and encoding before any parsing happens.
	fileProbeSize = 1024
)

// ValidateUploadFile checks an uploaded file before any parsing: extension,
// size, binary content and encoding, in that order, short-circuiting on the
// first failure. head is the file's first bytes (up to fileProbeSize).
func ValidateUploadFile(fileName string, fileSize int64, head []byte) error {
	if strings.ToLower(filepath.Ext(fileName)) != ".csv" {
		return apperrors.NewValidationFailedError("file must have a .csv extension")
	}

	if fileSize > MaxUploadBytes {
		return apperrors.NewValidationFailedError("file size must be less than 50MB")
	}

	if len(head) > fileProbeSize {
		head = head[:fileProbeSize]
	}

	if bytes.IndexByte(head, 0x00) >= 0 {
		return apperrors.NewValidationFailedError("file appears to be binary, not CSV")
	}

	if !validUTF8Prefix(head) {
		// Fall back to the legacy single-byte encoding before rejecting.
		if _, err := charmap.ISO8859_1.NewDecoder().Bytes(head); err != nil {
			return apperrors.NewValidationFailedError("file encoding not recognized")
		}
	}

	return nil
}

// errCouldNotValidate is surfaced when an I/O failure prevents the
// pre-parse checks from running at all. Deliberately generic.
var errCouldNotValidate = apperrors.NewValidationFailedError("could not validate file format")

// validUTF8Prefix reports whether b is valid UTF-8, tolerating a multi-byte
// rune cut off at the end of the probe window.
func validUTF8Prefix(b []byte) bool {
	for trim := 0; trim <= utf8.UTFMax-1 && trim < len(b); trim++ {
		if utf8.Valid(b[:len(b)-trim]) {
			return true
		}
	}
	return len(b) == 0
}

// missingColumnsError names the required columns absent from a header row.
func missingColumnsError(missing []string) error {
	return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
}
