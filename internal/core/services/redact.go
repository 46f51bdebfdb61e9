package services

import (
	"strings"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
)

// redactedMessage replaces any error text that matches the sensitive-marker
// denylist before it reaches the persisted error log or an API caller.
const redactedMessage = "An error occurred while processing this row."

// maxErrorMessageLength truncates overly long error messages.
const maxErrorMessageLength = 200

// sensitiveMarkers flag internal structure leaking into an error message:
// storage engine names, query fragments, file paths and stack-trace markers.
// Matched case-insensitively as substrings.
var sensitiveMarkers = []string{
	"sqlstate",
	"sql",
	"pgx",
	"postgres",
	"detail:",
	"constraint",
	"goroutine",
	"panic",
	"runtime error",
	".go:",
	"/app/",
	"/home/",
}

// redactErrorMessage strips potentially sensitive information from an error
// message, replacing flagged messages wholesale with a generic phrase.
func redactErrorMessage(message string) string {
	lower := strings.ToLower(message)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lower, marker) {
			return redactedMessage
		}
	}

	if len(message) > maxErrorMessageLength {
		return message[:maxErrorMessageLength] + "..."
	}

	return message
}

// redactErrorLog caps the error buffer at MaxErrorLogEntries and redacts
// every entry's message. Row positions are preserved; raw row contents were
// never recorded in the first place.
func redactErrorLog(rowErrors []domain.UploadRowError) []domain.UploadRowError {
	if len(rowErrors) > domain.MaxErrorLogEntries {
		rowErrors = rowErrors[:domain.MaxErrorLogEntries]
	}

	redacted := make([]domain.UploadRowError, len(rowErrors))
	for i, e := range rowErrors {
		msg := e.Error
		if msg == "" {
			msg = "Unknown error"
		}
		redacted[i] = domain.UploadRowError{
			Row:   e.Row,
			Error: redactErrorMessage(msg),
		}
	}
	return redacted
}
