package services

import (
	"strings"
	"testing"
	"time"

	"github.com/spendscope/spendscope-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	valid := []string{
		"2024-01-15",
		"2024/01/15",
		"01/15/2024",
		"01-15-2024",
		"15-Jan-2024",
		"Jan 15, 2024",
		"January 15, 2024",
		"15 Jan 2024",
		"15 January 2024",
		"2024-01-15T10:30:00Z",
		"2024-01-15 10:30:00",
		"  2024-01-15  ",
	}
	for _, raw := range valid {
		parsed, err := parseDate(raw)
		require.NoError(t, err, "expected %q to parse", raw)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.January, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
	}

	invalid := []string{"", "not-a-date", "15/01/2024 or so", "2024-13-45", "yesterday"}
	for _, raw := range invalid {
		_, err := parseDate(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
		// The raw value must never leak into the error message.
		assert.Equal(t, "invalid date format", err.Error())
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr string
	}{
		{raw: "1250.50", want: "1250.5"},
		{raw: "$1,250.50", want: "1250.5"},
		{raw: "  3,400  ", want: "3400"},
		{raw: "0", want: "0"},
		{raw: "999999999999.99", want: "999999999999.99"},
		{raw: "", wantErr: "invalid amount value"},
		{raw: "abc", wantErr: "invalid amount value"},
		{raw: "-50.00", wantErr: "amount cannot be negative"},
		{raw: "1000000000000.00", wantErr: "amount exceeds maximum allowed value"},
	}

	for _, tt := range tests {
		amount, err := parseAmount(tt.raw)
		if tt.wantErr != "" {
			require.Error(t, err, "raw %q", tt.raw)
			assert.Equal(t, tt.wantErr, err.Error())
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, amount.String())
	}
}

func TestCollectOptionalFields(t *testing.T) {
	row := map[string]string{
		"description":    "  quarterly restock ",
		"subcategory":    "Paper",
		"location":       "Berlin",
		"fiscal_year":    "2024",
		"spend_band":     "1k-10k",
		"payment_method": "card",
		"invoice_number": "INV-42",
	}
	var txn domain.SpendTransaction
	require.NoError(t, collectOptionalFields(row, &txn))
	assert.Equal(t, "quarterly restock", txn.Description)
	assert.Equal(t, "Paper", txn.Subcategory)
	assert.Equal(t, "Berlin", txn.Location)
	require.NotNil(t, txn.FiscalYear)
	assert.Equal(t, 2024, *txn.FiscalYear)
	assert.Equal(t, "1k-10k", txn.SpendBand)
	assert.Equal(t, "card", txn.PaymentMethod)
	assert.Equal(t, "INV-42", txn.InvoiceNumber)
}

func TestCollectOptionalFields_InvalidFiscalYear(t *testing.T) {
	var txn domain.SpendTransaction
	err := collectOptionalFields(map[string]string{"fiscal_year": "FY24"}, &txn)
	require.Error(t, err)
	assert.Equal(t, "invalid fiscal year value", err.Error())
}

func TestCollectOptionalFields_BlankValuesSkipped(t *testing.T) {
	var txn domain.SpendTransaction
	err := collectOptionalFields(map[string]string{"description": "   ", "fiscal_year": ""}, &txn)
	require.NoError(t, err)
	assert.Empty(t, txn.Description)
	assert.Nil(t, txn.FiscalYear)
}

func TestRedactErrorMessage(t *testing.T) {
	passthrough := []string{
		"invalid date format",
		"supplier name is required",
		"amount cannot be negative",
	}
	for _, msg := range passthrough {
		assert.Equal(t, msg, redactErrorMessage(msg))
	}

	flagged := []string{
		"ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)",
		"pgx: connection refused",
		"failed to scan row: sql: no rows",
		"panic: runtime error: index out of range",
		"error at /app/internal/core/services/row_normalizer.go:42",
	}
	for _, msg := range flagged {
		assert.Equal(t, redactedMessage, redactErrorMessage(msg), "message %q should be redacted", msg)
	}
}

func TestRedactErrorMessage_TruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := redactErrorMessage(long)
	assert.Len(t, got, maxErrorMessageLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestRedactErrorLog(t *testing.T) {
	var entries []domain.UploadRowError
	for i := 0; i < domain.MaxErrorLogEntries+50; i++ {
		entries = append(entries, domain.UploadRowError{Row: i + 2, Error: "invalid date format"})
	}
	entries[0].Error = ""
	entries[1].Error = "something broke (SQLSTATE 23505)"

	redacted := redactErrorLog(entries)

	assert.Len(t, redacted, domain.MaxErrorLogEntries)
	assert.Equal(t, "Unknown error", redacted[0].Error)
	assert.Equal(t, redactedMessage, redacted[1].Error)
	assert.Equal(t, "invalid date format", redacted[2].Error)
	assert.Equal(t, 2, redacted[0].Row)
}
