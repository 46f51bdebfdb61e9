package services_test

import (
	"strings"
	"testing"

	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadFile(t *testing.T) {
	csvHead := []byte("supplier,category,amount,date\nAcme,Office,100.00,2024-01-15\n")

	tests := []struct {
		name     string
		fileName string
		fileSize int64
		head     []byte
		wantErr  string
	}{
		{
			name:     "valid csv",
			fileName: "spend.csv",
			fileSize: 1024,
			head:     csvHead,
		},
		{
			name:     "uppercase extension accepted",
			fileName: "SPEND.CSV",
			fileSize: 1024,
			head:     csvHead,
		},
		{
			name:     "wrong extension",
			fileName: "spend.xlsx",
			fileSize: 1024,
			head:     csvHead,
			wantErr:  ".csv extension",
		},
		{
			name:     "no extension",
			fileName: "spend",
			fileSize: 1024,
			head:     csvHead,
			wantErr:  ".csv extension",
		},
		{
			name:     "oversized file",
			fileName: "spend.csv",
			fileSize: services.MaxUploadBytes + 1,
			head:     csvHead,
			wantErr:  "50MB",
		},
		{
			name:     "binary content",
			fileName: "spend.csv",
			fileSize: 1024,
			head:     []byte("PK\x03\x04\x00\x00"),
			wantErr:  "binary",
		},
		{
			name:     "latin-1 content accepted",
			fileName: "spend.csv",
			fileSize: 1024,
			head:     []byte("supplier,category\nCaf\xe9 du Nord,Catering\n"),
		},
		{
			name:     "empty file passes pre-parse checks",
			fileName: "spend.csv",
			fileSize: 0,
			head:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.ValidateUploadFile(tt.fileName, tt.fileSize, tt.head)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUploadFile_ChecksExtensionBeforeSize(t *testing.T) {
	// Both checks would fail; the extension failure must win.
	err := services.ValidateUploadFile("spend.xlsx", services.MaxUploadBytes+1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".csv extension")
}

func TestValidateUploadFile_TruncatedUTF8RuneTolerated(t *testing.T) {
	// A multi-byte rune cut off at the probe boundary is not a reason to
	// treat the file as non-UTF-8.
	head := append([]byte(strings.Repeat("a", 100)), 0xE2, 0x82) // first two bytes of a three-byte rune
	err := services.ValidateUploadFile("spend.csv", 1024, head)
	assert.NoError(t, err)
}
