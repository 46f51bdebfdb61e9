package csvsafe_test

import (
	"strings"
	"testing"

	"github.com/spendscope/spendscope-backend/internal/csvsafe"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeCellValue_FormulaTriggers(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"plus", "+1234", "'+1234"},
		{"minus", "-5.00", "'-5.00"},
		{"at sign", "@cmd", "'@cmd"},
		{"hyperlink payload", `=HYPERLINK("http://evil.example")`, `'=HYPERLINK("http://evil.example")`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := csvsafe.SanitizeCellValue(tc.input)
			assert.Equal(t, tc.expected, got)
			// The quote neutralizes; the original content must survive intact.
			assert.Equal(t, tc.input, strings.TrimPrefix(got, "'"))
		})
	}
}

func TestSanitizeCellValue_ControlCharacterTriggers(t *testing.T) {
	// Leading tab/CR/LF are trimmed away before the trigger check, so trimmed
	// content decides whether a quote is needed.
	assert.Equal(t, "hello", csvsafe.SanitizeCellValue("\thello"))
	assert.Equal(t, "'=cmd", csvsafe.SanitizeCellValue("\r\n=cmd"))
}

func TestSanitizeCellValue_SafeValues(t *testing.T) {
	assert.Equal(t, "Acme Corp", csvsafe.SanitizeCellValue("  Acme Corp  "))
	assert.Equal(t, "1234.56", csvsafe.SanitizeCellValue("1234.56"))
	assert.Equal(t, "", csvsafe.SanitizeCellValue("   "))
}

func TestSanitizeFileName_PathTraversal(t *testing.T) {
	testCases := []string{
		"../../etc/passwd",
		"..\\..\\windows\\system32\\config",
		"uploads/../../secret.csv",
		"a/..../b/....//spend.csv",
	}

	for _, input := range testCases {
		got := csvsafe.SanitizeFileName(input)
		assert.NotContains(t, got, "..", "input %q", input)
		assert.NotContains(t, got, "/", "input %q", input)
		assert.NotContains(t, got, "\\", "input %q", input)
		assert.NotEmpty(t, got)
	}
}

func TestSanitizeFileName_StripsUnsafeCharacters(t *testing.T) {
	assert.Equal(t, "spend data 2024.csv", csvsafe.SanitizeFileName("spend data 2024.csv"))
	assert.Equal(t, "report.csv", csvsafe.SanitizeFileName("re<po>rt?.csv"))
	assert.Equal(t, "data.csv", csvsafe.SanitizeFileName("data\x00.csv"))
}

func TestSanitizeFileName_EmptyAndDotLeading(t *testing.T) {
	assert.Equal(t, "unnamed_file", csvsafe.SanitizeFileName(""))
	assert.Equal(t, "file_.htaccess", csvsafe.SanitizeFileName(".htaccess"))
	assert.Equal(t, "file_", csvsafe.SanitizeFileName("///"))
	assert.False(t, strings.HasPrefix(csvsafe.SanitizeFileName(".hidden.csv"), "."))
}

func TestSanitizeFileName_TruncatesPreservingExtension(t *testing.T) {
	long := strings.Repeat("a", 250) + ".csv"
	got := csvsafe.SanitizeFileName(long)
	assert.LessOrEqual(t, len(got), 200)
	assert.True(t, strings.HasSuffix(got, ".csv"))

	noExt := strings.Repeat("b", 250)
	got = csvsafe.SanitizeFileName(noExt)
	assert.LessOrEqual(t, len(got), 200)
}
