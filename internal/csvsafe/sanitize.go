// Package csvsafe neutralizes spreadsheet formula injection payloads and
// filesystem-unsafe names in untrusted spreadsheet data. It is applied on
// ingress (before any value is stored) and must be applied again on egress by
// anything serializing stored values back into a spreadsheet format.
package csvsafe

import (
	"regexp"
	"strings"
)

// formulaTriggers are the leading characters a spreadsheet application may
// interpret as the start of a formula.
const formulaTriggers = "=+-@\t\r\n"

var (
	traversalPattern  = regexp.MustCompile(`\.\.+`)
	unsafeNamePattern = regexp.MustCompile(`[^\w\s\-.]`)
)

// SanitizeCellValue trims a cell value and, when it begins with a formula
// trigger character, prefixes it with a single quote so spreadsheet
// applications render it as text instead of executing it.
func SanitizeCellValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if strings.ContainsRune(formulaTriggers, rune(value[0])) {
		return "'" + value
	}
	return value
}

// SanitizeFileName strips directory components, path traversal sequences and
// unsafe characters from an uploaded file name. The result is never empty,
// never starts with a dot, and is at most 200 characters with a trailing
// extension preserved when one exists.
func SanitizeFileName(name string) string {
	if name == "" {
		return "unnamed_file"
	}

	// Keep only the final path segment, splitting on both separator styles.
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = traversalPattern.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "\x00", "")
	name = unsafeNamePattern.ReplaceAllString(name, "")

	if name == "" || strings.HasPrefix(name, ".") {
		name = "file_" + name
	}

	if len(name) > 200 {
		base, ext := name, ""
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			base, ext = name[:idx], name[idx+1:]
		}
		if len(base) > 195 {
			base = base[:195]
		}
		name = base
		if ext != "" {
			name = base + "." + ext
		}
	}

	return name
}
