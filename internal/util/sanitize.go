package util

import (
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"go-file-manager/pkg/apierror"
)

var invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SanitizeName cleans a user-supplied entry name: control characters are
// stripped, filesystem-hostile characters replaced with underscores, reserved
// device names and over-long names rejected.
func SanitizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apierror.New("INVALID_NAME", "name cannot be empty", "", http.StatusBadRequest)
	}

	if strings.Contains(trimmed, "\x00") {
		return "", apierror.New("INVALID_NAME", "name contains null bytes", trimmed, http.StatusBadRequest)
	}

	builder := strings.Builder{}
	builder.Grow(len(trimmed))
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			continue
		}
		builder.WriteRune(r)
	}

	cleaned := strings.TrimSpace(invalidNameChars.ReplaceAllString(builder.String(), "_"))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "", apierror.New("INVALID_NAME", "name is invalid after sanitization", trimmed, http.StatusBadRequest)
	}

	// Truncate by runes, not bytes, so multi-byte characters are not split.
	runes := []rune(cleaned)
	if len(runes) > 255 {
		cleaned = string(runes[:255])
	}

	stem := cleaned
	if idx := strings.Index(cleaned, "."); idx > 0 {
		stem = cleaned[:idx]
	}
	if _, reserved := windowsReservedNames[strings.ToUpper(stem)]; reserved {
		return "", apierror.New("INVALID_NAME", "name is reserved", cleaned, http.StatusBadRequest)
	}

	return cleaned, nil
}
