// Package dateutil resolves title page dates. A date value is either
// literal text or "auto", optionally followed by ":FORMAT" or ":PRESET".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is the APA title page date, e.g. "October 04, 2026".
const DefaultDateFormat = "MMMM DD, YYYY"

// autoKeyword selects the current date.
const autoKeyword = "auto"

// Longest tokens first so MMMM wins over MM and M.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names common formats usable as "auto:NAME".
var DatePresets = map[string]string{
	"apa":      DefaultDateFormat,
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D)
// to a Go time layout. Text in brackets is copied literally, as is any
// character that starts no token.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				pos := len(format) - len(rest)
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
			}
			layout.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		goFmt, n := matchToken(rest)
		if n == 0 {
			layout.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}
		layout.WriteString(goFmt)
		rest = rest[n:]
	}
	return layout.String(), nil
}

func matchToken(s string) (string, int) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.goFmt, len(t.token)
		}
	}
	return "", 0
}

// Format renders t with a token format or preset name.
func Format(t time.Time, format string) (string, error) {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// ResolveDate expands auto values against now and returns any other
// value unchanged:
//
//	auto          now in DefaultDateFormat
//	auto:FORMAT   now in a token format, e.g. auto:DD/MM/YYYY
//	auto:PRESET   now in a named preset, e.g. auto:iso
func ResolveDate(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoKeyword) {
		return value, nil
	}
	if lower == autoKeyword {
		return Format(now, DefaultDateFormat)
	}

	format, ok := strings.CutPrefix(value[len(autoKeyword):], ":")
	if !ok {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	return Format(now, format)
}
