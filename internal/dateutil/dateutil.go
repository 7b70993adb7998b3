// Package dateutil parses stage dates and formats generation dates.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// ErrUnknownDate indicates a stage date in none of the accepted layouts.
var ErrUnknownDate = errors.New("unrecognized date")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
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

// DatePresets provides named shortcuts for common date formats.
// "ru" and "us" match the short numeric dates browsers print for ru-RU and en-US.
var DatePresets = map[string]string{
	"iso":  "YYYY-MM-DD",
	"ru":   "DD.MM.YYYY",
	"us":   "M/D/YYYY",
	"long": "MMMM D, YYYY",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10) // Pre-allocate with some buffer

	i := 0
	for i < len(format) {
		// Handle bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			// Copy content inside brackets literally
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2 // Skip past closing bracket
			continue
		}

		matched := false

		// Try to match tokens (longest first due to slice order)
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			// Preserve literal character
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
// - "auto" → date in YYYY-MM-DD format
// - "auto:FORMAT" → date in custom format (e.g., "auto:DD.MM.YYYY")
// - "auto:preset" → date using named preset (iso, ru, us, long)
// - any other value → returned unchanged (passthrough)
//
// Month names are English. The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	return ResolveLocalDate(value, "en", t)
}

// ResolveLocalDate is ResolveDate with month names in lang.
// Russian uses genitive month names ("7 марта 2025"); other languages use English.
func ResolveLocalDate(value, lang string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	// Not an auto value - passthrough
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	formatPart := DefaultDateFormat
	if lower != "auto" {
		if !strings.HasPrefix(lower, "auto:") {
			return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		// Preserve original case for format tokens
		formatPart = value[len("auto:"):]
		if formatPart == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(formatPart)]; ok {
			formatPart = preset
		}
	}

	goFmt, err := ParseDateFormat(formatPart)
	if err != nil {
		return "", err
	}
	return t.Format(localizeLayout(goFmt, lang, t.Month())), nil
}

// ruMonths holds Russian month names in the genitive case, as used after a day number.
var ruMonths = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// ruShortMonths holds abbreviated genitive month names.
var ruShortMonths = [12]string{
	"янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

// localizeLayout replaces month name elements of a Go layout with the name
// of m in lang. Cyrillic contains no layout elements, so the result stays
// a valid layout.
func localizeLayout(layout, lang string, m time.Month) string {
	if !strings.EqualFold(lang, "ru") || m < time.January || m > time.December {
		return layout
	}
	layout = strings.ReplaceAll(layout, "January", ruMonths[m-1])
	return strings.ReplaceAll(layout, "Jan", ruShortMonths[m-1])
}

// stageDateLayouts are the layouts accepted for stage dates, tried in order.
var stageDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseStageDate parses a stage date as written in a stage index.
// Russian month names ("7 марта 2025") are accepted.
// Dates without a zone are read as UTC.
func ParseStageDate(value string) (time.Time, error) {
	value = englishMonths(strings.TrimSpace(value))
	for _, layout := range stageDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDate, value)
}

// englishMonths rewrites Russian genitive month names in value to English.
func englishMonths(value string) string {
	lower := strings.ToLower(value)
	for i, name := range ruMonths {
		if j := strings.Index(lower, name); j >= 0 {
			return value[:j] + time.Month(i+1).String() + value[j+len(name):]
		}
	}
	return value
}
