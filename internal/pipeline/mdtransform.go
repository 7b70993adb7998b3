package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// byteOrderMark is stripped from the start of authored files.
const byteOrderMark = "\uFEFF"

// NormalizeMarkdown prepares authored markdown for line-oriented processing:
// it removes a leading byte order mark, converts \r\n and \r to \n, and
// trims surrounding whitespace.
func NormalizeMarkdown(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return strings.TrimSpace(content)
}
