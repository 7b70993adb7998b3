package pipeline

import (
	"regexp"
	"strings"
)

// tagPattern matches a single literal tag. It does not understand nesting,
// comments or attribute values containing '>', which is enough for the
// diary's own templates.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Segment is one piece of an HTML document split on tag boundaries.
type Segment struct {
	Text  string // raw bytes of the segment
	IsTag bool   // true for "<...>" pieces
	Index int    // position in the original sequence
}

// SplitSegments splits htmlContent into alternating text and tag segments.
// The sequence always starts and ends with a text segment; adjacent tags are
// separated by an empty text segment, so even indexes are text and odd
// indexes are tags. JoinSegments on the result returns htmlContent unchanged.
func SplitSegments(htmlContent string) []Segment {
	locs := tagPattern.FindAllStringIndex(htmlContent, -1)
	segments := make([]Segment, 0, 2*len(locs)+1)

	prev := 0
	for _, loc := range locs {
		segments = append(segments,
			Segment{Text: htmlContent[prev:loc[0]], Index: len(segments)},
			Segment{Text: htmlContent[loc[0]:loc[1]], IsTag: true, Index: len(segments) + 1},
		)
		prev = loc[1]
	}
	segments = append(segments, Segment{Text: htmlContent[prev:], Index: len(segments)})

	return segments
}

// JoinSegments concatenates segments in order.
func JoinSegments(segments []Segment) string {
	size := 0
	for _, s := range segments {
		size += len(s.Text)
	}

	var b strings.Builder
	b.Grow(size)
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// tagName returns the lower-cased element name of a tag segment and whether
// it is a closing tag. Comments, doctypes and malformed tags return "".
func tagName(tag string) (name string, closing bool) {
	s := strings.TrimPrefix(tag, "<")
	s = strings.TrimLeft(s, " \t\r\n")
	if strings.HasPrefix(s, "/") {
		closing = true
		s = strings.TrimLeft(s[1:], " \t\r\n")
	}

	end := 0
	for end < len(s) && isTagNameByte(s[end]) {
		end++
	}
	if end == 0 {
		return "", closing
	}
	return strings.ToLower(s[:end]), closing
}

func isTagNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
