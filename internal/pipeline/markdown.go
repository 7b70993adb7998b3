package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Block-level line patterns, matched against trimmed lines.
var (
	imageLine    = regexp.MustCompile(`^!\[(.*?)\]\((.*?)\)$`)
	headingLine  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	numberedItem = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
	bulletItem   = regexp.MustCompile(`^[-*]\s+(.+)$`)
)

// Inline patterns, applied in declaration order after escaping.
var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^\)]+)\)`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
)

// escapeHTML replaces the five HTML-significant characters in a single pass,
// so entities produced for one character are never escaped again.
var escapeHTML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
).Replace

// screenshotMarkers identify image paths that point at locale screenshot folders.
var screenshotMarkers = []string{"screenshots/ru/", "screenshots/en/"}

// ImageHandler renders a screenshot reference found on an image line.
// Returning an empty string drops the image from the output.
type ImageHandler func(fileName, altText string) string

// MarkdownRenderer defines the contract for rendering a markdown block to HTML.
type MarkdownRenderer interface {
	Render(markdown string, images ImageHandler) string
}

// listState tracks whether a <ul> element is currently open.
type listState int

const (
	noList listState = iota
	inList
)

// LineRenderer renders the diary's markdown subset line by line:
// headings, flat lists, paragraphs, screenshot images and inline markup.
// Numbered items are normalized into bullet items of a single <ul>.
// Malformed markup is never rejected; it falls through to a paragraph.
type LineRenderer struct{}

// NewLineRenderer creates a LineRenderer.
func NewLineRenderer() *LineRenderer {
	return &LineRenderer{}
}

// Render converts a markdown block into an HTML fragment.
// Images are only emitted when images is non-nil, the path lives under a
// locale screenshot folder, and the handler returns non-empty markup.
func (r *LineRenderer) Render(markdown string, images ImageHandler) string {
	if markdown == "" {
		return ""
	}

	var out strings.Builder
	state := noList
	for _, line := range strings.Split(markdown, "\n") {
		state = renderLine(&out, state, strings.TrimSpace(line), images)
	}

	// An open list is always closed, whatever the last line was.
	closeList(&out, state)
	return out.String()
}

// renderLine classifies one trimmed line, writes its markup and returns the
// list state for the next line.
func renderLine(out *strings.Builder, state listState, line string, images ImageHandler) listState {
	if line == "" {
		return closeList(out, state)
	}

	if m := imageLine.FindStringSubmatch(line); m != nil {
		state = closeList(out, state)
		out.WriteString(renderImage(m[2], m[1], images))
		return state
	}

	if m := headingLine.FindStringSubmatch(line); m != nil {
		state = closeList(out, state)
		level := strconv.Itoa(len(m[1]))
		out.WriteString("<h" + level + ">" + ProcessInline(m[2]) + "</h" + level + ">\n")
		return state
	}

	if m := numberedItem.FindStringSubmatch(line); m != nil {
		return writeListItem(out, state, m[2])
	}

	if m := bulletItem.FindStringSubmatch(line); m != nil {
		return writeListItem(out, state, m[1])
	}

	state = closeList(out, state)
	out.WriteString("<p>" + ProcessInline(line) + "</p>\n")
	return state
}

// writeListItem opens the list when needed and appends one item.
func writeListItem(out *strings.Builder, state listState, text string) listState {
	if state != inList {
		out.WriteString("<ul>\n")
	}
	out.WriteString("<li>" + ProcessInline(text) + "</li>\n")
	return inList
}

// closeList emits the closing tag of an open list.
func closeList(out *strings.Builder, state listState) listState {
	if state == inList {
		out.WriteString("</ul>\n")
	}
	return noList
}

// renderImage returns the handler's markup for screenshot paths, or "".
func renderImage(path, alt string, images ImageHandler) string {
	if images == nil || !isScreenshotPath(path) {
		return ""
	}
	fileName := path[strings.LastIndex(path, "/")+1:]
	if fileName == "" {
		return ""
	}
	return images(fileName, alt)
}

// isScreenshotPath reports whether path points into a locale screenshot folder.
func isScreenshotPath(path string) bool {
	for _, marker := range screenshotMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// ProcessInline escapes text and converts bold, italic, link and code markup.
// Order matters: escaping runs first so generated tags stay intact, and bold
// runs before italic so double asterisks are consumed before single ones.
func ProcessInline(text string) string {
	if text == "" {
		return ""
	}
	text = escapeHTML(text)
	text = boldPattern.ReplaceAllString(text, "<strong>${1}</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>${1}</em>")
	text = linkPattern.ReplaceAllString(text, `<a href="${2}" target="_blank" rel="noopener noreferrer">${1}</a>`)
	text = codePattern.ReplaceAllString(text, "<code>${1}</code>")
	return text
}
