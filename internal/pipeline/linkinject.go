package pipeline

import (
	"regexp"
	"strings"
)

// DefaultAnchorLookahead is how far (in segments) the injector looks for a
// closing </a> after an opening anchor before treating the following text as
// an anchor label.
const DefaultAnchorLookahead = 10

// DefaultLinkStyle is the inline style of injected project links.
const DefaultLinkStyle = "color: #3498db; text-decoration: none; border-bottom: 1px solid #3498db;"

// excludedElements are elements whose directly following text is never rewritten.
var excludedElements = map[string]bool{
	"title":  true,
	"meta":   true,
	"head":   true,
	"h1":     true,
	"script": true,
	"style":  true,
}

// LinkTarget is a name to hyperlink and its destination.
type LinkTarget struct {
	Name string
	URL  string
}

// LinkInjector defines the contract for hyperlinking known names in a page.
type LinkInjector interface {
	InjectLinks(htmlContent string, targets []LinkTarget) string
}

// linkConfig holds settings shared by the link injectors.
type linkConfig struct {
	siteTitle string
	lookahead int
	style     string
}

// LinkOption configures a link injector.
type LinkOption func(*linkConfig)

// WithAnchorLookahead sets the anchor-label lookahead window.
// Values below 1 keep the default.
func WithAnchorLookahead(n int) LinkOption {
	return func(c *linkConfig) {
		if n > 0 {
			c.lookahead = n
		}
	}
}

// WithLinkStyle sets the inline style of injected anchors. Empty omits the attribute.
func WithLinkStyle(style string) LinkOption {
	return func(c *linkConfig) {
		c.style = style
	}
}

func newLinkConfig(siteTitle string, opts []LinkOption) linkConfig {
	cfg := linkConfig{
		siteTitle: siteTitle,
		lookahead: DefaultAnchorLookahead,
		style:     DefaultLinkStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// LinkInjection rewrites plain-text occurrences of target names into anchors
// by scanning the page as a flat sequence of tag and text segments.
// Text inside tags, anchor labels and the text following <title>, <meta>,
// <head>, <h1>, <script> and <style> is left untouched.
//
// Injection is not idempotent: call it once per finished page.
type LinkInjection struct {
	cfg linkConfig
}

// NewLinkInjection creates a segment-based injector. Targets whose name
// contains, or is contained in, siteTitle are ignored so the diary never
// links its own brand name.
func NewLinkInjection(siteTitle string, opts ...LinkOption) *LinkInjection {
	return &LinkInjection{cfg: newLinkConfig(siteTitle, opts)}
}

// InjectLinks returns htmlContent with standalone, case-insensitive matches
// of each target name wrapped in an anchor to the target URL.
func (l *LinkInjection) InjectLinks(htmlContent string, targets []LinkTarget) string {
	matchers := compileTargets(targets, l.cfg.siteTitle)
	if len(matchers) == 0 {
		return htmlContent
	}

	segments := SplitSegments(htmlContent)
	for i := range segments {
		if segments[i].IsTag || l.skipText(segments, i) {
			continue
		}
		text := segments[i].Text
		for _, m := range matchers {
			text = m.replace(text, l.cfg.style)
		}
		segments[i].Text = text
	}

	return JoinSegments(segments)
}

// skipText reports whether the text segment at i must not be rewritten.
func (l *LinkInjection) skipText(segments []Segment, i int) bool {
	if i == 0 || !segments[i-1].IsTag {
		return false
	}

	prev := strings.ToLower(segments[i-1].Text)
	if strings.Contains(prev, "<a ") && !strings.Contains(prev, "</a>") {
		for j := i + 1; j < len(segments) && j < i+l.cfg.lookahead; j++ {
			if strings.Contains(segments[j].Text, "</a>") {
				return true
			}
		}
		return false
	}

	name, closing := tagName(prev)
	return !closing && excludedElements[name]
}

// targetMatcher is a compiled target name.
type targetMatcher struct {
	pattern *regexp.Regexp
	url     string
}

// compileTargets builds word-boundary matchers for usable targets.
// Empty and duplicate names are dropped, as are names overlapping siteTitle.
func compileTargets(targets []LinkTarget, siteTitle string) []targetMatcher {
	seen := make(map[string]bool, len(targets))
	matchers := make([]targetMatcher, 0, len(targets))

	for _, t := range targets {
		if t.Name == "" || t.URL == "" || seen[t.Name] || overlapsSiteTitle(t.Name, siteTitle) {
			continue
		}
		seen[t.Name] = true
		matchers = append(matchers, targetMatcher{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.Name) + `\b`),
			url:     t.URL,
		})
	}

	return matchers
}

// overlapsSiteTitle is the mutual-containment check against the site title.
// An empty title excludes nothing.
func overlapsSiteTitle(name, siteTitle string) bool {
	if siteTitle == "" {
		return false
	}
	n := strings.ToLower(name)
	t := strings.ToLower(siteTitle)
	return strings.Contains(t, n) || strings.Contains(n, t)
}

// replace wraps every match in text that is not followed by a closing </a>
// before the next '<'.
func (m targetMatcher) replace(text, style string) string {
	locs := m.pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		if closesAnchor(text[loc[1]:]) {
			continue
		}
		b.WriteString(text[prev:loc[0]])
		b.WriteString(anchorHTML(m.url, text[loc[0]:loc[1]], style))
		prev = loc[1]
	}
	b.WriteString(text[prev:])

	return b.String()
}

// closesAnchor reports whether the first '<' in rest starts a </a> tag.
func closesAnchor(rest string) bool {
	i := strings.IndexByte(rest, '<')
	return i >= 0 && len(rest)-i >= 4 && strings.EqualFold(rest[i:i+4], "</a>")
}

// anchorHTML builds the markup of an injected link.
func anchorHTML(url, label, style string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(strings.ReplaceAll(url, `"`, "&quot;"))
	b.WriteString(`" target="_blank" rel="noopener noreferrer"`)
	if style != "" {
		b.WriteString(` style="`)
		b.WriteString(style)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(label)
	b.WriteString("</a>")
	return b.String()
}
