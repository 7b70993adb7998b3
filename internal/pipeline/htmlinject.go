package pipeline

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style block.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Placeholders maps placeholder keys (without braces) to their values.
type Placeholders map[string]string

// FillPlaceholders substitutes every {{KEY}} in page with its value in one
// pass. Values are inserted literally: they are not rescanned, so a value
// containing another {{KEY}} is left as is. Unknown placeholders are kept.
func FillPlaceholders(page string, values Placeholders) string {
	if len(values) == 0 {
		return page
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	oldnew := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		oldnew = append(oldnew, "{{"+k+"}}", values[k])
	}
	return strings.NewReplacer(oldnew...).Replace(page)
}

// htmlLangPattern matches the lang attribute of the root element.
var htmlLangPattern = regexp.MustCompile(`(?i)<html(\s[^>]*?)?\slang="[^"]*"`)

// SetDocumentLang rewrites the lang attribute of the <html> element.
// Pages without one are returned unchanged.
func SetDocumentLang(page, lang string) string {
	loc := htmlLangPattern.FindStringIndex(page)
	if loc == nil {
		return page
	}
	match := page[loc[0]:loc[1]]
	attr := strings.LastIndex(strings.ToLower(match), `lang="`)
	return page[:loc[0]] + match[:attr] + `lang="` + lang + `"` + page[loc[1]:]
}

// footerPattern matches every <footer> element with its content.
var footerPattern = regexp.MustCompile(`(?is)<footer>.*?</footer>`)

// ReplaceFooter replaces every <footer>...</footer> element with footer.
func ReplaceFooter(page, footer string) string {
	return footerPattern.ReplaceAllLiteralString(page, footer)
}

// MetaLabels holds the localized strings a template bakes into its
// <title> and keywords meta tag.
type MetaLabels struct {
	// TitleSuffix follows " - " inside <title>.
	TitleSuffix string
	// Keywords is appended after the page's own keywords.
	Keywords string
}

// TranslateMeta rewrites the title suffix and trailing keywords written
// in from into their to counterparts. Empty from labels are skipped.
func TranslateMeta(page string, from, to MetaLabels) string {
	if from.TitleSuffix != "" && from.TitleSuffix != to.TitleSuffix {
		title := regexp.MustCompile(`<title>([^<]+) - ` + regexp.QuoteMeta(from.TitleSuffix) + `</title>`)
		page = title.ReplaceAllString(page, "<title>${1} - "+escapeReplacement(to.TitleSuffix)+"</title>")
	}
	if from.Keywords != "" && from.Keywords != to.Keywords {
		keywords := regexp.MustCompile(`content="([^"]*), ` + regexp.QuoteMeta(from.Keywords))
		page = keywords.ReplaceAllString(page, `content="${1}, `+escapeReplacement(to.Keywords))
	}
	return page
}

// escapeReplacement protects literal dollars in a regexp replacement.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
