package pipeline

import (
	"html"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultMetaLength is the maximum length, in runes, of a meta description.
const DefaultMetaLength = 160

// TextExtractor defines the contract for reducing markdown to plain text.
type TextExtractor interface {
	PlainText(markdown string, limit int) string
}

// GoldmarkTextExtractor extracts visible text from markdown using goldmark's AST.
type GoldmarkTextExtractor struct {
	md goldmark.Markdown
}

// NewGoldmarkTextExtractor creates a GoldmarkTextExtractor with GFM extensions,
// so strikethrough and autolinks reduce to their text.
func NewGoldmarkTextExtractor() *GoldmarkTextExtractor {
	return &GoldmarkTextExtractor{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// PlainText returns the visible text of markdown on a single line. Heading
// markers, emphasis and link destinations are dropped, images and raw HTML
// are skipped, entities are decoded and whitespace is collapsed. The result
// is cut to limit runes (no cut when limit <= 0).
func (e *GoldmarkTextExtractor) PlainText(markdown string, limit int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	source := []byte(markdown)
	doc := e.md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Image, *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(source))
			}
		default:
			if !entering && n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return truncateRunes(collapseSpaces(html.UnescapeString(b.String())), limit)
}

// collapseSpaces trims s and folds whitespace runs into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// truncateRunes cuts s to at most limit runes.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
		count++
	}
	return s
}
