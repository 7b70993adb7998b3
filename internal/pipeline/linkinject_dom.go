package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// domExcluded are elements whose descendant text is never linked.
var domExcluded = map[atom.Atom]bool{
	atom.A:      true,
	atom.Title:  true,
	atom.Head:   true,
	atom.H1:     true,
	atom.Script: true,
	atom.Style:  true,
}

// DOMLinkInjection links target names by walking a parsed HTML tree and
// visiting only text nodes outside <a>, <title>, <head>, <h1>, <script> and
// <style>. Unlike LinkInjection it understands nesting, but the page is
// re-serialized by the HTML renderer, so attribute quoting, entity spelling
// and void tags may differ from the input.
type DOMLinkInjection struct {
	cfg linkConfig
}

// NewDOMLinkInjection creates a DOM-based injector. The lookahead option is
// accepted for interface parity and ignored.
func NewDOMLinkInjection(siteTitle string, opts ...LinkOption) *DOMLinkInjection {
	return &DOMLinkInjection{cfg: newLinkConfig(siteTitle, opts)}
}

// InjectLinks returns htmlContent with target names linked. If the content
// cannot be parsed or rendered, it is returned unchanged.
func (d *DOMLinkInjection) InjectLinks(htmlContent string, targets []LinkTarget) string {
	matchers := compileTargets(targets, d.cfg.siteTitle)
	if len(matchers) == 0 {
		return htmlContent
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return htmlContent
	}

	d.linkNode(doc, matchers)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return htmlContent
	}
	return out
}

// linkNode walks the tree, skipping excluded subtrees.
func (d *DOMLinkInjection) linkNode(n *html.Node, matchers []targetMatcher) {
	if n.Type == html.ElementNode && domExcluded[n.DataAtom] {
		return
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			d.linkText(c, matchers)
		} else {
			d.linkNode(c, matchers)
		}
		c = next
	}
}

// textPiece is a run of text, linked when url is set.
type textPiece struct {
	text string
	url  string
}

// linkText replaces a text node by text and anchor nodes. Each target only
// splits pieces that earlier targets left unlinked.
func (d *DOMLinkInjection) linkText(n *html.Node, matchers []targetMatcher) {
	pieces := []textPiece{{text: n.Data}}
	for _, m := range matchers {
		pieces = splitPieces(pieces, m)
	}
	if len(pieces) == 1 && pieces[0].url == "" {
		return
	}

	parent := n.Parent
	for _, p := range pieces {
		if p.text == "" {
			continue
		}
		parent.InsertBefore(d.pieceNode(p), n)
	}
	parent.RemoveChild(n)
}

func splitPieces(pieces []textPiece, m targetMatcher) []textPiece {
	out := make([]textPiece, 0, len(pieces))
	for _, p := range pieces {
		if p.url != "" {
			out = append(out, p)
			continue
		}
		prev := 0
		for _, loc := range m.pattern.FindAllStringIndex(p.text, -1) {
			out = append(out,
				textPiece{text: p.text[prev:loc[0]]},
				textPiece{text: p.text[loc[0]:loc[1]], url: m.url},
			)
			prev = loc[1]
		}
		out = append(out, textPiece{text: p.text[prev:]})
	}
	return out
}

func (d *DOMLinkInjection) pieceNode(p textPiece) *html.Node {
	if p.url == "" {
		return &html.Node{Type: html.TextNode, Data: p.text}
	}

	attrs := []html.Attribute{
		{Key: "href", Val: p.url},
		{Key: "target", Val: "_blank"},
		{Key: "rel", Val: "noopener noreferrer"},
	}
	if d.cfg.style != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: d.cfg.style})
	}

	a := &html.Node{Type: html.ElementNode, DataAtom: atom.A, Data: "a", Attr: attrs}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: p.text})
	return a
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string.
// Fragments render their children only, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
