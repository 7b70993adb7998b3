package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// link is the markup injected for label pointing at url, without a style.
func link(url, label string) string {
	return `<a href="` + url + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

func TestLinkInjection_InjectLinks(t *testing.T) {
	t.Parallel()

	foo := []LinkTarget{{Name: "Foo", URL: "https://foo.dev"}}

	tests := []struct {
		name      string
		siteTitle string
		opts      []LinkOption
		html      string
		targets   []LinkTarget
		expected  string
	}{
		{
			name:     "word boundary",
			html:     "<p>Foobar uses Foo daily</p>",
			targets:  foo,
			expected: "<p>Foobar uses " + link("https://foo.dev", "Foo") + " daily</p>",
		},
		{
			name:     "case insensitive keeps original casing",
			html:     "<p>foo and FOO</p>",
			targets:  foo,
			expected: "<p>" + link("https://foo.dev", "foo") + " and " + link("https://foo.dev", "FOO") + "</p>",
		},
		{
			name:     "existing anchor label untouched",
			html:     `<p><a href="https://other.dev">Foo</a> and Foo</p>`,
			targets:  foo,
			expected: `<p><a href="https://other.dev">Foo</a> and ` + link("https://foo.dev", "Foo") + "</p>",
		},
		{
			name:     "text inside tags untouched",
			html:     `<img alt="Foo" src="foo.png"><span title="Foo"></span>`,
			targets:  foo,
			expected: `<img alt="Foo" src="foo.png"><span title="Foo"></span>`,
		},
		{
			name:     "title and h1 text untouched",
			html:     "<title>Foo</title><h1>Foo</h1><p>Foo</p>",
			targets:  foo,
			expected: "<title>Foo</title><h1>Foo</h1><p>" + link("https://foo.dev", "Foo") + "</p>",
		},
		{
			name:     "script and style text untouched",
			html:     "<script>var Foo = 1;</script><style>.Foo{}</style>",
			targets:  foo,
			expected: "<script>var Foo = 1;</script><style>.Foo{}</style>",
		},
		{
			name:     "header is not head",
			html:     "<header>Foo</header>",
			targets:  foo,
			expected: "<header>" + link("https://foo.dev", "Foo") + "</header>",
		},
		{
			name:     "text after closing h1 is linked",
			html:     "<h1>Diary</h1>Foo",
			targets:  foo,
			expected: "<h1>Diary</h1>" + link("https://foo.dev", "Foo"),
		},
		{
			name:      "name contained in site title excluded",
			siteTitle: "Foo Diary",
			html:      "<p>Foo</p>",
			targets:   foo,
			expected:  "<p>Foo</p>",
		},
		{
			name:      "name containing site title excluded",
			siteTitle: "diary",
			html:      "<p>My Diary Tool</p>",
			targets:   []LinkTarget{{Name: "My Diary Tool", URL: "https://x.dev"}},
			expected:  "<p>My Diary Tool</p>",
		},
		{
			name:      "unrelated site title keeps target",
			siteTitle: "Dev Diary",
			html:      "<p>Foo</p>",
			targets:   foo,
			expected:  "<p>" + link("https://foo.dev", "Foo") + "</p>",
		},
		{
			name:     "targets with empty URL dropped",
			html:     "<p>Foo</p>",
			targets:  []LinkTarget{{Name: "Foo"}},
			expected: "<p>Foo</p>",
		},
		{
			name:     "no targets",
			html:     "<p>Foo</p>",
			targets:  nil,
			expected: "<p>Foo</p>",
		},
		{
			name: "later target never wraps an earlier anchor",
			html: "<p>Foo</p>",
			targets: []LinkTarget{
				{Name: "Foo", URL: "https://foo.dev"},
				{Name: "foo", URL: "https://other.dev"},
			},
			expected: "<p>" + link("https://foo.dev", "Foo") + "</p>",
		},
		{
			name:     "each target uses its own URL",
			html:     "<p>Foo and Bar</p>",
			targets:  []LinkTarget{{Name: "Foo", URL: "https://foo.dev"}, {Name: "Bar", URL: "https://bar.dev"}},
			expected: "<p>" + link("https://foo.dev", "Foo") + " and " + link("https://bar.dev", "Bar") + "</p>",
		},
		{
			name:     "regexp metacharacters in name are literal",
			html:     "<p>node.js, not nodexjs</p>",
			targets:  []LinkTarget{{Name: "node.js", URL: "https://nodejs.org"}},
			expected: "<p>" + link("https://nodejs.org", "node.js") + ", not nodexjs</p>",
		},
		{
			name:     "quote in URL escaped",
			html:     "<p>Foo</p>",
			targets:  []LinkTarget{{Name: "Foo", URL: `https://foo.dev/?q="x"`}},
			expected: "<p>" + link("https://foo.dev/?q=&quot;x&quot;", "Foo") + "</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]LinkOption{WithLinkStyle("")}, tt.opts...)
			injector := NewLinkInjection(tt.siteTitle, opts...)

			got := injector.InjectLinks(tt.html, tt.targets)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("InjectLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinkInjection_AnchorLookahead(t *testing.T) {
	t.Parallel()

	foo := []LinkTarget{{Name: "Foo", URL: "https://foo.dev"}}
	// Five <b></b> pairs push the closing </a> past the default window.
	page := `<a href="https://other.dev">Foo` + strings.Repeat("<b></b>", 5) + `</a>`

	got := NewLinkInjection("", WithLinkStyle("")).InjectLinks(page, foo)
	if !strings.Contains(got, link("https://foo.dev", "Foo")) {
		t.Errorf("InjectLinks() with default lookahead = %q, want label linked", got)
	}

	wide := NewLinkInjection("", WithLinkStyle(""), WithAnchorLookahead(30))
	if got := wide.InjectLinks(page, foo); got != page {
		t.Errorf("InjectLinks() with wide lookahead = %q, want unchanged", got)
	}

	ignored := NewLinkInjection("", WithLinkStyle(""), WithAnchorLookahead(0))
	if ignored.cfg.lookahead != DefaultAnchorLookahead {
		t.Errorf("lookahead = %d, want %d", ignored.cfg.lookahead, DefaultAnchorLookahead)
	}
}

func TestLinkInjection_DefaultStyle(t *testing.T) {
	t.Parallel()

	got := NewLinkInjection("").InjectLinks("<p>Foo</p>", []LinkTarget{{Name: "Foo", URL: "u"}})
	want := `<p><a href="u" target="_blank" rel="noopener noreferrer" style="` + DefaultLinkStyle + `">Foo</a></p>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InjectLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkInjection_FullPage(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Dev Diary - Development Diary</title>
    <meta name="description" content="lofiradio journal">
</head>
<body>
    <h1>Dev Diary</h1>
    <ul><li><a href="lofiradio/">lofiradio</a> (3 stages)</li></ul>
    <p>Started lofiradio in spring.</p>
</body>
</html>`

	targets := []LinkTarget{{Name: "lofiradio", URL: "https://lofi.example"}}
	got := NewLinkInjection("Dev Diary", WithLinkStyle("")).InjectLinks(page, targets)

	want := strings.Replace(page,
		"<p>Started lofiradio in spring.</p>",
		"<p>Started "+link("https://lofi.example", "lofiradio")+" in spring.</p>", 1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InjectLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkInjection_Concurrent(t *testing.T) {
	t.Parallel()

	injector := NewLinkInjection("Diary")
	targets := []LinkTarget{{Name: "Foo", URL: "https://foo.dev"}}
	want := injector.InjectLinks("<p>Foo</p>", targets)

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- injector.InjectLinks("<p>Foo</p>", targets)
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent InjectLinks() = %q, want %q", got, want)
		}
	}
}
