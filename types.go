package devdiary

import (
	"time"

	"github.com/alnah/go-devdiary/internal/pipeline"
)

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of projects rendered concurrently.
// Zero or negative derives the count from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithClock sets the time source used for generation dates.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithReporter sets a callback invoked once per finished project.
func WithReporter(r Reporter) Option {
	return func(b *Builder) {
		b.reporter = r
	}
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(r pipeline.MarkdownRenderer) Option {
	return func(b *Builder) {
		if r != nil {
			b.renderer = r
		}
	}
}

// WithLinkInjector replaces the link injector selected by links.mode.
func WithLinkInjector(l pipeline.LinkInjector) Option {
	return func(b *Builder) {
		if l != nil {
			b.linker = l
		}
	}
}

// WithTextExtractor replaces the meta description extractor.
func WithTextExtractor(e pipeline.TextExtractor) Option {
	return func(b *Builder) {
		if e != nil {
			b.extractor = e
		}
	}
}

// Reporter receives build progress. Calls are serialized.
type Reporter func(ProjectResult)

// ProjectResult is the outcome of rendering one project.
type ProjectResult struct {
	Name        string   // Display name
	Stages      int      // Stages rendered per language
	Pages       []string // Written page paths
	Screenshots int      // Copied screenshot files, all languages
	Warnings    []string // Non-fatal problems such as a missing intro
	Err         error
	Duration    time.Duration
}

// BuildResult summarizes a build.
type BuildResult struct {
	OutputDir string
	MainPages []string // Redirect page and per-language main pages
	Projects  []ProjectResult
	Duration  time.Duration
}

// Failed returns the number of projects that could not be rendered.
func (r *BuildResult) Failed() int {
	n := 0
	for _, p := range r.Projects {
		if p.Err != nil {
			n++
		}
	}
	return n
}
