package devdiary

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-devdiary/internal/assets"
	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
	"github.com/alnah/go-devdiary/internal/fileutil"
	"github.com/alnah/go-devdiary/internal/locale"
	"github.com/alnah/go-devdiary/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownRenderer = (*pipeline.LineRenderer)(nil)
	_ pipeline.LinkInjector     = (*pipeline.LinkInjection)(nil)
	_ pipeline.LinkInjector     = (*pipeline.DOMLinkInjection)(nil)
	_ pipeline.TextExtractor    = (*pipeline.GoldmarkTextExtractor)(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
)

// ScreenshotExtensions are the image types copied into the site.
var ScreenshotExtensions = []string{"png", "jpg", "jpeg"}

// Builder renders a diary site from a directory of project logs.
// Create with NewBuilder and call Build. A Builder holds no per-build state
// and may be reused.
type Builder struct {
	cfg       *config.Config
	template  string
	css       string
	renderer  pipeline.MarkdownRenderer
	linker    pipeline.LinkInjector
	extractor pipeline.TextExtractor
	injector  pipeline.CSSInjector
	locales   *locale.Resolver
	now       func() time.Time
	workers   int
	reporter  Reporter
	reportMu  sync.Mutex
}

// NewBuilder loads the template and style named by cfg and returns a Builder.
func NewBuilder(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(cfg.Template.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	tmpl, err := resolver.ResolveTemplate(cfg.Template.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateLoad, err)
	}
	css, err := resolver.ResolveStyle(cfg.Template.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStyleLoad, err)
	}

	linkOpts := []pipeline.LinkOption{pipeline.WithAnchorLookahead(cfg.Links.Lookahead)}
	var linker pipeline.LinkInjector
	if strings.EqualFold(cfg.Links.Mode, config.LinkModeDOM) {
		linker = pipeline.NewDOMLinkInjection(cfg.Site.Title, linkOpts...)
	} else {
		linker = pipeline.NewLinkInjection(cfg.Site.Title, linkOpts...)
	}

	b := &Builder{
		cfg:       cfg,
		template:  tmpl,
		css:       css,
		renderer:  pipeline.NewLineRenderer(),
		linker:    linker,
		extractor: pipeline.NewGoldmarkTextExtractor(),
		injector:  &pipeline.CSSInjection{},
		locales:   locale.NewResolver(cfg.DefaultLocale()),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build discovers the projects of the configured input directory and writes
// the site: a redirect page, one main page per language, and one page per
// project and language. Projects are rendered concurrently; a project that
// fails is reported in its ProjectResult and does not stop the others.
// Cancelling ctx skips projects that have not started.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := b.now()

	projects, err := content.Discover(b.cfg.Input.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no *%s directories in %s", ErrNoProjects, content.ProjectSuffix, b.cfg.Input.Dir)
	}

	result := &BuildResult{OutputDir: b.cfg.Output.Dir}

	redirect := filepath.Join(b.cfg.Output.Dir, "index.html")
	if err := fileutil.WriteFile(redirect, RedirectPage(b.cfg.DefaultLocale())); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	result.MainPages = append(result.MainPages, redirect)

	for _, lang := range config.Locales {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := b.mainPage(ctx, lang, projects)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(b.cfg.Output.Dir, lang, "index.html")
		if err := fileutil.WriteFile(path, page); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		result.MainPages = append(result.MainPages, path)
	}

	listed := orderByFirstStage(projects)
	result.Projects = b.buildProjects(ctx, listed, b.linkTargets(listed))
	result.Duration = b.now().Sub(start)

	return result, ctx.Err()
}

// buildProject writes the pages and screenshots of one project in every language.
func (b *Builder) buildProject(ctx context.Context, p content.Project, targets []pipeline.LinkTarget) ProjectResult {
	start := b.now()
	res := ProjectResult{Name: p.DisplayName, Stages: len(p.Stages)}

	if b.locales.ResolveIntro(p.Dir, b.cfg.DefaultLocale()) == "" {
		res.Warnings = append(res.Warnings, "intro.md not found")
	}
	if p.URL == "" && b.cfg.Site.URL == "" {
		res.Warnings = append(res.Warnings, content.ProjectURLFile+" not found")
	}
	for _, missing := range p.Missing {
		res.Warnings = append(res.Warnings, "stage file not found: "+missing)
	}

	for _, lang := range config.Locales {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}

		page, err := b.projectPage(ctx, lang, p, targets)
		if err != nil {
			res.Err = err
			break
		}
		dir := filepath.Join(b.cfg.Output.Dir, lang, p.DisplayName)
		path := filepath.Join(dir, "index.html")
		if err := fileutil.WriteFile(path, page); err != nil {
			res.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			break
		}
		res.Pages = append(res.Pages, path)

		copied, err := fileutil.CopyFiles(p.ScreenshotDir(lang), filepath.Join(dir, content.ScreenshotsDir), ScreenshotExtensions...)
		if err != nil {
			res.Err = fmt.Errorf("%w: copying screenshots: %v", ErrWriteOutput, err)
			break
		}
		res.Screenshots += len(copied)
	}

	res.Duration = b.now().Sub(start)
	return res
}

func (b *Builder) report(r ProjectResult) {
	if b.reporter == nil {
		return
	}
	b.reportMu.Lock()
	defer b.reportMu.Unlock()
	b.reporter(r)
}

// projectURL returns the canonical URL of p, or the site URL.
func (b *Builder) projectURL(p content.Project) string {
	if p.URL != "" {
		return p.URL
	}
	return b.cfg.Site.URL
}

// readMarkdown reads and normalizes a markdown file. Missing files read as "".
func readMarkdown(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	text, err := fileutil.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return pipeline.NormalizeMarkdown(text), nil
}
