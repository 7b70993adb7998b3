package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	devdiary "github.com/alnah/go-devdiary"
	"github.com/alnah/go-devdiary/internal/assets"
	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
	"github.com/alnah/go-devdiary/internal/hints"
	flag "github.com/spf13/pflag"
)

// runBuild generates the site described by the config and flags.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if len(positional) == 1 {
		cfg.Input.Dir = positional[0]
	}
	if err := cfg.Validate(); err != nil {
		return withHint(err, cfg.Input.Dir)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", devdiary.ResolvePoolSize(cfg.Build.Workers))
	}

	builder, err := devdiary.NewBuilder(cfg,
		devdiary.WithWorkers(cfg.Build.Workers),
		devdiary.WithClock(env.Now),
		devdiary.WithReporter(func(r devdiary.ProjectResult) {
			printProjectResult(env, r, flags.common)
		}),
	)
	if err != nil {
		return withHint(err, cfg.Input.Dir)
	}

	start := env.Now()
	result, err := builder.Build(ctx)
	if err != nil {
		return withHint(err, cfg.Input.Dir)
	}

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d project(s) failed", failed, len(result.Projects))
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\nWrote %d project(s) to %s", len(result.Projects), result.OutputDir)
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, " (%v)", env.Now().Sub(start).Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}
	return nil
}

// loadConfig returns the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", withHint(err, ""))
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Build.Workers = flags.workers
	}
	if flags.locale != "" {
		cfg.Locales.Default = flags.locale
	}

	// Site flags
	if flags.site.title != "" {
		cfg.Site.Title = flags.site.title
	}
	if flags.site.url != "" {
		cfg.Site.URL = flags.site.url
	}

	// Asset flags
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.style != "" {
		cfg.Template.Style = flags.assets.style
	}
	if flags.assets.noStyle {
		cfg.Template.Style = ""
	}
	if flags.assets.assetPath != "" {
		cfg.Template.AssetPath = flags.assets.assetPath
	}

	// Link flags
	if flags.links.disabled {
		cfg.Links.Enabled = false
	}
	if flags.links.mode != "" {
		cfg.Links.Mode = flags.links.mode
	}
	if flags.links.lookahead != linkLookaheadSentinel {
		cfg.Links.Lookahead = flags.links.lookahead
	}
	if flags.links.projectPages {
		cfg.Links.ProjectPages = true
	}
}

// withHint appends an actionable hint to errors that have one.
// The returned error still wraps err.
func withHint(err error, inputDir string) error {
	var hint string
	switch {
	case errors.Is(err, content.ErrIndexParse):
		hint = hints.ForStageIndex()
	case errors.Is(err, devdiary.ErrNoProjects), errors.Is(err, devdiary.ErrReadInput):
		hint = hints.ForNoProjects(inputDir)
	case errors.Is(err, devdiary.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, devdiary.ErrStyleLoad):
		hint = hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, devdiary.ErrTemplateLoad):
		hint = hints.ForTemplateNotFound(assets.TemplateNames())
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, config.ErrInvalidValue) && strings.Contains(err.Error(), "links.mode"):
		hint = hints.ForLinkMode()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// triedPaths extracts the searched paths from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// printProjectResult outputs one project outcome as it completes.
func printProjectResult(env *Environment, r devdiary.ProjectResult, common commonFlags) {
	if r.Err != nil {
		fmt.Fprintf(env.Stderr, "%s %s: %v\n", env.failMark(), r.Name, r.Err)
		return
	}
	if common.quiet {
		return
	}

	if common.verbose {
		fmt.Fprintf(env.Stdout, "%s %s: %d stage(s), %d screenshot(s) (%v)\n",
			env.okMark(), r.Name, r.Stages, r.Screenshots, r.Duration.Round(time.Millisecond))
		for _, p := range r.Pages {
			fmt.Fprintf(env.Stdout, "    %s\n", relPath(p))
		}
	} else {
		fmt.Fprintf(env.Stdout, "%s %s (%d stage(s))\n", env.okMark(), r.Name, r.Stages)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(env.Stderr, "  %s %s: %s\n", env.warnMark(), r.Name, w)
	}
}

// relPath shortens p relative to the working directory when possible.
func relPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	if rel, err := filepath.Rel(wd, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
