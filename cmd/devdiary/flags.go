package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

// linkLookaheadSentinel detects if --link-lookahead was explicitly set.
// Since 0 is a valid lookahead, we use an out-of-range sentinel.
const linkLookaheadSentinel = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds site identity flags.
type siteFlags struct {
	title string
	url   string
}

// assetFlags holds template and stylesheet flags.
type assetFlags struct {
	template  string // Name or path for the page template
	style     string // Name or path for CSS
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// linkFlags holds link injection flags.
type linkFlags struct {
	disabled     bool
	mode         string
	lookahead    int
	projectPages bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	workers int
	locale  string
	site    siteFlags
	assets  assetFlags
	links   linkFlags
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-project timing and warnings")
}

// addSiteFlags adds site identity flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.title, "title", "", "site title (brand name)")
	fs.StringVar(&f.url, "url", "", "fallback project URL")
}

// addAssetFlags adds template and style flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template name or path")
	fs.StringVar(&f.style, "style", "", "style name or path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addLinkFlags adds link injection flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.BoolVar(&f.disabled, "no-links", false, "disable project link injection")
	fs.StringVar(&f.mode, "link-mode", "", "link injection mode: segments or dom")
	fs.IntVar(&f.lookahead, "link-lookahead", linkLookaheadSentinel, "segments scanned for a closing </a>")
	fs.BoolVar(&f.projectPages, "link-project-pages", false, "also inject links on project pages")
}

// parseBuildFlags parses build command arguments.
// Returns the flags and the positional arguments (at most one input directory).
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "projects rendered in parallel (0 = auto)")
	fs.StringVar(&f.locale, "default-locale", "", "language whose files have no suffix: ru or en")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addLinkFlags(fs, &f.links)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Join(ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return nil, nil, errors.Join(ErrUsage, errors.New("build takes at most one input directory"))
	}

	return f, fs.Args(), nil
}

// parseCheckFlags parses check command arguments.
func parseCheckFlags(args []string, usage io.Writer) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &checkFlags{}

	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	fs.Usage = func() { printCheckUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Join(ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return nil, nil, errors.Join(ErrUsage, errors.New("check takes at most one input directory"))
	}

	return f, fs.Args(), nil
}
