package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	devdiary "github.com/alnah/go-devdiary"
	"github.com/alnah/go-devdiary/internal/hints"
	"github.com/alnah/go-devdiary/internal/yamlutil"
	flag "github.com/spf13/pflag"
)

// checkStatus summarizes a report: "ready", "warnings", or "errors".
type checkStatus struct {
	Status   string           `json:"status"`
	Problems int              `json:"problems"`
	Report   *devdiary.Report `json:"report"`
}

// runCheckCmd inspects the input directory and returns an exit code.
// Exit codes: 0 = ready (untranslated stages are not problems), 1 = problems found.
func runCheckCmd(args []string, env *Environment) int {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return exitWith(env, err)
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return exitWith(env, err)
	}
	if len(positional) == 1 {
		cfg.Input.Dir = positional[0]
	}

	report, err := devdiary.Check(cfg)
	if err != nil {
		return exitWith(env, withHint(err, cfg.Input.Dir))
	}

	status := &checkStatus{Status: "ready", Problems: report.Problems(), Report: report}
	if status.Problems > 0 {
		status.Status = "errors"
	} else if hasUntranslated(report) {
		status.Status = "warnings"
	}

	if flags.json {
		data, err := yamlutil.MarshalJSON(status)
		if err != nil {
			return exitWith(env, err)
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else if !flags.common.quiet || status.Problems > 0 {
		printCheckResult(env, status, flags.common.verbose)
	}

	if status.Problems > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

func hasUntranslated(r *devdiary.Report) bool {
	for _, p := range r.Projects {
		if len(p.Untranslated) > 0 {
			return true
		}
	}
	return false
}

// printCheckResult outputs a human-readable report.
func printCheckResult(env *Environment, s *checkStatus, verbose bool) {
	w := env.Stdout
	fmt.Fprintf(w, "devdiary check: %s\n\n", s.Report.InputDir)

	for _, p := range s.Report.Projects {
		fmt.Fprintln(w, p.Name)
		if p.Stages == 0 {
			fmt.Fprintf(w, "  %s No stages\n", env.failMark())
		} else {
			source := "directory scan"
			if p.Indexed {
				source = "stage index"
			}
			fmt.Fprintf(w, "  %s Stages: %d (%s)\n", env.okMark(), p.Stages, source)
		}
		printFlag(w, env, p.Intro, "Intro", "intro.md not found"+hints.ForMissingIntro(p.Dir))
		switch {
		case p.HasProjectURL:
			fmt.Fprintf(w, "  %s URL: %s\n", env.okMark(), p.URL)
		case p.UsesSiteURL:
			fmt.Fprintf(w, "  %s URL: site.url\n", env.okMark())
		default:
			fmt.Fprintf(w, "  %s URL: project-url.txt not found%s\n", env.failMark(), hints.ForMissingProjectURL(p.Dir))
		}
		for _, m := range p.Missing {
			fmt.Fprintf(w, "  %s Stage file not found: %s\n", env.failMark(), m)
		}
		if len(p.Untranslated) > 0 {
			fmt.Fprintf(w, "  %s Untranslated: %d\n", env.warnMark(), len(p.Untranslated))
			if verbose {
				for _, u := range p.Untranslated {
					fmt.Fprintf(w, "      %s\n", u)
				}
			}
		}
		if len(p.Screenshots) > 0 {
			fmt.Fprintf(w, "  %s Screenshots: %s\n", env.okMark(), strings.Join(p.Screenshots, ", "))
		}
		fmt.Fprintln(w)
	}

	switch s.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintf(w, "Status: NOT READY (%d problem(s))\n", s.Problems)
	}
}

func printFlag(w io.Writer, env *Environment, ok bool, label, failure string) {
	if ok {
		fmt.Fprintf(w, "  %s %s: found\n", env.okMark(), label)
		return
	}
	fmt.Fprintf(w, "  %s %s\n", env.failMark(), failure)
}
