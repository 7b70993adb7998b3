package devdiary

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
	"github.com/alnah/go-devdiary/internal/fileutil"
	"github.com/alnah/go-devdiary/internal/locale"
)

// ProjectReport describes what a build would find for one project.
type ProjectReport struct {
	Name          string   `json:"name"`
	Dir           string   `json:"dir"`
	Stages        int      `json:"stages"`
	Indexed       bool     `json:"indexed"`
	URL           string   `json:"url,omitempty"`
	Intro         bool     `json:"intro"`
	Missing       []string `json:"missingStages,omitempty"`
	Untranslated  []string `json:"untranslated,omitempty"`   // "<lang>:<file>"
	Screenshots   []string `json:"screenshotDirs,omitempty"` // Languages with a screenshot directory
	UsesSiteURL   bool     `json:"usesSiteURL,omitempty"`
	HasProjectURL bool     `json:"hasProjectURL"`
}

// Report is the result of Check.
type Report struct {
	InputDir string          `json:"inputDir"`
	Projects []ProjectReport `json:"projects"`
}

// Problems counts the issues that would degrade the generated site.
func (r *Report) Problems() int {
	n := 0
	for _, p := range r.Projects {
		if p.Stages == 0 {
			n++
		}
		if !p.Intro {
			n++
		}
		if !p.HasProjectURL && !p.UsesSiteURL {
			n++
		}
		n += len(p.Missing)
	}
	return n
}

// Check inspects the input directory of cfg without writing anything.
func Check(cfg *config.Config) (*Report, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	projects, err := content.Discover(cfg.Input.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no *%s directories in %s", ErrNoProjects, content.ProjectSuffix, cfg.Input.Dir)
	}

	resolver := locale.NewResolver(cfg.DefaultLocale())
	report := &Report{InputDir: cfg.Input.Dir}

	for _, p := range projects {
		pr := ProjectReport{
			Name:          p.DisplayName,
			Dir:           p.Dir,
			Stages:        len(p.Stages),
			Indexed:       p.Indexed,
			URL:           p.URL,
			Intro:         resolver.ResolveIntro(p.Dir, cfg.DefaultLocale()) != "",
			Missing:       p.Missing,
			HasProjectURL: p.URL != "",
			UsesSiteURL:   p.URL == "" && cfg.Site.URL != "",
		}
		for _, lang := range config.Locales {
			if fileutil.DirExists(p.ScreenshotDir(lang)) {
				pr.Screenshots = append(pr.Screenshots, lang)
			}
			if resolver.IsDefault(lang) {
				continue
			}
			for _, s := range p.Stages {
				if !resolver.Translated(filepath.Dir(s.Path), filepath.Base(s.Path), lang) {
					pr.Untranslated = append(pr.Untranslated, lang+":"+s.File)
				}
			}
		}
		report.Projects = append(report.Projects, pr)
	}

	return report, nil
}
