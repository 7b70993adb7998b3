package devdiary

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
	"github.com/alnah/go-devdiary/internal/dateutil"
	"github.com/alnah/go-devdiary/internal/pipeline"
)

// Inline styles of generated blocks.
const (
	panelStyle     = "background: #f8f9fa; padding: 20px; border-radius: 8px;"
	accentStyle    = "color: #3498db; text-decoration: none; border-bottom: 1px solid #3498db;"
	screenshotAttr = "max-width: 100%; width: auto; height: auto; border-radius: 4px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); display: block;"
)

// Project descriptions longer than this many characters collapse behind a
// "read more" link.
const (
	collapseThreshold = 500
	collapseMinCut    = 400
)

// stageView is a stage resolved for one language.
type stageView struct {
	id      string
	date    string
	title   string
	content content.StageContent
	full    string
}

// mainPage renders <lang>/index.html: the project list of the whole diary.
func (b *Builder) mainPage(ctx context.Context, lang string, projects []content.Project) (string, error) {
	l := labelsFor(lang)
	first := projects[0]

	intro, err := readMarkdown(b.locales.ResolveIntro(first.Dir, lang))
	if err != nil {
		return "", err
	}
	url := b.projectURL(first)
	listed := orderByFirstStage(projects)

	values := pipeline.Placeholders{
		"PROJECT_NAME":              html.EscapeString(b.cfg.Site.Title),
		"PROJECT_DESCRIPTION":       b.metaDescription(intro),
		"PROJECT_URL_META":          urlMeta(url),
		"PROJECT_DESCRIPTION_BLOCK": "",
		"PROJECT_LINK_BLOCK":        linkParagraph(l.linkBlock, url, ""),
		"TABLE_OF_CONTENTS":         projectsTOC(l, listed),
		"STAGES_CONTENT":            "",
		"PROJECT_LINK_FOOTER":       linkParagraph(l.linkFooter, url, ` style="margin-top: 20px;"`),
		"GENERATED_LABEL":           l.generated,
		"GENERATION_DATE":           b.cfg.GenerationDate(lang, b.now()),
		"BACK_LINK":                 "",
		"SUBTITLE":                  l.subtitle,
	}
	languageSwitch(values, lang, func(other string) string {
		return "../" + other + "/index.html"
	})

	page := b.localize(pipeline.FillPlaceholders(b.template, values), lang)

	if b.cfg.Links.Enabled && len(listed) > 0 {
		page = b.linker.InjectLinks(page, b.linkTargets(listed))
	}

	return b.injector.InjectCSS(ctx, page, b.css), nil
}

// projectPage renders <lang>/<project>/index.html.
// Project names in its text are linked only when links.projectPages is set.
func (b *Builder) projectPage(ctx context.Context, lang string, p content.Project, targets []pipeline.LinkTarget) (string, error) {
	l := labelsFor(lang)

	intro, err := readMarkdown(b.locales.ResolveIntro(p.Dir, lang))
	if err != nil {
		return "", err
	}
	stages, err := b.stageViews(lang, l, p)
	if err != nil {
		return "", err
	}
	url := b.projectURL(p)

	values := pipeline.Placeholders{
		"PROJECT_NAME":              html.EscapeString(p.DisplayName),
		"PROJECT_DESCRIPTION":       b.metaDescription(intro),
		"PROJECT_URL_META":          urlMeta(url),
		"PROJECT_DESCRIPTION_BLOCK": b.descriptionBlock(l, p.Name, intro),
		"PROJECT_LINK_BLOCK":        linkParagraph(l.linkBlock, url, ""),
		"TABLE_OF_CONTENTS":         stagesTOC(l, stages),
		"STAGES_CONTENT":            b.stagesHTML(l, stages, lang),
		"PROJECT_LINK_FOOTER":       linkParagraph(l.linkFooter, url, ` style="margin-top: 20px;"`),
		"GENERATED_LABEL":           "",
		"GENERATION_DATE":           "",
		"BACK_LINK":                 `<div class="back-link"><a href="../index.html">` + l.otherProjects + `</a></div>`,
		"SUBTITLE":                  l.subtitle,
	}
	languageSwitch(values, lang, func(other string) string {
		return "../../" + other + "/" + p.DisplayName + "/index.html"
	})

	footer := `<footer><p><a href="../index.html" style="` + accentStyle + `">` + l.otherProjects + `</a></p></footer>`
	page := pipeline.ReplaceFooter(b.template, footer)
	page = b.localize(pipeline.FillPlaceholders(page, values), lang)

	if b.cfg.Links.Enabled && b.cfg.Links.ProjectPages && len(targets) > 0 {
		page = b.linker.InjectLinks(page, targets)
	}

	return b.injector.InjectCSS(ctx, page, b.css), nil
}

// linkTargets maps project names to their canonical URLs.
func (b *Builder) linkTargets(projects []content.Project) []pipeline.LinkTarget {
	targets := make([]pipeline.LinkTarget, 0, len(projects))
	for _, p := range projects {
		targets = append(targets, pipeline.LinkTarget{Name: p.DisplayName, URL: b.projectURL(p)})
	}
	return targets
}

// localize sets the document language and translates the template's
// built-in title and keywords.
func (b *Builder) localize(page, lang string) string {
	page = pipeline.SetDocumentLang(page, lang)
	return pipeline.TranslateMeta(page, labelsFor(templateLanguage).meta, labelsFor(lang).meta)
}

// languageSwitch fills <LANG>_URL and <LANG>_ACTIVE for every locale.
func languageSwitch(values pipeline.Placeholders, current string, otherURL func(lang string) string) {
	for _, lang := range config.Locales {
		key := strings.ToUpper(lang)
		if lang == current {
			values[key+"_URL"] = "index.html"
			values[key+"_ACTIVE"] = "active"
			continue
		}
		values[key+"_URL"] = otherURL(lang)
		values[key+"_ACTIVE"] = ""
	}
}

func (b *Builder) metaDescription(markdown string) string {
	return html.EscapeString(b.extractor.PlainText(markdown, pipeline.DefaultMetaLength))
}

// urlMeta returns the canonical, Open Graph and Twitter URL tags.
func urlMeta(url string) string {
	if url == "" {
		return ""
	}
	u := html.EscapeString(url)
	return `<link rel="canonical" href="` + u + `">` +
		"\n    " + `<meta property="og:url" content="` + u + `">` +
		"\n    " + `<meta name="twitter:url" content="` + u + `">`
}

// linkParagraph returns "<p>label <a>url</a></p>", or "" without a URL.
func linkParagraph(label, url, attrs string) string {
	if url == "" {
		return ""
	}
	u := html.EscapeString(url)
	return `<p` + attrs + `>` + label + ` <a href="` + u + `" target="_blank" rel="noopener noreferrer">` + u + `</a></p>`
}

// orderByFirstStage returns the projects with stages, ordered by the date of
// their earliest stage. Projects whose dates cannot be parsed come last in
// name order.
func orderByFirstStage(projects []content.Project) []content.Project {
	var listed []content.Project
	for _, p := range projects {
		if len(p.Stages) > 0 {
			listed = append(listed, p)
		}
	}
	slices.SortStableFunc(listed, func(a, b content.Project) int {
		ta, errA := dateutil.ParseStageDate(a.Stages[0].Date)
		tb, errB := dateutil.ParseStageDate(b.Stages[0].Date)
		switch {
		case errA == nil && errB == nil:
			return ta.Compare(tb)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return 0
	})
	return listed
}

// projectsTOC lists the projects of the main page with their stage counts.
func projectsTOC(l labels, projects []content.Project) string {
	if len(projects) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="stage-section" style="` + panelStyle + ` margin-top: 40px;">`)
	sb.WriteString(`<h3 style="margin-top: 0;">` + l.projects + `</h3>`)
	sb.WriteString(`<ul style="list-style: none; padding-left: 0;">`)
	for _, p := range projects {
		name := html.EscapeString(p.DisplayName)
		sb.WriteString(`<li style="margin-bottom: 15px;">`)
		sb.WriteString(`<a href="` + name + `/" style="color: #2c3e50; text-decoration: none; font-size: 1.2em; font-weight: bold; border-bottom: 2px solid #3498db; padding-bottom: 5px;">` + name + `</a>`)
		fmt.Fprintf(&sb, ` <span style="color: #95a5a6; font-size: 0.9em;">(%d %s)</span>`, len(p.Stages), l.stagesWord)
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

// stageViews reads every stage of p in lang, falling back to the default
// language file when no translation exists.
func (b *Builder) stageViews(lang string, l labels, p content.Project) ([]stageView, error) {
	views := make([]stageView, 0, len(p.Stages))
	for i, s := range p.Stages {
		path := b.locales.Resolve(filepath.Dir(s.Path), filepath.Base(s.Path), lang)
		c, full, err := content.ReadStage(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}

		title := s.Title
		if title == "" || (path != s.Path && c.Title != "") {
			title = c.Title
		}
		if title == "" {
			title = l.stageTitle(i + 1)
		}

		views = append(views, stageView{
			id:      fmt.Sprintf("stage-%d", i),
			date:    s.Date,
			title:   title,
			content: c,
			full:    full,
		})
	}
	return views, nil
}

// stagesTOC links every stage of a project page. A single stage needs none.
func stagesTOC(l labels, stages []stageView) string {
	if len(stages) <= 1 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="stage-section" style="` + panelStyle + ` margin-top: 40px;">`)
	sb.WriteString(`<h3 style="margin-top: 0;">` + l.contents + `</h3>`)
	sb.WriteString(`<ul style="list-style: none; padding-left: 0;">`)
	for _, s := range stages {
		sb.WriteString(`<li style="margin-bottom: 10px;">`)
		sb.WriteString(`<a href="#` + s.id + `" style="color: #2c3e50; text-decoration: none; border-bottom: 1px solid #3498db; padding-bottom: 2px;">` + html.EscapeString(s.title) + `</a>`)
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

// stagesHTML renders the stage blocks of a project page.
func (b *Builder) stagesHTML(l labels, stages []stageView, lang string) string {
	var sb strings.Builder
	for i, s := range stages {
		fmt.Fprintf(&sb, `<div class="stage" id="%s">`, s.id)
		sb.WriteString(`<div class="stage-header">`)
		sb.WriteString(`<div class="stage-date">` + html.EscapeString(s.date) + `</div>`)
		if i > 0 {
			prev := stages[i-1]
			sb.WriteString(`<div style="margin-bottom: 10px; font-size: 0.9em;"><a href="#` + prev.id + `" style="` + accentStyle + `">` +
				l.previousStage + " " + html.EscapeString(prev.title) + `</a></div>`)
		}
		sb.WriteString(`<h2 class="stage-title">` + html.EscapeString(s.title) + `</h2>`)
		sb.WriteString(`</div>`)

		for j, body := range s.content.Sections() {
			if body == "" {
				continue
			}
			sb.WriteString(`<div class="stage-section">`)
			sb.WriteString(`<h3>` + l.sectionHeaders[j] + `</h3>`)
			sb.WriteString(b.renderer.Render(body, screenshotHTML))
			sb.WriteString(`</div>`)
		}

		if len(s.content.WhatDone) > 0 {
			sb.WriteString(`<div class="stage-section">`)
			sb.WriteString(`<h3>` + l.whatDone + `</h3>`)
			sb.WriteString(`<ul class="what-done-list">`)
			for _, item := range s.content.WhatDone {
				sb.WriteString(`<li>` + pipeline.ProcessInline(item) + `</li>`)
			}
			sb.WriteString(`</ul></div>`)
		}

		if leftover := content.LeftoverScreenshots(s.full, s.content, lang); len(leftover) > 0 {
			sb.WriteString(`<div class="stage-section"><div class="screenshots">`)
			for _, shot := range leftover {
				sb.WriteString(screenshotHTML(shot.FileName, shot.Alt))
			}
			sb.WriteString(`</div></div>`)
		}

		sb.WriteString(`</div>`)
	}
	return sb.String()
}

// screenshotHTML renders a screenshot copied next to the project page.
// It is the renderer's ImageHandler.
func screenshotHTML(fileName, alt string) string {
	altText := alt
	if altText == "" {
		altText = fileName
	}

	var sb strings.Builder
	sb.WriteString(`<div class="screenshot" style="margin: 20px 0;">`)
	sb.WriteString(`<img src="screenshots/` + html.EscapeString(fileName) + `" alt="` + html.EscapeString(altText) + `" style="` + screenshotAttr + `">`)
	if alt != "" {
		sb.WriteString(`<div class="screenshot-caption">` + html.EscapeString(alt) + `</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// nonIDChars are replaced when a project name becomes an element id.
var nonIDChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// markdownMarkers are dropped before measuring a description's length.
var markdownMarkers = strings.NewReplacer("#", "", "*", "", "[", "", "]", "", "(", "", ")", "")

// descriptionBlock renders the "About the project" panel. Long descriptions
// show a shortened version with links toggling the full text.
func (b *Builder) descriptionBlock(l labels, projectName, intro string) string {
	if intro == "" {
		return ""
	}

	full := b.renderer.Render(intro, nil)
	plain := strings.TrimSpace(markdownMarkers.Replace(intro))

	var sb strings.Builder
	sb.WriteString(`<div class="stage-section" style="` + panelStyle + ` margin-bottom: 40px;">`)
	sb.WriteString(`<h3 style="margin-top: 0;">` + l.about + `</h3>`)

	if utf8.RuneCountInString(plain) <= collapseThreshold {
		sb.WriteString(full)
		sb.WriteString(`</div>`)
		return sb.String()
	}

	id := "project-description-" + nonIDChars.ReplaceAllString(projectName, "-")
	short := shortenHTML(full, cutoffPoint(plain))
	toggle := func(hide, show, label string) string {
		return ` <a href="#" onclick="document.getElementById('` + hide + `').style.display='none'; document.getElementById('` +
			show + `').style.display='block'; return false;" style="` + accentStyle + `">` + label + `</a>`
	}

	sb.WriteString(`<div id="` + id + `-short" style="display: block;">`)
	sb.WriteString(short)
	sb.WriteString(toggle(id+"-short", id+"-full", l.readMore))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div id="` + id + `-full" style="display: none;">`)
	sb.WriteString(full)
	sb.WriteString(toggle(id+"-full", id+"-short", l.collapse))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}

// cutoffPoint returns where the short description ends, in characters: the
// last space of the first collapseThreshold characters when it is past
// collapseMinCut, collapseThreshold otherwise.
func cutoffPoint(plain string) int {
	runes := []rune(plain)
	if len(runes) > collapseThreshold {
		runes = runes[:collapseThreshold]
	}
	if i := lastRuneIndex(runes, ' '); i > collapseMinCut {
		return i
	}
	return collapseThreshold
}

func lastRuneIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// shortenHTML keeps the rendered description up to the last paragraph that
// ends before twice the cutoff (at most 60% of the text). Without such a
// paragraph the text is cut and an ellipsis added. Short HTML is kept whole.
func shortenHTML(full string, cutoff int) string {
	runes := []rune(full)
	if len(runes) <= cutoff*2 {
		return full
	}

	limit := min(cutoff*2, len(runes)*6/10)
	window := string(runes[:min(len(runes), limit+len("</p>"))])
	if i := strings.LastIndex(window, "</p>"); i > 0 {
		return window[:i+len("</p>")]
	}
	return string(runes[:limit]) + "..."
}
