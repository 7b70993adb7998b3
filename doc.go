// Package devdiary builds a static, bilingual development diary site from
// per-project markdown logs.
//
// # Quick Start
//
//	cfg := config.DefaultConfig()
//	cfg.Input.Dir = "input"
//	cfg.Output.Dir = "public"
//
//	b, err := devdiary.NewBuilder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := b.Build(ctx)
//
// # Input Layout
//
// Every directory of the input named <name>_log is a project. See package
// internal/content for the files a project may contain.
//
// # Output Layout
//
//	public/index.html               redirect to the default language
//	public/ru/index.html            main page: project list
//	public/ru/<name>/index.html     project page: description and stages
//	public/ru/<name>/screenshots/   images from <name>_log/screenshots/ru
//	public/en/...                   same for English
//
// # Build Pipeline
//
// For each page the builder:
//
//  1. Renders stage sections with a line-oriented markdown renderer
//  2. Fills the {{PLACEHOLDER}} slots of the page template
//  3. Localizes the document language, title and keywords
//  4. Links project names in text outside tags and existing anchors
//  5. Injects the stylesheet
//
// Projects are rendered concurrently (see WithWorkers). A failed project is
// reported in BuildResult and does not stop the others.
package devdiary
