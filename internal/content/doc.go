// Package content discovers diary projects on disk and parses their stage
// files.
//
// An input directory holds one directory per project, named <name>_log:
//
//	input/
//	  shop_log/
//	    intro.md             project description (or stages/intro.md)
//	    project-url.txt      canonical project URL
//	    screenshots/ru/      images referenced as screenshots/ru/<file>
//	    screenshots/en/
//	    stages/
//	      stages-index.json  optional, [{file, date, title}] or {stages: [...]}
//	      01-setup.md
//	      en/01-setup.md     translation
//
// Stage files are parsed by ExtractStage into their known sections.
package content
