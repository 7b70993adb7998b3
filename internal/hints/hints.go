// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForNoProjects returns hints when no project folder was found in inputDir.
func ForNoProjects(inputDir string) string {
	return format("project folders must end in _log, e.g. " +
		filepath.Join(inputDir, "myapp_log", "stages", "01-setup.md"))
}

// ForMissingIntro returns a hint for a project without intro.md.
func ForMissingIntro(projectDir string) string {
	return format("create " + filepath.Join(projectDir, "intro.md") +
		" or " + filepath.Join(projectDir, "stages", "intro.md"))
}

// ForMissingProjectURL returns a hint for a project without a URL.
func ForMissingProjectURL(projectDir string) string {
	return format("create " + filepath.Join(projectDir, "project-url.txt") + " or set site.url")
}

// ForStageIndex returns a hint for an unreadable stage index.
func ForStageIndex() string {
	return format(`expected a list or {"stages": [...]} of {"file", "date", "title"} entries`)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-devdiary/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/diary.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-devdiary") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return format("pass a path to an HTML file with {{STAGES_CONTENT}} placeholders")
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to an HTML file")
}

// ForLinkMode returns a hint listing the accepted link injection modes.
func ForLinkMode() string {
	return format("use --link-mode segments or --link-mode dom")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
