package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForNoProjects(t *testing.T) {
	t.Parallel()

	hint := ForNoProjects("input")
	if !strings.Contains(hint, "_log") {
		t.Errorf("expected _log suffix mention, got %q", hint)
	}
	if !strings.Contains(hint, filepath.Join("input", "myapp_log")) {
		t.Errorf("expected example path under input dir, got %q", hint)
	}
}

func TestForMissingIntro(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("input", "lofiradio_log")
	hint := ForMissingIntro(dir)

	for _, want := range []string{filepath.Join(dir, "intro.md"), filepath.Join(dir, "stages", "intro.md")} {
		if !strings.Contains(hint, want) {
			t.Errorf("expected hint to contain %q, got %q", want, hint)
		}
	}
}

func TestForMissingProjectURL(t *testing.T) {
	t.Parallel()

	hint := ForMissingProjectURL("lofiradio_log")
	if !strings.Contains(hint, "project-url.txt") || !strings.Contains(hint, "site.url") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "suggests user config path",
			paths:    []string{"./diary.yaml", "/home/me/.config/go-devdiary/diary.yaml"},
			contains: "or create /home/me/.config/go-devdiary/diary.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForStyleNotFound([]string{"default", "dark"}); !strings.Contains(hint, "default, dark") {
		t.Errorf("expected style list, got %q", hint)
	}
}

func TestForTemplateNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForTemplateNotFound([]string{"diary"}); !strings.Contains(hint, "available: diary") {
		t.Errorf("expected template list, got %q", hint)
	}
	if hint := ForTemplateNotFound(nil); !strings.Contains(hint, "{{STAGES_CONTENT}}") {
		t.Errorf("expected placeholder mention, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForNoProjects("input"),
		ForMissingIntro("p_log"),
		ForMissingProjectURL("p_log"),
		ForStageIndex(),
		ForConfigNotFound(nil),
		ForOutputDirectory(),
		ForTemplateNotFound(nil),
		ForLinkMode(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
