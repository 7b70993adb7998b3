package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte("# x\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		file  string
		lang  string
		want  string
	}{
		{
			name:  "default language returns base path",
			files: []string{"en/stage1.md"},
			file:  "stage1.md",
			lang:  "ru",
			want:  "stage1.md",
		},
		{
			name:  "language directory wins",
			files: []string{"stage1.md", "en/stage1.md", "stage1.en.md"},
			file:  "stage1.md",
			lang:  "en",
			want:  "en/stage1.md",
		},
		{
			name:  "stages language directory",
			files: []string{"stage1.md", "stages/en/stage1.md", "stage1.en.md"},
			file:  "stage1.md",
			lang:  "en",
			want:  "stages/en/stage1.md",
		},
		{
			name:  "suffixed file",
			files: []string{"stage1.md", "stage1.en.md"},
			file:  "stage1.md",
			lang:  "en",
			want:  "stage1.en.md",
		},
		{
			name:  "missing translation falls back to default",
			files: []string{"stage1.md"},
			file:  "stage1.md",
			lang:  "en",
			want:  "stage1.md",
		},
		{
			name: "nothing exists still returns default path",
			file: "stage9.md",
			lang: "en",
			want: "stage9.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(dir, f))
			}

			r := NewResolver("ru")
			got := r.Resolve(dir, tt.file, tt.lang)
			if want := filepath.Join(dir, tt.want); got != want {
				t.Errorf("Resolve() = %q, want %q", got, want)
			}
		})
	}
}

func TestResolver_ZeroValueDefaultsToRussian(t *testing.T) {
	t.Parallel()

	var r *Resolver
	if !r.IsDefault("ru") {
		t.Error("nil Resolver: IsDefault(ru) = false, want true")
	}
	if (&Resolver{}).IsDefault("en") {
		t.Error("zero Resolver: IsDefault(en) = true, want false")
	}
}

func TestResolver_Translated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.md"))
	touch(t, filepath.Join(dir, "a.en.md"))
	touch(t, filepath.Join(dir, "b.md"))

	r := NewResolver("ru")
	if !r.Translated(dir, "a.md", "en") {
		t.Error("Translated(a.md, en) = false, want true")
	}
	if r.Translated(dir, "b.md", "en") {
		t.Error("Translated(b.md, en) = true, want false")
	}
	if !r.Translated(dir, "b.md", "ru") {
		t.Error("Translated(b.md, ru) = false, want true")
	}
}

func TestResolver_ResolveIntro(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		lang  string
		want  string
	}{
		{"root intro", []string{"intro.md"}, "ru", "intro.md"},
		{"stages intro", []string{"stages/intro.md"}, "ru", "stages/intro.md"},
		{"root preferred over stages", []string{"intro.md", "stages/intro.md"}, "ru", "intro.md"},
		{"translated root intro", []string{"intro.md", "intro.en.md"}, "en", "intro.en.md"},
		{"stages intro with en dir translation", []string{"stages/intro.md", "en/intro.md"}, "en", "en/intro.md"},
		{"stages intro with suffixed translation", []string{"stages/intro.md", "intro.en.md"}, "en", "intro.en.md"},
		{"stages intro with stages en translation", []string{"stages/intro.md", "stages/en/intro.md"}, "en", "stages/en/intro.md"},
		{"en dir preferred over suffix", []string{"intro.md", "en/intro.md", "intro.en.md"}, "en", "en/intro.md"},
		{"suffix inside stages is not a translation", []string{"stages/intro.md", "stages/intro.en.md"}, "en", "stages/intro.md"},
		{"ru ignores translations", []string{"stages/intro.md", "en/intro.md"}, "ru", "stages/intro.md"},
		{"en falls back to default intro", []string{"intro.md"}, "en", "intro.md"},
		{"no intro", nil, "ru", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(dir, f))
			}

			got := NewResolver("ru").ResolveIntro(dir, tt.lang)
			want := ""
			if tt.want != "" {
				want = filepath.Join(dir, tt.want)
			}
			if got != want {
				t.Errorf("ResolveIntro() = %q, want %q", got, want)
			}
		})
	}
}
