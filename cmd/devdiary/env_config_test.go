package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-devdiary/internal/config"
)

// mapEnv returns a getenv func backed by vars.
func mapEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "unset",
			vars: nil,
			want: envConfig{},
		},
		{
			name: "all set",
			vars: map[string]string{
				"DEVDIARY_CONFIG":         "ci",
				"DEVDIARY_INPUT_DIR":      "logs",
				"DEVDIARY_OUTPUT_DIR":     "dist",
				"DEVDIARY_SITE_URL":       "https://diary.example.com",
				"DEVDIARY_STYLE":          "dark",
				"DEVDIARY_DEFAULT_LOCALE": "en",
				"DEVDIARY_WORKERS":        "3",
			},
			want: envConfig{
				ConfigPath:    "ci",
				InputDir:      "logs",
				OutputDir:     "dist",
				SiteURL:       "https://diary.example.com",
				Style:         "dark",
				DefaultLocale: "en",
				Workers:       3,
			},
		},
		{
			name: "invalid workers ignored",
			vars: map[string]string{"DEVDIARY_WORKERS": "many"},
			want: envConfig{},
		},
		{
			name: "negative workers ignored",
			vars: map[string]string{"DEVDIARY_WORKERS": "-2"},
			want: envConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(mapEnv(tt.vars))
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	applyEnvConfig(&envConfig{OutputDir: "dist", SiteURL: "https://d.example.com", Workers: 2}, cfg)

	want := config.DefaultConfig()
	want.Output.Dir = "dist"
	want.Site.URL = "https://d.example.com"
	want.Build.Workers = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("applyEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME=/root",
		"DEVDIARY_OUTPUT_DIR=dist",
		"DEVDIARY_OUTPUT=dist",
	})

	got := buf.String()
	if !strings.Contains(got, "DEVDIARY_OUTPUT (typo?)") {
		t.Errorf("should warn about DEVDIARY_OUTPUT, got %q", got)
	}
	if strings.Contains(got, "DEVDIARY_OUTPUT_DIR") || strings.Contains(got, "HOME") {
		t.Errorf("should only warn about unknown DEVDIARY_ variables, got %q", got)
	}
}

func TestRunMain_BuildEnvOverrides(t *testing.T) {
	t.Parallel()

	input := diaryInput(t)
	out := filepath.Join(t.TempDir(), "dist")
	env, _, stderr := testEnv()
	vars := map[string]string{
		"DEVDIARY_INPUT_DIR":  input,
		"DEVDIARY_OUTPUT_DIR": out,
		"DEVDIARY_SITE_URL":   "https://diary.example.com",
	}
	env.Getenv = mapEnv(vars)

	code := runMain([]string{"devdiary", "build", "-q"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "en", "blog", "index.html")); err != nil {
		t.Errorf("DEVDIARY_OUTPUT_DIR not used: %v", err)
	}
	if strings.Contains(stderr.String(), "project-url.txt not found") {
		t.Error("DEVDIARY_SITE_URL should silence the missing URL warning")
	}

	// Flags win over the environment.
	flagOut := filepath.Join(t.TempDir(), "flag")
	env2, _, _ := testEnv()
	env2.Getenv = mapEnv(vars)
	if code := runMain([]string{"devdiary", "build", "-q", "-o", flagOut}, env2); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
	}
	if _, err := os.Stat(filepath.Join(flagOut, "index.html")); err != nil {
		t.Errorf("-o should override DEVDIARY_OUTPUT_DIR: %v", err)
	}
}
