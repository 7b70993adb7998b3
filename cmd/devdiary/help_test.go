package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"build"}, "--no-links", ""},
		{[]string{"check"}, "--json", ""},
		{[]string{"version"}, "Usage: devdiary version", ""},
		{[]string{"help"}, "Usage: devdiary help", ""},
		{[]string{"convert"}, "", "Unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestEnvironmentMarks(t *testing.T) {
	t.Parallel()

	plain := &Environment{}
	fancy := &Environment{Fancy: true}

	if plain.okMark() != "[OK]" || plain.failMark() != "[ERROR]" || plain.warnMark() != "[WARN]" {
		t.Error("plain marks should be bracketed words")
	}
	if fancy.okMark() != "✓" || fancy.failMark() != "✗" {
		t.Error("terminal marks should be symbols")
	}
}
