package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	devdiary "github.com/alnah/go-devdiary"
	"github.com/alnah/go-devdiary/internal/assets"
	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no projects", devdiary.ErrNoProjects, ExitIO},
		{"read input", devdiary.ErrReadInput, ExitIO},
		{"write output", devdiary.ErrWriteOutput, ExitIO},
		{"input not found", content.ErrInputNotFound, ExitIO},
		{"wrapped input not found", fmt.Errorf("%w: %w", devdiary.ErrReadInput, content.ErrInputNotFound), ExitIO},

		// Usage/config/asset errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"template load", devdiary.ErrTemplateLoad, ExitUsage},
		{"style load", devdiary.ErrStyleLoad, ExitUsage},
		{"invalid base path", assets.ErrInvalidBasePath, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"template file missing", fmt.Errorf("%w: %w", devdiary.ErrTemplateLoad, os.ErrNotExist), ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("exit codes must follow Unix conventions, got %d/%d/%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
