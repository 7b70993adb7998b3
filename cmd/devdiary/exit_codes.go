package main

import (
	"errors"
	"os"

	devdiary "github.com/alnah/go-devdiary"
	"github.com/alnah/go-devdiary/internal/assets"
	"github.com/alnah/go-devdiary/internal/config"
	"github.com/alnah/go-devdiary/internal/content"
)

// Exit codes for the devdiary CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site written, or check found no problems
	ExitGeneral = 1 // General error, failed projects, or check problems
	ExitUsage   = 2 // Invalid flags, config, or assets
	ExitIO      = 3 // Input not found, output not writable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/asset errors (exit 2). Checked first: asset loading
	// failures wrap os errors too.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, devdiary.ErrTemplateLoad) ||
		errors.Is(err, devdiary.ErrStyleLoad) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, devdiary.ErrNoProjects) ||
		errors.Is(err, devdiary.ErrReadInput) ||
		errors.Is(err, devdiary.ErrWriteOutput) ||
		errors.Is(err, content.ErrInputNotFound) {
		return ExitIO
	}

	return ExitGeneral
}
