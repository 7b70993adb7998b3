package devdiary

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoProjects   = errors.New("no projects found")
	ErrReadInput    = errors.New("failed to read input")
	ErrTemplateLoad = errors.New("failed to load template")
	ErrStyleLoad    = errors.New("failed to load style")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrNilConfig    = errors.New("config cannot be nil")
)
