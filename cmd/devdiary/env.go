package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Fancy   bool // Stdout is a terminal: print ✓/✗ instead of [OK]/[ERROR]
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	fd := os.Stdout.Fd()
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Fancy:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// okMark and failMark return the status markers for env.
func (e *Environment) okMark() string {
	if e.Fancy {
		return "✓"
	}
	return "[OK]"
}

func (e *Environment) failMark() string {
	if e.Fancy {
		return "✗"
	}
	return "[ERROR]"
}

func (e *Environment) warnMark() string {
	if e.Fancy {
		return "!"
	}
	return "[WARN]"
}
