// Package locale resolves translated content files with fallback to the
// default language.
package locale

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-devdiary/internal/fileutil"
)

// DefaultLanguage is used when a Resolver has no default set.
const DefaultLanguage = "ru"

// IntroFile is the project introduction file name.
const IntroFile = "intro.md"

// Resolver maps a content file and language to the file that should be read.
type Resolver struct {
	Default string
}

// NewResolver returns a Resolver whose unsuffixed files belong to defaultLang.
func NewResolver(defaultLang string) *Resolver {
	return &Resolver{Default: defaultLang}
}

func (r *Resolver) defaultLang() string {
	if r == nil || r.Default == "" {
		return DefaultLanguage
	}
	return r.Default
}

// IsDefault reports whether lang is the resolver's default language.
func (r *Resolver) IsDefault(lang string) bool {
	return strings.EqualFold(lang, r.defaultLang())
}

// Candidates returns the translated paths tried for lang, in order.
// The default language has none.
func (r *Resolver) Candidates(dir, file, lang string) []string {
	if r.IsDefault(lang) {
		return nil
	}
	ext := filepath.Ext(file)
	base := strings.TrimSuffix(file, ext)
	return []string{
		filepath.Join(dir, lang, file),
		filepath.Join(dir, "stages", lang, file),
		filepath.Join(dir, base+"."+lang+ext),
	}
}

// Resolve returns the first existing translation of dir/file for lang, or
// dir/file itself. The returned path may not exist.
func (r *Resolver) Resolve(dir, file, lang string) string {
	for _, p := range r.Candidates(dir, file, lang) {
		if fileutil.FileExists(p) {
			return p
		}
	}
	return filepath.Join(dir, file)
}

// Translated reports whether a translation of dir/file exists for lang.
// Always true for the default language.
func (r *Resolver) Translated(dir, file, lang string) bool {
	candidates := r.Candidates(dir, file, lang)
	if candidates == nil {
		return true
	}
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			return true
		}
	}
	return false
}

// ResolveIntro locates the project introduction for lang. The default intro
// lives at projectDir/intro.md or projectDir/stages/intro.md. Translations are
// always looked up from projectDir, wherever the default lives. Returns ""
// when no intro is found.
func (r *Resolver) ResolveIntro(projectDir, lang string) string {
	for _, c := range r.Candidates(projectDir, IntroFile, lang) {
		if fileutil.FileExists(c) {
			return c
		}
	}

	for _, dir := range []string{projectDir, filepath.Join(projectDir, "stages")} {
		if path := filepath.Join(dir, IntroFile); fileutil.FileExists(path) {
			return path
		}
	}
	return ""
}
