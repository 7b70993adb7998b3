package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-devdiary/internal/dateutil"
	"github.com/alnah/go-devdiary/internal/fileutil"
	"github.com/alnah/go-devdiary/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength  = 200  // Site title
	MaxURLLength    = 2048 // Browser limit
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxNameLength   = 100  // Template or style name
	MaxLocaleLength = 10   // "ru", "en"
	MaxLookahead    = 1000
	MaxWorkers      = 32
)

// Link injection modes.
const (
	LinkModeSegments = "segments"
	LinkModeDOM      = "dom"
)

// Supported locales. The first entry is the fallback default.
var Locales = []string{"ru", "en"}

// Config holds all configuration for a diary build.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Links    LinksConfig    `yaml:"links"`
	Locales  LocalesConfig  `yaml:"locales"`
	Build    BuildConfig    `yaml:"build"`
}

// SiteConfig defines site-wide identity.
type SiteConfig struct {
	Title string `yaml:"title"` // Brand name, never turned into a link target
	URL   string `yaml:"url"`   // Fallback project URL when project-url.txt is absent
}

// InputConfig defines where project logs live.
type InputConfig struct {
	Dir string `yaml:"dir"` // Contains <name>_log directories
}

// OutputConfig defines where the site is written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// TemplateConfig selects the page template and stylesheet.
type TemplateConfig struct {
	Name      string `yaml:"name"`      // Embedded template name or file path
	Style     string `yaml:"style"`     // Embedded style name, file path, or "" for none
	AssetPath string `yaml:"assetPath"` // Custom asset directory (empty = embedded only)
}

// LinksConfig controls project link injection.
type LinksConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Mode         string `yaml:"mode"`         // "segments" or "dom"
	Lookahead    int    `yaml:"lookahead"`    // Segments scanned for a closing </a>
	ProjectPages bool   `yaml:"projectPages"` // Also inject on project pages
}

// LocalesConfig controls language handling.
type LocalesConfig struct {
	Default    string            `yaml:"default"`    // Language whose files have no suffix
	DateFormat map[string]string `yaml:"dateFormat"` // Per-language generation date, "auto:FORMAT" syntax
}

// BuildConfig controls build concurrency.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// Validate checks all config fields.
// Called automatically by LoadConfig, but can be called manually by users
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.url", c.Site.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Site.URL != "" && !fileutil.IsURL(c.Site.URL) {
		return fmt.Errorf("%w: site.url must be an http(s) URL, got %q", ErrInvalidValue, c.Site.URL)
	}

	if err := validateFieldLength("input.dir", c.Input.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("template.name", c.Template.Name, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.style", c.Template.Style, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.assetPath", c.Template.AssetPath, MaxPathLength); err != nil {
		return err
	}

	if c.Links.Mode != "" {
		switch strings.ToLower(c.Links.Mode) {
		case LinkModeSegments, LinkModeDOM:
			// valid
		default:
			return fmt.Errorf("%w: links.mode %q (must be %s or %s)", ErrInvalidValue, c.Links.Mode, LinkModeSegments, LinkModeDOM)
		}
	}
	if c.Links.Lookahead < 0 || c.Links.Lookahead > MaxLookahead {
		return fmt.Errorf("%w: links.lookahead must be between 0 and %d, got %d", ErrInvalidValue, MaxLookahead, c.Links.Lookahead)
	}

	if err := validateFieldLength("locales.default", c.Locales.Default, MaxLocaleLength); err != nil {
		return err
	}
	if c.Locales.Default != "" && !IsLocale(c.Locales.Default) {
		return fmt.Errorf("%w: locales.default %q (must be one of %s)", ErrInvalidValue, c.Locales.Default, strings.Join(Locales, ", "))
	}
	for lang, format := range c.Locales.DateFormat {
		if !IsLocale(lang) {
			return fmt.Errorf("%w: locales.dateFormat key %q (must be one of %s)", ErrInvalidValue, lang, strings.Join(Locales, ", "))
		}
		if err := validateFieldLength("locales.dateFormat."+lang, format, dateutil.MaxDateFormatLength); err != nil {
			return err
		}
		if _, err := dateutil.ResolveDate(format, time.Time{}); err != nil {
			return fmt.Errorf("locales.dateFormat.%s: %w", lang, err)
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	return nil
}

// DefaultLocale returns the configured default language, or the first supported one.
func (c *Config) DefaultLocale() string {
	if c.Locales.Default == "" {
		return Locales[0]
	}
	return strings.ToLower(c.Locales.Default)
}

// GenerationDate formats t for lang using locales.dateFormat, with month
// names in lang. Languages without an entry use the ISO layout.
func (c *Config) GenerationDate(lang string, t time.Time) string {
	format, ok := c.Locales.DateFormat[lang]
	if !ok || format == "" {
		format = "auto"
	}
	s, err := dateutil.ResolveLocalDate(format, lang, t)
	if err != nil {
		s, _ = dateutil.ResolveDate("auto", t)
	}
	return s
}

// IsLocale reports whether lang is a supported locale.
func IsLocale(lang string) bool {
	for _, l := range Locales {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site:     SiteConfig{Title: "Dev Diary"},
		Input:    InputConfig{Dir: "input"},
		Output:   OutputConfig{Dir: "public"},
		Template: TemplateConfig{Name: "diary", Style: "default"},
		Links: LinksConfig{
			Enabled:   true,
			Mode:      LinkModeSegments,
			Lookahead: 10,
		},
		Locales: LocalesConfig{
			Default: "ru",
			DateFormat: map[string]string{
				"ru": "auto:DD.MM.YYYY",
				"en": "auto:M/D/YYYY",
			},
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-devdiary/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-devdiary", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
