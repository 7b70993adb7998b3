package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-devdiary/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "DEVDIARY_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // DEVDIARY_CONFIG: config file name or path
	InputDir      string // DEVDIARY_INPUT_DIR: directory of *_log projects
	OutputDir     string // DEVDIARY_OUTPUT_DIR: site output directory
	SiteURL       string // DEVDIARY_SITE_URL: fallback project URL
	Style         string // DEVDIARY_STYLE: CSS style name or path
	DefaultLocale string // DEVDIARY_DEFAULT_LOCALE: ru or en
	Workers       int    // DEVDIARY_WORKERS: parallel projects
}

// knownEnvVars lists valid DEVDIARY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DEVDIARY_CONFIG":         true,
	"DEVDIARY_INPUT_DIR":      true,
	"DEVDIARY_OUTPUT_DIR":     true,
	"DEVDIARY_SITE_URL":       true,
	"DEVDIARY_STYLE":          true,
	"DEVDIARY_DEFAULT_LOCALE": true,
	"DEVDIARY_WORKERS":        true,
}

// loadEnvConfig reads configuration from environment variables through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:    getenv("DEVDIARY_CONFIG"),
		InputDir:      getenv("DEVDIARY_INPUT_DIR"),
		OutputDir:     getenv("DEVDIARY_OUTPUT_DIR"),
		SiteURL:       getenv("DEVDIARY_SITE_URL"),
		Style:         getenv("DEVDIARY_STYLE"),
		DefaultLocale: getenv("DEVDIARY_DEFAULT_LOCALE"),
	}

	// Invalid or non-positive counts are ignored, as for an unset variable.
	if workers := getenv("DEVDIARY_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DEVDIARY_* variables.
// Helps catch typos like DEVDIARY_OUTPUT instead of DEVDIARY_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.Style != "" {
		cfg.Template.Style = env.Style
	}
	if env.DefaultLocale != "" {
		cfg.Locales.Default = env.DefaultLocale
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}

// resolveConfig loads the config named by the flag, or by DEVDIARY_CONFIG
// when the flag is empty, and applies the environment overrides.
func resolveConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	cfg, err := loadConfig(name)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}
