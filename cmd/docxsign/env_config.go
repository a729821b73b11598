package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-docxsign/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOCXSIGN_CONFIG: config file name or path
	Link       string        // DOCXSIGN_LINK: validation link
	UUID       string        // DOCXSIGN_UUID: verification code or "auto"
	Date       string        // DOCXSIGN_DATE: banner date
	Note       string        // DOCXSIGN_NOTE: Markdown note
	Timeout    time.Duration // DOCXSIGN_TIMEOUT: banner rendering timeout
	Open       string        // DOCXSIGN_OPEN: always, never, auto
	Profile    string        // DOCXSIGN_PROFILE: a4, letter, legal
	Template   string        // DOCXSIGN_TEMPLATE: banner template name or path
	Output     string        // DOCXSIGN_OUTPUT: signed document path
}

// knownEnvVars lists valid DOCXSIGN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCXSIGN_CONFIG":   true,
	"DOCXSIGN_LINK":     true,
	"DOCXSIGN_UUID":     true,
	"DOCXSIGN_DATE":     true,
	"DOCXSIGN_NOTE":     true,
	"DOCXSIGN_TIMEOUT":  true,
	"DOCXSIGN_OPEN":     true,
	"DOCXSIGN_PROFILE":  true,
	"DOCXSIGN_TEMPLATE": true,
	"DOCXSIGN_OUTPUT":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized DOCXSIGN_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCXSIGN_CONFIG"),
		Link:       os.Getenv("DOCXSIGN_LINK"),
		UUID:       os.Getenv("DOCXSIGN_UUID"),
		Date:       os.Getenv("DOCXSIGN_DATE"),
		Note:       os.Getenv("DOCXSIGN_NOTE"),
		Open:       os.Getenv("DOCXSIGN_OPEN"),
		Profile:    os.Getenv("DOCXSIGN_PROFILE"),
		Template:   os.Getenv("DOCXSIGN_TEMPLATE"),
		Output:     os.Getenv("DOCXSIGN_OUTPUT"),
	}

	// Invalid or non-positive durations are ignored.
	if timeout := os.Getenv("DOCXSIGN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCXSIGN_* variables.
// Helps catch typos like DOCXSIGN_URL instead of DOCXSIGN_LINK.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DOCXSIGN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace file values: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Link != "" {
		cfg.Signature.Link = env.Link
	}
	if env.UUID != "" {
		cfg.Signature.UUID = env.UUID
	}
	if env.Date != "" {
		cfg.Banner.Date = env.Date
	}
	if env.Note != "" {
		cfg.Banner.Note = env.Note
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Open != "" {
		cfg.Open.Mode = env.Open
	}
	if env.Profile != "" {
		cfg.Page.Profile = env.Profile
	}
	if env.Template != "" {
		cfg.Banner.Template = env.Template
	}
	if env.Output != "" {
		cfg.Output = env.Output
	}
}
