// Package config loads and validates the docxsign YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docxsign/internal/fileutil"
	"github.com/alnah/go-docxsign/internal/yamlutil"
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
	MaxPathLength     = 4096
	MaxURLLength      = 2048
	MaxUUIDLength     = 128
	MaxDateLength     = 60 // "auto:FORMAT" or a literal date
	MaxNoteLength     = 500
	MaxNameLength     = 20 // profile, open mode
	MaxTemplateLength = 4096
	MaxCommandArgs    = 16
)

// Ranges for numeric banner settings.
const (
	MinDPI     = 24
	MaxDPI     = 600
	MaxPadding = 1000
	MaxScale   = 4.0
)

// Open modes.
const (
	OpenAlways = "always"
	OpenNever  = "never"
	OpenAuto   = "auto"
)

// Defaults reproduce the historical hard-coded values of the signing job.
const (
	DefaultInput          = "assets/file_in.docx"
	DefaultOutput         = "build/file_out.docx"
	DefaultBannerOutput   = "build/banner.png"
	DefaultTemplate       = "default"
	DefaultProfile        = "a4"
	DefaultDPI            = 96
	DefaultPadding        = 15
	DefaultScale          = 1.0
	DefaultTimeout        = "30s"
	DefaultSignatureLink  = "https://solar.defensoria.to.def.br/docs/d/validar/"
	DefaultSignatureUUID  = "A6B56B39D2-195AD85977-740AB544E6-CB1D22BD03"
	DefaultOpenMode       = OpenAlways
	DefaultConfigBaseName = "docxsign"
)

// Config holds the settings of one signing run.
type Config struct {
	Input     string          `yaml:"input"`
	Output    string          `yaml:"output"`
	Timeout   string          `yaml:"timeout"` // Go duration, e.g. "45s"
	Banner    BannerConfig    `yaml:"banner"`
	Page      PageConfig      `yaml:"page"`
	Signature SignatureConfig `yaml:"signature"`
	Open      OpenConfig      `yaml:"open"`
}

// BannerConfig controls how the banner is rendered.
type BannerConfig struct {
	Template string  `yaml:"template"` // embedded name or path to an .html file
	Assets   string  `yaml:"assets"`   // directory holding templates/{name}.html
	Output   string  `yaml:"output"`   // where the PNG is written; empty = not written
	DPI      int     `yaml:"dpi"`
	Padding  int     `yaml:"padding"` // extra pixels added to the computed width
	Scale    float64 `yaml:"scale"`   // device scale factor; >1 supersamples
	Date     string  `yaml:"date"`    // "auto", "auto:FORMAT" or literal
	Note     string  `yaml:"note"`    // optional Markdown line
}

// PageConfig selects the page profile applied to every section.
// Dimension fields are millimetres overriding the named profile; nil keeps it.
type PageConfig struct {
	Profile string   `yaml:"profile"`
	Height  *float64 `yaml:"height,omitempty"`
	Width   *float64 `yaml:"width,omitempty"`
	Top     *float64 `yaml:"top,omitempty"`
	Bottom  *float64 `yaml:"bottom,omitempty"`
	Left    *float64 `yaml:"left,omitempty"`
	Right   *float64 `yaml:"right,omitempty"`
	Header  *float64 `yaml:"header,omitempty"`
	Footer  *float64 `yaml:"footer,omitempty"`
}

// SignatureConfig carries the values printed in the banner.
type SignatureConfig struct {
	Link string `yaml:"link"`
	UUID string `yaml:"uuid"` // "auto" generates a random UUID
}

// OpenConfig controls opening the signed document afterwards.
type OpenConfig struct {
	Mode    string   `yaml:"mode"`              // always, never, auto
	Command []string `yaml:"command,omitempty"` // replaces the platform opener; path appended
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:   DefaultInput,
		Output:  DefaultOutput,
		Timeout: DefaultTimeout,
		Banner: BannerConfig{
			Template: DefaultTemplate,
			Output:   DefaultBannerOutput,
			DPI:      DefaultDPI,
			Padding:  DefaultPadding,
			Scale:    DefaultScale,
		},
		Page:      PageConfig{Profile: DefaultProfile},
		Signature: SignatureConfig{Link: DefaultSignatureLink, UUID: DefaultSignatureUUID},
		Open:      OpenConfig{Mode: DefaultOpenMode},
	}
}

// TimeoutDuration parses Timeout. An empty value yields zero (library default).
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called by LoadConfig; also usable on configs built in code.
// Semantic checks (link syntax, profile names) belong to the signer.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input", c.Input, MaxPathLength},
		{"output", c.Output, MaxPathLength},
		{"banner.template", c.Banner.Template, MaxTemplateLength},
		{"banner.assets", c.Banner.Assets, MaxPathLength},
		{"banner.output", c.Banner.Output, MaxPathLength},
		{"banner.date", c.Banner.Date, MaxDateLength},
		{"banner.note", c.Banner.Note, MaxNoteLength},
		{"page.profile", c.Page.Profile, MaxNameLength},
		{"signature.link", c.Signature.Link, MaxURLLength},
		{"signature.uuid", c.Signature.UUID, MaxUUIDLength},
		{"open.mode", c.Open.Mode, MaxNameLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Banner.DPI != 0 && (c.Banner.DPI < MinDPI || c.Banner.DPI > MaxDPI) {
		return fmt.Errorf("%w: banner.dpi must be between %d and %d, got %d", ErrInvalidValue, MinDPI, MaxDPI, c.Banner.DPI)
	}
	if c.Banner.Padding < 0 || c.Banner.Padding > MaxPadding {
		return fmt.Errorf("%w: banner.padding must be between 0 and %d, got %d", ErrInvalidValue, MaxPadding, c.Banner.Padding)
	}
	if c.Banner.Scale != 0 && (c.Banner.Scale < 1 || c.Banner.Scale > MaxScale) {
		return fmt.Errorf("%w: banner.scale must be between 1 and %.0f, got %.2f", ErrInvalidValue, MaxScale, c.Banner.Scale)
	}

	for name, v := range c.Page.dimensions() {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: page.%s cannot be negative, got %.2f", ErrInvalidValue, name, *v)
		}
	}

	switch strings.ToLower(c.Open.Mode) {
	case "", OpenAlways, OpenNever, OpenAuto:
	default:
		return fmt.Errorf("%w: open.mode %q (must be always, never or auto)", ErrInvalidValue, c.Open.Mode)
	}
	if len(c.Open.Command) > MaxCommandArgs {
		return fmt.Errorf("%w: open.command has %d arguments (max %d)", ErrInvalidValue, len(c.Open.Command), MaxCommandArgs)
	}
	for i, arg := range c.Open.Command {
		if err := validateFieldLength(fmt.Sprintf("open.command[%d]", i), arg, MaxPathLength); err != nil {
			return err
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// dimensions maps field names to the page overrides.
func (p *PageConfig) dimensions() map[string]*float64 {
	return map[string]*float64{
		"height": p.Height, "width": p.Width,
		"top": p.Top, "bottom": p.Bottom, "left": p.Left, "right": p.Right,
		"header": p.Header, "footer": p.Footer,
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// Names are searched as ./NAME.yaml, ./NAME.yml, then in the user config
// directory under docxsign/. Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrNilData):
			// An empty file is a valid, all-default config.
			return cfg, nil
		case errors.Is(err, os.ErrPermission):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true for values with a separator or a YAML extension.
func isFilePath(s string) bool {
	lower := strings.ToLower(s)
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// resolveConfigPath searches for NAME.yaml|yml in the working directory,
// then in the user config directory.
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

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, DefaultConfigBaseName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError reports the locations searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }
