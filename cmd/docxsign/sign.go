package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/config"
	"github.com/alnah/go-docxsign/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrReadDocument     = errors.New("failed to read document")
	ErrWriteDocument    = errors.New("failed to write signed document")
	ErrWriteBanner      = errors.New("failed to write banner image")
	ErrInvalidExtension = errors.New("document must have .docx extension")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrUsage            = errors.New("invalid usage")
)

// runSign signs one document: config, env and flags are merged, the document
// is signed, the banner and result are written, then the result is opened.
func runSign(ctx context.Context, positional []string, flags *signFlags, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: got %d documents, sign one at a time", ErrTooManyArgs, len(positional))
	}

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}

	profile, err := buildProfile(cfg.Page)
	if err != nil {
		return err
	}

	if err := validateDocumentExtension(cfg.Input); err != nil {
		return err
	}
	data, err := os.ReadFile(cfg.Input) // #nosec G304 -- user-provided document path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	signer, err := env.NewSigner(signerOptions(cfg, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = signer.Close() }()

	start := env.Now()
	result, err := signer.Sign(ctx, docxsign.Input{
		Document: data,
		Profile:  &profile,
		Params: docxsign.Params{
			Link: cfg.Signature.Link,
			UUID: cfg.Signature.UUID,
			Date: cfg.Banner.Date,
			Note: cfg.Banner.Note,
		},
	})
	if err != nil {
		return fmt.Errorf("signing %s: %w", cfg.Input, err)
	}
	elapsed := env.Now().Sub(start)

	if cfg.Banner.Output != "" {
		if err := fileutil.WriteFile(cfg.Banner.Output, result.Banner); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteBanner, err)
		}
	}
	if err := fileutil.WriteFile(cfg.Output, result.Document); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}

	printResult(env, flags.common, cfg, result, elapsed)
	openResult(cfg.Open, cfg.Output, flags.common.quiet, env)
	return nil
}

// resolveConfig loads the config file and applies env vars then flags.
func resolveConfig(flags *signFlags, positional []string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig loads the named config, the flag winning over the env var.
// Without either the defaults are used.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *signFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Input = positional[0]
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.open != "" {
		cfg.Open.Mode = flags.open
	}

	if flags.signature.link != "" {
		cfg.Signature.Link = flags.signature.link
	}
	if flags.signature.uuid != "" {
		cfg.Signature.UUID = flags.signature.uuid
	}
	if flags.signature.date != "" {
		cfg.Banner.Date = flags.signature.date
	}
	if flags.signature.note != "" {
		cfg.Banner.Note = flags.signature.note
	}

	if flags.banner.template != "" {
		cfg.Banner.Template = flags.banner.template
	}
	if flags.banner.assets != "" {
		cfg.Banner.Assets = flags.banner.assets
	}
	if flags.banner.output != "" {
		cfg.Banner.Output = flags.banner.output
	}
	if flags.banner.noBanner {
		cfg.Banner.Output = ""
	}
	if flags.banner.dpi != 0 {
		cfg.Banner.DPI = flags.banner.dpi
	}
	if flags.banner.padding != paddingUnset {
		cfg.Banner.Padding = flags.banner.padding
	}
	if flags.banner.scale != 0 {
		cfg.Banner.Scale = flags.banner.scale
	}

	if flags.page.profile != "" {
		cfg.Page.Profile = flags.page.profile
	}
}

// buildProfile resolves the named profile and applies dimension overrides.
func buildProfile(page config.PageConfig) (docxsign.PageProfile, error) {
	name := page.Profile
	if name == "" {
		name = config.DefaultProfile
	}
	p, err := docxsign.ProfileByName(name)
	if err != nil {
		return docxsign.PageProfile{}, err
	}

	overrides := []struct {
		value *float64
		field *float64
	}{
		{page.Height, &p.PageHeight},
		{page.Width, &p.PageWidth},
		{page.Top, &p.TopMargin},
		{page.Bottom, &p.BottomMargin},
		{page.Left, &p.LeftMargin},
		{page.Right, &p.RightMargin},
		{page.Header, &p.HeaderDistance},
		{page.Footer, &p.FooterDistance},
	}
	custom := false
	for _, o := range overrides {
		if o.value != nil {
			*o.field = *o.value
			custom = true
		}
	}
	if custom {
		p.Name += "+custom"
	}

	if err := p.Validate(); err != nil {
		return docxsign.PageProfile{}, err
	}
	return p, nil
}

// signerOptions maps the config to signer options.
// Zero values keep the library defaults.
func signerOptions(cfg *config.Config, timeout time.Duration) []docxsign.Option {
	var opts []docxsign.Option
	if timeout > 0 {
		opts = append(opts, docxsign.WithTimeout(timeout))
	}
	if cfg.Banner.Template != "" {
		opts = append(opts, docxsign.WithTemplate(cfg.Banner.Template))
	}
	if cfg.Banner.Assets != "" {
		opts = append(opts, docxsign.WithAssetPath(cfg.Banner.Assets))
	}
	if cfg.Banner.DPI != 0 {
		opts = append(opts, docxsign.WithDPI(cfg.Banner.DPI))
	}
	if cfg.Banner.Scale != 0 {
		opts = append(opts, docxsign.WithScale(cfg.Banner.Scale))
	}
	return append(opts, docxsign.WithPadding(cfg.Banner.Padding))
}

// validateDocumentExtension checks that the path has a .docx extension.
func validateDocumentExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// printResult reports the written files unless quiet.
func printResult(env *Environment, common commonFlags, cfg *config.Config, result *docxsign.SignResult, elapsed time.Duration) {
	if common.quiet {
		return
	}
	if common.verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", cfg.Input, cfg.Output, elapsed.Round(time.Millisecond))
		fmt.Fprintf(env.Stdout, "  code:    %s\n", result.UUID)
		fmt.Fprintf(env.Stdout, "  banner:  %dpx, %d footer(s)\n", result.Width, result.Footers)
		if cfg.Banner.Output != "" {
			fmt.Fprintf(env.Stdout, "  image:   %s\n", cfg.Banner.Output)
		}
		return
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", cfg.Output)
}
