package docxsign

import "time"

// Option configures a Signer.
type Option func(*Signer)

// signerConfig holds internal configuration for Signer.
type signerConfig struct {
	timeout   time.Duration
	template  string
	assetPath string
	dpi       int
	padding   int
	scale     float64
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Scale bounds for banner supersampling.
const (
	MinScale = 1.0
	MaxScale = 4.0
)

// WithTimeout sets the banner rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docxsign: WithTimeout duration must be positive")
	}
	return func(s *Signer) {
		s.cfg.timeout = d
	}
}

// WithTemplate selects the banner template: an embedded or custom template
// name, or a path to an HTML file.
func WithTemplate(ref string) Option {
	return func(s *Signer) {
		s.cfg.template = ref
	}
}

// WithAssetPath sets a directory whose templates/ folder holds custom banner
// templates. Custom templates shadow embedded ones of the same name.
func WithAssetPath(path string) Option {
	return func(s *Signer) {
		s.cfg.assetPath = path
	}
}

// WithDPI sets the resolution used to convert the usable page width to pixels.
func WithDPI(dpi int) Option {
	return func(s *Signer) {
		s.cfg.dpi = dpi
	}
}

// WithPadding sets the pixels added to the computed banner width.
func WithPadding(px int) Option {
	return func(s *Signer) {
		s.cfg.padding = px
	}
}

// WithScale renders the banner at scale times its size, then resamples it
// down to the computed width. Values above 1 give smoother text.
func WithScale(scale float64) Option {
	return func(s *Signer) {
		s.cfg.scale = scale
	}
}

// withRenderer injects a PNG renderer (tests).
func withRenderer(r pngRenderer) Option {
	return func(s *Signer) {
		s.renderer = r
	}
}

// withClock overrides the time source used for date placeholders (tests).
func withClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}
