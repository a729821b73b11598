package main

// Notes:
// - runSign: we test the written files, output modes and error wrapping with a
//   mocked signer. Banner rendering and footer stamping are tested in the
//   root package.
// - mergeFlags, buildProfile, signerOptions: precedence and mapping rules.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/config"
)

func ptr(v float64) *float64 { return &v }

// signArgs returns flags writing into dir with opening disabled.
func signArgs(t *testing.T, dir string, extra ...string) (*signFlags, []string) {
	t.Helper()
	args := append([]string{
		filepath.Join(dir, "in.docx"),
		"-o", filepath.Join(dir, "out.docx"),
		"--banner-output", filepath.Join(dir, "banner.png"),
		"--open", "never",
	}, extra...)
	flags, positional, err := parseSignFlags(args)
	if err != nil {
		t.Fatalf("parseSignFlags(%v): %v", args, err)
	}
	return flags, positional
}

// ---------------------------------------------------------------------------
// TestRunSign - Signing flow with a mocked signer
// ---------------------------------------------------------------------------

func TestRunSign_WritesDocumentAndBanner(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "in.docx")
	flags, positional := signArgs(t, dir, "-l", "https://example.org/v/", "-u", "XYZ", "--date", "01/02/2024", "--note", "*n*")

	env := newTestEnv(nil)
	if err := runSign(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runSign() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "out.docx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(got), "signed:") {
		t.Errorf("output does not hold the signer's document")
	}
	banner, err := os.ReadFile(filepath.Join(dir, "banner.png"))
	if err != nil {
		t.Fatalf("reading banner: %v", err)
	}
	if string(banner) != "\x89PNG banner" {
		t.Errorf("banner = %q", banner)
	}

	wantParams := docxsign.Params{Link: "https://example.org/v/", UUID: "XYZ", Date: "01/02/2024", Note: "*n*"}
	if diff := cmp.Diff(wantParams, env.signer.input.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if env.signer.input.Profile == nil || env.signer.input.Profile.Name != "a4" {
		t.Errorf("profile = %+v, want a4", env.signer.input.Profile)
	}
	if env.opener.calls != 0 {
		t.Errorf("opener called with --open never")
	}
}

func TestRunSign_NoBannerFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "in.docx")
	flags, positional := signArgs(t, dir, "--no-banner-file")

	env := newTestEnv(nil)
	if err := runSign(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runSign() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "banner.png")); !os.IsNotExist(err) {
		t.Errorf("banner written despite --no-banner-file: %v", err)
	}
}

func TestRunSign_CreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "in.docx")
	out := filepath.Join(dir, "nested", "deeper", "out.docx")
	flags, positional := signArgs(t, dir, "-o", out)

	env := newTestEnv(nil)
	if err := runSign(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runSign() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunSign_Output(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extra     []string
		wantIn    []string
		wantEmpty bool
	}{
		{
			name:   "default prints created path",
			wantIn: []string{"Created ", "out.docx"},
		},
		{
			name:   "verbose prints details",
			extra:  []string{"-v", "-u", "CODE-1"},
			wantIn: []string{"code:    CODE-1", "banner:  616px, 1 footer(s)", "image:"},
		},
		{
			name:      "quiet prints nothing",
			extra:     []string{"-q"},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeDocument(t, dir, "in.docx")
			flags, positional := signArgs(t, dir, tt.extra...)

			env := newTestEnv(nil)
			if err := runSign(context.Background(), positional, flags, env.Environment); err != nil {
				t.Fatalf("runSign() error = %v", err)
			}

			out := env.stdout.String()
			if tt.wantEmpty && out != "" {
				t.Errorf("stdout = %q, want empty", out)
			}
			for _, want := range tt.wantIn {
				if !strings.Contains(out, want) {
					t.Errorf("stdout should contain %q, got %q", want, out)
				}
			}
		})
	}
}

func TestRunSign_Errors(t *testing.T) {
	t.Parallel()

	signErr := errors.New("boom")

	tests := []struct {
		name     string
		setup    func(dir string) []string
		signer   *mockSigner
		wantErr  error
		wantCode int
	}{
		{
			name:     "too many documents",
			setup:    func(dir string) []string { return []string{"a.docx", "b.docx"} },
			wantErr:  ErrTooManyArgs,
			wantCode: ExitUsage,
		},
		{
			name:     "wrong extension",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "in.doc")} },
			wantErr:  ErrInvalidExtension,
			wantCode: ExitUsage,
		},
		{
			name:     "missing document",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "missing.docx")} },
			wantErr:  ErrReadDocument,
			wantCode: ExitIO,
		},
		{
			name:     "unknown profile",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "in.docx"), "-p", "a3"} },
			wantErr:  docxsign.ErrUnknownProfile,
			wantCode: ExitUsage,
		},
		{
			name:     "invalid link",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "in.docx"), "-l", "ftp://x"} },
			signer:   &mockSigner{err: docxsign.ErrInvalidLink},
			wantErr:  docxsign.ErrInvalidLink,
			wantCode: ExitUsage,
		},
		{
			name:     "browser failure",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "in.docx")} },
			signer:   &mockSigner{err: docxsign.ErrBrowserConnect},
			wantErr:  docxsign.ErrBrowserConnect,
			wantCode: ExitBrowser,
		},
		{
			name:     "unexpected failure",
			setup:    func(dir string) []string { return []string{filepath.Join(dir, "in.docx")} },
			signer:   &mockSigner{err: signErr},
			wantErr:  signErr,
			wantCode: ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeDocument(t, dir, "in.docx")
			args := append(tt.setup(dir), "-o", filepath.Join(dir, "out.docx"), "--no-banner-file", "--open", "never")
			flags, positional, err := parseSignFlags(args)
			if err != nil {
				t.Fatalf("parseSignFlags: %v", err)
			}

			env := newTestEnv(tt.signer)
			err = runSign(context.Background(), positional, flags, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runSign() error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
			if _, statErr := os.Stat(filepath.Join(dir, "out.docx")); !os.IsNotExist(statErr) {
				t.Error("output written despite error")
			}
		})
	}
}

func TestRunSign_ClosesSignerOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "in.docx")
	flags, positional := signArgs(t, dir)

	env := newTestEnv(&mockSigner{err: docxsign.ErrPageLoad})
	if err := runSign(context.Background(), positional, flags, env.Environment); err == nil {
		t.Fatal("runSign() should fail")
	}
	if !env.signer.closed {
		t.Error("signer not closed after failure")
	}
}

func TestRunSign_OpenFailureIsWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocument(t, dir, "in.docx")
	flags, positional := signArgs(t, dir, "--open", "always")

	env := newTestEnv(nil)
	env.opener.err = ErrOpen
	if err := runSign(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runSign() error = %v, want nil", err)
	}
	if !strings.Contains(env.stderr.String(), "warning: failed to open document") {
		t.Errorf("stderr = %q, want open warning", env.stderr.String())
	}
	if !filepath.IsAbs(env.opener.path) {
		t.Errorf("opener path %q is not absolute", env.opener.path)
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags, positional, err := parseSignFlags([]string{
			"doc.docx", "-o", "out.docx", "-t", "1m", "--open", "auto",
			"-l", "https://x.test/", "-u", "auto", "--date", "auto", "--note", "n",
			"--template", "minimal", "--asset-path", "/assets", "--banner-output", "b.png",
			"--dpi", "120", "--padding", "0", "--scale", "2", "-p", "letter",
		})
		if err != nil {
			t.Fatal(err)
		}
		mergeFlags(flags, positional, cfg)

		want := config.DefaultConfig()
		want.Input = "doc.docx"
		want.Output = "out.docx"
		want.Timeout = "1m"
		want.Open.Mode = "auto"
		want.Signature = config.SignatureConfig{Link: "https://x.test/", UUID: "auto"}
		want.Banner.Date = "auto"
		want.Banner.Note = "n"
		want.Banner.Template = "minimal"
		want.Banner.Assets = "/assets"
		want.Banner.Output = "b.png"
		want.Banner.DPI = 120
		want.Banner.Padding = 0
		want.Banner.Scale = 2
		want.Page.Profile = "letter"

		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags, positional, err := parseSignFlags(nil)
		if err != nil {
			t.Fatal(err)
		}
		mergeFlags(flags, positional, cfg)

		if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("no-banner-file clears banner output", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags, positional, err := parseSignFlags([]string{"--banner-output", "b.png", "--no-banner-file"})
		if err != nil {
			t.Fatal(err)
		}
		mergeFlags(flags, positional, cfg)

		if cfg.Banner.Output != "" {
			t.Errorf("Banner.Output = %q, want empty", cfg.Banner.Output)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildProfile - Named profiles with dimension overrides
// ---------------------------------------------------------------------------

func TestBuildProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      config.PageConfig
		wantName  string
		wantWidth float64
		wantLeft  float64
		wantErr   error
	}{
		{
			name:      "empty name uses a4",
			page:      config.PageConfig{},
			wantName:  "a4",
			wantWidth: 210,
			wantLeft:  25.4,
		},
		{
			name:      "letter",
			page:      config.PageConfig{Profile: "letter"},
			wantName:  "letter",
			wantWidth: 215.9,
			wantLeft:  25.4,
		},
		{
			name:      "override marks profile custom",
			page:      config.PageConfig{Profile: "a4", Left: ptr(20)},
			wantName:  "a4+custom",
			wantWidth: 210,
			wantLeft:  20,
		},
		{
			name:    "unknown profile",
			page:    config.PageConfig{Profile: "tabloid"},
			wantErr: docxsign.ErrUnknownProfile,
		},
		{
			name:    "margins wider than page",
			page:    config.PageConfig{Profile: "a4", Left: ptr(150), Right: ptr(100)},
			wantErr: docxsign.ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildProfile(tt.page)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("buildProfile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildProfile() error = %v", err)
			}
			if got.Name != tt.wantName || got.PageWidth != tt.wantWidth || got.LeftMargin != tt.wantLeft {
				t.Errorf("buildProfile() = %s width %.1f left %.1f, want %s width %.1f left %.1f",
					got.Name, got.PageWidth, got.LeftMargin, tt.wantName, tt.wantWidth, tt.wantLeft)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSignerOptions - Config to option mapping
// ---------------------------------------------------------------------------

func TestSignerOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		// timeout, template, dpi, scale, padding
		if got := len(signerOptions(config.DefaultConfig(), 30e9)); got != 5 {
			t.Errorf("len(signerOptions) = %d, want 5", got)
		}
	})

	t.Run("zero values are skipped except padding", func(t *testing.T) {
		t.Parallel()

		if got := len(signerOptions(&config.Config{}, 0)); got != 1 {
			t.Errorf("len(signerOptions) = %d, want 1", got)
		}
	})

	t.Run("asset path adds an option", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Banner.Assets = "/assets"
		if got := len(signerOptions(cfg, 30e9)); got != 6 {
			t.Errorf("len(signerOptions) = %d, want 6", got)
		}
	})
}

func TestValidateDocumentExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"report.docx", false},
		{"REPORT.DOCX", false},
		{"dir.v2/report.docx", false},
		{"report.doc", true},
		{"report.docx.bak", true},
		{"report", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			err := validateDocumentExtension(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDocumentExtension(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExtension) {
				t.Errorf("error should wrap ErrInvalidExtension, got %v", err)
			}
		})
	}
}
