package main

// Notes:
// - loadEnvConfig: we test every DOCXSIGN_* variable. Invalid and negative
//   timeouts are ignored, not errors.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: set variables replace file values, unset ones keep them.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docxsign/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("DOCXSIGN_CONFIG", "/path/to/config.yaml")
		t.Setenv("DOCXSIGN_LINK", "https://example.org/v/")
		t.Setenv("DOCXSIGN_UUID", "auto")
		t.Setenv("DOCXSIGN_DATE", "auto:DD/MM/YYYY")
		t.Setenv("DOCXSIGN_NOTE", "*draft*")
		t.Setenv("DOCXSIGN_TIMEOUT", "2m")
		t.Setenv("DOCXSIGN_OPEN", "never")
		t.Setenv("DOCXSIGN_PROFILE", "letter")
		t.Setenv("DOCXSIGN_TEMPLATE", "minimal")
		t.Setenv("DOCXSIGN_OUTPUT", "out/signed.docx")

		want := &envConfig{
			ConfigPath: "/path/to/config.yaml",
			Link:       "https://example.org/v/",
			UUID:       "auto",
			Date:       "auto:DD/MM/YYYY",
			Note:       "*draft*",
			Timeout:    2 * time.Minute,
			Open:       "never",
			Profile:    "letter",
			Template:   "minimal",
			Output:     "out/signed.docx",
		}
		if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
			t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"invalid timeout ignored", "soon", 0},
		{"negative timeout ignored", "-5s", 0},
		{"zero timeout ignored", "0s", 0},
		{"valid timeout", "45s", 45 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOCXSIGN_TIMEOUT", tt.value)
			if got := loadEnvConfig().Timeout; got != tt.want {
				t.Errorf("Timeout = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("unknown variable warns", func(t *testing.T) {
		t.Setenv("DOCXSIGN_URL", "https://example.org")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if !strings.Contains(buf.String(), "DOCXSIGN_URL") {
			t.Errorf("expected warning for DOCXSIGN_URL, got %q", buf.String())
		}
	})

	t.Run("known variables do not warn", func(t *testing.T) {
		t.Setenv("DOCXSIGN_LINK", "https://example.org")
		t.Setenv("DOCXSIGN_UUID", "auto")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "DOCXSIGN_LINK") || strings.Contains(buf.String(), "DOCXSIGN_UUID") {
			t.Errorf("unexpected warning: %q", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env values override config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values replace config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{
			Link:     "https://env.test/",
			UUID:     "ENV",
			Date:     "01/01/2030",
			Note:     "note",
			Timeout:  time.Minute,
			Open:     "auto",
			Profile:  "legal",
			Template: "minimal",
			Output:   "env.docx",
		}, cfg)

		want := config.DefaultConfig()
		want.Signature = config.SignatureConfig{Link: "https://env.test/", UUID: "ENV"}
		want.Banner.Date = "01/01/2030"
		want.Banner.Note = "note"
		want.Timeout = "1m0s"
		want.Open.Mode = "auto"
		want.Page.Profile = "legal"
		want.Banner.Template = "minimal"
		want.Output = "env.docx"

		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Signature.Link = "https://file.test/"
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Signature.Link != "https://file.test/" {
			t.Errorf("Link = %q, want file value", cfg.Signature.Link)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %q, want %q", cfg.Timeout, config.DefaultTimeout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEnvOverridesFlagsPrecedence - flags > env > file
// ---------------------------------------------------------------------------

func TestResolveConfig_Precedence(t *testing.T) {
	t.Setenv("DOCXSIGN_LINK", "https://env.test/")
	t.Setenv("DOCXSIGN_UUID", "ENV-CODE")

	flags, positional, err := parseSignFlags([]string{"doc.docx", "-u", "FLAG-CODE", "-q"})
	if err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(nil)
	cfg, err := resolveConfig(flags, positional, env.Environment)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}

	if cfg.Signature.Link != "https://env.test/" {
		t.Errorf("Link = %q, want env value", cfg.Signature.Link)
	}
	if cfg.Signature.UUID != "FLAG-CODE" {
		t.Errorf("UUID = %q, want flag value", cfg.Signature.UUID)
	}
	if cfg.Input != "doc.docx" {
		t.Errorf("Input = %q, want doc.docx", cfg.Input)
	}
}
